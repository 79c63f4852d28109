// seehuhn.de/go/dxf - a library for reading and writing DXF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package dxf

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatFloat(t *testing.T) {
	type testCase struct {
		in   float64
		want string
	}
	cases := []testCase{
		{0, "0.0"},
		{1, "1.0"},
		{-2, "-2.0"},
		{0.5, "0.5"},
		{1.25e6, "1250000.0"},
		{1e-4, "0.0001"},
		{100, "100.0"},
	}
	for _, c := range cases {
		buf := &bytes.Buffer{}
		if err := Real(c.in).DXF(buf); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != c.want {
			t.Errorf("Real(%g): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestBinaryFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := (Binary{0x01, 0xab, 0xff}).DXF(buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "01ABFF" {
		t.Errorf("expected 01ABFF, got %q", got)
	}

	parsed, err := ParseBinary("01ABFF")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Binary{0x01, 0xab, 0xff}, parsed); d != "" {
		t.Errorf("unexpected binary data (-want +got):\n%s", d)
	}
}

func TestVectorSet(t *testing.T) {
	v := &Vector{}
	v.Set(1, 2)
	if d := cmp.Diff(&Vector{X: 1, Y: 2}, v); d != "" {
		t.Errorf("2D set (-want +got):\n%s", d)
	}
	v.Set(3, 4, 5)
	if d := cmp.Diff(&Vector{X: 3, Y: 4, Z: 5, Is3D: true}, v); d != "" {
		t.Errorf("3D set (-want +got):\n%s", d)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for wrong component count")
		}
	}()
	v.Set(1)
}

func TestVectorComponents(t *testing.T) {
	v := &Vector{X: 1, Y: 2}
	if d := cmp.Diff([]float64{1, 2}, v.Components()); d != "" {
		t.Errorf("2D components (-want +got):\n%s", d)
	}
	v = &Vector{X: 1, Y: 2, Z: 3, Is3D: true}
	if d := cmp.Diff([]float64{1, 2, 3}, v.Components()); d != "" {
		t.Errorf("3D components (-want +got):\n%s", d)
	}
}
