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
	"io"
	"strings"
	"testing"
)

const entityFixture = `999
drawing fragment
  0
LINE
  5
100
  8
0
 10
0.0
 20
0.0
 11
1.0
 21
1.0
  0
CIRCLE
  5
101
  8
0
 10
5.0
 20
5.0
 40
2.5
  0
EOF
`

func TestEntityReader(t *testing.T) {
	r := NewEntityReader(strings.NewReader(entityFixture), nil)

	var types []string
	for {
		x, err := r.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		types = append(types, x.DXFType())
	}
	if len(types) != 2 || types[0] != "LINE" || types[1] != "CIRCLE" {
		t.Errorf("unexpected entities %v", types)
	}
	if len(r.Skipped()) != 0 {
		t.Errorf("unexpected skipped entities: %v", r.Skipped())
	}

	// reading past the end keeps returning io.EOF
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestEntityReaderSkipsDamage(t *testing.T) {
	// the CIRCLE has a code 10 tag without y coordinate; it is skipped
	// and reading continues with the ARC
	const fixture = `  0
LINE
  5
100
  0
CIRCLE
  5
101
 10
5.0
 40
2.5
  0
ARC
  5
102
`
	r := NewEntityReader(strings.NewReader(fixture), nil)
	var types []string
	for {
		x, err := r.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		types = append(types, x.DXFType())
	}
	if len(types) != 2 || types[0] != "LINE" || types[1] != "ARC" {
		t.Errorf("unexpected entities %v", types)
	}

	skipped := r.Skipped()
	if len(skipped) != 1 {
		t.Fatalf("expected 1 skipped entity, got %d", len(skipped))
	}
	if skipped[0].DXFType != "CIRCLE" {
		t.Errorf("unexpected skipped entity type %q", skipped[0].DXFType)
	}
	if skipped[0].Err == nil {
		t.Error("skipped entity without error")
	}
}

func TestEntityReaderNoTerminator(t *testing.T) {
	// a stream without (0, "EOF") tag still terminates cleanly
	r := NewEntityReader(strings.NewReader("  0\nLINE\n  5\n1\n"), nil)
	x, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if x.DXFType() != "LINE" {
		t.Errorf("unexpected entity type %q", x.DXFType())
	}
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReadAll(t *testing.T) {
	entities, skipped, err := ReadAll(strings.NewReader(entityFixture), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entities) != 2 {
		t.Errorf("expected 2 entities, got %d", len(entities))
	}
	if len(skipped) != 0 {
		t.Errorf("unexpected skipped entities: %v", skipped)
	}
}

func TestEntityReaderLegacy(t *testing.T) {
	const fixture = `  0
LINE
  5
1
100
AcDbEntity
  8
0
`
	opts := &EntityReaderOptions{
		Structure: StructureOptions{Legacy: true},
	}
	r := NewEntityReader(strings.NewReader(fixture), opts)
	x, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if len(x.Subclasses) != 1 {
		t.Errorf("expected 1 subclass, got %d", len(x.Subclasses))
	}
	if x.Noclass().HasTag(100) {
		t.Error("subclass marker not removed in legacy mode")
	}
}
