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

import "testing"

func TestVersion(t *testing.T) {
	if !R12.Known() || !R2018.Known() {
		t.Error("known version not recognized")
	}
	if Version("AC9999").Known() {
		t.Error("unknown version recognized")
	}

	if R12.HasSubclassMarkers() {
		t.Error("R12 must not use subclass markers")
	}
	if !R13.HasSubclassMarkers() || !R2018.HasSubclassMarkers() {
		t.Error("R13+ uses subclass markers")
	}

	if R2004.Encoding() != "ANSI_1252" {
		t.Errorf("unexpected encoding %q for R2004", R2004.Encoding())
	}
	if R2007.Encoding() != "utf8" || R2018.Encoding() != "utf8" {
		t.Error("R2007+ files are UTF-8")
	}

	if got := R2010.Release(); got != "R2010" {
		t.Errorf("unexpected release name %q", got)
	}
}

func TestVersionForRelease(t *testing.T) {
	v, ok := VersionForRelease("R2000")
	if !ok || v != R2000 {
		t.Errorf("unexpected version %q, %v", v, ok)
	}
	if _, ok := VersionForRelease("R1985"); ok {
		t.Error("unknown release recognized")
	}
}

func TestSupportedVersions(t *testing.T) {
	vv := SupportedVersions()
	if len(vv) == 0 {
		t.Fatal("no supported versions")
	}
	for i := 1; i < len(vv); i++ {
		if vv[i-1] >= vv[i] {
			t.Error("versions are not sorted")
		}
	}
}
