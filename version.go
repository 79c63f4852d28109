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
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Version identifies a DXF file format version by its $ACADVER string.
// The string values sort in release order, so versions can be compared
// with the usual ordering operators.
type Version string

// The DXF versions supported by this package.
const (
	R12   Version = "AC1009"
	R13   Version = "AC1012"
	R14   Version = "AC1014"
	R2000 Version = "AC1015"
	R2004 Version = "AC1018"
	R2007 Version = "AC1021"
	R2010 Version = "AC1024"
	R2013 Version = "AC1027"
	R2018 Version = "AC1032"
)

// LatestVersion is the newest DXF version supported by this package.
const LatestVersion = R2018

var releaseNames = map[Version]string{
	R12:   "R12",
	R13:   "R13",
	R14:   "R14",
	R2000: "R2000",
	R2004: "R2004",
	R2007: "R2007",
	R2010: "R2010",
	R2013: "R2013",
	R2018: "R2018",
}

// Release returns the AutoCAD release name for the version, e.g. "R2018"
// for AC1032.  The empty string indicates an unknown version.
func (v Version) Release() string {
	return releaseNames[v]
}

// Known reports whether v is a version supported by this package.
func (v Version) Known() bool {
	_, ok := releaseNames[v]
	return ok
}

// HasSubclassMarkers reports whether entities of this version partition
// their tags into subclasses with (100, name) marker tags.
func (v Version) HasSubclassMarkers() bool {
	return v >= R13
}

// Encoding returns the text encoding used by DXF files of this version when
// no $DWGCODEPAGE header variable is present.  Files before R2007 are
// codepage encoded, newer files use UTF-8.
func (v Version) Encoding() string {
	if v >= R2007 {
		return "utf8"
	}
	return "ANSI_1252"
}

// VersionForRelease returns the DXF version for an AutoCAD release name
// like "R2010".  The second return value is false if the release name is
// not known.
func VersionForRelease(release string) (Version, bool) {
	for v, name := range releaseNames {
		if name == release {
			return v, true
		}
	}
	return "", false
}

// SupportedVersions returns all supported DXF versions in release order.
func SupportedVersions() []Version {
	vv := maps.Keys(releaseNames)
	slices.Sort(vv)
	return vv
}
