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

// Group codes with a special structural meaning.
const (
	// StructureMarker starts a new entity or section, e.g. (0, "LINE").
	StructureMarker = 0

	// SubclassMarker partitions R13+ entity data, e.g. (100, "AcDbLine").
	SubclassMarker = 100

	// EmbeddedObjMarker starts an embedded object when its value is
	// EmbeddedObjStr.
	EmbeddedObjMarker = 101

	// AppDataMarker opens and closes application defined data groups,
	// e.g. (102, "{ACAD_REACTORS") ... (102, "}").
	AppDataMarker = 102

	// XDataMarker starts an extended data block, keyed by APPID.
	XDataMarker = 1001

	// CommentCode marks comment tags, which carry no structure.
	CommentCode = 999

	// MaxGroupCode is the largest group code defined by the DXF reference.
	MaxGroupCode = 1071
)

// EmbeddedObjStr is the marker value which distinguishes an embedded object
// start tag from an ordinary code 101 tag.
const EmbeddedObjStr = "Embedded Object"

// Kind describes the value domain of a group code.  The kind determines how
// tag values are parsed from and written to both the text and the binary
// wire format.
type Kind int

// The value domains of the DXF group code table.
const (
	KindText Kind = iota
	KindInt16
	KindInt32
	KindInt64
	KindBool
	KindReal
	KindBinary
)

// IsInteger reports whether values of this kind are integers.
func (k Kind) IsInteger() bool {
	return k == KindInt16 || k == KindInt32 || k == KindInt64
}

var kindTable = buildKindTable()

type codeRange struct {
	lo, hi int // inclusive
	kind   Kind
}

// The group code ranges from the DXF reference.  Codes not covered by any
// range hold string values.
var kindRanges = []codeRange{
	{10, 59, KindReal},
	{60, 79, KindInt16},
	{90, 99, KindInt32},
	{110, 149, KindReal},
	{160, 169, KindInt64},
	{170, 179, KindInt16},
	{210, 239, KindReal},
	{270, 289, KindInt16},
	{290, 299, KindBool},
	{310, 319, KindBinary},
	{370, 389, KindInt16},
	{400, 409, KindInt16},
	{420, 429, KindInt32},
	{440, 459, KindInt32},
	{460, 469, KindReal},
	{1004, 1004, KindBinary},
	{1010, 1059, KindReal},
	{1060, 1070, KindInt16},
	{1071, 1071, KindInt32},
}

func buildKindTable() []Kind {
	table := make([]Kind, MaxGroupCode+1)
	for _, r := range kindRanges {
		for code := r.lo; code <= r.hi; code++ {
			table[code] = r.kind
		}
	}
	return table
}

// KindOf returns the value domain of a group code.  Codes outside the
// defined range are treated as strings.
func KindOf(code int) Kind {
	if code < 0 || code > MaxGroupCode {
		return KindText
	}
	return kindTable[code]
}

// pointCodes holds the group codes of x-components of 2D/3D points.  The
// y-component always uses code+10 and the z-component code+20; this offset
// rule is format-wide and applies to every coordinate-bearing code.
var pointCodes = map[int]bool{
	10: true, 11: true, 12: true, 13: true, 14: true,
	15: true, 16: true, 17: true, 18: true,
	110: true, 111: true, 112: true,
	210: true, 211: true, 212: true, 213: true,
	1010: true, 1011: true, 1012: true, 1013: true,
}

// IsPointCode reports whether code is the x-component group code of a
// 2D/3D point.
func IsPointCode(code int) bool {
	return pointCodes[code]
}

// IsBinaryCode reports whether values for code are binary chunks, written
// as hex strings in text DXF.
func IsBinaryCode(code int) bool {
	return code >= 310 && code <= 319 || code == 1004
}

// IsHandleCode reports whether code holds the entity handle.  Code 105 is
// used instead of 5 by DIMSTYLE table entries.
func IsHandleCode(code int) bool {
	return code == 5 || code == 105
}

// IsPointerCode reports whether code holds a handle referring to another
// object.
func IsPointerCode(code int) bool {
	return code >= 320 && code <= 369 ||
		code >= 390 && code <= 399 ||
		code == 480 || code == 481 || code == 1005
}

// IsArbitraryPointer reports whether code holds an arbitrary object handle.
// These handle values are taken as is and are not translated during INSERT
// and XREF operations.
func IsArbitraryPointer(code int) bool {
	return code >= 320 && code <= 329
}

// IsSoftPointer reports whether code holds a soft-pointer handle, an
// arbitrary soft pointer to another object within the same DXF file.
func IsSoftPointer(code int) bool {
	return code >= 330 && code <= 339 || code == 1005
}

// IsHardPointer reports whether code holds a hard-pointer handle.  Hard
// pointers protect an object from being purged.
func IsHardPointer(code int) bool {
	return code >= 340 && code <= 349 ||
		code >= 390 && code <= 399 ||
		code == 480 || code == 481
}

// IsSoftOwner reports whether code holds a soft-ownership handle.
func IsSoftOwner(code int) bool {
	return code >= 350 && code <= 359
}

// IsHardOwner reports whether code holds a hard-ownership handle.  Hard
// owner handles protect an object from being purged.
func IsHardOwner(code int) bool {
	return code >= 360 && code <= 369
}

// IsTranslatablePointer reports whether the handle value for code has to be
// translated during INSERT and XREF operations.  Pointer group codes
// 320-329 are excluded.
func IsTranslatablePointer(code int) bool {
	return code >= 330 && code <= 369 ||
		code >= 390 && code <= 399 ||
		code == 480 || code == 481 || code == 1005
}

// validXDataCodes is the set of group codes allowed in extended data.
var validXDataCodes = map[int]bool{
	1000: true, 1001: true, 1002: true, 1003: true, 1004: true,
	1005: true, 1010: true, 1011: true, 1012: true, 1013: true,
	1040: true, 1041: true, 1042: true, 1070: true, 1071: true,
}

// IsValidXDataCode reports whether code may appear in extended data.
func IsValidXDataCode(code int) bool {
	return validXDataCodes[code]
}

// XCodeFor returns the extended data group code corresponding to a regular
// group code, e.g. 1040 for the float code 40.
func XCodeFor(code int) int {
	switch {
	case IsHandleCode(code) || IsPointerCode(code):
		return 1005
	case IsBinaryCode(code):
		return 1004
	}
	switch k := KindOf(code); {
	case k.IsInteger() || k == KindBool:
		return 1070
	case k == KindReal:
		return 1040
	}
	return 1000
}
