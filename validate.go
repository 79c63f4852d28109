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
	"fmt"
	"strings"
)

// IsValidGroupCode reports whether code is a group code defined by the
// DXF reference.
func IsValidGroupCode(code int) bool {
	return code >= 0 && code <= MaxGroupCode
}

// IsValidHandle reports whether s is a well-formed entity handle: a
// non-empty hexadecimal number.
func IsValidHandle(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'F':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}

// IsValidTableName reports whether s is acceptable as a symbol table
// entry name.  The DXF reference forbids a small set of special
// characters.
func IsValidTableName(s string) bool {
	return s != "" && !strings.ContainsAny(s, "<>/\\\":;?*|='`")
}

// CheckXDataNesting verifies that the control string tags (1002, "{") and
// (1002, "}") in an XDATA section are balanced.
func CheckXDataNesting(xdata Tags) error {
	depth := 0
	for _, tag := range xdata {
		if tag.Code != 1002 {
			continue
		}
		switch tag.text() {
		case "{":
			depth++
		case "}":
			depth--
			if depth < 0 {
				return fmt.Errorf("unbalanced (1002, \"}\") tag in XDATA")
			}
		default:
			return fmt.Errorf("invalid XDATA control string %q", tag.text())
		}
	}
	if depth != 0 {
		return fmt.Errorf("missing %d closing (1002, \"}\") tags in XDATA", depth)
	}
	return nil
}
