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
	"errors"
	"strconv"
)

var (
	// ErrNotDXF indicates that the input does not start with a binary DXF
	// signature.
	ErrNotDXF = errors.New("binary DXF signature not found")
)

// StructureError indicates that a tag stream violates the structure of the
// DXF format and the surrounding entity or section cannot be parsed.
type StructureError struct {
	Line int
	Err  error
}

func (err *StructureError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Line > 0 {
		tail = " (near line " + strconv.Itoa(err.Line) + ")"
	}
	return "invalid DXF structure" + middle + tail
}

func (err *StructureError) Unwrap() error {
	return err.Err
}

// TagNotFoundError indicates that a required group code is not present in a
// tag list.
type TagNotFoundError struct {
	Code int
}

func (err *TagNotFoundError) Error() string {
	return "no tag with group code " + strconv.Itoa(err.Code)
}
