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
	"encoding/hex"
	"io"
	"strconv"
	"strings"
)

// Value represents a tag value in a DXF file.  There are six concrete types
// implementing this interface: [Text], [Integer], [Real], [Bool], [Binary],
// and [*Vector].
type Value interface {
	// DXF writes the DXF file representation of the value to w.
	DXF(w io.Writer) error
}

// Text represents a string value in a DXF file.
type Text string

// DXF implements the [Value] interface.
func (x Text) DXF(w io.Writer) error {
	_, err := io.WriteString(w, string(x))
	return err
}

// Integer represents an integer value in a DXF file.  The wire width
// (16, 32 or 64 bit) is determined by the group code, not by the value.
type Integer int64

// DXF implements the [Value] interface.
func (x Integer) DXF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(x), 10))
	return err
}

// Real represents a floating point value in a DXF file.
type Real float64

// DXF implements the [Value] interface.
func (x Real) DXF(w io.Writer) error {
	_, err := io.WriteString(w, formatFloat(float64(x)))
	return err
}

func formatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s = s + ".0"
	}
	return s
}

// Bool represents a boolean value in a DXF file, written as "0" or "1".
type Bool bool

// DXF implements the [Value] interface.
func (x Bool) DXF(w io.Writer) error {
	s := "0"
	if x {
		s = "1"
	}
	_, err := io.WriteString(w, s)
	return err
}

// Binary represents a binary chunk in a DXF file, written as an uppercase
// hex string in the text format.
type Binary []byte

// DXF implements the [Value] interface.
func (x Binary) DXF(w io.Writer) error {
	_, err := io.WriteString(w, strings.ToUpper(hex.EncodeToString(x)))
	return err
}

// ParseBinary decodes the hex string representation of a binary chunk.
func ParseBinary(s string) (Binary, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return Binary(b), nil
}

// Vector represents the value of a point tag, a 2D or 3D location.  Unlike
// the other value types a Vector is mutable, so that geometry can be
// transformed in place without reallocating tags.
type Vector struct {
	X, Y, Z float64

	// Is3D reports whether the z component is present on the wire.
	Is3D bool
}

// DXF implements the [Value] interface.  The components are written on a
// single line separated by spaces; this form is used for diagnostics only,
// on the wire each component of a point tag becomes a tag of its own (see
// [Tag.Expand]).
func (x *Vector) DXF(w io.Writer) error {
	s := formatFloat(x.X) + " " + formatFloat(x.Y)
	if x.Is3D {
		s += " " + formatFloat(x.Z)
	}
	_, err := io.WriteString(w, s)
	return err
}

// Set replaces all components at once.  Partial component updates are not
// part of the interface, so a point is always fully defined.
func (x *Vector) Set(c ...float64) {
	switch len(c) {
	case 2:
		x.X, x.Y, x.Z = c[0], c[1], 0
		x.Is3D = false
	case 3:
		x.X, x.Y, x.Z = c[0], c[1], c[2]
		x.Is3D = true
	default:
		panic("dxf: point requires 2 or 3 components")
	}
}

// Components returns the wire components of the point, two values for a 2D
// point and three for a 3D point.
func (x *Vector) Components() []float64 {
	if x.Is3D {
		return []float64{x.X, x.Y, x.Z}
	}
	return []float64{x.X, x.Y}
}

// Clone returns an independent copy of the vector.
func (x *Vector) Clone() *Vector {
	y := *x
	return &y
}

// cloneValue returns a copy of v which shares no mutable state with v.
func cloneValue(v Value) Value {
	switch v := v.(type) {
	case *Vector:
		return v.Clone()
	case Binary:
		b := make(Binary, len(v))
		copy(b, v)
		return b
	default:
		// the remaining value types are immutable
		return v
	}
}

// valueString returns the single-line text of a value, as written to the
// wire by [Value.DXF].
func valueString(v Value) string {
	b := &strings.Builder{}
	v.DXF(b)
	return b.String()
}
