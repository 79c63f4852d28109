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
	"io"
	"strconv"
	"strings"
)

// Tag is a single DXF tag, a group code together with a value.  Tags are
// treated as immutable: existing tags are replaced, never changed.  The one
// exception is a point tag, whose [*Vector] value may be mutated in place
// for bulk geometry edits.
type Tag struct {
	Code  int
	Value Value
}

// NewTag creates a tag with a value parsed from its text representation,
// using the value domain of the group code.  This is how tags arrive from
// the text wire format.
func NewTag(code int, text string) (Tag, error) {
	v, err := parseValue(code, text)
	if err != nil {
		return Tag{}, err
	}
	return Tag{Code: code, Value: v}, nil
}

func parseValue(code int, text string) (Value, error) {
	switch kind := KindOf(code); kind {
	case KindReal:
		x, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, err
		}
		return Real(x), nil
	case KindInt16, KindInt32, KindInt64:
		return parseInteger(text)
	case KindBool:
		x, err := parseInteger(text)
		if err != nil {
			return nil, err
		}
		return Bool(x != 0), nil
	case KindBinary:
		return ParseBinary(strings.TrimSpace(text))
	default:
		if code == StructureMarker {
			// structure tags are matched by value, stray blanks would
			// break entity dispatch
			text = strings.TrimSpace(text)
		}
		return Text(text), nil
	}
}

// parseInteger parses an integer tag value.  Some CAD applications write
// integer values with a decimal fraction; these are accepted and truncated.
func parseInteger(text string) (Integer, error) {
	text = strings.TrimSpace(text)
	x, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		return Integer(x), nil
	}
	f, err2 := strconv.ParseFloat(text, 64)
	if err2 != nil {
		return 0, err
	}
	return Integer(int64(f)), nil
}

// IsPoint reports whether the tag is a point tag.
func (t Tag) IsPoint() bool {
	_, ok := t.Value.(*Vector)
	return ok
}

// Expand returns the tag as a slice of scalar tags.  A point tag expands
// into one [Real] tag per component, with the y component at Code+10 and
// the z component at Code+20.  All other tags expand to themselves.
func (t Tag) Expand() []Tag {
	v, ok := t.Value.(*Vector)
	if !ok {
		return []Tag{t}
	}
	tags := []Tag{
		{Code: t.Code, Value: Real(v.X)},
		{Code: t.Code + 10, Value: Real(v.Y)},
	}
	if v.Is3D {
		tags = append(tags, Tag{Code: t.Code + 20, Value: Real(v.Z)})
	}
	return tags
}

// DXF writes the two-line wire representation "code\nvalue\n" of the tag
// to w.  Point tags are written as one line pair per component.
func (t Tag) DXF(w io.Writer) error {
	if t.IsPoint() {
		for _, sub := range t.Expand() {
			if err := sub.DXF(w); err != nil {
				return err
			}
		}
		return nil
	}
	if _, err := fmt.Fprintf(w, "%3d\n", t.Code); err != nil {
		return err
	}
	if err := t.Value.DXF(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Clone returns a copy of the tag which shares no mutable state with the
// original.
func (t Tag) Clone() Tag {
	return Tag{Code: t.Code, Value: cloneValue(t.Value)}
}

// String returns a diagnostic representation "(code, value)".
func (t Tag) String() string {
	return "(" + strconv.Itoa(t.Code) + ", " + valueString(t.Value) + ")"
}

// text returns the tag value as a string.  Non-string values return their
// wire text.
func (t Tag) text() string {
	if s, ok := t.Value.(Text); ok {
		return string(s)
	}
	return valueString(t.Value)
}
