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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// packThreshold is the minimum run length at which [NewTagRun] packs a
// run of same-code tags.  Shorter runs are not worth the indirection.
const packThreshold = 8

// TagRun is a compact in-memory replacement for a run of tags sharing a
// single group code.  Mesh vertices and long handle lists dominate the
// size of real-world files, and storing them tag-by-tag wastes memory.
type TagRun interface {
	// Code returns the shared group code of the run.
	Code() int

	// Len returns the number of tags in the run.
	Len() int

	// Tag returns the i-th tag of the run.
	Tag(i int) Tag

	// AppendTag adds a tag to the end of the run.  The tag must have the
	// shared group code and a compatible value.
	AppendTag(tag Tag) error

	// Tags expands the run back into a flat tag list.
	Tags() Tags
}

// NewTagRun packs the run of same-code tags starting at tags[start] and
// returns the packed run together with the number of tags consumed.  If
// the run is too short to be worth packing, nil and 0 are returned.
func NewTagRun(tags Tags, start int) (TagRun, int) {
	if start < 0 || start >= len(tags) {
		return nil, 0
	}
	code := tags[start].Code
	n := 1
	for start+n < len(tags) && tags[start+n].Code == code {
		n++
	}
	if n < packThreshold {
		return nil, 0
	}

	run := tags[start : start+n]
	var packed TagRun
	switch {
	case IsPointCode(code):
		packed = NewVertexArray(code, vertexStride(run))
	case KindOf(code).IsInteger():
		packed = NewIntArray(code)
	default:
		packed = NewValueList(code)
	}
	for _, tag := range run {
		if err := packed.AppendTag(tag); err != nil {
			return nil, 0
		}
	}
	return packed, n
}

// vertexStride returns 3 if any tag of the run holds a 3D point, and
// 2 otherwise.
func vertexStride(run Tags) int {
	for _, tag := range run {
		if v, ok := tag.Value.(*Vector); ok && v.Is3D {
			return 3
		}
	}
	return 2
}

// ValueList stores a run of same-code tags as a flat value slice.  The
// typical use is the list of (330, handle) owner tags in DICTIONARY-like
// containers.
type ValueList struct {
	code   int
	Values []Value
}

// NewValueList creates an empty ValueList for the given group code.
func NewValueList(code int) *ValueList {
	return &ValueList{code: code}
}

// Code returns the shared group code.
func (l *ValueList) Code() int {
	return l.code
}

// Len returns the number of values.
func (l *ValueList) Len() int {
	return len(l.Values)
}

// Tag returns the i-th tag of the run.
func (l *ValueList) Tag(i int) Tag {
	return Tag{Code: l.code, Value: l.Values[i]}
}

// AppendTag adds a tag to the end of the run.
func (l *ValueList) AppendTag(tag Tag) error {
	if tag.Code != l.code {
		return fmt.Errorf("group code %d does not match packed run code %d",
			tag.Code, l.code)
	}
	l.Values = append(l.Values, tag.Value)
	return nil
}

// Tags expands the run into a flat tag list.
func (l *ValueList) Tags() Tags {
	res := make(Tags, len(l.Values))
	for i, v := range l.Values {
		res[i] = Tag{Code: l.code, Value: v}
	}
	return res
}

// Clone returns a deep copy.
func (l *ValueList) Clone() *ValueList {
	clone := &ValueList{code: l.code, Values: make([]Value, len(l.Values))}
	for i, v := range l.Values {
		clone.Values[i] = cloneValue(v)
	}
	return clone
}

// IntArray stores a run of same-code integer tags as a flat int64 slice.
// Large index arrays (mesh face lists, edge indices) use this layout.
type IntArray struct {
	code   int
	Values []int64
}

// NewIntArray creates an empty IntArray for the given group code.
func NewIntArray(code int) *IntArray {
	return &IntArray{code: code}
}

// Code returns the shared group code.
func (a *IntArray) Code() int {
	return a.code
}

// Len returns the number of values.
func (a *IntArray) Len() int {
	return len(a.Values)
}

// Tag returns the i-th tag of the run.
func (a *IntArray) Tag(i int) Tag {
	return Tag{Code: a.code, Value: Integer(a.Values[i])}
}

// AppendTag adds an integer tag to the end of the run.
func (a *IntArray) AppendTag(tag Tag) error {
	if tag.Code != a.code {
		return fmt.Errorf("group code %d does not match packed run code %d",
			tag.Code, a.code)
	}
	v, ok := tag.Value.(Integer)
	if !ok {
		return fmt.Errorf("group code %d: integer value required", tag.Code)
	}
	a.Values = append(a.Values, int64(v))
	return nil
}

// Tags expands the run into a flat tag list.
func (a *IntArray) Tags() Tags {
	res := make(Tags, len(a.Values))
	for i, v := range a.Values {
		res[i] = Tag{Code: a.code, Value: Integer(v)}
	}
	return res
}

// Clone returns a deep copy.
func (a *IntArray) Clone() *IntArray {
	return &IntArray{code: a.code, Values: append([]int64(nil), a.Values...)}
}

// PackedDict stores the entries of a DICTIONARY object, pairs of a name
// tag and a handle tag, as a flat list of key/value pairs.  Unlike the
// [TagRun] types a dict run spans two group codes, so it has its own
// interface.
type PackedDict struct {
	KeyCode   int
	ValueCode int
	Keys      []string
	Values    []string
}

// NewPackedDict creates an empty PackedDict with the standard DICTIONARY
// group codes, 3 for entry names and 350 for entry handles.
func NewPackedDict() *PackedDict {
	return &PackedDict{KeyCode: 3, ValueCode: 350}
}

// Len returns the number of entries.
func (d *PackedDict) Len() int {
	return len(d.Keys)
}

// Get returns the value for the given key.  The second return value
// reports whether the key exists.
func (d *PackedDict) Get(key string) (string, bool) {
	for i, k := range d.Keys {
		if k == key {
			return d.Values[i], true
		}
	}
	return "", false
}

// Set adds or replaces an entry.  New keys are appended, so the original
// file order of existing entries is preserved.
func (d *PackedDict) Set(key, value string) {
	for i, k := range d.Keys {
		if k == key {
			d.Values[i] = value
			return
		}
	}
	d.Keys = append(d.Keys, key)
	d.Values = append(d.Values, value)
}

// Delete removes an entry.  Deleting a missing key is a no-op.
func (d *PackedDict) Delete(key string) {
	for i, k := range d.Keys {
		if k == key {
			d.Keys = append(d.Keys[:i], d.Keys[i+1:]...)
			d.Values = append(d.Values[:i], d.Values[i+1:]...)
			return
		}
	}
}

// AppendTags packs a run of alternating key and value tags into the dict.
// The run ends at the first tag which is neither a key nor a value tag;
// the number of consumed tags is returned.  A key tag without a following
// value tag is an error.
func (d *PackedDict) AppendTags(tags Tags) (int, error) {
	n := 0
	for n+1 < len(tags) &&
		tags[n].Code == d.KeyCode && tags[n+1].Code == d.ValueCode {
		d.Set(tags[n].text(), tags[n+1].text())
		n += 2
	}
	if n < len(tags) && tags[n].Code == d.KeyCode {
		return n, fmt.Errorf("dictionary key %q without a value tag",
			tags[n].text())
	}
	return n, nil
}

// Tags expands the dict back into alternating key and value tags.
func (d *PackedDict) Tags() Tags {
	res := make(Tags, 0, 2*len(d.Keys))
	for i, k := range d.Keys {
		res = append(res,
			Tag{Code: d.KeyCode, Value: Text(k)},
			Tag{Code: d.ValueCode, Value: Text(d.Values[i])})
	}
	return res
}

// Clone returns a deep copy.
func (d *PackedDict) Clone() *PackedDict {
	return &PackedDict{
		KeyCode:   d.KeyCode,
		ValueCode: d.ValueCode,
		Keys:      append([]string(nil), d.Keys...),
		Values:    append([]string(nil), d.Values...),
	}
}

// VertexArray stores a run of point tags as a flat coordinate slice.
// The stride is 2 for 2D points and 3 for 3D points; all points of a run
// share one stride.
type VertexArray struct {
	code   int
	stride int
	data   []float64
}

// NewVertexArray creates an empty VertexArray for point tags with the
// given group code.  stride must be 2 or 3.
func NewVertexArray(code int, stride int) *VertexArray {
	if stride != 2 && stride != 3 {
		panic(fmt.Sprintf("invalid vertex stride %d", stride))
	}
	return &VertexArray{code: code, stride: stride}
}

// Code returns the shared group code.
func (a *VertexArray) Code() int {
	return a.code
}

// Stride returns the number of coordinates per point, 2 or 3.
func (a *VertexArray) Stride() int {
	return a.stride
}

// Len returns the number of points.
func (a *VertexArray) Len() int {
	return len(a.data) / a.stride
}

// Get returns the i-th point.
func (a *VertexArray) Get(i int) *Vector {
	base := i * a.stride
	v := &Vector{X: a.data[base], Y: a.data[base+1]}
	if a.stride == 3 {
		v.Z = a.data[base+2]
		v.Is3D = true
	}
	return v
}

// Set overwrites the i-th point.
func (a *VertexArray) Set(i int, v *Vector) {
	base := i * a.stride
	a.data[base] = v.X
	a.data[base+1] = v.Y
	if a.stride == 3 {
		a.data[base+2] = v.Z
	}
}

// Append adds a point to the end of the array.
func (a *VertexArray) Append(v *Vector) {
	a.data = append(a.data, v.X, v.Y)
	if a.stride == 3 {
		a.data = append(a.data, v.Z)
	}
}

// Extend adds all given points to the end of the array.
func (a *VertexArray) Extend(vv []*Vector) {
	for _, v := range vv {
		a.Append(v)
	}
}

// Insert inserts a point before index i.
func (a *VertexArray) Insert(i int, v *Vector) {
	coords := make([]float64, a.stride)
	coords[0] = v.X
	coords[1] = v.Y
	if a.stride == 3 {
		coords[2] = v.Z
	}
	base := i * a.stride
	a.data = append(a.data[:base], append(coords, a.data[base:]...)...)
}

// Delete removes the i-th point.
func (a *VertexArray) Delete(i int) {
	base := i * a.stride
	a.data = append(a.data[:base], a.data[base+a.stride:]...)
}

// Tag returns the i-th tag of the run.
func (a *VertexArray) Tag(i int) Tag {
	return Tag{Code: a.code, Value: a.Get(i)}
}

// AppendTag adds a point tag to the end of the run.
func (a *VertexArray) AppendTag(tag Tag) error {
	if tag.Code != a.code {
		return fmt.Errorf("group code %d does not match packed run code %d",
			tag.Code, a.code)
	}
	v, ok := tag.Value.(*Vector)
	if !ok {
		return fmt.Errorf("group code %d: point value required", tag.Code)
	}
	if v.Is3D != (a.stride == 3) {
		return fmt.Errorf("group code %d: point dimension does not match stride %d",
			tag.Code, a.stride)
	}
	a.Append(v)
	return nil
}

// Tags expands the run into a flat tag list.
func (a *VertexArray) Tags() Tags {
	res := make(Tags, 0, a.Len())
	for i := 0; i < a.Len(); i++ {
		res = append(res, a.Tag(i))
	}
	return res
}

// Clone returns a deep copy.
func (a *VertexArray) Clone() *VertexArray {
	clone := &VertexArray{code: a.code, stride: a.stride}
	clone.data = append(clone.data, a.data...)
	return clone
}

// Transform applies an affine transformation to the x and y coordinates
// of all points.  The z coordinates, if present, are left alone.
func (a *VertexArray) Transform(m matrix.Matrix) {
	for base := 0; base < len(a.data); base += a.stride {
		x, y := a.data[base], a.data[base+1]
		a.data[base] = m[0]*x + m[2]*y + m[4]
		a.data[base+1] = m[1]*x + m[3]*y + m[5]
	}
}

// Bounds returns the bounding box of the x and y coordinates.  For an
// empty array the zero rectangle is returned.
func (a *VertexArray) Bounds() rect.Rect {
	if len(a.data) == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for base := 0; base < len(a.data); base += a.stride {
		x, y := a.data[base], a.data[base+1]
		b.LLx = math.Min(b.LLx, x)
		b.LLy = math.Min(b.LLy, y)
		b.URx = math.Max(b.URx, x)
		b.URy = math.Max(b.URy, y)
	}
	return b
}

// PackTags replaces all long same-code runs in tags by packed runs and
// returns the resulting mixed representation: a list where each element
// is either a [Tag] or a [TagRun].
func PackTags(tags Tags) []any {
	var res []any
	i := 0
	for i < len(tags) {
		if run, n := NewTagRun(tags, i); run != nil {
			res = append(res, run)
			i += n
			continue
		}
		res = append(res, tags[i])
		i++
	}
	return res
}

// UnpackTags expands a mixed representation produced by [PackTags] back
// into a flat tag list.
func UnpackTags(packed []any) Tags {
	var res Tags
	for _, el := range packed {
		switch el := el.(type) {
		case Tag:
			res = append(res, el)
		case TagRun:
			res = append(res, el.Tags()...)
		default:
			panic(fmt.Sprintf("unexpected element type %T", el))
		}
	}
	return res
}
