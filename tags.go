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

	"golang.org/x/exp/slices"
)

// Tags is an ordered collection of DXF tags, the parse result of one entity
// or section chunk.  Tag order is preserved on iteration and writing: even
// though the DXF reference claims tag order is irrelevant, many CAD
// applications depend on it, and some group codes repeat with positional
// meaning (MATERIAL reuses map group codes for normal and diffuse maps).
// Duplicate group codes are allowed; group-code lookups return the first
// match unless all matches are requested explicitly.
type Tags []Tag

// ParseTags tokenizes a DXF text fragment into a tag list.  Consecutive
// coordinate tags are collapsed into point tags, comment tags are kept.
func ParseTags(text string) (Tags, error) {
	s := NewScanner(strings.NewReader(text), &ScannerOptions{KeepComments: true})
	var tags Tags
	for {
		tag, err := s.Next()
		if err == io.EOF {
			return tags, nil
		} else if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
}

// Clone returns a deep copy of the tag list.
func (t Tags) Clone() Tags {
	clone := make(Tags, len(t))
	for i, tag := range t {
		clone[i] = tag.Clone()
	}
	return clone
}

// DXF writes the wire representation of all tags to w, in order.
func (t Tags) DXF(w io.Writer) error {
	for _, tag := range t {
		if err := tag.DXF(w); err != nil {
			return err
		}
	}
	return nil
}

// DXFType returns the entity or section type, the value of the leading
// (0, ...) tag.  The empty string indicates a list which does not start
// with a structure tag.
func (t Tags) DXFType() string {
	if len(t) == 0 || t[0].Code != StructureMarker {
		return ""
	}
	return t[0].text()
}

// Handle returns the entity handle as a plain hex string like "FF00".
// The handle tag uses group code 5, or 105 for DIMSTYLE table entries.
func (t Tags) Handle() (string, error) {
	// fast path: the handle usually follows the type tag
	if len(t) > 1 && IsHandleCode(t[1].Code) {
		return t[1].text(), nil
	}
	for _, tag := range t {
		if IsHandleCode(tag.Code) {
			return tag.text(), nil
		}
	}
	return "", &TagNotFoundError{Code: 5}
}

// ReplaceHandle replaces the value of the existing handle tag.  Callers
// must check [Tags.HasTag] first if the handle is optional.
func (t Tags) ReplaceHandle(handle string) error {
	for i, tag := range t {
		if IsHandleCode(tag.Code) {
			t[i] = Tag{Code: tag.Code, Value: Text(handle)}
			return nil
		}
	}
	return &TagNotFoundError{Code: 5}
}

// HasTag reports whether a tag with the given group code is present.
func (t Tags) HasTag(code int) bool {
	return slices.ContainsFunc(t, func(tag Tag) bool {
		return tag.Code == code
	})
}

// FirstValue returns the value of the first tag with the given group code.
// If no such tag exists, a [*TagNotFoundError] naming the code is returned.
func (t Tags) FirstValue(code int) (Value, error) {
	tag, err := t.FirstTag(code)
	if err != nil {
		return nil, err
	}
	return tag.Value, nil
}

// FirstTag returns the first tag with the given group code.  If no such
// tag exists, a [*TagNotFoundError] naming the code is returned.
func (t Tags) FirstTag(code int) (Tag, error) {
	for _, tag := range t {
		if tag.Code == code {
			return tag, nil
		}
	}
	return Tag{}, &TagNotFoundError{Code: code}
}

// FindAll returns all tags with the given group code, in original order.
func (t Tags) FindAll(code int) Tags {
	var res Tags
	for _, tag := range t {
		if tag.Code == code {
			res = append(res, tag)
		}
	}
	return res
}

// TagIndex returns the index of the first tag with the given group code in
// the range [start, end), or -1 if there is none.  A negative end stands
// for the end of the list.
func (t Tags) TagIndex(code, start, end int) int {
	if end < 0 || end > len(t) {
		end = len(t)
	}
	for i := start; i < end; i++ {
		if t[i].Code == code {
			return i
		}
	}
	return -1
}

// Update replaces the first existing tag with the same group code as tag.
// If no such tag exists, a [*TagNotFoundError] is returned; use
// [Tags.SetFirst] for update-or-append semantics.
func (t Tags) Update(tag Tag) error {
	i := t.TagIndex(tag.Code, 0, -1)
	if i < 0 {
		return &TagNotFoundError{Code: tag.Code}
	}
	t[i] = tag
	return nil
}

// SetFirst replaces the first existing tag with the same group code, or
// appends the tag if no such tag exists.
func (t *Tags) SetFirst(tag Tag) {
	if err := (*t).Update(tag); err != nil {
		*t = append(*t, tag)
	}
}

// RemoveTags removes all tags with the given group codes in place.
// The order of the remaining tags is unchanged.
func (t *Tags) RemoveTags(codes ...int) {
	drop := makeCodeSet(codes)
	*t = slices.DeleteFunc(*t, func(tag Tag) bool {
		return drop[tag.Code]
	})
}

// RemoveTagsExcept removes all tags except those with the given group
// codes in place.
func (t *Tags) RemoveTagsExcept(codes ...int) {
	keep := makeCodeSet(codes)
	*t = slices.DeleteFunc(*t, func(tag Tag) bool {
		return !keep[tag.Code]
	})
}

// PopTags removes all tags with the given group codes in place and returns
// the removed tags in original order.
func (t *Tags) PopTags(codes ...int) Tags {
	match := makeCodeSet(codes)
	var popped, remaining Tags
	for _, tag := range *t {
		if match[tag.Code] {
			popped = append(popped, tag)
		} else {
			remaining = append(remaining, tag)
		}
	}
	*t = remaining
	return popped
}

// Strip returns a new tag list with all tags whose group code is in codes
// removed.  The receiver is not modified.
func (t Tags) Strip(codes ...int) Tags {
	drop := makeCodeSet(codes)
	var res Tags
	for _, tag := range t {
		if !drop[tag.Code] {
			res = append(res, tag)
		}
	}
	return res
}

// CollectConsecutiveTags scans forward from start and collects tags while
// their group code is in codes; the first tag with a code outside the set,
// or reaching end, stops the scan.  A negative end stands for the end of
// the list.  This is the primitive for slicing out runs like the vertex
// tags of one POLYLINE sub-entity or the XDATA lines of one APPID block.
func (t Tags) CollectConsecutiveTags(codes []int, start, end int) Tags {
	match := makeCodeSet(codes)
	if end < 0 || end > len(t) {
		end = len(t)
	}
	var res Tags
	for i := start; i < end; i++ {
		if !match[t[i].Code] {
			break
		}
		res = append(res, t[i])
	}
	return res
}

// Filter returns the tags for which keep returns true, in original order.
// The receiver is not modified.
func (t Tags) Filter(keep func(Tag) bool) Tags {
	var res Tags
	for _, tag := range t {
		if keep(tag) {
			res = append(res, tag)
		}
	}
	return res
}

// TranslatablePointers returns all pointer tags whose handle value has to
// be translated during INSERT and XREF operations.
func (t Tags) TranslatablePointers() Tags {
	return t.Filter(func(tag Tag) bool {
		return IsTranslatablePointer(tag.Code)
	})
}

// HasEmbeddedObject reports whether the list contains an embedded object
// marker tag.
func (t Tags) HasEmbeddedObject() bool {
	return slices.ContainsFunc(t, isEmbeddedObjMarker)
}

func makeCodeSet(codes []int) map[int]bool {
	set := make(map[int]bool, len(codes))
	for _, code := range codes {
		set[code] = true
	}
	return set
}

// GroupTags splits a flat tag stream into groups.  Each group starts with a
// tag of the given split code and ends before the next such tag.  Tags in
// front of the first split tag are discarded.
func GroupTags(tags Tags, splitCode int) []Tags {
	var groups []Tags
	var group Tags
	for _, tag := range tags {
		if tag.Code == splitCode {
			if group != nil {
				groups = append(groups, group)
			}
			group = Tags{tag}
		} else if group != nil {
			group = append(group, tag)
		}
	}
	if group != nil {
		groups = append(groups, group)
	}
	return groups
}

// TextToMultiTags splits a long string across repeated tags of the given
// group code, at most size characters each.  Newlines are replaced by the
// lineEnding sequence (usually "^J") first.
func TextToMultiTags(text string, code, size int, lineEnding string) Tags {
	text = strings.ReplaceAll(text, "\n", lineEnding)
	var tags Tags
	for len(text) > size {
		tags = append(tags, Tag{Code: code, Value: Text(text[:size])})
		text = text[size:]
	}
	if len(text) > 0 {
		tags = append(tags, Tag{Code: code, Value: Text(text)})
	}
	return tags
}

// MultiTagsToText joins the string values of a tag run created by
// [TextToMultiTags] back into a single string.
func MultiTagsToText(tags Tags, lineEnding string) string {
	b := &strings.Builder{}
	for _, tag := range tags {
		b.WriteString(tag.text())
	}
	return strings.ReplaceAll(b.String(), lineEnding, "\n")
}

// BinaryDataTags converts a binary blob into a length tag followed by a
// run of binary chunk tags of at most chunkSize bytes each.  This is the
// layout used for preview images and proxy graphics.
func BinaryDataTags(data []byte, lengthCode, valueCode, chunkSize int) Tags {
	tags := Tags{{Code: lengthCode, Value: Integer(len(data))}}
	for len(data) > 0 {
		n := min(chunkSize, len(data))
		chunk := make(Binary, n)
		copy(chunk, data[:n])
		tags = append(tags, Tag{Code: valueCode, Value: chunk})
		data = data[n:]
	}
	return tags
}
