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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTags(t *testing.T) {
	got, err := ParseTags("  0\nLINE\n  8\n0\n 10\n1.0\n 20\n2.0\n")
	if err != nil {
		t.Fatal(err)
	}
	want := Tags{
		{0, Text("LINE")},
		{8, Text("0")},
		{10, &Vector{X: 1, Y: 2}},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected tags (-want +got):\n%s", d)
	}
}

func TestTagsRoundTrip(t *testing.T) {
	// serializing and re-parsing a tag list is the identity
	tags := Tags{
		{0, Text("LINE")},
		{5, Text("1C4")},
		{62, Integer(7)},
		{40, Real(0.5)},
		{290, Bool(false)},
		{10, &Vector{X: 1.5, Y: -2, Z: 0.25, Is3D: true}},
		{11, &Vector{X: 0, Y: 1}},
		{310, Binary{0xde, 0xad}},
	}
	buf := &bytes.Buffer{}
	if err := tags.DXF(buf); err != nil {
		t.Fatal(err)
	}
	got, err := ParseTags(buf.String())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(tags, got); d != "" {
		t.Errorf("round trip changed tags (-want +got):\n%s", d)
	}
}

func TestTagsQueries(t *testing.T) {
	tags := Tags{
		{0, Text("LINE")},
		{5, Text("FF")},
		{8, Text("0")},
		{62, Integer(7)},
		{8, Text("layer2")},
	}

	if got := tags.DXFType(); got != "LINE" {
		t.Errorf("expected DXF type LINE, got %q", got)
	}
	if handle, err := tags.Handle(); err != nil || handle != "FF" {
		t.Errorf("expected handle FF, got %q, %v", handle, err)
	}
	if !tags.HasTag(62) || tags.HasTag(63) {
		t.Error("HasTag gave wrong answer")
	}
	if v, err := tags.FirstValue(8); err != nil || v != Text("0") {
		t.Errorf("expected first value 0, got %v, %v", v, err)
	}
	if _, err := tags.FirstValue(63); err == nil {
		t.Error("expected error for missing tag")
	} else {
		var notFound *TagNotFoundError
		if !errors.As(err, &notFound) || notFound.Code != 63 {
			t.Errorf("unexpected error %v", err)
		}
	}
	all := tags.FindAll(8)
	if len(all) != 2 {
		t.Errorf("expected 2 tags with code 8, got %d", len(all))
	}
	if i := tags.TagIndex(8, 0, -1); i != 2 {
		t.Errorf("expected index 2, got %d", i)
	}
	if i := tags.TagIndex(8, 3, -1); i != 4 {
		t.Errorf("expected index 4, got %d", i)
	}
	if i := tags.TagIndex(8, 0, 2); i != -1 {
		t.Errorf("expected index -1, got %d", i)
	}
}

func TestTagsNoHandle(t *testing.T) {
	tags := Tags{{0, Text("LINE")}, {8, Text("0")}}
	_, err := tags.Handle()
	var notFound *TagNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *TagNotFoundError, got %v", err)
	}
	if err := tags.ReplaceHandle("2B"); err == nil {
		t.Error("expected error for missing handle tag")
	}
}

func TestTagsDimstyleHandle(t *testing.T) {
	// DIMSTYLE table entries use group code 105 for the handle
	tags := Tags{{0, Text("DIMSTYLE")}, {105, Text("2B")}}
	if handle, err := tags.Handle(); err != nil || handle != "2B" {
		t.Errorf("expected handle 2B, got %q, %v", handle, err)
	}
}

func TestTagsUpdate(t *testing.T) {
	tags := Tags{
		{0, Text("LINE")},
		{8, Text("0")},
	}
	if err := tags.Update(Tag{8, Text("walls")}); err != nil {
		t.Fatal(err)
	}
	if v, _ := tags.FirstValue(8); v != Text("walls") {
		t.Errorf("update failed, got %v", v)
	}
	if err := tags.Update(Tag{62, Integer(1)}); err == nil {
		t.Error("expected error for missing tag")
	}

	tags.SetFirst(Tag{62, Integer(1)})
	if v, _ := tags.FirstValue(62); v != Integer(1) {
		t.Error("SetFirst did not append")
	}
	tags.SetFirst(Tag{62, Integer(2)})
	if len(tags.FindAll(62)) != 1 {
		t.Error("SetFirst appended instead of replacing")
	}
}

func TestTagsRemove(t *testing.T) {
	mk := func() Tags {
		return Tags{
			{0, Text("LINE")},
			{8, Text("0")},
			{62, Integer(7)},
			{8, Text("b")},
		}
	}

	tags := mk()
	tags.RemoveTags(8)
	want := Tags{{0, Text("LINE")}, {62, Integer(7)}}
	if d := cmp.Diff(want, tags); d != "" {
		t.Errorf("RemoveTags (-want +got):\n%s", d)
	}

	tags = mk()
	tags.RemoveTagsExcept(0, 8)
	want = Tags{{0, Text("LINE")}, {8, Text("0")}, {8, Text("b")}}
	if d := cmp.Diff(want, tags); d != "" {
		t.Errorf("RemoveTagsExcept (-want +got):\n%s", d)
	}

	tags = mk()
	popped := tags.PopTags(8)
	if d := cmp.Diff(Tags{{8, Text("0")}, {8, Text("b")}}, popped); d != "" {
		t.Errorf("PopTags popped (-want +got):\n%s", d)
	}
	if d := cmp.Diff(Tags{{0, Text("LINE")}, {62, Integer(7)}}, tags); d != "" {
		t.Errorf("PopTags remaining (-want +got):\n%s", d)
	}

	orig := mk()
	stripped := orig.Strip(62)
	if len(orig) != 4 {
		t.Error("Strip modified the receiver")
	}
	if len(stripped) != 3 {
		t.Errorf("expected 3 tags after Strip, got %d", len(stripped))
	}
}

func TestCollectConsecutiveTags(t *testing.T) {
	tags := Tags{
		{0, Text("POLYLINE")},
		{10, &Vector{X: 1, Y: 1}},
		{10, &Vector{X: 2, Y: 2}},
		{42, Real(0.5)},
		{10, &Vector{X: 3, Y: 3}},
		{0, Text("SEQEND")},
	}
	got := tags.CollectConsecutiveTags([]int{10, 42}, 1, -1)
	if len(got) != 4 {
		t.Errorf("expected 4 tags, got %d", len(got))
	}
	got = tags.CollectConsecutiveTags([]int{10}, 1, 2)
	if len(got) != 1 {
		t.Errorf("expected 1 tag, got %d", len(got))
	}
}

func TestGroupTags(t *testing.T) {
	tags := Tags{
		{2, Text("preamble")}, // before the first split tag, discarded
		{0, Text("VERTEX")},
		{10, &Vector{X: 1, Y: 1}},
		{0, Text("VERTEX")},
		{10, &Vector{X: 2, Y: 2}},
		{0, Text("SEQEND")},
	}
	groups := GroupTags(tags, 0)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].DXFType() != "VERTEX" || groups[2].DXFType() != "SEQEND" {
		t.Error("unexpected group boundaries")
	}
	if len(groups[1]) != 2 {
		t.Errorf("expected 2 tags in second group, got %d", len(groups[1]))
	}
}

func TestMultiTags(t *testing.T) {
	text := strings.Repeat("abcdefgh", 40) + "\nsecond line"
	tags := TextToMultiTags(text, 303, 255, "^J")
	for i, tag := range tags {
		if tag.Code != 303 {
			t.Errorf("tag %d has code %d", i, tag.Code)
		}
		if n := len(tag.text()); n > 255 {
			t.Errorf("tag %d has %d characters", i, n)
		}
	}
	if got := MultiTagsToText(tags, "^J"); got != text {
		t.Errorf("round trip changed text: %q", got)
	}
}

func TestBinaryDataTags(t *testing.T) {
	data := bytes.Repeat([]byte{0xab}, 300)
	tags := BinaryDataTags(data, 160, 310, 128)
	if tags[0].Code != 160 || tags[0].Value != Integer(300) {
		t.Errorf("unexpected length tag %s", tags[0])
	}
	var joined []byte
	for _, tag := range tags[1:] {
		chunk := tag.Value.(Binary)
		if len(chunk) > 128 {
			t.Errorf("chunk too long: %d bytes", len(chunk))
		}
		joined = append(joined, chunk...)
	}
	if !bytes.Equal(joined, data) {
		t.Error("chunks do not reassemble to the original data")
	}
}

func TestTranslatablePointers(t *testing.T) {
	tags := Tags{
		{0, Text("INSERT")},
		{5, Text("1")},
		{330, Text("2")}, // soft pointer, translatable
		{340, Text("3")}, // hard pointer, translatable
		{360, Text("4")}, // hard owner, translatable
		{320, Text("5")}, // arbitrary handle, not translated
	}
	got := tags.TranslatablePointers()
	if len(got) != 3 {
		t.Errorf("expected 3 translatable pointers, got %d", len(got))
	}
}

func TestTagsFilter(t *testing.T) {
	tags := Tags{
		{0, Text("LINE")},
		{5, Text("A1")},
		{8, Text("0")},
		{62, Integer(3)},
	}
	got := tags.Filter(func(tag Tag) bool {
		return KindOf(tag.Code) == KindText
	})
	want := Tags{
		{0, Text("LINE")},
		{5, Text("A1")},
		{8, Text("0")},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("wrong tags (-want +got):\n%s", d)
	}
	if len(tags) != 4 {
		t.Error("Filter modified the receiver")
	}
}
