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

// StructureOptions controls how [NewExtendedTags] partitions an entity.
// The zero value is a useful default.
type StructureOptions struct {
	// Legacy enables R12 compatibility mode: subclass markers, which
	// pre-R13 files are not allowed to contain, are dropped and all tags
	// are merged into the no-class section.
	Legacy bool

	// Strict rejects questionable constructs which the default mode
	// tolerates, for example subclass markers with an empty name.
	Strict bool
}

// ExtendedTags is an entity partitioned into its DXF sections: plain
// subclass tags, application data, extended data (XDATA) and embedded
// objects.
//
// Subclasses[0] always exists and holds the tags before the first subclass
// marker (the structure tag, handle, owner and similar).  Where an
// application data block occurred inside a subclass, the subclass holds a
// placeholder tag (102, i) with i the index into AppData, so that
// [ExtendedTags.Flatten] can restore the original tag order.
type ExtendedTags struct {
	Subclasses []Tags
	AppData    []Tags
	XData      []Tags
	Embedded   []Tags
}

func isAppDataMarker(tag Tag) bool {
	if tag.Code != AppDataMarker {
		return false
	}
	t, ok := tag.Value.(Text)
	return ok && strings.HasPrefix(string(t), "{")
}

func isEmbeddedObjMarker(tag Tag) bool {
	return tag.Code == EmbeddedObjMarker && tag.text() == EmbeddedObjStr
}

// ParseExtendedTags reads a single entity from DXF text and partitions it.
func ParseExtendedTags(text string, opts *StructureOptions) (*ExtendedTags, error) {
	tags, err := ParseTags(text)
	if err != nil {
		return nil, err
	}
	return NewExtendedTags(tags, opts)
}

// NewExtendedTags partitions the tags of a single entity.  The first tag
// must be a structure tag (group code 0).
func NewExtendedTags(tags Tags, opts *StructureOptions) (*ExtendedTags, error) {
	if opts == nil {
		opts = &StructureOptions{}
	}
	if len(tags) == 0 {
		return nil, &StructureError{Err: fmt.Errorf("empty tag list")}
	}
	if tags[0].Code != StructureMarker {
		return nil, &StructureError{
			Err: fmt.Errorf("expected structure tag (0, ...), got group code %d", tags[0].Code),
		}
	}

	x := &ExtendedTags{}
	p := &partitioner{tags: tags, x: x, strict: opts.Strict}
	if err := p.run(); err != nil {
		return nil, err
	}

	if opts.Legacy {
		x.flattenSubclasses()
	}
	return x, nil
}

// partitioner walks the tag list once and distributes the tags over the
// four sections.
type partitioner struct {
	tags   Tags
	pos    int
	x      *ExtendedTags
	strict bool
}

func (p *partitioner) next() (Tag, bool) {
	if p.pos >= len(p.tags) {
		return Tag{}, false
	}
	tag := p.tags[p.pos]
	p.pos++
	return tag, true
}

func (p *partitioner) run() error {
	// the no-class section always exists
	cur := Tags{}
	for {
		tag, ok := p.next()
		if !ok {
			p.x.Subclasses = append(p.x.Subclasses, cur)
			return nil
		}

		switch {
		case tag.Code == SubclassMarker:
			if p.strict && tag.text() == "" {
				return &StructureError{
					Err: fmt.Errorf("subclass marker with empty name"),
				}
			}
			p.x.Subclasses = append(p.x.Subclasses, cur)
			cur = Tags{tag}

		case isEmbeddedObjMarker(tag):
			p.x.Subclasses = append(p.x.Subclasses, cur)
			return p.collectEmbedded(tag)

		case tag.Code == XDataMarker:
			p.x.Subclasses = append(p.x.Subclasses, cur)
			return p.collectXData(tag)

		case isAppDataMarker(tag):
			placeholder, err := p.collectAppData(tag)
			if err != nil {
				return err
			}
			cur = append(cur, placeholder)

		default:
			cur = append(cur, tag)
		}
	}
}

// collectAppData gathers an application data block, from the opening
// (102, "{APPID") tag up to and including the closing (102, "}") tag, and
// returns the placeholder tag to put in its place.
func (p *partitioner) collectAppData(start Tag) (Tag, error) {
	appid := strings.TrimPrefix(start.text(), "{")
	data := Tags{start}
	for {
		tag, ok := p.next()
		if !ok {
			return Tag{}, &StructureError{
				Err: fmt.Errorf("missing closing (102, \"}\") tag for application data %q", appid),
			}
		}
		data = append(data, tag)
		if tag.Code == AppDataMarker {
			if v := tag.text(); v == "}" || v == appid+"}" {
				break
			}
		}
	}
	idx := len(p.x.AppData)
	p.x.AppData = append(p.x.AppData, data)
	return Tag{Code: AppDataMarker, Value: Integer(idx)}, nil
}

// collectEmbedded gathers embedded objects.  Embedded objects follow the
// subclasses and may only be followed by XDATA.
func (p *partitioner) collectEmbedded(start Tag) error {
	cur := Tags{start}
	for {
		tag, ok := p.next()
		if !ok {
			p.x.Embedded = append(p.x.Embedded, cur)
			return nil
		}
		switch {
		case isEmbeddedObjMarker(tag):
			p.x.Embedded = append(p.x.Embedded, cur)
			cur = Tags{tag}
		case tag.Code == XDataMarker:
			p.x.Embedded = append(p.x.Embedded, cur)
			return p.collectXData(tag)
		default:
			cur = append(cur, tag)
		}
	}
}

// collectXData gathers XDATA sections.  XDATA is always the last part of
// an entity; every section starts with a (1001, APPID) tag.
func (p *partitioner) collectXData(start Tag) error {
	if p.strict && start.text() == "" {
		return &StructureError{
			Err: fmt.Errorf("XDATA marker with empty application name"),
		}
	}
	cur := Tags{start}
	for {
		tag, ok := p.next()
		if !ok {
			p.x.XData = append(p.x.XData, cur)
			return nil
		}
		if tag.Code == XDataMarker {
			if p.strict && tag.text() == "" {
				return &StructureError{
					Err: fmt.Errorf("XDATA marker with empty application name"),
				}
			}
			p.x.XData = append(p.x.XData, cur)
			cur = Tags{tag}
		} else if p.strict && !IsValidXDataCode(tag.Code) {
			return &StructureError{
				Err: fmt.Errorf("invalid group code %d in XDATA section %q", tag.Code, start.text()),
			}
		} else {
			cur = append(cur, tag)
		}
	}
}

// flattenSubclasses merges all subclasses into the no-class section,
// dropping the subclass marker tags.  Pre-R13 entities must not contain
// subclass markers, but exporters occasionally emit them anyway.
func (x *ExtendedTags) flattenSubclasses() {
	if len(x.Subclasses) < 2 {
		return
	}
	merged := x.Subclasses[0]
	for _, sub := range x.Subclasses[1:] {
		for _, tag := range sub {
			if tag.Code == SubclassMarker {
				continue
			}
			merged = append(merged, tag)
		}
	}
	x.Subclasses = []Tags{merged}
}

// Noclass returns the tags before the first subclass marker.
func (x *ExtendedTags) Noclass() Tags {
	return x.Subclasses[0]
}

// DXFType returns the entity type, i.e. the value of the leading
// structure tag.
func (x *ExtendedTags) DXFType() string {
	return x.Noclass().DXFType()
}

// Handle returns the entity handle (group code 5, or group code 105 for
// DIMSTYLE table entries).  If the entity has no handle, an error of type
// [*TagNotFoundError] is returned.
func (x *ExtendedTags) Handle() (string, error) {
	noclass := x.Noclass()
	for _, tag := range noclass {
		if IsHandleCode(tag.Code) {
			return tag.text(), nil
		}
	}
	return "", &TagNotFoundError{Code: 5}
}

// ReplaceHandle changes the entity handle in place.  An error of type
// [*TagNotFoundError] is returned if the entity has no handle tag.
func (x *ExtendedTags) ReplaceHandle(handle string) error {
	noclass := x.Noclass()
	for i, tag := range noclass {
		if IsHandleCode(tag.Code) {
			noclass[i].Value = Text(handle)
			return nil
		}
	}
	return &TagNotFoundError{Code: 5}
}

// Owner returns the handle of the owning object (group code 330), or an
// error of type [*TagNotFoundError].
func (x *ExtendedTags) Owner() (string, error) {
	tag, err := x.Noclass().FirstTag(330)
	if err != nil {
		return "", err
	}
	return tag.text(), nil
}

// HasSubclass reports whether a subclass with the given marker name
// exists.
func (x *ExtendedTags) HasSubclass(name string) bool {
	return x.Subclass(name) != nil
}

// Subclass returns the first subclass with the given marker name, or nil
// if no such subclass exists.
func (x *ExtendedTags) Subclass(name string) Tags {
	for _, sub := range x.Subclasses[1:] {
		if len(sub) > 0 && sub[0].text() == name {
			return sub
		}
	}
	return nil
}

// SubclassAfter returns the first subclass with the given marker name at
// index start or later, skipping Subclasses[0].  Entities can contain two
// same-named subclasses (MATERIAL is the known offender); start allows
// addressing the second one.
func (x *ExtendedTags) SubclassAfter(name string, start int) Tags {
	if start < 1 {
		start = 1
	}
	for _, sub := range x.Subclasses[start:] {
		if len(sub) > 0 && sub[0].text() == name {
			return sub
		}
	}
	return nil
}

// HasXData reports whether an XDATA section for the given application
// exists.
func (x *ExtendedTags) HasXData(appid string) bool {
	return x.XDataFor(appid) != nil
}

// XDataFor returns the XDATA section for the given application, or nil.
func (x *ExtendedTags) XDataFor(appid string) Tags {
	for _, xdata := range x.XData {
		if xdata[0].text() == appid {
			return xdata
		}
	}
	return nil
}

// NewXData appends a new XDATA section for the given application and
// returns its index into XData.  tags are the tags following the
// (1001, appid) marker.
func (x *ExtendedTags) NewXData(appid string, tags Tags) int {
	section := Tags{{Code: XDataMarker, Value: Text(appid)}}
	section = append(section, tags...)
	x.XData = append(x.XData, section)
	return len(x.XData) - 1
}

// HasAppData reports whether an application data block for the given
// application exists.
func (x *ExtendedTags) HasAppData(appid string) bool {
	return x.AppDataFor(appid) != nil
}

// AppDataFor returns the application data block for the given application
// including its opening and closing marker tags, or nil.  The appid
// includes the leading "{", e.g. "{ACAD_REACTORS".
func (x *ExtendedTags) AppDataFor(appid string) Tags {
	for _, data := range x.AppData {
		if data[0].text() == appid {
			return data
		}
	}
	return nil
}

// AppDataContent returns the tags of an application data block without
// the marker tags, or nil if no such block exists.
func (x *ExtendedTags) AppDataContent(appid string) Tags {
	data := x.AppDataFor(appid)
	if data == nil {
		return nil
	}
	return data[1 : len(data)-1]
}

// NewAppData appends a new application data block to the no-class section
// and returns its index into AppData.  tags are the tags between the
// marker tags; appid includes the leading "{".
func (x *ExtendedTags) NewAppData(appid string, tags Tags) int {
	data := Tags{{Code: AppDataMarker, Value: Text(appid)}}
	data = append(data, tags...)
	data = append(data, Tag{Code: AppDataMarker, Value: Text("}")})

	idx := len(x.AppData)
	x.AppData = append(x.AppData, data)
	x.Subclasses[0] = append(x.Subclasses[0],
		Tag{Code: AppDataMarker, Value: Integer(idx)})
	return idx
}

// EntityName returns a short description of the entity for error
// messages, e.g. `LINE(#1C4)`.
func (x *ExtendedTags) EntityName() string {
	name := x.DXFType()
	if name == "" {
		name = "UNKNOWN"
	}
	handle, err := x.Handle()
	if err != nil {
		return name
	}
	return fmt.Sprintf("%s(#%s)", name, handle)
}

// Clone returns a deep copy.
func (x *ExtendedTags) Clone() *ExtendedTags {
	clone := &ExtendedTags{}
	for _, sub := range x.Subclasses {
		clone.Subclasses = append(clone.Subclasses, sub.Clone())
	}
	for _, data := range x.AppData {
		clone.AppData = append(clone.AppData, data.Clone())
	}
	for _, xdata := range x.XData {
		clone.XData = append(clone.XData, xdata.Clone())
	}
	for _, emb := range x.Embedded {
		clone.Embedded = append(clone.Embedded, emb.Clone())
	}
	return clone
}

// Flatten reassembles the entity into a single flat tag list in file
// order: the subclasses with application data expanded in place, followed
// by the embedded objects and the XDATA sections.
func (x *ExtendedTags) Flatten() Tags {
	var res Tags
	for _, sub := range x.Subclasses {
		for _, tag := range sub {
			if tag.Code == AppDataMarker {
				if idx, ok := tag.Value.(Integer); ok {
					res = append(res, x.AppData[idx]...)
					continue
				}
			}
			res = append(res, tag)
		}
	}
	for _, emb := range x.Embedded {
		res = append(res, emb...)
	}
	for _, xdata := range x.XData {
		res = append(res, xdata...)
	}
	return res
}
