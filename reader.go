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
	"io"
)

// EntityReaderOptions controls an [EntityReader].  The zero value is a
// useful default.
type EntityReaderOptions struct {
	Scanner   ScannerOptions
	Structure StructureOptions
}

// SkippedEntity records an entity the [EntityReader] could not parse.
type SkippedEntity struct {
	// DXFType is the entity type, if it could be determined.
	DXFType string

	// Line is the input position where the entity started.
	Line int

	// Err describes the damage.
	Err error
}

// EntityReader splits a tag stream into entities, i.e. groups of tags
// starting with a structure tag (group code 0), and partitions each group
// into an [ExtendedTags].
//
// The reader is tolerant: an entity with structural damage is recorded
// and skipped, and reading resumes at the next structure tag.  Use
// [EntityReader.Skipped] after reading to check for damage.
type EntityReader struct {
	s       *Scanner
	opts    StructureOptions
	pending *Tag
	skipped []SkippedEntity
	done    bool
}

// NewEntityReader creates an EntityReader for DXF text.
func NewEntityReader(r io.Reader, opts *EntityReaderOptions) *EntityReader {
	if opts == nil {
		opts = &EntityReaderOptions{}
	}
	return &EntityReader{
		s:    NewScanner(r, &opts.Scanner),
		opts: opts.Structure,
	}
}

// NewEntityReaderFrom creates an EntityReader on top of an existing
// Scanner, for example one produced by [NewBinaryScanner].
func NewEntityReaderFrom(s *Scanner, opts *StructureOptions) *EntityReader {
	if opts == nil {
		opts = &StructureOptions{}
	}
	return &EntityReader{s: s, opts: *opts}
}

// Skipped returns the entities skipped so far because of structural
// damage.
func (r *EntityReader) Skipped() []SkippedEntity {
	return r.skipped
}

// Next returns the next entity.  At the end of the input, or when the
// (0, "EOF") terminator is reached, io.EOF is returned.
func (r *EntityReader) Next() (*ExtendedTags, error) {
	for {
		if r.done {
			return nil, io.EOF
		}

		tags, line, err := r.collect()
		if err == io.EOF {
			r.done = true
			return nil, io.EOF
		} else if err != nil {
			var structErr *StructureError
			if !errors.As(err, &structErr) {
				return nil, err
			}
			r.skip(tags, line, err)
			continue
		}

		x, err := NewExtendedTags(tags, &r.opts)
		if err != nil {
			r.skip(tags, line, err)
			continue
		}
		return x, nil
	}
}

// collect gathers the tags of one entity: a structure tag and everything
// up to the next structure tag.  Tags before the first structure tag of
// the stream are ignored.
func (r *EntityReader) collect() (Tags, int, error) {
	start, line, err := r.startTag()
	if err != nil {
		return nil, line, err
	}
	if start.text() == "EOF" {
		return nil, line, io.EOF
	}

	tags := Tags{start}
	for {
		tag, err := r.s.Next()
		if err == io.EOF {
			return tags, line, nil
		} else if err != nil {
			return tags, line, err
		}
		if tag.Code == StructureMarker {
			r.pending = &tag
			return tags, line, nil
		}
		tags = append(tags, tag)
	}
}

// startTag returns the structure tag opening the next entity.
func (r *EntityReader) startTag() (Tag, int, error) {
	if r.pending != nil {
		tag := *r.pending
		r.pending = nil
		return tag, r.s.Line(), nil
	}
	for {
		tag, err := r.s.Next()
		if err != nil {
			return Tag{}, r.s.Line(), err
		}
		if tag.Code == StructureMarker {
			return tag, r.s.Line(), nil
		}
	}
}

// skip records a damaged entity and resynchronizes the scanner at the
// next structure tag.
func (r *EntityReader) skip(tags Tags, line int, err error) {
	rec := SkippedEntity{Line: line, Err: err}
	if len(tags) > 0 {
		rec.DXFType = tags.DXFType()
	}
	r.skipped = append(r.skipped, rec)

	if r.pending != nil {
		return
	}
	for {
		tag, err := r.s.Next()
		if err == io.EOF {
			r.done = true
			return
		} else if err != nil {
			var structErr *StructureError
			if !errors.As(err, &structErr) {
				r.done = true
				return
			}
			continue
		}
		if tag.Code == StructureMarker {
			r.pending = &tag
			return
		}
	}
}

// ReadAll reads all entities from r.  Damaged entities are skipped; the
// second return value lists them.
func ReadAll(r io.Reader, opts *EntityReaderOptions) ([]*ExtendedTags, []SkippedEntity, error) {
	er := NewEntityReader(r, opts)
	var res []*ExtendedTags
	for {
		x, err := er.Next()
		if err == io.EOF {
			return res, er.Skipped(), nil
		} else if err != nil {
			return res, er.Skipped(), err
		}
		res = append(res, x)
	}
}
