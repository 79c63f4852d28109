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

// Package dxf provides support for reading and writing DXF files.
//
// This package treats a DXF file as a flat stream of tags, where each tag is
// a group code together with a value.  On the wire a tag occupies two lines,
// the group code followed by the value:
//
//	  0
//	LINE
//	  8
//	0
//
// A [Scanner] turns a text stream into a sequence of [Tag] values, collapsing
// consecutive coordinate tags into point tags as it goes.  [Tags] is the
// ordered container for one entity or section chunk, with group-code-aware
// query and update operations.  [ExtendedTags] structures the flat tag list
// of one entity into subclasses, application defined data, and extended data,
// following the DXF R13+ subclass marker convention while tolerating the
// unmarked layout of DXF R12 files.
//
// An [EntityReader] reads a whole stream entity by entity:
//
//	r := dxf.NewEntityReader(fd, nil)
//	for {
//	    entity, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    ... use entity ...
//	}
//
// Structural damage in one entity does not abort the whole read; broken
// entities are recorded and reading continues with the next entity, so that
// files from non-compliant writers can still be loaded.
//
// The reverse path uses a [TagWriter] (or [BinaryTagWriter] for the binary
// variant of the format) to serialize tags back into a byte stream.
package dxf
