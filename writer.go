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
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"golang.org/x/text/encoding"
)

// WriterOptions controls tag serialization.  The zero value writes a file
// for [LatestVersion].
type WriterOptions struct {
	// Version selects the target DXF version.  The version decides the
	// text encoding: files before R2007 use a windows code page with
	// \U+XXXX escapes, later files use UTF-8.
	Version Version

	// Codepage is the $DWGCODEPAGE value for pre-R2007 files.  The
	// default is "ANSI_1252".
	Codepage string

	// OmitHandles suppresses entity handle tags (group codes 5 and 105)
	// in the output.  R12 files may omit handles entirely.
	OmitHandles bool
}

func (opts *WriterOptions) fill() (Version, string) {
	version := LatestVersion
	codepage := "ANSI_1252"
	if opts != nil {
		if opts.Version != "" {
			version = opts.Version
		}
		if opts.Codepage != "" {
			codepage = opts.Codepage
		}
	}
	return version, codepage
}

// TagWriter writes tags in the two-line text encoding.
type TagWriter struct {
	w           io.Writer
	unicode     bool
	omitHandles bool
	encoder     *encoding.Encoder
}

// NewTagWriter creates a TagWriter.
func NewTagWriter(w io.Writer, opts *WriterOptions) *TagWriter {
	version, codepage := opts.fill()
	tw := &TagWriter{w: w, omitHandles: opts != nil && opts.OmitHandles}
	if version.Encoding() == "utf8" {
		tw.unicode = true
	} else {
		tw.encoder = EncodingFor(codepage).NewEncoder()
	}
	return tw
}

// WriteTag writes a single tag.  Point tags are expanded into their
// coordinate tags.
func (tw *TagWriter) WriteTag(tag Tag) error {
	if tw.omitHandles && IsHandleCode(tag.Code) {
		return nil
	}
	if v, ok := tag.Value.(*Vector); ok {
		return tw.WriteVertex(tag.Code, v)
	}
	if v, ok := tag.Value.(Text); ok {
		return tw.WriteString(tag.Code, string(v))
	}

	_, err := fmt.Fprintf(tw.w, "%3d\n", tag.Code)
	if err != nil {
		return err
	}
	err = tag.Value.DXF(tw.w)
	if err != nil {
		return err
	}
	_, err = io.WriteString(tw.w, "\n")
	return err
}

// WriteValue writes a single tag given as group code and value.
func (tw *TagWriter) WriteValue(code int, v Value) error {
	return tw.WriteTag(Tag{Code: code, Value: v})
}

// WriteString writes a text tag.  For pre-R2007 files, characters the
// code page cannot express are written as \U+XXXX escape sequences.
func (tw *TagWriter) WriteString(code int, s string) error {
	if !tw.unicode {
		enc, err := tw.encoder.String(s)
		if err != nil {
			// the escaped form is pure ASCII and always encodes
			enc, _ = tw.encoder.String(EncodeDXFUnicode(s))
		}
		s = enc
	}
	_, err := fmt.Fprintf(tw.w, "%3d\n%s\n", code, s)
	return err
}

// WriteVertex writes a point as its coordinate tags: x at the given
// group code, y at code+10, and for 3D points z at code+20.
func (tw *TagWriter) WriteVertex(code int, v *Vector) error {
	for _, tag := range (Tag{Code: code, Value: v}).Expand() {
		err := tw.WriteTag(tag)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteTags writes all given tags.
func (tw *TagWriter) WriteTags(tags Tags) error {
	for _, tag := range tags {
		err := tw.WriteTag(tag)
		if err != nil {
			return err
		}
	}
	return nil
}

// BinaryTagWriter writes tags in the binary DXF encoding.
type BinaryTagWriter struct {
	w           io.Writer
	r12         bool
	unicode     bool
	omitHandles bool
	encoder     *encoding.Encoder
}

// NewBinaryTagWriter creates a BinaryTagWriter and writes the binary DXF
// signature.
func NewBinaryTagWriter(w io.Writer, opts *WriterOptions) (*BinaryTagWriter, error) {
	version, codepage := opts.fill()
	bw := &BinaryTagWriter{
		w:           w,
		r12:         !version.HasSubclassMarkers(),
		omitHandles: opts != nil && opts.OmitHandles,
	}
	if version.Encoding() == "utf8" {
		bw.unicode = true
	} else {
		bw.encoder = EncodingFor(codepage).NewEncoder()
	}
	_, err := w.Write(binarySignature)
	if err != nil {
		return nil, err
	}
	return bw, nil
}

// WriteTag writes a single tag.  Point tags are expanded into their
// coordinate tags.
func (bw *BinaryTagWriter) WriteTag(tag Tag) error {
	if bw.omitHandles && IsHandleCode(tag.Code) {
		return nil
	}
	if _, ok := tag.Value.(*Vector); ok {
		for _, t := range tag.Expand() {
			err := bw.WriteTag(t)
			if err != nil {
				return err
			}
		}
		return nil
	}

	err := bw.writeCode(tag.Code)
	if err != nil {
		return err
	}

	var buf [8]byte
	switch kind := KindOf(tag.Code); kind {
	case KindInt16:
		binary.LittleEndian.PutUint16(buf[:2], uint16(tag.Value.(Integer)))
		_, err = bw.w.Write(buf[:2])
	case KindInt32:
		binary.LittleEndian.PutUint32(buf[:4], uint32(tag.Value.(Integer)))
		_, err = bw.w.Write(buf[:4])
	case KindInt64:
		binary.LittleEndian.PutUint64(buf[:8], uint64(tag.Value.(Integer)))
		_, err = bw.w.Write(buf[:8])
	case KindBool:
		buf[0] = 0
		if tag.Value.(Bool) {
			buf[0] = 1
		}
		_, err = bw.w.Write(buf[:1])
	case KindReal:
		bits := math.Float64bits(float64(tag.Value.(Real)))
		binary.LittleEndian.PutUint64(buf[:8], bits)
		_, err = bw.w.Write(buf[:8])
	case KindBinary:
		data := tag.Value.(Binary)
		if len(data) > 255 {
			return fmt.Errorf("group code %d: binary chunk too long (%d bytes)",
				tag.Code, len(data))
		}
		buf[0] = byte(len(data))
		_, err = bw.w.Write(buf[:1])
		if err == nil {
			_, err = bw.w.Write(data)
		}
	default:
		err = bw.writeString(tag.text())
	}
	return err
}

// WriteTags writes all given tags.
func (bw *BinaryTagWriter) WriteTags(tags Tags) error {
	for _, tag := range tags {
		err := bw.WriteTag(tag)
		if err != nil {
			return err
		}
	}
	return nil
}

func (bw *BinaryTagWriter) writeCode(code int) error {
	var buf [3]byte
	if bw.r12 {
		if code < 255 {
			buf[0] = byte(code)
			_, err := bw.w.Write(buf[:1])
			return err
		}
		buf[0] = 255
		binary.LittleEndian.PutUint16(buf[1:3], uint16(code))
		_, err := bw.w.Write(buf[:3])
		return err
	}
	binary.LittleEndian.PutUint16(buf[:2], uint16(code))
	_, err := bw.w.Write(buf[:2])
	return err
}

func (bw *BinaryTagWriter) writeString(s string) error {
	raw := []byte(s)
	if !bw.unicode {
		enc, err := bw.encoder.Bytes([]byte(s))
		if err != nil {
			enc, _ = bw.encoder.Bytes([]byte(EncodeDXFUnicode(s)))
		}
		raw = enc
	}
	_, err := bw.w.Write(raw)
	if err != nil {
		return err
	}
	_, err = bw.w.Write([]byte{0})
	return err
}
