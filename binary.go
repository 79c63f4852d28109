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
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"golang.org/x/text/encoding"
)

// binarySignature starts every binary DXF file.
var binarySignature = []byte("AutoCAD Binary DXF\r\n\x1a\x00")

// IsBinary reports whether data starts with the binary DXF signature.
func IsBinary(data []byte) bool {
	return bytes.HasPrefix(data, binarySignature)
}

// NewBinaryScanner creates a Scanner reading a binary DXF file.  If data
// does not start with the binary DXF signature, [ErrNotDXF] is returned.
//
// Positions reported by the scanner are byte offsets rather than line
// numbers.
func NewBinaryScanner(data []byte, opts *ScannerOptions) (*Scanner, error) {
	if !IsBinary(data) {
		return nil, ErrNotDXF
	}
	if opts == nil {
		opts = &ScannerOptions{}
	}

	version, codepage := sniffBinaryParams(data)
	var dec *encoding.Decoder
	if version.Encoding() != "utf8" {
		dec = EncodingFor(codepage).NewDecoder()
	}

	src := &binarySource{
		data:    data,
		offset:  len(binarySignature),
		r12:     !version.HasSubclassMarkers(),
		decoder: dec,
	}
	return &Scanner{
		src:          src,
		keepComments: opts.KeepComments,
		raw:          opts.Raw,
	}, nil
}

// sniffBinaryParams extracts the DXF version and code page from the
// header section.  Both settings change how the rest of the file has to
// be decoded, so they are read before regular tag decoding starts.
func sniffBinaryParams(data []byte) (Version, string) {
	version := R12
	if i := bytes.Index(data[:min(len(data), 256)], []byte("$ACADVER")); i >= 0 {
		if j := bytes.Index(data[i:min(len(data), i+32)], []byte("AC10")); j >= 0 {
			v := Version(data[i+j : min(len(data), i+j+6)])
			if v.Known() {
				version = v
			}
		}
	}

	codepage := "ANSI_1252"
	if i := bytes.Index(data[:min(len(data), 1024)], []byte("$DWGCODEPAGE")); i >= 0 {
		start := i + len("$DWGCODEPAGE") + 1 // skip the string terminator
		if version <= R12 {
			start++ // one-byte group code
		} else {
			start += 2 // two-byte group code
		}
		if end := bytes.IndexByte(data[start:min(len(data), start+32)], 0); end > 0 {
			codepage = string(data[start : start+end])
		}
	}
	return version, codepage
}

// binarySource decodes the binary tag encoding: a group code followed by
// a value in little-endian machine format.  R12 files use one-byte group
// codes with 255 as an escape for larger codes; later versions use
// two-byte codes throughout.
type binarySource struct {
	data     []byte
	offset   int
	tagStart int
	r12      bool
	decoder  *encoding.Decoder
}

// pos returns the byte offset where the most recent tag started.
func (src *binarySource) pos() int {
	return src.tagStart
}

func (src *binarySource) corrupt(format string, a ...any) error {
	return &StructureError{Line: src.offset, Err: fmt.Errorf(format, a...)}
}

func (src *binarySource) readTag() (Tag, error) {
	if src.offset >= len(src.data) {
		return Tag{}, io.EOF
	}
	src.tagStart = src.offset

	code, err := src.readCode()
	if err != nil {
		return Tag{}, err
	}

	var value Value
	switch kind := KindOf(code); kind {
	case KindInt16:
		raw, err := src.take(2)
		if err != nil {
			return Tag{}, err
		}
		value = Integer(int16(binary.LittleEndian.Uint16(raw)))
	case KindInt32:
		raw, err := src.take(4)
		if err != nil {
			return Tag{}, err
		}
		value = Integer(int32(binary.LittleEndian.Uint32(raw)))
	case KindInt64:
		raw, err := src.take(8)
		if err != nil {
			return Tag{}, err
		}
		value = Integer(binary.LittleEndian.Uint64(raw))
	case KindBool:
		raw, err := src.take(1)
		if err != nil {
			return Tag{}, err
		}
		value = Bool(raw[0] != 0)
	case KindReal:
		raw, err := src.take(8)
		if err != nil {
			return Tag{}, err
		}
		value = Real(math.Float64frombits(binary.LittleEndian.Uint64(raw)))
	case KindBinary:
		length, err := src.take(1)
		if err != nil {
			return Tag{}, err
		}
		raw, err := src.take(int(length[0]))
		if err != nil {
			return Tag{}, err
		}
		value = Binary(bytes.Clone(raw))
	default:
		s, err := src.readString()
		if err != nil {
			return Tag{}, err
		}
		value = Text(s)
	}

	return Tag{Code: code, Value: value}, nil
}

func (src *binarySource) readCode() (int, error) {
	raw, err := src.take(1)
	if err != nil {
		return 0, err
	}
	if src.r12 {
		code := int(raw[0])
		if code == 255 {
			raw, err = src.take(2)
			if err != nil {
				return 0, err
			}
			code = int(binary.LittleEndian.Uint16(raw))
		}
		return code, nil
	}

	more, err := src.take(1)
	if err != nil {
		return 0, err
	}
	return int(raw[0]) | int(more[0])<<8, nil
}

// readString reads a zero-terminated string and decodes it using the
// file's code page.
func (src *binarySource) readString() (string, error) {
	end := bytes.IndexByte(src.data[src.offset:], 0)
	if end < 0 {
		return "", src.corrupt("unterminated string")
	}
	raw := src.data[src.offset : src.offset+end]
	src.offset += end + 1

	if src.decoder == nil {
		return string(raw), nil
	}
	s, err := src.decoder.Bytes(raw)
	if err != nil {
		return "", src.corrupt("cannot decode string: %v", err)
	}
	return string(s), nil
}

func (src *binarySource) take(n int) ([]byte, error) {
	if src.offset+n > len(src.data) {
		return nil, src.corrupt("premature end of binary stream")
	}
	raw := src.data[src.offset : src.offset+n]
	src.offset += n
	return raw, nil
}
