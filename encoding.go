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
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// codepages maps the $DWGCODEPAGE header values to text encodings.
// Files from R2007 (AC1021) on are always UTF-8 and ignore the header.
var codepages = map[string]encoding.Encoding{
	"ANSI_874":  charmap.Windows874,
	"ANSI_932":  japanese.ShiftJIS,
	"ANSI_936":  simplifiedchinese.GBK,
	"ANSI_949":  korean.EUCKR,
	"ANSI_950":  traditionalchinese.Big5,
	"ANSI_1250": charmap.Windows1250,
	"ANSI_1251": charmap.Windows1251,
	"ANSI_1252": charmap.Windows1252,
	"ANSI_1253": charmap.Windows1253,
	"ANSI_1254": charmap.Windows1254,
	"ANSI_1255": charmap.Windows1255,
	"ANSI_1256": charmap.Windows1256,
	"ANSI_1257": charmap.Windows1257,
	"ANSI_1258": charmap.Windows1258,
	"UTF-8":     unicode.UTF8,
}

// EncodingFor returns the text encoding for a $DWGCODEPAGE header value.
// Unknown code pages fall back to windows-1252, the de-facto default of
// western DXF exporters.
func EncodingFor(codepage string) encoding.Encoding {
	if enc, ok := codepages[strings.ToUpper(codepage)]; ok {
		return enc
	}
	return charmap.Windows1252
}

var dxfUnicode = regexp.MustCompile(`\\U\+([0-9A-Fa-f]{4})`)

// HasDXFUnicode reports whether s contains \U+XXXX escape sequences.
func HasDXFUnicode(s string) bool {
	return dxfUnicode.MatchString(s)
}

// DecodeDXFUnicode replaces all \U+XXXX escape sequences in s by the
// characters they denote.
func DecodeDXFUnicode(s string) string {
	return dxfUnicode.ReplaceAllStringFunc(s, func(m string) string {
		code, err := strconv.ParseUint(m[3:], 16, 32)
		if err != nil {
			return m
		}
		return string(rune(code))
	})
}

// EncodeDXFUnicode replaces all characters outside the basic latin range
// by \U+XXXX escape sequences.  Pre-R2007 files use this to store text
// that their code page cannot express.
func EncodeDXFUnicode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
		} else {
			fmt.Fprintf(&b, `\U+%04X`, r)
		}
	}
	return b.String()
}
