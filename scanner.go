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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ScannerOptions controls how a [Scanner] tokenizes its input.
// The zero value is a useful default.
type ScannerOptions struct {
	// KeepComments retains comment tags (group code 999) in the output.
	// By default comments are skipped.
	KeepComments bool

	// Raw disables value casting and point compaction: every tag value is
	// returned as [Text] and coordinate tags are not collapsed into point
	// tags.  Raw mode preserves the line-for-line correspondence with the
	// input, which diagnostic tools rely on.
	Raw bool
}

// Scanner reads a DXF tag stream and returns one [Tag] at a time.
//
// Values are cast according to the group code table, and consecutive
// coordinate tags (x at code N, y at N+10, optionally z at N+20) are
// collapsed into a single point tag.  The offset rule is format-wide, so
// compaction needs no entity-specific knowledge.
type Scanner struct {
	src          tagSource
	keepComments bool
	raw          bool

	undo    []Tag
	lastPos int
	eof     bool
}

// tagSource produces typed tags from some wire encoding.  Both the text
// tokenizer and the binary decoder implement this interface.
type tagSource interface {
	// readTag returns the next tag, or io.EOF at the end of the stream.
	readTag() (Tag, error)

	// pos returns the current input position (a line number for text
	// input, a byte offset for binary input) for error reporting.
	pos() int
}

// NewScanner creates a Scanner reading DXF text from r.
func NewScanner(r io.Reader, opts *ScannerOptions) *Scanner {
	if opts == nil {
		opts = &ScannerOptions{}
	}
	return &Scanner{
		src:          &textSource{r: bufio.NewReader(r), line: 1, raw: opts.Raw},
		keepComments: opts.KeepComments,
		raw:          opts.Raw,
	}
}

// Line returns the input line number of the most recently returned tag.
func (s *Scanner) Line() int {
	return s.lastPos
}

// Next returns the next tag from the stream.  At the end of the input,
// io.EOF is returned.  Structural damage is reported as [*StructureError];
// the scanner stays usable afterwards and resumes at the following tag
// pair, so callers can skip past damaged regions.
func (s *Scanner) Next() (Tag, error) {
	for {
		tag, err := s.read()
		if err != nil {
			return Tag{}, err
		}

		if tag.Code == CommentCode && !s.keepComments {
			continue
		}

		if !s.raw && IsPointCode(tag.Code) {
			return s.compactPoint(tag)
		}

		if tag.Code == StructureMarker && tag.text() == "EOF" {
			// the EOF tag is returned, anything beyond it is ignored
			s.eof = true
		}
		return tag, nil
	}
}

// compactPoint collapses the coordinate tags following an x-component tag
// into a single point tag.  The y component is mandatory, the z component
// is optional.
func (s *Scanner) compactPoint(x Tag) (Tag, error) {
	pos := s.lastPos
	y, err := s.read()
	if err == io.EOF {
		return Tag{}, &StructureError{
			Line: pos,
			Err:  fmt.Errorf("missing y coordinate for group code %d", x.Code),
		}
	} else if err != nil {
		return Tag{}, err
	}
	if y.Code != x.Code+10 {
		return Tag{}, &StructureError{
			Line: pos,
			Err:  fmt.Errorf("missing y coordinate for group code %d", x.Code),
		}
	}

	v := &Vector{
		X: float64(x.Value.(Real)),
		Y: float64(y.Value.(Real)),
	}

	z, err := s.read()
	if err == nil {
		if z.Code == x.Code+20 {
			v.Z = float64(z.Value.(Real))
			v.Is3D = true
		} else {
			s.pushBack(z)
		}
	} else if err != io.EOF {
		return Tag{}, err
	}

	return Tag{Code: x.Code, Value: v}, nil
}

func (s *Scanner) read() (Tag, error) {
	if n := len(s.undo); n > 0 {
		tag := s.undo[n-1]
		s.undo = s.undo[:n-1]
		return tag, nil
	}
	if s.eof {
		return Tag{}, io.EOF
	}
	tag, err := s.src.readTag()
	s.lastPos = s.src.pos()
	return tag, err
}

func (s *Scanner) pushBack(tag Tag) {
	s.undo = append(s.undo, tag)
}

// textSource tokenizes the two-line text encoding: a group code line
// followed by a value line.
type textSource struct {
	r       *bufio.Reader
	line    int
	tagLine int
	raw     bool
}

// pos returns the line number where the most recent tag started.
func (src *textSource) pos() int {
	return src.tagLine
}

func (src *textSource) readTag() (Tag, error) {
	start := src.line
	codeLine, err := src.readLine()
	if codeLine == "" && err == io.EOF {
		return Tag{}, io.EOF
	} else if err != nil && err != io.EOF {
		return Tag{}, err
	}
	src.line++

	code, err := strconv.Atoi(strings.TrimSpace(codeLine))
	if err != nil {
		return Tag{}, &StructureError{
			Line: start,
			Err:  fmt.Errorf("invalid group code %q", strings.TrimSpace(codeLine)),
		}
	}

	valueLine, err := src.readLine()
	if valueLine == "" && err == io.EOF {
		return Tag{}, &StructureError{
			Line: start,
			Err:  fmt.Errorf("premature end of stream, missing value for group code %d", code),
		}
	} else if err != nil && err != io.EOF {
		return Tag{}, err
	}
	src.line++

	value := strings.TrimRight(valueLine, "\r\n")
	if src.raw {
		src.tagLine = start
		return Tag{Code: code, Value: Text(value)}, nil
	}

	tag, err := NewTag(code, value)
	if err != nil {
		return Tag{}, &StructureError{
			Line: src.line - 1,
			Err:  fmt.Errorf("invalid value %q for group code %d", value, code),
		}
	}
	src.tagLine = start
	return tag, nil
}

// readLine reads one input line including its line terminator.  At the end
// of the input the final unterminated line is returned together with io.EOF.
func (src *textSource) readLine() (string, error) {
	return src.r.ReadString('\n')
}
