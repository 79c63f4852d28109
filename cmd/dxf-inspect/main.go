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

// Dxf-inspect dumps the tag structure of a DXF file.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"seehuhn.de/go/dxf"
)

func main() {
	entities := flag.Bool("e", false, "list entities instead of raw tags")
	comments := flag.Bool("c", false, "keep comment tags")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.dxf\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := &dxf.ScannerOptions{KeepComments: *comments}
	var s *dxf.Scanner
	if dxf.IsBinary(data) {
		s, err = dxf.NewBinaryScanner(data, opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		s = dxf.NewScanner(bytes.NewReader(data), opts)
	}

	width := 80
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	if *entities {
		err = listEntities(s)
	} else {
		err = listTags(s, width)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func listTags(s *dxf.Scanner, width int) error {
	for {
		tag, err := s.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			fmt.Printf("%6d  ! %v\n", s.Line(), err)
			continue
		}
		line := fmt.Sprintf("%6d  %s <%s>", s.Line(), tag, kindName(tag))
		if len(line) > width {
			line = line[:width-3] + "..."
		}
		fmt.Println(line)
	}
}

func listEntities(s *dxf.Scanner) error {
	r := dxf.NewEntityReaderFrom(s, nil)
	for {
		x, err := r.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		n := 0
		for _, sub := range x.Subclasses {
			n += len(sub)
		}
		fmt.Printf("%6d  %-24s %2d subclasses %4d tags",
			s.Line(), x.EntityName(), len(x.Subclasses)-1, n)
		if len(x.XData) > 0 {
			fmt.Printf("  +xdata")
		}
		if len(x.Embedded) > 0 {
			fmt.Printf("  +embedded")
		}
		fmt.Println()
	}
	for _, skip := range r.Skipped() {
		fmt.Printf("%6d  ! skipped %s: %v\n", skip.Line, skip.DXFType, skip.Err)
	}
	return nil
}

func kindName(tag dxf.Tag) string {
	if tag.IsPoint() {
		return "point"
	}
	switch dxf.KindOf(tag.Code) {
	case dxf.KindInt16:
		return "int16"
	case dxf.KindInt32:
		return "int32"
	case dxf.KindInt64:
		return "int64"
	case dxf.KindBool:
		return "bool"
	case dxf.KindReal:
		return "real"
	case dxf.KindBinary:
		return "bin"
	default:
		return "str"
	}
}
