//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package bed

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

const maxLineLength = 1024 * 1024

type Reader struct {
	scanner *bufio.Scanner
	closers []io.Closer
	line    int
}

// NewReader reads records from r, decompressing gzip input.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	rd := &Reader{}
	var in io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "opening gzip stream")
		}
		rd.closers = append(rd.closers, gz)
		in = gz
	}
	rd.scanner = bufio.NewScanner(in)
	rd.scanner.Buffer(make([]byte, 64*1024), maxLineLength)
	return rd, nil
}

// Open opens a BED file. Path "-" is stdin.
func Open(path string) (*Reader, error) {
	if path == "-" {
		return NewReader(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rd, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	rd.closers = append(rd.closers, f)
	return rd, nil
}

// Read returns the next record or io.EOF. Empty lines, comments, track and
// browser lines and lines with less than 3 fields are skipped.
func (rd *Reader) Read() (*Record, error) {
	for rd.scanner.Scan() {
		rd.line++
		line := strings.TrimRight(rd.scanner.Text(), "\r\n")
		if len(line) == 0 || line[0] == '#' || strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) <= FieldEnd {
			continue
		}
		return &Record{Fields: fields}, nil
	}
	if err := rd.scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading line %d", rd.line+1)
	}
	return nil, io.EOF
}

// Line returns the number of lines read so far.
func (rd *Reader) Line() int {
	return rd.line
}

func (rd *Reader) Close() error {
	var err error
	for _, c := range rd.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
