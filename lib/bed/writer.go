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

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4"
	"github.com/pkg/errors"
)

type Writer struct {
	w       *bufio.Writer
	closers []io.Closer
}

// NewWriter writes records to w. Compression is "" (none), "gzip", "lz4" or "lz4hc".
func NewWriter(w io.Writer, compression string) (*Writer, error) {
	wr := &Writer{}
	switch compression {
	case "gzip":
		gz := gzip.NewWriter(w)
		wr.closers = append(wr.closers, gz)
		w = gz
	case "lz4":
		lzWriter := lz4.NewWriter(w)
		wr.closers = append(wr.closers, lzWriter)
		w = lzWriter
	case "lz4hc":
		lzWriter := lz4.NewWriter(w)
		lzWriter.Header = lz4.Header{CompressionLevel: 9}
		wr.closers = append(wr.closers, lzWriter)
		w = lzWriter
	case "":
	default:
		return nil, errors.Errorf("unknown compression %q", compression)
	}
	wr.w = bufio.NewWriter(w)
	return wr, nil
}

// Create opens path for writing, appending to an existing file with
// appendOutput. Path "-" is stdout.
func Create(path string, compression string, appendOutput bool) (*Writer, error) {
	if path == "-" {
		return NewWriter(os.Stdout, compression)
	}
	// Append or Create flag
	var fg int
	if appendOutput {
		fg = os.O_APPEND | os.O_CREATE | os.O_WRONLY
	} else {
		fg = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, fg, 0666)
	if err != nil {
		return nil, err
	}
	wr, err := NewWriter(f, compression)
	if err != nil {
		f.Close()
		return nil, err
	}
	wr.closers = append(wr.closers, f)
	return wr, nil
}

func (wr *Writer) Write(r *Record) error {
	for i, f := range r.Fields {
		if i > 0 {
			wr.w.WriteByte('\t')
		}
		wr.w.WriteString(f)
	}
	return wr.w.WriteByte('\n')
}

// Close flushes buffered records and closes compressor and file.
func (wr *Writer) Close() error {
	err := wr.w.Flush()
	for _, c := range wr.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
