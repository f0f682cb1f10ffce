//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package bed reads and writes tab-delimited interval records (BED-like).
package bed

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	FieldChrom = iota
	FieldStart
	FieldEnd
	FieldName
	FieldScore
	FieldStrand
)

// Record is one line of a BED file. Fields beyond the coordinates are kept as is.
type Record struct {
	Fields []string
}

func NewRecord(chrom string, start, end int, extra ...string) *Record {
	fields := append([]string{chrom, strconv.Itoa(start), strconv.Itoa(end)}, extra...)
	return &Record{Fields: fields}
}

func (r *Record) Chrom() string {
	return r.Fields[FieldChrom]
}

func (r *Record) Start() (int, error) {
	return r.coord(FieldStart)
}

func (r *Record) End() (int, error) {
	return r.coord(FieldEnd)
}

// Strand returns the strand field or an empty string if absent.
func (r *Record) Strand() string {
	if len(r.Fields) > FieldStrand {
		return r.Fields[FieldStrand]
	}
	return ""
}

func (r *Record) coord(i int) (int, error) {
	v, err := strconv.Atoi(r.Fields[i])
	if err != nil {
		return 0, errors.Wrapf(err, "invalid coordinate %q in %s", r.Fields[i], r)
	}
	return v, nil
}

// Convert returns a copy of the record moved to transcript name at [start, end).
func (r *Record) Convert(name string, start, end int) *Record {
	fields := make([]string, len(r.Fields))
	copy(fields, r.Fields)
	fields[FieldChrom] = name
	fields[FieldStart] = strconv.Itoa(start)
	fields[FieldEnd] = strconv.Itoa(end)
	return &Record{Fields: fields}
}

func (r *Record) String() string {
	return strings.Join(r.Fields, "\t")
}
