//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package esam

import (
	"strconv"

	"github.com/biogo/hts/sam"

	"git.sr.ht/~vejnar/TranscriptMapper/lib/bed"
	"git.sr.ht/~vejnar/TranscriptMapper/lib/cmapper"
)

// PathSAM stores Path to SAM (Binary=false) or BAM (Binary=true) file.
type PathSAM struct {
	Path   string
	Binary bool
}

// ToRecord returns the genome span of the alignment as a BED6 record
// (reference, start, end, read name, mapping quality, strand).
func ToRecord(r *sam.Record) *bed.Record {
	strand := "+"
	if r.Strand() == -1 {
		strand = "-"
	}
	return bed.NewRecord(r.Ref.Name(), r.Start(), r.End(), r.Name, strconv.Itoa(int(r.MapQ)), strand)
}

// Overlap returns the length of the overlap between the alignment of the SAM record and the interval specified with start and end.
func Overlap(r *sam.Record, start, end int) int {
	var overlap int
	pos := r.Pos
	for _, co := range r.Cigar {
		t := co.Type()
		con := t.Consumes()
		lr := co.Len() * con.Reference
		if con.Query == con.Reference {
			o := min(pos+lr, end) - max(pos, start)
			if o > 0 {
				overlap += o
			}
		}
		pos += lr
	}
	return overlap
}

// ExonOverlap returns the number of aligned bases within exons.
func ExonOverlap(r *sam.Record, exons []cmapper.Exon) (overlap int) {
	for _, e := range exons {
		overlap += Overlap(r, e.Start, e.End)
	}
	return
}

func min(a, b int) int {
	if a > b {
		return b
	}
	return a
}

func max(a, b int) int {
	if a < b {
		return b
	}
	return a
}
