//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.
//

// Package cmapper translates genome coordinates (0-based, half-open) to
// coordinates along a spliced transcript.
//
// A CoordMapper is immutable once built and can be shared between goroutines.
package cmapper

import (
	"fmt"
	"sort"
	"strconv"
)

// Exon is a genome interval [Start, End). On the reverse strand an exon can
// also be given in its descending form (first base, base before last), e.g.
// (30, 19) for [20, 31).
type Exon struct {
	Start, End int
}

func (e Exon) String() string {
	return fmt.Sprintf("(%d,%d)", e.Start, e.End)
}

// segment is an exon in transcript traversal order. On the reverse strand
// begin is the highest (included) genome coordinate and end the excluded
// coordinate below the exon.
type segment struct {
	begin, end int
	offset     int
}

func (s segment) length() int {
	if s.end > s.begin {
		return s.end - s.begin
	}
	return s.begin - s.end
}

type CoordMapper struct {
	strand   Strand
	segments []segment
	length   int
}

// genomic is an exon normalized to ascending genome coordinates [lo, hi).
type genomic struct {
	lo, hi int
	raw    Exon
}

// New builds a mapper from unordered exons. The exons slice is neither
// modified nor retained.
func New(exons []Exon, strand Strand) (*CoordMapper, error) {
	if strand != Forward && strand != Reverse {
		return nil, &InvalidStrandError{Strand: strconv.Itoa(int(strand))}
	}
	if len(exons) == 0 {
		return nil, &MalformedExonError{Reason: "transcript without exon"}
	}
	// Normalize
	gs := make([]genomic, len(exons))
	for i, e := range exons {
		switch {
		case e.Start == e.End:
			return nil, &MalformedExonError{Exon: e, Reason: "empty exon"}
		case e.Start < e.End:
			gs[i] = genomic{lo: e.Start, hi: e.End, raw: e}
		case strand == Reverse:
			gs[i] = genomic{lo: e.End + 1, hi: e.Start + 1, raw: e}
		default:
			return nil, &MalformedExonError{Exon: e, Reason: "end before start on forward strand"}
		}
	}
	sort.Slice(gs, func(i, j int) bool { return gs[i].lo < gs[j].lo })
	// Exons must be separated by at least one base
	for i := 1; i < len(gs); i++ {
		if gs[i].lo <= gs[i-1].hi {
			return nil, &OverlapError{First: gs[i-1].raw, Second: gs[i].raw}
		}
	}

	cm := &CoordMapper{strand: strand, segments: make([]segment, len(gs))}
	for i := range gs {
		var s segment
		if strand == Forward {
			g := gs[i]
			s = segment{begin: g.lo, end: g.hi}
		} else {
			g := gs[len(gs)-1-i]
			s = segment{begin: g.hi - 1, end: g.lo - 1}
		}
		s.offset = cm.length
		cm.length += s.length()
		cm.segments[i] = s
	}
	return cm, nil
}

// Strand returns the transcript strand.
func (cm *CoordMapper) Strand() Strand {
	return cm.strand
}

// Length returns the transcript length.
func (cm *CoordMapper) Length() int {
	return cm.length
}

func (cm *CoordMapper) NumExons() int {
	return len(cm.segments)
}

// Exons returns the exons as ascending genome intervals, in transcript order.
func (cm *CoordMapper) Exons() []Exon {
	exons := make([]Exon, len(cm.segments))
	for i, s := range cm.segments {
		if cm.strand == Forward {
			exons[i] = Exon{Start: s.begin, End: s.end}
		} else {
			exons[i] = Exon{Start: s.end + 1, End: s.begin + 1}
		}
	}
	return exons
}

// Genome2Transcript translates a coordinate from the genome to the transcript system.
func (cm *CoordMapper) Genome2Transcript(coord int) (tcoord int, within bool) {
	for _, s := range cm.segments {
		if d := cm.distance(s, coord); d >= 0 && d < s.length() {
			return s.offset + d, true
		}
	}
	return
}

// distance returns how far coord is downstream of the first base of s,
// negative when coord is upstream.
func (cm *CoordMapper) distance(s segment, coord int) int {
	return int(cm.strand) * (coord - s.begin)
}
