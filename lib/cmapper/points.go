//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package cmapper

import (
	"sort"
)

// OutOfExonsPolicy sets the result for a genome position outside of all exons.
type OutOfExonsPolicy int

const (
	// ThrowError fails with an OutOfTranscriptError.
	ThrowError OutOfExonsPolicy = iota
	// ReturnMinusOne returns -1.
	ReturnMinusOne
	// RestrictSmaller returns the closest transcript position below the
	// position, i.e. the last base of the exon preceding it in the transcript.
	RestrictSmaller
	// RestrictBigger returns the closest transcript position above the
	// position, i.e. the first base of the exon following it in the transcript.
	RestrictBigger
)

func (p OutOfExonsPolicy) String() string {
	switch p {
	case ThrowError:
		return "throw-error"
	case ReturnMinusOne:
		return "return-minus-one"
	case RestrictSmaller:
		return "restrict-smaller"
	case RestrictBigger:
		return "restrict-bigger"
	}
	return "unknown"
}

// ConvertPoints translates genome positions to transcript positions. Results
// are in the order of positions.
//
// Positions are sorted along the transcript and merged with the exons in a
// single pass: calling it once with many positions is faster than calling it
// for each position.
func (cm *CoordMapper) ConvertPoints(positions []int, policy OutOfExonsPolicy) ([]int, error) {
	results := make([]int, len(positions))
	if len(positions) == 0 {
		return results, nil
	}
	// Sort along transcript
	dir := int(cm.strand)
	order := make([]int, len(positions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return dir*positions[order[i]] < dir*positions[order[j]]
	})

	ipos, iseg := 0, 0
	for ipos < len(order) && iseg < len(cm.segments) {
		s := cm.segments[iseg]
		pos := positions[order[ipos]]
		d := cm.distance(s, pos)
		if d >= s.length() {
			// Downstream of this exon
			iseg++
			continue
		}
		if d >= 0 {
			results[order[ipos]] = s.offset + d
		} else {
			// Before the first exon or in the intron preceding iseg
			r, err := cm.upstreamOf(iseg, pos, policy)
			if err != nil {
				return nil, err
			}
			results[order[ipos]] = r
		}
		ipos++
	}

	// Past the last exon
	for ; ipos < len(order); ipos++ {
		switch policy {
		case ReturnMinusOne:
			results[order[ipos]] = -1
		case RestrictSmaller:
			results[order[ipos]] = cm.length - 1
		default:
			return nil, &OutOfTranscriptError{Position: positions[order[ipos]]}
		}
	}
	return results, nil
}

// upstreamOf resolves a position located upstream of segment iseg and
// downstream of segment iseg-1.
func (cm *CoordMapper) upstreamOf(iseg int, pos int, policy OutOfExonsPolicy) (int, error) {
	switch policy {
	case ReturnMinusOne:
		return -1, nil
	case RestrictBigger:
		return cm.segments[iseg].offset, nil
	case RestrictSmaller:
		if iseg > 0 {
			return cm.segments[iseg].offset - 1, nil
		}
	}
	return 0, &OutOfTranscriptError{Position: pos}
}
