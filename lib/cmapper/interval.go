//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package cmapper

// ConvertInterval translates the genome interval [begin, end) to the
// transcript interval [tBegin, tEnd). On the reverse strand the interval can
// also be given descending: (2000, 1000) covers 2000 down to 1001.
//
// With clip, the interval is cut to the exonic part it covers and only an
// interval entirely within an intron fails. Without clip, both ends must be
// exonic.
func (cm *CoordMapper) ConvertInterval(begin, end int, clip bool) (tBegin, tEnd int, err error) {
	// Both sides inclusive
	lo, hi := begin, end-1
	if cm.strand == Reverse && begin > end {
		lo, hi = end+1, begin
	}
	// First and last positions along transcript
	first, last := lo, hi
	if cm.strand == Reverse {
		first, last = hi, lo
	}

	var tFirst, tLast int
	if clip {
		var r []int
		if r, err = cm.ConvertPoints([]int{first}, RestrictBigger); err != nil {
			return
		}
		tFirst = r[0]
		if r, err = cm.ConvertPoints([]int{last}, RestrictSmaller); err != nil {
			return
		}
		tLast = r[0]
		if tFirst > tLast {
			return 0, 0, &IntronOnlyIntervalError{Begin: begin, End: end}
		}
	} else {
		var r []int
		if r, err = cm.ConvertPoints([]int{first, last}, ThrowError); err != nil {
			return
		}
		tFirst, tLast = r[0], r[1]
	}

	// Half-open
	if tFirst > tLast {
		tFirst, tLast = tLast, tFirst
	}
	return tFirst, tLast + 1, nil
}
