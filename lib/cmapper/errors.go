//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package cmapper

import (
	"fmt"
)

// InvalidStrandError is returned for a strand that is neither Forward nor Reverse.
type InvalidStrandError struct {
	Strand string
}

func (e *InvalidStrandError) Error() string {
	return fmt.Sprintf("invalid strand %q", e.Strand)
}

// OverlapError is returned by New when two exons overlap (or touch) once sorted.
type OverlapError struct {
	First, Second Exon
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("exons %v and %v overlap", e.First, e.Second)
}

// MalformedExonError is returned by New for an exon that cannot take part in a transcript.
type MalformedExonError struct {
	Exon   Exon
	Reason string
}

func (e *MalformedExonError) Error() string {
	return fmt.Sprintf("malformed exon %v: %s", e.Exon, e.Reason)
}

// OutOfTranscriptError is returned when a genome position has no transcript
// coordinate under the requested policy.
type OutOfTranscriptError struct {
	Position int
}

func (e *OutOfTranscriptError) Error() string {
	return fmt.Sprintf("genome position %d outside of transcript", e.Position)
}

// IntronOnlyIntervalError is returned when a clipped interval does not overlap any exon.
type IntronOnlyIntervalError struct {
	Begin, End int
}

func (e *IntronOnlyIntervalError) Error() string {
	return fmt.Sprintf("interval %d-%d is included inside an intron", e.Begin, e.End)
}
