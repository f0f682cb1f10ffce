//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package cmapper

// Strand is the orientation of a transcript on the genome.
type Strand int8

const (
	Forward Strand = 1
	Reverse Strand = -1
)

// ParseStrand parses a strand tag: "+", "1" or "+1" for Forward, "-" or "-1" for Reverse.
func ParseStrand(raw string) (Strand, error) {
	switch raw {
	case "+", "1", "+1":
		return Forward, nil
	case "-", "-1":
		return Reverse, nil
	}
	return 0, &InvalidStrandError{Strand: raw}
}

func (s Strand) String() string {
	switch s {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	}
	return "?"
}
