//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"git.sr.ht/~vejnar/TranscriptMapper/lib/bed"
	"git.sr.ht/~vejnar/TranscriptMapper/lib/cmapper"
)

// Feature is a transcript: its exons are in Coords as [start, end) pairs.
type Feature struct {
	ID     uint32
	Name   string
	Chrom  string
	Strand cmapper.Strand
	Coords [][]int
}

// Length returns the length of feature
func (feat Feature) Length() (length int) {
	for _, coords := range feat.Coords {
		if coords[1] > coords[0] {
			length += coords[1] - coords[0]
		} else {
			length += coords[0] - coords[1]
		}
	}
	return
}

// Span returns the genome interval [start, end) covered by the feature.
func (feat Feature) Span() (start, end int) {
	for i, e := range feat.Exons() {
		if i == 0 || e.Start < start {
			start = e.Start
		}
		if i == 0 || e.End > end {
			end = e.End
		}
	}
	return
}

// Exons returns the coordinates as ascending genome intervals.
func (feat Feature) Exons() []cmapper.Exon {
	exons := make([]cmapper.Exon, len(feat.Coords))
	for i, c := range feat.Coords {
		if c[0] <= c[1] {
			exons[i] = cmapper.Exon{Start: c[0], End: c[1]}
		} else {
			exons[i] = cmapper.Exon{Start: c[1] + 1, End: c[0] + 1}
		}
	}
	return exons
}

// Mapper builds the coordinate mapper of the feature.
func (feat Feature) Mapper() (*cmapper.CoordMapper, error) {
	exons := make([]cmapper.Exon, len(feat.Coords))
	for i, c := range feat.Coords {
		exons[i] = cmapper.Exon{Start: c[0], End: c[1]}
	}
	cm, err := cmapper.New(exons, feat.Strand)
	if err != nil {
		return nil, errors.Wrapf(err, "feature %s", feat.Name)
	}
	return cm, nil
}

// Sorting functions: By Name
// Use it with: sort.Sort(feature.ByName(features))
type ByName []Feature

func (f ByName) Len() int           { return len(f) }
func (f ByName) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f ByName) Less(i, j int) bool { return f[i].Name < f[j].Name }

// Sorting functions: By Chrom
type ByChrom []Feature

func (f ByChrom) Len() int           { return len(f) }
func (f ByChrom) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f ByChrom) Less(i, j int) bool { return f[i].Chrom < f[j].Chrom }

// OpenFON parses a "Feature Object Notation" file and returns a list of Feature
func OpenFON(jpath, fonName, fonChrom, fonStrand, fonCoords string) ([]Feature, error) {
	jfos, err := os.Open(jpath)
	if err != nil {
		return nil, err
	}
	defer jfos.Close()
	return ReadFON(jfos, fonName, fonChrom, fonStrand, fonCoords)
}

// ReadFON parses FON from r.
func ReadFON(r io.Reader, fonName, fonChrom, fonStrand, fonCoords string) (features []Feature, err error) {
	var fon struct {
		Version  int                          `json:"fon_version"`
		Features []map[string]json.RawMessage `json:"features"`
	}
	if err = json.NewDecoder(r).Decode(&fon); err != nil {
		return nil, errors.Wrap(err, "parsing JSON feature file")
	}
	if fon.Version != 1 {
		return nil, errors.Errorf("unknown FON version %d", fon.Version)
	}

	for i, mf := range fon.Features {
		f := Feature{ID: uint32(i)}
		var strand string
		for _, kv := range []struct {
			key string
			dst interface{}
		}{{fonName, &f.Name}, {fonChrom, &f.Chrom}, {fonStrand, &strand}, {fonCoords, &f.Coords}} {
			raw, ok := mf[kv.key]
			if !ok {
				return nil, errors.Errorf("feature %d: missing key %q", i, kv.key)
			}
			if err = json.Unmarshal(raw, kv.dst); err != nil {
				return nil, errors.Wrapf(err, "feature %d: key %q", i, kv.key)
			}
		}
		if f.Strand, err = cmapper.ParseStrand(strand); err != nil {
			return nil, errors.Wrapf(err, "feature %s", f.Name)
		}
		for _, c := range f.Coords {
			if len(c) != 2 {
				return nil, errors.Errorf("feature %s: coordinates %v are not a pair", f.Name, c)
			}
		}
		features = append(features, f)
	}
	return features, nil
}

// OpenBED reads the exons of one transcript from a BED file. A "-" in the
// strand column of any exon puts the transcript on the reverse strand,
// otherwise defaultStrand is used.
func OpenBED(path, name string, defaultStrand cmapper.Strand) (feat Feature, err error) {
	rd, err := bed.Open(path)
	if err != nil {
		return
	}
	defer rd.Close()

	feat = Feature{Name: name, Strand: defaultStrand}
	for {
		var rec *bed.Record
		rec, err = rd.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return
		}
		var start, end int
		if start, err = rec.Start(); err != nil {
			return
		}
		if end, err = rec.End(); err != nil {
			return
		}
		if feat.Chrom == "" {
			feat.Chrom = rec.Chrom()
		}
		if rec.Strand() == "-" {
			feat.Strand = cmapper.Reverse
		}
		feat.Coords = append(feat.Coords, []int{start, end})
	}
	if len(feat.Coords) == 0 {
		return feat, errors.Errorf("no exon found in %s", path)
	}
	return feat, nil
}
