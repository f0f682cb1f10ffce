//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"github.com/biogo/hts/sam"
	"github.com/biogo/store/interval"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"git.sr.ht/~vejnar/TranscriptMapper/lib/bed"
	"git.sr.ht/~vejnar/TranscriptMapper/lib/esam"
	"git.sr.ht/~vejnar/TranscriptMapper/lib/feature"
)

// Item is an input record, with its alignment when read from SAM/BAM.
type Item struct {
	Rec *bed.Record
	Aln *sam.Record
}

type Batch struct {
	Idx         int
	Items       []Item
	Records     []*bed.Record
	NConverted  int
	Transcripts []string
}

// Converter moves records to the transcripts they overlap.
type Converter struct {
	FeatureExts []*feature.FeatureExt
	Trees       map[string]*interval.IntTree
	Mapping     map[string]string
	Clip        bool
	MinOverlap  int
}

func NewConverter(featureExts []*feature.FeatureExt, mapping map[string]string, clip bool, minOverlap int) (*Converter, error) {
	trees, err := feature.BuildFeatTrees(featureExts)
	if err != nil {
		return nil, err
	}
	return &Converter{FeatureExts: featureExts, Trees: trees, Mapping: mapping, Clip: clip, MinOverlap: minOverlap}, nil
}

// Convert returns the record converted to each overlapping transcript. The
// error is only set when no conversion succeeded.
func (c *Converter) Convert(it Item) (recs []*bed.Record, err error) {
	start, err := it.Rec.Start()
	if err != nil {
		return nil, err
	}
	end, err := it.Rec.End()
	if err != nil {
		return nil, err
	}
	// Descending intervals (reverse strand) are searched ascending
	lo, hi := start, end
	if lo > hi {
		lo, hi = end+1, start+1
	}
	ids := feature.FindFeatures(c.Trees, it.Rec.Chrom(), lo, hi)
	if len(ids) == 0 {
		return nil, errors.Errorf("no transcript at %s:%d-%d", it.Rec.Chrom(), start, end)
	}

	var lastErr error
	for _, id := range ids {
		feat := c.FeatureExts[id]
		if it.Aln != nil && c.MinOverlap > 0 {
			if o := esam.ExonOverlap(it.Aln, feat.CoordMapper.Exons()); o < c.MinOverlap {
				lastErr = errors.Errorf("%d aligned base(s) in exons of %s", o, feat.Name)
				continue
			}
		}
		tBegin, tEnd, cerr := feat.CoordMapper.ConvertInterval(start, end, c.Clip)
		if cerr != nil {
			lastErr = errors.Wrap(cerr, feat.Name)
			continue
		}
		recs = append(recs, it.Rec.Convert(feature.MapName(feat.Name, c.Mapping), tBegin, tEnd))
	}
	if len(recs) == 0 {
		return nil, lastErr
	}
	return recs, nil
}

// ConvertBatch converts all items of b, skipping records no transcript accepts.
func (c *Converter) ConvertBatch(b *Batch, verboseLevel int) {
	for _, it := range b.Items {
		recs, err := c.Convert(it)
		if err != nil {
			if verboseLevel > 1 {
				log.Printf("Skipping %s: %v", it.Rec, err)
			}
			continue
		}
		b.NConverted++
		for _, rec := range recs {
			b.Records = append(b.Records, rec)
			b.Transcripts = append(b.Transcripts, rec.Chrom())
		}
	}
}
