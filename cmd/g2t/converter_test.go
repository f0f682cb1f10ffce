//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"errors"
	"testing"

	"github.com/biogo/hts/sam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~vejnar/TranscriptMapper/lib/bed"
	"git.sr.ht/~vejnar/TranscriptMapper/lib/cmapper"
	"git.sr.ht/~vejnar/TranscriptMapper/lib/esam"
	"git.sr.ht/~vejnar/TranscriptMapper/lib/feature"
)

func testFeatures() []feature.Feature {
	return []feature.Feature{
		{ID: 0, Name: "T1", Chrom: "chr1", Strand: cmapper.Forward, Coords: [][]int{{100, 200}, {300, 400}}},
		{ID: 1, Name: "T2", Chrom: "chr1", Strand: cmapper.Reverse, Coords: [][]int{{1000, 1100}, {1200, 1300}}},
		{ID: 2, Name: "T3", Chrom: "chr1", Strand: cmapper.Forward, Coords: [][]int{{150, 180}}},
	}
}

func testConverter(t *testing.T, mapping map[string]string, clip bool, minOverlap int) *Converter {
	featureExts, err := feature.ExtendFeatures(testFeatures())
	require.NoError(t, err)
	conv, err := NewConverter(featureExts, mapping, clip, minOverlap)
	require.NoError(t, err)
	return conv
}

func TestConvert(t *testing.T) {
	conv := testConverter(t, nil, true, 0)
	tests := []struct {
		rec      *bed.Record
		expected [][]string
	}{
		{bed.NewRecord("chr1", 120, 130, "a", "0", "+"), [][]string{{"T1", "20", "30", "a", "0", "+"}}},
		// Spliced across the intron
		{bed.NewRecord("chr1", 190, 310), [][]string{{"T1", "90", "110"}}},
		// Clipped on both sides
		{bed.NewRecord("chr1", 50, 450), [][]string{{"T1", "0", "200"}, {"T3", "0", "30"}}},
		// Two transcripts
		{bed.NewRecord("chr1", 160, 170), [][]string{{"T1", "60", "70"}, {"T3", "10", "20"}}},
		// Reverse strand, ascending and descending
		{bed.NewRecord("chr1", 1250, 1260), [][]string{{"T2", "40", "50"}}},
		{bed.NewRecord("chr1", 1259, 1249), [][]string{{"T2", "40", "50"}}},
		{bed.NewRecord("chr1", 1090, 1210), [][]string{{"T2", "90", "110"}}},
	}
	for i, test := range tests {
		recs, err := conv.Convert(Item{Rec: test.rec})
		require.NoError(t, err, "test %d", i)
		var fields [][]string
		for _, r := range recs {
			fields = append(fields, r.Fields)
		}
		assert.Equal(t, test.expected, fields, "test %d", i)
	}
}

func TestConvertSkipped(t *testing.T) {
	conv := testConverter(t, nil, true, 0)
	for i, rec := range []*bed.Record{
		bed.NewRecord("chr2", 120, 130),
		bed.NewRecord("chr1", 10, 20),
		bed.NewRecord("chr1", 250, 260),
		bed.NewRecord("chr1", 1100, 1200),
		{Fields: []string{"chr1", "x", "130"}},
	} {
		recs, err := conv.Convert(Item{Rec: rec})
		assert.Error(t, err, "test %d", i)
		assert.Nil(t, recs, "test %d", i)
	}

	var ie *cmapper.IntronOnlyIntervalError
	_, err := conv.Convert(Item{Rec: bed.NewRecord("chr1", 250, 260)})
	assert.True(t, errors.As(err, &ie))
}

func TestConvertNoClip(t *testing.T) {
	conv := testConverter(t, nil, false, 0)
	recs, err := conv.Convert(Item{Rec: bed.NewRecord("chr1", 190, 310)})
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "90", "110"}, recs[0].Fields)

	_, err = conv.Convert(Item{Rec: bed.NewRecord("chr1", 150, 250)})
	var oe *cmapper.OutOfTranscriptError
	assert.True(t, errors.As(err, &oe))
}

func TestConvertMapping(t *testing.T) {
	conv := testConverter(t, map[string]string{"T1": "GENE1"}, true, 0)
	recs, err := conv.Convert(Item{Rec: bed.NewRecord("chr1", 160, 170)})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "GENE1", recs[0].Chrom())
	assert.Equal(t, "T3", recs[1].Chrom())
}

func TestConvertMinOverlap(t *testing.T) {
	ref, err := sam.NewReference("chr1", "", "", 10000, nil, nil)
	require.NoError(t, err)
	newAln := func(pos int, cigar []sam.CigarOp) *sam.Record {
		r, err := sam.NewRecord("r", ref, nil, pos, -1, 0, 60, cigar, []byte("ACGTACGTAC"), nil, nil)
		require.NoError(t, err)
		return r
	}
	// Aligned on [95,100) and [200,205): intronic only for T1
	spliced := newAln(95, []sam.CigarOp{
		sam.NewCigarOp(sam.CigarMatch, 5),
		sam.NewCigarOp(sam.CigarSkipped, 100),
		sam.NewCigarOp(sam.CigarMatch, 5),
	})
	exonic := newAln(185, []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, 10)})

	conv := testConverter(t, nil, true, 0)
	recs, err := conv.Convert(Item{Rec: esam.ToRecord(spliced), Aln: spliced})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, []string{"T1", "0", "100", "r", "60", "+"}, recs[0].Fields)

	assert.Equal(t, []string{"T3", "0", "30", "r", "60", "+"}, recs[1].Fields)

	conv = testConverter(t, nil, true, 5)
	recs, err = conv.Convert(Item{Rec: esam.ToRecord(spliced), Aln: spliced})
	assert.Error(t, err)
	assert.Nil(t, recs)

	recs, err = conv.Convert(Item{Rec: esam.ToRecord(exonic), Aln: exonic})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"T1", "85", "95", "r", "60", "+"}, recs[0].Fields)
}

func TestConvertBatch(t *testing.T) {
	conv := testConverter(t, nil, true, 0)
	b := &Batch{Items: []Item{
		{Rec: bed.NewRecord("chr1", 120, 130)},
		{Rec: bed.NewRecord("chr2", 120, 130)},
		{Rec: bed.NewRecord("chr1", 160, 170)},
	}}
	conv.ConvertBatch(b, 2)
	assert.Equal(t, 2, b.NConverted)
	assert.Len(t, b.Records, 3)
	assert.Equal(t, []string{"T1", "T1", "T3"}, b.Transcripts)
}
