//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/biogo/hts/sam"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/fatih/set.v0"

	"git.sr.ht/~vejnar/TranscriptMapper/lib/bed"
	"git.sr.ht/~vejnar/TranscriptMapper/lib/esam"
)

const (
	batchLength = 100
)

const (
	FormatBED = iota
	FormatSAM
	FormatBAM
)

// PathInput is an input file of records (BED) or alignments (SAM, BAM).
type PathInput struct {
	Path   string
	Format int
}

// InputOptions sets how inputs are opened and alignments filtered.
type InputOptions struct {
	SAMCmdIn          []string
	MinMappingQuality byte
	NWorker           int
}

// AddCommas adds commas after every 3 characters.
func AddCommas(s string) string {
	if len(s) <= 3 {
		return s
	} else {
		return AddCommas(s[0:len(s)-3]) + "," + s[len(s)-3:]
	}
}

func Max(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// itemReader reads items from one input.
type itemReader struct {
	bed               *bed.Reader
	sam               *esam.Reader
	minMappingQuality byte
}

func openInput(in PathInput, opts InputOptions) (*itemReader, error) {
	var err error
	r := &itemReader{minMappingQuality: opts.MinMappingQuality}
	switch in.Format {
	case FormatBED:
		r.bed, err = bed.Open(in.Path)
	case FormatSAM:
		r.sam, err = esam.OpenSAM(esam.PathSAM{Path: in.Path, Binary: false}, opts.SAMCmdIn, opts.NWorker)
	case FormatBAM:
		r.sam, err = esam.OpenSAM(esam.PathSAM{Path: in.Path, Binary: true}, nil, opts.NWorker)
	default:
		err = errors.Errorf("unknown input format %d", in.Format)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *itemReader) Read() (Item, error) {
	if r.bed != nil {
		rec, err := r.bed.Read()
		return Item{Rec: rec}, err
	}
	for {
		aln, err := r.sam.Read()
		if err != nil {
			return Item{}, err
		}
		// Ignore unmapped read, secondary and supplementary alignment
		if aln.Flags&(sam.Unmapped|sam.Secondary|sam.Supplementary) != 0 {
			continue
		}
		if aln.MapQ < r.minMappingQuality {
			continue
		}
		return Item{Rec: esam.ToRecord(aln), Aln: aln}, nil
	}
}

func (r *itemReader) Close() error {
	if r.bed != nil {
		return r.bed.Close()
	}
	return r.sam.Close()
}

// ConvertInputs converts the records of all inputs and writes them in input order.
func ConvertInputs(inputs []PathInput, opts InputOptions, conv *Converter, w *bed.Writer, nWorker int, timeStart time.Time, verboseLevel int) (*Report, error) {
	report := &Report{transcripts: set.New(set.NonThreadSafe)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// Start sync errgroup
	g, gctx := errgroup.WithContext(ctx)

	// Start batch channels
	chIn := make(chan *Batch, nWorker*10)
	chOut := make(chan *Batch, nWorker*10)

	g.Go(func() error {
		defer close(chIn)
		var idx int
		send := func(b *Batch) error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case chIn <- b:
			}
			idx++
			return nil
		}
		for _, in := range inputs {
			if verboseLevel > 0 {
				log.Printf("%.1fmin - Opening %s", time.Since(timeStart).Minutes(), in.Path)
			}
			rd, err := openInput(in, opts)
			if err != nil {
				return err
			}
			b := &Batch{Idx: idx}
			for {
				it, err := rd.Read()
				if err == io.EOF {
					break
				} else if err != nil {
					rd.Close()
					return errors.Wrapf(err, "reading %s", in.Path)
				}
				b.Items = append(b.Items, it)
				if len(b.Items) == batchLength {
					if err = send(b); err != nil {
						rd.Close()
						return err
					}
					b = &Batch{Idx: idx}
				}
			}
			if err := rd.Close(); err != nil {
				return errors.Wrapf(err, "closing %s", in.Path)
			}
			// Send last batch
			if len(b.Items) > 0 {
				if err := send(b); err != nil {
					return err
				}
			}
		}
		return nil
	})

	// Spawn worker goroutine(s)
	g.Go(func() error {
		defer close(chOut)
		wg, wgctx := errgroup.WithContext(gctx)
		for i := 0; i < nWorker; i++ {
			wg.Go(func() error {
				for b := range chIn {
					conv.ConvertBatch(b, verboseLevel)
					select {
					case <-wgctx.Done():
						return wgctx.Err()
					case chOut <- b:
					}
				}
				return nil
			})
		}
		return wg.Wait()
	})

	// Write batches in input order
	var werr error
	pending := make(map[int]*Batch)
	next := 0
	timeLog := time.Now()
	for b := range chOut {
		pending[b.Idx] = b
		for {
			nb, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if werr != nil {
				continue
			}
			for _, rec := range nb.Records {
				if werr = w.Write(rec); werr != nil {
					cancel()
					break
				}
			}
			report.Add(nb)
		}
		if verboseLevel > 0 && time.Since(timeLog).Minutes() > 1. {
			timeLog = time.Now()
			log.Printf("%.1fmin - %s records", time.Since(timeStart).Minutes(), AddCommas(strconv.Itoa(report.RecordsIn)))
		}
	}
	if werr != nil {
		g.Wait()
		return report, errors.Wrap(werr, "writing output")
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}
