//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// g2t converts intervals from genome to transcript coordinates.
//
// Transcript exons are read from a BED file (one transcript) or a FON file
// (many transcripts). Records are read as BED (stdin by default) or as
// SAM/BAM alignments and written as BED with the transcript name in place of
// the chromosome. Records outside of all transcripts are skipped.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/grailbio/base/log"

	"git.sr.ht/~vejnar/TranscriptMapper/lib/bed"
	"git.sr.ht/~vejnar/TranscriptMapper/lib/cmapper"
	"git.sr.ht/~vejnar/TranscriptMapper/lib/feature"
)

var version = "DEV"

func splitPaths(raw string, format int) (inputs []PathInput) {
	if len(raw) == 0 {
		return
	}
	for _, p := range strings.Split(raw, ",") {
		if p != "-" {
			if _, err := os.Stat(p); os.IsNotExist(err) {
				log.Fatalf("%s not found", p)
			}
		}
		inputs = append(inputs, PathInput{Path: p, Format: format})
	}
	return
}

func main() {
	// Arguments: General
	var pathReport string
	var nWorker, verboseLevel int
	var appendOutput, verbose, printVersion bool
	flag.StringVar(&pathReport, "path_report", "", "Write report to path (stdout with -)")
	flag.IntVar(&nWorker, "num_worker", 1, "Number of worker(s)")
	flag.IntVar(&verboseLevel, "verbose_level", 0, "Verbose level (2 reports skipped records)")
	flag.BoolVar(&appendOutput, "append", false, "Append to output (default create)")
	flag.BoolVar(&verbose, "verbose", false, "Verbose")
	flag.BoolVar(&printVersion, "version", false, "Print version and quit")
	// Arguments: Transcript
	var pathTranscript, transcriptName, transcriptStrandRaw, pathFeatures, fonName, fonChrom, fonStrand, fonCoords string
	flag.StringVar(&pathTranscript, "path_transcript", "", "Path to BED file with the exons of the transcript")
	flag.StringVar(&transcriptName, "name", "transcript", "Name of the transcript")
	flag.StringVar(&transcriptStrandRaw, "transcript_strand", "+", "Transcript strand if not in BED file (+ (+1) or - (-1))")
	flag.StringVar(&pathFeatures, "path_features", "", "Path to FON features file (many transcripts)")
	flag.StringVar(&fonName, "fon_name", "transcript_stable_id", "FON key for feature name")
	flag.StringVar(&fonChrom, "fon_chrom", "chrom", "FON key for chromosome or locus")
	flag.StringVar(&fonStrand, "fon_strand", "strand", "FON key for strand")
	flag.StringVar(&fonCoords, "fon_coords", "exons", "FON key for coordinates (exons for example)")
	// Arguments: Input
	var pathBEDsRaw, pathSAMsRaw, pathBAMsRaw, rawSAMCmdIn string
	var minMappingQualityRaw, minOverlap int
	flag.StringVar(&pathBEDsRaw, "path_bed", "", "Path to BED file(s) to convert (comma separated, default stdin)")
	flag.StringVar(&pathSAMsRaw, "path_sam", "", "Path to SAM file(s) (comma separated)")
	flag.StringVar(&pathBAMsRaw, "path_bam", "", "Path to BAM file(s) (comma separated)")
	flag.StringVar(&rawSAMCmdIn, "sam_command_in", "", "Command line to execute for opening each of the SAM file (comma separated)")
	flag.IntVar(&minMappingQualityRaw, "read_min_mapping_quality", 0, "Minimum read mapping quality")
	flag.IntVar(&minOverlap, "read_min_overlap", 0, "Minimum total overlap of the read with the transcript exon(s)")
	// Arguments: Conversion
	var clip bool
	flag.BoolVar(&clip, "clip", true, "Cut intervals partially outside of the transcript (false skips them)")
	// Arguments: Output
	var pathOut, outCompression, pathMapping string
	flag.StringVar(&pathOut, "path_out", "-", "Path to output BED (stdout with -)")
	flag.StringVar(&outCompression, "out_compression", "", "Output compression: 'gzip', 'lz4' or 'lz4hc'")
	flag.StringVar(&pathMapping, "path_mapping", "", "Path to transcript name(s) mapping (tabulated file)")
	// Arguments: Parse
	flag.Parse()

	// Version
	if printVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Verbose
	if verbose && verboseLevel == 0 {
		verboseLevel = 1
	}

	// Max CPU
	if nWorker < 1 {
		nWorker = 1
	}
	runtime.GOMAXPROCS(nWorker + 1)

	// Time start
	timeStart := time.Now()

	// Open transcript(s)
	var features []feature.Feature
	if len(pathFeatures) > 0 {
		var err error
		features, err = feature.OpenFON(pathFeatures, fonName, fonChrom, fonStrand, fonCoords)
		if err != nil {
			log.Fatal(err)
		}
	} else if len(pathTranscript) > 0 {
		strand, err := cmapper.ParseStrand(transcriptStrandRaw)
		if err != nil {
			log.Fatal(err)
		}
		feat, err := feature.OpenBED(pathTranscript, transcriptName, strand)
		if err != nil {
			log.Fatal(err)
		}
		features = append(features, feat)
	} else {
		log.Fatal("No transcript input (path_transcript or path_features)")
	}
	if verboseLevel > 0 {
		log.Printf("%.1fmin - Loaded %d transcript(s)", time.Since(timeStart).Minutes(), len(features))
	}
	featureExts, err := feature.ExtendFeatures(features)
	if err != nil {
		log.Fatal(err)
	}

	// Open transcript name mapping
	var mapping map[string]string
	if pathMapping != "" {
		if mapping, err = feature.OpenMapping(pathMapping); err != nil {
			log.Fatal(err)
		}
	}

	conv, err := NewConverter(featureExts, mapping, clip, minOverlap)
	if err != nil {
		log.Fatal(err)
	}

	// Inputs
	var inputs []PathInput
	inputs = append(inputs, splitPaths(pathBEDsRaw, FormatBED)...)
	inputs = append(inputs, splitPaths(pathSAMsRaw, FormatSAM)...)
	inputs = append(inputs, splitPaths(pathBAMsRaw, FormatBAM)...)
	if len(inputs) == 0 {
		inputs = append(inputs, PathInput{Path: "-", Format: FormatBED})
	}
	opts := InputOptions{MinMappingQuality: byte(minMappingQualityRaw), NWorker: Max(1, nWorker/2)}
	if len(rawSAMCmdIn) > 0 {
		opts.SAMCmdIn = strings.Split(rawSAMCmdIn, ",")
	}

	// Output
	w, err := bed.Create(pathOut, outCompression, appendOutput)
	if err != nil {
		log.Fatal(err)
	}

	// Convert
	report, err := ConvertInputs(inputs, opts, conv, w, nWorker, timeStart, verboseLevel)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatal(err)
	}

	// Output: Report
	if pathReport != "" {
		if err = WriteReport(pathReport, report); err != nil {
			log.Fatal(err)
		}
	}

	// Verbose
	if verboseLevel > 0 {
		log.Printf("%.1fmin - Done %d record(s), %d converted, %d skipped", time.Since(timeStart).Minutes(), report.RecordsIn, report.RecordsConverted, report.RecordsSkipped)
	}
}
