//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"gopkg.in/fatih/set.v0"
)

type Report struct {
	RecordsIn        int      `json:"records_in"`
	RecordsConverted int      `json:"records_converted"`
	RecordsSkipped   int      `json:"records_skipped"`
	RecordsOut       int      `json:"records_out"`
	TranscriptsHit   []string `json:"transcripts_hit"`
	transcripts      set.Interface
}

// Add counts a converted batch.
func (r *Report) Add(b *Batch) {
	r.RecordsIn += len(b.Items)
	r.RecordsConverted += b.NConverted
	r.RecordsSkipped += len(b.Items) - b.NConverted
	r.RecordsOut += len(b.Records)
	for _, t := range b.Transcripts {
		r.transcripts.Add(t)
	}
}

func WriteReport(pathReport string, r *Report) error {
	r.TranscriptsHit = []string{}
	for _, t := range r.transcripts.List() {
		r.TranscriptsHit = append(r.TranscriptsHit, t.(string))
	}
	sort.Strings(r.TranscriptsHit)
	report, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	if pathReport != "-" {
		if f, err := os.Create(pathReport); err != nil {
			return err
		} else {
			f.Write(report)
			return f.Close()
		}
	} else {
		fmt.Println(string(report))
	}
	return nil
}
