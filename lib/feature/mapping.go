//
// Copyright © 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"io"
	"os"

	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"
)

type mappingRow struct {
	Name   string
	Mapped string
}

// OpenMapping reads a two columns tabulated file: transcript name and output name.
func OpenMapping(mpath string) (map[string]string, error) {
	m := make(map[string]string)

	mfos, err := os.Open(mpath)
	if err != nil {
		return m, err
	}
	defer mfos.Close()

	r := tsv.NewReader(mfos)
	r.Comment = '#'
	var row mappingRow
	for {
		if err := r.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return m, errors.Wrap(err, mpath)
		}
		m[row.Name] = row.Mapped
	}
	return m, nil
}

// MapName returns the mapped name, or name itself if not in m.
func MapName(name string, m map[string]string) string {
	if nn, ok := m[name]; ok {
		return nn
	}
	return name
}
