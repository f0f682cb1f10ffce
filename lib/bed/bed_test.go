//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package bed

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBED = `track name=test
# comment
chr1	200	202	read1	0	+

chr1	10	20
chr2	5
chr1	15	30	read2	0	-	extra
`

func readAll(t *testing.T, rd *Reader) []*Record {
	var recs []*Record
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		recs = append(recs, rec)
	}
	return recs
}

func TestReader(t *testing.T) {
	rd, err := NewReader(strings.NewReader(testBED))
	require.NoError(t, err)
	recs := readAll(t, rd)
	require.Len(t, recs, 3)
	assert.Equal(t, 7, rd.Line())
	assert.NoError(t, rd.Close())

	assert.Equal(t, "chr1", recs[0].Chrom())
	start, err := recs[0].Start()
	assert.NoError(t, err)
	assert.Equal(t, 200, start)
	end, err := recs[0].End()
	assert.NoError(t, err)
	assert.Equal(t, 202, end)
	assert.Equal(t, "+", recs[0].Strand())
	assert.Equal(t, "", recs[1].Strand())
	assert.Equal(t, "-", recs[2].Strand())
}

func TestReaderGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(testBED))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	rd, err := NewReader(&buf)
	require.NoError(t, err)
	assert.Len(t, readAll(t, rd), 3)
	assert.NoError(t, rd.Close())
}

func TestRecordInvalidCoordinate(t *testing.T) {
	rec := &Record{Fields: []string{"chr1", "a", "10"}}
	_, err := rec.Start()
	assert.Error(t, err)
}

func TestRecordConvert(t *testing.T) {
	rec := &Record{Fields: []string{"chr1", "200", "202", "read1", "0", "+"}}
	conv := rec.Convert("ENST1", 101, 103)
	assert.Equal(t, "ENST1\t101\t103\tread1\t0\t+", conv.String())
	// Source record untouched
	assert.Equal(t, "chr1", rec.Chrom())
	assert.Equal(t, "chrX\t1\t5\tname", NewRecord("chrX", 1, 5, "name").String())
}

func TestWriter(t *testing.T) {
	dir := t.TempDir()
	recs := []*Record{NewRecord("t1", 0, 10, "a"), NewRecord("t1", 20, 30, "b", "0", "-")}
	want := "t1\t0\t10\ta\nt1\t20\t30\tb\t0\t-\n"

	for _, compression := range []string{"", "gzip", "lz4", "lz4hc"} {
		path := filepath.Join(dir, "out"+compression+".bed")
		w, err := Create(path, compression, false)
		require.NoError(t, err)
		for _, rec := range recs {
			require.NoError(t, w.Write(rec))
		}
		require.NoError(t, w.Close())

		f, err := os.Open(path)
		require.NoError(t, err)
		var in io.Reader = f
		switch compression {
		case "gzip":
			in, err = gzip.NewReader(f)
			require.NoError(t, err)
		case "lz4", "lz4hc":
			in = lz4.NewReader(f)
		}
		got, err := ioutil.ReadAll(in)
		require.NoError(t, err)
		f.Close()
		assert.Equal(t, want, string(got), compression)
	}

	_, err := NewWriter(ioutil.Discard, "bzip2")
	assert.Error(t, err)
}

func TestWriterAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bed")
	for i := 0; i < 2; i++ {
		w, err := Create(path, "", true)
		require.NoError(t, err)
		require.NoError(t, w.Write(NewRecord("t1", i, i+1)))
		require.NoError(t, w.Close())
	}
	got, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "t1\t0\t1\nt1\t1\t2\n", string(got))
}
