//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package esam

import (
	"io"
	"os"
	"os/exec"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"
)

// Reader reads alignments from a SAM or BAM file.
type Reader struct {
	sam.RecordReader
	closers []io.Closer
	cmd     *exec.Cmd
}

// OpenSAM opens a SAM or BAM file. A SAM file can be read through the
// output of cmd (e.g. a decompression command) called with the path as last
// argument.
func OpenSAM(pathSAM PathSAM, cmd []string, nWorker int) (*Reader, error) {
	r := &Reader{}
	if pathSAM.Binary || len(cmd) == 0 {
		f, err := os.Open(pathSAM.Path)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, f)
		if pathSAM.Binary {
			br, err := bam.NewReader(f, nWorker)
			if err != nil {
				f.Close()
				return nil, errors.Wrapf(err, "opening BAM %s", pathSAM.Path)
			}
			r.closers = append([]io.Closer{br}, r.closers...)
			r.RecordReader = br
		} else {
			sr, err := sam.NewReader(f)
			if err != nil {
				f.Close()
				return nil, errors.Wrapf(err, "opening SAM %s", pathSAM.Path)
			}
			r.RecordReader = sr
		}
		return r, nil
	}

	args := append(append([]string{}, cmd[1:]...), pathSAM.Path)
	r.cmd = exec.Command(cmd[0], args...)
	pp, err := r.cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err = r.cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "starting %s", cmd[0])
	}
	sr, err := sam.NewReader(pp)
	if err != nil {
		r.cmd.Process.Kill()
		r.cmd.Wait()
		return nil, errors.Wrapf(err, "opening SAM from %s", cmd[0])
	}
	r.RecordReader = sr
	return r, nil
}

// Header returns the SAM header of the file.
func (r *Reader) Header() *sam.Header {
	switch rr := r.RecordReader.(type) {
	case *bam.Reader:
		return rr.Header()
	case *sam.Reader:
		return rr.Header()
	}
	return nil
}

func (r *Reader) Close() error {
	var err error
	for _, c := range r.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if r.cmd != nil {
		// Command might still be writing if reading stopped early
		r.cmd.Process.Kill()
		r.cmd.Wait()
	}
	return err
}
