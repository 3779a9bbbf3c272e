// SPDX-License-Identifier: MIT

package detail

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrFractionOrder is returned when fractions are not spooled 0, 1, 2, ...
var ErrFractionOrder = errors.New("detail: fractions must be spooled in order")

// Spool stores path records fraction by fraction, in memory or as one file
// per fraction under a private temporary directory. Not safe for concurrent
// use.
type Spool struct {
	dir     string // "" keeps records in memory
	mem     [][]byte
	files   []string
	records int
}

// NewSpool returns a Spool. An empty dir keeps everything in memory;
// otherwise a temporary directory is created inside dir and removed by Close.
func NewSpool(dir string) (*Spool, error) {
	s := &Spool{}
	if dir == "" {
		return s, nil
	}
	tmp, err := os.MkdirTemp(dir, "roadflow-spool-*")
	if err != nil {
		return nil, fmt.Errorf("detail: create spool dir: %w", err)
	}
	s.dir = tmp

	return s, nil
}

// Dir returns the spool directory, "" for an in-memory spool.
func (s *Spool) Dir() string { return s.dir }

// Fractions returns how many fractions have been written.
func (s *Spool) Fractions() int { return len(s.mem) + len(s.files) }

// Records returns how many records have been written.
func (s *Spool) Records() int { return s.records }

// WriteFraction appends all records of fraction, which must equal Fractions().
func (s *Spool) WriteFraction(fraction int, recs []Record) error {
	if fraction != s.Fractions() {
		return fmt.Errorf("%w: got %d, want %d", ErrFractionOrder, fraction, s.Fractions())
	}

	var buf []byte
	var err error
	for _, r := range recs {
		if buf, err = appendRecord(buf, r); err != nil {
			return err
		}
	}

	if s.dir == "" {
		s.mem = append(s.mem, buf)
		s.records += len(recs)

		return nil
	}

	name := filepath.Join(s.dir, fmt.Sprintf("paths_%03d.bin", fraction))
	if err := os.WriteFile(name, buf, 0o600); err != nil {
		return fmt.Errorf("detail: spool fraction %d: %w", fraction, err)
	}
	s.files = append(s.files, name)
	s.records += len(recs)

	return nil
}

// Each calls fn for every spooled record, fraction by fraction in write
// order. A non-nil error from fn stops the iteration and is returned.
func (s *Spool) Each(fn func(Record) error) error {
	for _, b := range s.mem {
		if err := each(bufio.NewReader(bytes.NewReader(b)), fn); err != nil {
			return err
		}
	}
	for _, name := range s.files {
		if err := s.eachFile(name, fn); err != nil {
			return err
		}
	}

	return nil
}

func (s *Spool) eachFile(name string, fn func(Record) error) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("detail: open spool: %w", err)
	}
	defer f.Close()

	return each(bufio.NewReader(f), fn)
}

func each(r *bufio.Reader, fn func(Record) error) error {
	for {
		rec, err := readRecord(r)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}

// Close discards spooled records and removes the spool directory.
func (s *Spool) Close() error {
	s.mem = nil
	s.files = nil
	if s.dir == "" {
		return nil
	}
	dir := s.dir
	s.dir = ""
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("detail: remove spool dir: %w", err)
	}

	return nil
}
