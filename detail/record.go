// SPDX-License-Identifier: MIT
//
// Package detail keeps per-path records of an assignment run and reduces them
// to one row per origin-destination pair.
//
// Records are written to a Spool fraction by fraction while the schedule runs
// and read back once it is exhausted, when every path is summarised against
// the final edge state and aggregated by an Aggregator.
package detail

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/roadflow/core"
	"github.com/katalvlaran/roadflow/pathcodec"
)

// maxIDLen bounds a decoded vertex ID.
const maxIDLen = 1 << 16

// ErrCorrupt indicates an unreadable spooled record.
var ErrCorrupt = errors.New("detail: corrupt record")

// Record is one routed OD pair in one schedule fraction.
type Record struct {
	Origin      string
	Destination string
	Fraction    int     // index into the schedule
	P           float64 // proportion of that fraction
	Flow        float64 // demand-scaled OD volume, before P
	Path        []core.EdgeID
}

// appendRecord encodes r onto dst:
//
//	uvarint(len) origin  uvarint(len) destination  uvarint(fraction)
//	float64(P)  float64(Flow)  path
//
// Floats are little-endian IEEE-754 bits.
func appendRecord(dst []byte, r Record) ([]byte, error) {
	if r.Fraction < 0 {
		return dst, fmt.Errorf("detail: negative fraction index %d", r.Fraction)
	}
	dst = appendString(dst, r.Origin)
	dst = appendString(dst, r.Destination)
	dst = binary.AppendUvarint(dst, uint64(r.Fraction))
	dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(r.P))
	dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(r.Flow))

	return pathcodec.Append(dst, r.Path)
}

func appendString(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))

	return append(dst, s...)
}

// readRecord decodes one record. io.EOF means a clean end of stream.
func readRecord(r *bufio.Reader) (Record, error) {
	var rec Record
	o, err := readString(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return rec, io.EOF
		}

		return rec, err
	}
	d, err := readString(r)
	if err != nil {
		return rec, corrupt("destination", err)
	}
	frac, err := binary.ReadUvarint(r)
	if err != nil {
		return rec, corrupt("fraction", err)
	}
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return rec, corrupt("proportion and flow", err)
	}
	path, err := pathcodec.ReadPath(r)
	if err != nil {
		return rec, corrupt("path", err)
	}

	rec.Origin = o
	rec.Destination = d
	rec.Fraction = int(frac)
	rec.P = math.Float64frombits(binary.LittleEndian.Uint64(buf[:8]))
	rec.Flow = math.Float64frombits(binary.LittleEndian.Uint64(buf[8:]))
	rec.Path = path

	return rec, nil
}

// readString returns io.EOF untouched only when nothing was read.
func readString(r *bufio.Reader) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}

		return "", corrupt("string length", err)
	}
	if n > maxIDLen {
		return "", fmt.Errorf("%w: string length %d", ErrCorrupt, n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", corrupt("string", err)
	}

	return string(b), nil
}

func corrupt(what string, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}

	return fmt.Errorf("%w: %s: %v", ErrCorrupt, what, err)
}
