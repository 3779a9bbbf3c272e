// SPDX-License-Identifier: MIT
//
// Package pathcodec encodes an ordered edge path as a length-prefixed list of
// unsigned varints:
//
//	uvarint(len) uvarint(e0) uvarint(e1) ... uvarint(e(len-1))
//
// The format is self-delimiting, so paths can be concatenated on one stream
// and read back one at a time with ReadPath.
package pathcodec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/roadflow/core"
)

// MaxPathLen bounds the declared length of a decoded path.
const MaxPathLen = 1 << 24

var (
	// ErrNegativeEdge indicates an attempt to encode a negative EdgeID.
	ErrNegativeEdge = errors.New("pathcodec: negative edge id")

	// ErrCorrupt indicates malformed or truncated input.
	ErrCorrupt = errors.New("pathcodec: corrupt path encoding")

	// ErrTooLong indicates a declared length above MaxPathLen.
	ErrTooLong = errors.New("pathcodec: path too long")
)

// Append encodes path onto dst and returns the extended slice.
func Append(dst []byte, path []core.EdgeID) ([]byte, error) {
	for i, e := range path {
		if e < 0 {
			return dst, fmt.Errorf("%w: position %d id %d", ErrNegativeEdge, i, e)
		}
	}
	dst = binary.AppendUvarint(dst, uint64(len(path)))
	for _, e := range path {
		dst = binary.AppendUvarint(dst, uint64(e))
	}

	return dst, nil
}

// Decode reads one path from the front of src and returns it with the number
// of bytes consumed.
func Decode(src []byte) ([]core.EdgeID, int, error) {
	n, k := binary.Uvarint(src)
	if k <= 0 {
		return nil, 0, fmt.Errorf("%w: bad length prefix", ErrCorrupt)
	}
	if n > MaxPathLen {
		return nil, 0, fmt.Errorf("%w: %d", ErrTooLong, n)
	}
	off := k
	path := make([]core.EdgeID, n)
	for i := range path {
		v, k := binary.Uvarint(src[off:])
		if k <= 0 {
			return nil, 0, fmt.Errorf("%w: element %d of %d", ErrCorrupt, i, n)
		}
		path[i] = core.EdgeID(v)
		off += k
	}

	return path, off, nil
}

// ReadPath reads one path from r. It returns io.EOF only when r is exhausted
// before the first byte; a path cut short yields ErrCorrupt.
func ReadPath(r io.ByteReader) ([]core.EdgeID, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("%w: length prefix: %v", ErrCorrupt, err)
	}
	if n > MaxPathLen {
		return nil, fmt.Errorf("%w: %d", ErrTooLong, n)
	}
	path := make([]core.EdgeID, n)
	for i := range path {
		v, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d of %d: %v", ErrCorrupt, i, n, err)
		}
		path[i] = core.EdgeID(v)
	}

	return path, nil
}
