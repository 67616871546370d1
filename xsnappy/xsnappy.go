// Package xsnappy wraps the snappy block format used for compressed filter images.
package xsnappy

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/snappy"
)

var (
	// ErrTooLarge is returned when the input cannot be represented as a snappy block.
	ErrTooLarge = errors.New("xsnappy: input too large to compress")

	// ErrCorrupt is returned when a compressed block cannot be decoded.
	ErrCorrupt = errors.New("xsnappy: corrupt input")
)

// Compress encodes src as a single snappy block.
func Compress(src []byte) ([]byte, error) {
	if snappy.MaxEncodedLen(len(src)) < 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(src))
	}

	return snappy.Encode(nil, src), nil
}

// UncompressedLength returns the decoded length recorded in a snappy block header.
func UncompressedLength(src []byte) (int, error) {
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return n, nil
}

// Decompress decodes a snappy block.
func Decompress(src []byte) ([]byte, error) {
	dst, err := snappy.Decode(nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return dst, nil
}

// DecompressInto decodes src into dst, which must be exactly UncompressedLength(src) bytes.
func DecompressInto(dst, src []byte) error {
	out, err := snappy.Decode(dst, src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	if len(out) != len(dst) || (len(out) > 0 && &out[0] != &dst[0]) {
		return fmt.Errorf("%w: decoded %d bytes into a %d byte buffer", ErrCorrupt, len(out), len(dst))
	}

	return nil
}

// Validate reports whether src is a well-formed snappy block.
func Validate(src []byte) bool {
	_, err := Decompress(src)
	return err == nil
}
