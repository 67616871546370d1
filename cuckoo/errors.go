package cuckoo

import "errors"

var (
	// ErrInvalidArgument is returned for a capacity hint that is too small or
	// too large, and for keys that are neither strings nor numbers.
	ErrInvalidArgument = errors.New("cuckoo: invalid argument")

	// ErrFormat is returned when a serialized image has an inconsistent size or geometry.
	ErrFormat = errors.New("cuckoo: malformed filter image")

	// ErrCodec is returned when compressing or decompressing an image fails.
	ErrCodec = errors.New("cuckoo: codec failure")
)
