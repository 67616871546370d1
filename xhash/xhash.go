// Package xhash provides the keyed hash primitives used by the cuckoo filter
// together with the canonical byte encoding of string and numeric items.
package xhash

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	xxh32 "github.com/OneOfOne/xxhash"
	xxh64 "github.com/cespare/xxhash/v2"
	metro "github.com/dgryski/go-metro"
	"github.com/twmb/murmur3"
)

var (
	// ErrUnsupportedItem is returned when an item is neither a string nor a number.
	ErrUnsupportedItem = errors.New("xhash: item must be a string or number")

	// ErrSeedRange is returned when a seed does not fit the hash width.
	ErrSeedRange = errors.New("xhash: seed out of range")
)

// Hasher is a deterministic keyed 64-bit hash.
type Hasher func(data []byte, seed uint64) uint64

// XXH64 is the default hasher. Filters built with it are byte-compatible
// with images produced by other xxHash64 based implementations.
func XXH64(data []byte, seed uint64) uint64 {
	if seed == 0 {
		return xxh64.Sum64(data)
	}

	d := xxh64.NewWithSeed(seed)
	_, _ = d.Write(data)

	return d.Sum64()
}

// XXH32 returns the 32-bit xxHash of data.
func XXH32(data []byte, seed uint32) uint32 {
	return xxh32.Checksum32S(data, seed)
}

// Metro64 hashes data with MetroHash64.
func Metro64(data []byte, seed uint64) uint64 {
	return metro.Hash64(data, seed)
}

// Murmur64 hashes data with the first half of MurmurHash3 x64/128.
func Murmur64(data []byte, seed uint64) uint64 {
	return murmur3.SeedSum64(seed, data)
}

// ByName resolves a hasher by its configuration name.
func ByName(name string) (Hasher, error) {
	switch name {
	case "", "xxh64", "xxhash":
		return XXH64, nil
	case "metro":
		return Metro64, nil
	case "murmur3":
		return Murmur64, nil
	default:
		return nil, fmt.Errorf("xhash: unknown hasher %q", name)
	}
}

// ItemBytes returns the canonical byte form of a string or numeric item.
//
// Strings and byte slices are used verbatim. Every numeric kind is converted
// to float64 and encoded as 8 little-endian IEEE-754 bytes, so 7, int64(7)
// and 7.0 all hash identically.
func ItemBytes(item any) ([]byte, error) {
	var f float64

	switch v := item.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	default:
		return nil, fmt.Errorf("%w: got %T", ErrUnsupportedItem, item)
	}

	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(f))

	return buf, nil
}

// H32 returns the 32-bit xxHash of a string or numeric item.
// The optional seed defaults to 0 and must fit in 32 bits.
func H32(item any, seed ...uint64) (uint32, error) {
	s, err := optionalSeed(seed, math.MaxUint32)
	if err != nil {
		return 0, err
	}

	data, err := ItemBytes(item)
	if err != nil {
		return 0, err
	}

	return XXH32(data, uint32(s)), nil
}

// H64 returns the 64-bit xxHash of a string or numeric item.
func H64(item any, seed ...uint64) (uint64, error) {
	s, err := optionalSeed(seed, math.MaxUint64)
	if err != nil {
		return 0, err
	}

	data, err := ItemBytes(item)
	if err != nil {
		return 0, err
	}

	return XXH64(data, s), nil
}

func optionalSeed(seed []uint64, limit uint64) (uint64, error) {
	switch len(seed) {
	case 0:
		return 0, nil
	case 1:
		if seed[0] > limit {
			return 0, fmt.Errorf("%w: %d > %d", ErrSeedRange, seed[0], limit)
		}
		return seed[0], nil
	default:
		return 0, fmt.Errorf("%w: expected at most one seed, got %d", ErrSeedRange, len(seed))
	}
}
