// Package cuckoo implements a fixed-size cuckoo filter for approximate set
// membership testing.
//
// The filter stores 16-bit fingerprints in buckets of four slots and uses
// partial-key cuckoo hashing: the alternate bucket of an entry is derived from
// its fingerprint alone, so entries can be relocated without the original key.
//
// Compared to a Bloom filter it:
//   - Supports deletion
//   - Probes at most two buckets per lookup
//   - Never grows; a saturated filter reports InsertFailed instead
//
// A Filter is not safe for concurrent mutation. Wrap it with NewLocked when
// it is shared between goroutines.
package cuckoo

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/vitalvas/gocuckoo/xhash"
	"go.uber.org/zap"
)

const (
	// MinCapacity is the smallest slot capacity a filter is created with.
	MinCapacity = 32

	// MaxKicks bounds the eviction walk of a single insertion.
	MaxKicks = 512

	// maxBuckets keeps the bucket count addressable by the 32-bit shift parameter.
	maxBuckets = 1 << 31
)

// Status is the outcome of an insertion.
type Status int

const (
	// Duplicate means the fingerprint was already present in a candidate bucket.
	Duplicate Status = iota
	// Inserted means the fingerprint was stored.
	Inserted
	// InsertFailed means the eviction walk gave up. The table may have been
	// permuted and a previously stored fingerprint dropped.
	InsertFailed
)

func (s Status) String() string {
	switch s {
	case Duplicate:
		return "duplicate"
	case Inserted:
		return "inserted"
	case InsertFailed:
		return "insert_failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Filter is a cuckoo filter with a fixed number of buckets.
//
// The header fields mirror the serialized image: see Encode.
type Filter struct {
	nbytes     uint64
	items      uint64
	bytes      uint64
	numBuckets uint64
	cnt        uint64
	exdata     uint64
	total      uint64
	nlz        int32

	buckets []bucket

	hasher xhash.Hasher
	rng    *rand.Rand
	logger *zap.Logger
}

// Option configures a Filter.
type Option func(*Filter)

// WithHasher sets the keyed hash. Images are only interchangeable between
// filters using the same hasher.
func WithHasher(h xhash.Hasher) Option {
	return func(f *Filter) {
		if h != nil {
			f.hasher = h
		}
	}
}

// WithRand sets the random source driving the eviction walk.
func WithRand(src rand.Source) Option {
	return func(f *Filter) {
		if src != nil {
			f.rng = rand.New(src)
		}
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Filter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func newFilter(opts []Option) *Filter {
	f := &Filter{}
	for _, opt := range opts {
		opt(f)
	}
	f.setDefaults()
	return f
}

func (f *Filter) setDefaults() {
	if f.hasher == nil {
		f.hasher = xhash.XXH64
	}
	if f.rng == nil {
		seed := uint64(time.Now().UnixNano())
		f.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
}

// New creates an empty filter able to hold at least capacity fingerprints.
//
// Parameters:
//   - capacity: expected number of elements, must be greater than 4
//
// The capacity is raised to MinCapacity and the bucket count rounded up to a
// power of two, so Items() may exceed the request. Lookups have a false
// positive rate of roughly 8/65536 at full load.
func New(capacity int, opts ...Option) (*Filter, error) {
	if capacity <= 4 {
		return nil, fmt.Errorf("%w: capacity must be > 4, got %d", ErrInvalidArgument, capacity)
	}

	capacity = max(capacity, MinCapacity)

	numBuckets := nextPowerOfTwo((uint64(capacity) + BucketSize - 1) / BucketSize)
	if numBuckets > maxBuckets {
		return nil, fmt.Errorf("%w: capacity %d needs more than %d buckets", ErrInvalidArgument, capacity, maxBuckets)
	}

	f := newFilter(opts)
	f.numBuckets = numBuckets
	f.items = numBuckets * BucketSize
	f.bytes = numBuckets * bucketBytes
	f.nbytes = HeaderSize + f.bytes
	f.nlz = nlzOf(numBuckets)
	f.buckets = make([]bucket, numBuckets)

	return f, nil
}

// Query reports whether key may be in the filter. A false result is definite.
func (f *Filter) Query(key []byte) bool {
	fp, i1 := f.locate(key)
	if f.buckets[i1].contains(fp) {
		return true
	}
	return f.buckets[f.altIndex(i1, fp)].contains(fp)
}

// Delete removes one occurrence of key's fingerprint.
// Returns true if a matching fingerprint was found and removed.
//
// A key whose fingerprint collides with another stored key removes that entry.
func (f *Filter) Delete(key []byte) bool {
	fp, i1 := f.locate(key)

	deleted := f.buckets[i1].remove(fp)
	if !deleted {
		deleted = f.buckets[f.altIndex(i1, fp)].remove(fp)
	}

	if deleted && f.cnt > 0 {
		f.cnt--
	}

	return deleted
}

// AddKey is Add for a string or numeric key.
func (f *Filter) AddKey(key any) (Status, uint64, error) {
	data, err := keyBytes(key)
	if err != nil {
		return InsertFailed, f.cnt, err
	}

	status, cnt := f.Add(data)
	return status, cnt, nil
}

// QueryKey is Query for a string or numeric key.
func (f *Filter) QueryKey(key any) (bool, error) {
	data, err := keyBytes(key)
	if err != nil {
		return false, err
	}
	return f.Query(data), nil
}

// DeleteKey is Delete for a string or numeric key.
func (f *Filter) DeleteKey(key any) (bool, error) {
	data, err := keyBytes(key)
	if err != nil {
		return false, err
	}
	return f.Delete(data), nil
}

func keyBytes(key any) ([]byte, error) {
	data, err := xhash.ItemBytes(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return data, nil
}

// Clear empties every bucket and resets the count.
// Total and ExData are preserved.
func (f *Filter) Clear() {
	clear(f.buckets)
	f.cnt = 0
}

// Count returns the number of successfully stored fingerprints.
func (f *Filter) Count() uint64 {
	return f.cnt
}

// Bytes returns the size of the bucket table in bytes.
func (f *Filter) Bytes() uint64 {
	return f.bytes
}

// Items returns the slot capacity.
func (f *Filter) Items() uint64 {
	return f.items
}

// NumBuckets returns the number of buckets.
func (f *Filter) NumBuckets() uint64 {
	return f.numBuckets
}

// LoadFactor returns Count() / Items().
func (f *Filter) LoadFactor() float64 {
	if f.items == 0 {
		return 0
	}
	return float64(f.cnt) / float64(f.items)
}

// ExData returns the opaque caller value stored with the filter.
func (f *Filter) ExData() uint64 {
	return f.exdata
}

// SetExData replaces the opaque caller value.
func (f *Filter) SetExData(v uint64) {
	f.exdata = v
}

// Total returns the number of Add calls plus any AddTotal adjustments.
func (f *Filter) Total() uint64 {
	return f.total
}

// AddTotal adds delta to the running total.
func (f *Filter) AddTotal(delta uint64) {
	f.total += delta
}
