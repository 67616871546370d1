package cuckoo

import (
	"encoding/binary"
	"fmt"

	"github.com/vitalvas/gocuckoo/xsnappy"
)

// Image layout, native byte order:
//
//	0   nbytes      uint64
//	8   items       uint64
//	16  bytes       uint64
//	24  num_buckets uint64
//	32  cnt         uint64
//	40  exdata      uint64
//	48  total       uint64
//	56  nlz         int32
//	60  buckets     num_buckets * BucketSize * uint16
//	    4 bytes of tail padding
//
// The bucket table starts inside the padded header, which keeps images
// interchangeable with the C struct layout on 64-bit hosts.
const (
	// HeaderSize is the fixed overhead of an image: nbytes == HeaderSize + bytes.
	HeaderSize = 64

	bucketsOffset = 60
	bucketBytes   = BucketSize * 2
)

var order = binary.NativeEndian

// Encode returns the byte image of the filter, snappy compressed when
// compress is set. Byte order is the host's and is not recorded.
func (f *Filter) Encode(compress bool) ([]byte, error) {
	img := f.image()
	if !compress {
		return img, nil
	}

	out, err := xsnappy.Compress(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCodec, err)
	}

	return out, nil
}

// MarshalBinary implements encoding.BinaryMarshaler with the uncompressed image.
func (f *Filter) MarshalBinary() ([]byte, error) {
	return f.image(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler for uncompressed images.
// Options previously applied to f are kept.
func (f *Filter) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: image is %d bytes, need at least %d", ErrFormat, len(data), HeaderSize)
	}

	f.setDefaults()
	return f.load(data, true)
}

// Decode reconstructs a filter from an image produced by Encode with the
// same compress flag. The input is copied; the result owns its memory.
func Decode(data []byte, compress bool, opts ...Option) (*Filter, error) {
	if compress {
		n, err := xsnappy.UncompressedLength(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCodec, err)
		}
		if n < HeaderSize {
			return nil, fmt.Errorf("%w: decompressed image is %d bytes, need at least %d", ErrFormat, n, HeaderSize)
		}

		buf := make([]byte, n)
		if err := xsnappy.DecompressInto(buf, data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCodec, err)
		}
		data = buf
	} else if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: image is %d bytes, need at least %d", ErrFormat, len(data), HeaderSize)
	}

	f := newFilter(opts)
	if err := f.load(data, true); err != nil {
		return nil, err
	}

	return f, nil
}

// Cast builds a filter from the first size bytes of data with minimal
// validation: the header counters are trusted as-is. Only the bucket
// geometry is checked, because indexing depends on it.
//
// It exists for images produced outside this package; prefer Decode.
func Cast(data []byte, size int, opts ...Option) (*Filter, error) {
	if size < HeaderSize {
		return nil, fmt.Errorf("%w: size %d is smaller than the header", ErrFormat, size)
	}
	if size > len(data) {
		return nil, fmt.Errorf("%w: size %d exceeds the %d supplied bytes", ErrFormat, size, len(data))
	}

	f := newFilter(opts)
	if err := f.load(data[:size], false); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *Filter) image() []byte {
	buf := make([]byte, HeaderSize+len(f.buckets)*bucketBytes)

	order.PutUint64(buf[0:], f.nbytes)
	order.PutUint64(buf[8:], f.items)
	order.PutUint64(buf[16:], f.bytes)
	order.PutUint64(buf[24:], f.numBuckets)
	order.PutUint64(buf[32:], f.cnt)
	order.PutUint64(buf[40:], f.exdata)
	order.PutUint64(buf[48:], f.total)
	order.PutUint32(buf[56:], uint32(f.nlz))

	off := bucketsOffset
	for i := range f.buckets {
		for _, fp := range f.buckets[i] {
			order.PutUint16(buf[off:], uint16(fp))
			off += 2
		}
	}

	return buf
}

// load parses an image into f. In strict mode the recorded sizes must agree
// with the input length and with each other.
func (f *Filter) load(data []byte, strict bool) error {
	nbytes := order.Uint64(data[0:])
	numBuckets := order.Uint64(data[24:])
	size := order.Uint64(data[16:])

	if strict && nbytes != uint64(len(data)) {
		return fmt.Errorf("%w: recorded size %d does not match %d bytes", ErrFormat, nbytes, len(data))
	}

	if !isPowerOfTwo(numBuckets) || numBuckets > maxBuckets {
		return fmt.Errorf("%w: bucket count %d is not a supported power of two", ErrFormat, numBuckets)
	}

	region := numBuckets * bucketBytes
	if bucketsOffset+region > uint64(len(data)) {
		return fmt.Errorf("%w: %d buckets do not fit in %d bytes", ErrFormat, numBuckets, len(data))
	}

	if strict && (size != region || nbytes != HeaderSize+region) {
		return fmt.Errorf("%w: bucket region is %d bytes, expected %d", ErrFormat, size, region)
	}

	f.nbytes = nbytes
	f.items = order.Uint64(data[8:])
	f.bytes = size
	f.numBuckets = numBuckets
	f.cnt = order.Uint64(data[32:])
	f.exdata = order.Uint64(data[40:])
	f.total = order.Uint64(data[48:])
	f.nlz = int32(order.Uint32(data[56:]))

	f.buckets = make([]bucket, numBuckets)

	off := bucketsOffset
	for i := range f.buckets {
		for j := range f.buckets[i] {
			f.buckets[i][j] = fingerprint(order.Uint16(data[off:]))
			off += 2
		}
	}

	return nil
}
