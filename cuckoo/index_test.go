package cuckoo

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/gocuckoo/xhash"
)

func TestFingerprintOf(t *testing.T) {
	t.Run("uses the upper hash word", func(t *testing.T) {
		assert.Equal(t, fingerprint(0xbeef), fingerprintOf(0x0000beef_00000000))
		assert.Equal(t, fingerprint(0xbeef), fingerprintOf(0x1234beef_ffffffff))
	})

	t.Run("zero maps to one", func(t *testing.T) {
		assert.Equal(t, fingerprint(1), fingerprintOf(0))
		assert.Equal(t, fingerprint(1), fingerprintOf(0xffff0000_12345678))
	})
}

func TestNlzOf(t *testing.T) {
	for _, n := range []uint64{8, 32, 1024, 1 << 20, 1 << 31} {
		shift := uint(nlzOf(n)) + 32
		assert.Equal(t, n-1, ^uint64(0)>>shift, "buckets=%d", n)
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[uint64]uint64{0: 1, 1: 1, 2: 2, 3: 4, 8: 8, 9: 16, 25: 32, 1000: 1024}
	for in, want := range cases {
		assert.Equal(t, want, nextPowerOfTwo(in), "n=%d", in)
	}
}

func TestAltIndex(t *testing.T) {
	hashers := map[string]xhash.Hasher{
		"xxh64":   xhash.XXH64,
		"metro":   xhash.Metro64,
		"murmur3": xhash.Murmur64,
	}

	for name, h := range hashers {
		t.Run("involution with "+name, func(t *testing.T) {
			r := rand.New(rand.NewPCG(1, 2))

			for _, capacity := range []int{5, 100, 1000, 1 << 16} {
				f, err := New(capacity, WithHasher(h))
				require.NoError(t, err)

				for k := 0; k < 2000; k++ {
					i := r.Uint64N(f.numBuckets)
					fp := fingerprint(r.IntN(0xffff) + 1)

					j := f.altIndex(i, fp)
					assert.Less(t, j, f.numBuckets)
					assert.Equal(t, i, f.altIndex(j, fp))
				}
			}
		})
	}

	t.Run("primary index in range", func(t *testing.T) {
		f, err := New(1000)
		require.NoError(t, err)

		for k := 0; k < 1000; k++ {
			fp, i := f.locate([]byte{byte(k), byte(k >> 8)})
			assert.Less(t, i, f.numBuckets)
			assert.NotEqual(t, emptySlot, fp)
		}
	})
}
