package cuckoo

import (
	"encoding/binary"
	"math/bits"
)

// hashSeed keys both the item hash and the fingerprint perturbation hash.
const hashSeed = 1

// fingerprintOf takes the low 16 bits of the upper hash word; zero is
// reserved for empty slots and maps to 1.
func fingerprintOf(h uint64) fingerprint {
	fp := fingerprint(h >> 32)
	if fp == emptySlot {
		fp = 1
	}
	return fp
}

// locate returns the fingerprint and primary bucket of key.
func (f *Filter) locate(key []byte) (fingerprint, uint64) {
	h := f.hasher(key, hashSeed)
	return fingerprintOf(h), h % f.numBuckets
}

// altIndex returns the partner bucket of i for fp. Only the low
// log2(numBuckets) bits of i change, so altIndex(altIndex(i, fp), fp) == i.
func (f *Filter) altIndex(i uint64, fp fingerprint) uint64 {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], uint16(fp))

	h := f.hasher(buf[:], hashSeed) >> (uint(f.nlz) + 32)

	// the mask is a no-op for coherent geometry and keeps cast images in bounds
	return (i ^ h) & (f.numBuckets - 1)
}

// nlzOf returns the shift parameter for a power-of-two bucket count:
// hash >> (nlzOf(n) + 32) keeps exactly log2(n) bits.
func nlzOf(numBuckets uint64) int32 {
	return int32(bits.LeadingZeros32(uint32(numBuckets))) + 1
}

func nextPowerOfTwo(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len64(n-1)
}

func isPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}
