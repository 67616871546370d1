package cuckoo

// BucketSize is the number of fingerprint slots per bucket.
const BucketSize = 4

// fingerprint is a non-zero 16-bit digest of a key; zero marks an empty slot.
type fingerprint uint16

const emptySlot fingerprint = 0

type bucket [BucketSize]fingerprint

func (b *bucket) contains(fp fingerprint) bool {
	for _, v := range b {
		if v == fp {
			return true
		}
	}
	return false
}

// add stores fp in the first empty slot.
func (b *bucket) add(fp fingerprint) bool {
	for i, v := range b {
		if v == emptySlot {
			b[i] = fp
			return true
		}
	}
	return false
}

// remove clears the first slot holding fp.
func (b *bucket) remove(fp fingerprint) bool {
	for i, v := range b {
		if v == fp {
			b[i] = emptySlot
			return true
		}
	}
	return false
}

// swap stores fp at slot i and returns the previous occupant.
func (b *bucket) swap(i int, fp fingerprint) fingerprint {
	old := b[i]
	b[i] = fp
	return old
}

func (b *bucket) occupied() int {
	n := 0
	for _, v := range b {
		if v != emptySlot {
			n++
		}
	}
	return n
}
