package cuckoo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucket(t *testing.T) {
	t.Run("add fills the first empty slot", func(t *testing.T) {
		var b bucket
		assert.True(t, b.add(7))
		assert.True(t, b.add(9))
		assert.Equal(t, bucket{7, 9, 0, 0}, b)
		assert.Equal(t, 2, b.occupied())
	})

	t.Run("add fails when full", func(t *testing.T) {
		b := bucket{1, 2, 3, 4}
		assert.False(t, b.add(5))
		assert.Equal(t, bucket{1, 2, 3, 4}, b)
	})

	t.Run("remove clears one slot", func(t *testing.T) {
		b := bucket{5, 5, 6, 0}
		assert.True(t, b.remove(5))
		assert.Equal(t, bucket{0, 5, 6, 0}, b)
		assert.False(t, b.remove(8))
	})

	t.Run("contains", func(t *testing.T) {
		b := bucket{1, 0, 3, 0}
		assert.True(t, b.contains(3))
		assert.False(t, b.contains(2))
	})

	t.Run("swap returns the previous occupant", func(t *testing.T) {
		b := bucket{1, 2, 3, 4}
		assert.Equal(t, fingerprint(3), b.swap(2, 9))
		assert.Equal(t, bucket{1, 2, 9, 4}, b)
	})
}
