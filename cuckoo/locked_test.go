package cuckoo

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocked(t *testing.T) {
	t.Run("concurrent operations", func(t *testing.T) {
		l := NewLocked(newTestFilter(t, 100000))

		var inserted atomic.Uint64
		var wg sync.WaitGroup

		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()

				for i := 0; i < 1000; i++ {
					key := []byte(fmt.Sprintf("worker-%d-element-%d", w, i))
					if status, _ := l.Add(key); status == Inserted {
						inserted.Add(1)
					}
					assert.True(t, l.Query(key))
				}
			}(w)
		}

		wg.Wait()

		assert.Equal(t, inserted.Load(), l.Count())
		assert.Equal(t, uint64(8000), l.Total())
	})

	t.Run("full surface", func(t *testing.T) {
		l := NewLocked(newTestFilter(t, 100))

		status, cnt := l.Put([]byte("alpha"))
		assert.Equal(t, Inserted, status)
		assert.Equal(t, uint64(1), cnt)

		status, _, err := l.AddKey(12)
		require.NoError(t, err)
		assert.Equal(t, Inserted, status)

		ok, err := l.QueryKey(12)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = l.DeleteKey(12)
		require.NoError(t, err)
		assert.True(t, ok)

		assert.True(t, l.Delete([]byte("alpha")))
		assert.Equal(t, uint64(0), l.Count())

		l.SetExData(3)
		l.AddTotal(4)
		assert.Equal(t, uint64(3), l.ExData())
		assert.Equal(t, uint64(6), l.Total())
		assert.Equal(t, uint64(256), l.Bytes())
		assert.Equal(t, uint64(128), l.Items())
		assert.Equal(t, uint64(32), l.NumBuckets())

		l.Add([]byte("beta"))
		assert.Greater(t, l.LoadFactor(), 0.0)

		img, err := l.Encode(true)
		require.NoError(t, err)

		f, err := Decode(img, true)
		require.NoError(t, err)
		assert.True(t, f.Query([]byte("beta")))

		l.Clear()
		assert.Equal(t, uint64(0), l.Count())
		assert.False(t, l.Query([]byte("beta")))
	})
}
