package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertLookupRemove(t *testing.T) {
	r := New[string]()
	h := NewHandle()

	_, ok := r.Lookup(h)
	assert.False(t, ok)

	r.Insert(h, "hello")
	got, ok := r.Lookup(h)
	require.True(t, ok)
	assert.Equal(t, "hello", got)

	removed, ok := r.Remove(h)
	require.True(t, ok)
	assert.Equal(t, "hello", removed)

	_, ok = r.Lookup(h)
	assert.False(t, ok)
}

func TestHandlesNeverCollide(t *testing.T) {
	seen := map[Handle]bool{}
	for i := 0; i < 1000; i++ {
		h := NewHandle()
		require.False(t, seen[h])
		require.NotZero(t, h)
		seen[h] = true
	}
}

func TestConcurrentLookupDuringWrites(t *testing.T) {
	r := New[int]()
	var wg sync.WaitGroup

	handles := make([]Handle, 200)
	for i := range handles {
		handles[i] = NewHandle()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i, h := range handles {
			r.Insert(h, i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 5000; i++ {
			for _, h := range handles {
				r.Lookup(h)
			}
		}
	}()
	wg.Wait()

	assert.Equal(t, len(handles), r.Len())
}

func TestRangeSeesSnapshot(t *testing.T) {
	r := New[int]()
	for i := 0; i < 5; i++ {
		r.Insert(NewHandle(), i)
	}

	count := 0
	r.Range(func(h Handle, rec int) bool {
		count++
		return true
	})
	assert.Equal(t, 5, count)
}
