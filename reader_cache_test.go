package pave

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test ReaderCache functionality
func TestReaderCache(t *testing.T) {
	t.Run("NewReaderCache", func(t *testing.T) {
		cache := NewReaderCache[string, int]()
		assert.NotNil(t, cache)
	})

	t.Run("GetOrCreate", func(t *testing.T) {
		cache := NewReaderCache[string, int]()

		// First call should create
		v, err := cache.GetOrCreate("a", func() (int, error) { return 42, nil })
		require.NoError(t, err)
		assert.Equal(t, 42, v)

		// Second call should return the cached value
		v, err = cache.GetOrCreate("a", func() (int, error) {
			t.Error("Factory function should not be called second time")
			return 99, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, v, "Second call should return data from first call")
	})

	t.Run("CachesErrors", func(t *testing.T) {
		cache := NewReaderCache[string, int]()
		errBuild := errors.New("build failed")

		_, err := cache.GetOrCreate("a", func() (int, error) { return 0, errBuild })
		assert.ErrorIs(t, err, errBuild)

		_, err = cache.GetOrCreate("a", func() (int, error) {
			t.Error("Factory function should not be retried")
			return 1, nil
		})
		assert.ErrorIs(t, err, errBuild)

		_, ok := cache.Get("a")
		assert.False(t, ok, "Failed builds are not returned by Get")
	})

	t.Run("Get", func(t *testing.T) {
		cache := NewReaderCache[string, int]()

		// Should not exist initially
		_, exists := cache.Get("a")
		assert.False(t, exists)

		// Create entry
		_, err := cache.GetOrCreate("a", func() (int, error) { return 42, nil })
		require.NoError(t, err)

		// Should exist now
		v, exists := cache.Get("a")
		assert.True(t, exists)
		assert.Equal(t, 42, v)
	})

	t.Run("Delete", func(t *testing.T) {
		cache := NewReaderCache[string, int]()
		_, _ = cache.GetOrCreate("a", func() (int, error) { return 42, nil })

		cache.Delete("a")

		_, exists := cache.Get("a")
		assert.False(t, exists)

		v, err := cache.GetOrCreate("a", func() (int, error) { return 7, nil })
		require.NoError(t, err)
		assert.Equal(t, 7, v, "Factory should run again after Delete")
	})

	t.Run("Clear", func(t *testing.T) {
		cache := NewReaderCache[string, int]()
		_, _ = cache.GetOrCreate("a", func() (int, error) { return 1, nil })
		_, _ = cache.GetOrCreate("b", func() (int, error) { return 2, nil })

		cache.Clear()

		_, existsA := cache.Get("a")
		_, existsB := cache.Get("b")
		assert.False(t, existsA)
		assert.False(t, existsB)
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		cache := NewReaderCache[string, int]()
		var calls atomic.Int32
		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := cache.GetOrCreate("shared", func() (int, error) {
					calls.Add(1)
					return 5, nil
				})
				assert.NoError(t, err)
				assert.Equal(t, 5, v)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load(), "Factory should run exactly once")
	})
}
