package pave

import (
	"sync"
	"sync/atomic"
)

// ReaderCache provides thread-safe memoization of compiled readers keyed by
// K, usually a reflect.Type. A factory runs at most once per key, even under
// concurrent access.
type ReaderCache[K comparable, V any] struct {
	cache sync.Map // map[K]*CacheEntry[V]
}

// CacheEntry holds the cached result for one key
type CacheEntry[V any] struct {
	once  sync.Once
	built atomic.Bool
	data  V
	err   error
}

// NewReaderCache creates an empty cache
func NewReaderCache[K comparable, V any]() *ReaderCache[K, V] {
	return &ReaderCache[K, V]{}
}

// GetOrCreate returns the value for key, calling factory to build it if no
// entry exists. A failed build is cached too, so the factory is never retried
// for that key until it is deleted.
func (rc *ReaderCache[K, V]) GetOrCreate(key K, factory func() (V, error)) (V, error) {
	// Try to load existing entry
	v, ok := rc.cache.Load(key)
	if !ok {
		// LoadOrStore returns the actual stored value
		v, _ = rc.cache.LoadOrStore(key, &CacheEntry[V]{})
	}
	entry := v.(*CacheEntry[V])
	entry.once.Do(func() {
		entry.data, entry.err = factory()
		entry.built.Store(true)
	})
	return entry.data, entry.err
}

// Get retrieves the value for key if it has been built without error
func (rc *ReaderCache[K, V]) Get(key K) (V, bool) {
	var zero V
	v, ok := rc.cache.Load(key)
	if !ok {
		return zero, false
	}
	entry := v.(*CacheEntry[V])
	if !entry.built.Load() || entry.err != nil {
		return zero, false
	}
	return entry.data, true
}

// Delete removes the entry for key
func (rc *ReaderCache[K, V]) Delete(key K) {
	rc.cache.Delete(key)
}

// Clear removes all cache entries
func (rc *ReaderCache[K, V]) Clear() {
	rc.cache.Range(func(key, _ any) bool {
		rc.cache.Delete(key)
		return true
	})
}
