package fuzzy

import (
	"iter"
	"slices"
)

type entry[F Float, V any] struct {
	key   F
	value V
}

// HashMap is an associative container keyed by floating point values, with key
// equality and hashing delegated to a Hasher. With a HashedComparer, keys that
// are fuzzy-equal within one bucket address the same entry.
//
// A HashMap is not safe for concurrent use, and the settings of its Hasher
// must not change while the map holds entries.
type HashMap[F Float, V any] struct {
	hasher  Hasher[F]
	buckets map[uint64][]entry[F, V]
	size    int
}

// NewHashMap returns an empty map using hasher.
func NewHashMap[F Float, V any](hasher Hasher[F]) *HashMap[F, V] {
	return &HashMap[F, V]{
		hasher:  hasher,
		buckets: make(map[uint64][]entry[F, V]),
	}
}

// Len returns the number of entries.
func (m *HashMap[F, V]) Len() int {
	return m.size
}

// Put stores value under key. If an equal key is present its value is
// replaced, the stored key is kept, and Put returns true.
func (m *HashMap[F, V]) Put(key F, value V) bool {
	h := m.hasher.Hash(key)
	bucket := m.buckets[h]
	for i := range bucket {
		if m.hasher.Equal(bucket[i].key, key) {
			bucket[i].value = value
			return true
		}
	}
	m.buckets[h] = append(bucket, entry[F, V]{key: key, value: value})
	m.size++
	return false
}

// Get returns the value stored under a key equal to key.
func (m *HashMap[F, V]) Get(key F) (V, bool) {
	for _, e := range m.buckets[m.hasher.Hash(key)] {
		if m.hasher.Equal(e.key, key) {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Delete removes the entry with a key equal to key and reports whether one existed.
func (m *HashMap[F, V]) Delete(key F) bool {
	h := m.hasher.Hash(key)
	bucket := m.buckets[h]
	for i := range bucket {
		if !m.hasher.Equal(bucket[i].key, key) {
			continue
		}
		bucket = slices.Delete(bucket, i, i+1)
		if len(bucket) == 0 {
			delete(m.buckets, h)
		} else {
			m.buckets[h] = bucket
		}
		m.size--
		return true
	}
	return false
}

// Keys returns the stored keys in unspecified order.
func (m *HashMap[F, V]) Keys() []F {
	keys := make([]F, 0, m.size)
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// All iterates over the entries in unspecified order.
func (m *HashMap[F, V]) All() iter.Seq2[F, V] {
	return func(yield func(F, V) bool) {
		for _, bucket := range m.buckets {
			for _, e := range bucket {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}
