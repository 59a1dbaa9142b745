package automap

import "github.com/kbukum/lazyflow/errors"

// linearMap keeps entries in insertion order and finds keys by scanning.
// The index of the last successful lookup is cached, so repeated queries for
// the same key cost one comparison.
type linearMap[K, V any] struct {
	equal   func(a, b K) bool
	entries []entry[K, V]
	cached  int
}

func newLinear[K, V any](equal func(a, b K) bool) *linearMap[K, V] {
	return &linearMap[K, V]{equal: equal, cached: -1}
}

func (m *linearMap[K, V]) Kind() Kind { return KindLinear }

func (m *linearMap[K, V]) Len() int { return len(m.entries) }

func (m *linearMap[K, V]) where(key K) int {
	if m.cached >= 0 && m.equal(m.entries[m.cached].key, key) {
		return m.cached
	}
	for i := range m.entries {
		if m.equal(key, m.entries[i].key) {
			m.cached = i
			return i
		}
	}
	return -1
}

func (m *linearMap[K, V]) Contains(key K) bool { return m.where(key) >= 0 }

func (m *linearMap[K, V]) Get(key K) (V, bool) {
	if i := m.where(key); i >= 0 {
		return m.entries[i].value, true
	}
	var zero V
	return zero, false
}

func (m *linearMap[K, V]) At(key K) (V, error) {
	v, ok := m.Get(key)
	if !ok {
		return v, errors.KeyNotFound(key)
	}
	return v, nil
}

func (m *linearMap[K, V]) Insert(key K, value V) (V, bool) {
	if i := m.where(key); i >= 0 {
		return m.entries[i].value, false
	}
	m.entries = append(m.entries, entry[K, V]{key: key, value: value})
	m.cached = len(m.entries) - 1
	return value, true
}

func (m *linearMap[K, V]) Set(key K, value V) {
	if i := m.where(key); i >= 0 {
		m.entries[i].value = value
		return
	}
	m.entries = append(m.entries, entry[K, V]{key: key, value: value})
	m.cached = len(m.entries) - 1
}

func (m *linearMap[K, V]) Range(fn func(key K, value V) bool) {
	for _, e := range m.entries {
		if !fn(e.key, e.value) {
			return
		}
	}
}
