package automap

import "github.com/kbukum/lazyflow/errors"

// hashedMap buckets entry indices by hash. Entries live in one slice, so
// Range follows insertion order and is deterministic.
type hashedMap[K, V any] struct {
	hash    func(K) uint64
	equal   func(a, b K) bool
	buckets map[uint64][]int
	entries []entry[K, V]
}

func newHashed[K, V any](hash func(K) uint64, equal func(a, b K) bool) *hashedMap[K, V] {
	return &hashedMap[K, V]{
		hash:    hash,
		equal:   equal,
		buckets: make(map[uint64][]int),
	}
}

func (m *hashedMap[K, V]) Kind() Kind { return KindHashed }

func (m *hashedMap[K, V]) Len() int { return len(m.entries) }

func (m *hashedMap[K, V]) find(h uint64, key K) int {
	for _, i := range m.buckets[h] {
		if m.equal(m.entries[i].key, key) {
			return i
		}
	}
	return -1
}

func (m *hashedMap[K, V]) Contains(key K) bool {
	return m.find(m.hash(key), key) >= 0
}

func (m *hashedMap[K, V]) Get(key K) (V, bool) {
	if i := m.find(m.hash(key), key); i >= 0 {
		return m.entries[i].value, true
	}
	var zero V
	return zero, false
}

func (m *hashedMap[K, V]) At(key K) (V, error) {
	v, ok := m.Get(key)
	if !ok {
		return v, errors.KeyNotFound(key)
	}
	return v, nil
}

func (m *hashedMap[K, V]) Insert(key K, value V) (V, bool) {
	h := m.hash(key)
	if i := m.find(h, key); i >= 0 {
		return m.entries[i].value, false
	}
	m.add(h, key, value)
	return value, true
}

func (m *hashedMap[K, V]) Set(key K, value V) {
	h := m.hash(key)
	if i := m.find(h, key); i >= 0 {
		m.entries[i].value = value
		return
	}
	m.add(h, key, value)
}

func (m *hashedMap[K, V]) add(h uint64, key K, value V) {
	m.buckets[h] = append(m.buckets[h], len(m.entries))
	m.entries = append(m.entries, entry[K, V]{key: key, value: value})
}

func (m *hashedMap[K, V]) Range(fn func(key K, value V) bool) {
	for _, e := range m.entries {
		if !fn(e.key, e.value) {
			return
		}
	}
}
