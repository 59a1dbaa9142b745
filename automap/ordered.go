package automap

import (
	"github.com/google/btree"

	"github.com/kbukum/lazyflow/errors"
)

const btreeDegree = 16

// orderedMap is a B-tree keyed by the Less trait. Range visits keys in order.
type orderedMap[K, V any] struct {
	tree *btree.BTreeG[entry[K, V]]
}

func newOrdered[K, V any](less func(a, b K) bool) *orderedMap[K, V] {
	return &orderedMap[K, V]{
		tree: btree.NewG(btreeDegree, func(a, b entry[K, V]) bool {
			return less(a.key, b.key)
		}),
	}
}

func (m *orderedMap[K, V]) Kind() Kind { return KindOrdered }

func (m *orderedMap[K, V]) Len() int { return m.tree.Len() }

func (m *orderedMap[K, V]) Contains(key K) bool {
	return m.tree.Has(entry[K, V]{key: key})
}

func (m *orderedMap[K, V]) Get(key K) (V, bool) {
	e, ok := m.tree.Get(entry[K, V]{key: key})
	return e.value, ok
}

func (m *orderedMap[K, V]) At(key K) (V, error) {
	v, ok := m.Get(key)
	if !ok {
		return v, errors.KeyNotFound(key)
	}
	return v, nil
}

func (m *orderedMap[K, V]) Insert(key K, value V) (V, bool) {
	if e, ok := m.tree.Get(entry[K, V]{key: key}); ok {
		return e.value, false
	}
	m.tree.ReplaceOrInsert(entry[K, V]{key: key, value: value})
	return value, true
}

func (m *orderedMap[K, V]) Set(key K, value V) {
	m.tree.ReplaceOrInsert(entry[K, V]{key: key, value: value})
}

func (m *orderedMap[K, V]) Range(fn func(key K, value V) bool) {
	m.tree.Ascend(func(e entry[K, V]) bool {
		return fn(e.key, e.value)
	})
}
