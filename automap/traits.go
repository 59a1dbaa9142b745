package automap

import (
	"cmp"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"

	"github.com/kbukum/lazyflow/errors"
)

// Kind identifies the lookup structure chosen for a key type.
type Kind int

const (
	// KindLinear is a slice of entries searched sequentially.
	KindLinear Kind = iota + 1
	// KindOrdered is a balanced B-tree ordered by the Less trait.
	KindOrdered
	// KindHashed is a hash table keyed by the Hash trait.
	KindHashed
)

func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindOrdered:
		return "ordered"
	case KindHashed:
		return "hashed"
	default:
		return "unknown"
	}
}

// Traits is the bundle of key operations a map may rely on.
// Any field may be nil; Select decides which structure the set fields allow.
type Traits[K any] struct {
	// Equal reports whether two keys are the same key.
	Equal func(a, b K) bool
	// Less is a strict weak ordering over keys.
	Less func(a, b K) bool
	// Hash returns a hash consistent with Equal (or with the equivalence Less induces).
	Hash func(k K) uint64
}

// Select resolves the lookup structure for the bundle.
//
// Hash with Equal or Less selects KindHashed, otherwise Less selects
// KindOrdered, otherwise Equal selects KindLinear. A bundle with none of
// those combinations is a configuration error.
func (t Traits[K]) Select() (Kind, error) {
	switch {
	case t.Hash != nil && (t.Equal != nil || t.Less != nil):
		return KindHashed, nil
	case t.Less != nil:
		return KindOrdered, nil
	case t.Equal != nil:
		return KindLinear, nil
	case t.Hash != nil:
		return 0, errors.Configuration("hash trait requires an equality or ordering trait")
	default:
		return 0, errors.Configuration("key type has no equality, ordering or hash trait")
	}
}

// WithEqual returns a copy of the bundle with the equality trait replaced.
func (t Traits[K]) WithEqual(eq func(a, b K) bool) Traits[K] {
	t.Equal = eq
	return t
}

// WithLess returns a copy of the bundle with the ordering trait replaced.
func (t Traits[K]) WithLess(less func(a, b K) bool) Traits[K] {
	t.Less = less
	return t
}

// WithHash returns a copy of the bundle with the hash trait replaced.
func (t Traits[K]) WithHash(hash func(K) uint64) Traits[K] {
	t.Hash = hash
	return t
}

// WithoutHash returns a copy of the bundle without a hash trait.
func (t Traits[K]) WithoutHash() Traits[K] {
	t.Hash = nil
	return t
}

// WithoutLess returns a copy of the bundle without an ordering trait.
func (t Traits[K]) WithoutLess() Traits[K] {
	t.Less = nil
	return t
}

// equal returns the equality the structure should use: Equal when present,
// otherwise the equivalence induced by Less.
func (t Traits[K]) equal() func(a, b K) bool {
	if t.Equal != nil {
		return t.Equal
	}
	less := t.Less
	return func(a, b K) bool { return !less(a, b) && !less(b, a) }
}

// --- Natural trait bundles ---

// seed is shared by every natural hash so identical bundles hash identically
// within a process.
var seed = maphash.MakeSeed()

// Comparable returns the natural traits of a comparable key: == and a
// runtime hash. It selects KindHashed.
func Comparable[K comparable]() Traits[K] {
	return Traits[K]{
		Equal: func(a, b K) bool { return a == b },
		Hash:  func(k K) uint64 { return maphash.Comparable(seed, k) },
	}
}

// Ordered returns the natural traits of an ordered key. Hash wins over
// ordering, so it selects KindHashed; drop the hash with WithoutHash to get
// an ordered map.
func Ordered[K cmp.Ordered]() Traits[K] {
	return Comparable[K]().WithLess(cmp.Less[K])
}

// Sorted returns ordering-only traits. It selects KindOrdered.
func Sorted[K cmp.Ordered]() Traits[K] {
	return Traits[K]{Less: cmp.Less[K]}
}

// EqualOnly returns equality-only traits. It selects KindLinear, which is the
// fastest choice for a handful of keys queried repeatedly.
func EqualOnly[K comparable]() Traits[K] {
	return Traits[K]{Equal: func(a, b K) bool { return a == b }}
}

// Strings returns traits for string keys hashed with xxhash.
func Strings() Traits[string] {
	return Traits[string]{
		Equal: func(a, b string) bool { return a == b },
		Less:  cmp.Less[string],
		Hash:  HashString,
	}
}

// HashString hashes a string with xxhash.
func HashString(s string) uint64 { return xxhash.Sum64String(s) }

// HashBytes hashes a byte slice with xxhash.
func HashBytes(b []byte) uint64 { return xxhash.Sum64(b) }
