package automap

// Map is the associative container resolved for a key type.
type Map[K, V any] interface {
	// Kind reports which structure backs the map.
	Kind() Kind
	// Len returns the number of keys.
	Len() int
	// Contains reports whether key is present.
	Contains(key K) bool
	// Get returns the value for key and whether it was present.
	Get(key K) (V, bool)
	// At returns the value for key or a KEY_NOT_FOUND error.
	At(key K) (V, error)
	// Insert stores value under key unless key is present. It returns the
	// stored value and whether the insert happened.
	Insert(key K, value V) (V, bool)
	// Set stores value under key, replacing any previous value.
	Set(key K, value V)
	// Range calls fn for every entry until fn returns false.
	Range(fn func(key K, value V) bool)
}

type entry[K, V any] struct {
	key   K
	value V
}

// New builds the map selected by traits.
func New[K, V any](traits Traits[K]) (Map[K, V], error) {
	kind, err := traits.Select()
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindHashed:
		return newHashed[K, V](traits.Hash, traits.equal()), nil
	case KindOrdered:
		return newOrdered[K, V](traits.Less), nil
	default:
		return newLinear[K, V](traits.Equal), nil
	}
}
