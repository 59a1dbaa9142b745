package pipeline

import "fmt"

// KV is a key/value pair.
type KV[K, V any] struct {
	Key   K
	Value V
}

// Pair builds a KV.
func Pair[K, V any](key K, value V) KV[K, V] {
	return KV[K, V]{Key: key, Value: value}
}

func (kv KV[K, V]) String() string {
	return fmt.Sprintf("(%v, %v)", kv.Key, kv.Value)
}

// Optional holds a value or nothing.
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{Value: v, Present: true} }

// None returns an empty Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.Value, o.Present }

// OrElse returns the value, or def when the Optional is empty.
func (o Optional[T]) OrElse(def T) T {
	if o.Present {
		return o.Value
	}
	return def
}

func (o Optional[T]) String() string {
	if !o.Present {
		return "none"
	}
	return fmt.Sprintf("some(%v)", o.Value)
}

// JoinResult is one row of a left-outer join: the left value and, when a
// right element matched, the right value.
type JoinResult[B, J any] struct {
	Base   B
	Joined Optional[J]
}

func (r JoinResult[B, J]) String() string {
	return fmt.Sprintf("{%v, %v}", r.Base, r.Joined)
}

// Result holds either a value or the error that replaced it.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok returns a successful Result.
func Ok[T any](v T) Result[T] { return Result[T]{Value: v} }

// Err returns a failed Result.
func Err[T any](err error) Result[T] { return Result[T]{Err: err} }

// IsOk reports whether the Result holds a value.
func (r Result[T]) IsOk() bool { return r.Err == nil }
