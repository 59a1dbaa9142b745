package pipeline

import (
	"container/list"
	"iter"
)

// ContainerKind selects the sequence container backing a node.
type ContainerKind int

const (
	// SameKind inherits the container kind of the input node.
	SameKind ContainerKind = iota
	// SliceKind is a contiguous slice.
	SliceKind
	// ListKind is a doubly linked list.
	ListKind
)

func (k ContainerKind) String() string {
	switch k {
	case SameKind:
		return "same"
	case SliceKind:
		return "slice"
	case ListKind:
		return "list"
	default:
		return "unknown"
	}
}

// Container is the ordered sequence a node holds once it is evaluated.
type Container[T any] interface {
	// Kind reports the concrete container kind.
	Kind() ContainerKind
	// Len returns the number of elements.
	Len() int
	// Append adds v at the end.
	Append(v T)
	// All iterates the elements in order.
	All() iter.Seq[T]
	// Values returns the elements as a slice. Slice containers return their
	// backing slice; callers must not modify it.
	Values() []T
}

// NewContainer returns an empty container of the given kind.
// SameKind resolves to SliceKind.
func NewContainer[T any](kind ContainerKind) Container[T] {
	if kind == ListKind {
		return &listContainer[T]{l: list.New()}
	}
	return &sliceContainer[T]{items: new([]T)}
}

// sliceContainer reads its elements through a pointer so a borrowed slice
// is seen as the caller holds it.
type sliceContainer[T any] struct {
	items *[]T
}

func (c *sliceContainer[T]) Kind() ContainerKind { return SliceKind }

func (c *sliceContainer[T]) Len() int { return len(*c.items) }

func (c *sliceContainer[T]) Append(v T) { *c.items = append(*c.items, v) }

func (c *sliceContainer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range *c.items {
			if !yield(v) {
				return
			}
		}
	}
}

func (c *sliceContainer[T]) Values() []T { return *c.items }

type listContainer[T any] struct {
	l *list.List
}

func (c *listContainer[T]) Kind() ContainerKind { return ListKind }

func (c *listContainer[T]) Len() int { return c.l.Len() }

func (c *listContainer[T]) Append(v T) { c.l.PushBack(v) }

func (c *listContainer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for e := c.l.Front(); e != nil; e = e.Next() {
			if !yield(e.Value.(T)) {
				return
			}
		}
	}
}

func (c *listContainer[T]) Values() []T {
	out := make([]T, 0, c.l.Len())
	for e := c.l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(T))
	}
	return out
}

// copyInto appends every element of src to a new container of kind.
func copyInto[T any](src Container[T], kind ContainerKind) Container[T] {
	if kind == SameKind {
		kind = src.Kind()
	}
	dst := NewContainer[T](kind)
	for v := range src.All() {
		dst.Append(v)
	}
	return dst
}
