package pipeline

import (
	"iter"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/lazyflow/errors"
)

// Node is a lazy, single-evaluation holder of one stage's output sequence.
//
// A node is either populated at construction (a source) or carries a pending
// computation that fills its container the first time it is forced. The
// computation runs at most once and is discarded afterwards. If it fails, the
// error is kept and returned by every later force.
//
// Nodes are not safe for concurrent use.
type Node[T any] struct {
	id       string
	name     string
	kind     ContainerKind
	observer Observer

	data    Container[T]
	pending func(out Container[T]) error
	running bool
	err     error

	// triggers drive the children derived from this node, in derivation order.
	triggers []func()
	// upstream reports whether a node this one reads from is being evaluated.
	upstream []func() bool
}

func newNode[T any](o options) *Node[T] {
	kind := o.kind
	if kind == SameKind {
		kind = SliceKind
	}
	return &Node[T]{
		id:       uuid.NewString(),
		name:     o.name,
		kind:     kind,
		observer: o.observer,
	}
}

// --- Constructors ---

// From creates a populated node holding a copy of values.
// Into selects the container kind; the default is SliceKind.
func From[T any](values []T, opts ...Option) *Node[T] {
	n := newNode[T](buildOptions("source", opts))
	c := NewContainer[T](n.kind)
	for _, v := range values {
		c.Append(v)
	}
	n.data = c
	return n
}

// Adopt creates a populated node that takes ownership of values without
// copying. The caller must not use the slice afterwards. The node always
// holds a SliceKind container; Into is ignored.
func Adopt[T any](values []T, opts ...Option) *Node[T] {
	n := newNode[T](buildOptions("source", opts))
	n.kind = SliceKind
	n.data = &sliceContainer[T]{items: &values}
	return n
}

// Borrow creates a populated node that reads the caller's slice by reference.
// The node never writes to it; changes the caller makes are visible to stages
// that have not been evaluated yet. As with Adopt, the node is always
// SliceKind and Into is ignored; stages derived with Into(ListKind) copy.
func Borrow[T any](values *[]T, opts ...Option) *Node[T] {
	n := newNode[T](buildOptions("source", opts))
	n.kind = SliceKind
	n.data = &sliceContainer[T]{items: values}
	return n
}

// FromContainer creates a populated node around an existing container.
func FromContainer[T any](c Container[T], opts ...Option) *Node[T] {
	n := newNode[T](buildOptions("source", opts))
	n.kind = c.Kind()
	n.data = c
	return n
}

// FromSeq creates a node that drains seq when first forced.
func FromSeq[T any](seq iter.Seq[T], opts ...Option) *Node[T] {
	return FromFunc(func(out Container[T]) error {
		for v := range seq {
			out.Append(v)
		}
		return nil
	}, opts...)
}

// FromFunc creates a node whose container is filled by fill when first
// forced. This is the producer contract: fill only has to append values of
// the declared element type.
func FromFunc[T any](fill func(out Container[T]) error, opts ...Option) *Node[T] {
	n := newNode[T](buildOptions("source", opts))
	n.pending = fill
	return n
}

// --- Accessors ---

// ID returns the unique identifier of the node.
func (n *Node[T]) ID() string { return n.id }

// Name returns the stage name of the node.
func (n *Node[T]) Name() string { return n.name }

// Kind returns the container kind the node evaluates into.
func (n *Node[T]) Kind() ContainerKind { return n.kind }

// Evaluated reports whether the node no longer has a pending computation.
func (n *Node[T]) Evaluated() bool { return n.pending == nil }

// Err returns the sticky evaluation error, if any.
func (n *Node[T]) Err() error { return n.err }

// --- Forcing ---

// Content drives every stage derived from the node, then evaluates the node
// itself and returns its container. Failures of derived stages stay with
// those stages; Content reports only this node's own failure.
func (n *Node[T]) Content() (Container[T], error) {
	fire(n.triggers)
	if err := n.force(); err != nil {
		return nil, err
	}
	return n.data, nil
}

// Values forces the node and returns its elements as a slice.
func (n *Node[T]) Values() ([]T, error) {
	c, err := n.Content()
	if err != nil {
		return nil, err
	}
	return c.Values(), nil
}

// Iter forces the node and returns an iterator over its elements.
func (n *Node[T]) Iter() (iter.Seq[T], error) {
	c, err := n.Content()
	if err != nil {
		return nil, err
	}
	return c.All(), nil
}

// ForEach forces the node and calls fn for each element in order, stopping at
// the first error fn returns.
func (n *Node[T]) ForEach(fn func(T) error) error {
	c, err := n.Content()
	if err != nil {
		return err
	}
	for v := range c.All() {
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

// AsContainer forces the node and copies its elements into a new container
// of kind. SameKind copies into the node's own kind.
func (n *Node[T]) AsContainer(kind ContainerKind) (Container[T], error) {
	c, err := n.Content()
	if err != nil {
		return nil, err
	}
	return copyInto(c, kind), nil
}

// force runs the pending computation if there is one.
func (n *Node[T]) force() error {
	if n.err != nil {
		return n.err
	}
	if n.pending == nil {
		return nil
	}
	if n.running {
		return errors.EvaluationCycle(n.name)
	}

	n.running = true
	out := NewContainer[T](n.kind)
	run := &StageRun{ID: n.id, Name: n.name, Kind: n.kind}
	eval := func() error {
		start := time.Now()
		err := n.pending(out)
		run.Duration = time.Since(start)
		run.Items = out.Len()
		return err
	}

	var err error
	if n.observer != nil {
		err = n.observer.Observe(run, eval)
	} else {
		err = eval()
	}
	n.running = false
	n.pending = nil

	if err != nil {
		n.err = err
		return err
	}
	n.data = out
	return nil
}

// drive evaluates the node and every stage derived from it. A node whose
// ancestor is mid-evaluation is skipped; the trigger pass that reached that
// ancestor drives it once the ancestor is done.
func (n *Node[T]) drive() {
	if n.busy() {
		return
	}
	fire(n.triggers)
	_ = n.force()
}

// accessor returns the upstream getter a child captures at derivation time.
// It drives the siblings derived before the child, then forces the node.
func (n *Node[T]) accessor() func() (Container[T], error) {
	older := slices.Clip(n.triggers)
	return func() (Container[T], error) {
		fire(older)
		if err := n.force(); err != nil {
			return nil, err
		}
		return n.data, nil
	}
}

// link registers a derived stage so that forcing n also drives it.
func (n *Node[T]) link(trigger func()) {
	n.triggers = append(n.triggers, trigger)
}

// readsFrom records that n consumes the output of a node whose busy state is
// reported by up.
func (n *Node[T]) readsFrom(up func() bool) {
	n.upstream = append(n.upstream, up)
}

// busy reports whether n or any node it reads from is being evaluated.
func (n *Node[T]) busy() bool {
	if n.running {
		return true
	}
	for _, up := range n.upstream {
		if up() {
			return true
		}
	}
	return false
}

func fire(triggers []func()) {
	for _, t := range triggers {
		t()
	}
}
