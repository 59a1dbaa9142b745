package pipeline

// Option configures a node at construction or derivation.
type Option func(*options)

type options struct {
	kind        ContainerKind
	name        string
	observer    Observer
	observerSet bool
}

// Into selects the container kind of the new node.
func Into(kind ContainerKind) Option {
	return func(o *options) { o.kind = kind }
}

// Named sets the stage name used in logs, metrics and spans.
func Named(name string) Option {
	return func(o *options) { o.name = name }
}

// WithObserver attaches an observer to the new node. Derived nodes inherit
// the observer of their input unless they set their own; pass nil to detach.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
		o.observerSet = true
	}
}

func buildOptions(name string, opts []Option) options {
	o := options{kind: SameKind, name: name}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Derive returns a new node computed from n.
//
// When the new node is forced it first forces n through an accessor captured
// now, then calls combine with n's container and the new node's empty
// container. The new node is registered as one of n's triggers, so forcing n
// also drives it. The container kind defaults to n's kind.
func Derive[I, O any](n *Node[I], combine func(in Container[I], out Container[O]) error, opts ...Option) *Node[O] {
	o := buildOptions("derive", opts)
	return derive(n, o, combine)
}

// derive is Derive with resolved options. Operators call it with their own
// default stage name.
func derive[I, O any](n *Node[I], o options, combine func(in Container[I], out Container[O]) error) *Node[O] {
	if o.kind == SameKind {
		o.kind = n.kind
	}
	if !o.observerSet {
		o.observer = n.observer
	}
	child := newNode[O](o)

	get := n.accessor()
	child.pending = func(out Container[O]) error {
		in, err := get()
		if err != nil {
			return err
		}
		return combine(in, out)
	}
	n.link(child.drive)
	child.readsFrom(n.busy)
	return child
}

// --- Adapters ---

// Adapter turns a node into a derived node. Every operator is an Adapter.
type Adapter[I, O any] interface {
	Apply(n *Node[I]) *Node[O]
}

// AdapterFunc adapts a function to the Adapter interface.
type AdapterFunc[I, O any] func(n *Node[I]) *Node[O]

// Apply calls f(n).
func (f AdapterFunc[I, O]) Apply(n *Node[I]) *Node[O] { return f(n) }

// Pipe applies a to n.
//
//	evens := pipeline.Pipe(nums, pipeline.Filter(isEven))
func Pipe[I, O any](n *Node[I], a Adapter[I, O]) *Node[O] {
	return a.Apply(n)
}

// Compose chains two adapters left to right.
func Compose[A, B, C any](ab Adapter[A, B], bc Adapter[B, C]) Adapter[A, C] {
	return AdapterFunc[A, C](func(n *Node[A]) *Node[C] {
		return bc.Apply(ab.Apply(n))
	})
}
