package pipeline

// Filter keeps the values satisfying pred, preserving their order.
func Filter[T any](pred func(T) bool, opts ...Option) Adapter[T, T] {
	return AdapterFunc[T, T](func(n *Node[T]) *Node[T] {
		return derive(n, buildOptions("filter", opts), func(in Container[T], out Container[T]) error {
			for v := range in.All() {
				if pred(v) {
					out.Append(v)
				}
			}
			return nil
		})
	})
}

// Map transforms each value with fn, preserving order.
func Map[I, O any](fn func(I) O, opts ...Option) Adapter[I, O] {
	return AdapterFunc[I, O](func(n *Node[I]) *Node[O] {
		return derive(n, buildOptions("map", opts), func(in Container[I], out Container[O]) error {
			for v := range in.All() {
				out.Append(fn(v))
			}
			return nil
		})
	})
}

// TryMap transforms each value with a fallible fn. The first error stops the
// stage and is returned unchanged by every force of the resulting node.
func TryMap[I, O any](fn func(I) (O, error), opts ...Option) Adapter[I, O] {
	return AdapterFunc[I, O](func(n *Node[I]) *Node[O] {
		return derive(n, buildOptions("try_map", opts), func(in Container[I], out Container[O]) error {
			for v := range in.All() {
				o, err := fn(v)
				if err != nil {
					return err
				}
				out.Append(o)
			}
			return nil
		})
	})
}

// FlatMap transforms each value into zero or more values and flattens them.
func FlatMap[I, O any](fn func(I) []O, opts ...Option) Adapter[I, O] {
	return AdapterFunc[I, O](func(n *Node[I]) *Node[O] {
		return derive(n, buildOptions("flat_map", opts), func(in Container[I], out Container[O]) error {
			for v := range in.All() {
				for _, o := range fn(v) {
					out.Append(o)
				}
			}
			return nil
		})
	})
}

// Tap calls fn for each value as a side effect and passes the value through.
func Tap[T any](fn func(T), opts ...Option) Adapter[T, T] {
	return AdapterFunc[T, T](func(n *Node[T]) *Node[T] {
		return derive(n, buildOptions("tap", opts), func(in Container[T], out Container[T]) error {
			for v := range in.All() {
				fn(v)
				out.Append(v)
			}
			return nil
		})
	})
}

// Reduce folds all values into one accumulator. The resulting node holds
// exactly one element.
func Reduce[T, R any](init R, fn func(R, T) R, opts ...Option) Adapter[T, R] {
	return AdapterFunc[T, R](func(n *Node[T]) *Node[R] {
		return derive(n, buildOptions("reduce", opts), func(in Container[T], out Container[R]) error {
			acc := init
			for v := range in.All() {
				acc = fn(acc, v)
			}
			out.Append(acc)
			return nil
		})
	})
}

// Concat appends the values of others after the values of the input node.
// Forcing any of the others also drives the concatenated node.
func Concat[T any](others ...*Node[T]) Adapter[T, T] {
	return ConcatWith(others)
}

// ConcatWith is Concat with stage options.
func ConcatWith[T any](others []*Node[T], opts ...Option) Adapter[T, T] {
	return AdapterFunc[T, T](func(n *Node[T]) *Node[T] {
		getters := make([]func() (Container[T], error), len(others))
		for i, o := range others {
			getters[i] = o.accessor()
		}
		child := derive(n, buildOptions("concat", opts), func(in Container[T], out Container[T]) error {
			for v := range in.All() {
				out.Append(v)
			}
			for _, get := range getters {
				c, err := get()
				if err != nil {
					return err
				}
				for v := range c.All() {
					out.Append(v)
				}
			}
			return nil
		})
		for _, o := range others {
			o.link(child.drive)
			child.readsFrom(o.busy)
		}
		return child
	})
}
