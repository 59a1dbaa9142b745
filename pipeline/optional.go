package pipeline

// DropEmpty keeps the values of present Optionals and drops the empty ones.
func DropEmpty[T any](opts ...Option) Adapter[Optional[T], T] {
	return AdapterFunc[Optional[T], T](func(n *Node[Optional[T]]) *Node[T] {
		return derive(n, buildOptions("drop_empty", opts), func(in Container[Optional[T]], out Container[T]) error {
			for o := range in.All() {
				if o.Present {
					out.Append(o.Value)
				}
			}
			return nil
		})
	})
}

// SplitResults separates a node of Results into a node of errors and a node
// of values, both in input order. The errors node is derived first, so
// forcing the values node also evaluates the errors node.
func SplitResults[T any](n *Node[Result[T]], opts ...Option) (*Node[error], *Node[T]) {
	errs := derive(n, buildOptions("split_errors", opts), func(in Container[Result[T]], out Container[error]) error {
		for r := range in.All() {
			if r.Err != nil {
				out.Append(r.Err)
			}
		}
		return nil
	})
	values := derive(n, buildOptions("split_values", opts), func(in Container[Result[T]], out Container[T]) error {
		for r := range in.All() {
			if r.Err == nil {
				out.Append(r.Value)
			}
		}
		return nil
	})
	return errs, values
}
