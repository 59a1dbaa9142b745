package pipeline

// Batch groups consecutive values into slices of size. The last batch holds
// the remainder and may be shorter. A size below one is treated as one.
func Batch[T any](size int, opts ...Option) Adapter[T, []T] {
	if size <= 0 {
		size = 1
	}
	return AdapterFunc[T, []T](func(n *Node[T]) *Node[[]T] {
		return derive(n, buildOptions("batch", opts), func(in Container[T], out Container[[]T]) error {
			batch := make([]T, 0, size)
			for v := range in.All() {
				batch = append(batch, v)
				if len(batch) == size {
					out.Append(batch)
					batch = make([]T, 0, size)
				}
			}
			if len(batch) > 0 {
				out.Append(batch)
			}
			return nil
		})
	})
}
