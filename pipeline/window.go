package pipeline

import "github.com/kbukum/lazyflow/errors"

// Window emits sliding windows of size consecutive values, advancing by step
// values between windows. Only full windows are emitted, so an input shorter
// than size yields no windows. step == size gives tumbling windows.
//
// Window returns an INVALID_INPUT error when size or step is below one.
func Window[T any](size, step int, opts ...Option) (Adapter[T, []T], error) {
	if size < 1 {
		return nil, errors.InvalidInput("size", "window size must be at least 1")
	}
	if step < 1 {
		return nil, errors.InvalidInput("step", "window step must be at least 1")
	}
	return AdapterFunc[T, []T](func(n *Node[T]) *Node[[]T] {
		return derive(n, buildOptions("window", opts), func(in Container[T], out Container[[]T]) error {
			buf := make([]T, 0, size)
			skip := 0
			for v := range in.All() {
				if skip > 0 {
					skip--
					continue
				}
				buf = append(buf, v)
				if len(buf) < size {
					continue
				}
				window := make([]T, size)
				copy(window, buf)
				out.Append(window)
				if step >= size {
					buf = buf[:0]
					skip = step - size
				} else {
					buf = append(buf[:0], buf[step:]...)
				}
			}
			return nil
		})
	}), nil
}
