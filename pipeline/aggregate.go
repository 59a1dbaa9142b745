package pipeline

import "github.com/kbukum/lazyflow/automap"

// AggregateByKey folds the input into one accumulator per distinct key.
//
// Each key starts from a copy of initial; accumulate is called with the
// element and a pointer to its key's accumulator, in input order. The output
// holds one KV per key in the order keys were first seen. The whole input is
// consumed when the output node is forced. The traits select the key index;
// a bundle that selects nothing is a configuration error.
func AggregateByKey[T, K, A any](
	initial A,
	accumulate func(v T, acc *A),
	key func(T) K,
	traits automap.Traits[K],
	opts ...Option,
) (Adapter[T, KV[K, A]], error) {
	if _, err := traits.Select(); err != nil {
		return nil, err
	}
	return AdapterFunc[T, KV[K, A]](func(n *Node[T]) *Node[KV[K, A]] {
		return derive(n, buildOptions("aggregate", opts), func(in Container[T], out Container[KV[K, A]]) error {
			index, err := automap.New[K, int](traits)
			if err != nil {
				return err
			}
			// slots is an arena; the index maps each key to its slot.
			var slots []KV[K, A]
			for v := range in.All() {
				k := key(v)
				i, inserted := index.Insert(k, len(slots))
				if inserted {
					slots = append(slots, KV[K, A]{Key: k, Value: initial})
				}
				accumulate(v, &slots[i].Value)
			}
			for _, kv := range slots {
				out.Append(kv)
			}
			return nil
		})
	}), nil
}

// CountByKey counts the elements sharing each key, in first-seen key order.
func CountByKey[T, K any](key func(T) K, traits automap.Traits[K], opts ...Option) (Adapter[T, KV[K, int]], error) {
	return AggregateByKey(0, func(_ T, n *int) { *n++ }, key, traits, opts...)
}
