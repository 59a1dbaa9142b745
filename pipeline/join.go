package pipeline

import (
	"github.com/kbukum/lazyflow/automap"
	"github.com/kbukum/lazyflow/errors"
)

// JoinAdapter is a left-outer hash join against a right node.
//
// The right side is indexed the first time any node produced by the adapter
// is evaluated. The index is kept for the lifetime of the adapter, so later
// evaluations see the right side as it was when the index was built.
type JoinAdapter[L, R, K, LV, RV any] struct {
	right      *Node[R]
	leftKey    func(L) K
	rightKey   func(R) K
	leftValue  func(L) LV
	rightValue func(R) RV
	traits     automap.Traits[K]
	opts       []Option

	index   automap.Map[K, int]
	buckets [][]RV
}

// Join builds a left-outer join of the input node against right.
//
// For each left element the key leftKey(l) is looked up among the keys
// rightKey(r). An unmatched left element yields one JoinResult with an empty
// Joined; a left element matching k right elements yields k results, one per
// right value in right order. The traits select the index structure; a
// bundle that selects nothing is a configuration error.
func Join[L, R, K, LV, RV any](
	right *Node[R],
	leftKey func(L) K,
	rightKey func(R) K,
	leftValue func(L) LV,
	rightValue func(R) RV,
	traits automap.Traits[K],
	opts ...Option,
) (*JoinAdapter[L, R, K, LV, RV], error) {
	if right == nil {
		return nil, errors.InvalidInput("right", "join requires a right node")
	}
	if leftKey == nil || rightKey == nil || leftValue == nil || rightValue == nil {
		return nil, errors.InvalidInput("extractor", "join requires key and value extractors for both sides")
	}
	if _, err := traits.Select(); err != nil {
		return nil, err
	}
	return &JoinAdapter[L, R, K, LV, RV]{
		right:      right,
		leftKey:    leftKey,
		rightKey:   rightKey,
		leftValue:  leftValue,
		rightValue: rightValue,
		traits:     traits,
		opts:       opts,
	}, nil
}

// JoinOn joins whole elements: the left element is the base and the matching
// right element is the joined value.
func JoinOn[L, R, K any](right *Node[R], leftKey func(L) K, rightKey func(R) K, traits automap.Traits[K], opts ...Option) (*JoinAdapter[L, R, K, L, R], error) {
	return Join(right, leftKey, rightKey, identity[L], identity[R], traits, opts...)
}

// JoinKV joins key/value pairs on their keys, pairing left and right values.
func JoinKV[K, LV, RV any](right *Node[KV[K, RV]], traits automap.Traits[K], opts ...Option) (*JoinAdapter[KV[K, LV], KV[K, RV], K, LV, RV], error) {
	return Join(right,
		func(kv KV[K, LV]) K { return kv.Key },
		func(kv KV[K, RV]) K { return kv.Key },
		func(kv KV[K, LV]) LV { return kv.Value },
		func(kv KV[K, RV]) RV { return kv.Value },
		traits, opts...)
}

// Apply derives the joined node from left. The joined node is also
// registered on the right node, so forcing either side drives it.
func (j *JoinAdapter[L, R, K, LV, RV]) Apply(left *Node[L]) *Node[JoinResult[LV, RV]] {
	getRight := j.right.accessor()
	child := derive(left, buildOptions("join", j.opts), func(in Container[L], out Container[JoinResult[LV, RV]]) error {
		if err := j.ensureIndex(getRight); err != nil {
			return err
		}
		for l := range in.All() {
			base := j.leftValue(l)
			slot, ok := j.index.Get(j.leftKey(l))
			if !ok {
				out.Append(JoinResult[LV, RV]{Base: base})
				continue
			}
			for _, rv := range j.buckets[slot] {
				out.Append(JoinResult[LV, RV]{Base: base, Joined: Some(rv)})
			}
		}
		return nil
	})
	j.right.link(child.drive)
	child.readsFrom(j.right.busy)
	return child
}

// Indexed reports whether the right side has been indexed.
func (j *JoinAdapter[L, R, K, LV, RV]) Indexed() bool { return j.index != nil }

func (j *JoinAdapter[L, R, K, LV, RV]) ensureIndex(getRight func() (Container[R], error)) error {
	if j.index != nil {
		return nil
	}
	rc, err := getRight()
	if err != nil {
		return err
	}
	index, err := automap.New[K, int](j.traits)
	if err != nil {
		return err
	}
	var buckets [][]RV
	for r := range rc.All() {
		slot, inserted := index.Insert(j.rightKey(r), len(buckets))
		if inserted {
			buckets = append(buckets, nil)
		}
		buckets[slot] = append(buckets[slot], j.rightValue(r))
	}
	j.index, j.buckets = index, buckets
	return nil
}

func identity[T any](v T) T { return v }
