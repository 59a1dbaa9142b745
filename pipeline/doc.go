// Package pipeline provides lazy, composable sequence pipelines.
//
// A Node holds the output of one stage. Source nodes are populated when they
// are built; derived nodes carry a pending computation that runs the first
// time the node, or any node derived from it, is forced. Every node is
// evaluated at most once, and a failed evaluation keeps its error.
//
// Forcing a node forces its ancestors first, deepest first. Forcing a node
// that was only used to derive other nodes also drives every derived branch,
// in the order the branches were created, so a node shared by several
// consumers (the right side of a join, both halves of SplitResults) is
// evaluated once and every consumer sees the same data.
//
// # Operators
//
// Every operator is an Adapter applied with Pipe or chained with Compose:
//
//   - Filter, Map, TryMap, FlatMap, Tap: element-wise stages
//   - Reduce, Concat, Batch, Window: whole-sequence stages
//   - Split, SplitReader: delimiter tokenization of strings and readers
//   - DropEmpty, SplitResults: Optional and Result plumbing
//   - Join, JoinOn, JoinKV: left-outer hash join against another node
//   - AggregateByKey, CountByKey: per-key folding in first-seen key order
//
// Join and AggregateByKey take an automap.Traits bundle that selects the key
// index and fail at composition time when the bundle selects nothing.
//
// # Usage
//
//	nums := pipeline.From([]int{1, 2, 3, 4, 5})
//	evens := pipeline.Pipe(nums, pipeline.Filter(func(n int) bool { return n%2 == 0 }))
//	values, err := evens.Values() // [2 4]
//
// Nodes are not safe for concurrent use.
package pipeline
