package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/lazyflow/automap"
	"github.com/kbukum/lazyflow/errors"
)

type record struct {
	k int
	v string
}

func recordKey(r record) int      { return r.k }
func recordValue(r record) string { return r.v }

func newRecordJoin(t *testing.T, right *Node[record]) *JoinAdapter[record, record, int, string, string] {
	t.Helper()
	j, err := Join(right, recordKey, recordKey, recordValue, recordValue, automap.Comparable[int]())
	if err != nil {
		t.Fatal(err)
	}
	return j
}

func TestJoin_FanOut(t *testing.T) {
	right := From([]record{{1, "x"}, {1, "y"}})
	joined := Pipe(From([]record{{1, "a"}}), newRecordJoin(t, right))

	want := []JoinResult[string, string]{
		{Base: "a", Joined: Some("x")},
		{Base: "a", Joined: Some("y")},
	}
	if diff := cmp.Diff(want, mustValues(t, joined)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestJoin_Unmatched(t *testing.T) {
	right := From([]record{{1, "x"}})
	joined := Pipe(From([]record{{2, "b"}}), newRecordJoin(t, right))

	want := []JoinResult[string, string]{{Base: "b", Joined: None[string]()}}
	if diff := cmp.Diff(want, mustValues(t, joined)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestJoin_LeftOrderAndRightOrder(t *testing.T) {
	right := From([]record{{2, "r1"}, {1, "r2"}, {2, "r3"}})
	left := From([]record{{2, "l1"}, {3, "l2"}, {1, "l3"}})
	joined := Pipe(left, newRecordJoin(t, right))

	want := []JoinResult[string, string]{
		{Base: "l1", Joined: Some("r1")},
		{Base: "l1", Joined: Some("r3")},
		{Base: "l2"},
		{Base: "l3", Joined: Some("r2")},
	}
	if diff := cmp.Diff(want, mustValues(t, joined)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestJoin_CacheStability(t *testing.T) {
	rs := []record{{1, "x"}}
	right := Borrow(&rs)
	j := newRecordJoin(t, right)
	left := []record{{1, "a"}}

	first := mustValues(t, Pipe(From(left), j))
	if !j.Indexed() {
		t.Fatal("the right side must be indexed after the first evaluation")
	}

	rs[0].v = "changed"
	rs = append(rs, record{1, "added"})

	second := mustValues(t, Pipe(From(left), j))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results changed after the right source was mutated (-first +second):\n%s", diff)
	}
}

func TestJoin_RightEvaluatedOnce(t *testing.T) {
	evaluations := 0
	right := FromFunc(func(out Container[record]) error {
		evaluations++
		out.Append(record{1, "x"})
		return nil
	})
	j := newRecordJoin(t, right)
	for i := 0; i < 3; i++ {
		mustValues(t, Pipe(From([]record{{1, "a"}}), j))
	}
	if evaluations != 1 {
		t.Errorf("right side evaluated %d times", evaluations)
	}
}

func TestJoin_ForcingRightDrivesJoin(t *testing.T) {
	right := From([]record{{1, "x"}})
	joined := Pipe(From([]record{{1, "a"}}), newRecordJoin(t, right))
	if _, err := right.Content(); err != nil {
		t.Fatal(err)
	}
	if !joined.Evaluated() {
		t.Error("forcing the right node must drive the join")
	}
}

func TestJoin_RightDerivedFromLeft(t *testing.T) {
	left := From([]record{{1, "a"}, {2, "b"}})
	right := Pipe(left, Map(func(r record) record { return record{r.k, r.v + "!"} }))
	joined := Pipe(left, newRecordJoin(t, right))
	bases := Pipe(joined, Map(func(r JoinResult[string, string]) string { return r.Base }))
	pairs := Pipe(joined, Map(func(r JoinResult[string, string]) JoinResult[string, string] { return r }))

	if _, err := left.Content(); err != nil {
		t.Fatal(err)
	}
	for _, n := range []interface {
		Evaluated() bool
		Err() error
		Name() string
	}{right, joined, bases, pairs} {
		if !n.Evaluated() || n.Err() != nil {
			t.Errorf("%s: evaluated=%v err=%v", n.Name(), n.Evaluated(), n.Err())
		}
	}

	if diff := cmp.Diff([]string{"a", "b"}, mustValues(t, bases)); diff != "" {
		t.Errorf("bases (-want +got):\n%s", diff)
	}
	want := []JoinResult[string, string]{
		{Base: "a", Joined: Some("a!")},
		{Base: "b", Joined: Some("b!")},
	}
	if diff := cmp.Diff(want, mustValues(t, pairs)); diff != "" {
		t.Errorf("pairs (-want +got):\n%s", diff)
	}
}

func TestJoin_SelectorKinds(t *testing.T) {
	bundles := map[string]automap.Traits[int]{
		"linear":  automap.EqualOnly[int](),
		"ordered": automap.Sorted[int](),
		"hashed":  automap.Comparable[int](),
	}
	right := From([]record{{1, "x"}, {2, "y"}, {1, "z"}})
	want := []JoinResult[string, string]{
		{Base: "a", Joined: Some("x")},
		{Base: "a", Joined: Some("z")},
		{Base: "b", Joined: Some("y")},
	}
	for name, traits := range bundles {
		t.Run(name, func(t *testing.T) {
			j, err := Join(right, recordKey, recordKey, recordValue, recordValue, traits)
			if err != nil {
				t.Fatal(err)
			}
			got := mustValues(t, Pipe(From([]record{{1, "a"}, {2, "b"}}), j))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestJoinOn(t *testing.T) {
	right := From([]record{{1, "x"}})
	j, err := JoinOn[record](right, recordKey, recordKey, automap.Comparable[int]())
	if err != nil {
		t.Fatal(err)
	}
	got := mustValues(t, Pipe(From([]record{{1, "a"}}), j))
	want := []JoinResult[record, record]{{Base: record{1, "a"}, Joined: Some(record{1, "x"})}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(record{})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestJoinKV(t *testing.T) {
	right := From([]KV[string, int]{Pair("go", 2), Pair("rust", 1)})
	j, err := JoinKV[string, int](right, automap.Strings())
	if err != nil {
		t.Fatal(err)
	}
	left := From([]KV[string, int]{Pair("go", 5), Pair("zig", 1)})
	got := mustValues(t, Pipe(left, j))

	want := []JoinResult[int, int]{
		{Base: 5, Joined: Some(2)},
		{Base: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestJoin_ConfigurationErrors(t *testing.T) {
	right := From([]record{})
	if _, err := Join(right, recordKey, recordKey, recordValue, recordValue, automap.Traits[int]{}); !errors.HasCode(err, errors.ErrCodeConfiguration) {
		t.Errorf("empty traits: err = %v, want INVALID_CONFIGURATION", err)
	}
	if _, err := Join[record, record, int, string, string](nil, recordKey, recordKey, recordValue, recordValue, automap.Comparable[int]()); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil right: err = %v, want INVALID_INPUT", err)
	}
}
