package pipeline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/lazyflow/automap"
	"github.com/kbukum/lazyflow/errors"
)

func TestAggregateByKey_FirstSeenOrder(t *testing.T) {
	bundles := map[string]automap.Traits[string]{
		"linear":  automap.EqualOnly[string](),
		"ordered": automap.Sorted[string](),
		"hashed":  automap.Strings(),
	}
	want := []KV[string, int]{{"b", 2}, {"a", 2}, {"c", 1}}
	for name, traits := range bundles {
		t.Run(name, func(t *testing.T) {
			agg, err := AggregateByKey(0, func(_ string, n *int) { *n++ }, identity[string], traits)
			if err != nil {
				t.Fatal(err)
			}
			got := mustValues(t, Pipe(From([]string{"b", "a", "b", "c", "a"}), agg))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestAggregateByKey_AccumulatesInInputOrder(t *testing.T) {
	type word struct {
		initial byte
		text    string
	}
	agg, err := AggregateByKey(
		"",
		func(w word, acc *string) { *acc += w.text },
		func(w word) byte { return w.initial },
		automap.Comparable[byte](),
	)
	if err != nil {
		t.Fatal(err)
	}
	in := From([]word{{'x', "1"}, {'y', "2"}, {'x', "3"}, {'x', "4"}})
	want := []KV[byte, string]{{'x', "134"}, {'y', "2"}}
	if diff := cmp.Diff(want, mustValues(t, Pipe(in, agg))); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestAggregateByKey_CustomTraits(t *testing.T) {
	fold := automap.Traits[string]{Equal: strings.EqualFold}
	counts, err := CountByKey(identity[string], fold)
	if err != nil {
		t.Fatal(err)
	}
	got := mustValues(t, Pipe(From([]string{"Go", "go", "GO", "rust"}), counts))
	want := []KV[string, int]{{"Go", 3}, {"rust", 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestAggregateByKey_Empty(t *testing.T) {
	counts, err := CountByKey(identity[int], automap.Comparable[int]())
	if err != nil {
		t.Fatal(err)
	}
	if got := mustValues(t, Pipe(From([]int{}), counts)); len(got) != 0 {
		t.Errorf("expected no groups, got %v", got)
	}
}

func TestAggregateByKey_ConfigurationError(t *testing.T) {
	_, err := CountByKey(identity[string], automap.Traits[string]{})
	if !errors.HasCode(err, errors.ErrCodeConfiguration) {
		t.Errorf("err = %v, want INVALID_CONFIGURATION", err)
	}
}

func TestAggregateByKey_ReusableAdapter(t *testing.T) {
	counts, err := CountByKey(identity[string], automap.Strings())
	if err != nil {
		t.Fatal(err)
	}
	first := mustValues(t, Pipe(From([]string{"a", "a"}), counts))
	second := mustValues(t, Pipe(From([]string{"b"}), counts))
	if diff := cmp.Diff([]KV[string, int]{{"a", 2}}, first); diff != "" {
		t.Errorf("first (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]KV[string, int]{{"b", 1}}, second); diff != "" {
		t.Errorf("each application must start from an empty index (-want +got):\n%s", diff)
	}
}
