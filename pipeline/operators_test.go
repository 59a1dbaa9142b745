package pipeline

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/lazyflow/errors"
)

func TestFilter_PreservesOrder(t *testing.T) {
	evens := Pipe(From([]int{1, 2, 3, 4, 5}), Filter(func(v int) bool { return v%2 == 0 }))
	if diff := cmp.Diff([]int{2, 4}, mustValues(t, evens)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestFilter_NoneMatch(t *testing.T) {
	none := Pipe(From([]int{1, 3}), Filter(func(v int) bool { return v%2 == 0 }))
	if got := mustValues(t, none); len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestMap_TypeConversion(t *testing.T) {
	strs := Pipe(From([]int{1, 2, 3}), Map(func(v int) string { return "#" + strconv.Itoa(v) }))
	if diff := cmp.Diff([]string{"#1", "#2", "#3"}, mustValues(t, strs)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestTryMap(t *testing.T) {
	parsed := Pipe(From([]string{"1", "22", "333"}), TryMap(strconv.Atoi))
	if diff := cmp.Diff([]int{1, 22, 333}, mustValues(t, parsed)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	bad := Pipe(From([]string{"1", "x"}), TryMap(strconv.Atoi))
	_, err := bad.Values()
	var numErr *strconv.NumError
	if !stderrors.As(err, &numErr) {
		t.Errorf("err = %v, want the *strconv.NumError unchanged", err)
	}
}

func TestFlatMap(t *testing.T) {
	expanded := Pipe(From([]int{1, 2, 3}), FlatMap(func(v int) []int {
		if v == 2 {
			return nil
		}
		return []int{v, v * 10}
	}))
	if diff := cmp.Diff([]int{1, 10, 3, 30}, mustValues(t, expanded)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestTap(t *testing.T) {
	var seen []string
	out := Pipe(From([]string{"a", "b"}), Tap(func(s string) { seen = append(seen, s) }))
	if diff := cmp.Diff([]string{"a", "b"}, mustValues(t, out)); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, seen); diff != "" {
		t.Errorf("side effects (-want +got):\n%s", diff)
	}
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		want  []int
	}{
		{"sum", []int{1, 2, 3, 4}, []int{10}},
		{"empty input yields init", nil, []int{0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sum := Pipe(From(tc.input), Reduce(0, func(acc, v int) int { return acc + v }))
			if diff := cmp.Diff(tc.want, mustValues(t, sum)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestConcat(t *testing.T) {
	a := From([]int{1, 2})
	b := From([]int{3})
	c := From([]int{4, 5})
	all := Pipe(a, Concat(b, c))
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, mustValues(t, all)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestConcat_OtherSideDrives(t *testing.T) {
	a := From([]int{1})
	b := From([]int{2})
	joined := Pipe(a, Concat(b))
	if _, err := b.Content(); err != nil {
		t.Fatal(err)
	}
	if !joined.Evaluated() {
		t.Error("forcing a concatenated input must drive the concatenation")
	}
}

func TestConcatWith(t *testing.T) {
	a := From([]int{1})
	b := From([]int{2, 3})
	merged := Pipe(a, ConcatWith([]*Node[int]{b}, Named("merge"), Into(ListKind)))
	if merged.Name() != "merge" {
		t.Errorf("Name() = %q", merged.Name())
	}
	if merged.Kind() != ListKind {
		t.Errorf("Kind() = %v", merged.Kind())
	}
	if diff := cmp.Diff([]int{1, 2, 3}, mustValues(t, merged)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestBatch(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		size  int
		want  [][]int
	}{
		{"exact", []int{1, 2, 3, 4}, 2, [][]int{{1, 2}, {3, 4}}},
		{"partial tail", []int{1, 2, 3, 4, 5}, 2, [][]int{{1, 2}, {3, 4}, {5}}},
		{"larger than input", []int{1, 2}, 5, [][]int{{1, 2}}},
		{"zero size means one", []int{1, 2}, 0, [][]int{{1}, {2}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mustValues(t, Pipe(From(tc.input), Batch[int](tc.size)))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		input      []int
		size, step int
		want       [][]int
	}{
		{"sliding", []int{1, 2, 3, 4, 5}, 3, 1, [][]int{{1, 2, 3}, {2, 3, 4}, {3, 4, 5}}},
		{"tumbling", []int{1, 2, 3, 4, 5}, 2, 2, [][]int{{1, 2}, {3, 4}}},
		{"hopping", []int{1, 2, 3, 4, 5, 6, 7}, 2, 3, [][]int{{1, 2}, {4, 5}}},
		{"step two", []int{1, 2, 3, 4, 5}, 3, 2, [][]int{{1, 2, 3}, {3, 4, 5}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, err := Window[int](tc.size, tc.step)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, mustValues(t, Pipe(From(tc.input), w))); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestWindow_ShortInput(t *testing.T) {
	w, err := Window[int](3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := mustValues(t, Pipe(From([]int{1, 2}), w)); len(got) != 0 {
		t.Errorf("only full windows are emitted, got %v", got)
	}
}

func TestWindow_InvalidArguments(t *testing.T) {
	if _, err := Window[int](0, 1); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("size 0: err = %v", err)
	}
	if _, err := Window[int](2, 0); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("step 0: err = %v", err)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		input  []string
		delims string
		want   []string
	}{
		{"single delimiter", []string{"a b c"}, " ", []string{"a", "b", "c"}},
		{"trailing delimiter keeps empty remainder", []string{"a "}, " ", []string{"a", ""}},
		{"adjacent delimiters", []string{"a  b"}, " ", []string{"a", "", "b"}},
		{"several delimiters", []string{"a,b;c"}, ",;", []string{"a", "b", "c"}},
		{"empty string", []string{""}, " ", []string{""}},
		{"multi-byte delimiter", []string{"x·y"}, "·", []string{"x", "y"}},
		{"several inputs", []string{"a b", "c"}, " ", []string{"a", "b", "c"}},
		{"invalid utf-8 kept raw", []string{"a\xffb c"}, " ", []string{"a\xffb", "c"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mustValues(t, Pipe(From(tc.input), Split(tc.delims)))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

type trackingReader struct {
	io.Reader
	closed bool
}

func (r *trackingReader) Close() error {
	r.closed = true
	return nil
}

func TestSplitReader(t *testing.T) {
	long := strings.Repeat("w ", 1500)
	r1 := &trackingReader{Reader: strings.NewReader("The quick\nfox")}
	r2 := &trackingReader{Reader: strings.NewReader(long)}

	tokens := Pipe(From([]*trackingReader{r1, r2}), SplitReader[*trackingReader](" \n"))
	got := mustValues(t, tokens)

	if diff := cmp.Diff([]string{"The", "quick", "fox"}, got[:3]); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if len(got) != 3+1500+1 {
		t.Errorf("got %d tokens, want %d", len(got), 3+1500+1)
	}
	if got[len(got)-1] != "" {
		t.Errorf("remainder after the last delimiter must be emitted, got %q", got[len(got)-1])
	}
	if !r1.closed || !r2.closed {
		t.Error("readers implementing io.Closer must be closed once drained")
	}
}

func TestSplitReader_MatchesSplit(t *testing.T) {
	inputs := []string{
		"a\xffb c",
		"\xff",
		"x·y z",
		"cut\xe2\x82 off",
		"plain words here",
	}
	for _, in := range inputs {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			want := mustValues(t, Pipe(From([]string{in}), Split(" ·")))
			got := mustValues(t, Pipe(From([]io.Reader{strings.NewReader(in)}), SplitReader[io.Reader](" ·")))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("(-Split +SplitReader):\n%s", diff)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, stderrors.New("disk gone") }

func TestSplitReader_ReadError(t *testing.T) {
	tokens := Pipe(From([]io.Reader{failingReader{}}), SplitReader[io.Reader](" "))
	_, err := tokens.Values()
	if !errors.HasCode(err, errors.ErrCodeResource) {
		t.Errorf("err = %v, want RESOURCE_ERROR", err)
	}
}

func TestDropEmpty(t *testing.T) {
	in := From([]Optional[int]{Some(1), None[int](), Some(3)})
	if diff := cmp.Diff([]int{1, 3}, mustValues(t, Pipe(in, DropEmpty[int]()))); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSplitResults(t *testing.T) {
	bad := stderrors.New("bad")
	in := From([]Result[int]{Ok(1), Err[int](bad), Ok(3)})
	errs, values := SplitResults(in)

	if diff := cmp.Diff([]int{1, 3}, mustValues(t, values)); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	if !errs.Evaluated() {
		t.Error("forcing the values node must also evaluate the errors node")
	}
	gotErrs := mustValues(t, errs)
	if len(gotErrs) != 1 || gotErrs[0] != bad {
		t.Errorf("errors = %v", gotErrs)
	}
}

func TestOptional(t *testing.T) {
	if v, ok := Some(4).Get(); !ok || v != 4 {
		t.Errorf("Some(4).Get() = (%d, %v)", v, ok)
	}
	if None[int]().OrElse(7) != 7 {
		t.Error("OrElse should return the default for None")
	}
	if Some("x") != Some("x") || Some("x") == None[string]() {
		t.Error("Optionals must compare structurally")
	}
	if got := Some(1).String(); got != "some(1)" {
		t.Errorf("String() = %q", got)
	}
}
