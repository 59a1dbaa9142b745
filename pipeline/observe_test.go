package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/lazyflow/logger"
)

type recordingObserver struct {
	runs []StageRun
}

func (r *recordingObserver) Observe(run *StageRun, eval func() error) error {
	err := eval()
	r.runs = append(r.runs, *run)
	return err
}

func (r *recordingObserver) names() []string {
	names := make([]string, len(r.runs))
	for i, run := range r.runs {
		names[i] = run.Name
	}
	return names
}

func TestObserver_InheritedByDerivedNodes(t *testing.T) {
	rec := &recordingObserver{}
	src := FromFunc(func(out Container[int]) error {
		out.Append(1)
		out.Append(2)
		out.Append(3)
		return nil
	}, WithObserver(rec), Named("numbers"))
	odd := Pipe(src, Filter(func(v int) bool { return v%2 == 1 }, Named("odd")))
	squares := Pipe(odd, Map(func(v int) int { return v * v }, Named("square")))

	mustValues(t, squares)

	if diff := cmp.Diff([]string{"numbers", "odd", "square"}, rec.names()); diff != "" {
		t.Errorf("observed stages (-want +got):\n%s", diff)
	}
	if rec.runs[1].Items != 2 || rec.runs[1].ID != odd.ID() {
		t.Errorf("odd stage run = %+v", rec.runs[1])
	}
}

func TestObserver_Detach(t *testing.T) {
	rec := &recordingObserver{}
	src := From([]int{1}, WithObserver(rec))
	quiet := Pipe(src, Map(func(v int) int { return v }, WithObserver(nil)))
	loud := Pipe(src, Map(func(v int) int { return v }))

	mustValues(t, quiet)
	mustValues(t, loud)

	if diff := cmp.Diff([]string{"map"}, rec.names()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestObserver_ErrorPassesThrough(t *testing.T) {
	boom := stderrors.New("boom")
	rec := &recordingObserver{}
	n := Pipe(From([]int{1}, WithObserver(rec)), TryMap(func(int) (int, error) { return 0, boom }))

	if _, err := n.Values(); err != boom {
		t.Errorf("err = %v, want boom", err)
	}
	if len(rec.runs) != 1 {
		t.Errorf("expected one observed run, got %d", len(rec.runs))
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) Observer {
		return ObserverFunc(func(run *StageRun, eval func() error) error {
			order = append(order, name+">")
			err := eval()
			order = append(order, "<"+name)
			return err
		})
	}
	n := Pipe(From([]int{1}), Map(func(v int) int { return v }, WithObserver(Chain(tag("outer"), tag("inner")))))
	mustValues(t, n)

	if diff := cmp.Diff([]string{"outer>", "inner>", "<inner", "<outer"}, order); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLoggingAndTracingObservers(t *testing.T) {
	log := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"}, "pipeline-test")
	obs := Chain(LoggingObserver(log), TracingObserver(context.Background(), "test"))

	ok := Pipe(From([]int{1, 2}), Map(func(v int) int { return v + 1 }, WithObserver(obs)))
	if diff := cmp.Diff([]int{2, 3}, mustValues(t, ok)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	boom := stderrors.New("boom")
	bad := Pipe(From([]int{1}), TryMap(func(int) (int, error) { return 0, boom }, WithObserver(obs)))
	if _, err := bad.Values(); err != boom {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestLoggingObserver_Entries(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "pipeline-test", &buf)
	obs := LoggingObserver(log)

	mustValues(t, Pipe(From([]int{1, 2}), Map(func(v int) int { return v }, Named("copy"), WithObserver(obs))))
	bad := Pipe(From([]int{1}), TryMap(func(int) (int, error) { return 0, stderrors.New("boom") }, Named("explode"), WithObserver(obs)))
	_, _ = bad.Values()

	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		entries = append(entries, m)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0][logger.FieldStage] != "copy" || entries[0][logger.FieldItems] != float64(2) || entries[0]["level"] != "debug" {
		t.Errorf("unexpected success entry %v", entries[0])
	}
	if entries[1][logger.FieldStage] != "explode" || entries[1][logger.FieldError] != "boom" || entries[1]["level"] != "error" {
		t.Errorf("unexpected failure entry %v", entries[1])
	}
}

func TestRegistryObserver(t *testing.T) {
	reg := logger.NewStageRegistry()
	obs := RegistryObserver(reg)

	src := From([]int{1, 2, 3}, Named("numbers"), WithObserver(obs))
	evens := Pipe(src, Filter(func(v int) bool { return v%2 == 0 }))
	mustValues(t, evens)

	boom := stderrors.New("boom")
	failed := Pipe(src, TryMap(func(int) (int, error) { return 0, boom }))
	if _, err := failed.Values(); err != boom {
		t.Fatalf("err = %v, want boom", err)
	}

	var got []string
	for _, s := range reg.Stages() {
		got = append(got, s.Name+":"+s.Status)
	}
	want := []string{"filter:ok", "try_map:error"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("recorded stages (-want +got):\n%s", diff)
	}
	if reg.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", reg.Failed())
	}
}
