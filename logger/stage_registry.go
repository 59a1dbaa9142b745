package logger

import (
	"sync"
	"time"
)

// StageRecord is one evaluated pipeline stage.
type StageRecord struct {
	ID       string
	Name     string
	Kind     string
	Status   string // "ok" or "error"
	Items    int
	Duration time.Duration
}

// StageRegistry collects stage evaluations of a run for summary display.
type StageRegistry struct {
	mu        sync.Mutex
	startTime time.Time
	stages    []StageRecord
}

// NewStageRegistry creates an empty registry whose run starts now.
func NewStageRegistry() *StageRegistry {
	return &StageRegistry{startTime: time.Now()}
}

// StartTime returns the registry creation time.
func (r *StageRegistry) StartTime() time.Time { return r.startTime }

// Record appends a stage evaluation.
func (r *StageRegistry) Record(rec StageRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, rec)
}

// Stages returns the recorded evaluations in completion order.
func (r *StageRegistry) Stages() []StageRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]StageRecord, len(r.stages))
	copy(out, r.stages)
	return out
}

// Failed returns the number of recorded stages that failed.
func (r *StageRegistry) Failed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.stages {
		if s.Status != "ok" {
			n++
		}
	}
	return n
}
