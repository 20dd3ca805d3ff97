package status

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
)

// Metric keys written by the session each tick
const (
	KeyClicks       = "escalation.clicks"
	KeyDropped      = "escalation.dropped"
	KeyState        = "escalation.state"
	KeyPending      = "scheduler.pending"
	KeyFired        = "scheduler.fired"
	KeySequences    = "sequence.active"
	KeyElapsed      = "wincond.elapsed"
	KeyDisqualified = "wincond.disqualified"
	KeyFrames       = "session.frames"
)

// Registry is the central metrics facade
// Writers cache pointers at construction; readers (debug overlay, headless summary) use Lines
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Lines renders every metric as "key: value", sorted by key
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) {
		lines = append(lines, fmt.Sprintf("%s: %t", k, v.Load()))
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s: %d", k, v.Load()))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s: %.2f", k, v.Get()))
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		lines = append(lines, fmt.Sprintf("%s: %s", k, v.Load()))
	})
	slices.SortFunc(lines, strings.Compare)
	return lines
}
