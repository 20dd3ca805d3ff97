package engine

import (
	"errors"
	"time"

	"github.com/lixenwraith/dontpress/core"
)

// ErrNonPositiveInterval is returned when a repeating task would never advance
var ErrNonPositiveInterval = errors.New("repeating interval must be positive")

// Handle identifies a scheduled task, zero is never issued
type Handle uint64

// task is owned by the Scheduler; destroyed on one-shot fire or cancellation
type task struct {
	handle    Handle
	due       time.Duration // Logical time of next firing
	interval  time.Duration // 0 = one-shot
	action    func()
	cancelled bool // Also set for fired one-shots
}

// Scheduler runs one-shot and repeating deferred actions against logical time
// Advanced explicitly once per frame; never reads the wall clock
// Single-threaded: all calls must come from the frame loop or from task actions
//
// Ordering within one Advance call:
//   - tasks are visited in ascending scheduling order (FIFO)
//   - a repeating task fires once per elapsed interval before the next task is visited
//   - tasks scheduled by actions during Advance wait for the next call
//
// Repeating tasks use drift-corrected rescheduling: due += interval
type Scheduler struct {
	now    time.Duration
	nextID Handle

	tasks []*task          // Scheduling order, compacted after each Advance
	live  map[Handle]*task // Not yet fired and not cancelled

	advancing bool
	fired     uint64

	onPanic func(h Handle, r any)
}

// NewScheduler creates an empty scheduler at logical time zero
func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks: make([]*task, 0, 16),
		live:  make(map[Handle]*task),
	}
}

// SetPanicHandler receives panics recovered from task actions
// Without a handler the panic is swallowed; the loop always continues
func (s *Scheduler) SetPanicHandler(fn func(h Handle, r any)) {
	s.onPanic = fn
}

// Now returns the accumulated logical time
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// ScheduleOnce runs action once after delay, negative delay is treated as zero
func (s *Scheduler) ScheduleOnce(delay time.Duration, action func()) Handle {
	if delay < 0 {
		delay = 0
	}
	return s.add(delay, 0, action)
}

// ScheduleRepeating runs action every interval until cancelled
// First firing is one interval from now
func (s *Scheduler) ScheduleRepeating(interval time.Duration, action func()) (Handle, error) {
	if interval <= 0 {
		return 0, ErrNonPositiveInterval
	}
	return s.add(interval, interval, action), nil
}

func (s *Scheduler) add(delay, interval time.Duration, action func()) Handle {
	s.nextID++
	t := &task{
		handle:   s.nextID,
		due:      s.now + delay,
		interval: interval,
		action:   action,
	}
	s.tasks = append(s.tasks, t)
	s.live[t.handle] = t
	return t.handle
}

// Cancel stops a task; takes effect before its next due firing
// Returns false for stale handles (already fired, already cancelled, or zero), which is not an error
func (s *Scheduler) Cancel(h Handle) bool {
	t, ok := s.live[h]
	if !ok {
		return false
	}
	t.cancelled = true
	delete(s.live, h)
	return true
}

// Active reports whether h refers to a task that can still fire
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.live[h]
	return ok
}

// Pending returns the number of live tasks
func (s *Scheduler) Pending() int {
	return len(s.live)
}

// Fired returns the total number of action invocations
func (s *Scheduler) Fired() uint64 {
	return s.fired
}

// Advance moves logical time forward by dt and fires every due task
// Nested calls from inside an action are ignored
func (s *Scheduler) Advance(dt time.Duration) {
	if s.advancing {
		return
	}
	s.Elapse(dt)
	s.FireDue()
}

// Elapse moves logical time forward by dt without firing anything
// Tasks scheduled before the matching FireDue are anchored at the new time
func (s *Scheduler) Elapse(dt time.Duration) {
	if s.advancing || dt <= 0 {
		return
	}
	s.now += dt
}

// FireDue fires every task due at or before the current logical time
// Nested calls from inside an action are ignored
func (s *Scheduler) FireDue() {
	if s.advancing {
		return
	}
	s.advancing = true

	// Tasks appended by actions land beyond n and are not visited this call
	n := len(s.tasks)
	for i := 0; i < n; i++ {
		t := s.tasks[i]
		for !t.cancelled && t.due <= s.now {
			if t.interval == 0 {
				// Mark fired first so a self-cancel inside the action is a no-op
				t.cancelled = true
				delete(s.live, t.handle)
				s.run(t)
				break
			}
			t.due += t.interval
			s.run(t)
		}
	}

	s.compact()
	s.advancing = false
}

// run invokes the action with panic containment
func (s *Scheduler) run(t *task) {
	s.fired++
	if r := core.Contain(t.action); r != nil && s.onPanic != nil {
		s.onPanic(t.handle, r)
	}
}

// compact drops fired and cancelled tasks, preserving scheduling order
func (s *Scheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			kept = append(kept, t)
		}
	}
	// Release references held past the new length
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}

// Clear cancels every task, used when a session ends
func (s *Scheduler) Clear() {
	for h, t := range s.live {
		t.cancelled = true
		delete(s.live, h)
	}
	if !s.advancing {
		s.compact()
	}
}
