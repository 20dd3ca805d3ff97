package sequence

import (
	"time"

	"github.com/lixenwraith/dontpress/core"
	"github.com/lixenwraith/dontpress/vmath"
)

// Handle identifies a running sequence, zero is never issued
type Handle uint64

type run struct {
	handle  Handle
	program Program
	passes  int

	step      int
	pass      int
	stepFrom  float64
	elapsed   time.Duration // Within the current step
	apply     func(float64)
	done      func()
	cancelled bool // Also set on completion
}

// Sequencer advances multi-step interpolations across frames
// Single-threaded like the scheduler: one Advance per frame from the loop
type Sequencer struct {
	nextID    Handle
	runs      []*run
	live      map[Handle]*run
	advancing bool

	onPanic func(h Handle, r any)
}

// NewSequencer creates an idle sequencer
func NewSequencer() *Sequencer {
	return &Sequencer{
		live: make(map[Handle]*run),
	}
}

// SetPanicHandler receives panics recovered from apply or done callbacks
func (s *Sequencer) SetPanicHandler(fn func(h Handle, r any)) {
	s.onPanic = fn
}

// Start begins interpolating from the given value through program
// apply receives every intermediate value; done (optional) runs after the
// final target has been applied
func (s *Sequencer) Start(from float64, program Program, apply func(float64), done func()) (Handle, error) {
	if err := program.Validate(); err != nil {
		return 0, err
	}
	s.nextID++
	r := &run{
		handle:   s.nextID,
		program:  program.Clone(),
		passes:   program.passes(),
		stepFrom: from,
		apply:    apply,
		done:     done,
	}
	s.runs = append(s.runs, r)
	s.live[r.handle] = r
	return r.handle, nil
}

// Cancel halts a sequence where it stands; no revert is applied
// Unknown or finished handles are ignored
func (s *Sequencer) Cancel(h Handle) bool {
	r, ok := s.live[h]
	if !ok {
		return false
	}
	r.cancelled = true
	delete(s.live, h)
	return true
}

// Active reports whether h is still running
func (s *Sequencer) Active(h Handle) bool {
	_, ok := s.live[h]
	return ok
}

// Count returns the number of running sequences
func (s *Sequencer) Count() int {
	return len(s.live)
}

// Advance moves every running sequence forward by dt
// Surplus time past a step boundary carries into the next step
func (s *Sequencer) Advance(dt time.Duration) {
	if s.advancing {
		return
	}
	if dt < 0 {
		dt = 0
	}
	s.advancing = true

	n := len(s.runs)
	for i := 0; i < n; i++ {
		r := s.runs[i]
		if r.cancelled {
			continue
		}
		r.elapsed += dt
		s.step(r)
	}

	s.compact()
	s.advancing = false
}

func (s *Sequencer) step(r *run) {
	for {
		st := r.program.Steps[r.step]
		if r.elapsed < st.Duration {
			frac := float64(r.elapsed) / float64(st.Duration)
			s.call(r, func() { r.apply(vmath.Lerp(r.stepFrom, st.Target, frac)) })
			return
		}

		r.elapsed -= st.Duration
		r.stepFrom = st.Target
		r.step++
		if r.step < len(r.program.Steps) {
			continue
		}

		r.step = 0
		r.pass++
		if r.pass < r.passes {
			continue
		}

		// Completed: pin the exact final target rather than an interpolated value
		r.cancelled = true
		delete(s.live, r.handle)
		final := r.program.Final()
		s.call(r, func() { r.apply(final) })
		if r.done != nil {
			s.call(r, r.done)
		}
		return
	}
}

func (s *Sequencer) call(r *run, fn func()) {
	if rec := core.Contain(fn); rec != nil && s.onPanic != nil {
		s.onPanic(r.handle, rec)
	}
}

func (s *Sequencer) compact() {
	kept := s.runs[:0]
	for _, r := range s.runs {
		if !r.cancelled {
			kept = append(kept, r)
		}
	}
	for i := len(kept); i < len(s.runs); i++ {
		s.runs[i] = nil
	}
	s.runs = kept
}

// Clear cancels every running sequence
func (s *Sequencer) Clear() {
	for h, r := range s.live {
		r.cancelled = true
		delete(s.live, h)
	}
	if !s.advancing {
		s.compact()
	}
}
