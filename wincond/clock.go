// Package wincond decides how a session ends
package wincond

import (
	"errors"
	"fmt"
	"time"
)

// ErrNonPositiveThreshold rejects a clock that would end before it starts
var ErrNonPositiveThreshold = errors.New("win threshold must be positive")

// Outcome is the terminal state of a session
type Outcome int

const (
	Active Outcome = iota
	// Won: the threshold was reached without any press ever occurring
	Won
	// Disqualified: the threshold was reached after at least one press
	Disqualified
)

func (o Outcome) String() string {
	switch o {
	case Active:
		return "Active"
	case Won:
		return "Won"
	case Disqualified:
		return "Disqualified"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Terminal reports whether o ends the session
func (o Outcome) Terminal() bool {
	return o != Active
}

// Clock accumulates untouched time and settles the outcome exactly once
type Clock struct {
	threshold    time.Duration
	elapsed      time.Duration
	disqualified bool
	outcome      Outcome
	listeners    []func(Outcome)
}

// New creates an active clock
func New(threshold time.Duration) (*Clock, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrNonPositiveThreshold, threshold)
	}
	return &Clock{threshold: threshold}, nil
}

// OnOutcome registers fn to run once when the outcome leaves Active
func (c *Clock) OnOutcome(fn func(Outcome)) {
	c.listeners = append(c.listeners, fn)
}

// Tick accumulates dt and settles the outcome when the threshold is reached
// A terminal clock ignores further ticks
func (c *Clock) Tick(dt time.Duration) Outcome {
	c.Elapse(dt)
	return c.Settle()
}

// Elapse accumulates dt without deciding the outcome
// Lets a qualifying event observed at the end of the same frame reset first
func (c *Clock) Elapse(dt time.Duration) {
	if c.outcome.Terminal() || dt <= 0 {
		return
	}
	c.elapsed += dt
}

// Settle decides the outcome once the threshold is reached
func (c *Clock) Settle() Outcome {
	if c.outcome.Terminal() {
		return c.outcome
	}
	if c.elapsed >= c.threshold {
		if c.disqualified {
			c.settle(Disqualified)
		} else {
			c.settle(Won)
		}
	}
	return c.outcome
}

// ResetOnQualifyingEvent restarts the untouched interval
// The disqualification latch is unaffected
func (c *Clock) ResetOnQualifyingEvent() {
	if c.outcome.Terminal() {
		return
	}
	c.elapsed = 0
}

// Disqualify latches the has-pressed flag permanently
func (c *Clock) Disqualify() {
	c.disqualified = true
}

func (c *Clock) settle(o Outcome) {
	c.outcome = o
	for _, fn := range c.listeners {
		fn(o)
	}
}

func (c *Clock) Outcome() Outcome         { return c.outcome }
func (c *Clock) Disqualified() bool       { return c.disqualified }
func (c *Clock) Elapsed() time.Duration   { return c.elapsed }
func (c *Clock) Threshold() time.Duration { return c.threshold }

// Remaining returns time left before the threshold, zero once reached
func (c *Clock) Remaining() time.Duration {
	if c.elapsed >= c.threshold {
		return 0
	}
	return c.threshold - c.elapsed
}
