package fx

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/dontpress/actuator"
	"github.com/lixenwraith/dontpress/engine"
)

// ColorCycle emits a uniformly random color to every subscriber each interval
// It has no duration: it runs until Stop, and the last color persists
type ColorCycle struct {
	sched    *engine.Scheduler
	rng      *rand.Rand
	interval time.Duration

	subscribers []func(actuator.Color)
	handle      engine.Handle
	last        actuator.Color
	emitted     uint64
}

// NewColorCycle creates a stopped cycle
func NewColorCycle(sched *engine.Scheduler, rng *rand.Rand, interval time.Duration) (*ColorCycle, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("color cycle interval: %w", engine.ErrNonPositiveInterval)
	}
	return &ColorCycle{sched: sched, rng: rng, interval: interval}, nil
}

// Subscribe adds a receiver for every emitted color
func (c *ColorCycle) Subscribe(fn func(actuator.Color)) {
	c.subscribers = append(c.subscribers, fn)
}

// Start begins emitting; a running cycle is left untouched
func (c *ColorCycle) Start() {
	if c.handle != 0 {
		return
	}
	c.handle, _ = c.sched.ScheduleRepeating(c.interval, c.emit)
}

// Stop halts emission between colors
func (c *ColorCycle) Stop() {
	if c.handle == 0 {
		return
	}
	c.sched.Cancel(c.handle)
	c.handle = 0
}

// Running reports whether the cycle is emitting
func (c *ColorCycle) Running() bool {
	return c.handle != 0
}

// Last returns the most recently emitted color
func (c *ColorCycle) Last() actuator.Color {
	return c.last
}

// Emitted returns how many colors were emitted
func (c *ColorCycle) Emitted() uint64 {
	return c.emitted
}

func (c *ColorCycle) emit() {
	c.last = actuator.Color{R: c.rng.Float64(), G: c.rng.Float64(), B: c.rng.Float64()}
	c.emitted++
	for _, fn := range c.subscribers {
		fn(c.last)
	}
}
