package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// StepFunc advances the game by dt of game time; returning false ends the loop
type StepFunc func(dt time.Duration) bool

// FrameLoop calls a StepFunc on a fixed real-time cadence with drift correction
// Game time comes from a PausableClock, so a paused clock yields dt = 0 frames
// while rendering keeps its cadence
type FrameLoop struct {
	clock    *PausableClock
	interval time.Duration

	frames atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
}

// NewFrameLoop creates a loop ticking every interval against clock
func NewFrameLoop(clock *PausableClock, interval time.Duration) (*FrameLoop, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("frame interval must be positive, got %v", interval)
	}
	if clock == nil {
		clock = NewPausableClock(nil)
	}
	return &FrameLoop{
		clock:    clock,
		interval: interval,
		stopChan: make(chan struct{}),
	}, nil
}

// Run blocks on the calling goroutine until ctx is done, Stop is called, or step returns false
// The step function runs on this goroutine only, which keeps the core single-threaded
func (fl *FrameLoop) Run(ctx context.Context, step StepFunc) error {
	if !fl.running.CompareAndSwap(false, true) {
		return fmt.Errorf("frame loop already running")
	}
	defer fl.running.Store(false)

	last := fl.clock.Now()
	deadline := fl.clock.RealTime().Add(fl.interval)

	timer := time.NewTimer(fl.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-fl.stopChan:
			return nil
		case <-timer.C:
		}

		now := fl.clock.Now()
		dt := now.Sub(last)
		if dt < 0 {
			dt = 0
		}
		last = now

		fl.frames.Add(1)
		if !step(dt) {
			return nil
		}

		// Drift correction: schedule against the ideal deadline, resync when too far behind
		deadline = deadline.Add(fl.interval)
		realNow := fl.clock.RealTime()
		if realNow.Sub(deadline) > fl.interval*2 {
			deadline = realNow.Add(fl.interval)
		}

		sleep := deadline.Sub(realNow)
		if sleep < 0 {
			sleep = 0
		}
		if sleep > fl.interval {
			sleep = fl.interval
		}
		timer.Reset(sleep)
	}
}

// Stop ends a running loop; safe to call multiple times
func (fl *FrameLoop) Stop() {
	fl.stopOnce.Do(func() {
		close(fl.stopChan)
	})
}

// Frames returns the number of steps executed
func (fl *FrameLoop) Frames() uint64 {
	return fl.frames.Load()
}

// Clock returns the pausable clock feeding the loop
func (fl *FrameLoop) Clock() *PausableClock {
	return fl.clock
}
