package engine

import (
	"sync"
	"time"
)

// PausableClock provides game time that stands still while paused
// Elapsed game time = real elapsed - total paused time
type PausableClock struct {
	mu sync.RWMutex

	provider  TimeProvider
	realStart time.Time
	gameStart time.Time

	paused          bool
	pauseStart      time.Time // Real time when current pause began
	totalPausedTime time.Duration
}

// NewPausableClock creates a running clock reading from provider
// A nil provider uses the monotonic system clock
func NewPausableClock(provider TimeProvider) *PausableClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	now := provider.Now()
	return &PausableClock{
		provider:  provider,
		realStart: now,
		gameStart: now,
	}
}

// Now returns current game time
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		// Frozen at pause point
		return pc.gameStart.Add(pc.pauseStart.Sub(pc.realStart) - pc.totalPausedTime)
	}
	realElapsed := pc.provider.Now().Sub(pc.realStart)
	return pc.gameStart.Add(realElapsed - pc.totalPausedTime)
}

// RealTime returns provider time, unaffected by pause
func (pc *PausableClock) RealTime() time.Time {
	return pc.provider.Now()
}

// Pause stops game time advancement, no-op if already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.provider.Now()
}

// Resume continues game time advancement, no-op if running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPausedTime += pc.provider.Now().Sub(pc.pauseStart)
	pc.pauseStart = time.Time{}
	pc.paused = false
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including an ongoing pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.paused {
		total += pc.provider.Now().Sub(pc.pauseStart)
	}
	return total
}
