package engine

import (
	"sync/atomic"
	"time"
)

// TimeProvider is the source of real time for the frame loop
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

var _ TimeProvider = (*MockTimeProvider)(nil)

// MockTimeProvider is a manually driven time source for tests
// With a step set, every Now call returns the current instant then moves
// forward by step, which simulates a clock that runs while it is read
type MockTimeProvider struct {
	base   time.Time
	offset atomic.Int64
	step   atomic.Int64
}

// NewMockTimeProvider creates a mock frozen at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{base: start}
}

func (m *MockTimeProvider) Now() time.Time {
	step := m.step.Load()
	return m.base.Add(time.Duration(m.offset.Add(step) - step))
}

// SetTime jumps to t, which may be before the current instant
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.offset.Store(int64(t.Sub(m.base)))
}

// Advance moves the current instant forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.offset.Add(int64(d))
}

// SetStep makes every later Now call advance by d; zero freezes the clock again
func (m *MockTimeProvider) SetStep(d time.Duration) {
	m.step.Store(int64(d))
}
