// Package fx implements periodic visual effects on top of the scheduler
package fx

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/dontpress/engine"
	"github.com/lixenwraith/dontpress/vmath"
)

// ShakeSettings bounds the per-tick offset
type ShakeSettings struct {
	MinMagnitude float64
	MaxMagnitude float64
	Interval     time.Duration
}

// Shake jitters a position around a fixed origin for a bounded duration
// On expiry or Stop the exact origin is re-applied, never a residual offset
type Shake struct {
	sched    *engine.Scheduler
	rng      *rand.Rand
	settings ShakeSettings
	apply    func(vmath.Vec3)

	origin vmath.Vec3
	active bool
	tick   engine.Handle
	stop   engine.Handle
}

// NewShake creates an idle shake writing offsets through apply
func NewShake(sched *engine.Scheduler, rng *rand.Rand, settings ShakeSettings, apply func(vmath.Vec3)) (*Shake, error) {
	if settings.Interval <= 0 {
		return nil, fmt.Errorf("shake interval: %w", engine.ErrNonPositiveInterval)
	}
	if settings.MinMagnitude < 0 || settings.MaxMagnitude < settings.MinMagnitude {
		return nil, fmt.Errorf("shake magnitude bounds [%v, %v] invalid", settings.MinMagnitude, settings.MaxMagnitude)
	}
	return &Shake{
		sched:    sched,
		rng:      rng,
		settings: settings,
		apply:    apply,
	}, nil
}

// Start shakes around origin for d
// While already active the origin is kept and the stop is re-armed to d from now
func (s *Shake) Start(origin vmath.Vec3, d time.Duration) {
	if d <= 0 {
		return
	}
	if s.active {
		s.sched.Cancel(s.stop)
		s.stop = s.sched.ScheduleOnce(d, s.Stop)
		return
	}

	s.origin = origin
	s.active = true
	// Interval validated in NewShake
	s.tick, _ = s.sched.ScheduleRepeating(s.settings.Interval, s.jitter)
	s.stop = s.sched.ScheduleOnce(d, s.Stop)
}

// Stop cancels both tasks and re-applies the origin
func (s *Shake) Stop() {
	if !s.active {
		return
	}
	s.active = false
	s.sched.Cancel(s.tick)
	s.sched.Cancel(s.stop)
	s.tick, s.stop = 0, 0
	s.apply(s.origin)
}

// Active reports whether a shake is running
func (s *Shake) Active() bool {
	return s.active
}

// Origin returns the position the shake returns to
func (s *Shake) Origin() vmath.Vec3 {
	return s.origin
}

func (s *Shake) jitter() {
	span := s.settings.MaxMagnitude - s.settings.MinMagnitude
	mag := s.settings.MinMagnitude + s.rng.Float64()*span
	angle := s.rng.Float64() * 2 * math.Pi
	offset := vmath.Vec3{X: math.Cos(angle) * mag, Y: math.Sin(angle) * mag}
	s.apply(vmath.V3Add(s.origin, offset))
}
