// Package session composes the core components into one play session
package session

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/lixenwraith/dontpress/actuator"
	"github.com/lixenwraith/dontpress/config"
	"github.com/lixenwraith/dontpress/effect"
	"github.com/lixenwraith/dontpress/engine"
	"github.com/lixenwraith/dontpress/escalation"
	"github.com/lixenwraith/dontpress/event"
	"github.com/lixenwraith/dontpress/fx"
	"github.com/lixenwraith/dontpress/input"
	"github.com/lixenwraith/dontpress/sequence"
	"github.com/lixenwraith/dontpress/status"
	"github.com/lixenwraith/dontpress/wincond"
)

// Option customizes a Session at construction
type Option func(*Session)

// WithRand injects the random source shared by the catalog and effects
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithStatus publishes per-tick metrics into reg
func WithStatus(reg *status.Registry) Option {
	return func(s *Session) { s.reg = reg }
}

// WithDiagnostics receives dropped edges, missing capabilities and contained panics
func WithDiagnostics(h event.Hook) Option {
	return func(s *Session) { s.diag = h }
}

// Session owns every core component for one play-through
// Tick is the only entry point after construction and must be called from a single goroutine
type Session struct {
	ID uuid.UUID

	cfg   *config.Config
	ports *actuator.Ports
	input input.Port
	rng   *rand.Rand
	reg   *status.Registry
	diag  event.Hook

	sched   *engine.Scheduler
	seq     *sequence.Sequencer
	catalog *effect.Catalog
	clock   *wincond.Clock
	shake   *fx.Shake
	cycle   *fx.ColorCycle
	ctrl    *escalation.Controller

	frames  uint64
	elapsed time.Duration

	m metrics
}

// metrics caches registry pointers so Tick never takes the registry lock
type metrics struct {
	clicks       *atomic.Int64
	dropped      *atomic.Int64
	state        *status.AtomicString
	pending      *atomic.Int64
	fired        *atomic.Int64
	sequences    *atomic.Int64
	elapsed      *status.AtomicFloat
	disqualified *atomic.Bool
	frames       *atomic.Int64
}

// New validates cfg and wires a session driving ports from in
func New(cfg *config.Config, ports *actuator.Ports, in input.Port, opts ...Option) (*Session, error) {
	if cfg == nil || ports == nil || in == nil {
		return nil, errors.New("session: config, ports and input are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		ID:    uuid.New(),
		cfg:   cfg,
		ports: ports,
		input: in,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRand(cfg.Game.Seed)
	}
	if ports.Diagnostics == nil {
		ports.Diagnostics = s.diag
	}

	s.sched = engine.NewScheduler()
	s.sched.SetPanicHandler(func(h engine.Handle, r any) {
		s.diag.Emit(event.ContainedPanic, "engine.scheduler", fmt.Sprintf("task %d: %v", h, r))
	})
	s.seq = sequence.NewSequencer()
	s.seq.SetPanicHandler(func(h sequence.Handle, r any) {
		s.diag.Emit(event.ContainedPanic, "sequence", fmt.Sprintf("sequence %d: %v", h, r))
	})

	var err error
	if s.catalog, err = effect.NewCatalog(cfg, s.rng); err != nil {
		return nil, err
	}
	if s.clock, err = wincond.New(cfg.WinThreshold()); err != nil {
		return nil, errors.Wrap(config.ErrInvalidConfig, err.Error())
	}
	s.shake, err = fx.NewShake(s.sched, s.rng, fx.ShakeSettings{
		MinMagnitude: cfg.Shake.MinMagnitude,
		MaxMagnitude: cfg.Shake.MaxMagnitude,
		Interval:     cfg.ShakeInterval(),
	}, ports.SetCameraLocalOffset)
	if err != nil {
		return nil, errors.Wrap(config.ErrInvalidConfig, err.Error())
	}
	if s.cycle, err = fx.NewColorCycle(s.sched, s.rng, cfg.ColorCycleInterval()); err != nil {
		return nil, errors.Wrap(config.ErrInvalidConfig, err.Error())
	}

	s.ctrl, err = escalation.New(escalation.SettingsFrom(cfg), escalation.Deps{
		Ports:       ports,
		Scheduler:   s.sched,
		Sequencer:   s.seq,
		Catalog:     s.catalog,
		Clock:       s.clock,
		Shake:       s.shake,
		Cycle:       s.cycle,
		Diagnostics: s.diag,
	})
	if err != nil {
		return nil, err
	}

	if s.reg != nil {
		s.m = metrics{
			clicks:       s.reg.Ints.Get(status.KeyClicks),
			dropped:      s.reg.Ints.Get(status.KeyDropped),
			state:        s.reg.Strings.Get(status.KeyState),
			pending:      s.reg.Ints.Get(status.KeyPending),
			fired:        s.reg.Ints.Get(status.KeyFired),
			sequences:    s.reg.Ints.Get(status.KeySequences),
			elapsed:      s.reg.Floats.Get(status.KeyElapsed),
			disqualified: s.reg.Bools.Get(status.KeyDisqualified),
			frames:       s.reg.Ints.Get(status.KeyFrames),
		}
		s.publish()
	}
	return s, nil
}

// NewRand returns a PCG source for seed; seed 0 draws one from the clock
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Tick runs one frame of length dt
// Time passes first: scheduler clock, sequences, win clock and machine time
// Edges sampled this frame are then applied at the frame's end instant, so
// timers they arm and the untouched interval they reset start from there.
// Due tasks fire after the edges, and the outcome settles last.
// Returns false once the outcome is terminal; later calls only drain input
func (s *Session) Tick(dt time.Duration) bool {
	if dt < 0 {
		dt = 0
	}

	s.sched.Elapse(dt)
	s.seq.Advance(dt)
	s.clock.Elapse(dt)
	s.ctrl.Update(dt)

	if s.clock.Outcome().Terminal() {
		s.drainInput()
	} else {
		if s.input.PressEdge() {
			s.ctrl.Press(s.input.HitTestTarget())
		}
		if s.input.ReleaseEdge() {
			s.ctrl.Release()
		}
	}

	s.sched.FireDue()
	s.clock.Settle()

	s.frames++
	s.elapsed += dt
	s.publish()

	return !s.clock.Outcome().Terminal()
}

// drainInput discards edges once the session is over
func (s *Session) drainInput() {
	s.input.PressEdge()
	s.input.ReleaseEdge()
}

func (s *Session) publish() {
	if s.reg == nil {
		return
	}
	s.m.clicks.Store(int64(s.ctrl.ClickIndex()))
	s.m.dropped.Store(int64(s.ctrl.Dropped()))
	s.m.state.Store(s.ctrl.State().String())
	s.m.pending.Store(int64(s.sched.Pending()))
	s.m.fired.Store(int64(s.sched.Fired()))
	s.m.sequences.Store(int64(s.seq.Count()))
	s.m.elapsed.Set(s.clock.Elapsed().Seconds())
	s.m.disqualified.Store(s.clock.Disqualified())
	s.m.frames.Store(int64(s.frames))
}

// OnPress registers fn to run after every accepted press with the new click index
func (s *Session) OnPress(fn func(click int)) {
	s.ctrl.OnPress(fn)
}

func (s *Session) ClickIndex() int                    { return s.ctrl.ClickIndex() }
func (s *Session) State() escalation.State            { return s.ctrl.State() }
func (s *Session) Outcome() wincond.Outcome           { return s.clock.Outcome() }
func (s *Session) Remaining() time.Duration           { return s.clock.Remaining() }
func (s *Session) Elapsed() time.Duration             { return s.elapsed }
func (s *Session) Frames() uint64                     { return s.frames }
func (s *Session) Controller() *escalation.Controller { return s.ctrl }
func (s *Session) Scheduler() *engine.Scheduler       { return s.sched }
