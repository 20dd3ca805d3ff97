// Package escalation owns the press lock and click index, and dispatches
// one effect descriptor per accepted press
package escalation

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/pkg/errors"

	"github.com/lixenwraith/dontpress/actuator"
	"github.com/lixenwraith/dontpress/config"
	"github.com/lixenwraith/dontpress/core"
	"github.com/lixenwraith/dontpress/effect"
	"github.com/lixenwraith/dontpress/engine"
	"github.com/lixenwraith/dontpress/engine/fsm"
	"github.com/lixenwraith/dontpress/event"
	"github.com/lixenwraith/dontpress/fx"
	"github.com/lixenwraith/dontpress/parameter"
	"github.com/lixenwraith/dontpress/sequence"
	"github.com/lixenwraith/dontpress/vmath"
	"github.com/lixenwraith/dontpress/wincond"
)

// Settings are the timing and geometry constants of the controller
type Settings struct {
	Cooldown           time.Duration
	DelayedEffectDelay time.Duration
	DelayedEffectClip  string
	WarningClearDelay  time.Duration

	// Object sinks by Travel along -Y from Rest while pressed
	Rest   vmath.Vec3
	Travel float64

	CameraRest vmath.Vec3
	FOVBase    float64

	// Descriptor clips play at most once until ResetAudio; the light is put
	// back as it was before the last press when the session ends
	PlayAudioOnce          bool
	RestoreLightOnGameOver bool
}

// SettingsFrom extracts controller settings from a validated config
func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		Cooldown:           cfg.Cooldown(),
		DelayedEffectDelay: cfg.DelayedEffectDelay(),
		DelayedEffectClip:  cfg.Game.DelayedEffectClip,
		WarningClearDelay:  cfg.WarningClearDelay(),
		Travel:             cfg.Game.PressTravelDistance,
		FOVBase:            cfg.FOV.Base,

		PlayAudioOnce:          cfg.Game.PlayAudioOnce,
		RestoreLightOnGameOver: cfg.Game.RestoreLightOnGameOver,
	}
}

// Deps are the collaborators the controller drives; Diagnostics may be nil
type Deps struct {
	Ports       *actuator.Ports
	Scheduler   *engine.Scheduler
	Sequencer   *sequence.Sequencer
	Catalog     *effect.Catalog
	Clock       *wincond.Clock
	Shake       *fx.Shake
	Cycle       *fx.ColorCycle
	Diagnostics event.Hook
}

// Controller is the escalation state machine
// All methods run on the frame loop goroutine
type Controller struct {
	Settings
	Deps

	machine *fsm.Machine[*Controller]

	clicks  int
	dropped int
	hit     bool // Hit-test result of the press being evaluated

	cooldown     engine.Handle
	delayed      engine.Handle
	warningClear engine.Handle
	fov          sequence.Handle
	fovValue     float64

	// Last dispatched values, re-emitted with the color cycle
	light      actuator.LightState
	fog        actuator.FogState
	lightKnown bool
	fogKnown   bool

	// Light before the most recent press, zero is the unlit stage
	lightBefore actuator.LightState

	played  map[string]bool
	onPress []func(click int)
}

// New wires the controller and enters Idle
func New(s Settings, d Deps) (*Controller, error) {
	switch {
	case d.Ports == nil, d.Scheduler == nil, d.Sequencer == nil, d.Catalog == nil,
		d.Clock == nil, d.Shake == nil, d.Cycle == nil:
		return nil, errors.New("escalation: missing collaborator")
	case s.Cooldown <= 0:
		return nil, errors.Wrap(config.ErrInvalidConfig, "escalation: cooldown must be positive")
	case s.DelayedEffectDelay <= 0 || s.WarningClearDelay <= 0:
		return nil, errors.Wrap(config.ErrInvalidConfig, "escalation: delays must be positive")
	}

	m, err := buildMachine()
	if err != nil {
		return nil, errors.Wrap(err, "escalation machine")
	}

	c := &Controller{
		Settings: s,
		Deps:     d,
		machine:  m,
		fovValue: s.FOVBase,
		played:   make(map[string]bool),
	}
	d.Clock.OnOutcome(func(wincond.Outcome) {
		c.machine.HandleEvent(c, event.Outcome)
	})
	d.Cycle.Subscribe(c.onCycleColor)

	if err := m.Init(c, stateIdle); err != nil {
		return nil, errors.Wrap(err, "escalation machine")
	}
	return c, nil
}

// Press delivers a press edge; hit is the hit-test result at press time
// Returns false when the edge was dropped
func (c *Controller) Press(hit bool) bool {
	c.hit = hit
	if c.machine.HandleEvent(c, event.Press) {
		return true
	}
	c.dropped++
	switch st := c.State(); {
	case st == Idle && !hit:
		c.Diagnostics.Emit(event.MissedTarget, "escalation", "press outside target")
	default:
		c.Diagnostics.Emit(event.OutOfOrderEvent, "escalation", "press while "+st.String())
	}
	return false
}

// Release delivers a release edge; returns false when it was dropped
func (c *Controller) Release() bool {
	if c.machine.HandleEvent(c, event.Release) {
		return true
	}
	c.dropped++
	c.Diagnostics.Emit(event.OutOfOrderEvent, "escalation", "release while "+c.State().String())
	return false
}

// Update advances time-in-state of the machine
func (c *Controller) Update(dt time.Duration) {
	c.machine.Update(c, dt)
}

// State returns the active leaf
func (c *Controller) State() State {
	return stateOf[c.machine.Current()]
}

// TimeInState returns time spent in the current state
func (c *Controller) TimeInState() time.Duration {
	return c.machine.TimeInState()
}

// ClickIndex returns the number of accepted presses
func (c *Controller) ClickIndex() int {
	return c.clicks
}

// Dropped returns the number of rejected edges
func (c *Controller) Dropped() int {
	return c.dropped
}

// Outcome returns the clock outcome
func (c *Controller) Outcome() wincond.Outcome {
	return c.Clock.Outcome()
}

// DelayedEffectPending reports whether the first-press delayed effect is still armed
func (c *Controller) DelayedEffectPending() bool {
	return c.Scheduler.Active(c.delayed)
}

// OnPress registers fn to run after each accepted press has been dispatched
func (c *Controller) OnPress(fn func(click int)) {
	c.onPress = append(c.onPress, fn)
}

// ResetAudio re-arms clips suppressed by PlayAudioOnce
func (c *Controller) ResetAudio() {
	clear(c.played)
}

// RestoreLight re-emits the light as it stood before the most recent press
func (c *Controller) RestoreLight() {
	c.light, c.lightKnown = c.lightBefore, true
	c.Ports.SetLight(c.light)
}

func (c *Controller) pressHit() bool {
	return c.hit
}

func (c *Controller) enterSession() {
	c.Ports.SetObjectLocalOffset(c.Rest)
	c.Ports.SetCameraFOV(c.fovValue)
}

func (c *Controller) enterPressed() {
	c.clicks++
	c.Clock.Disqualify()
	c.Clock.ResetOnQualifyingEvent()

	c.Ports.SetObjectLocalOffset(vmath.V3Sub(c.Rest, vmath.Vec3{Y: c.Travel}))
	c.lightBefore = c.light
	c.dispatch(c.Catalog.EffectFor(c.clicks))
	c.notifyPress()

	switch c.clicks {
	case 1:
		c.delayed = c.Scheduler.ScheduleOnce(c.DelayedEffectDelay, c.fireDelayed)
	case 2:
		// Unconditional; a fired or never-armed handle is a no-op
		c.Scheduler.Cancel(c.delayed)
		c.delayed = 0
	}
}

func (c *Controller) enterCooling() {
	c.Ports.SetObjectLocalOffset(c.Rest)
	c.cooldown = c.Scheduler.ScheduleOnce(c.Cooldown, func() {
		c.cooldown = 0
		c.machine.HandleEvent(c, event.CooldownExpired)
	})
}

func (c *Controller) enterGameOver() {
	c.Scheduler.Cancel(c.cooldown)
	c.Scheduler.Cancel(c.delayed)
	c.Scheduler.Cancel(c.warningClear)
	c.Sequencer.Cancel(c.fov)
	c.cooldown, c.delayed, c.warningClear, c.fov = 0, 0, 0, 0

	c.Shake.Stop()
	c.Cycle.Stop()
	c.Ports.SetObjectLocalOffset(c.Rest)
	if c.RestoreLightOnGameOver && c.clicks > 0 {
		c.RestoreLight()
	}

	outcome := c.Clock.Outcome()
	c.Ports.SetStatusText(c.outcomeMessage(outcome))
	if outcome == wincond.Won {
		c.Ports.TriggerSceneTransition(parameter.SceneWin)
	} else {
		c.Ports.TriggerSceneTransition(parameter.SceneLose)
	}
}

func (c *Controller) outcomeMessage(o wincond.Outcome) string {
	if o == wincond.Won {
		start := time.Time{}
		span := strings.TrimSpace(humanize.RelTime(start, start.Add(c.Clock.Threshold()), "", ""))
		return fmt.Sprintf(parameter.MessageWon, span)
	}
	return fmt.Sprintf(parameter.MessageDisqualified, english.Plural(c.clicks, "time", ""))
}

func (c *Controller) fireDelayed() {
	c.delayed = 0
	c.Ports.PlayAudio(c.DelayedEffectClip)
}

// dispatch sends every set field of d to its port or sub-scheduler
func (c *Controller) dispatch(d effect.Descriptor) {
	if d.Light != nil {
		c.light, c.lightKnown = *d.Light, true
		c.Ports.SetLight(c.light)
	}
	if d.Fog != nil {
		c.fog, c.fogKnown = *d.Fog, true
		c.Ports.SetFog(c.fog)
	}
	if d.Particles != nil {
		c.Ports.SetParticles(*d.Particles)
	}
	if d.StopAudio != "" {
		c.Ports.StopAudio(d.StopAudio)
	}
	if d.Audio != "" && !(c.PlayAudioOnce && c.played[d.Audio]) {
		c.played[d.Audio] = true
		c.Ports.PlayAudio(d.Audio)
	}
	if d.Ambient != nil {
		c.Ports.SetAmbientColor(*d.Ambient)
	}
	if d.Warning != "" {
		c.showWarning(d.Warning)
	}
	if d.Shake > 0 {
		c.Shake.Start(c.CameraRest, d.Shake)
	}
	switch d.ColorCycle {
	case effect.CycleStart:
		c.Cycle.Start()
	case effect.CycleStop:
		c.Cycle.Stop()
	}
	if d.FOV != nil {
		c.startFOV(*d.FOV)
	}
}

// notifyPress runs press listeners; a panicking listener is reported and skipped
func (c *Controller) notifyPress() {
	for _, fn := range c.onPress {
		if r := core.Contain(func() { fn(c.clicks) }); r != nil {
			c.Diagnostics.Emit(event.ContainedPanic, "escalation", fmt.Sprintf("press listener: %v", r))
		}
	}
}

// showWarning displays text and re-arms its clear
func (c *Controller) showWarning(text string) {
	c.Ports.SetStatusText(text)
	c.Scheduler.Cancel(c.warningClear)
	c.warningClear = c.Scheduler.ScheduleOnce(c.WarningClearDelay, func() {
		c.warningClear = 0
		c.Ports.SetStatusText("")
	})
}

// startFOV replaces any running pulse, continuing from the current angle
func (c *Controller) startFOV(p sequence.Program) {
	c.Sequencer.Cancel(c.fov)
	// Catalog programs are validated at construction, so Start cannot fail here
	c.fov, _ = c.Sequencer.Start(c.fovValue, p, c.applyFOV, func() { c.fov = 0 })
}

func (c *Controller) applyFOV(v float64) {
	c.fovValue = v
	c.Ports.SetCameraFOV(v)
}

// onCycleColor re-emits enabled light and fog with the new color, plus ambient
func (c *Controller) onCycleColor(col actuator.Color) {
	if c.lightKnown && c.light.Enabled {
		c.light.Color = col
		c.Ports.SetLight(c.light)
	}
	if c.fogKnown && c.fog.Enabled {
		c.fog.Color = col
		c.Ports.SetFog(c.fog)
	}
	c.Ports.SetAmbientColor(col)
}
