package escalation

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/dontpress/actuator"
	"github.com/lixenwraith/dontpress/config"
	"github.com/lixenwraith/dontpress/effect"
	"github.com/lixenwraith/dontpress/engine"
	"github.com/lixenwraith/dontpress/event"
	"github.com/lixenwraith/dontpress/fx"
	"github.com/lixenwraith/dontpress/sequence"
	"github.com/lixenwraith/dontpress/vmath"
	"github.com/lixenwraith/dontpress/wincond"
)

const ms = time.Millisecond

// rig drives a controller the way the session does, at a fixed frame step
type rig struct {
	t     *testing.T
	ctrl  *Controller
	rec   *actuator.Recorder
	diags *event.Collector
	sched *engine.Scheduler
	seq   *sequence.Sequencer
	clock *wincond.Clock
	cycle *fx.ColorCycle
	now   time.Duration
}

func newRig(t *testing.T, cfg *config.Config) *rig {
	t.Helper()
	rng := rand.New(rand.NewPCG(11, 13))
	rec := actuator.NewRecorder()
	diags := &event.Collector{}
	ports := actuator.NewPorts(diags.Hook(), rec)

	sched := engine.NewScheduler()
	seq := sequence.NewSequencer()
	catalog, err := effect.NewCatalog(cfg, rng)
	require.NoError(t, err)
	clock, err := wincond.New(cfg.WinThreshold())
	require.NoError(t, err)
	shake, err := fx.NewShake(sched, rng, fx.ShakeSettings{
		MinMagnitude: cfg.Shake.MinMagnitude,
		MaxMagnitude: cfg.Shake.MaxMagnitude,
		Interval:     cfg.ShakeInterval(),
	}, ports.SetCameraLocalOffset)
	require.NoError(t, err)
	cycle, err := fx.NewColorCycle(sched, rng, cfg.ColorCycleInterval())
	require.NoError(t, err)

	ctrl, err := New(SettingsFrom(cfg), Deps{
		Ports: ports, Scheduler: sched, Sequencer: seq, Catalog: catalog,
		Clock: clock, Shake: shake, Cycle: cycle, Diagnostics: diags.Hook(),
	})
	require.NoError(t, err)

	return &rig{t: t, ctrl: ctrl, rec: rec, diags: diags, sched: sched, seq: seq, clock: clock, cycle: cycle}
}

// advanceTo steps 10ms frames until now reaches target
func (r *rig) advanceTo(target time.Duration) {
	for r.now < target {
		dt := min(10*ms, target-r.now)
		r.now += dt
		r.sched.Advance(dt)
		r.seq.Advance(dt)
		r.clock.Tick(dt)
		r.ctrl.Update(dt)
	}
}

// click presses on target, releases after 50ms and waits out the cooldown
func (r *rig) click() {
	require.True(r.t, r.ctrl.Press(true), "press at %v in %s", r.now, r.ctrl.State())
	r.advanceTo(r.now + 50*ms)
	require.True(r.t, r.ctrl.Release())
	r.advanceTo(r.now + 250*ms)
}

func TestInitialState(t *testing.T) {
	r := newRig(t, config.Default())
	assert.Equal(t, Idle, r.ctrl.State())
	assert.Equal(t, 0, r.ctrl.ClickIndex())
	assert.Equal(t, vmath.Zero, r.rec.ObjectOffset)
	assert.Equal(t, 60.0, r.rec.FOV)
}

func TestPressLockCycle(t *testing.T) {
	r := newRig(t, config.Default())

	require.True(t, r.ctrl.Press(true))
	assert.Equal(t, Pressed, r.ctrl.State())
	assert.Equal(t, 1, r.ctrl.ClickIndex())
	assert.Equal(t, vmath.Vec3{Y: -0.1}, r.rec.ObjectOffset)

	require.True(t, r.ctrl.Release())
	assert.Equal(t, CoolingDown, r.ctrl.State())
	assert.Equal(t, vmath.Zero, r.rec.ObjectOffset)

	r.advanceTo(190 * ms)
	assert.Equal(t, CoolingDown, r.ctrl.State())
	r.advanceTo(200 * ms)
	assert.Equal(t, Idle, r.ctrl.State())
}

func TestFirstPressDispatchesDescriptor(t *testing.T) {
	r := newRig(t, config.Default())
	require.True(t, r.ctrl.Press(true))

	assert.False(t, r.rec.Light.Enabled)
	assert.True(t, r.rec.Fog.Enabled)
	assert.Equal(t, actuator.FogExponential, r.rec.Fog.Mode)
	assert.Equal(t, 1, r.rec.Count("SetParticles"))
	assert.False(t, r.rec.Particles)
	assert.True(t, r.rec.Playing["click"])
	assert.Equal(t, "Don't touch it.", r.rec.Status)
	assert.True(t, r.ctrl.DelayedEffectPending())
	assert.True(t, r.clock.Disqualified())
}

func TestDroppedEdges(t *testing.T) {
	r := newRig(t, config.Default())

	assert.False(t, r.ctrl.Release(), "release while idle")
	assert.False(t, r.ctrl.Press(false), "missed target")
	assert.Equal(t, 0, r.ctrl.ClickIndex())

	require.True(t, r.ctrl.Press(true))
	assert.False(t, r.ctrl.Press(true), "press while pressed")

	assert.Equal(t, 3, r.ctrl.Dropped())
	assert.Equal(t, 2, r.diags.Count(event.OutOfOrderEvent))
	assert.Equal(t, 1, r.diags.Count(event.MissedTarget))
}

// Press at 1s arms the delayed effect for 23s; second press at 2s cancels it
func TestSecondPressCancelsDelayedEffect(t *testing.T) {
	r := newRig(t, config.Default())

	r.advanceTo(time.Second)
	r.click()
	require.True(t, r.ctrl.DelayedEffectPending())

	r.advanceTo(2 * time.Second)
	r.click()
	assert.False(t, r.ctrl.DelayedEffectPending())

	r.advanceTo(25 * time.Second)
	assert.False(t, r.rec.Playing["alarm"], "delayed effect must not fire")
	assert.Equal(t, []any{"click", "hum"}, r.rec.Args("PlayAudio"))
}

func TestDelayedEffectFiresWhenNotCancelled(t *testing.T) {
	r := newRig(t, config.Default())

	r.advanceTo(time.Second)
	r.click()
	r.advanceTo(22*time.Second + 990*ms)
	assert.False(t, r.rec.Playing["alarm"])
	r.advanceTo(23 * time.Second)
	assert.True(t, r.rec.Playing["alarm"])
	assert.False(t, r.ctrl.DelayedEffectPending())
}

// Release at 0s with 0.2s cooldown; press at 0.05s is dropped
func TestPressDuringCooldownDropped(t *testing.T) {
	r := newRig(t, config.Default())

	require.True(t, r.ctrl.Press(true))
	require.True(t, r.ctrl.Release())
	r.advanceTo(50 * ms)

	assert.False(t, r.ctrl.Press(true))
	assert.Equal(t, 1, r.ctrl.ClickIndex())
	assert.Equal(t, CoolingDown, r.ctrl.State())
}

func TestClickIndexCountsOnlyAcceptedPresses(t *testing.T) {
	r := newRig(t, config.Default())
	rng := rand.New(rand.NewPCG(5, 5))

	accepted := 0
	for i := 0; i < 500; i++ {
		switch rng.IntN(3) {
		case 0:
			wasIdle := r.ctrl.State() == Idle
			hit := rng.IntN(4) != 0
			ok := r.ctrl.Press(hit)
			assert.Equal(t, wasIdle && hit, ok)
			if ok {
				accepted++
			}
		case 1:
			r.ctrl.Release()
		default:
			r.advanceTo(r.now + time.Duration(rng.IntN(300))*ms)
		}
		if r.ctrl.State() == GameOver {
			break
		}
		require.Equal(t, accepted, r.ctrl.ClickIndex())
	}
	assert.Greater(t, accepted, 0)
}

func TestWarningClearsAfterDelay(t *testing.T) {
	r := newRig(t, config.Default())
	require.True(t, r.ctrl.Press(true))
	assert.Equal(t, "Don't touch it.", r.rec.Status)

	r.advanceTo(2990 * ms)
	assert.Equal(t, "Don't touch it.", r.rec.Status)
	r.advanceTo(3 * time.Second)
	assert.Equal(t, "", r.rec.Status)
}

func TestColorCycleReemitsLightFogAmbient(t *testing.T) {
	r := newRig(t, config.Default())
	for i := 0; i < 5; i++ {
		r.click()
	}
	require.True(t, r.cycle.Running())

	before := r.rec.Count("SetAmbientColor")
	r.advanceTo(r.now + 500*ms)
	assert.Greater(t, r.rec.Count("SetAmbientColor"), before)
	assert.Equal(t, r.cycle.Last(), r.rec.Ambient)
	assert.Equal(t, r.cycle.Last(), r.rec.Light.Color, "light from press 2 is enabled")
	assert.Equal(t, r.cycle.Last(), r.rec.Fog.Color)

	for i := 0; i < 2; i++ {
		r.click()
	}
	assert.False(t, r.cycle.Running(), "stopped by press 7")
}

func TestFOVPulseRunsAndLandsOnLow(t *testing.T) {
	r := newRig(t, config.Default())
	for i := 0; i < 4; i++ {
		r.click()
	}
	assert.Greater(t, r.rec.Count("SetCameraFOV"), 2)
	r.advanceTo(r.now + 3*time.Second)
	assert.Equal(t, 60.0, r.rec.FOV)
}

func TestGameOverWon(t *testing.T) {
	r := newRig(t, config.Default())
	r.advanceTo(30 * time.Second)

	assert.Equal(t, GameOver, r.ctrl.State())
	assert.Equal(t, wincond.Won, r.ctrl.Outcome())
	assert.Equal(t, []string{"win"}, r.rec.Scenes)
	assert.Equal(t, "You didn't press it for 30 seconds.", r.rec.Status)
	assert.False(t, r.ctrl.Press(true), "no presses after game over")
}

func TestGameOverDisqualifiedCancelsEverything(t *testing.T) {
	r := newRig(t, config.Default())
	for i := 0; i < 7; i++ {
		r.click()
	}
	// Shake from press 7 and the FOV pulse are still running
	require.True(t, r.ctrl.Press(true))
	require.Equal(t, 8, r.ctrl.ClickIndex())

	r.advanceTo(r.now + 30*time.Second)
	assert.Equal(t, GameOver, r.ctrl.State())
	assert.Equal(t, wincond.Disqualified, r.ctrl.Outcome())
	assert.Equal(t, []string{"lose"}, r.rec.Scenes)
	assert.Equal(t, "You pressed it 8 times.", r.rec.Status)
	assert.Equal(t, vmath.Zero, r.rec.ObjectOffset, "pressed object returned to rest")
	assert.Equal(t, vmath.Zero, r.rec.CameraOffset)
	assert.Equal(t, 0, r.sched.Pending())
	assert.Equal(t, 0, r.seq.Count())
}

func TestPressListenersRunAfterDispatch(t *testing.T) {
	r := newRig(t, config.Default())
	var seen []string
	r.ctrl.OnPress(func(int) { panic("listener bug") })
	r.ctrl.OnPress(func(click int) {
		seen = append(seen, fmt.Sprintf("%d:%s", click, r.rec.Status))
	})

	r.click()
	r.click()
	assert.Equal(t, []string{"1:Don't touch it.", "2:Don't touch it."}, seen)
	assert.Equal(t, 2, r.diags.Count(event.ContainedPanic))
}

func TestPlayAudioOnce(t *testing.T) {
	cfg := config.Default()
	cfg.Game.PlayAudioOnce = true
	cfg.Clicks = []config.ClickConfig{{Audio: "click"}, {Audio: "click"}, {Audio: "click"}}
	r := newRig(t, cfg)

	r.click()
	r.click()
	assert.Equal(t, []any{"click"}, r.rec.Args("PlayAudio"))

	r.ctrl.ResetAudio()
	r.click()
	assert.Equal(t, []any{"click", "click"}, r.rec.Args("PlayAudio"))
}

// Press 1 turns the light off, press 2 turns it red; game over puts back
// the light from before press 2
func TestRestoreLightOnGameOver(t *testing.T) {
	cfg := config.Default()
	cfg.Game.RestoreLightOnGameOver = true
	r := newRig(t, cfg)

	r.click()
	r.click()
	require.True(t, r.rec.Light.Enabled)

	r.advanceTo(r.now + 30*time.Second)
	require.Equal(t, GameOver, r.ctrl.State())
	assert.False(t, r.rec.Light.Enabled)
	assert.Equal(t, 1.0, r.rec.Light.Intensity)
}

func TestLightKeptOnGameOverByDefault(t *testing.T) {
	r := newRig(t, config.Default())
	r.click()
	r.click()

	r.advanceTo(r.now + 30*time.Second)
	require.Equal(t, GameOver, r.ctrl.State())
	assert.True(t, r.rec.Light.Enabled)

	r.ctrl.RestoreLight()
	assert.False(t, r.rec.Light.Enabled)
}

func TestNewRejectsMissingDeps(t *testing.T) {
	_, err := New(SettingsFrom(config.Default()), Deps{})
	assert.Error(t, err)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "cooling", CoolingDown.String())
	assert.Equal(t, "unknown", State(42).String())
}
