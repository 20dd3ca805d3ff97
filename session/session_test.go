package session

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/dontpress/actuator"
	"github.com/lixenwraith/dontpress/config"
	"github.com/lixenwraith/dontpress/escalation"
	"github.com/lixenwraith/dontpress/event"
	"github.com/lixenwraith/dontpress/input"
	"github.com/lixenwraith/dontpress/status"
	"github.com/lixenwraith/dontpress/wincond"
)

const ms = time.Millisecond

type harness struct {
	s     *Session
	latch *input.Latch
	rec   *actuator.Recorder
	diags *event.Collector
	reg   *status.Registry
	now   time.Duration
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	h := &harness{
		latch: input.NewLatch(nil),
		rec:   actuator.NewRecorder(),
		diags: &event.Collector{},
		reg:   status.NewRegistry(),
	}
	s, err := New(cfg, actuator.NewPorts(nil, h.rec), h.latch,
		WithRand(rand.New(rand.NewPCG(1, 1))),
		WithStatus(h.reg),
		WithDiagnostics(h.diags.Hook()),
	)
	require.NoError(t, err)
	h.s = s
	return h
}

func (h *harness) runTo(target time.Duration) {
	for h.now < target {
		dt := min(10*ms, target-h.now)
		h.now += dt
		h.s.Tick(dt)
	}
}

func (h *harness) press()   { h.latch.Button(true, 0, 0) }
func (h *harness) release() { h.latch.Button(false, 0, 0) }

// Threshold 30s, no presses, one 30s tick
func TestWonInSingleTick(t *testing.T) {
	h := newHarness(t, config.Default())
	assert.False(t, h.s.Tick(30*time.Second))
	assert.Equal(t, wincond.Won, h.s.Outcome())
	assert.Equal(t, escalation.GameOver, h.s.State())
	assert.Equal(t, []string{"win"}, h.rec.Scenes)
}

// Press at 5s resets elapsed; at 35s the outcome is disqualified, not won
func TestPressDisqualifies(t *testing.T) {
	h := newHarness(t, config.Default())
	h.runTo(5*time.Second - 10*ms)
	h.press()
	h.runTo(5 * time.Second)
	assert.Equal(t, 1, h.s.ClickIndex())
	h.release()

	h.runTo(35*time.Second - 10*ms)
	assert.Equal(t, wincond.Active, h.s.Outcome())
	h.runTo(35 * time.Second)
	assert.Equal(t, wincond.Disqualified, h.s.Outcome())
	assert.Equal(t, []string{"lose"}, h.rec.Scenes)
}

// Presses at 1s and 2s; the delayed effect armed for 23s never fires
func TestDelayedEffectCancelled(t *testing.T) {
	h := newHarness(t, config.Default())
	h.runTo(990 * ms)
	h.press()
	h.runTo(time.Second)
	h.release()
	h.runTo(1990 * ms)
	h.press()
	h.runTo(2 * time.Second)
	h.release()
	h.runTo(25 * time.Second)

	assert.Equal(t, 2, h.s.ClickIndex())
	assert.NotContains(t, h.rec.Args("PlayAudio"), "alarm")
}

// Release at 0s with 0.2s cooldown; press at 0.05s must not count
func TestPressDuringCooldown(t *testing.T) {
	h := newHarness(t, config.Default())
	h.press()
	h.release()
	h.s.Tick(0) // both edges in one frame: press first, then release
	require.Equal(t, 1, h.s.ClickIndex())
	require.Equal(t, escalation.CoolingDown, h.s.State())

	h.runTo(40 * ms)
	h.press()
	h.runTo(50 * ms)
	assert.Equal(t, 1, h.s.ClickIndex())
	assert.Equal(t, 1, h.diags.Count(event.OutOfOrderEvent))
}

func TestMissedTargetViaHitTest(t *testing.T) {
	cfg := config.Default()
	latch := input.NewLatch(func(x, y int) bool { return x == 5 && y == 5 })
	var diags event.Collector
	s, err := New(cfg, actuator.NewPorts(nil, actuator.NewRecorder()), latch, WithDiagnostics(diags.Hook()))
	require.NoError(t, err)

	latch.Button(true, 0, 0)
	s.Tick(10 * ms)
	assert.Equal(t, 0, s.ClickIndex())
	assert.Equal(t, 1, diags.Count(event.MissedTarget))

	latch.Button(false, 0, 0)
	latch.Button(true, 5, 5)
	s.Tick(10 * ms)
	assert.Equal(t, 1, s.ClickIndex())
}

func TestMissingCapabilitiesDoNotHaltTick(t *testing.T) {
	var diags event.Collector
	latch := input.NewLatch(nil)
	s, err := New(config.Default(), &actuator.Ports{}, latch, WithDiagnostics(diags.Hook()))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		latch.Button(true, 0, 0)
		s.Tick(100 * ms)
		latch.Button(false, 0, 0)
		s.Tick(100 * ms)
		s.Tick(300 * ms) // Cooldown
	}
	assert.Equal(t, 10, s.ClickIndex())
	assert.Greater(t, diags.Count(event.MissingCapability), 10)
}

func TestMetricsPublished(t *testing.T) {
	h := newHarness(t, config.Default())
	h.press()
	h.runTo(100 * ms)

	assert.Equal(t, int64(1), h.reg.Ints.Get(status.KeyClicks).Load())
	assert.Equal(t, "pressed", h.reg.Strings.Get(status.KeyState).Load())
	assert.Equal(t, int64(10), h.reg.Ints.Get(status.KeyFrames).Load())
	assert.True(t, h.reg.Bools.Get(status.KeyDisqualified).Load())
	// Press lands at the end of the first frame
	assert.InDelta(t, 0.09, h.reg.Floats.Get(status.KeyElapsed).Get(), 1e-9)
	assert.Greater(t, h.reg.Ints.Get(status.KeyPending).Load(), int64(0))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Game.WinThresholdSeconds = 0
	_, err := New(cfg, &actuator.Ports{}, input.NewLatch(nil))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = New(config.Default(), nil, input.NewLatch(nil))
	assert.Error(t, err)
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := newHarness(t, config.Default())
	b := newHarness(t, config.Default())
	assert.NotEqual(t, a.s.ID, b.s.ID)
}

func TestTickAfterGameOverReturnsFalse(t *testing.T) {
	h := newHarness(t, config.Default())
	h.s.Tick(30 * time.Second)
	h.press()
	assert.False(t, h.s.Tick(10*ms))
	h.release()
	assert.False(t, h.s.Tick(10*ms))

	assert.Equal(t, 0, h.s.ClickIndex())
	assert.Equal(t, 0, h.s.Controller().Dropped(), "edges after game over are drained")
	assert.Zero(t, h.diags.Count(event.OutOfOrderEvent))
	assert.False(t, h.latch.PressEdge())
}

// A press observed at the end of a frame restarts the untouched interval from
// that instant; the warning it shows clears a full delay later
func TestPressAnchoredAtFrameEnd(t *testing.T) {
	h := newHarness(t, config.Default())
	h.runTo(5*time.Second - 10*ms)
	h.press()
	h.runTo(5 * time.Second)

	require.Equal(t, 1, h.s.ClickIndex())
	assert.Equal(t, 30*time.Second, h.s.Remaining(), "no time charged after the press")

	h.release()
	h.runTo(7*time.Second + 990*ms)
	assert.Equal(t, "Don't touch it.", h.rec.Status)
	h.runTo(8 * time.Second)
	assert.Equal(t, "", h.rec.Status)
}

// The cooldown lasts exactly its configured length from the frame that sees the release
func TestCooldownMeasuredFromObservedRelease(t *testing.T) {
	h := newHarness(t, config.Default())
	h.press()
	h.runTo(time.Second)
	h.release()
	h.runTo(1010 * ms)
	require.Equal(t, escalation.CoolingDown, h.s.State())

	h.runTo(1200 * ms)
	assert.Equal(t, escalation.CoolingDown, h.s.State())
	h.runTo(1210 * ms)
	assert.Equal(t, escalation.Idle, h.s.State())
}

func TestOnPressListener(t *testing.T) {
	h := newHarness(t, config.Default())
	var got []int
	h.s.OnPress(func(click int) { got = append(got, click) })

	for i := 0; i < 2; i++ {
		h.press()
		h.runTo(h.now + 10*ms)
		h.release()
		h.runTo(h.now + 300*ms)
	}
	assert.Equal(t, []int{1, 2}, got)
}
