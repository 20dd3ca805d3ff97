package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameLoopStopsWhenStepReturnsFalse(t *testing.T) {
	fl, err := NewFrameLoop(nil, time.Millisecond)
	require.NoError(t, err)

	calls := 0
	err = fl.Run(context.Background(), func(dt time.Duration) bool {
		calls++
		return calls < 5
	})
	require.NoError(t, err)
	assert.Equal(t, 5, calls)
	assert.Equal(t, uint64(5), fl.Frames())
}

func TestFrameLoopDeliversGameTimeDelta(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))
	clock := NewPausableClock(mock)
	fl, err := NewFrameLoop(clock, time.Millisecond)
	require.NoError(t, err)

	var dts []time.Duration
	err = fl.Run(context.Background(), func(dt time.Duration) bool {
		dts = append(dts, dt)
		switch len(dts) {
		case 1:
			mock.Advance(16 * time.Millisecond)
		case 2:
			clock.Pause()
			mock.Advance(time.Second)
		case 3:
			clock.Resume()
			mock.Advance(5 * time.Millisecond)
		}
		return len(dts) < 4
	})
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{0, 16 * time.Millisecond, 0, 5 * time.Millisecond}, dts)
}

func TestFrameLoopContextCancel(t *testing.T) {
	fl, err := NewFrameLoop(nil, time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	err = fl.Run(ctx, func(time.Duration) bool {
		cancel()
		return true
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFrameLoopStop(t *testing.T) {
	fl, err := NewFrameLoop(nil, time.Millisecond)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- fl.Run(context.Background(), func(time.Duration) bool { return true })
	}()

	time.Sleep(10 * time.Millisecond)
	fl.Stop()
	fl.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("frame loop did not stop")
	}
	assert.Greater(t, fl.Frames(), uint64(0))
}

func TestFrameLoopRejectsNonPositiveInterval(t *testing.T) {
	_, err := NewFrameLoop(nil, 0)
	assert.Error(t, err)
}
