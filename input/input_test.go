package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatchEdgesAreConsumedOnce(t *testing.T) {
	l := NewLatch(nil)

	l.Button(true, 3, 4)
	assert.True(t, l.PressEdge())
	assert.False(t, l.PressEdge(), "edge consumed")
	assert.True(t, l.HitTestTarget())
	assert.True(t, l.Held())

	l.Button(false, 3, 4)
	assert.True(t, l.ReleaseEdge())
	assert.False(t, l.ReleaseEdge())
	assert.False(t, l.Held())
}

func TestLatchIgnoresRepeatedState(t *testing.T) {
	l := NewLatch(nil)
	l.Button(false, 0, 0)
	assert.False(t, l.ReleaseEdge(), "release without press is not an edge")

	l.Button(true, 1, 1)
	l.PressEdge()
	l.Button(true, 2, 2) // drag
	assert.False(t, l.PressEdge())
	x, y := l.Position()
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, y)
}

func TestLatchHitRecordedAtPress(t *testing.T) {
	l := NewLatch(func(x, y int) bool { return x < 10 })

	l.Button(true, 20, 0)
	assert.True(t, l.PressEdge())
	assert.False(t, l.HitTestTarget())

	l.Button(false, 5, 0)
	l.Button(true, 5, 0)
	assert.True(t, l.HitTestTarget())
}

func TestLatchPressAndReleaseInOneFrame(t *testing.T) {
	l := NewLatch(nil)
	l.Button(true, 0, 0)
	l.Button(false, 0, 0)
	assert.True(t, l.PressEdge())
	assert.True(t, l.ReleaseEdge())
}

func TestKeyTableDefaults(t *testing.T) {
	kt := DefaultKeyTable()
	assert.Equal(t, IntentQuit, kt.Lookup(KeyRune, 'q'))
	assert.Equal(t, IntentPause, kt.Lookup(KeyRune, 'p'))
	assert.Equal(t, IntentQuit, kt.Lookup(KeyEscape, 0))
	assert.Equal(t, IntentNone, kt.Lookup(KeyRune, 'z'))
}

func TestKeyTableApply(t *testing.T) {
	kt := DefaultKeyTable()
	require.NoError(t, kt.Apply(map[string]string{
		"x":      "quit",
		"q":      "none",
		"space":  "pause",
		"esc":    "none",
		"ctrl+c": "none",
	}))

	assert.Equal(t, IntentQuit, kt.Lookup(KeyRune, 'x'))
	assert.Equal(t, IntentNone, kt.Lookup(KeyRune, 'q'))
	assert.Equal(t, IntentPause, kt.Lookup(KeyRune, ' '))
	assert.Equal(t, IntentNone, kt.Lookup(KeyEscape, 0))
	assert.Equal(t, IntentQuit, kt.Lookup(KeyCtrlC, 0), "ctrl+c cannot be unbound")

	assert.Error(t, kt.Apply(map[string]string{"x": "explode"}))
	assert.Error(t, kt.Apply(map[string]string{"xy": "quit"}))
	assert.Len(t, ActionNames(), 5)
}
