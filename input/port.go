package input

import "sync"

// Port is the per-frame input surface consumed by the session
// Each edge reads true at most once per physical transition
type Port interface {
	PressEdge() bool
	ReleaseEdge() bool
	// HitTestTarget reports whether the most recent press landed on the object
	HitTestTarget() bool
}

// HitTester maps a press coordinate to a hit on the interactive object
type HitTester func(x, y int) bool

// Latch turns raw button state into consumable press/release edges
// Button is called by the frontend as events arrive; the edge methods are
// called once per frame by the session
type Latch struct {
	mu sync.Mutex

	hitTest HitTester

	down    bool
	press   bool
	release bool
	hit     bool
	x, y    int
}

var _ Port = (*Latch)(nil)

// NewLatch creates a latch; a nil hit tester accepts every press
func NewLatch(hit HitTester) *Latch {
	return &Latch{hitTest: hit}
}

// Button records the primary button state at (x, y)
// Repeated reports of the same state are ignored so drag motion does not
// produce edges
func (l *Latch) Button(down bool, x, y int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.x, l.y = x, y
	if down == l.down {
		return
	}
	l.down = down
	if down {
		l.press = true
		l.hit = l.hitTest == nil || l.hitTest(x, y)
		return
	}
	l.release = true
}

func (l *Latch) PressEdge() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	edge := l.press
	l.press = false
	return edge
}

func (l *Latch) ReleaseEdge() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	edge := l.release
	l.release = false
	return edge
}

func (l *Latch) HitTestTarget() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hit
}

// Held reports whether the button is currently down
func (l *Latch) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.down
}

// Position returns the last reported pointer position
func (l *Latch) Position() (x, y int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.x, l.y
}
