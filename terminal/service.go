package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/dontpress/core"
)

// TerminalService manages screen lifecycle and input polling
type TerminalService struct {
	newScreen func() (tcell.Screen, error)
	screen    tcell.Screen

	eventCh chan tcell.Event
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu       sync.Mutex
	running  bool
	finiOnce sync.Once
}

// NewService creates a service on the real terminal
func NewService() *TerminalService {
	return newService(tcell.NewScreen)
}

// NewServiceWithScreen wraps an existing screen, e.g. a simulation screen
func NewServiceWithScreen(screen tcell.Screen) *TerminalService {
	return newService(func() (tcell.Screen, error) { return screen, nil })
}

func newService(factory func() (tcell.Screen, error)) *TerminalService {
	return &TerminalService{
		newScreen: factory,
		eventCh:   make(chan tcell.Event, 256),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Name implements Service
func (s *TerminalService) Name() string {
	return "terminal"
}

// Dependencies implements Service
func (s *TerminalService) Dependencies() []string {
	return nil
}

// Init implements Service
// Enters the alternate screen with mouse button reporting
func (s *TerminalService) Init() error {
	screen, err := s.newScreen()
	if err != nil {
		return errors.Wrap(err, "terminal create")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "terminal init")
	}
	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()
	screen.Clear()
	s.screen = screen
	return nil
}

// Start implements Service - launches input polling goroutine
func (s *TerminalService) Start() error {
	s.mu.Lock()
	if s.running || s.screen == nil {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	core.Go(s.pollLoop)
	return nil
}

// pollLoop reads input events until stop signal
func (s *TerminalService) pollLoop() {
	defer close(s.doneCh)

	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}

		select {
		case s.eventCh <- ev:
		case <-s.stopCh:
			return
		}
	}
}

// Stop implements Service - signals stop and restores terminal
func (s *TerminalService) Stop() error {
	s.mu.Lock()
	wasRunning := s.running
	s.running = false
	s.mu.Unlock()

	if wasRunning {
		close(s.stopCh)
		// Synthetic event unblocks PollEvent
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
		<-s.doneCh
	}

	s.Restore()
	return nil
}

// Restore returns the terminal to its normal state; safe to call repeatedly
// and from the crash handler
func (s *TerminalService) Restore() {
	if s.screen == nil {
		return
	}
	s.finiOnce.Do(s.screen.Fini)
}

// Screen returns the wrapped screen, nil before Init
func (s *TerminalService) Screen() tcell.Screen {
	return s.screen
}

// Events returns the input event channel
func (s *TerminalService) Events() <-chan tcell.Event {
	return s.eventCh
}
