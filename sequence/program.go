package sequence

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptyProgram        = errors.New("sequence program has no steps")
	ErrNonPositiveDuration = errors.New("sequence step duration must be positive")
)

// Step interpolates from the previous value to Target over Duration
type Step struct {
	Target   float64
	Duration time.Duration
}

// Program is an ordered list of steps, run front to back Passes times
// Passes <= 0 runs once
type Program struct {
	Steps  []Step
	Passes int
}

// Validate rejects programs whose timing is undefined
func (p Program) Validate() error {
	if len(p.Steps) == 0 {
		return ErrEmptyProgram
	}
	for i, s := range p.Steps {
		if s.Duration <= 0 {
			return fmt.Errorf("step %d: %w", i, ErrNonPositiveDuration)
		}
	}
	return nil
}

// Total returns the duration of all passes
func (p Program) Total() time.Duration {
	var one time.Duration
	for _, s := range p.Steps {
		one += s.Duration
	}
	return one * time.Duration(p.passes())
}

// Final returns the value the program lands on
func (p Program) Final() float64 {
	if len(p.Steps) == 0 {
		return 0
	}
	return p.Steps[len(p.Steps)-1].Target
}

// Clone returns a copy that shares no storage with p
func (p Program) Clone() Program {
	steps := make([]Step, len(p.Steps))
	copy(steps, p.Steps)
	return Program{Steps: steps, Passes: p.Passes}
}

func (p Program) passes() int {
	if p.Passes <= 0 {
		return 1
	}
	return p.Passes
}

// PingPong swings to high over up, back to low over down, for passes round trips
func PingPong(low, high float64, up, down time.Duration, passes int) Program {
	return Program{
		Steps: []Step{
			{Target: high, Duration: up},
			{Target: low, Duration: down},
		},
		Passes: passes,
	}
}
