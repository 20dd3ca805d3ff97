package event

import (
	"fmt"
	"log"
)

// Kind classifies a non-fatal condition observed by the core
type Kind int

const (
	// MissingCapability: an actuator port has no backing resource, dispatch skipped
	MissingCapability Kind = iota
	// OutOfOrderEvent: press while locked or release without press, edge dropped
	OutOfOrderEvent
	// MissedTarget: press edge whose hit-test failed, edge dropped
	MissedTarget
	// StaleHandle: cancel of a handle that already fired or was cancelled
	StaleHandle
	// ContainedPanic: a callback panicked and was isolated from the tick loop
	ContainedPanic
)

var kindNames = [...]string{
	MissingCapability: "MissingCapability",
	OutOfOrderEvent:   "OutOfOrderEvent",
	MissedTarget:      "MissedTarget",
	StaleHandle:       "StaleHandle",
	ContainedPanic:    "ContainedPanic",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic describes one contained failure or dropped input
type Diagnostic struct {
	Kind   Kind
	Source string // Emitting component, e.g. "ports.fog" or "escalation"
	Detail string
}

func (d Diagnostic) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s [%s]", d.Kind, d.Source)
	}
	return fmt.Sprintf("%s [%s]: %s", d.Kind, d.Source, d.Detail)
}

// Hook receives diagnostics; nil hooks are ignored by Emit
type Hook func(Diagnostic)

// Emit delivers d to h if h is set
func (h Hook) Emit(kind Kind, source, detail string) {
	if h == nil {
		return
	}
	h(Diagnostic{Kind: kind, Source: source, Detail: detail})
}

// Chain fans a diagnostic out to every non-nil hook in order
func Chain(hooks ...Hook) Hook {
	return func(d Diagnostic) {
		for _, h := range hooks {
			if h != nil {
				h(d)
			}
		}
	}
}

// LogHook writes diagnostics through the standard logger
func LogHook() Hook {
	return func(d Diagnostic) {
		log.Printf("diag: %s", d)
	}
}

// Collector accumulates diagnostics, used by tests and the debug overlay
type Collector struct {
	Items []Diagnostic
}

// Hook returns a Hook appending to the collector
func (c *Collector) Hook() Hook {
	return func(d Diagnostic) {
		c.Items = append(c.Items, d)
	}
}

// Count returns how many diagnostics of kind were collected
func (c *Collector) Count(kind Kind) int {
	n := 0
	for _, d := range c.Items {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
