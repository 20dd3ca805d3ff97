package event

// Type identifies a trigger delivered to the escalation state machine
type Type int

const (
	// Tick is the implicit per-update trigger, reserved for automatic transitions
	Tick Type = iota

	// Press is a qualifying press edge
	// Trigger: InputPort press edge | Guard: hit-test true
	Press

	// Release is a release edge
	// Trigger: InputPort release edge
	Release

	// CooldownExpired re-arms the press lock
	// Trigger: cooldown one-shot scheduled on release
	CooldownExpired

	// Outcome signals that the win clock reached a terminal outcome
	// Trigger: wincond.Clock listener
	Outcome
)

var typeNames = map[Type]string{
	Tick:            "Tick",
	Press:           "Press",
	Release:         "Release",
	CooldownExpired: "CooldownExpired",
	Outcome:         "Outcome",
}

// String returns the registered name of the trigger
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}
