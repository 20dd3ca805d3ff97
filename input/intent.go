package input

// IntentType discriminates keyboard actions outside the press surface
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit        // q, Esc, Ctrl+C
	IntentPause       // p
	IntentToggleDebug // d, metrics overlay
	IntentToggleMute  // m
)

// Key identifies a non-rune key
type Key uint8

const (
	KeyRune Key = iota
	KeyEscape
	KeyCtrlC
	KeyCtrlQ
	KeyEnter
)

// actionRegistry maps config action names to intents
var actionRegistry = map[string]IntentType{
	"none":  IntentNone,
	"quit":  IntentQuit,
	"pause": IntentPause,
	"debug": IntentToggleDebug,
	"mute":  IntentToggleMute,
}

// ActionNames returns the accepted action names for key bindings
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	return names
}
