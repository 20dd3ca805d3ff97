package parameter

// Press Lock & Win Condition
const (
	// WinThresholdSeconds of untouched time end the session
	WinThresholdSeconds = 30.0

	// CooldownSeconds is the press re-arm delay after a release
	CooldownSeconds = 0.2

	// PressTravelDistance is how far the object sinks while held
	PressTravelDistance = 0.1

	// DelayedEffectDelaySeconds is the alarm delay armed by the first press
	DelayedEffectDelaySeconds = 22.0

	// WarningClearDelaySeconds is how long a warning stays visible
	WarningClearDelaySeconds = 3.0
)

// Scene names passed to the scene transition port
const (
	SceneWin  = "win"
	SceneLose = "lose"
)

// Outcome message formats shown on the status line when the session ends
const (
	// MessageWon receives the humanized threshold, e.g. "30 seconds"
	MessageWon = "You didn't press it for %s."

	// MessageDisqualified receives the pluralized press count, e.g. "3 times"
	MessageDisqualified = "You pressed it %s."
)
