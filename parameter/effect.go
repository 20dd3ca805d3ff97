package parameter

// Camera FOV Ping-Pong
const (
	FOVBase        = 60.0
	FOVLow         = 60.0
	FOVHigh        = 90.0
	FOVUpSeconds   = 0.4
	FOVDownSeconds = 0.6
	FOVRepeat      = 2
)

// Screen Shake
const (
	ShakeMinMagnitude    = 0.05
	ShakeMaxMagnitude    = 0.3
	ShakeIntervalSeconds = 0.02
)

// ColorCycleIntervalSeconds is the period between random color emissions
const ColorCycleIntervalSeconds = 0.25

// Overload descriptor bounds for presses past the explicit table
const (
	OverloadIntensityMin  = 0.5
	OverloadIntensityMax  = 8.0
	OverloadIntensityStep = 0.75
	OverloadDensityMin    = 0.05
	OverloadDensityMax    = 0.25
	OverloadShakeSeconds  = 1.0
	OverloadClip          = "static"
)

// Audio clip ids known to the clip library
const (
	ClipClick  = "click"
	ClipHum    = "hum"
	ClipStatic = "static"
	ClipAlarm  = "alarm"
	ClipWin    = "win"
)

// DelayedEffectClip is played when the first-press delay expires uncancelled
const DelayedEffectClip = ClipAlarm
