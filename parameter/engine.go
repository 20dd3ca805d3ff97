package parameter

import "time"

// Frame Loop
const (
	// FrameUpdateInterval is the default real-time frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MinFPS and MaxFPS bound the -fps flag
	MinFPS = 10
	MaxFPS = 240

	// HeadlessStep is the fixed dt used when simulating a session without a terminal
	HeadlessStep = 10 * time.Millisecond
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "dontpress.log"

	// MaxLogSize triggers rotation of the previous log to .1 on startup
	MaxLogSize = 10 * 1024 * 1024
)
