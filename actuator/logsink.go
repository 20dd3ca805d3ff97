package actuator

import (
	"log"

	"github.com/lixenwraith/dontpress/vmath"
)

// LogSink implements every capability by writing one log line per call
// Used by headless runs in place of the terminal stage and audio device
type LogSink struct {
	logger *log.Logger

	// Quiet suppresses per-tick offset and FOV writes which would flood the log
	Quiet bool
}

// NewLogSink writes through logger, or the standard logger when nil
func NewLogSink(logger *log.Logger, quiet bool) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger, Quiet: quiet}
}

func (s *LogSink) SetFog(f FogState) {
	if !f.Enabled {
		s.logger.Printf("fog off")
		return
	}
	if f.Mode == FogLinear {
		s.logger.Printf("fog %s %s start=%.1f end=%.1f", f.Mode, HexString(f.Color), f.LinearStart, f.LinearEnd)
		return
	}
	s.logger.Printf("fog %s %s density=%.3f", f.Mode, HexString(f.Color), f.Density)
}

func (s *LogSink) SetLight(l LightState) {
	if !l.Enabled {
		s.logger.Printf("light off")
		return
	}
	s.logger.Printf("light %s intensity=%.2f", HexString(l.Color), l.Intensity)
}

func (s *LogSink) SetParticles(playing bool) {
	s.logger.Printf("particles playing=%t", playing)
}

func (s *LogSink) PlayAudio(clip string) {
	s.logger.Printf("audio play %s", clip)
}

func (s *LogSink) StopAudio(clip string) {
	s.logger.Printf("audio stop %s", clip)
}

func (s *LogSink) SetObjectLocalOffset(offset vmath.Vec3) {
	s.logger.Printf("object offset (%.2f, %.2f, %.2f)", offset.X, offset.Y, offset.Z)
}

func (s *LogSink) SetCameraLocalOffset(offset vmath.Vec3) {
	if s.Quiet {
		return
	}
	s.logger.Printf("camera offset (%.3f, %.3f, %.3f)", offset.X, offset.Y, offset.Z)
}

func (s *LogSink) SetCameraFOV(degrees float64) {
	if s.Quiet {
		return
	}
	s.logger.Printf("camera fov %.1f", degrees)
}

func (s *LogSink) SetStatusText(text string) {
	if text == "" {
		s.logger.Printf("status cleared")
		return
	}
	s.logger.Printf("status %q", text)
}

func (s *LogSink) TriggerSceneTransition(name string) {
	s.logger.Printf("scene -> %s", name)
}

func (s *LogSink) SetAmbientColor(c Color) {
	if s.Quiet {
		return
	}
	s.logger.Printf("ambient %s", HexString(c))
}
