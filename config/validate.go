package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/lixenwraith/dontpress/actuator"
)

// ErrInvalidConfig is the root of every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

func invalid(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidConfig, format, args...)
}

// Validate rejects values that would produce undefined timing or rendering
func (c *Config) Validate() error {
	g := c.Game
	if g.WinThresholdSeconds <= 0 {
		return invalid("game.win_threshold_seconds must be positive, got %v", g.WinThresholdSeconds)
	}
	if g.CooldownSeconds <= 0 {
		return invalid("game.cooldown_seconds must be positive, got %v", g.CooldownSeconds)
	}
	if g.PressTravelDistance < 0 {
		return invalid("game.press_travel_distance must not be negative, got %v", g.PressTravelDistance)
	}
	if g.DelayedEffectDelaySeconds <= 0 {
		return invalid("game.delayed_effect_delay_seconds must be positive, got %v", g.DelayedEffectDelaySeconds)
	}
	if g.WarningClearDelaySeconds <= 0 {
		return invalid("game.warning_clear_delay_seconds must be positive, got %v", g.WarningClearDelaySeconds)
	}

	f := c.FOV
	if f.Low >= f.High {
		return invalid("fov.low (%v) must be below fov.high (%v)", f.Low, f.High)
	}
	if f.Low <= 0 || f.High >= 180 || f.Base <= 0 || f.Base >= 180 {
		return invalid("fov angles must lie in (0, 180)")
	}
	if f.UpSeconds <= 0 || f.DownSeconds <= 0 {
		return invalid("fov.up_seconds and fov.down_seconds must be positive")
	}
	if f.Repeat < 1 {
		return invalid("fov.repeat must be at least 1, got %d", f.Repeat)
	}

	s := c.Shake
	if s.MinMagnitude < 0 || s.MaxMagnitude < s.MinMagnitude {
		return invalid("shake magnitudes must satisfy 0 <= min <= max, got [%v, %v]", s.MinMagnitude, s.MaxMagnitude)
	}
	if s.IntervalSeconds <= 0 {
		return invalid("shake.interval_seconds must be positive, got %v", s.IntervalSeconds)
	}
	if c.ColorCycle.IntervalSeconds <= 0 {
		return invalid("color_cycle.interval_seconds must be positive, got %v", c.ColorCycle.IntervalSeconds)
	}

	o := c.Overload
	if o.IntensityMin < 0 || o.IntensityMax < o.IntensityMin || o.IntensityStep < 0 {
		return invalid("overload intensity must satisfy 0 <= min <= max and step >= 0")
	}
	if o.DensityMin < 0 || o.DensityMax < o.DensityMin {
		return invalid("overload density must satisfy 0 <= min <= max")
	}
	if o.ShakeSeconds < 0 {
		return invalid("overload.shake_seconds must not be negative")
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return invalid("audio.volume must lie in [0, 1], got %v", c.Audio.Volume)
	}

	for i, row := range c.Clicks {
		if err := row.validate(); err != nil {
			return errors.WithMessage(err, fmt.Sprintf("click[%d]", i+1))
		}
	}
	return nil
}

func (cc ClickConfig) validate() error {
	if cc.Light != nil {
		if _, err := ParseColor(cc.Light.Color); err != nil {
			return err
		}
		if cc.Light.Intensity < 0 {
			return invalid("light.intensity must not be negative")
		}
	}
	if cc.Fog != nil {
		if _, err := ParseColor(cc.Fog.Color); err != nil {
			return err
		}
		if _, err := actuator.ParseFogMode(cc.Fog.Mode); err != nil {
			return invalid("fog.mode: %v", err)
		}
		if cc.Fog.Density < 0 {
			return invalid("fog.density must not be negative")
		}
	}
	if cc.Ambient != "" {
		if _, err := ParseColor(cc.Ambient); err != nil {
			return err
		}
	}
	if cc.ShakeSeconds < 0 {
		return invalid("shake_seconds must not be negative")
	}
	switch cc.ColorCycle {
	case "", "start", "stop":
	default:
		return invalid("color_cycle must be \"start\" or \"stop\", got %q", cc.ColorCycle)
	}
	return nil
}

// ParseColor parses a #rrggbb hex color
func ParseColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, invalid("color %q: %v", s, err)
	}
	return c, nil
}
