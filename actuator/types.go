package actuator

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is the sRGB color type shared by every visual port
type Color = colorful.Color

// FogMode selects the fog falloff
type FogMode int

const (
	FogLinear FogMode = iota
	FogExponential
	FogExponentialSquared
)

var fogModeNames = [...]string{
	FogLinear:             "linear",
	FogExponential:        "exponential",
	FogExponentialSquared: "exponential_squared",
}

func (m FogMode) String() string {
	if int(m) >= 0 && int(m) < len(fogModeNames) {
		return fogModeNames[m]
	}
	return fmt.Sprintf("FogMode(%d)", int(m))
}

// ParseFogMode accepts the names printed by String, case-insensitively
func ParseFogMode(s string) (FogMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range fogModeNames {
		if name == key {
			return FogMode(i), nil
		}
	}
	return FogLinear, fmt.Errorf("unknown fog mode %q", s)
}

// FogState is the full fog configuration applied in one call
// Density applies to exponential modes only, LinearStart/LinearEnd to linear only
type FogState struct {
	Enabled     bool
	Mode        FogMode
	Color       Color
	Density     float64
	LinearStart float64
	LinearEnd   float64
}

// Factor returns fog coverage in [0,1] at distance d
func (f FogState) Factor(d float64) float64 {
	if !f.Enabled {
		return 0
	}
	var visible float64
	switch f.Mode {
	case FogLinear:
		if f.LinearEnd <= f.LinearStart {
			return 1
		}
		visible = (f.LinearEnd - d) / (f.LinearEnd - f.LinearStart)
	case FogExponential:
		visible = math.Exp(-f.Density * d)
	case FogExponentialSquared:
		x := f.Density * d
		visible = math.Exp(-x * x)
	}
	if visible < 0 {
		visible = 0
	}
	if visible > 1 {
		visible = 1
	}
	return 1 - visible
}

// LightState is the scene key light
type LightState struct {
	Enabled   bool
	Color     Color
	Intensity float64
}

// HexString formats a color for logs; black renders as #000000
func HexString(c Color) string {
	return c.Clamped().Hex()
}
