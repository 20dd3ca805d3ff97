// Package effect maps click indices to effect descriptors
package effect

import (
	"math/rand/v2"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/lixenwraith/dontpress/actuator"
	"github.com/lixenwraith/dontpress/config"
	"github.com/lixenwraith/dontpress/sequence"
)

// Catalog is a total lookup from click index to Descriptor
// Indices 1..Len come from the configured table; anything beyond resolves
// to a randomized overload descriptor whose shape is fixed
type Catalog struct {
	table    []Descriptor
	overload config.OverloadConfig
	rng      *rand.Rand
}

// NewCatalog compiles the click table from cfg
func NewCatalog(cfg *config.Config, rng *rand.Rand) (*Catalog, error) {
	if rng == nil {
		return nil, errors.New("catalog requires a random source")
	}

	pulse := sequence.PingPong(cfg.FOV.Low, cfg.FOV.High, cfg.FOVUp(), cfg.FOVDown(), cfg.FOV.Repeat)
	if err := pulse.Validate(); err != nil {
		return nil, errors.Wrap(config.ErrInvalidConfig, err.Error())
	}

	table := make([]Descriptor, len(cfg.Clicks))
	for i, row := range cfg.Clicks {
		d, err := compile(row, pulse)
		if err != nil {
			return nil, errors.WithMessagef(err, "click[%d]", i+1)
		}
		table[i] = d
	}

	return &Catalog{table: table, overload: cfg.Overload, rng: rng}, nil
}

func compile(row config.ClickConfig, pulse sequence.Program) (Descriptor, error) {
	var d Descriptor

	if row.Light != nil {
		c, err := config.ParseColor(row.Light.Color)
		if err != nil {
			return d, err
		}
		d.Light = &actuator.LightState{Enabled: row.Light.Enabled, Color: c, Intensity: row.Light.Intensity}
	}

	if row.Fog != nil {
		c, err := config.ParseColor(row.Fog.Color)
		if err != nil {
			return d, err
		}
		mode, err := actuator.ParseFogMode(row.Fog.Mode)
		if err != nil {
			return d, errors.Wrap(config.ErrInvalidConfig, err.Error())
		}
		fog := actuator.FogState{Enabled: row.Fog.Enabled, Mode: mode, Color: c}
		if mode == actuator.FogLinear {
			fog.LinearStart, fog.LinearEnd = row.Fog.LinearStart, row.Fog.LinearEnd
		} else {
			fog.Density = row.Fog.Density
		}
		d.Fog = &fog
	}

	if row.Particles != nil {
		p := *row.Particles
		d.Particles = &p
	}

	if row.Ambient != "" {
		c, err := config.ParseColor(row.Ambient)
		if err != nil {
			return d, err
		}
		d.Ambient = &c
	}

	switch row.ColorCycle {
	case "":
	case "start":
		d.ColorCycle = CycleStart
	case "stop":
		d.ColorCycle = CycleStop
	default:
		return d, errors.Wrapf(config.ErrInvalidConfig, "color_cycle %q", row.ColorCycle)
	}

	if row.FOVPulse {
		p := pulse.Clone()
		d.FOV = &p
	}

	d.Audio = row.Audio
	d.StopAudio = row.StopAudio
	d.Warning = row.Warning
	d.Shake = row.Shake()
	return d, nil
}

// Len returns the size of the explicit table
func (c *Catalog) Len() int {
	return len(c.table)
}

// EffectFor returns the descriptor for a click index; it never fails
// Index <= 0 yields the empty descriptor
func (c *Catalog) EffectFor(index int) Descriptor {
	switch {
	case index <= 0:
		return Descriptor{}
	case index <= len(c.table):
		return c.table[index-1].clone()
	default:
		return c.overloadFor(index)
	}
}

// overloadFor builds the randomized descriptor; intensity range widens with
// the distance past the table up to the configured maximum
func (c *Catalog) overloadFor(index int) Descriptor {
	o := c.overload
	past := index - len(c.table)

	hi := min(o.IntensityMax, o.IntensityMin+o.IntensityStep*float64(past))
	light := actuator.LightState{
		Enabled:   true,
		Color:     colorful.Hsv(c.rng.Float64()*360, 1, 1),
		Intensity: o.IntensityMin + c.rng.Float64()*(hi-o.IntensityMin),
	}

	fog := actuator.FogState{
		Enabled: true,
		Mode:    actuator.FogExponentialSquared,
		Color:   colorful.Hsv(c.rng.Float64()*360, 0.8, 0.1+c.rng.Float64()*0.15),
		Density: o.DensityMin + c.rng.Float64()*(o.DensityMax-o.DensityMin),
	}

	particles := true
	return Descriptor{
		Light:     &light,
		Fog:       &fog,
		Particles: &particles,
		Audio:     o.Clip,
		Warning:   humanize.Ordinal(index) + " press",
		Shake:     c.overloadShake(),
	}
}

func (c *Catalog) overloadShake() time.Duration {
	return time.Duration(c.overload.ShakeSeconds * float64(time.Second))
}
