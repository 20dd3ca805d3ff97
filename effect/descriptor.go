package effect

import (
	"time"

	"github.com/lixenwraith/dontpress/actuator"
	"github.com/lixenwraith/dontpress/sequence"
)

// CycleMode toggles the color cycle
type CycleMode int

const (
	CycleKeep CycleMode = iota
	CycleStart
	CycleStop
)

// Descriptor is the declarative effect bundle for one click index
// Nil pointers and zero values leave the corresponding target untouched
type Descriptor struct {
	Light      *actuator.LightState
	Fog        *actuator.FogState
	Particles  *bool
	Audio      string
	StopAudio  string
	Ambient    *actuator.Color
	Warning    string
	Shake      time.Duration
	ColorCycle CycleMode
	FOV        *sequence.Program
}

// Empty reports whether d would dispatch nothing
func (d Descriptor) Empty() bool {
	return d.Light == nil && d.Fog == nil && d.Particles == nil &&
		d.Audio == "" && d.StopAudio == "" && d.Ambient == nil &&
		d.Warning == "" && d.Shake <= 0 && d.ColorCycle == CycleKeep && d.FOV == nil
}

// clone copies every pointed-to value so callers cannot mutate the table
func (d Descriptor) clone() Descriptor {
	out := d
	if d.Light != nil {
		v := *d.Light
		out.Light = &v
	}
	if d.Fog != nil {
		v := *d.Fog
		out.Fog = &v
	}
	if d.Particles != nil {
		v := *d.Particles
		out.Particles = &v
	}
	if d.Ambient != nil {
		v := *d.Ambient
		out.Ambient = &v
	}
	if d.FOV != nil {
		v := d.FOV.Clone()
		out.FOV = &v
	}
	return out
}
