package actuator

import (
	"fmt"

	"github.com/lixenwraith/dontpress/core"
	"github.com/lixenwraith/dontpress/event"
	"github.com/lixenwraith/dontpress/vmath"
)

// Capability interfaces, one per external effect target
// A backend implements any subset; Bind wires whatever it offers

type Fog interface {
	SetFog(FogState)
}

type Light interface {
	SetLight(LightState)
}

type Particles interface {
	SetParticles(playing bool)
}

type Audio interface {
	PlayAudio(clip string)
	StopAudio(clip string)
}

type Object interface {
	SetObjectLocalOffset(offset vmath.Vec3)
}

type Camera interface {
	SetCameraLocalOffset(offset vmath.Vec3)
	SetCameraFOV(degrees float64)
}

type Status interface {
	SetStatusText(text string)
}

type Scene interface {
	TriggerSceneTransition(name string)
}

type Ambient interface {
	SetAmbientColor(Color)
}

// Ports is the context object the core drives every external effect through
// Each call is defined even when the capability is unbound: the dispatch is
// skipped and a MissingCapability diagnostic is emitted
// A panicking backend is contained and reported as ContainedPanic
type Ports struct {
	Fog       Fog
	Light     Light
	Particles Particles
	Audio     Audio
	Object    Object
	Camera    Camera
	Status    Status
	Scene     Scene
	Ambient   Ambient

	Diagnostics event.Hook
}

// NewPorts binds every capability implemented by each backend
// Later backends override earlier ones for the same capability
func NewPorts(diag event.Hook, backends ...any) *Ports {
	p := &Ports{Diagnostics: diag}
	for _, b := range backends {
		p.Bind(b)
	}
	return p
}

// Bind attaches the capabilities b implements, returning how many were bound
func (p *Ports) Bind(b any) int {
	n := 0
	if v, ok := b.(Fog); ok {
		p.Fog = v
		n++
	}
	if v, ok := b.(Light); ok {
		p.Light = v
		n++
	}
	if v, ok := b.(Particles); ok {
		p.Particles = v
		n++
	}
	if v, ok := b.(Audio); ok {
		p.Audio = v
		n++
	}
	if v, ok := b.(Object); ok {
		p.Object = v
		n++
	}
	if v, ok := b.(Camera); ok {
		p.Camera = v
		n++
	}
	if v, ok := b.(Status); ok {
		p.Status = v
		n++
	}
	if v, ok := b.(Scene); ok {
		p.Scene = v
		n++
	}
	if v, ok := b.(Ambient); ok {
		p.Ambient = v
		n++
	}
	return n
}

func (p *Ports) SetFog(s FogState) {
	if p.Fog == nil {
		p.missing("fog")
		return
	}
	p.call("fog", func() { p.Fog.SetFog(s) })
}

func (p *Ports) SetLight(s LightState) {
	if p.Light == nil {
		p.missing("light")
		return
	}
	p.call("light", func() { p.Light.SetLight(s) })
}

func (p *Ports) SetParticles(playing bool) {
	if p.Particles == nil {
		p.missing("particles")
		return
	}
	p.call("particles", func() { p.Particles.SetParticles(playing) })
}

func (p *Ports) PlayAudio(clip string) {
	if p.Audio == nil {
		p.missing("audio")
		return
	}
	p.call("audio", func() { p.Audio.PlayAudio(clip) })
}

func (p *Ports) StopAudio(clip string) {
	if p.Audio == nil {
		p.missing("audio")
		return
	}
	p.call("audio", func() { p.Audio.StopAudio(clip) })
}

func (p *Ports) SetObjectLocalOffset(offset vmath.Vec3) {
	if p.Object == nil {
		p.missing("object")
		return
	}
	p.call("object", func() { p.Object.SetObjectLocalOffset(offset) })
}

func (p *Ports) SetCameraLocalOffset(offset vmath.Vec3) {
	if p.Camera == nil {
		p.missing("camera")
		return
	}
	p.call("camera", func() { p.Camera.SetCameraLocalOffset(offset) })
}

func (p *Ports) SetCameraFOV(degrees float64) {
	if p.Camera == nil {
		p.missing("camera")
		return
	}
	p.call("camera", func() { p.Camera.SetCameraFOV(degrees) })
}

func (p *Ports) SetStatusText(text string) {
	if p.Status == nil {
		p.missing("status")
		return
	}
	p.call("status", func() { p.Status.SetStatusText(text) })
}

func (p *Ports) TriggerSceneTransition(name string) {
	if p.Scene == nil {
		p.missing("scene")
		return
	}
	p.call("scene", func() { p.Scene.TriggerSceneTransition(name) })
}

func (p *Ports) SetAmbientColor(c Color) {
	if p.Ambient == nil {
		p.missing("ambient")
		return
	}
	p.call("ambient", func() { p.Ambient.SetAmbientColor(c) })
}

func (p *Ports) missing(capability string) {
	p.Diagnostics.Emit(event.MissingCapability, "ports."+capability, "no backend bound")
}

func (p *Ports) call(capability string, fn func()) {
	if r := core.Contain(fn); r != nil {
		p.Diagnostics.Emit(event.ContainedPanic, "ports."+capability, fmt.Sprint(r))
	}
}
