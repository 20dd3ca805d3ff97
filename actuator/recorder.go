package actuator

import (
	"fmt"

	"github.com/lixenwraith/dontpress/vmath"
)

// Call is one recorded port invocation
type Call struct {
	Port string
	Arg  any
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%v)", c.Port, c.Arg)
}

// Recorder implements every capability in memory
// It keeps the call journal plus the last value written to each port
type Recorder struct {
	Calls []Call

	Fog          FogState
	Light        LightState
	Particles    bool
	Playing      map[string]bool
	ObjectOffset vmath.Vec3
	CameraOffset vmath.Vec3
	FOV          float64
	Status       string
	Scenes       []string
	Ambient      Color
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{Playing: make(map[string]bool)}
}

func (r *Recorder) record(port string, arg any) {
	r.Calls = append(r.Calls, Call{Port: port, Arg: arg})
}

func (r *Recorder) SetFog(s FogState) {
	r.Fog = s
	r.record("SetFog", s)
}

func (r *Recorder) SetLight(s LightState) {
	r.Light = s
	r.record("SetLight", s)
}

func (r *Recorder) SetParticles(playing bool) {
	r.Particles = playing
	r.record("SetParticles", playing)
}

func (r *Recorder) PlayAudio(clip string) {
	r.Playing[clip] = true
	r.record("PlayAudio", clip)
}

func (r *Recorder) StopAudio(clip string) {
	delete(r.Playing, clip)
	r.record("StopAudio", clip)
}

func (r *Recorder) SetObjectLocalOffset(offset vmath.Vec3) {
	r.ObjectOffset = offset
	r.record("SetObjectLocalOffset", offset)
}

func (r *Recorder) SetCameraLocalOffset(offset vmath.Vec3) {
	r.CameraOffset = offset
	r.record("SetCameraLocalOffset", offset)
}

func (r *Recorder) SetCameraFOV(degrees float64) {
	r.FOV = degrees
	r.record("SetCameraFOV", degrees)
}

func (r *Recorder) SetStatusText(text string) {
	r.Status = text
	r.record("SetStatusText", text)
}

func (r *Recorder) TriggerSceneTransition(name string) {
	r.Scenes = append(r.Scenes, name)
	r.record("TriggerSceneTransition", name)
}

func (r *Recorder) SetAmbientColor(c Color) {
	r.Ambient = c
	r.record("SetAmbientColor", c)
}

// Count returns how many times port was called
func (r *Recorder) Count(port string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Port == port {
			n++
		}
	}
	return n
}

// Args returns the arguments of every call to port, oldest first
func (r *Recorder) Args(port string) []any {
	var out []any
	for _, c := range r.Calls {
		if c.Port == port {
			out = append(out, c.Arg)
		}
	}
	return out
}

// Reset clears the journal but keeps the last values
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
