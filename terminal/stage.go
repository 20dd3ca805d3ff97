package terminal

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/dontpress/actuator"
	"github.com/lixenwraith/dontpress/parameter"
	"github.com/lixenwraith/dontpress/vmath"
)

// Layout scale: world units to cells
const (
	cellsPerUnitX = 20.0
	cellsPerUnitY = 10.0

	buttonBaseWidth = 17
	buttonHeight    = 3
	buttonMinWidth  = 5

	// Distance of the nearest and farthest rows for fog falloff
	fogNear = 2.0
	fogFar  = 45.0
)

var (
	buttonColor = colorful.Color{R: 0.75, G: 0.1, B: 0.12}
	labelColor  = colorful.Color{R: 1, G: 1, B: 1}
	hudColor    = colorful.Color{R: 0.45, G: 0.45, B: 0.45}
	winColor    = colorful.Color{R: 0.2, G: 0.9, B: 0.3}
	loseColor   = colorful.Color{R: 1, G: 0.25, B: 0.2}
)

// Rect is a cell-space rectangle, Max exclusive
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Contains reports whether (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// Empty reports whether r covers no cell
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Overlay is per-frame HUD state owned by the frontend, not the core
type Overlay struct {
	Paused bool
	Muted  bool
	Debug  []string // Metrics rows, nil hides the panel
}

// Stage is the terminal scene: it implements every visual actuator capability
// and renders the accumulated state onto a Canvas once per frame
// Not safe for concurrent use; driven from the frame loop goroutine
type Stage struct {
	fog       actuator.FogState
	light     actuator.LightState
	ambient   actuator.Color
	particles bool

	object vmath.Vec3
	camera vmath.Vec3
	fov    float64

	status string
	scene  string

	rng    *rand.Rand
	button Rect // As last rendered, used for hit testing
}

// NewStage creates a stage with fog and light off and the base FOV
func NewStage(rng *rand.Rand) *Stage {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	return &Stage{
		fov: parameter.FOVBase,
		rng: rng,
	}
}

func (s *Stage) SetFog(f actuator.FogState)             { s.fog = f }
func (s *Stage) SetLight(l actuator.LightState)         { s.light = l }
func (s *Stage) SetParticles(playing bool)              { s.particles = playing }
func (s *Stage) SetObjectLocalOffset(offset vmath.Vec3) { s.object = offset }
func (s *Stage) SetCameraLocalOffset(offset vmath.Vec3) { s.camera = offset }
func (s *Stage) SetStatusText(text string)              { s.status = text }
func (s *Stage) TriggerSceneTransition(name string)     { s.scene = name }
func (s *Stage) SetAmbientColor(c actuator.Color)       { s.ambient = c }

func (s *Stage) SetCameraFOV(degrees float64) {
	if degrees > 0 {
		s.fov = degrees
	}
}

// HitTest reports whether (x, y) falls on the button as last rendered
// Matches input.HitTester
func (s *Stage) HitTest(x, y int) bool {
	return s.button.Contains(x, y)
}

// Button returns the button rectangle as last rendered
func (s *Stage) Button() Rect {
	return s.button
}

// Status returns the current status text
func (s *Stage) Status() string {
	return s.status
}

// Scene returns the last triggered scene, empty until game over
func (s *Stage) Scene() string {
	return s.scene
}

// Render draws the full frame
func (s *Stage) Render(c *Canvas, ov Overlay) {
	if c.Width == 0 || c.Height == 0 {
		s.button = Rect{}
		return
	}

	s.drawBackground(c)
	if s.particles {
		s.drawParticles(c)
	}
	s.drawButton(c)
	s.drawStatus(c)
	s.drawHUD(c, ov)
}

// lit returns base under the key light
func (s *Stage) lit(base colorful.Color) colorful.Color {
	if !s.light.Enabled || s.light.Intensity <= 0 {
		return base
	}
	k := math.Min(1, s.light.Intensity*0.15)
	return base.BlendRgb(s.light.Color, k).Clamped()
}

// rowDistance maps screen rows to scene depth: top rows are farthest
func (s *Stage) rowDistance(y, height int) float64 {
	if height <= 1 {
		return fogNear
	}
	t := 1 - float64(y)/float64(height-1)
	return vmath.Lerp(fogNear, fogFar, t)
}

func (s *Stage) drawBackground(c *Canvas) {
	base := s.lit(s.ambient)
	for y := 0; y < c.Height; y++ {
		bg := base
		if k := s.fog.Factor(s.rowDistance(y, c.Height)); k > 0 {
			bg = bg.BlendRgb(s.fog.Color, k).Clamped()
		}
		row := c.Cells[y*c.Width : (y+1)*c.Width]
		for x := range row {
			row[x] = Cell{Rune: ' ', Fg: bg, Bg: bg}
		}
	}
}

func (s *Stage) drawParticles(c *Canvas) {
	glyphs := [...]rune{'.', '*', '+'}
	fg := labelColor
	if s.light.Enabled {
		fg = s.light.Color.Clamped()
	}
	n := c.Width * c.Height / 40
	for i := 0; i < n; i++ {
		x := s.rng.IntN(c.Width)
		y := s.rng.IntN(c.Height)
		c.Set(x, y, glyphs[s.rng.IntN(len(glyphs))], fg)
	}
}

// layoutButton computes the on-screen rectangle from FOV, press travel and camera shake
func (s *Stage) layoutButton(width, height int) Rect {
	w := int(math.Round(buttonBaseWidth * parameter.FOVBase / s.fov))
	w = max(buttonMinWidth, min(w, width-2))
	if w <= 0 {
		return Rect{}
	}

	// Camera offset moves the view, so the scene shifts the other way
	dx := int(math.Round(-s.camera.X * cellsPerUnitX))
	dy := int(math.Round(s.camera.Y * cellsPerUnitY))
	// Object travels down along -Y
	press := int(math.Round(-s.object.Y * cellsPerUnitY))

	minX := (width-w)/2 + dx
	minY := (height-buttonHeight)/2 + dy + press
	return Rect{MinX: minX, MinY: minY, MaxX: minX + w, MaxY: minY + buttonHeight}
}

func (s *Stage) drawButton(c *Canvas) {
	r := s.layoutButton(c.Width, c.Height)
	s.button = r
	if r.Empty() {
		return
	}

	face := s.lit(buttonColor)
	if k := s.fog.Factor(fogNear); k > 0 {
		face = face.BlendRgb(s.fog.Color, k).Clamped()
	}
	for y := r.MinY; y < r.MaxY; y++ {
		for x := r.MinX; x < r.MaxX; x++ {
			c.Paint(x, y, ' ', labelColor, face)
		}
	}

	label := "DON'T PRESS"
	if len(label) > r.MaxX-r.MinX-2 {
		label = "!"
	}
	mid := r.MinY + buttonHeight/2
	c.Text(r.MinX+(r.MaxX-r.MinX-len(label))/2, mid, label, labelColor, true)
}

func (s *Stage) drawStatus(c *Canvas) {
	if s.scene != "" {
		color := loseColor
		if s.scene == parameter.SceneWin {
			color = winColor
		}
		c.Centered(1, "[ "+s.scene+" ]", color, true)
	}
	if s.status != "" {
		c.Centered(c.Height-3, s.status, labelColor, true)
	}
}

func (s *Stage) drawHUD(c *Canvas, ov Overlay) {
	c.Text(1, c.Height-1, "q quit  p pause  d debug  m mute", hudColor, false)

	flags := ""
	if ov.Paused {
		flags += " PAUSED"
	}
	if ov.Muted {
		flags += " MUTED"
	}
	if flags != "" {
		c.Text(c.Width-len(flags)-1, c.Height-1, flags, labelColor, true)
	}

	for i, line := range ov.Debug {
		c.Text(1, 2+i, line, hudColor, false)
	}
}
