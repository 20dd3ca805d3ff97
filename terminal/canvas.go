package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Cell represents a single terminal cell
type Cell struct {
	Rune rune
	Fg   colorful.Color
	Bg   colorful.Color
	Bold bool
}

// Canvas is a row-major cell buffer: Cells[y*Width + x]
// Drawing is clipped to the bounds; out-of-range writes are dropped
type Canvas struct {
	Width  int
	Height int
	Cells  []Cell
}

// NewCanvas allocates a blank canvas
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize reallocates only when the area grows
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.Width, c.Height = width, height
	n := width * height
	if cap(c.Cells) < n {
		c.Cells = make([]Cell, n)
	}
	c.Cells = c.Cells[:n]
}

// Fill resets every cell to a blank of the given background
func (c *Canvas) Fill(bg colorful.Color) {
	for i := range c.Cells {
		c.Cells[i] = Cell{Rune: ' ', Fg: bg, Bg: bg}
	}
}

// In reports whether (x, y) lies on the canvas
func (c *Canvas) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Width && y < c.Height
}

// At returns a pointer to the cell, nil when out of bounds
func (c *Canvas) At(x, y int) *Cell {
	if !c.In(x, y) {
		return nil
	}
	return &c.Cells[y*c.Width+x]
}

// Set writes a glyph keeping the existing background
func (c *Canvas) Set(x, y int, r rune, fg colorful.Color) {
	if cell := c.At(x, y); cell != nil {
		cell.Rune = r
		cell.Fg = fg
	}
}

// Paint overwrites a full cell
func (c *Canvas) Paint(x, y int, r rune, fg, bg colorful.Color) {
	if cell := c.At(x, y); cell != nil {
		*cell = Cell{Rune: r, Fg: fg, Bg: bg}
	}
}

// Text writes s left to right from (x, y), keeping backgrounds
func (c *Canvas) Text(x, y int, s string, fg colorful.Color, bold bool) {
	for _, r := range s {
		if cell := c.At(x, y); cell != nil {
			cell.Rune = r
			cell.Fg = fg
			cell.Bold = bold
		}
		x++
	}
}

// Centered writes s centered on row y
func (c *Canvas) Centered(y int, s string, fg colorful.Color, bold bool) {
	c.Text((c.Width-len([]rune(s)))/2, y, s, fg, bold)
}

// Row returns the runes of row y as a string, for inspection
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.Height {
		return ""
	}
	runes := make([]rune, c.Width)
	for x := 0; x < c.Width; x++ {
		runes[x] = c.Cells[y*c.Width+x].Rune
	}
	return string(runes)
}

// Flush copies the canvas to the screen and shows it
func (c *Canvas) Flush(screen tcell.Screen) {
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			cell := c.Cells[y*c.Width+x]
			style := tcell.StyleDefault.
				Foreground(toTcell(cell.Fg)).
				Background(toTcell(cell.Bg)).
				Bold(cell.Bold)
			screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
	screen.Show()
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
