package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dontpress/input"
)

// keyMap translates tcell special keys to input keys
var keyMap = map[tcell.Key]input.Key{
	tcell.KeyEscape: input.KeyEscape,
	tcell.KeyCtrlC:  input.KeyCtrlC,
	tcell.KeyCtrlQ:  input.KeyCtrlQ,
	tcell.KeyEnter:  input.KeyEnter,
}

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

// Router feeds terminal events into the press latch and the key table
// Mouse button 1 is the press surface; keys resolve to frontend intents
type Router struct {
	latch *input.Latch
	keys  *input.KeyTable
}

// NewRouter creates a router, nil keys means the default table
func NewRouter(latch *input.Latch, keys *input.KeyTable) *Router {
	if keys == nil {
		keys = input.DefaultKeyTable()
	}
	return &Router{latch: latch, keys: keys}
}

// Handle processes one event and returns the resulting intent
func (r *Router) Handle(ev tcell.Event) input.IntentType {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return r.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		r.handleMouse(x, y, ev.Buttons())
	}
	return input.IntentNone
}

func (r *Router) handleKey(k tcell.Key, ch rune) input.IntentType {
	if k == tcell.KeyRune {
		return r.keys.Lookup(input.KeyRune, ch)
	}
	if mapped, ok := keyMap[k]; ok {
		return r.keys.Lookup(mapped, 0)
	}
	return input.IntentNone
}

// handleMouse reports button 1 state; motion with the button held repeats
// the same state and is ignored by the latch
func (r *Router) handleMouse(x, y int, buttons tcell.ButtonMask) {
	if buttons&wheelMask != 0 {
		return
	}
	r.latch.Button(buttons&tcell.Button1 != 0, x, y)
}
