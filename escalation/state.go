package escalation

import (
	"github.com/lixenwraith/dontpress/engine/fsm"
	"github.com/lixenwraith/dontpress/event"
)

// State is the press lock as seen from outside the controller
type State uint8

const (
	Idle State = iota
	Pressed
	CoolingDown
	GameOver
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case CoolingDown:
		return "cooling"
	case GameOver:
		return "gameover"
	}
	return "unknown"
}

// Node IDs of the controller graph
// root > session > {idle, pressed, cooling}
// root > gameover
const (
	stateSession fsm.StateID = iota + fsm.StateRoot + 1
	stateIdle
	statePressed
	stateCooling
	stateGameOver
)

var stateOf = map[fsm.StateID]State{
	stateIdle:     Idle,
	statePressed:  Pressed,
	stateCooling:  CoolingDown,
	stateGameOver: GameOver,
}

// buildMachine wires transitions and entry actions
// Outcome lives on session so any live leaf bubbles to gameover
func buildMachine() (*fsm.Machine[*Controller], error) {
	m := fsm.NewMachine[*Controller]()

	m.AddState(fsm.StateRoot, "root", fsm.StateNone)
	m.AddState(stateSession, "session", fsm.StateRoot)
	m.AddState(stateIdle, Idle.String(), stateSession)
	m.AddState(statePressed, Pressed.String(), stateSession)
	m.AddState(stateCooling, CoolingDown.String(), stateSession)
	m.AddState(stateGameOver, GameOver.String(), fsm.StateRoot)

	m.AddTransition(stateIdle, fsm.Transition[*Controller]{TargetID: statePressed, Event: event.Press, Guard: (*Controller).pressHit})
	m.AddTransition(statePressed, fsm.Transition[*Controller]{TargetID: stateCooling, Event: event.Release})
	m.AddTransition(stateCooling, fsm.Transition[*Controller]{TargetID: stateIdle, Event: event.CooldownExpired})
	m.AddTransition(stateSession, fsm.Transition[*Controller]{TargetID: stateGameOver, Event: event.Outcome})

	m.OnEnter(stateSession, (*Controller).enterSession)
	m.OnEnter(statePressed, (*Controller).enterPressed)
	m.OnEnter(stateCooling, (*Controller).enterCooling)
	m.OnEnter(stateGameOver, (*Controller).enterGameOver)

	if err := m.CompilePaths(); err != nil {
		return nil, err
	}
	return m, nil
}
