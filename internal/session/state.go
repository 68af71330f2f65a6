package session

import "fmt"

// State is the lifecycle state of a typing attempt.
type State int

const (
	// NotStarted waits for the first keystroke; the timer is frozen.
	NotStarted State = iota
	// Active scores keystrokes and advances the timer.
	Active
	// Paused is reserved. No event moves a session into or out of it.
	Paused
	// Ended is terminal until a restart.
	Ended
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Active:
		return "active"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Event is an input the engine reacts to.
type Event interface {
	event()
}

// CharEvent is a typed character.
type CharEvent struct {
	Char rune
}

// BackspaceEvent removes the last typed character of the current sentence.
type BackspaceEvent struct{}

// TickEvent reports the whole seconds elapsed since the attempt started.
type TickEvent struct {
	Elapsed int
}

// RestartEvent discards the attempt and generates a new task.
type RestartEvent struct{}

func (CharEvent) event()      {}
func (BackspaceEvent) event() {}
func (TickEvent) event()      {}
func (RestartEvent) event()   {}

// transition maps the current state and an event to the next state and
// reports whether the event's effects apply. exhausted is true once the
// cursor has moved past the last sentence.
func transition(s State, ev Event, exhausted bool) (State, bool, error) {
	switch ev.(type) {
	case RestartEvent:
		return NotStarted, true, nil
	case CharEvent:
		if exhausted {
			return Ended, false, nil
		}
		switch s {
		case NotStarted, Active:
			return Active, true, nil
		case Paused, Ended:
			return s, false, nil
		}
	case BackspaceEvent, TickEvent:
		switch s {
		case Active:
			return Active, true, nil
		case NotStarted, Paused, Ended:
			return s, false, nil
		}
	default:
		return s, false, fmt.Errorf("unknown event %T", ev)
	}
	return s, false, fmt.Errorf("unknown state %v", s)
}
