package core

import "errors"

// EventKind distinguishes key presses from releases
type EventKind uint8

const (
	KeyDown EventKind = iota + 1
	KeyUp
)

func (k EventKind) String() string {
	switch k {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	default:
		return "invalid"
	}
}

// Event is one key transition handed to the engine
type Event struct {
	Kind EventKind
	Key  KeyCode
}

func (e Event) String() string {
	return e.Kind.String() + "(" + itoa(int(e.Key)) + ")"
}

// Sink is the engine's input queue. Post must keep events in order and
// must not block; an error means the event was not accepted.
type Sink interface {
	Post(ev Event) error
}

// ErrQueueFull is returned by EventQueue.Post when no slot is free
var ErrQueueFull = errors.New("event queue full")

// MenuState reports whether the engine currently shows a menu
type MenuState interface {
	MenuActive() bool
}

// MenuFunc adapts a plain function to MenuState
type MenuFunc func() bool

func (f MenuFunc) MenuActive() bool {
	return f()
}
