package core

import "sync/atomic"

// KeyCode is the engine's logical key identifier as carried in an Event
type KeyCode int32

// Action names a rebindable engine key variable (the slot, not its value)
type Action uint8

// Engine actions the input layer can drive
const (
	NoAction Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionStrafeLeft
	ActionStrafeRight
	ActionFire
	ActionUse
	ActionStrafe
	ActionSpeed
	ActionMenuEnter
	ActionEscape
	ActionPause
	ActionMap
	ActionWeaponToggle

	NumActions
)

var actionNames = [NumActions]string{
	NoAction:           "none",
	ActionUp:           "up",
	ActionDown:         "down",
	ActionLeft:         "left",
	ActionRight:        "right",
	ActionStrafeLeft:   "strafeleft",
	ActionStrafeRight:  "straferight",
	ActionFire:         "fire",
	ActionUse:          "use",
	ActionStrafe:       "strafe",
	ActionSpeed:        "speed",
	ActionMenuEnter:    "menu_enter",
	ActionEscape:       "escape",
	ActionPause:        "pause",
	ActionMap:          "map",
	ActionWeaponToggle: "weapontoggle",
}

func (a Action) String() string {
	if a < NumActions {
		return actionNames[a]
	}
	return "action" + itoa(int(a))
}

// ActionByName looks up an action by its binding name
func ActionByName(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name && Action(i) != NoAction {
			return Action(i), true
		}
	}
	return NoAction, false
}

// Engine default key codes
const (
	KeyRightArrow KeyCode = 0xae
	KeyLeftArrow  KeyCode = 0xac
	KeyUpArrow    KeyCode = 0xad
	KeyDownArrow  KeyCode = 0xaf
	KeyEscape     KeyCode = 27
	KeyEnter      KeyCode = 13
	KeyTab        KeyCode = 9
	KeySpace      KeyCode = ' '
	KeyComma      KeyCode = ','
	KeyPeriod     KeyCode = '.'
	KeyZero       KeyCode = '0'
	KeyRCtrl      KeyCode = 0x80 + 0x1d
	KeyRShift     KeyCode = 0x80 + 0x36
	KeyRAlt       KeyCode = 0x80 + 0x38
	KeyPause      KeyCode = 0xff
)

// Bindings is the engine's live key-binding table. The engine may rebind
// an action at any time from its own goroutine; the mapper reads through
// the table on every resolve and never caches a value.
type Bindings struct {
	keys [NumActions]atomic.Int32
}

// NewBindings returns a table populated with the engine defaults
func NewBindings() *Bindings {
	b := &Bindings{}
	for a, k := range DefaultKeys {
		b.keys[a].Store(int32(k))
	}
	return b
}

// DefaultKeys holds the stock key for every action
var DefaultKeys = [NumActions]KeyCode{
	ActionUp:           KeyUpArrow,
	ActionDown:         KeyDownArrow,
	ActionLeft:         KeyLeftArrow,
	ActionRight:        KeyRightArrow,
	ActionStrafeLeft:   KeyComma,
	ActionStrafeRight:  KeyPeriod,
	ActionFire:         KeyRCtrl,
	ActionUse:          KeySpace,
	ActionStrafe:       KeyRAlt,
	ActionSpeed:        KeyRShift,
	ActionMenuEnter:    KeyEnter,
	ActionEscape:       KeyEscape,
	ActionPause:        KeyPause,
	ActionMap:          KeyTab,
	ActionWeaponToggle: KeyZero,
}

// Key returns the code currently bound to an action
func (b *Bindings) Key(a Action) KeyCode {
	if a >= NumActions {
		return 0
	}
	return KeyCode(b.keys[a].Load())
}

// Bind rebinds an action. Safe to call from the engine goroutine.
func (b *Bindings) Bind(a Action, k KeyCode) {
	if a == NoAction || a >= NumActions {
		return
	}
	b.keys[a].Store(int32(k))
}
