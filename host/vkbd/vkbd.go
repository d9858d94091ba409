//go:build linux

// Package vkbd forwards translated key events to a Linux virtual keyboard,
// so a desktop build of the game can be driven by the device's buttons.
package vkbd

import (
	"fmt"

	"github.com/bendahl/uinput"

	"keypoll/core"
)

// linuxKeys maps engine key codes to Linux input key codes
var linuxKeys = map[core.KeyCode]int{
	core.KeyUpArrow:    103,
	core.KeyDownArrow:  108,
	core.KeyLeftArrow:  105,
	core.KeyRightArrow: 106,
	core.KeyEscape:     1,
	core.KeyEnter:      28,
	core.KeyTab:        15,
	core.KeySpace:      57,
	core.KeyComma:      51,
	core.KeyPeriod:     52,
	core.KeyZero:       11,
	core.KeyRCtrl:      97,
	core.KeyRShift:     54,
	core.KeyRAlt:       100,
	core.KeyPause:      119,
}

// letters and digits as the engine reports them after a rebind
func init() {
	row := map[byte]int{
		'1': 2, '2': 3, '3': 4, '4': 5, '5': 6, '6': 7, '7': 8, '8': 9, '9': 10,
		'q': 16, 'w': 17, 'e': 18, 'r': 19, 't': 20, 'y': 21, 'u': 22, 'i': 23, 'o': 24, 'p': 25,
		'a': 30, 's': 31, 'd': 32, 'f': 33, 'g': 34, 'h': 35, 'j': 36, 'k': 37, 'l': 38,
		'z': 44, 'x': 45, 'c': 46, 'v': 47, 'b': 48, 'n': 49, 'm': 50,
	}
	for ch, code := range row {
		linuxKeys[core.KeyCode(ch)] = code
	}
}

// LinuxKey returns the Linux key code for an engine key
func LinuxKey(k core.KeyCode) (int, bool) {
	code, ok := linuxKeys[k]
	return code, ok
}

// keyboard is the part of uinput.Keyboard the sink uses
type keyboard interface {
	KeyDown(key int) error
	KeyUp(key int) error
	Close() error
}

// Sink posts events to a uinput virtual keyboard
type Sink struct {
	kbd keyboard
}

// Open creates the virtual keyboard
func Open(path, name string) (*Sink, error) {
	kbd, err := uinput.CreateKeyboard(path, []byte(name))
	if err != nil {
		return nil, fmt.Errorf("create virtual keyboard: %w", err)
	}
	return &Sink{kbd: kbd}, nil
}

// Post implements core.Sink
func (s *Sink) Post(ev core.Event) error {
	code, ok := LinuxKey(ev.Key)
	if !ok {
		return fmt.Errorf("no linux key for engine key %d", ev.Key)
	}
	switch ev.Kind {
	case core.KeyDown:
		return s.kbd.KeyDown(code)
	case core.KeyUp:
		return s.kbd.KeyUp(code)
	default:
		return fmt.Errorf("bad event kind %d", ev.Kind)
	}
}

// Close destroys the virtual keyboard
func (s *Sink) Close() error {
	return s.kbd.Close()
}
