//go:build linux

package pins

import (
	"fmt"
	"sync"

	evdev "github.com/gvalkov/golang-evdev"

	"keypoll/core"
)

// Evdev turns keys of a Linux input device into emulated GPIO pins: the
// pin number is the key code. A pin configured with a pull-up reads low
// while its key is held, one with a pull-down reads high, so the
// button wiring polarity is preserved end to end.
type Evdev struct {
	dev  *evdev.InputDevice
	keys *keyState

	errMu sync.Mutex
	err   error
}

// OpenEvdev opens an input device node such as /dev/input/event3
func OpenEvdev(path string) (*Evdev, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input device %s: %w", path, err)
	}
	return &Evdev{dev: dev, keys: newKeyState()}, nil
}

// Name returns the device name reported by the kernel
func (e *Evdev) Name() string {
	return e.dev.Name
}

// Start follows the device's key events on a background goroutine
func (e *Evdev) Start() {
	go func() {
		for {
			events, err := e.dev.Read()
			if err != nil {
				e.errMu.Lock()
				e.err = err
				e.errMu.Unlock()
				// An unplugged device looks like nothing is held
				e.keys.releaseAll()
				return
			}
			e.keys.apply(events)
		}
	}()
}

// Err returns the error that stopped the reader, if any
func (e *Evdev) Err() error {
	e.errMu.Lock()
	defer e.errMu.Unlock()
	return e.err
}

// Close releases the device
func (e *Evdev) Close() error {
	return e.dev.File.Close()
}

func (e *Evdev) ConfigureInputPullUp(pin core.GPIOPin) error {
	e.keys.configure(uint16(pin), true)
	return nil
}

func (e *Evdev) ConfigureInputPullDown(pin core.GPIOPin) error {
	e.keys.configure(uint16(pin), false)
	return nil
}

func (e *Evdev) ReadPin(pin core.GPIOPin) bool {
	return e.keys.level(uint16(pin))
}

// keyState tracks held keys and the emulated pull of every pin
type keyState struct {
	mu     sync.Mutex
	held   map[uint16]bool
	pullUp map[uint16]bool
}

func newKeyState() *keyState {
	return &keyState{
		held:   make(map[uint16]bool),
		pullUp: make(map[uint16]bool),
	}
}

func (k *keyState) configure(code uint16, pullUp bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pullUp[code] = pullUp
}

func (k *keyState) apply(events []evdev.InputEvent) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, ev := range events {
		if ev.Type != evdev.EV_KEY {
			continue
		}
		// value 2 is autorepeat, still held
		k.held[ev.Code] = ev.Value != 0
	}
}

func (k *keyState) releaseAll() {
	k.mu.Lock()
	defer k.mu.Unlock()
	for code := range k.held {
		k.held[code] = false
	}
}

func (k *keyState) level(code uint16) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.held[code] != k.pullUp[code]
}
