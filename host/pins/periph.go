// Package pins provides host-side GPIODriver implementations for running
// the input pipeline off the device: real GPIO on a Linux single-board
// computer, or a Linux input device standing in for the buttons.
package pins

import (
	"fmt"
	"sync"

	"keypoll/core"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Periph drives buttons wired to a Linux SBC header through periph.io.
// Pins are addressed by BCM number.
type Periph struct {
	mu   sync.Mutex
	pins map[core.GPIOPin]gpio.PinIO
}

// NewPeriph initializes the periph host drivers
func NewPeriph() (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	return &Periph{pins: make(map[core.GPIOPin]gpio.PinIO)}, nil
}

func (d *Periph) ConfigureInputPullUp(pin core.GPIOPin) error {
	return d.configure(pin, gpio.PullUp)
}

func (d *Periph) ConfigureInputPullDown(pin core.GPIOPin) error {
	return d.configure(pin, gpio.PullDown)
}

func (d *Periph) configure(pin core.GPIOPin, pull gpio.Pull) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Already configured, this is OK
	if _, exists := d.pins[pin]; exists {
		return nil
	}

	p := gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
	if p == nil {
		return fmt.Errorf("no such pin GPIO%d", pin)
	}
	if err := p.In(pull, gpio.NoEdge); err != nil {
		return fmt.Errorf("GPIO%d input: %w", pin, err)
	}
	d.pins[pin] = p
	return nil
}

// ReadPin returns the pin level; unconfigured pins read low
func (d *Periph) ReadPin(pin core.GPIOPin) bool {
	d.mu.Lock()
	p, ok := d.pins[pin]
	d.mu.Unlock()
	if !ok {
		return false
	}
	return p.Read() == gpio.High
}
