//go:build esp32

package main

import (
	"errors"
	"machine"

	"keypoll/core"
)

var errBadPin = errors.New("pin has no pull resistor")

// ESPGPIODriver implements the GPIODriver interface for the ESP32
type ESPGPIODriver struct {
	// Track configured pins to prevent conflicts
	configuredPins map[core.GPIOPin]machine.Pin
}

// NewESPGPIODriver creates a new ESP32 GPIO driver
func NewESPGPIODriver() *ESPGPIODriver {
	return &ESPGPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
	}
}

func (d *ESPGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinInputPullup)
}

func (d *ESPGPIODriver) ConfigureInputPullDown(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinInputPulldown)
}

func (d *ESPGPIODriver) configure(pin core.GPIOPin, mode machine.PinMode) error {
	// Already configured, this is OK
	if _, exists := d.configuredPins[pin]; exists {
		return nil
	}

	// GPIO34-39 are input only without internal pulls
	if pin >= 34 {
		return errBadPin
	}

	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: mode})
	d.configuredPins[pin] = machinePin
	return nil
}

// ReadPin returns the pin level; unconfigured pins read low
func (d *ESPGPIODriver) ReadPin(pin core.GPIOPin) bool {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		return false
	}
	return machinePin.Get()
}
