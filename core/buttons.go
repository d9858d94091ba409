package core

import "fmt"

// Button describes one push button wired to a GPIO pin
type Button struct {
	Name      string
	Pin       GPIOPin
	ActiveLow bool // pressed pulls the pin low (pull-up wiring)
}

// ButtonSource reads discrete push buttons through a GPIODriver
type ButtonSource struct {
	gpio    GPIODriver
	buttons []Button
	levels  []bool
}

// NewButtonSource creates a source over the given buttons. Button order
// defines control IDs.
func NewButtonSource(gpio GPIODriver, buttons []Button) *ButtonSource {
	return &ButtonSource{
		gpio:    gpio,
		buttons: buttons,
		levels:  make([]bool, len(buttons)),
	}
}

// Configure sets every pin up as an input with the pull matching its polarity
func (s *ButtonSource) Configure() error {
	for i, b := range s.buttons {
		var err error
		if b.ActiveLow {
			// Pins without internal pulls (esp32 GPIO34-39) need an external pull-up
			err = s.gpio.ConfigureInputPullUp(b.Pin)
		} else {
			err = s.gpio.ConfigureInputPullDown(b.Pin)
		}
		if err != nil {
			return fmt.Errorf("configure button %d (%s) on pin %d: %w", i, b.Name, b.Pin, err)
		}
	}
	return nil
}

// Scan samples every pin once
func (s *ButtonSource) Scan() {
	for i, b := range s.buttons {
		s.levels[i] = s.gpio.ReadPin(b.Pin) != b.ActiveLow
	}
}

func (s *ButtonSource) Len() int {
	return len(s.buttons)
}

func (s *ButtonSource) Pressed(id int) bool {
	return s.levels[id]
}

// Buttons returns the button table
func (s *ButtonSource) Buttons() []Button {
	return s.buttons
}
