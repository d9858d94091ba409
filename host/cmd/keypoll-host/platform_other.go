//go:build !linux

package main

import (
	"fmt"

	"keypoll/core"
)

func openVirtualKeyboard(path, name string) (core.Sink, func() error, error) {
	return nil, nil, fmt.Errorf("virtual keyboard output needs linux uinput")
}

func openEvdev(path string) (core.GPIODriver, func() error, error) {
	return nil, nil, fmt.Errorf("evdev input needs linux")
}
