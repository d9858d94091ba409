//go:build linux

package main

import (
	"keypoll/core"
	"keypoll/host/pins"
	"keypoll/host/vkbd"
)

func openVirtualKeyboard(path, name string) (core.Sink, func() error, error) {
	s, err := vkbd.Open(path, name)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}

func openEvdev(path string) (core.GPIODriver, func() error, error) {
	d, err := pins.OpenEvdev(path)
	if err != nil {
		return nil, nil, err
	}
	d.Start()
	return d, d.Close, nil
}
