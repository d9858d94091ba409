// Package board loads a bench wiring profile for the host tool: which
// header pin each button sits on, its polarity, and the action it drives.
// Profiles are read once at startup; nothing is remapped while running.
package board

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"keypoll/core"
)

// Profile is the on-disk form of a button board
type Profile struct {
	Name     string   `toml:"name"`
	Modifier string   `toml:"modifier,omitempty"`
	Buttons  []Button `toml:"button"`
}

// Button is one [[button]] table
type Button struct {
	Name      string `toml:"name"`
	Pin       uint32 `toml:"pin"`
	ActiveLow bool   `toml:"active_low"`
	Key       string `toml:"key,omitempty"`
	StrafeKey string `toml:"strafe_key,omitempty"`
	MenuKey   string `toml:"menu_key,omitempty"`
}

// Layout is a validated profile ready for core.Config
type Layout struct {
	Name     string
	Buttons  []core.Button
	Mapping  []core.KeyMapping
	Modifier int
}

// Load reads and validates a profile file
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board profile: %w", err)
	}
	layout, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("board profile %s: %w", path, err)
	}
	return layout, nil
}

// Parse decodes and validates a TOML profile
func Parse(data []byte) (*Layout, error) {
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p.Layout()
}

// Layout validates the profile and converts it to core tables
func (p *Profile) Layout() (*Layout, error) {
	if len(p.Buttons) == 0 {
		return nil, fmt.Errorf("no buttons defined")
	}

	l := &Layout{Name: p.Name, Modifier: core.NoModifier}
	seenPin := make(map[uint32]string)
	seenName := make(map[string]bool)

	for i, b := range p.Buttons {
		if b.Name == "" {
			return nil, fmt.Errorf("button %d has no name", i)
		}
		if seenName[b.Name] {
			return nil, fmt.Errorf("button %q defined twice", b.Name)
		}
		if other, ok := seenPin[b.Pin]; ok {
			return nil, fmt.Errorf("buttons %q and %q share pin %d", other, b.Name, b.Pin)
		}
		seenName[b.Name] = true
		seenPin[b.Pin] = b.Name

		l.Buttons = append(l.Buttons, core.Button{
			Name:      b.Name,
			Pin:       core.GPIOPin(b.Pin),
			ActiveLow: b.ActiveLow,
		})

		if b.Name == p.Modifier {
			if b.Key != "" {
				return nil, fmt.Errorf("modifier %q can not carry a key", b.Name)
			}
			l.Modifier = i
			continue
		}

		m := core.KeyMapping{Control: i}
		var err error
		if m.Normal, err = action(b.Key); err != nil {
			return nil, fmt.Errorf("button %q key: %w", b.Name, err)
		}
		if m.Normal == core.NoAction {
			return nil, fmt.Errorf("button %q has no key", b.Name)
		}
		if m.Strafe, err = action(b.StrafeKey); err != nil {
			return nil, fmt.Errorf("button %q strafe_key: %w", b.Name, err)
		}
		if m.Menu, err = action(b.MenuKey); err != nil {
			return nil, fmt.Errorf("button %q menu_key: %w", b.Name, err)
		}
		l.Mapping = append(l.Mapping, m)
	}

	if p.Modifier != "" && l.Modifier == core.NoModifier {
		return nil, fmt.Errorf("modifier %q is not a button", p.Modifier)
	}

	return l, nil
}

func action(name string) (core.Action, error) {
	if name == "" {
		return core.NoAction, nil
	}
	a, ok := core.ActionByName(name)
	if !ok {
		return core.NoAction, fmt.Errorf("unknown action %q", name)
	}
	return a, nil
}

// Oxocard returns the built-in Oxocard layout
func Oxocard() *Layout {
	return &Layout{
		Name:     "oxocard",
		Buttons:  core.OxocardButtons,
		Mapping:  core.OxocardMapping,
		Modifier: core.OxoStrafe,
	}
}
