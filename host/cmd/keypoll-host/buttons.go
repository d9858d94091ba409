package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"keypoll/core"
	"keypoll/host/board"
	"keypoll/host/pins"
)

func newButtonsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buttons",
		Short: "Translate discrete GPIO buttons",
		Long: `Reads buttons through periph.io GPIO, or through a Linux input device
whose key codes stand in for pin numbers, and runs them through the
debounce and strafe-modifier mapping. Without --profile the Oxocard
layout is used.`,
		RunE: runButtons,
	}

	flags := cmd.Flags()
	flags.String("driver", "periph", "GPIO driver: periph or evdev")
	flags.String("input", "/dev/input/event0", "Input device for the evdev driver")
	flags.String("profile", "", "Board profile (TOML)")

	v.BindPFlag("buttons.driver", flags.Lookup("driver"))
	v.BindPFlag("buttons.input", flags.Lookup("input"))
	v.BindPFlag("buttons.profile", flags.Lookup("profile"))

	return cmd
}

func runButtons(cmd *cobra.Command, args []string) error {
	layout := board.Oxocard()
	if path := v.GetString("buttons.profile"); path != "" {
		var err error
		if layout, err = board.Load(path); err != nil {
			return err
		}
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}

	var gpio core.GPIODriver
	switch driver := v.GetString("buttons.driver"); driver {
	case "periph":
		d, err := pins.NewPeriph()
		if err != nil {
			return err
		}
		gpio = d
	case "evdev":
		d, closeFn, err := openEvdev(v.GetString("buttons.input"))
		if err != nil {
			return err
		}
		p.closers = append(p.closers, closeFn)
		gpio = d
	default:
		return fmt.Errorf("unknown GPIO driver %q (want periph or evdev)", driver)
	}
	core.SetGPIODriver(gpio)

	t, err := core.NewTranslator(core.Config{
		Source:   core.NewButtonSource(core.MustGPIO(), layout.Buttons),
		Mapping:  layout.Mapping,
		Modifier: layout.Modifier,
		Bindings: p.bindings,
		Sink:     p.sink,
		Menu:     p.menu,
	})
	if err != nil {
		return fmt.Errorf("layout %s: %w", layout.Name, err)
	}

	p.log.WithField("layout", layout.Name).WithField("buttons", len(layout.Buttons)).Info("buttons configured")
	return p.run(t)
}
