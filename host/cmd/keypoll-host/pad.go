package main

import (
	"github.com/spf13/cobra"

	"keypoll/core"
	"keypoll/host/serial"
	"keypoll/protocol"
)

func newPadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pad",
		Short: "Translate a serial pad read through the companion link",
		Long: `Polls a pad companion board over a serial line once per cycle and
decodes the returned active-low bitmask with the PSX pad table.`,
		RunE: runPad,
	}

	flags := cmd.Flags()
	flags.String("device", "/dev/ttyUSB0", "Serial device of the pad companion")
	flags.Int("baud", 115200, "Baud rate")

	v.BindPFlag("pad.device", flags.Lookup("device"))
	v.BindPFlag("pad.baud", flags.Lookup("baud"))

	return cmd
}

func runPad(cmd *cobra.Command, args []string) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}

	cfg := serial.DefaultConfig(v.GetString("pad.device"))
	cfg.Baud = v.GetInt("pad.baud")
	port, err := serial.Open(cfg)
	if err != nil {
		return err
	}
	p.closers = append(p.closers, port.Close)
	if err := port.Flush(); err != nil {
		return err
	}

	link := protocol.NewPadLink(port)
	t, err := core.NewPadTranslator(link, p.bindings, p.sink)
	if err != nil {
		return err
	}

	p.log.WithField("device", cfg.Device).Info("pad link open")
	err = p.run(t)
	if n := link.Errors(); n > 0 {
		p.log.WithField("errors", n).Warn("pad link frame errors")
	}
	return err
}
