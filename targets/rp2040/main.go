//go:build rp2040

// Pad companion: reads a PlayStation pad over SPI and answers bitmask
// polls from the device over UART0.
package main

import (
	"machine"
	"time"

	"keypoll/core"
	"keypoll/protocol"
)

var (
	padBus = machine.SPI0
	padATT = machine.GPIO5
	link   = machine.UART0

	// Debug counters
	polls    uint32
	padFails uint32
)

func main() {
	// CRITICAL: Disable watchdog on boot to clear any previous state
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	InitDebugUART()
	core.SetDebugWriter(DebugPrintln)
	core.SetDebugEnabled(debugEnabled)

	err := link.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	if err != nil {
		halt("link uart: " + err.Error())
	}

	pad, err := configurePad()
	if err != nil {
		halt("pad: " + err.Error())
	}

	resp := protocol.NewResponder(func() uint16 {
		mask, err := pad.ReadBitmask()
		if err != nil {
			padFails++
		}
		return mask
	})

	core.DebugPrintln("pad companion ready")

	for {
		func() {
			// Recover from panics in the main loop to prevent a firmware crash
			defer func() {
				if r := recover(); r != nil {
					core.DebugPrintln("panic in serve loop")
				}
			}()

			n, err := resp.Serve(link)
			if err != nil {
				core.DebugPrintln("link: " + err.Error())
			}
			polls += uint32(n)
		}()

		// Yield to other goroutines
		time.Sleep(100 * time.Microsecond)
	}
}

func configurePad() (*core.PSXPad, error) {
	err := padBus.Configure(machine.SPIConfig{
		Frequency: 250000,
		SCK:       machine.GPIO2,
		SDO:       machine.GPIO3,
		SDI:       machine.GPIO4,
		Mode:      3,
	})
	if err != nil {
		return nil, err
	}

	padATT.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pad := core.NewPSXPad(padBus, func(on bool) {
		// ATT is active low
		padATT.Set(!on)
	})
	return pad, pad.Configure()
}

func halt(msg string) {
	core.DebugPrintln("FATAL: " + msg)
	for {
		time.Sleep(time.Second)
	}
}
