//go:build esp32

// Oxocard firmware: polls the six buttons every 20ms and drains the key
// events once per engine tic, printing them on the console UART.
package main

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"keypoll/core"
)

const ticPeriod = time.Second / 35

// menu mirrors the engine's menu flag: escape toggles it, enter closes it.
// The poller reads it from its own goroutine.
type menu struct {
	active atomic.Bool
}

func (m *menu) MenuActive() bool { return m.active.Load() }

func (m *menu) handle(ev core.Event, bindings *core.Bindings) {
	if ev.Kind != core.KeyDown {
		return
	}
	switch ev.Key {
	case bindings.Key(core.ActionEscape):
		m.active.Store(!m.active.Load())
	case bindings.Key(core.ActionMenuEnter):
		m.active.Store(false)
	}
}

func main() {
	core.SetDebugWriter(func(s string) { println(s) })
	core.SetDebugEnabled(true)
	core.InitAsyncDebug()

	core.SetGPIODriver(NewESPGPIODriver())

	bindings := core.NewBindings()
	queue := core.NewEventQueue(64)
	m := &menu{}

	t, err := core.NewOxocardTranslator(core.MustGPIO(), bindings, queue, m)
	if err != nil {
		halt(err)
	}

	poller := core.NewPoller(t)
	if err := poller.Start(context.Background()); err != nil {
		halt(err)
	}

	var dropped uint32
	for {
		time.Sleep(ticPeriod)
		queue.Drain(func(ev core.Event) {
			m.handle(ev, bindings)
			core.DebugAsync("key " + ev.String())
		})

		if st := t.Stats(); st.Dropped != dropped {
			dropped = st.Dropped
			core.DebugAsync("queue overflow, dropped " + strconv.Itoa(int(dropped)))
		}
	}
}

func halt(err error) {
	core.DebugPrintln("FATAL: " + err.Error())
	for {
		time.Sleep(time.Second)
	}
}
