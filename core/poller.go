package core

import (
	"context"
	"fmt"
	"time"
)

// PollPeriod is the input sampling cadence (50 Hz)
const PollPeriod = 20 * time.Millisecond

// Poller drives a Translator at a fixed cadence on its own goroutine,
// independent of the engine's frame time.
type Poller struct {
	t      *Translator
	period time.Duration
	ready  bool
	done   chan struct{}
}

// NewPoller creates a poller running at PollPeriod
func NewPoller(t *Translator) *Poller {
	return &Poller{
		t:      t,
		period: PollPeriod,
		done:   make(chan struct{}),
	}
}

// SetPeriod overrides the poll period (host tools and tests)
func (p *Poller) SetPeriod(d time.Duration) {
	if d > 0 {
		p.period = d
	}
}

// Init configures the input peripherals once. A failure is fatal: the
// device has no usable input without it.
func (p *Poller) Init() error {
	if p.ready {
		return nil
	}
	if err := p.t.Configure(); err != nil {
		return fmt.Errorf("input init: %w", err)
	}
	p.ready = true
	DebugPrintln("poller: input configured, period " + itoa(int(p.period/time.Millisecond)) + "ms")
	return nil
}

// Step runs exactly one poll cycle
func (p *Poller) Step() {
	p.t.Poll()
}

// Run initializes and then polls until ctx is done. The wait starts
// after each cycle finishes, so an overrunning cycle delays the next one
// and no cycle is ever skipped or merged.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.Init(); err != nil {
		return err
	}
	return p.loop(ctx)
}

// Start initializes synchronously, then polls on a new goroutine
func (p *Poller) Start(ctx context.Context) error {
	if err := p.Init(); err != nil {
		return err
	}
	go p.loop(ctx)
	return nil
}

// Done is closed once the poll loop has exited
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

func (p *Poller) loop(ctx context.Context) error {
	defer close(p.done)

	timer := time.NewTimer(p.period)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		p.Step()
		timer.Reset(p.period)
	}
}
