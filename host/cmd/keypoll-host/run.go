package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"keypoll/core"
	"keypoll/host/console"
)

// pipeline is everything a subcommand needs to build its translator
type pipeline struct {
	log      *logrus.Logger
	bindings *core.Bindings
	sink     core.Sink
	menu     core.MenuState

	// consumer runs on its own goroutine until ctx is done; nil when the
	// sink delivers events itself
	consumer func(ctx context.Context)
	closers  []func() error
}

// newPipeline sets up logging and the configured event consumer
func newPipeline() (*pipeline, error) {
	log, err := newLogger()
	if err != nil {
		return nil, err
	}

	p := &pipeline{
		log:      log,
		bindings: core.NewBindings(),
	}

	switch out := v.GetString("output"); out {
	case "console":
		q := core.NewEventQueue(v.GetInt("queue.size"))
		c := console.New(log.WithField("src", "console"), os.Stdout, p.bindings)
		p.sink = q
		p.menu = c
		p.consumer = func(ctx context.Context) {
			c.Run(ctx, q, console.TicPeriod)
			if n := c.Violations(); n > 0 {
				log.WithField("violations", n).Warn("key pairing errors seen")
			}
		}
	case "vkbd":
		sink, closeFn, err := openVirtualKeyboard(v.GetString("vkbd.device"), v.GetString("vkbd.name"))
		if err != nil {
			return nil, err
		}
		p.sink = sink
		p.closers = append(p.closers, closeFn)
	default:
		return nil, fmt.Errorf("unknown output %q (want console or vkbd)", out)
	}

	return p, nil
}

// run polls t until interrupted
func (p *pipeline) run(t *core.Translator) error {
	defer p.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller := core.NewPoller(t)
	poller.SetPeriod(pollPeriod())
	if err := poller.Start(ctx); err != nil {
		return err
	}
	p.log.WithField("period", pollPeriod()).Info("polling, ^C to stop")

	consumed := make(chan struct{})
	go func() {
		defer close(consumed)
		if p.consumer != nil {
			p.consumer(ctx)
		}
	}()

	<-poller.Done()
	<-consumed
	os.Stdout.WriteString("\n")

	st := t.Stats()
	p.log.WithFields(logrus.Fields{
		"cycles":  st.Cycles,
		"posted":  st.Posted,
		"dropped": st.Dropped,
	}).Info("stopped")

	if v.GetBool("trace") {
		for _, ev := range t.Trace().Events() {
			entry := p.log.WithFields(logrus.Fields{
				"cycle":   ev.Cycle,
				"control": ev.Control,
			})
			if ev.Dropped {
				entry = entry.WithField("dropped", true)
			}
			entry.Info(ev.Event.String())
		}
	}
	return nil
}

func (p *pipeline) close() {
	for _, fn := range p.closers {
		if err := fn(); err != nil {
			p.log.WithError(err).Warn("close")
		}
	}
}
