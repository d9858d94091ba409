// Package console is a stand-in for the game engine's input consumer. It
// drains the event queue on its own tic, keeps the engine-side view of
// held keys, and reports any event that breaks down/up pairing.
package console

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"keypoll/core"
)

// TicPeriod is the engine's game tic (35 Hz)
const TicPeriod = time.Second / 35

// Console consumes key events like the engine's main loop would
type Console struct {
	log      logrus.FieldLogger
	out      io.Writer
	bindings *core.Bindings

	held       map[core.KeyCode]bool
	violations int
	menu       atomic.Bool

	heldColor *color.Color
	menuColor *color.Color
}

// New creates a console consumer. out receives the held-key status line;
// pass nil to disable it.
func New(log logrus.FieldLogger, out io.Writer, bindings *core.Bindings) *Console {
	return &Console{
		log:       log,
		out:       out,
		bindings:  bindings,
		held:      make(map[core.KeyCode]bool),
		heldColor: color.New(color.FgGreen, color.Bold),
		menuColor: color.New(color.FgYellow),
	}
}

// MenuActive implements core.MenuState. Escape opens the menu and
// menu-enter or escape closes it, as in the engine.
func (c *Console) MenuActive() bool {
	return c.menu.Load()
}

// Handle applies one event to the engine-side key state
func (c *Console) Handle(ev core.Event) {
	name := c.KeyName(ev.Key)
	entry := c.log.WithFields(logrus.Fields{
		"kind": ev.Kind.String(),
		"key":  name,
		"code": int(ev.Key),
	})

	switch ev.Kind {
	case core.KeyDown:
		if c.held[ev.Key] {
			c.violations++
			entry.Warn("key down while already held")
		}
		c.held[ev.Key] = true
		c.menuKey(ev.Key)
	case core.KeyUp:
		if !c.held[ev.Key] {
			c.violations++
			entry.Warn("key up without matching down")
		}
		delete(c.held, ev.Key)
	}
	entry.Debug("key event")
}

func (c *Console) menuKey(k core.KeyCode) {
	switch k {
	case c.bindings.Key(core.ActionEscape):
		c.menu.Store(!c.menu.Load())
	case c.bindings.Key(core.ActionMenuEnter):
		if c.menu.Load() {
			c.menu.Store(false)
		}
	}
}

// KeyName names a key by the action it is bound to
func (c *Console) KeyName(k core.KeyCode) string {
	for a := core.ActionUp; a < core.NumActions; a++ {
		if c.bindings.Key(a) == k {
			return a.String()
		}
	}
	return "key" + strconv.Itoa(int(k))
}

// Held returns the names of all keys the engine considers down, sorted
func (c *Console) Held() []string {
	names := make([]string, 0, len(c.held))
	for k := range c.held {
		names = append(names, c.KeyName(k))
	}
	sort.Strings(names)
	return names
}

// Violations returns the number of pairing errors seen
func (c *Console) Violations() int {
	return c.violations
}

// StatusLine renders the held keys and menu state
func (c *Console) StatusLine() string {
	var b strings.Builder
	b.WriteString("held: ")
	held := c.Held()
	if len(held) == 0 {
		b.WriteString("-")
	}
	for i, name := range held {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.heldColor.Sprint(name))
	}
	if c.MenuActive() {
		b.WriteString(" ")
		b.WriteString(c.menuColor.Sprint("[menu]"))
	}
	return b.String()
}

// Run drains q once per tic until ctx is done, like the engine loop
func (c *Console) Run(ctx context.Context, q *core.EventQueue, tic time.Duration) {
	ticker := time.NewTicker(tic)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Drain(q)
			return
		case <-ticker.C:
			c.Drain(q)
		}
	}
}

// Drain handles every queued event and refreshes the status line
func (c *Console) Drain(q *core.EventQueue) int {
	n := q.Drain(c.Handle)
	if n > 0 && c.out != nil {
		io.WriteString(c.out, "\r\033[K"+c.StatusLine())
	}
	return n
}
