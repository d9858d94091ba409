package core

import "fmt"

// Config describes one input front end and where its events go
type Config struct {
	Source   Source
	Mapping  []KeyMapping
	Modifier int // control ID of the modifier, NoModifier if none
	Bindings *Bindings
	Sink     Sink
	Menu     MenuState // optional
	Bypass   bool      // source levels are already clean, skip debouncing
}

// Translator owns every piece of per-control state: raw and confirmed
// samples, and the posted key state. It is driven from a single goroutine.
type Translator struct {
	src       Source
	controls  []Control
	debouncer Debouncer
	mapper    *Mapper
	emitter   *Emitter
	modifier  int
	menu      MenuState
}

// NewTranslator builds the debounce, mapping and emission pipeline
func NewTranslator(cfg Config) (*Translator, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("translator needs an input source")
	}
	if cfg.Sink == nil {
		return nil, fmt.Errorf("translator needs an event sink")
	}

	n := cfg.Source.Len()
	mapper, err := NewMapper(cfg.Bindings, n, cfg.Modifier, cfg.Mapping)
	if err != nil {
		return nil, err
	}

	return &Translator{
		src:       cfg.Source,
		controls:  newControls(n),
		debouncer: Debouncer{Bypass: cfg.Bypass},
		mapper:    mapper,
		emitter:   NewEmitter(mapper, cfg.Sink, n),
		modifier:  cfg.Modifier,
		menu:      cfg.Menu,
	}, nil
}

// Configure performs the source's one-time peripheral setup
func (t *Translator) Configure() error {
	return t.src.Configure()
}

// Poll runs one full cycle: sample, debounce, resolve and emit
func (t *Translator) Poll() {
	t.emitter.stats.cycles.Add(1)

	t.src.Scan()
	t.debouncer.Poll(t.src, t.controls)

	modifierHeld := t.modifier != NoModifier && t.controls[t.modifier].confirmed
	menuActive := t.menu != nil && t.menu.MenuActive()
	t.emitter.Update(t.controls, modifierHeld, menuActive)
}

// Confirmed returns the debounced state of one control
func (t *Translator) Confirmed(id int) bool {
	return t.controls[id].confirmed
}

// Held reports the key currently posted down for a control
func (t *Translator) Held(id int) (KeyCode, bool) {
	return t.emitter.Held(id)
}

// Stats returns a snapshot of the pipeline counters. Safe to call from
// any goroutine.
func (t *Translator) Stats() Stats {
	return t.emitter.stats.snapshot()
}

// Trace returns the recent-event ring
func (t *Translator) Trace() *EventTrace {
	return &t.emitter.trace
}
