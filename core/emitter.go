package core

import "sync/atomic"

// posted is the consumer-visible key state of one control
type posted struct {
	held    bool
	latched bool // key came from a menu alternate and is fixed until release
	key     KeyCode
}

// Stats counts pipeline activity since startup
type Stats struct {
	Cycles  uint32
	Posted  uint32
	Dropped uint32
}

// counters back Stats; they are read from outside the poll goroutine
type counters struct {
	cycles  atomic.Uint32
	posted  atomic.Uint32
	dropped atomic.Uint32
}

func (c *counters) snapshot() Stats {
	return Stats{
		Cycles:  c.cycles.Load(),
		Posted:  c.posted.Load(),
		Dropped: c.dropped.Load(),
	}
}

// Emitter diffs the mapped state of every control against what the
// consumer has been told and posts only the transitions needed to close
// the gap. Every KeyDown it posts is matched by exactly one KeyUp for the
// same key, including when the mapping changes while a control is held.
type Emitter struct {
	mapper *Mapper
	sink   Sink
	state  []posted
	trace  EventTrace
	stats  counters
}

// NewEmitter creates an emitter with every control released
func NewEmitter(mapper *Mapper, sink Sink, numControls int) *Emitter {
	return &Emitter{
		mapper: mapper,
		sink:   sink,
		state:  make([]posted, numControls),
	}
}

// Update runs one emission pass over the mapped controls
func (e *Emitter) Update(controls []Control, modifierHeld, menuActive bool) {
	for _, m := range e.mapper.Entries() {
		id := m.Control
		st := &e.state[id]

		if !controls[id].confirmed {
			if st.held {
				e.emit(id, KeyUp, st.key)
				*st = posted{}
			}
			continue
		}

		if !st.held {
			key := e.mapper.Resolve(id, modifierHeld)
			latched := false
			if menuActive {
				if alt, ok := e.mapper.ResolveMenu(id); ok {
					key, latched = alt, true
				}
			}
			e.emit(id, KeyDown, key)
			*st = posted{held: true, latched: latched, key: key}
			continue
		}

		if st.latched {
			continue
		}

		// Modifier flipped or the engine rebound the action mid-press
		key := e.mapper.Resolve(id, modifierHeld)
		if key != st.key {
			e.emit(id, KeyUp, st.key)
			e.emit(id, KeyDown, key)
			st.key = key
		}
	}
}

// emit posts one event; a refused event is logged and dropped, never
// retried, so down/up order can not be disturbed
func (e *Emitter) emit(control int, kind EventKind, key KeyCode) {
	ev := Event{Kind: kind, Key: key}
	err := e.sink.Post(ev)
	if err != nil {
		e.stats.dropped.Add(1)
		DebugAsync("emitter: dropped " + ev.String() + " from control " + itoa(control) + ": " + err.Error())
	} else {
		e.stats.posted.Add(1)
	}
	e.trace.Record(TraceEvent{
		Cycle:   e.stats.cycles.Load(),
		Control: uint8(control),
		Event:   ev,
		Dropped: err != nil,
	})
}

// Held reports the key posted down for a control, if any
func (e *Emitter) Held(control int) (KeyCode, bool) {
	st := e.state[control]
	return st.key, st.held
}
