package core

// Debouncer suppresses contact chatter with a two-sample agreement rule:
// a level is accepted only when the current sample equals the previous one.
// At the 20 ms poll period this gives a 20-40 ms debounce window, and a
// glitch lasting a single cycle never reaches the confirmed state.
type Debouncer struct {
	// Bypass copies every sample straight to the confirmed state, for
	// sources whose hardware already delivers clean levels
	Bypass bool
}

// Poll folds one fresh sample per control into the confirmed state
func (d *Debouncer) Poll(src Source, controls []Control) {
	for i := range controls {
		c := &controls[i]
		c.raw = src.Pressed(c.ID)
		if d.Bypass || c.raw == c.last {
			c.confirmed = c.raw
		}
		c.last = c.raw
	}
}
