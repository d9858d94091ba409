package core

// Source exposes the instantaneous logical state of each physical control.
// Pressed is polarity corrected: true always means actuated.
type Source interface {
	// Configure performs one-time peripheral setup before the first poll
	Configure() error

	// Scan latches fresh hardware state; called once per poll cycle
	Scan()

	// Len returns the number of controls (IDs 0..Len()-1)
	Len() int

	// Pressed reports the latched state of one control
	Pressed(id int) bool
}

// Control is one physical input channel as seen by the debounce filter
type Control struct {
	ID        int
	raw       bool // sample taken this cycle
	last      bool // sample taken on the previous cycle
	confirmed bool // debounced state
}

// Confirmed returns the debounced state (true = pressed)
func (c *Control) Confirmed() bool {
	return c.confirmed
}

// newControls allocates controls in their at-rest state
func newControls(n int) []Control {
	controls := make([]Control, n)
	for i := range controls {
		controls[i].ID = i
	}
	return controls
}
