package core

import "errors"

// fakeGPIO is a GPIODriver backed by a level map
type fakeGPIO struct {
	levels   map[GPIOPin]bool
	pullUp   map[GPIOPin]bool
	pullDown map[GPIOPin]bool
	failPin  GPIOPin
	fail     bool
}

func newFakeGPIO() *fakeGPIO {
	return &fakeGPIO{
		levels:   make(map[GPIOPin]bool),
		pullUp:   make(map[GPIOPin]bool),
		pullDown: make(map[GPIOPin]bool),
	}
}

var errFakeConfigure = errors.New("pin unavailable")

func (f *fakeGPIO) ConfigureInputPullUp(pin GPIOPin) error {
	if f.fail && pin == f.failPin {
		return errFakeConfigure
	}
	f.pullUp[pin] = true
	f.levels[pin] = true // pulled high at rest
	return nil
}

func (f *fakeGPIO) ConfigureInputPullDown(pin GPIOPin) error {
	if f.fail && pin == f.failPin {
		return errFakeConfigure
	}
	f.pullDown[pin] = true
	f.levels[pin] = false
	return nil
}

func (f *fakeGPIO) ReadPin(pin GPIOPin) bool {
	return f.levels[pin]
}

// fakePad replays bitmasks, holding the last one
type fakePad struct {
	mask       uint16
	err        error
	reads      int
	configured bool
}

func (f *fakePad) ReadBitmask() (uint16, error) {
	f.reads++
	if f.err != nil {
		return 0, f.err
	}
	return f.mask, nil
}

func (f *fakePad) Configure() error {
	f.configured = true
	return nil
}

// manualSource exposes directly settable pressed flags
type manualSource struct {
	pressed   []bool
	scans     int
	configErr error
}

func newManualSource(n int) *manualSource {
	return &manualSource{pressed: make([]bool, n)}
}

func (s *manualSource) Configure() error    { return s.configErr }
func (s *manualSource) Scan()               { s.scans++ }
func (s *manualSource) Len() int            { return len(s.pressed) }
func (s *manualSource) Pressed(id int) bool { return s.pressed[id] }

// recorder is a Sink that keeps everything it was given
type recorder struct {
	events []Event
	full   bool
}

func (r *recorder) Post(ev Event) error {
	if r.full {
		return ErrQueueFull
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) take() []Event {
	evs := r.events
	r.events = nil
	return evs
}

func down(k KeyCode) Event { return Event{Kind: KeyDown, Key: k} }
func up(k KeyCode) Event   { return Event{Kind: KeyUp, Key: k} }
