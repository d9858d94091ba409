package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emitterRig drives an Emitter with confirmed states set by hand
type emitterRig struct {
	e        *Emitter
	sink     *recorder
	controls []Control
	bindings *Bindings
}

func newEmitterRig(t *testing.T, n, modifier int, table []KeyMapping) *emitterRig {
	t.Helper()
	b := NewBindings()
	m, err := NewMapper(b, n, modifier, table)
	require.NoError(t, err)
	sink := &recorder{}
	return &emitterRig{
		e:        NewEmitter(m, sink, n),
		sink:     sink,
		controls: newControls(n),
		bindings: b,
	}
}

func (r *emitterRig) set(id int, pressed bool) {
	r.controls[id].confirmed = pressed
}

func (r *emitterRig) update(modifier, menu bool) []Event {
	r.e.Update(r.controls, modifier, menu)
	return r.sink.take()
}

// fiveControls has control 2 as LEFT / STRAFE_LEFT and control 4 as the modifier
var fiveControls = []KeyMapping{
	{Control: 0, Normal: ActionUp},
	{Control: 1, Normal: ActionDown},
	{Control: 2, Normal: ActionLeft, Strafe: ActionStrafeLeft},
	{Control: 3, Normal: ActionRight, Strafe: ActionStrafeRight},
}

func TestEmitterScenarioStrafe(t *testing.T) {
	r := newEmitterRig(t, 5, 4, fiveControls)

	r.set(2, true)
	assert.Equal(t, []Event{down(KeyLeftArrow)}, r.update(false, false))

	r.set(4, true)
	assert.Equal(t, []Event{up(KeyLeftArrow), down(KeyComma)}, r.update(true, false))

	r.set(2, false)
	assert.Equal(t, []Event{up(KeyComma)}, r.update(true, false))
}

func TestEmitterModifierRemapBothWays(t *testing.T) {
	r := newEmitterRig(t, 5, 4, fiveControls)

	r.set(2, true)
	assert.Equal(t, []Event{down(KeyLeftArrow)}, r.update(false, false))
	assert.Equal(t, []Event{up(KeyLeftArrow), down(KeyComma)}, r.update(true, false))
	assert.Equal(t, []Event{up(KeyComma), down(KeyLeftArrow)}, r.update(false, false))

	r.set(2, false)
	assert.Equal(t, []Event{up(KeyLeftArrow)}, r.update(false, false))
}

func TestEmitterPressWhileModifierHeld(t *testing.T) {
	r := newEmitterRig(t, 5, 4, fiveControls)

	r.set(3, true)
	assert.Equal(t, []Event{down(KeyPeriod)}, r.update(true, false))

	// controls without an alternate never react to the modifier
	r.set(0, true)
	assert.Equal(t, []Event{down(KeyUpArrow)}, r.update(true, false))
	assert.Equal(t, []Event{up(KeyPeriod), down(KeyRightArrow)}, r.update(false, false))
}

func TestEmitterIdempotent(t *testing.T) {
	r := newEmitterRig(t, 5, 4, fiveControls)

	assert.Empty(t, r.update(false, false))

	r.set(0, true)
	r.set(2, true)
	assert.Len(t, r.update(true, false), 2)
	for i := 0; i < 10; i++ {
		assert.Empty(t, r.update(true, false))
	}
}

func TestEmitterMenuKeyLatchedUntilRelease(t *testing.T) {
	r := newEmitterRig(t, OxoNumButtons, OxoStrafe, OxocardMapping)

	r.set(OxoShoot, true)
	assert.Equal(t, []Event{down(KeyEnter)}, r.update(false, true))

	// menu closed while the button is still down: nothing changes
	assert.Empty(t, r.update(false, false))
	assert.Empty(t, r.update(true, false))

	r.set(OxoShoot, false)
	assert.Equal(t, []Event{up(KeyEnter)}, r.update(false, false))

	r.set(OxoShoot, true)
	assert.Equal(t, []Event{down(KeyRCtrl)}, r.update(false, false))
	r.set(OxoShoot, false)
	assert.Equal(t, []Event{up(KeyRCtrl)}, r.update(false, true))
}

func TestEmitterMenuIgnoredWithoutAlternate(t *testing.T) {
	r := newEmitterRig(t, OxoNumButtons, OxoStrafe, OxocardMapping)

	r.set(OxoTurnLeft, true)
	assert.Equal(t, []Event{down(KeyLeftArrow)}, r.update(false, true))
	// not latched, so the modifier still remaps it
	assert.Equal(t, []Event{up(KeyLeftArrow), down(KeyComma)}, r.update(true, true))
}

func TestEmitterRebindWhileHeld(t *testing.T) {
	r := newEmitterRig(t, 5, 4, fiveControls)

	r.set(0, true)
	assert.Equal(t, []Event{down(KeyUpArrow)}, r.update(false, false))

	r.bindings.Bind(ActionUp, 'w')
	assert.Equal(t, []Event{up(KeyUpArrow), down('w')}, r.update(false, false))

	r.set(0, false)
	assert.Equal(t, []Event{up('w')}, r.update(false, false))
}

func TestEmitterDropsWithoutRetry(t *testing.T) {
	r := newEmitterRig(t, 5, 4, fiveControls)

	r.sink.full = true
	r.set(1, true)
	assert.Empty(t, r.update(false, false))
	assert.Equal(t, uint32(1), r.e.stats.dropped.Load())

	// the key counts as posted, so the next accepted event is its release
	r.sink.full = false
	assert.Empty(t, r.update(false, false))
	r.set(1, false)
	assert.Equal(t, []Event{up(KeyDownArrow)}, r.update(false, false))
	assert.Equal(t, uint32(1), r.e.stats.posted.Load())

	evs := r.e.trace.Events()
	require.Len(t, evs, 2)
	assert.True(t, evs[0].Dropped)
	assert.False(t, evs[1].Dropped)
}

func TestEmitterHeld(t *testing.T) {
	r := newEmitterRig(t, 5, 4, fiveControls)

	_, held := r.e.Held(2)
	assert.False(t, held)

	r.set(2, true)
	r.update(true, false)
	key, held := r.e.Held(2)
	assert.True(t, held)
	assert.Equal(t, KeyComma, key)
}

// Random presses, releases and modifier flips must always produce
// alternating down/up pairs with matching keys per control.
func TestEmitterPairingProperty(t *testing.T) {
	r := newEmitterRig(t, 5, 4, fiveControls)
	rng := rand.New(rand.NewSource(2600))

	held := map[uint8]KeyCode{}
	isHeld := map[uint8]bool{}
	modifier := false

	for cycle := 0; cycle <= 5000; cycle++ {
		for id := 0; id < 4; id++ {
			switch {
			case cycle == 5000:
				r.set(id, false)
			case rng.Intn(4) == 0:
				r.set(id, !r.controls[id].confirmed)
			}
		}
		if rng.Intn(5) == 0 {
			modifier = !modifier
		}

		r.e.trace.Clear()
		r.update(modifier, false)

		for _, tr := range r.e.trace.Events() {
			switch tr.Event.Kind {
			case KeyDown:
				require.False(t, isHeld[tr.Control], "cycle %d: double down on control %d", cycle, tr.Control)
				isHeld[tr.Control] = true
				held[tr.Control] = tr.Event.Key
			case KeyUp:
				require.True(t, isHeld[tr.Control], "cycle %d: up without down on control %d", cycle, tr.Control)
				require.Equal(t, held[tr.Control], tr.Event.Key, "cycle %d: control %d", cycle, tr.Control)
				isHeld[tr.Control] = false
			}
		}
	}

	for id := uint8(0); id < 4; id++ {
		assert.False(t, isHeld[id], "control %d left held", id)
	}
}
