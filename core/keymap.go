package core

import "fmt"

// NoModifier marks a layout without a modifier control
const NoModifier = -1

// KeyMapping is the static table entry for one non-modifier control
type KeyMapping struct {
	Control int
	Normal  Action
	Strafe  Action // used while the modifier is held, NoAction if none
	Menu    Action // chosen at press time while a menu is open, NoAction if none
}

// Mapper resolves controls to key codes through the engine's live bindings
type Mapper struct {
	bindings *Bindings
	entries  []KeyMapping
	byID     []int // control ID -> entries index, -1 when unmapped
}

// NewMapper validates the table against the control count and modifier
func NewMapper(bindings *Bindings, numControls, modifier int, table []KeyMapping) (*Mapper, error) {
	if bindings == nil {
		return nil, fmt.Errorf("mapper needs a binding table")
	}
	if modifier != NoModifier && (modifier < 0 || modifier >= numControls) {
		return nil, fmt.Errorf("modifier control %d out of range [0,%d)", modifier, numControls)
	}

	m := &Mapper{
		bindings: bindings,
		entries:  make([]KeyMapping, len(table)),
		byID:     make([]int, numControls),
	}
	copy(m.entries, table)
	for i := range m.byID {
		m.byID[i] = -1
	}

	for i, e := range table {
		switch {
		case e.Control < 0 || e.Control >= numControls:
			return nil, fmt.Errorf("mapping %d: control %d out of range [0,%d)", i, e.Control, numControls)
		case e.Control == modifier:
			return nil, fmt.Errorf("mapping %d: control %d is the modifier", i, e.Control)
		case m.byID[e.Control] != -1:
			return nil, fmt.Errorf("mapping %d: control %d mapped twice", i, e.Control)
		case e.Normal == NoAction || e.Normal >= NumActions:
			return nil, fmt.Errorf("mapping %d: control %d has no valid key", i, e.Control)
		}
		m.byID[e.Control] = i
	}

	return m, nil
}

// Entries returns the mapping table in emission order
func (m *Mapper) Entries() []KeyMapping {
	return m.entries
}

// Resolve returns the key a control currently stands for. modifierHeld
// is ignored for controls without a strafe alternate.
func (m *Mapper) Resolve(control int, modifierHeld bool) KeyCode {
	e := &m.entries[m.byID[control]]
	if modifierHeld && e.Strafe != NoAction {
		return m.bindings.Key(e.Strafe)
	}
	return m.bindings.Key(e.Normal)
}

// ResolveMenu returns the menu alternate for a control, if it has one
func (m *Mapper) ResolveMenu(control int) (KeyCode, bool) {
	e := &m.entries[m.byID[control]]
	if e.Menu == NoAction {
		return 0, false
	}
	return m.bindings.Key(e.Menu), true
}
