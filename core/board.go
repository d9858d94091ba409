package core

// Build-time board tables. Pin numbers, polarity and key tables are fixed
// per board and are not configurable at runtime.

// Oxocard control IDs
const (
	OxoForward = iota
	OxoBack
	OxoTurnLeft
	OxoTurnRight
	OxoShoot
	OxoStrafe

	OxoNumButtons
)

// OxocardButtons is the Oxocard button wiring. GPIO0 is the boot strap
// pin and idles high through its strap resistor, so it reads active low;
// the other buttons switch to 3V3 and read active high.
var OxocardButtons = []Button{
	OxoForward:   {Name: "fwd", Pin: 0, ActiveLow: true},
	OxoBack:      {Name: "back", Pin: 26},
	OxoTurnLeft:  {Name: "turnl", Pin: 27},
	OxoTurnRight: {Name: "turnr", Pin: 25},
	OxoShoot:     {Name: "shoot", Pin: 33},
	OxoStrafe:    {Name: "strafe", Pin: 32},
}

// OxocardMapping maps the five direction/fire buttons; the strafe button
// is the modifier and turns the turn buttons into strafe keys. Shoot
// doubles as menu-enter while a menu is open.
var OxocardMapping = []KeyMapping{
	{Control: OxoForward, Normal: ActionUp},
	{Control: OxoBack, Normal: ActionDown},
	{Control: OxoTurnLeft, Normal: ActionLeft, Strafe: ActionStrafeLeft},
	{Control: OxoTurnRight, Normal: ActionRight, Strafe: ActionStrafeRight},
	{Control: OxoShoot, Normal: ActionFire, Menu: ActionMenuEnter},
}

// PSXPadRows is the PlayStation pad bit table. Circle (0x2000) appears
// twice, once for fire and once for menu-enter, so both keys go down
// together. This mirrors the shipped firmware table and is kept until the
// intended behavior is confirmed.
var PSXPadRows = []PadRow{
	{0x0010, ActionUp},
	{0x0040, ActionDown},
	{0x0080, ActionLeft},
	{0x0020, ActionRight},

	{0x4000, ActionUse},          // cross
	{0x2000, ActionFire},         // circle
	{0x2000, ActionMenuEnter},    // circle
	{0x8000, ActionPause},        // square
	{0x1000, ActionWeaponToggle}, // triangle

	{0x0008, ActionEscape}, // start
	{0x0001, ActionMap},    // select

	{0x0400, ActionStrafeLeft},  // L1
	{0x0100, ActionSpeed},       // L2
	{0x0800, ActionStrafeRight}, // R1
	{0x0200, ActionStrafe},      // R2
}

// PadMapping builds the flat one-key-per-row table for a pad
func PadMapping(rows []PadRow) []KeyMapping {
	m := make([]KeyMapping, len(rows))
	for i, r := range rows {
		m[i] = KeyMapping{Control: i, Normal: r.Action}
	}
	return m
}

// NewOxocardTranslator wires the Oxocard buttons to a sink
func NewOxocardTranslator(gpio GPIODriver, bindings *Bindings, sink Sink, menu MenuState) (*Translator, error) {
	return NewTranslator(Config{
		Source:   NewButtonSource(gpio, OxocardButtons),
		Mapping:  OxocardMapping,
		Modifier: OxoStrafe,
		Bindings: bindings,
		Sink:     sink,
		Menu:     menu,
	})
}

// NewPadTranslator wires a bitmask pad to a sink. The pad controller
// delivers settled levels, so debouncing is bypassed.
func NewPadTranslator(reader BitmaskReader, bindings *Bindings, sink Sink) (*Translator, error) {
	return NewTranslator(Config{
		Source:   NewPadSource(reader, PSXPadRows),
		Mapping:  PadMapping(PSXPadRows),
		Modifier: NoModifier,
		Bindings: bindings,
		Sink:     sink,
		Bypass:   true,
	})
}
