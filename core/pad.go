package core

// PadReleased is the bitmask reported by an idle pad (all bits active low)
const PadReleased uint16 = 0xFFFF

// BitmaskReader performs one controller transaction and returns the raw
// button bitmask. A cleared bit means the button is held.
type BitmaskReader interface {
	ReadBitmask() (uint16, error)
}

// Configurer is implemented by readers that need one-time setup
type Configurer interface {
	Configure() error
}

// PadRow ties one bit position of the pad bitmask to an engine action
type PadRow struct {
	Mask   uint16
	Action Action
}

// PadSource decodes a serial game controller bitmask. Every table row is
// its own control, so a bit listed in two rows drives two controls.
type PadSource struct {
	reader BitmaskReader
	rows   []PadRow
	mask   uint16
}

// NewPadSource creates a source over the given row table
func NewPadSource(reader BitmaskReader, rows []PadRow) *PadSource {
	return &PadSource{
		reader: reader,
		rows:   rows,
		mask:   PadReleased,
	}
}

// Configure runs the reader's own setup if it has one
func (s *PadSource) Configure() error {
	if c, ok := s.reader.(Configurer); ok {
		return c.Configure()
	}
	return nil
}

// Scan performs exactly one controller transaction
func (s *PadSource) Scan() {
	mask, err := s.reader.ReadBitmask()
	if err != nil {
		// No answer from the pad looks the same as nothing held
		DebugAsync("pad: read failed: " + err.Error())
		mask = PadReleased
	}
	if mask != s.mask {
		DebugAsync("pad: bitmask " + hex16(s.mask) + " -> " + hex16(mask))
	}
	s.mask = mask
}

func (s *PadSource) Len() int {
	return len(s.rows)
}

func (s *PadSource) Pressed(id int) bool {
	return s.mask&s.rows[id].Mask == 0
}

// Bitmask returns the last latched raw bitmask
func (s *PadSource) Bitmask() uint16 {
	return s.mask
}
