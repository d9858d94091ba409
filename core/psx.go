package core

import (
	"errors"
	"math/bits"

	"tinygo.org/x/drivers"
)

// PSX controller transaction: poll command, then three idle bytes that
// clock out the id, the 0x5A marker and the two button bytes.
var psxPoll = [5]byte{0x01, 0x42, 0x00, 0x00, 0x00}

const psxReady = 0x5A

var errPSXNoPad = errors.New("psx: no pad answered")

// PSXPad reads a PlayStation pad over SPI. The pad shifts LSB first, the
// bus MSB first, so every byte is bit-reversed on the way in and out.
type PSXPad struct {
	bus drivers.SPI
	// attention drives the pad's ATT (chip select) line; true selects
	attention func(bool)
	tx, rx    [len(psxPoll)]byte
}

// NewPSXPad creates a pad reader on an already configured SPI bus
func NewPSXPad(bus drivers.SPI, attention func(bool)) *PSXPad {
	p := &PSXPad{bus: bus, attention: attention}
	for i, b := range psxPoll {
		p.tx[i] = bits.Reverse8(b)
	}
	return p
}

// Configure leaves the pad deselected
func (p *PSXPad) Configure() error {
	p.attention(false)
	return nil
}

// ReadBitmask performs one poll and returns the active-low button bits
func (p *PSXPad) ReadBitmask() (uint16, error) {
	p.attention(true)
	err := p.bus.Tx(p.tx[:], p.rx[:])
	p.attention(false)
	if err != nil {
		return PadReleased, err
	}

	if bits.Reverse8(p.rx[2]) != psxReady {
		return PadReleased, errPSXNoPad
	}
	lo := bits.Reverse8(p.rx[3])
	hi := bits.Reverse8(p.rx[4])
	return uint16(hi)<<8 | uint16(lo), nil
}
