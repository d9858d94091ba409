package protocol

import (
	"errors"
	"fmt"
	"io"
)

// ErrNoResponse is returned when the companion does not answer a poll
var ErrNoResponse = errors.New("pad companion did not respond")

// Reply wait bounds. With a 10 ms port read timeout, two idle reads keep
// one poll inside the 20 ms input cycle.
const (
	maxIdleReads = 2
	maxReads     = 8
)

// PadLink is the device side of the pad link: each ReadBitmask call is
// one poll request and one reply
type PadLink struct {
	rw  io.ReadWriter
	dec *Decoder
	seq uint8
	buf [MessageLengthMax]byte
}

// NewPadLink creates a link over an open serial port
func NewPadLink(rw io.ReadWriter) *PadLink {
	return &PadLink{
		rw:  rw,
		dec: NewDecoder(4 * MessageLengthMax),
		seq: MessageDest,
	}
}

// ReadBitmask polls the companion once and returns the raw pad bitmask
func (l *PadLink) ReadBitmask() (uint16, error) {
	seq := l.seq
	l.seq = NextSeq(l.seq)

	if _, err := l.rw.Write(EncodePoll(seq)); err != nil {
		return 0, fmt.Errorf("send poll: %w", err)
	}

	idle := 0
	for reads := 0; reads < maxReads && idle < maxIdleReads; reads++ {
		n, err := l.rw.Read(l.buf[:])
		if n > 0 {
			l.dec.Write(l.buf[:n])
			if mask, ok, err := l.reply(seq); ok {
				return mask, err
			}
			continue
		}
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("read reply: %w", err)
		}
		idle++
	}

	return 0, ErrNoResponse
}

// reply looks for the answer to seq among buffered frames. Stale replies
// to earlier polls are discarded.
func (l *PadLink) reply(seq uint8) (uint16, bool, error) {
	for {
		msg, ok := l.dec.Next()
		if !ok {
			return 0, false, nil
		}
		if msg.Sequence != seq {
			continue
		}
		mask, err := DecodePadState(msg.Payload)
		return mask, true, err
	}
}

// Errors returns the number of corrupt frames seen on the link
func (l *PadLink) Errors() uint32 {
	return l.dec.Errors
}

// Responder is the companion side: it answers each poll with the
// current pad bitmask
type Responder struct {
	dec  *Decoder
	read func() uint16
	buf  [MessageLengthMax]byte
}

// NewResponder creates a responder sampling the pad through read
func NewResponder(read func() uint16) *Responder {
	return &Responder{
		dec:  NewDecoder(4 * MessageLengthMax),
		read: read,
	}
}

// Serve reads one chunk from rw and answers every complete poll in it.
// Returns the number of polls answered.
func (r *Responder) Serve(rw io.ReadWriter) (int, error) {
	n, err := rw.Read(r.buf[:])
	if n > 0 {
		r.dec.Write(r.buf[:n])
	}
	if err != nil && err != io.EOF {
		return 0, err
	}

	answered := 0
	for {
		msg, ok := r.dec.Next()
		if !ok {
			return answered, nil
		}
		if len(msg.Payload) != 1 || msg.Payload[0] != CmdPollPad {
			continue
		}
		if _, err := rw.Write(EncodePadState(msg.Sequence, r.read())); err != nil {
			return answered, err
		}
		answered++
	}
}
