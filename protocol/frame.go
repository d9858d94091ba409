package protocol

import "errors"

var (
	ErrPayloadTooLarge = errors.New("payload too large for frame")
	ErrUnexpectedReply = errors.New("unexpected reply payload")
)

// EncodeFrame wraps a payload in header, CRC and sync trailer
func EncodeFrame(seq uint8, payload []byte) ([]byte, error) {
	msgLen := MessageLengthMin + len(payload)
	if msgLen > MessageLengthMax {
		return nil, ErrPayloadTooLarge
	}

	frame := make([]byte, 0, msgLen)
	frame = append(frame, uint8(msgLen), seq)
	frame = append(frame, payload...)

	crc := CRC16(frame)
	frame = append(frame,
		uint8((crc&0xFF00)>>8),
		uint8(crc&0xFF),
		MessageValueSync,
	)
	return frame, nil
}

// EncodePoll builds the device's pad poll request
func EncodePoll(seq uint8) []byte {
	frame, _ := EncodeFrame(seq, []byte{CmdPollPad})
	return frame
}

// EncodePadState builds the companion's reply carrying the pad bitmask
func EncodePadState(seq uint8, mask uint16) []byte {
	frame, _ := EncodeFrame(seq, []byte{RespPadState, uint8(mask >> 8), uint8(mask)})
	return frame
}

// DecodePadState extracts the bitmask from a RespPadState payload
func DecodePadState(payload []byte) (uint16, error) {
	if len(payload) != 3 || payload[0] != RespPadState {
		return 0, ErrUnexpectedReply
	}
	return uint16(payload[1])<<8 | uint16(payload[2]), nil
}

// Decoder reassembles frames from a byte stream, dropping garbage and
// resynchronizing on the next sync byte after any corrupt frame
type Decoder struct {
	in           *FifoBuffer
	synchronized bool
	Errors       uint32 // corrupt or unframed input seen
}

// NewDecoder creates a decoder buffering up to capacity bytes
func NewDecoder(capacity int) *Decoder {
	return &Decoder{
		in:           NewFifoBuffer(capacity),
		synchronized: true,
	}
}

// Write feeds received bytes into the decoder. Bytes that do not fit
// are dropped and counted as errors.
func (d *Decoder) Write(p []byte) int {
	n := d.in.Write(p)
	if n < len(p) {
		d.Errors++
	}
	return n
}

// Next returns the next complete, valid message if one is buffered
func (d *Decoder) Next() (Message, bool) {
	data := d.in.Data()
	defer func(total int) {
		d.in.Pop(total - len(data))
	}(len(data))

	for len(data) > 0 {
		if !d.synchronized {
			// Look for sync byte to resynchronize
			syncPos := -1
			for i, b := range data {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				data = nil
				break
			}
			data = data[syncPos+1:]
			d.synchronized = true
			continue
		}

		// Skip leading sync bytes
		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		// Need at least minimum message length
		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}

		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			d.desync()
			continue
		}

		// Wait for full message
		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		payload := make([]byte, msgLen-MessageLengthMin)
		copy(payload, data[MessageHeaderSize:msgLen-MessageTrailerSize])
		data = data[msgLen:]
		return Message{Sequence: seq, Payload: payload}, true
	}

	return Message{}, false
}

func (d *Decoder) desync() {
	d.synchronized = false
	d.Errors++
}

// Reset discards buffered input
func (d *Decoder) Reset() {
	d.in.Reset()
	d.synchronized = true
}
