// Package protocol implements the framed serial link between the game
// device and the pad companion MCU that owns the controller port.
//
// Frame layout (same shape as the Klipper wire format):
//
//	len | seq | payload... | crc16 hi | crc16 lo | 0x7E
package protocol

// Version represents the pad link protocol version
const Version = "1"

// Framing constants
const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 16
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	// Message sequence masks
	MessageSeqMask = 0x0F
)

// Payload opcodes
const (
	CmdPollPad   = 0x01 // device -> companion, no arguments
	RespPadState = 0x81 // companion -> device, bitmask hi, bitmask lo
)

// Message is one validated frame
type Message struct {
	Sequence uint8
	Payload  []byte
}

// NextSeq advances a sequence number within the destination range
func NextSeq(seq uint8) uint8 {
	return ((seq + 1) & MessageSeqMask) | MessageDest
}
