package protocol

import (
	"bytes"
	"testing"
)

func TestEncodePoll(t *testing.T) {
	want := []byte{6, 0x10, CmdPollPad, 0x6B, 0xF2, MessageValueSync}
	if got := EncodePoll(MessageDest); !bytes.Equal(got, want) {
		t.Errorf("EncodePoll = % X, expected % X", got, want)
	}
}

func TestEncodeFrameTooLarge(t *testing.T) {
	if _, err := EncodeFrame(MessageDest, make([]byte, MessageLengthMax)); err != ErrPayloadTooLarge {
		t.Errorf("Expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestDecoderPadState(t *testing.T) {
	dec := NewDecoder(64)
	dec.Write(EncodePadState(0x13, 0xFFEF))

	msg, ok := dec.Next()
	if !ok {
		t.Fatal("Expected a message")
	}
	if msg.Sequence != 0x13 {
		t.Errorf("Expected sequence 0x13, got 0x%02X", msg.Sequence)
	}
	mask, err := DecodePadState(msg.Payload)
	if err != nil {
		t.Fatalf("DecodePadState failed: %v", err)
	}
	if mask != 0xFFEF {
		t.Errorf("Expected mask 0xFFEF, got 0x%04X", mask)
	}

	if _, ok := dec.Next(); ok {
		t.Error("Expected no further messages")
	}
}

func TestDecoderSplitDelivery(t *testing.T) {
	dec := NewDecoder(64)
	frame := EncodePadState(0x10, 0x1234)

	dec.Write(frame[:3])
	if _, ok := dec.Next(); ok {
		t.Fatal("Partial frame must not decode")
	}
	dec.Write(frame[3:])
	if _, ok := dec.Next(); !ok {
		t.Fatal("Completed frame should decode")
	}
}

func TestDecoderResyncAfterCorruption(t *testing.T) {
	dec := NewDecoder(64)

	bad := EncodePadState(0x11, 0x0000)
	bad[3] ^= 0xFF // corrupt payload, CRC no longer matches

	dec.Write([]byte{0x00, 0x42}) // line noise
	dec.Write(bad)
	dec.Write(EncodePadState(0x12, 0xFFFE))

	msg, ok := dec.Next()
	if !ok {
		t.Fatal("Expected decoder to recover")
	}
	if msg.Sequence != 0x12 {
		t.Errorf("Expected sequence 0x12, got 0x%02X", msg.Sequence)
	}
	if dec.Errors == 0 {
		t.Error("Expected corruption to be counted")
	}
}

func TestDecodePadStateRejectsOtherPayloads(t *testing.T) {
	for _, payload := range [][]byte{
		{CmdPollPad},
		{RespPadState, 0xFF},
		{0x55, 0xFF, 0xFF},
	} {
		if _, err := DecodePadState(payload); err != ErrUnexpectedReply {
			t.Errorf("DecodePadState(% X): expected ErrUnexpectedReply, got %v", payload, err)
		}
	}
}

func TestNextSeqWraps(t *testing.T) {
	if got := NextSeq(0x1F); got != 0x10 {
		t.Errorf("NextSeq(0x1F) = 0x%02X, expected 0x10", got)
	}
	if got := NextSeq(0x10); got != 0x11 {
		t.Errorf("NextSeq(0x10) = 0x%02X, expected 0x11", got)
	}
}
