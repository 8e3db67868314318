// Package frame implements the OpenTherm 32-bit frame codec: assembly,
// parity, validity classification and the fixed-point numeric conversions.
// Every function here is pure — no shared state, safe to call from any
// goroutine or, on bare-metal targets, from interrupt context.
package frame

import "math/bits"

// Frame is a 32-bit OpenTherm word laid out MSB-first on the wire:
// bit 31 parity, bits 30-28 message type, bits 27-24 spare (zero),
// bits 23-16 data-ID, bits 15-0 data value.
type Frame uint32

// MessageType is the 3-bit type field carried in bits 30-28.
type MessageType uint8

// Message type encodings. Master-to-slave uses ReadData/WriteData/InvalidData;
// slave-to-master uses ReadAck/WriteAck/DataInvalid/UnknownDataID.
const (
	ReadData    MessageType = 0b000
	WriteData   MessageType = 0b001
	InvalidData MessageType = 0b010
	reserved    MessageType = 0b011

	ReadAck       MessageType = 0b100
	WriteAck      MessageType = 0b101
	DataInvalid   MessageType = 0b110
	UnknownDataID MessageType = 0b111
)

func (t MessageType) String() string {
	switch t {
	case ReadData:
		return "READ_DATA"
	case WriteData:
		return "WRITE_DATA"
	case InvalidData:
		return "INVALID_DATA"
	case ReadAck:
		return "READ_ACK"
	case WriteAck:
		return "WRITE_ACK"
	case DataInvalid:
		return "DATA_INVALID"
	case UnknownDataID:
		return "UNKNOWN_DATA_ID"
	default:
		return "RESERVED"
	}
}

// ID identifies a message's semantic meaning (the 8-bit data-ID field).
type ID uint8

const (
	shiftParity = 31
	shiftType   = 28
	shiftID     = 16
	maskType    = 0x7
	maskID      = 0xFF
	maskData    = 0xFFFF
	parityMask  = 0x7FFFFFFF
)

// Build assembles a request/response word from its type, data-ID and 16-bit
// data value, then sets the parity bit so the complete frame carries an odd
// number of set bits (see DESIGN.md for why this is the
// convention chosen over the original reference's inverted one).
func Build(t MessageType, id ID, data uint16) Frame {
	f := uint32(data) | uint32(id)<<shiftID | uint32(t&maskType)<<shiftType
	return withParity(f)
}

// BuildResponse is an alias for Build kept for symmetry with the spec's
// naming of a generic response builder; any 3-bit message type is accepted.
func BuildResponse(t MessageType, id ID, data uint16) Frame {
	return Build(t, id, data)
}

// withParity sets bit 31 so that the returned frame has odd total weight.
func withParity(f uint32) Frame {
	f &^= 1 << shiftParity
	if bits.OnesCount32(f&parityMask)&1 == 1 {
		return Frame(f)
	}
	return Frame(f | 1<<shiftParity)
}

// Parity reports whether the number of set bits in f is odd. A frame built
// by Build or BuildResponse always satisfies Parity(f) == true; a frame
// received with even weight has been corrupted on the wire.
func Parity(f Frame) bool {
	return bits.OnesCount32(uint32(f))&1 == 1
}

// Type extracts the 3-bit message type from bits 30-28.
func Type(f Frame) MessageType {
	return MessageType((uint32(f) >> shiftType) & maskType)
}

// DataID extracts the 8-bit data-ID from bits 23-16.
func DataID(f Frame) ID {
	return ID((uint32(f) >> shiftID) & maskID)
}

// ClassifyRequest reports whether f is a well-formed master-to-slave frame:
// odd parity and message type READ_DATA or WRITE_DATA.
func ClassifyRequest(f Frame) bool {
	if !Parity(f) {
		return false
	}
	t := Type(f)
	return t == ReadData || t == WriteData
}

// ClassifyResponse reports whether f is a well-formed slave-to-master frame:
// odd parity and message type READ_ACK or WRITE_ACK.
func ClassifyResponse(f Frame) bool {
	if !Parity(f) {
		return false
	}
	t := Type(f)
	return t == ReadAck || t == WriteAck
}

// GetUint returns the raw 16-bit data value (bits 15-0).
func GetUint(f Frame) uint16 {
	return uint16(uint32(f) & maskData)
}

// GetFloat interprets the 16-bit data value as signed Q8.8 fixed-point and
// returns the equivalent float32.
func GetFloat(f Frame) float32 {
	u := GetUint(f)
	if u&0x8000 != 0 {
		return -float32(0x10000-uint32(u)) / 256
	}
	return float32(u) / 256
}

// TempToData clamps t to [0, 100] and converts it to the Q8.8 payload used
// by temperature-setpoint messages, truncating toward zero.
func TempToData(t float32) uint16 {
	if t < 0 {
		t = 0
	}
	if t > 100 {
		t = 100
	}
	return uint16(t * 256)
}
