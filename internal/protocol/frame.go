// Package protocol frames and decodes GoCube smart cube notifications.
//
// Every message, in both directions, is framed as
//
//	[0x2A] [length] [type] [payload...] [checksum] [0x0D 0x0A]
//
// where length counts the bytes after itself and checksum is the byte sum of
// everything before it.
package protocol

import (
	"errors"
	"fmt"
)

// GoCube BLE service and characteristic UUIDs.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // Notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // Write
)

// Message types sent by the cube.
const (
	MsgTypeRotation    byte = 0x01
	MsgTypeState       byte = 0x02
	MsgTypeOrientation byte = 0x03
	MsgTypeBattery     byte = 0x05
	MsgTypeCubeType    byte = 0x08
)

// Commands written to the RX characteristic.
const (
	CmdRequestBattery     byte = 0x32
	CmdDisableOrientation byte = 0x37
	CmdFlashBacklight     byte = 0x41
	CmdRequestCubeType    byte = 0x56
)

const (
	framePrefix  byte = 0x2A // '*'
	frameSuffix1 byte = 0x0D // CR
	frameSuffix2 byte = 0x0A // LF
	minFrameLen       = 6
)

var (
	ErrInvalidPrefix   = errors.New("protocol: invalid message prefix")
	ErrInvalidSuffix   = errors.New("protocol: invalid message suffix")
	ErrInvalidChecksum = errors.New("protocol: invalid checksum")
	ErrMessageTooShort = errors.New("protocol: message too short")
	ErrInvalidLength   = errors.New("protocol: invalid message length")
)

// Message is one unframed notification.
type Message struct {
	Type    byte
	Payload []byte
}

// ParseMessage checks the framing of a raw notification and returns its
// type and payload. Bytes after the frame are ignored.
func ParseMessage(data []byte) (*Message, error) {
	if len(data) < minFrameLen {
		return nil, ErrMessageTooShort
	}
	if data[0] != framePrefix {
		return nil, ErrInvalidPrefix
	}

	length := int(data[1])
	total := 2 + length
	if length < minFrameLen-2 || len(data) < total {
		return nil, fmt.Errorf("%w: frame declares %d bytes, got %d", ErrInvalidLength, total, len(data))
	}
	if data[total-2] != frameSuffix1 || data[total-1] != frameSuffix2 {
		return nil, ErrInvalidSuffix
	}

	sumIdx := total - 3
	if got := checksum(data[:sumIdx]); got != data[sumIdx] {
		return nil, fmt.Errorf("%w: frame says 0x%02X, computed 0x%02X", ErrInvalidChecksum, data[sumIdx], got)
	}

	payload := make([]byte, sumIdx-3)
	copy(payload, data[3:sumIdx])
	return &Message{Type: data[2], Payload: payload}, nil
}

// BuildCommand frames a command for the RX characteristic.
// The cube expects a length byte of 1 on commands, not the notification length.
func BuildCommand(cmd byte) []byte {
	const length byte = 0x01
	return []byte{framePrefix, length, cmd, framePrefix + length + cmd, frameSuffix1, frameSuffix2}
}

// Frame wraps a message type and payload the way the cube frames notifications.
func Frame(msgType byte, payload []byte) []byte {
	out := make([]byte, 0, len(payload)+6)
	out = append(out, framePrefix, byte(len(payload)+4), msgType)
	out = append(out, payload...)
	out = append(out, checksum(out), frameSuffix1, frameSuffix2)
	return out
}

func checksum(b []byte) byte {
	var sum byte
	for _, v := range b {
		sum += v
	}
	return sum
}

// MessageTypeName returns a readable name for a message type.
func MessageTypeName(t byte) string {
	switch t {
	case MsgTypeRotation:
		return "rotation"
	case MsgTypeState:
		return "state"
	case MsgTypeOrientation:
		return "orientation"
	case MsgTypeBattery:
		return "battery"
	case MsgTypeCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", t)
	}
}
