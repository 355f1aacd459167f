package protocol

import "fmt"

// Color is the center color of the face a rotation turned.
type Color string

const (
	Blue   Color = "blue"
	Green  Color = "green"
	White  Color = "white"
	Yellow Color = "yellow"
	Red    Color = "red"
	Orange Color = "orange"
)

// Face codes divide by two into this order.
var colorByIndex = [...]Color{Blue, Green, White, Yellow, Red, Orange}

// RotationEvent is one face turn reported by the cube.
type RotationEvent struct {
	FaceCode          byte // 0x00-0x0B: even clockwise, odd counter-clockwise
	CenterOrientation byte
	Clockwise         bool // As seen looking at the turned face
	Color             Color
}

// BatteryEvent is a battery level notification.
type BatteryEvent struct {
	Level int // 0-100
}

// CubeTypeEvent identifies the cube model.
type CubeTypeEvent struct {
	TypeCode byte
	TypeName string
}

// DecodeRotation decodes a rotation payload of [face code, center] pairs.
// A single notification may carry several turns.
func DecodeRotation(payload []byte) ([]RotationEvent, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("rotation payload must have even length, got %d", len(payload))
	}

	events := make([]RotationEvent, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		idx := int(code / 2)
		if idx >= len(colorByIndex) {
			return nil, fmt.Errorf("unknown face code 0x%02X", code)
		}
		events = append(events, RotationEvent{
			FaceCode:          code,
			CenterOrientation: payload[i+1],
			Clockwise:         code%2 == 0,
			Color:             colorByIndex[idx],
		})
	}
	return events, nil
}

// DecodeBattery decodes a battery payload.
func DecodeBattery(payload []byte) (*BatteryEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("battery payload too short")
	}
	return &BatteryEvent{Level: int(payload[0])}, nil
}

// DecodeCubeType decodes a cube type payload.
func DecodeCubeType(payload []byte) (*CubeTypeEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("cube type payload too short")
	}
	name := "standard"
	if payload[0] == 0x01 {
		name = "edge"
	}
	return &CubeTypeEvent{TypeCode: payload[0], TypeName: name}, nil
}
