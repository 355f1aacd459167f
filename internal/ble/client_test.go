package ble

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/gocube_animator/internal/protocol"
)

func TestIsGoCube(t *testing.T) {
	tests := map[string]bool{
		"GoCube_1A2B": true,
		"gocubeedge":  true,
		"Rubiks":      false,
		"":            false,
	}
	for name, want := range tests {
		if got := IsGoCube(name); got != want {
			t.Errorf("IsGoCube(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestPick(t *testing.T) {
	results := []ScanResult{
		{Name: "GoCube_A", UUID: "aa"},
		{Name: "GoCube_B", UUID: "bb"},
	}

	if r, err := Pick(results, ""); err != nil || r.UUID != "aa" {
		t.Errorf("Pick(first) = %+v, %v", r, err)
	}
	if r, err := Pick(results, "bb"); err != nil || r.Name != "GoCube_B" {
		t.Errorf("Pick(bb) = %+v, %v", r, err)
	}
	if _, err := Pick(results, "cc"); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Pick(cc) error = %v, want ErrDeviceNotFound", err)
	}
	if _, err := Pick(nil, ""); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Pick(nil) error = %v, want ErrDeviceNotFound", err)
	}
}

func TestRequireCharacteristics(t *testing.T) {
	if err := requireCharacteristics([]bluetooth.UUID{rxCharUUID, txCharUUID}); err != nil {
		t.Errorf("both characteristics: %v", err)
	}
	for name, found := range map[string][]bluetooth.UUID{
		"none":    nil,
		"tx only": {txCharUUID},
		"rx only": {rxCharUUID},
	} {
		if err := requireCharacteristics(found); !errors.Is(err, ErrServiceNotFound) {
			t.Errorf("%s: error = %v, want ErrServiceNotFound", name, err)
		}
	}
}

func TestHandleNotification(t *testing.T) {
	c := &Client{
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		battery: -1,
	}
	var got []byte
	c.SetMessageCallback(func(msg *protocol.Message) {
		got = append(got, msg.Type)
	})

	c.handleNotification(protocol.Frame(protocol.MsgTypeBattery, []byte{64}))
	c.handleNotification(protocol.Frame(protocol.MsgTypeCubeType, []byte{0x01}))
	c.handleNotification([]byte{0x00, 0x01})

	if c.Battery() != 64 {
		t.Errorf("Battery() = %d, want 64", c.Battery())
	}
	if len(got) != 2 || got[0] != protocol.MsgTypeBattery || got[1] != protocol.MsgTypeCubeType {
		t.Errorf("callback saw types % X, want battery then cube type", got)
	}
}

func TestSendCommandRequiresConnection(t *testing.T) {
	c := &Client{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	if err := c.FlashBacklight(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("FlashBacklight() = %v, want ErrNotConnected", err)
	}
}
