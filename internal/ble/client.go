// Package ble talks to a GoCube smart cube over Bluetooth Low Energy.
package ble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/gocube_animator/internal/protocol"
)

// Errors
var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrServiceNotFound  = errors.New("ble: GoCube service not found")
)

var (
	serviceUUID = mustParseUUID(protocol.ServiceUUID)
	txCharUUID  = mustParseUUID(protocol.TxCharUUID)
	rxCharUUID  = mustParseUUID(protocol.RxCharUUID)
)

func mustParseUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(fmt.Sprintf("ble: bad uuid %q: %v", s, err))
	}
	return u
}

// ScanResult is a discovered GoCube.
type ScanResult struct {
	Name    string
	UUID    string
	RSSI    int16
	Address bluetooth.Address
}

// Client holds one connection to a GoCube.
// Notifications arrive on a Bluetooth goroutine; the message callback runs
// there and must hand messages off rather than touch host state.
type Client struct {
	adapter *bluetooth.Adapter
	device  bluetooth.Device
	rxChar  bluetooth.DeviceCharacteristic
	log     *slog.Logger

	mu         sync.RWMutex
	connected  bool
	deviceName string
	deviceUUID string
	battery    int

	onMessage func(*protocol.Message)
}

// NewClient enables the default adapter.
func NewClient(log *slog.Logger) (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}
	return &Client{
		adapter: adapter,
		log:     log,
		battery: -1,
	}, nil
}

// SetMessageCallback sets the callback for incoming messages.
func (c *Client) SetMessageCallback(cb func(*protocol.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = cb
}

// Scan lists GoCubes seen before timeout or ctx ends.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
		done    = make(chan error, 1)
	)

	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			name := r.LocalName()
			addr := r.Address.String()

			mu.Lock()
			defer mu.Unlock()
			if seen[addr] || !IsGoCube(name) {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{Name: name, UUID: addr, RSSI: r.RSSI, Address: r.Address})
			c.log.Debug("ble.discovered", "name", name, "uuid", addr, "rssi", r.RSSI)
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}
	if err := c.adapter.StopScan(); err != nil {
		c.log.Warn("ble.stop_scan", "error", err)
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return results, nil
}

// IsGoCube reports whether an advertised name belongs to a GoCube.
func IsGoCube(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "gocube")
}

// Pick returns the result whose UUID is want, or the first result when want
// is empty.
func Pick(results []ScanResult, want string) (ScanResult, error) {
	for _, r := range results {
		if want == "" || r.UUID == want {
			return r, nil
		}
	}
	return ScanResult{}, ErrDeviceNotFound
}

// ConnectToResult connects to a scanned device and subscribes to its
// notifications.
func (c *Client) ConnectToResult(ctx context.Context, result ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	device, err := c.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	rx, err := c.subscribe(device)
	if err != nil {
		device.Disconnect()
		return err
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rx
	c.connected = true
	c.deviceName = result.Name
	c.deviceUUID = result.UUID
	c.mu.Unlock()

	c.log.Info("ble.connected", "name", result.Name, "uuid", result.UUID)

	// Orientation updates stream continuously and carry no turns.
	for _, cmd := range []byte{protocol.CmdDisableOrientation, protocol.CmdRequestBattery, protocol.CmdRequestCubeType} {
		if err := c.SendCommand(cmd); err != nil {
			c.log.Warn("ble.command_failed", "command", fmt.Sprintf("0x%02X", cmd), "error", err)
		}
	}
	return nil
}

func (c *Client) subscribe(device bluetooth.Device) (bluetooth.DeviceCharacteristic, error) {
	var rx bluetooth.DeviceCharacteristic

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		return rx, fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		return rx, ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		return rx, fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var tx bluetooth.DeviceCharacteristic
	found := make([]bluetooth.UUID, 0, len(chars))
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			tx = ch
		case rxCharUUID:
			rx = ch
		}
		found = append(found, ch.UUID())
	}
	if err := requireCharacteristics(found); err != nil {
		return rx, err
	}

	if err := tx.EnableNotifications(c.handleNotification); err != nil {
		return rx, fmt.Errorf("failed to enable notifications: %w", err)
	}
	return rx, nil
}

// requireCharacteristics fails unless both the notify and the write
// characteristic were discovered.
func requireCharacteristics(found []bluetooth.UUID) error {
	for _, want := range []bluetooth.UUID{txCharUUID, rxCharUUID} {
		if !slices.Contains(found, want) {
			return fmt.Errorf("%w: characteristic %s missing", ErrServiceNotFound, want.String())
		}
	}
	return nil
}

// Disconnect drops the connection. It is a no-op when not connected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.deviceUUID = ""
	c.battery = -1
	c.log.Info("ble.disconnected")
	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// Battery returns the last known battery level (-1 if unknown).
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a command to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := protocol.BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		_, err = c.rxChar.Write(data)
		return err
	}
	return nil
}

// FlashBacklight flashes the cube backlight three times.
func (c *Client) FlashBacklight() error {
	return c.SendCommand(protocol.CmdFlashBacklight)
}

func (c *Client) handleNotification(data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		c.log.Debug("ble.bad_frame", "error", err, "len", len(data))
		return
	}

	switch msg.Type {
	case protocol.MsgTypeBattery:
		if b, err := protocol.DecodeBattery(msg.Payload); err == nil {
			c.mu.Lock()
			c.battery = b.Level
			c.mu.Unlock()
		}
	case protocol.MsgTypeCubeType:
		if ct, err := protocol.DecodeCubeType(msg.Payload); err == nil {
			c.log.Info("ble.cube_type", "type", ct.TypeName, "code", ct.TypeCode)
		}
	}

	c.mu.RLock()
	cb := c.onMessage
	c.mu.RUnlock()

	if cb != nil {
		cb(msg)
	}
}
