// Package device turns a GoCube smart cube into a move source.
package device

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	gocube "github.com/SeamusWaldron/gocube_animator"
	"github.com/SeamusWaldron/gocube_animator/internal/ble"
	"github.com/SeamusWaldron/gocube_animator/internal/protocol"
)

// colorMoves maps a center color to its layer, assuming white on top and
// green in front.
var colorMoves = map[protocol.Color]gocube.Move{
	protocol.White:  gocube.U,
	protocol.Yellow: gocube.D,
	protocol.Green:  gocube.F,
	protocol.Blue:   gocube.B,
	protocol.Red:    gocube.R,
	protocol.Orange: gocube.L,
}

// MoveFor converts a reported face turn into a move.
//
// The cube reports direction as seen looking at the turned face, while a
// Move is judged from the positive end of its axis. The two agree on U, R
// and F and are opposite on D, L and B.
func MoveFor(ev protocol.RotationEvent) (gocube.Move, error) {
	m, ok := colorMoves[ev.Color]
	if !ok {
		return gocube.Move{}, fmt.Errorf("%w: face color %q", gocube.ErrInvalidMove, ev.Color)
	}
	m.Clockwise = ev.Clockwise
	if m.Layer < 0 {
		m.Clockwise = !ev.Clockwise
	}
	return m, nil
}

// Moves returns the moves carried by msg. Messages other than rotations
// carry none.
func Moves(msg *protocol.Message) ([]gocube.Move, error) {
	if msg.Type != protocol.MsgTypeRotation {
		return nil, nil
	}
	events, err := protocol.DecodeRotation(msg.Payload)
	if err != nil {
		return nil, err
	}
	moves := make([]gocube.Move, 0, len(events))
	for _, ev := range events {
		m, err := MoveFor(ev)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// Config selects which cube to connect to.
type Config struct {
	ScanTimeout time.Duration
	UUID        string // Empty picks the first GoCube found
}

// Source is a connected smart cube delivering moves on a channel.
// The channel is read by the host loop, which is the only caller of Enqueue.
//
// Decoded moves wait in an unbounded backlog, so the Bluetooth goroutine
// never blocks and no move is dropped however far the host falls behind.
type Source struct {
	client *ble.Client
	log    *slog.Logger
	moves  chan gocube.Move

	mu      sync.Mutex
	backlog []gocube.Move
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once
}

func newSource(client *ble.Client, log *slog.Logger) *Source {
	s := &Source{
		client: client,
		log:    log,
		moves:  make(chan gocube.Move),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go s.pump()
	return s
}

// Open scans for a GoCube, connects and starts decoding rotations.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (*Source, error) {
	client, err := ble.NewClient(log)
	if err != nil {
		return nil, fmt.Errorf("BLE not available: %w", err)
	}

	results, err := client.Scan(ctx, cfg.ScanTimeout)
	if err != nil {
		return nil, err
	}
	target, err := ble.Pick(results, cfg.UUID)
	if err != nil {
		return nil, err
	}

	s := newSource(client, log.With("device", target.Name))
	client.SetMessageCallback(s.handle)

	if err := client.ConnectToResult(ctx, target); err != nil {
		s.stop()
		return nil, err
	}
	if err := client.FlashBacklight(); err != nil {
		s.log.Warn("device.flash_failed", "error", err)
	}
	return s, nil
}

// handle runs on the Bluetooth goroutine.
func (s *Source) handle(msg *protocol.Message) {
	moves, err := Moves(msg)
	if err != nil {
		s.log.Warn("device.decode_failed", "type", protocol.MessageTypeName(msg.Type), "error", err)
		return
	}
	if len(moves) == 0 {
		return
	}

	s.mu.Lock()
	s.backlog = append(s.backlog, moves...)
	pending := len(s.backlog)
	s.mu.Unlock()

	for _, m := range moves {
		s.log.Debug("device.move", "move", m.String(), "pending", pending)
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// pump forwards the backlog to the moves channel in order.
func (s *Source) pump() {
	for {
		select {
		case <-s.wake:
		case <-s.done:
			return
		}
		for {
			s.mu.Lock()
			if len(s.backlog) == 0 {
				s.mu.Unlock()
				break
			}
			m := s.backlog[0]
			s.backlog = s.backlog[1:]
			s.mu.Unlock()

			select {
			case s.moves <- m:
			case <-s.done:
				return
			}
		}
	}
}

func (s *Source) stop() {
	s.once.Do(func() { close(s.done) })
}

// Moves delivers decoded moves in the order the cube reported them.
func (s *Source) Moves() <-chan gocube.Move {
	return s.moves
}

// Name returns the connected device name.
func (s *Source) Name() string {
	return s.client.DeviceName()
}

// Battery returns the last reported battery level, or -1.
func (s *Source) Battery() int {
	return s.client.Battery()
}

// Close stops delivering moves and disconnects from the cube.
func (s *Source) Close() error {
	s.stop()
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect()
}
