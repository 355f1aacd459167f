package cli

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	gocube "github.com/SeamusWaldron/gocube_animator"
	"github.com/SeamusWaldron/gocube_animator/internal/config"
	"github.com/SeamusWaldron/gocube_animator/internal/device"
	"github.com/SeamusWaldron/gocube_animator/internal/logger"
	"github.com/SeamusWaldron/gocube_animator/internal/render"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Turn the cube interactively",
	Long: `Open the animated cube in the terminal.

Each face key turns its layer a quarter turn clockwise; hold shift (type the
capital letter) to turn it counter-clockwise. Keys pressed while a layer is
turning are queued and played in order.

With --device, turns of a connected GoCube smart cube are animated as well.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var (
	playKeyMap   string
	playDuration time.Duration
	playDevice   bool
	playStrict   bool
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVarP(&playKeyMap, "keymap", "k", "", "Key map: notation or wasd (default from config)")
	playCmd.Flags().DurationVarP(&playDuration, "duration", "d", 0, "Quarter turn duration (default from config)")
	playCmd.Flags().BoolVar(&playDevice, "device", false, "Also take moves from a GoCube smart cube")
	playCmd.Flags().BoolVar(&playStrict, "strict", false, "Panic on invariant violations")
}

// applyPlayFlags overrides config values with flags the user set.
func applyPlayFlags(cmd *cobra.Command, c *config.Config) error {
	if cmd.Flags().Changed("keymap") {
		c.Input.KeyMap = playKeyMap
	}
	if cmd.Flags().Changed("duration") {
		c.Animation.Duration = playDuration
	}
	if cmd.Flags().Changed("strict") {
		c.Strict = playStrict
	}
	return c.Validate()
}

func runPlay(cmd *cobra.Command, args []string) error {
	if err := applyPlayFlags(cmd, cfg); err != nil {
		return err
	}

	model := newPlayModel(cfg, playDevice)
	defer model.closeSource()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("play error: %w", err)
	}

	fmt.Printf("Applied %d moves.\n", model.engine.Applied())
	if path := logger.Path(); path != "" {
		fmt.Printf("Log saved to: %s\n", path)
	}
	return nil
}

// moveSource is a smart cube connection as seen by the host loop.
type moveSource interface {
	Moves() <-chan gocube.Move
	Name() string
	Battery() int
	Close() error
}

// Messages
type (
	frameMsg       time.Time
	deviceMoveMsg  gocube.Move
	deviceReadyMsg struct{ source moveSource }
	deviceErrMsg   struct{ err error }
)

// playModel is the bubbletea host. Update is the only goroutine that
// touches the engine: keys and device moves enqueue, frames advance.
type playModel struct {
	engine *gocube.Engine
	keys   gocube.KeyMap

	// A frame tick is in flight. Ticks only run while the engine is busy,
	// and never more than one at a time.
	ticking bool

	useDevice  bool
	deviceCfg  device.Config
	source     moveSource
	connecting bool

	lastViolation string
	err           error
	quitting      bool
}

func newPlayModel(c *config.Config, useDevice bool) *playModel {
	opts := append(c.EngineOptions(), gocube.WithLogger(logger.L()))
	m := &playModel{
		engine:     gocube.New(opts...),
		keys:       c.KeyMap(),
		useDevice:  useDevice,
		connecting: useDevice,
		deviceCfg: device.Config{
			ScanTimeout: c.Device.ScanTimeout,
			UUID:        c.Device.UUID,
		},
	}
	m.engine.OnInvariantViolation(func(mv gocube.Move, err error) {
		m.lastViolation = fmt.Sprintf("skipped %s: %v", mv, err)
	})
	return m
}

// closeSource disconnects the smart cube, if one was connected.
func (m *playModel) closeSource() {
	if m.source == nil {
		return
	}
	if err := m.source.Close(); err != nil {
		logger.L().Warn("device.close_failed", "error", err)
	}
	m.source = nil
}

func (m *playModel) Init() tea.Cmd {
	if m.useDevice {
		return m.connectDevice()
	}
	return nil
}

func (m *playModel) connectDevice() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.deviceCfg.ScanTimeout+10*time.Second)
		defer cancel()
		src, err := device.Open(ctx, m.deviceCfg, logger.L())
		if err != nil {
			return deviceErrMsg{err: err}
		}
		return deviceReadyMsg{source: src}
	}
}

// listenForMoves waits for the next move from the smart cube.
func (m *playModel) listenForMoves() tea.Cmd {
	moves := m.source.Moves()
	return func() tea.Msg {
		return deviceMoveMsg(<-moves)
	}
}

func (m *playModel) tick() tea.Cmd {
	return tea.Tick(m.engine.FrameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// startTicking schedules a frame unless one is already scheduled.
func (m *playModel) startTicking() tea.Cmd {
	if m.ticking || m.engine.Idle() {
		return nil
	}
	m.ticking = true
	return m.tick()
}

func (m *playModel) enqueue(mv gocube.Move) tea.Cmd {
	if err := m.engine.Enqueue(mv); err != nil {
		m.err = err
		return nil
	}
	return m.startTicking()
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "ctrl+r":
			if err := m.engine.Reset(); err != nil {
				m.err = err
			} else {
				m.err = nil
				m.lastViolation = ""
			}
			return m, nil
		}
		if mv, ok := lookupKey(m.keys, msg); ok {
			return m, m.enqueue(mv)
		}
		return m, nil

	case frameMsg:
		m.ticking = false
		if err := m.engine.Advance(time.Time(msg)); err != nil {
			m.err = err
		}
		return m, m.startTicking()

	case deviceReadyMsg:
		m.connecting = false
		m.source = msg.source
		return m, m.listenForMoves()

	case deviceErrMsg:
		m.connecting = false
		m.err = fmt.Errorf("smart cube: %w", msg.err)
		return m, nil

	case deviceMoveMsg:
		return m, tea.Batch(m.enqueue(gocube.Move(msg)), m.listenForMoves())
	}
	return m, nil
}

// lookupKey maps a single typed character to a move. A capital letter is
// the shifted key.
func lookupKey(keys gocube.KeyMap, msg tea.KeyMsg) (gocube.Move, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 || msg.Alt {
		return gocube.Move{}, false
	}
	r := msg.Runes[0]
	return keys.Lookup(string(r), unicode.IsUpper(r))
}

func (m *playModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(render.TitleStyle.Render("GoCube Animator"))
	b.WriteString("\n\n")

	if m.useDevice {
		switch {
		case m.source != nil:
			status := fmt.Sprintf("Connected: %s", m.source.Name())
			if battery := m.source.Battery(); battery >= 0 {
				status += fmt.Sprintf(" (Battery: %d%%)", battery)
			}
			b.WriteString(render.StatusStyle.Render(status))
		case m.connecting:
			b.WriteString(render.StatusStyle.Render("Connecting to smart cube..."))
		default:
			b.WriteString(render.ErrorStyle.Render("No smart cube"))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(render.Capture(m.engine).View())

	if m.lastViolation != "" {
		b.WriteString(render.ErrorStyle.Render(m.lastViolation))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(render.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := fmt.Sprintf("Keys: %s (shift = counter-clockwise)  ctrl+r=reset  esc=quit",
		strings.Join(m.keys.Bindings(), " "))
	b.WriteString(render.HelpStyle.Render(help))
	b.WriteString("\n")
	return b.String()
}
