package gocube

import (
	"io"
	"log/slog"
	"time"
)

const (
	DefaultDuration  = 300 * time.Millisecond // Length of one quarter turn
	DefaultFrameRate = 60                     // Frames per second for headless hosts
	MaxFrameRate     = 1000                   // Highest rate a frame interval is derived from
)

// Option configures Engine behavior.
type Option func(*config)

type config struct {
	duration  time.Duration
	frameRate int
	spacing   float64
	clock     Clock
	logger    *slog.Logger
	strict    bool
}

func defaultConfig() *config {
	return &config{
		duration:  DefaultDuration,
		frameRate: DefaultFrameRate,
		spacing:   DefaultSpacing,
		clock:     SystemClock{},
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		strict:    false,
	}
}

// WithDuration sets how long one quarter turn takes.
// Zero makes every move complete on the next frame.
func WithDuration(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.duration = d
		}
	}
}

// WithFrameRate sets the frame rate used by Drain.
// Interactive hosts drive frames themselves and ignore it.
// Rates outside 1..MaxFrameRate are ignored.
func WithFrameRate(fps int) Option {
	return func(c *config) {
		if fps > 0 && fps <= MaxFrameRate {
			c.frameRate = fps
		}
	}
}

// WithSpacing sets the distance between cubelet centers (cubelet size plus gap).
func WithSpacing(spacing float64) Option {
	return func(c *config) {
		if spacing > 0 {
			c.spacing = spacing
		}
	}
}

// WithClock sets the time source used when a move starts outside a frame.
func WithClock(clock Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStrict makes invariant violations panic instead of skipping the move.
// Enable it in development and tests.
func WithStrict(enabled bool) Option {
	return func(c *config) {
		c.strict = enabled
	}
}
