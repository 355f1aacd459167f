// Package logger writes structured JSON logs to a file.
// The terminal belongs to the TUI, so nothing is ever logged to stdout.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config selects where logs go and how much is written.
type Config struct {
	Path  string // Log file; empty selects DefaultPath()
	Debug bool
}

var (
	mu      sync.RWMutex
	global  = discard()
	logFile *os.File
	logPath string
)

// DefaultPath returns ~/.gocube_animator/logs/gocube.log.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".gocube_animator", "logs", "gocube.log")
}

// Setup opens the log file and installs a JSON logger as the global logger.
// The returned cleanup closes the file and restores the discard logger.
func Setup(cfg Config) (func() error, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		setDiscard()
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		setDiscard()
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.Debug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	})

	mu.Lock()
	global = slog.New(h)
	logFile = f
	logPath = path
	mu.Unlock()

	L().Info("logger.initialized", "path", path, "debug", cfg.Debug)

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}
		logFile = nil
		logPath = ""
		global = discard()
		return cerr
	}
	return cleanup, nil
}

// L returns the global logger. Before Setup it discards everything.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Path returns the open log file path, or "".
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

// IsReady reports whether Setup succeeded and the file is still open.
func IsReady() error {
	mu.RLock()
	defer mu.RUnlock()
	if logFile == nil {
		return errors.New("logger not initialized")
	}
	return nil
}

func setDiscard() {
	mu.Lock()
	defer mu.Unlock()
	global = discard()
	logFile = nil
	logPath = ""
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
