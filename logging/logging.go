// Package logging provides structured logger construction for the simulation engine
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/surfacelab/kpzsim/config"
)

// Levels for the configured names that slog does not define itself.
const (
	LevelTrace = slog.LevelDebug - 4
	LevelFatal = slog.LevelError + 4
)

// ParseLevel maps a configured log level onto a slog level.
func ParseLevel(level config.LogLevel) (slog.Level, error) {
	switch level {
	case config.LogLevelTrace:
		return LevelTrace, nil
	case config.LogLevelDebug:
		return slog.LevelDebug, nil
	case config.LogLevelInfo:
		return slog.LevelInfo, nil
	case config.LogLevelWarn:
		return slog.LevelWarn, nil
	case config.LogLevelError:
		return slog.LevelError, nil
	case config.LogLevelFatal:
		return LevelFatal, nil
	default:
		return 0, fmt.Errorf("%w: %q", config.ErrInvalidLogLevel, level)
	}
}

// New builds a logger from the configuration. Output selects stdout,
// stderr or a file path; files are opened for appending and stay open
// for the life of the process.
func New(cfg config.LogConfig) (*slog.Logger, error) {
	var w io.Writer
	switch cfg.Output {
	case "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	case "":
		return nil, config.ErrInvalidLogOutput
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log output: %w", err)
		}
		w = f
	}
	return NewWithWriter(cfg, w)
}

// NewWithWriter builds a logger from the configuration writing to w.
func NewWithWriter(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidLogFormat, cfg.Format)
	}

	logger := slog.New(handler)

	// Attach the configured fields in a stable order.
	if len(cfg.Fields) > 0 {
		keys := make([]string, 0, len(cfg.Fields))
		for k := range cfg.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		args := make([]any, 0, 2*len(keys))
		for _, k := range keys {
			args = append(args, k, cfg.Fields[k])
		}
		logger = logger.With(args...)
	}

	return logger, nil
}
