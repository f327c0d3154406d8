package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/san-kum/algoviz/internal/config"
)

const (
	levelDebug = slog.LevelDebug
	levelInfo  = slog.LevelInfo
)

func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level := levelInfo
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	case "", "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		return nil, fmt.Errorf("log format %q: want text or json", cfg.Format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

// openLogger logs to --log-file when set, stderr otherwise.
func openLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	if logFile == "" {
		logger, err := newLogger(cfg, os.Stderr)
		return logger, func() {}, err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg, f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}
