package app

import (
	"fmt"
	"io"
	"log/slog"
)

// newLogger builds the logger of one run. It does not set the global
// logger, and every record it emits carries runID. An empty level or format
// means info and text.
func newLogger(levelStr, formatStr, runID string, outW io.Writer) (*slog.Logger, error) {
	level := slog.LevelInfo
	if levelStr != "" {
		if err := level.UnmarshalText([]byte(levelStr)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelStr, err)
		}
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch formatStr {
	case "json":
		handler = slog.NewJSONHandler(outW, handlerOpts)
	case "text", "":
		handler = slog.NewTextHandler(outW, handlerOpts)
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", formatStr)
	}

	return slog.New(handler).With("run_id", runID), nil
}
