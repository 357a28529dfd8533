package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a slog.Logger writing to stdout. format is "json" or "text".
func New(format string) *slog.Logger {
	return NewWithWriter(os.Stdout, format)
}

func NewWithWriter(w io.Writer, format string) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard is used by tests and by callers that pass no logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
