package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the handler and level for New.
type Options struct {
	Level  slog.Level
	Format string // "text" or "json"
	Output io.Writer
}

// New returns a structured logger writing to Output (stdout when nil).
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything. Tests use it when log output is noise.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
