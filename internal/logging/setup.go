package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Options selects log verbosity and an optional JSON log file.
type Options struct {
	Verbose bool
	Quiet   bool
	LogFile string
	Stderr  io.Writer
}

// Level returns the stderr level implied by the verbosity flags.
func (o Options) Level() slog.Level {
	switch {
	case o.Verbose:
		return slog.LevelDebug
	case o.Quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger writing text to stderr and, when LogFile is set,
// JSON at debug level to that file. The returned closer releases the file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	textHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: opts.Level(),
	})
	if opts.LogFile == "" {
		return slog.New(textHandler), nopCloser{}, nil
	}

	lf, err := os.Create(opts.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return slog.New(NewMultiHandler(textHandler, jsonHandler)), lf, nil
}
