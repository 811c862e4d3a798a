// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the log level and destination.
type Options struct {
	// Debug lowers the level from Warn to Debug.
	Debug bool

	// File, when set, receives logs through a size-rotated writer.
	File string
}

// New returns a text logger writing to stderr, or to a rotated file when
// opts.File is set. The returned closer releases the file.
func New(opts Options, stderr io.Writer) (*slog.Logger, io.Closer) {
	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	}

	var w io.Writer = stderr
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		w, closer = lj, lj
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
