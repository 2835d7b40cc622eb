// Package logging sets up the diagnostic channel.
//
// The terminal is owned by the chat surface, so diagnostics go to a rotating
// log file rather than stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the diagnostic logger
type Options struct {
	// File is the log path. Empty disables logging.
	File string
	// Verbose enables debug level
	Verbose bool
	// MaxSizeMB rotates the file after this many megabytes
	MaxSizeMB int
	// MaxBackups keeps this many rotated files
	MaxBackups int
}

// New returns a logger writing JSON lines to opts.File, and a closer for the
// underlying file. When the file cannot be prepared it falls back to a no-op
// logger and returns the error.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	if opts.File == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o700); err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 5
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 3
	}

	writer := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}

	return NewWithWriter(writer, opts.Verbose), writer, nil
}

// NewWithWriter returns a logger writing JSON lines to w
func NewWithWriter(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
