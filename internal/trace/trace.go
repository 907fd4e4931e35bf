// Package trace writes verbose diagnostics to stderr.
package trace

import (
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	prefix      = "[dummy] "
	colorPrefix = "\x1b[36m[dummy]\x1b[0m "
)

// Logger prints trace lines when enabled. A nil *Logger discards everything.
type Logger struct {
	l *log.Logger
}

// New returns a logger writing to w, or nil when disabled.
func New(w io.Writer, enabled bool) *Logger {
	if !enabled {
		return nil
	}
	p := prefix
	if f, ok := w.(*os.File); ok && useColor(f) {
		p = colorPrefix
	}
	return &Logger{l: log.New(w, p, 0)}
}

// Stderr returns a logger writing to os.Stderr, or nil when disabled.
func Stderr(enabled bool) *Logger {
	return New(os.Stderr, enabled)
}

// useColor honors the NO_COLOR convention: https://no-color.org/
func useColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Enabled reports whether lines are printed.
func (l *Logger) Enabled() bool { return l != nil }

// Printf prints one trace line.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	l.l.Printf(format, args...)
}
