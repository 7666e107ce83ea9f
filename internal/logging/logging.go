// Package logging builds the charmbracelet/log logger. Output goes to a file
// because stdout belongs to the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	Prefix          string
	Path            string
}

func DefaultOptions() Options {
	return Options{
		Level:           log.InfoLevel,
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
		Prefix:          "taskmini",
	}
}

func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// Open appends to opts.Path, creating parent directories. An empty path
// discards output. The returned closer must be closed on exit.
func Open(opts Options) (*log.Logger, io.Closer, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return New(io.Discard, opts), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, opts), f, nil
}
