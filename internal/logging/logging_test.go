package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warning": log.WarnLevel,
		" warn ":  log.WarnLevel,
		"error":   log.ErrorLevel,
		"bogus":   log.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.ReportTimestamp = false
	logger := New(&buf, opts)
	logger.Warn("stored tasks are malformed", "key", "tasks_local")

	out := buf.String()
	if !strings.Contains(out, "key=tasks_local") || !strings.Contains(out, "prefix=taskmini") {
		t.Fatalf("unexpected log line: %q", out)
	}
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskmini.log")
	opts := DefaultOptions()
	opts.Path = path
	logger, closer, err := Open(opts)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	logger.Info("started")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "started") {
		t.Fatalf("expected log line in file, got %q", raw)
	}
}

func TestOpenWithoutPathDiscards(t *testing.T) {
	logger, closer, err := Open(DefaultOptions())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	logger.Info("nowhere")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
