package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

type runFunc func(ctx context.Context, name string, args ...string) error

func execRun(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// ExecDialogs shows native dialogs through zenity on linux and osascript on
// darwin.
type ExecDialogs struct {
	goos string
	run  runFunc
}

// DetectDialogs returns native dialogs when the platform tool is installed,
// or nil so the caller falls back to its own prompt.
func DetectDialogs() Dialogs {
	tool := dialogTool(runtime.GOOS)
	if tool == "" {
		return nil
	}
	if _, err := exec.LookPath(tool); err != nil {
		return nil
	}
	return ExecDialogs{goos: runtime.GOOS, run: execRun}
}

func dialogTool(goos string) string {
	switch goos {
	case "linux":
		return "zenity"
	case "darwin":
		return "osascript"
	default:
		return ""
	}
}

func (d ExecDialogs) Confirm(ctx context.Context, message string) (bool, error) {
	var err error
	switch d.goos {
	case "linux":
		err = d.run(ctx, "zenity", "--question", "--title=taskmini", "--text="+message)
	case "darwin":
		script := fmt.Sprintf(`display dialog "%s" buttons {"Cancel", "OK"} default button "OK"`, escapeAppleScript(message))
		err = d.run(ctx, "osascript", "-e", script)
	default:
		return false, ErrUnavailable
	}
	if err == nil {
		return true, nil
	}
	// Both tools exit non-zero when the user declines.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, err
}

func (d ExecDialogs) Alert(ctx context.Context, message string) error {
	var err error
	switch d.goos {
	case "linux":
		err = d.run(ctx, "zenity", "--info", "--title=taskmini", "--text="+message)
	case "darwin":
		script := fmt.Sprintf(`display alert "taskmini" message "%s"`, escapeAppleScript(message))
		err = d.run(ctx, "osascript", "-e", script)
	default:
		return ErrUnavailable
	}
	// Closing the alert with Esc or the window button is a non-zero exit,
	// not a failure.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// BellHaptics approximates haptic feedback with the terminal bell. Light
// impacts are too frequent to ring for and are skipped.
type BellHaptics struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBellHaptics(w io.Writer) *BellHaptics {
	return &BellHaptics{w: w}
}

func (b *BellHaptics) ImpactOccurred(style ImpactStyle) {
	if style == ImpactLight {
		return
	}
	b.ring()
}

func (b *BellHaptics) NotificationOccurred(NotificationType) {
	b.ring()
}

func (b *BellHaptics) ring() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.w == nil {
		return
	}
	_, _ = io.WriteString(b.w, "\a")
}
