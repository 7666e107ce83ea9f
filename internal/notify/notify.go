// Package notify shows one transient toast at a time. A new toast replaces
// the current one and restarts its dismiss timer.
package notify

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const DefaultDuration = 3 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

var kindColors = map[Kind]string{
	KindSuccess: "#4CAF50",
	KindError:   "#f44336",
	KindInfo:    "#2196F3",
	KindWarning: "#ff9800",
}

// Normalize maps unknown and empty kinds to KindInfo.
func (k Kind) Normalize() Kind {
	k = Kind(strings.ToLower(strings.TrimSpace(string(k))))
	if _, ok := kindColors[k]; ok {
		return k
	}
	return KindInfo
}

func (k Kind) Color() string {
	return kindColors[k.Normalize()]
}

type Toast struct {
	Message string
	Kind    Kind
	Seq     uint64
}

// DismissMsg is delivered when a toast's timer expires. Stale ones (from a
// toast that was since replaced) are ignored.
type DismissMsg struct {
	Seq uint64
}

type Center struct {
	duration time.Duration
	seq      uint64
	current  Toast
	visible  bool
}

func NewCenter(duration time.Duration) Center {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return Center{duration: duration}
}

func (c *Center) Show(message string, kind Kind) tea.Cmd {
	if c.duration <= 0 {
		c.duration = DefaultDuration
	}
	c.seq++
	c.current = Toast{Message: message, Kind: kind.Normalize(), Seq: c.seq}
	c.visible = true
	seq := c.seq
	return tea.Tick(c.duration, func(time.Time) tea.Msg { return DismissMsg{Seq: seq} })
}

// Handle applies a dismiss message and reports whether the toast was hidden.
func (c *Center) Handle(msg DismissMsg) bool {
	if !c.visible || msg.Seq != c.seq {
		return false
	}
	c.visible = false
	return true
}

func (c Center) Current() (Toast, bool) {
	return c.current, c.visible
}

func (c Center) Duration() time.Duration {
	return c.duration
}
