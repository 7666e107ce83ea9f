package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type AppData struct {
	Header     string
	Input      string
	Body       string
	Stats      string
	StatusLine string
	Toast      string
	Modal      string
	Footer     string
	Width      int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	modalStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("13")).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const defaultWidth = 64

func RenderApp(data AppData) string {
	width := data.Width
	if width <= 0 {
		width = defaultWidth
	}
	inner := width - 4

	lines := []string{headerStyle.Render(data.Header)}
	if data.Input != "" {
		lines = append(lines, panelStyle.Width(inner).Render(data.Input))
	}
	lines = append(lines, panelStyle.Width(inner).Render(data.Body))
	if data.Stats != "" {
		lines = append(lines, data.Stats)
	}
	if data.StatusLine != "" {
		status := statusStyle.Render(data.StatusLine)
		if strings.Contains(strings.ToLower(data.StatusLine), "error") {
			status = errorStyle.Render(data.StatusLine)
		}
		lines = append(lines, status)
	}
	if data.Toast != "" {
		lines = append(lines, data.Toast)
	}
	if data.Modal != "" {
		lines = append(lines, modalStyle.Width(inner).Render(data.Modal))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// SanitizeTerminal is the terminal counterpart of HTML escaping: it strips
// escape sequences and control characters from user text so it renders as
// literal characters.
func SanitizeTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
			return -1
		default:
			return r
		}
	}, s)
}
