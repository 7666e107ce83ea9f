package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/taskmini/internal/tasklist"
)

type TaskPanelData struct {
	State     tasklist.State
	Cursor    int
	ListFocus bool
	Now       time.Time
	Location  *time.Location
}

type StatsData struct {
	State tasklist.State
}

type DialogData struct {
	Title string
	Body  string
	Hint  string
}

var (
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	dateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statNumStyle = lipgloss.NewStyle().Bold(true)
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Align(lipgloss.Center)
)

func RenderEmptyState() string {
	return emptyStyle.Render("📝\nNo tasks yet\nAdd your first task above!\nType a task and press Enter")
}

// RenderTaskPanel renders one row per task in collection order, or the
// empty-state placeholder.
func RenderTaskPanel(data TaskPanelData) string {
	if len(data.State.Tasks) == 0 {
		return RenderEmptyState()
	}
	var b strings.Builder
	for i, t := range data.State.Tasks {
		cursor := " "
		if data.ListFocus && i == data.Cursor {
			cursor = cursorStyle.Render(">")
		}
		box := "[ ]"
		text := SanitizeTerminal(t.Text)
		if t.Completed {
			box = "[x]"
			text = doneStyle.Render(text)
		}
		b.WriteString(fmt.Sprintf("%s %s %s  ×\n", cursor, box, text))
		label := FormatDate(t.CreatedAt, data.Now, data.Location)
		if t.Completed && t.CompletedAt != nil {
			label += " • Completed: " + FormatDate(*t.CompletedAt, data.Now, data.Location)
		}
		b.WriteString("      " + dateStyle.Render(label) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderStatsBar(data StatsData) string {
	return fmt.Sprintf("total: %s | completed: %s | pending: %s",
		statNumStyle.Render(fmt.Sprint(data.State.Stats.Total)),
		statNumStyle.Render(fmt.Sprint(data.State.Stats.Completed)),
		statNumStyle.Render(fmt.Sprint(data.State.Stats.Pending)),
	)
}

// RenderToast draws the message on the given background colour.
func RenderToast(message, color string) string {
	if strings.TrimSpace(message) == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color("#ffffff")).
		Padding(0, 1).
		Render(message)
}

func RenderDialog(data DialogData) string {
	var b strings.Builder
	if data.Title != "" {
		b.WriteString(headerStyle.Render(data.Title) + "\n")
	}
	b.WriteString(data.Body)
	if data.Hint != "" {
		b.WriteString("\n" + footerStyle.Render(data.Hint))
	}
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderHelpPanel(bindings []string, helpView string) string {
	return fmt.Sprintf("help:\n%s\n%s", strings.Join(bindings, "\n"), helpView)
}
