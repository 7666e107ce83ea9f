package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskmini/internal/notify"
	"github.com/sandeepkv93/taskmini/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.startCmd)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Modal.Active {
			return m.handleModalKey(typed)
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Focus == FocusInput {
			return m.handleInputKey(typed)
		}
		return m.handleListKey(typed)
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.input.Width = max(typed.Width-12, 10)
		// panel border and padding take six columns
		m.listViewport.Width = max(typed.Width-6, 10)
		// header, input panel, stats, toast, footer and borders
		m.listViewport.Height = max(typed.Height-14, 4)
		return m, nil
	case notify.DismissMsg:
		m.Toasts.Handle(typed)
		return m, nil
	case AddTaskMsg:
		next, cmd, _ := m.addTask(typed.Text)
		return next, cmd
	case ToggleTaskMsg:
		return m.toggleTask(typed.ID)
	case DeleteTaskMsg:
		return m.deleteTask(typed.ID)
	case MainButtonClickedMsg:
		return m.pressMainButton()
	case ShowDonateMenuMsg:
		cmd := m.showDonateMenu()
		return m, cmd
	case RequestDonationMsg:
		return m.requestDonation(typed.Amount)
	case ConfirmResultMsg:
		return m.onConfirmResult(typed)
	case AlertClosedMsg:
		return m.onAlertClosed(typed)
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "enter":
		next, cmd, ok := m.addTask(m.input.Value())
		if ok {
			next.input.SetValue("")
		}
		return next, cmd
	case "tab", "esc":
		m.Focus = FocusList
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Quit:
		return m.requestQuit()
	case "tab", "i":
		m.Focus = FocusInput
		cmd := m.input.Focus()
		return m, cmd
	case "j", "down":
		if m.Cursor < m.store.Len()-1 {
			m.Cursor++
		}
		return m, nil
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case m.Keys.Toggle, "space":
		if task, ok := m.selectedTask(); ok {
			return m.toggleTask(task.ID)
		}
		return m, nil
	case m.Keys.Delete, "delete":
		if task, ok := m.selectedTask(); ok {
			return m.deleteTask(task.ID)
		}
		return m, nil
	case m.Keys.MainButton:
		return m.pressMainButton()
	case m.Keys.Palette:
		return m.openPalette(), nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.listViewport, cmd = m.listViewport.Update(msg)
	return m, cmd
}

// requestQuit asks first when the chrome wants closing confirmation and
// there is something to lose.
func (m Model) requestQuit() (Model, tea.Cmd) {
	if !m.bridge.Chrome.State().ClosingConfirmation || m.store.Len() == 0 {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.pendingConfirm {
		return m, nil
	}
	req := ConfirmResultMsg{Purpose: PurposeQuit}
	cmd := m.dialogs.confirm(&m, req, confirmTitle(PurposeQuit), m.confirmText(PurposeQuit, 0))
	return m, cmd
}

func (m Model) renderTaskPanel() string {
	return views.RenderTaskPanel(views.TaskPanelData{
		State:     m.store.Snapshot(),
		Cursor:    m.Cursor,
		ListFocus: m.Focus == FocusList,
		Now:       m.now(),
		Location:  m.loc,
	})
}

func (m Model) renderToast() string {
	t, ok := m.Toasts.Current()
	if !ok {
		return ""
	}
	return views.RenderToast(t.Message, t.Kind.Color())
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	input := m.input.View()
	if m.Palette.Active {
		input = views.RenderCommandPalette(true, m.commandInput.View())
	}
	header := "taskmini"
	if user := m.bridge.UserKey(); user != "" {
		header += " | user: " + user
	}
	body := m.listViewport.View()
	if help := m.renderHelpIfVisible(); help != "" {
		body = strings.Join([]string{body, help}, "\n")
	}

	return views.RenderApp(views.AppData{
		Header:     header,
		Input:      input,
		Body:       body,
		Stats:      views.RenderStatsBar(views.StatsData{State: m.store.Snapshot()}),
		StatusLine: status,
		Toast:      m.renderToast(),
		Modal:      m.renderModal(),
		Footer:     m.renderFooter(),
		Width:      m.width,
	})
}

func (m Model) renderFooter() string {
	parts := []string{
		fmt.Sprintf("keys: tab focus | %s cmd | %s help | %s quit", m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	}
	if mb := m.bridge.Chrome.State().MainButton; mb.Visible {
		parts = append(parts, fmt.Sprintf("[%s] %s", m.Keys.MainButton, mb.Text))
	}
	return strings.Join(parts, "  ")
}
