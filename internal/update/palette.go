package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskmini/internal/commands"
	"github.com/sandeepkv93/taskmini/internal/notify"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()
	parsed, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		cmd := m.toast(commandErrorText(err), notify.KindError)
		return m, cmd
	}

	var out tea.Cmd
	res, err := commands.Execute(parsed, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			var ok bool
			m, out, ok = m.addTask(a.Text)
			if !ok {
				return commands.Result{}, nil
			}
			return commands.Result{Message: fmt.Sprintf("added: %s", a.Text)}, nil
		},
		Done: func(r commands.RowArgs) (commands.Result, error) {
			task, ok := m.store.At(r.Row - 1)
			if !ok {
				return commands.Result{}, rowError(r.Row, m.store.Len())
			}
			m.Cursor = r.Row - 1
			m, out = m.toggleTask(task.ID)
			return commands.Result{Message: fmt.Sprintf("toggled row %d", r.Row)}, nil
		},
		Delete: func(r commands.RowArgs) (commands.Result, error) {
			task, ok := m.store.At(r.Row - 1)
			if !ok {
				return commands.Result{}, rowError(r.Row, m.store.Len())
			}
			m, out = m.deleteTask(task.ID)
			return commands.Result{Message: fmt.Sprintf("deleted row %d", r.Row)}, nil
		},
		Clear: func() (commands.Result, error) {
			var removed int
			m, out, removed = m.clearCompleted()
			return commands.Result{Message: fmt.Sprintf("cleared %d completed task(s)", removed)}, nil
		},
		Donate: func(d commands.DonateArgs) (commands.Result, error) {
			m, out = m.requestDonation(d.Amount)
			return commands.Result{Message: fmt.Sprintf("donation of %d %s requested", d.Amount, m.flow.Currency)}, nil
		},
		Menu: func() (commands.Result, error) {
			out = func() tea.Msg { return ShowDonateMenuMsg{} }
			return commands.Result{Message: "donation menu"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.logger.Warn("command failed", "input", raw, "err", err)
		cmd := m.toast(commandErrorText(err), notify.KindError)
		return m, cmd
	}
	if res.Message != "" {
		m.Status = StatusBar{Text: res.Message}
	}
	return m, out
}

func rowError(row, total int) error {
	return &commands.CommandError{
		Code:    commands.ErrCodeInvalidArgument,
		Message: fmt.Sprintf("no task at row %d (have %d)", row, total),
	}
}

func commandErrorText(err error) string {
	var cmdErr *commands.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Message
	}
	return err.Error()
}
