package update

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskmini/internal/host"
	"github.com/sandeepkv93/taskmini/internal/model"
	"github.com/sandeepkv93/taskmini/internal/notify"
)

const (
	msgTaskAdded     = "Task added! ✅"
	msgEnterText     = "Enter task text!"
	msgTooLong       = "Task is too long! Max 200 characters."
	msgTaskCompleted = "Task completed! 🎉"
	msgTaskDeleted   = "Task deleted 🗑️"
	msgSaveFailed    = "Could not save tasks"
)

func (m *Model) toast(message string, kind notify.Kind) tea.Cmd {
	return m.Toasts.Show(message, kind)
}

func (m *Model) toastSuccess(message string) tea.Cmd {
	return m.toast(message, notify.KindSuccess)
}

// saveFailed records a persistence error. The in-memory change is kept.
func (m *Model) saveFailed(op string, err error) tea.Cmd {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.Error("save failed", "op", op, "err", err)
	m.bridge.Haptics.NotificationOccurred(host.NotificationError)
	return m.toast(msgSaveFailed, notify.KindError)
}

// addTask validates and inserts text. ok reports whether a task was created
// so the caller knows to clear the input.
func (m Model) addTask(text string) (Model, tea.Cmd, bool) {
	task, err := m.store.Add(context.Background(), text)
	switch {
	case errors.Is(err, model.ErrEmptyText):
		cmd := m.toast(msgEnterText, notify.KindWarning)
		return m, cmd, false
	case errors.Is(err, model.ErrTextTooLong):
		cmd := m.toast(msgTooLong, notify.KindError)
		return m, cmd, false
	case err != nil:
		m.Cursor = 0
		cmd := m.saveFailed("add", err)
		return m, cmd, true
	}
	m.Cursor = 0
	m.logger.Debug("task added", "id", task.ID)
	m.bridge.Haptics.ImpactOccurred(host.ImpactLight)
	cmd := m.toastSuccess(msgTaskAdded)
	return m, cmd, true
}

// toggleTask flips completion. Only the transition to completed is
// announced.
func (m Model) toggleTask(id string) (Model, tea.Cmd) {
	task, found, err := m.store.Toggle(context.Background(), id)
	if !found {
		m.logger.Debug("toggle of unknown task ignored", "id", id)
		return m, nil
	}
	if err != nil {
		cmd := m.saveFailed("toggle", err)
		return m, cmd
	}
	if !task.Completed {
		return m, nil
	}
	m.bridge.Haptics.NotificationOccurred(host.NotificationSuccess)
	cmd := m.toastSuccess(msgTaskCompleted)
	return m, cmd
}

func (m Model) deleteTask(id string) (Model, tea.Cmd) {
	found, err := m.store.Delete(context.Background(), id)
	if !found {
		m.logger.Debug("delete of unknown task ignored", "id", id)
		return m, nil
	}
	m.clampCursor()
	if err != nil {
		cmd := m.saveFailed("delete", err)
		return m, cmd
	}
	m.bridge.Haptics.ImpactOccurred(host.ImpactMedium)
	cmd := m.toast(msgTaskDeleted, notify.KindInfo)
	return m, cmd
}

func (m Model) clearCompleted() (Model, tea.Cmd, int) {
	removed, err := m.store.ClearCompleted(context.Background())
	m.clampCursor()
	if err != nil {
		cmd := m.saveFailed("clear", err)
		return m, cmd, removed
	}
	if removed == 0 {
		cmd := m.toast("Nothing to clear", notify.KindInfo)
		return m, cmd, 0
	}
	m.bridge.Haptics.ImpactOccurred(host.ImpactMedium)
	cmd := m.toast(msgTaskDeleted, notify.KindInfo)
	return m, cmd, removed
}
