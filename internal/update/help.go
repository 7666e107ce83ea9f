package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/taskmini/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.focusBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(plain, m.helpModel.View(helpKeyMap{
		short: bindings,
		full:  [][]key.Binding{bindings},
	}))
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "tab", Action: "switch input/list"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.MainButton, Action: "support the project"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) focusBindings() []KeyBinding {
	if m.Focus == FocusInput {
		return []KeyBinding{
			{Key: "enter", Action: "add task"},
			{Key: "esc", Action: "go to list"},
		}
	}
	return []KeyBinding{
		{Key: "j/k", Action: "move cursor"},
		{Key: "space", Action: "toggle completed"},
		{Key: "x/delete", Action: "delete task"},
		{Key: "i", Action: "type a new task"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.focusBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.focusBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
