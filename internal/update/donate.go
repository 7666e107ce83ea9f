package update

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskmini/internal/donation"
	"github.com/sandeepkv93/taskmini/internal/notify"
	"github.com/sandeepkv93/taskmini/internal/views"
)

// requestDonation asks for confirmation; nothing happens until the
// ConfirmResultMsg arrives.
func (m Model) requestDonation(amount int) (Model, tea.Cmd) {
	if err := m.flow.Validate(amount); err != nil {
		m.logger.Warn("rejected donation amount", "amount", amount, "err", err)
		cmd := m.toast("Invalid amount", notify.KindError)
		return m, cmd
	}
	if m.pendingConfirm {
		m.logger.Debug("confirmation already open, donation request ignored", "amount", amount)
		return m, nil
	}
	req := ConfirmResultMsg{Purpose: PurposeDonation, Amount: amount}
	cmd := m.dialogs.confirm(&m, req, confirmTitle(PurposeDonation), m.flow.ConfirmMessage(amount))
	return m, cmd
}

func (m *Model) showDonateMenu() tea.Cmd {
	if m.pendingAlert {
		return nil
	}
	return m.dialogs.alert(m, "Support", m.menuBody(), true)
}

// menuBody is rendered markdown for the modal and plain text for native
// dialogs.
func (m Model) menuBody() string {
	if _, isModal := m.dialogs.(modalDialogs); isModal {
		return views.RenderMarkdown(m.flow.MenuMessage())
	}
	return m.flow.MenuText()
}

func (m Model) pressMainButton() (Model, tea.Cmd) {
	state := m.bridge.Chrome.State()
	if m.Modal.Active || !state.MainButton.Visible || m.onMainButton == nil {
		return m, nil
	}
	return m.onMainButton(m)
}

func donationDecision(msg ConfirmResultMsg) donation.Decision {
	return donation.Decision{Amount: msg.Amount, Confirmed: msg.Confirmed}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
