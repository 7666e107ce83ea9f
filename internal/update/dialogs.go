package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskmini/internal/host"
	"github.com/sandeepkv93/taskmini/internal/views"
)

const dialogTimeout = 2 * time.Minute

// dialogAdapter is chosen once at startup. Every confirm ends in exactly one
// ConfirmResultMsg, every alert in one AlertClosedMsg (or a visible modal).
type dialogAdapter interface {
	name() string
	confirm(m *Model, req ConfirmResultMsg, title, message string) tea.Cmd
	alert(m *Model, title, message string, menu bool) tea.Cmd
}

type hostDialogs struct {
	dialogs host.Dialogs
}

func (hostDialogs) name() string { return "host" }

func (h hostDialogs) confirm(m *Model, req ConfirmResultMsg, _, message string) tea.Cmd {
	m.pendingConfirm = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dialogTimeout)
		defer cancel()
		ok, err := h.dialogs.Confirm(ctx, message)
		req.Confirmed = ok && err == nil
		req.Err = err
		return req
	}
}

func (h hostDialogs) alert(m *Model, _, message string, _ bool) tea.Cmd {
	m.pendingAlert = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dialogTimeout)
		defer cancel()
		return AlertClosedMsg{Err: h.dialogs.Alert(ctx, message)}
	}
}

type modalDialogs struct{}

func (modalDialogs) name() string { return "modal" }

func (modalDialogs) confirm(m *Model, req ConfirmResultMsg, title, message string) tea.Cmd {
	m.pendingConfirm = true
	m.Modal = Modal{
		Active:  true,
		Kind:    ModalConfirm,
		Title:   title,
		Body:    message,
		Purpose: req.Purpose,
		Amount:  req.Amount,
	}
	return nil
}

func (modalDialogs) alert(m *Model, title, message string, menu bool) tea.Cmd {
	m.Modal = Modal{
		Active: true,
		Kind:   ModalAlert,
		Title:  title,
		Body:   message,
		Menu:   menu,
	}
	return nil
}

// handleModalKey resolves the in-app prompt. The outcome is still delivered
// as a message so both dialog paths share one result handler.
func (m Model) handleModalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	modal := m.Modal
	switch msg.String() {
	case "y", "enter":
		m.Modal = Modal{}
		if modal.Kind == ModalAlert {
			return m, func() tea.Msg { return AlertClosedMsg{} }
		}
		return m, confirmResult(modal, true)
	case "n", "esc", "q":
		m.Modal = Modal{}
		if modal.Kind == ModalAlert {
			return m, func() tea.Msg { return AlertClosedMsg{} }
		}
		return m, confirmResult(modal, false)
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	}
	if modal.Menu && len(msg.Runes) == 1 {
		if choice := int(msg.Runes[0] - '0'); choice >= 1 && choice <= 9 {
			if amount, ok := m.flow.AmountAt(choice); ok {
				m.Modal = Modal{}
				return m, func() tea.Msg { return RequestDonationMsg{Amount: amount} }
			}
		}
	}
	return m, nil
}

func confirmResult(modal Modal, confirmed bool) tea.Cmd {
	res := ConfirmResultMsg{Purpose: modal.Purpose, Amount: modal.Amount, Confirmed: confirmed}
	return func() tea.Msg { return res }
}

// onConfirmResult applies a confirmation outcome. A host dialog failure falls
// back to the modal instead of being treated as a refusal.
func (m Model) onConfirmResult(msg ConfirmResultMsg) (Model, tea.Cmd) {
	m.pendingConfirm = false
	if msg.Err != nil {
		m.logger.Warn("host dialog failed, using modal", "purpose", msg.Purpose, "err", msg.Err)
		m.dialogs = modalDialogs{}
		req := ConfirmResultMsg{Purpose: msg.Purpose, Amount: msg.Amount}
		cmd := m.dialogs.confirm(&m, req, confirmTitle(msg.Purpose), m.confirmText(msg.Purpose, msg.Amount))
		return m, cmd
	}
	m.logger.Debug("confirmation resolved", "purpose", msg.Purpose, "amount", msg.Amount, "confirmed", msg.Confirmed)
	switch msg.Purpose {
	case PurposeDonation:
		message, ok := m.flow.Acknowledge(donationDecision(msg))
		if !ok {
			return m, nil
		}
		m.bridge.Haptics.NotificationOccurred(host.NotificationSuccess)
		m.logger.Info("donation confirmed", "amount", msg.Amount, "currency", m.flow.Currency)
		cmd := m.toastSuccess(message)
		return m, cmd
	case PurposeQuit:
		if !msg.Confirmed {
			return m, nil
		}
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) onAlertClosed(msg AlertClosedMsg) (Model, tea.Cmd) {
	m.pendingAlert = false
	if msg.Err == nil {
		return m, nil
	}
	m.logger.Warn("host alert failed, using modal", "err", msg.Err)
	m.dialogs = modalDialogs{}
	cmd := m.dialogs.alert(&m, "Support", m.menuBody(), true)
	return m, cmd
}

func confirmTitle(p ConfirmPurpose) string {
	if p == PurposeQuit {
		return "Quit"
	}
	return "Support the project"
}

func (m Model) confirmText(p ConfirmPurpose, amount int) string {
	if p == PurposeQuit {
		return "Close the app? Your tasks are saved."
	}
	return m.flow.ConfirmMessage(amount)
}

func (m Model) renderModal() string {
	if !m.Modal.Active {
		return ""
	}
	hint := "y/enter confirm · n/esc cancel"
	if m.Modal.Kind == ModalAlert {
		hint = "enter/esc close"
		if m.Modal.Menu {
			hint = "1-" + itoa(len(m.flow.Amounts)) + " choose amount · enter/esc close"
		}
	}
	return views.RenderDialog(views.DialogData{Title: m.Modal.Title, Body: m.Modal.Body, Hint: hint})
}
