// Package donation holds the demo "support the developer" flow. No payment
// is made: a confirmed request only produces an acknowledgement.
package donation

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidAmount = errors.New("donation: amount must be positive")

var DefaultAmounts = []int{50, 100, 250, 500}

const DefaultCurrency = "Stars"

type Flow struct {
	Amounts  []int
	Currency string
}

func NewFlow(amounts []int, currency string) Flow {
	valid := make([]int, 0, len(amounts))
	for _, a := range amounts {
		if a > 0 {
			valid = append(valid, a)
		}
	}
	if len(valid) == 0 {
		valid = append(valid, DefaultAmounts...)
	}
	if strings.TrimSpace(currency) == "" {
		currency = DefaultCurrency
	}
	return Flow{Amounts: valid, Currency: currency}
}

func (f Flow) Validate(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	return nil
}

// AmountAt maps a 1-based menu choice to an amount.
func (f Flow) AmountAt(choice int) (int, bool) {
	if choice < 1 || choice > len(f.Amounts) {
		return 0, false
	}
	return f.Amounts[choice-1], true
}

func (f Flow) ConfirmMessage(amount int) string {
	return fmt.Sprintf("Are you sure you want to support the project with %d %s? 💝\n\nThis is real help for the developer!", amount, f.Currency)
}

func (f Flow) ThankYou(amount int) string {
	return fmt.Sprintf("Thank you for %d %s! 💖", amount, f.Currency)
}

// MenuMessage is markdown describing how donations work.
func (f Flow) MenuMessage() string {
	return "## " + f.menu("Pick an amount below or use the button at the bottom of the screen 💝")
}

// MenuText is the plain-text menu for native dialogs, which cannot take an
// amount choice themselves.
func (f Flow) MenuText() string {
	return f.menu("Use /donate <amount> to support with one of these amounts 💝")
}

func (f Flow) menu(hint string) string {
	var b strings.Builder
	b.WriteString("💫 Support the developer\n\n")
	b.WriteString(fmt.Sprintf("Telegram %s are real money for me!\n\n", f.Currency))
	b.WriteString(hint + "\n\n")
	for i, a := range f.Amounts {
		b.WriteString(fmt.Sprintf("%d. %d %s\n", i+1, a, f.Currency))
	}
	return b.String()
}

// Decision is the terminal outcome of a confirmation prompt.
type Decision struct {
	Amount    int
	Confirmed bool
}

// Acknowledge returns the success message for a confirmed decision. ok is
// false for a declined one, which has no effect.
func (f Flow) Acknowledge(d Decision) (message string, ok bool) {
	if !d.Confirmed || d.Amount <= 0 {
		return "", false
	}
	return f.ThankYou(d.Amount), true
}
