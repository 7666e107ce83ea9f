package host

type MainButton struct {
	Text    string
	Visible bool
}

type ChromeState struct {
	Expanded            bool
	ClosingConfirmation bool
	BackButtonVisible   bool
	MainButton          MainButton
}

// Chrome controls the frame around the app. Click handling for the main
// button belongs to the UI loop.
type Chrome interface {
	Expand()
	EnableClosingConfirmation()
	SetBackButtonVisible(visible bool)
	SetMainButtonText(text string)
	ShowMainButton()
	State() ChromeState
}

// TerminalChrome records chrome requests; the TUI renders from State.
type TerminalChrome struct {
	state ChromeState
}

func NewTerminalChrome() *TerminalChrome {
	return &TerminalChrome{}
}

func (c *TerminalChrome) Expand()                           { c.state.Expanded = true }
func (c *TerminalChrome) EnableClosingConfirmation()        { c.state.ClosingConfirmation = true }
func (c *TerminalChrome) SetBackButtonVisible(visible bool) { c.state.BackButtonVisible = visible }
func (c *TerminalChrome) SetMainButtonText(text string)     { c.state.MainButton.Text = text }
func (c *TerminalChrome) ShowMainButton()                   { c.state.MainButton.Visible = true }
func (c *TerminalChrome) State() ChromeState                { return c.state }
