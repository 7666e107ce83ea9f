package update

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskmini/internal/donation"
	"github.com/sandeepkv93/taskmini/internal/host"
	"github.com/sandeepkv93/taskmini/internal/model"
	"github.com/sandeepkv93/taskmini/internal/notify"
	"github.com/sandeepkv93/taskmini/internal/tasklist"
)

const mainButtonText = "💳 Support the project"

type Focus string

const (
	FocusInput Focus = "input"
	FocusList  Focus = "list"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Toggle     string
	Delete     string
	MainButton string
	Palette    string
	Help       string
	Quit       string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type ModalKind string

const (
	ModalConfirm ModalKind = "confirm"
	ModalAlert   ModalKind = "alert"
)

// ConfirmPurpose says what a pending confirmation gates.
type ConfirmPurpose string

const (
	PurposeDonation ConfirmPurpose = "donation"
	PurposeQuit     ConfirmPurpose = "quit"
)

// Modal is the in-app prompt used when the host has no native dialogs.
type Modal struct {
	Active  bool
	Kind    ModalKind
	Title   string
	Body    string
	Purpose ConfirmPurpose
	Amount  int
	// Menu enables amount hotkeys on the donation menu alert.
	Menu bool
}

type Deps struct {
	Store    *tasklist.Store
	Bridge   host.Bridge
	Donation donation.Flow
	Logger   *log.Logger
	Config   RuntimeConfig
	Now      func() time.Time
	Location *time.Location
}

type Model struct {
	Focus       Focus
	Cursor      int
	Toasts      notify.Center
	Palette     CommandPaletteState
	Modal       Modal
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	store    *tasklist.Store
	bridge   host.Bridge
	flow     donation.Flow
	logger   *log.Logger
	now      func() time.Time
	loc      *time.Location
	dialogs  dialogAdapter
	width    int
	// at most one confirmation and one native alert are open at a time
	pendingConfirm bool
	pendingAlert   bool
	startCmd tea.Cmd

	onMainButton func(Model) (Model, tea.Cmd)

	input        textinput.Model
	commandInput textinput.Model
	listViewport viewport.Model
	helpModel    help.Model
}

type AddTaskMsg struct {
	Text string
}

type ToggleTaskMsg struct {
	ID string
}

type DeleteTaskMsg struct {
	ID string
}

type MainButtonClickedMsg struct{}

type ShowDonateMenuMsg struct{}

type RequestDonationMsg struct {
	Amount int
}

// ConfirmResultMsg is the single terminal outcome of any confirmation,
// whether it came from a native dialog or the in-app modal.
type ConfirmResultMsg struct {
	Purpose   ConfirmPurpose
	Amount    int
	Confirmed bool
	Err       error
}

type AlertClosedMsg struct {
	Err error
}

// NewModel runs the startup sequence: expand the chrome, enable closing
// confirmation, hide the back button, wire the main button and queue the
// welcome toast. The store must already hold the loaded tasks.
func NewModel(deps Deps) Model {
	if deps.Store == nil {
		deps.Store = tasklist.New(nil, nil, tasklist.Options{Now: deps.Now})
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if len(deps.Donation.Amounts) == 0 {
		deps.Donation = donation.NewFlow(deps.Config.DonationAmounts, deps.Config.Currency)
	}
	bridge := deps.Bridge.Normalize()

	m := Model{
		Focus:  FocusInput,
		Toasts: notify.NewCenter(time.Duration(deps.Config.ToastSeconds) * time.Second),
		Keys: GlobalKeyMap{
			Toggle:     " ",
			Delete:     "x",
			MainButton: "m",
			Palette:    "/",
			Help:       "?",
			Quit:       "q",
		},
		store:  deps.Store,
		bridge: bridge,
		flow:   deps.Donation,
		logger: deps.Logger,
		now:    deps.Now,
		loc:    deps.Location,
		width:  64,
	}
	if bridge.Dialogs != nil {
		m.dialogs = hostDialogs{dialogs: bridge.Dialogs}
	} else {
		m.dialogs = modalDialogs{}
	}
	m.initBubbleComponents()

	bridge.Chrome.Expand()
	bridge.Chrome.EnableClosingConfirmation()
	bridge.Chrome.SetBackButtonVisible(false)
	m.setupMainButton()

	m.startCmd = m.toast("Welcome! 🎉", notify.KindSuccess)
	m.syncBubbleData()
	m.logger.Info("session started", "tasks", m.store.Len(), "dialogs", m.dialogs.name())
	return m
}

func (m *Model) setupMainButton() {
	m.bridge.Chrome.SetMainButtonText(mainButtonText)
	m.onMainButton = func(m Model) (Model, tea.Cmd) {
		cmd := m.showDonateMenu()
		return m, cmd
	}
	m.bridge.Chrome.ShowMainButton()
}

func (m *Model) initBubbleComponents() {
	m.input = textinput.New()
	m.input.Prompt = "add> "
	m.input.Placeholder = "What needs to be done?"
	m.input.CharLimit = 1024
	m.input.Width = 48
	m.input.Focus()

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.listViewport = viewport.New(58, 12)
	m.helpModel = help.New()
}

// syncBubbleData refreshes the list viewport from the store and keeps the
// cursor row on screen.
func (m *Model) syncBubbleData() {
	m.clampCursor()
	m.listViewport.SetContent(m.renderTaskPanel())
	line := m.Cursor * 2
	if line < m.listViewport.YOffset {
		m.listViewport.SetYOffset(line)
	}
	if bottom := m.listViewport.YOffset + m.listViewport.Height; line+2 > bottom {
		m.listViewport.SetYOffset(line + 2 - m.listViewport.Height)
	}
}

func (m *Model) clampCursor() {
	n := m.store.Len()
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) selectedTask() (model.Task, bool) {
	return m.store.At(m.Cursor)
}
