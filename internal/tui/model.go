package tui

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/auth"
	"github.com/krcglobal/gbms/internal/format"
	"github.com/krcglobal/gbms/internal/shell"
	"github.com/krcglobal/gbms/internal/ui"
)

const (
	// toastTick is how often toast phases are advanced.
	toastTick   = 100 * time.Millisecond
	tableHeight = 6
)

// Focusable elements of the logout dialog.
const (
	focusCancel  = "cancel"
	focusConfirm = "confirm"
)

// Model is the terminal dashboard
type Model struct {
	ctx   context.Context
	shell *shell.Shell
	modal *ui.Modal

	// Widgets
	spinner spinner.Model
	table   table.Model
	help    help.Model
	keys    keyMap

	// UI state
	navIndex      int
	loading       bool
	width         int
	height        int
	quitting      bool
	unauthorized  bool
	logoutPending bool

	styles Styles
}

// Styles contains lipgloss styles for the TUI
type Styles struct {
	Title     lipgloss.Style
	Muted     lipgloss.Style
	Card      lipgloss.Style
	CardValue lipgloss.Style
	Sidebar   lipgloss.Style
	NavItem   lipgloss.Style
	NavActive lipgloss.Style
	Section   lipgloss.Style
	Modal     lipgloss.Style
	Button    lipgloss.Style
	ButtonOn  lipgloss.Style
	Toasts    map[string]lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33")), // Blue
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 2).
			MarginRight(1),
		CardValue: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("238")).
			PaddingRight(1).
			MarginRight(1),
		NavItem: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Padding(0, 1),
		NavActive: lipgloss.NewStyle().
			Background(lipgloss.Color("33")).
			Foreground(lipgloss.Color("230")).
			Bold(true).
			Padding(0, 1),
		Section: lipgloss.NewStyle().
			Bold(true).
			MarginTop(1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 3),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Padding(0, 2),
		ButtonOn: lipgloss.NewStyle().
			Background(lipgloss.Color("63")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 2),
		Toasts: map[string]lipgloss.Style{
			format.KindSuccess: toast.BorderForeground(lipgloss.Color("46")),
			format.KindError:   toast.BorderForeground(lipgloss.Color("196")),
			format.KindWarning: toast.BorderForeground(lipgloss.Color("226")),
			format.KindInfo:    toast.BorderForeground(lipgloss.Color("33")),
		},
	}
}

// keyMap defines the keyboard shortcuts
type keyMap struct {
	Sidebar key.Binding
	NextNav key.Binding
	PrevNav key.Binding
	Refresh key.Binding
	Logout  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Sidebar: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "sidebar")),
		NextNav: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next menu")),
		PrevNav: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev menu")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Logout:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "logout")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sidebar, k.Refresh, k.Logout, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sidebar, k.NextNav, k.PrevNav},
		{k.Refresh, k.Logout, k.Help, k.Quit},
	}
}

// NewModel creates the dashboard model over s
func NewModel(ctx context.Context, s *shell.Shell) Model {
	t := table.New(
		table.WithColumns(projectColumns),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)

	return Model{
		ctx:     ctx,
		shell:   s,
		modal:   ui.NewModal(nil),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		table:   t,
		help:    help.New(),
		keys:    defaultKeys(),
		loading: true,
		styles:  DefaultStyles(),
	}
}

// Messages

type initDoneMsg struct {
	authenticated bool
}

type refreshDoneMsg struct {
	err error
}

type logoutDoneMsg struct {
	err error
}

type tickMsg time.Time

func (m Model) initShell() tea.Cmd {
	return func() tea.Msg {
		return initDoneMsg{authenticated: m.shell.Init(m.ctx)}
	}
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: m.shell.LoadDashboard(m.ctx)}
	}
}

func (m Model) logout() tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: m.shell.Logout(m.ctx)}
	}
}

func tick() tea.Cmd {
	return tea.Tick(toastTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the TUI model (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.initShell(), tick())
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case initDoneMsg:
		m.loading = false
		if !msg.authenticated {
			m.unauthorized = true
			m.quitting = true
			return m, tea.Quit
		}
		m.navIndex = max(shell.ActiveNav(auth.HomePage, shell.DefaultNav), 0)
		m.table.SetRows(projectRows(m.shell.Dashboard().Recent))
		return m, nil

	case refreshDoneMsg:
		m.loading = false
		if stderrors.Is(msg.err, api.ErrSessionExpired) {
			m.unauthorized = true
			m.quitting = true
			return m, tea.Quit
		}
		if msg.err != nil {
			m.shell.Toasts().Error(msg.err.Error())
		} else {
			m.shell.Toasts().Success("대시보드를 새로고침했습니다.")
		}
		m.table.SetRows(projectRows(m.shell.Dashboard().Recent))
		return m, nil

	case logoutDoneMsg:
		if msg.err != nil {
			m.logoutPending = false
			m.shell.Toasts().Error(msg.err.Error())
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case tickMsg:
		m.shell.Toasts().Advance(time.Time(msg))
		return m, tick()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.logoutPending {
		return m, nil
	}

	if m.modal.IsOpen() {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Logout):
		m.modal.Open("로그아웃 하시겠습니까?", []string{focusCancel, focusConfirm}, "")
		return m, nil

	case key.Matches(msg, m.keys.Sidebar):
		m.shell.ToggleSidebar()
		return m, nil

	case key.Matches(msg, m.keys.NextNav):
		m.navIndex = (m.navIndex + 1) % len(shell.DefaultNav)
		return m, nil

	case key.Matches(msg, m.keys.PrevNav):
		m.navIndex = (m.navIndex - 1 + len(shell.DefaultNav)) % len(shell.DefaultNav)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.refresh())

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab:
		m.modal.HandleKey(ui.KeyTab)
	case tea.KeyShiftTab:
		m.modal.HandleKey(ui.KeyShiftTab)
	case tea.KeyEsc:
		m.modal.HandleKey(ui.KeyEscape)
	case tea.KeyEnter:
		confirmed := m.modal.Focused() == focusConfirm
		m.modal.Close()
		if confirmed {
			m.logoutPending = true
			return m, m.logout()
		}
	}
	return m, nil
}

// Unauthorized reports whether the dashboard exited because no user was
// signed in.
func (m Model) Unauthorized() bool {
	return m.unauthorized
}
