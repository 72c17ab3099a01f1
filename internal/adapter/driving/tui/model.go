// Package tui is the terminal menu driving adapter. It renders the coordinator
// state and turns key presses into StatusService and SettingsService calls.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ericfisherdev/statuspanel/internal/application"
	"github.com/ericfisherdev/statuspanel/internal/domain/model"
)

type screen int

const (
	screenMenu screen = iota
	screenSettings
)

type settingsTab int

const (
	tabWorkspaces settingsTab = iota
	tabPresets
)

// stateMsg carries a coordinator snapshot. ok is false once the subscription
// channel has been closed.
type stateMsg struct {
	state application.State
	ok    bool
}

type broadcastDoneMsg struct {
	err error
}

type opResultMsg struct {
	status string
	err    error
}

type formSubmittedMsg struct {
	status string
	err    error
}

type connectionTestedMsg struct {
	profile *model.RemoteProfile
	err     error
}

// Model is the bubbletea model for the menu and settings screens.
type Model struct {
	status   *application.StatusService
	settings *application.SettingsService
	updates  <-chan application.State

	state application.State

	screen         screen
	tab            settingsTab
	cursor         int // Menu row; len(presets) selects the clear row.
	settingsCursor int

	form       *form
	testResult string

	spinner    spinner.Model
	statusLine string
	err        error

	width  int
	height int

	keys keyMap
}

// New creates the menu model and subscribes it to coordinator state changes.
func New(status *application.StatusService, settings *application.SettingsService) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTitle))

	return Model{
		status:   status,
		settings: settings,
		updates:  status.Subscribe(),
		state:    status.State(),
		spinner:  sp,
		keys:     newKeyMap(),
	}
}

// Run starts the terminal menu and blocks until the user quits or ctx is done.
func Run(ctx context.Context, status *application.StatusService, settings *application.SettingsService) error {
	m := New(status, settings)
	defer status.Unsubscribe(m.updates)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run terminal menu: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForState(m.updates), m.refreshCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateMsg:
		if !msg.ok {
			return m, nil
		}
		cmd := m.applyState(msg.state)
		return m, tea.Batch(waitForState(m.updates), cmd)

	case spinner.TickMsg:
		if !m.state.Updating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case broadcastDoneMsg:
		m.err = nil
		if msg.err != nil {
			m.err = msg.err
		}
		return m, m.applyState(m.status.State())

	case opResultMsg:
		m.statusLine = msg.status
		m.err = msg.err
		return m, m.applyState(m.status.State())

	case formSubmittedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.form = nil
			m.testResult = ""
			m.statusLine = msg.status
		}
		return m, m.applyState(m.status.State())

	case connectionTestedMsg:
		if m.form != nil {
			m.form.testing = false
			m.testResult = formatConnectionResult(msg.profile, msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.screen == screenSettings {
			return m.updateSettings(msg)
		}
		return m.updateMenu(msg)
	}

	if m.form != nil {
		return m.updateFormInput(msg)
	}
	return m, nil
}

// applyState stores a new snapshot and starts the spinner when an update begins.
func (m *Model) applyState(st application.State) tea.Cmd {
	wasUpdating := m.state.Updating
	m.state = st
	m.clampCursors()
	if st.Updating && !wasUpdating {
		return m.spinner.Tick
	}
	return nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Presets) {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Apply):
		if m.cursor >= len(m.state.Presets) {
			return m.startBroadcast(application.ClearOperation())
		}
		return m.startBroadcast(application.ApplyPreset(m.state.Presets[m.cursor]))
	case key.Matches(msg, m.keys.Clear):
		return m.startBroadcast(application.ClearOperation())
	case key.Matches(msg, m.keys.Refresh):
		m.statusLine = "Refreshing current status…"
		return m, m.refreshCmd()
	case key.Matches(msg, m.keys.Settings):
		m.screen = screenSettings
		m.settingsCursor = 0
		m.statusLine = ""
		m.err = nil
	}
	return m, nil
}

// startBroadcast runs op unless the rows are disabled: while an update is in
// flight, or when there is no workspace to update.
func (m Model) startBroadcast(op application.Operation) (tea.Model, tea.Cmd) {
	if m.state.Updating {
		m.statusLine = "A status update is already in progress"
		return m, nil
	}
	if len(m.state.Workspaces) == 0 {
		m.statusLine = "Add a workspace in settings first"
		return m, nil
	}
	m.statusLine = ""
	m.err = nil
	return m, m.broadcastCmd(op)
}

func (m *Model) clampCursors() {
	if m.cursor > len(m.state.Presets) {
		m.cursor = len(m.state.Presets)
	}
	if n := m.settingsRowCount(); m.settingsCursor >= n {
		m.settingsCursor = max(0, n-1)
	}
}

func waitForState(updates <-chan application.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-updates
		return stateMsg{state: st, ok: ok}
	}
}

func (m Model) broadcastCmd(op application.Operation) tea.Cmd {
	status := m.status
	return func() tea.Msg {
		_, err := status.Broadcast(context.Background(), op)
		return broadcastDoneMsg{err: err}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	status := m.status
	return func() tea.Msg {
		status.RefreshCurrentStatus(context.Background())
		return opResultMsg{}
	}
}

func formatConnectionResult(profile *model.RemoteProfile, err error) string {
	if err != nil {
		return "✗ Failed: " + err.Error()
	}
	text := profile.Text()
	if text == "" {
		text = "(none)"
	}
	return fmt.Sprintf("✓ Connected! Current status: %s %s", profile.Emoji(), text)
}
