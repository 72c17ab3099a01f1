package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ericfisherdev/statuspanel/internal/domain/model"
)

var errInvalidMinutes = errors.New("expiration must be a whole number of minutes")

func (m Model) settingsRowCount() int {
	if m.tab == tabPresets {
		return len(m.state.Presets)
	}
	return len(m.state.Workspaces)
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = screenMenu
		m.statusLine = ""
		m.err = nil
	case key.Matches(msg, m.keys.SwitchTab):
		if m.tab == tabWorkspaces {
			m.tab = tabPresets
		} else {
			m.tab = tabWorkspaces
		}
		m.settingsCursor = 0
	case key.Matches(msg, m.keys.Up):
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.settingsCursor < m.settingsRowCount()-1 {
			m.settingsCursor++
		}
	case key.Matches(msg, m.keys.Add):
		if m.tab == tabWorkspaces {
			m.form = newWorkspaceForm()
		} else {
			m.form = newPresetForm()
		}
		m.testResult = ""
		m.err = nil
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteSelectedCmd()
	case key.Matches(msg, m.keys.MoveUp) && m.tab == tabPresets:
		if m.settingsCursor > 0 {
			from := m.settingsCursor
			m.settingsCursor--
			return m, m.movePresetCmd(from, from-1)
		}
	case key.Matches(msg, m.keys.MoveDown) && m.tab == tabPresets:
		if m.settingsCursor < len(m.state.Presets)-1 {
			from := m.settingsCursor
			m.settingsCursor++
			return m, m.movePresetCmd(from, from+1)
		}
	case key.Matches(msg, m.keys.Reset) && m.tab == tabPresets:
		m.settingsCursor = 0
		return m, m.resetPresetsCmd()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.form = nil
		m.testResult = ""
		m.err = nil
		return m, nil
	case key.Matches(msg, m.keys.Test) && m.form.kind == formWorkspace:
		if m.form.testing {
			return m, nil
		}
		m.form.testing = true
		m.testResult = "Testing connection…"
		return m, m.testConnectionCmd(m.form.value(fieldWorkspaceToken))
	case key.Matches(msg, m.keys.Submit):
		if !m.form.onLastField() {
			m.form.next()
			return m, textinput.Blink
		}
		return m.submitForm()
	case key.Matches(msg, m.keys.NextField):
		m.form.next()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.PrevField):
		m.form.prev()
		return m, textinput.Blink
	}
	return m.updateFormInput(msg)
}

func (m Model) updateFormInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	m.err = nil
	if m.form.kind == formWorkspace {
		return m, m.addWorkspaceCmd(m.form.value(fieldWorkspaceName), m.form.value(fieldWorkspaceToken))
	}

	minutes := 0
	if raw := m.form.value(fieldPresetExpiration); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			m.err = errInvalidMinutes
			return m, nil
		}
		minutes = n
	}

	preset := model.StatusPreset{
		DisplayEmoji:      m.form.value(fieldPresetDisplayEmoji),
		Emoji:             m.form.value(fieldPresetEmoji),
		Text:              m.form.value(fieldPresetText),
		ExpirationMinutes: minutes,
	}
	return m, m.addPresetCmd(preset)
}

func (m Model) addWorkspaceCmd(name, token string) tea.Cmd {
	settings := m.settings
	return func() tea.Msg {
		ws, err := settings.AddWorkspace(context.Background(), name, token)
		if err != nil {
			return formSubmittedMsg{err: err}
		}
		return formSubmittedMsg{status: fmt.Sprintf("Added workspace %q", ws.Name)}
	}
}

func (m Model) addPresetCmd(preset model.StatusPreset) tea.Cmd {
	settings := m.settings
	return func() tea.Msg {
		p, err := settings.AddPreset(context.Background(), preset)
		if err != nil {
			return formSubmittedMsg{err: err}
		}
		return formSubmittedMsg{status: fmt.Sprintf("Added preset %q", p.Text)}
	}
}

func (m Model) deleteSelectedCmd() tea.Cmd {
	settings := m.settings
	if m.tab == tabWorkspaces {
		if m.settingsCursor >= len(m.state.Workspaces) {
			return nil
		}
		ws := m.state.Workspaces[m.settingsCursor]
		return func() tea.Msg {
			err := settings.RemoveWorkspace(context.Background(), ws.ID)
			return opResultMsg{status: fmt.Sprintf("Removed workspace %q", ws.Name), err: err}
		}
	}

	if m.settingsCursor >= len(m.state.Presets) {
		return nil
	}
	p := m.state.Presets[m.settingsCursor]
	return func() tea.Msg {
		err := settings.RemovePreset(context.Background(), p.ID)
		return opResultMsg{status: fmt.Sprintf("Removed preset %q", p.Text), err: err}
	}
}

func (m Model) movePresetCmd(from, to int) tea.Cmd {
	settings := m.settings
	return func() tea.Msg {
		return opResultMsg{err: settings.MovePreset(context.Background(), from, to)}
	}
}

func (m Model) resetPresetsCmd() tea.Cmd {
	settings := m.settings
	return func() tea.Msg {
		settings.ResetPresets(context.Background())
		return opResultMsg{status: "Presets reset to defaults"}
	}
}

func (m Model) testConnectionCmd(token string) tea.Cmd {
	settings := m.settings
	return func() tea.Msg {
		profile, err := settings.TestConnection(context.Background(), token)
		return connectionTestedMsg{profile: profile, err: err}
	}
}
