package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ericfisherdev/statuspanel/internal/domain/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorTitle))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelp))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorStatus))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	dividerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSelectedFg)).
			Background(lipgloss.Color(ColorSelectedBg))
)

func (m Model) View() string {
	var body string
	switch {
	case m.form != nil:
		body = m.renderForm()
	case m.screen == screenSettings:
		body = m.renderSettings()
	default:
		body = m.renderMenu()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
	return lipgloss.NewStyle().Padding(0, 1).Render(content)
}

func divider() string {
	return dividerStyle.Render(strings.Repeat("─", DividerWidth))
}

func (m Model) renderMenu() string {
	lines := []string{titleStyle.Render(AppTitle), m.renderCurrentStatus()}
	if len(m.state.Workspaces) == 0 {
		lines = append(lines, warningStyle.Render(TextNoWorkspaces))
	}
	lines = append(lines, divider())

	for i, p := range m.state.Presets {
		lines = append(lines, m.renderMenuRow(i, presetLabel(p)))
	}
	lines = append(lines, m.renderMenuRow(len(m.state.Presets), "✕  "+TextClearRow))
	lines = append(lines, divider())

	if m.state.ResultsVisible {
		lines = append(lines, renderBanner(m.state.LastOutcomes), divider())
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderCurrentStatus() string {
	switch {
	case m.state.Updating:
		return m.spinner.View() + " " + mutedStyle.Render(TextUpdating)
	case m.state.CurrentText != "":
		return mutedStyle.Render(TextCurrentLabel) + " " +
			strings.TrimSpace(m.state.CurrentEmoji+" "+m.state.CurrentText)
	default:
		return mutedStyle.Render(TextNoStatus)
	}
}

func presetLabel(p model.StatusPreset) string {
	label := fmt.Sprintf("%s  %s", p.DisplayEmoji, p.Text)
	if p.ExpirationMinutes > 0 {
		label += "  " + mutedStyle.Render(p.ExpirationLabel())
	}
	return label
}

// renderMenuRow renders one selectable row. Rows are dimmed while an update is
// in flight because they cannot be activated.
func (m Model) renderMenuRow(i int, label string) string {
	switch {
	case m.state.Updating:
		return helpStyle.Render("  " + label)
	case i == m.cursor:
		return selectedStyle.Render("> " + label)
	default:
		return "  " + label
	}
}

// renderBanner summarises the outcomes of the last broadcast: a single line
// when every workspace succeeded, otherwise one line per workspace.
func renderBanner(outcomes []model.Outcome) string {
	if model.AllSucceeded(outcomes) {
		n := len(outcomes)
		suffix := "s"
		if n == 1 {
			suffix = ""
		}
		return successStyle.Render(fmt.Sprintf("✓ Updated %d workspace%s", n, suffix))
	}

	lines := make([]string, 0, len(outcomes)+1)
	lines = append(lines, warningStyle.Render("⚠ Some workspaces were not updated"))
	for _, o := range outcomes {
		switch o := o.(type) {
		case model.Success:
			lines = append(lines, successStyle.Render("✓ "+o.WorkspaceName))
		case model.Failure:
			lines = append(lines, errorStyle.Render(fmt.Sprintf("✗ %s: %s", o.WorkspaceName, o.Message)))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderSettings() string {
	workspacesTab, presetsTab := "Workspaces", "Presets"
	if m.tab == tabWorkspaces {
		workspacesTab = selectedStyle.Render("[" + workspacesTab + "]")
		presetsTab = mutedStyle.Render(" " + presetsTab + " ")
	} else {
		workspacesTab = mutedStyle.Render(" " + workspacesTab + " ")
		presetsTab = selectedStyle.Render("[" + presetsTab + "]")
	}

	lines := []string{
		titleStyle.Render(TextSettingsTitle),
		workspacesTab + "  " + presetsTab,
		divider(),
	}

	if m.tab == tabWorkspaces {
		lines = append(lines, helpStyle.Render(TextWorkspacesHelp))
		if len(m.state.Workspaces) == 0 {
			lines = append(lines, mutedStyle.Render(TextNoWorkspacesYet))
		}
		for i, ws := range m.state.Workspaces {
			row := fmt.Sprintf("%s  %s", ws.Name, mutedStyle.Render(ws.MaskedToken()))
			lines = append(lines, m.renderSettingsRow(i, row))
		}
	} else {
		lines = append(lines, helpStyle.Render(TextPresetsHelp))
		if len(m.state.Presets) == 0 {
			lines = append(lines, mutedStyle.Render(TextNoPresets))
		}
		for i, p := range m.state.Presets {
			meta := p.Emoji
			if p.ExpirationMinutes > 0 {
				meta += " • " + p.ExpirationLabel()
			}
			row := fmt.Sprintf("%s  %s  %s", p.DisplayEmoji, p.Text, mutedStyle.Render(meta))
			lines = append(lines, m.renderSettingsRow(i, row))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderSettingsRow(i int, row string) string {
	if i == m.settingsCursor {
		return selectedStyle.Render("> " + row)
	}
	return "  " + row
}

func (m Model) renderForm() string {
	lines := []string{titleStyle.Render(m.form.title()), divider()}
	for _, in := range m.form.inputs {
		lines = append(lines, in.View())
	}

	switch m.form.kind {
	case formWorkspace:
		lines = append(lines, helpStyle.Render(TextTokenHint))
		if m.testResult != "" {
			style := errorStyle
			if strings.HasPrefix(m.testResult, "✓") {
				style = successStyle
			} else if m.form.testing {
				style = mutedStyle
			}
			lines = append(lines, style.Render(m.testResult))
		}
	case formPreset:
		lines = append(lines, helpStyle.Render(TextExpirationHint))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderFooter() string {
	var lines []string
	if strings.TrimSpace(m.statusLine) != "" {
		lines = append(lines, statusStyle.Render(m.statusLine))
	}
	if m.err != nil {
		lines = append(lines, errorStyle.Render("Error: "+m.err.Error()))
	}

	var hints string
	switch {
	case m.form != nil && m.form.kind == formWorkspace:
		hints = ActionWorkspaceForm
	case m.form != nil:
		hints = ActionPresetForm
	case m.screen == screenSettings && m.tab == tabPresets:
		hints = ActionPresets
	case m.screen == screenSettings:
		hints = ActionWorkspaces
	default:
		hints = ActionMenu
	}
	lines = append(lines, helpStyle.Render(hints))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
