package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

type formKind int

const (
	formWorkspace formKind = iota
	formPreset
)

// Workspace form fields.
const (
	fieldWorkspaceName = iota
	fieldWorkspaceToken
)

// Preset form fields.
const (
	fieldPresetDisplayEmoji = iota
	fieldPresetEmoji
	fieldPresetText
	fieldPresetExpiration
)

type form struct {
	kind    formKind
	inputs  []textinput.Model
	focus   int
	testing bool
}

func newInput(prompt, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return ti
}

func newWorkspaceForm() *form {
	token := newInput("User OAuth token: ", "xoxp-...", TokenInputLimit)
	token.EchoMode = textinput.EchoPassword
	token.EchoCharacter = '•'

	f := &form{
		kind: formWorkspace,
		inputs: []textinput.Model{
			newInput("Workspace name:   ", "Acme Corp", NameInputLimit),
			token,
		},
	}
	f.focusField(0)
	return f
}

func newPresetForm() *form {
	f := &form{
		kind: formPreset,
		inputs: []textinput.Model{
			newInput("Display emoji:    ", "🏠", 8),
			newInput("Slack emoji code: ", ":house:", PresetInputLimit),
			newInput("Status text:      ", "Working remotely", PresetInputLimit),
			newInput("Expires after:    ", "0", MinutesInputLimit),
		},
	}
	f.focusField(0)
	return f
}

func (f *form) focusField(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
			continue
		}
		f.inputs[j].Blur()
	}
}

func (f *form) next() {
	f.focusField((f.focus + 1) % len(f.inputs))
}

func (f *form) prev() {
	f.focusField((f.focus - 1 + len(f.inputs)) % len(f.inputs))
}

func (f *form) onLastField() bool {
	return f.focus == len(f.inputs)-1
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) title() string {
	if f.kind == formWorkspace {
		return "Add Slack Workspace"
	}
	return "Add Status Preset"
}
