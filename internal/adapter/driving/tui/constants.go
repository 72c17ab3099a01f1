package tui

// Screen text
const (
	AppTitle            = "statuspanel"
	TextUpdating        = "Updating status…"
	TextNoStatus        = "No status set"
	TextCurrentLabel    = "Current:"
	TextNoWorkspaces    = "⚠ No workspaces configured. Press s to open settings and add one."
	TextNoWorkspacesYet = "No workspaces added yet"
	TextNoPresets       = "No presets. Press a to add one or R to restore the defaults."
	TextClearRow        = "Clear status"
	TextSettingsTitle   = "Settings"
	TextWorkspacesHelp  = "Add your Slack user OAuth tokens (xoxp-...) for each workspace."
	TextPresetsHelp     = "Customize your quick-switch statuses."
	TextTokenHint       = "Get this from your Slack app under OAuth & Permissions → User OAuth Token"
	TextExpirationHint  = "Minutes until the status expires, 0 for never"
)

// Action Lines / Key Hints
const (
	ActionMenu          = "↑/↓: navigate | enter: apply | c: clear | r: refresh | s: settings | q: quit"
	ActionWorkspaces    = "↑/↓: navigate | a: add | d: delete | tab: presets | esc: back"
	ActionPresets       = "↑/↓: navigate | a: add | d: delete | K/J: move | R: reset defaults | tab: workspaces | esc: back"
	ActionWorkspaceForm = "tab: next field | ctrl+t: test connection | enter: add | esc: cancel"
	ActionPresetForm    = "tab: next field | enter: add | esc: cancel"
)

// Lipgloss Colors
const (
	ColorBorder     = "240"
	ColorSelectedFg = "229"
	ColorSelectedBg = "57"
	ColorTitle      = "14"  // Cyan for titles
	ColorHelp       = "245" // Grey for help text
	ColorMuted      = "246"
	ColorStatus     = "222"
	ColorWarning    = "214"
	ColorSuccess    = "10"
	ColorError      = "9"
)

// Layout
const (
	DividerWidth      = 44
	TokenInputLimit   = 256
	NameInputLimit    = 64
	PresetInputLimit  = 100
	MinutesInputLimit = 5
)
