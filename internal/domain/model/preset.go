package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidPreset is returned when a preset fails validation.
var ErrInvalidPreset = errors.New("invalid status preset")

// StatusPreset is a reusable status definition applied across all workspaces.
type StatusPreset struct {
	ID                string `json:"id"`
	Emoji             string `json:"emoji"`        // API emoji code, e.g. ":coffee:".
	DisplayEmoji      string `json:"displayEmoji"` // Glyph shown in the menu only.
	Text              string `json:"text"`
	ExpirationMinutes int    `json:"expirationMinutes"` // 0 means the status never expires.
}

// NewStatusPreset creates a preset with a fresh ID.
func NewStatusPreset(emoji, displayEmoji, text string, expirationMinutes int) StatusPreset {
	return StatusPreset{
		ID:                uuid.NewString(),
		Emoji:             emoji,
		DisplayEmoji:      displayEmoji,
		Text:              text,
		ExpirationMinutes: expirationMinutes,
	}
}

// Validate checks that the preset has text, an emoji code, and a non-negative
// expiration.
func (p StatusPreset) Validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidPreset)
	}
	if strings.TrimSpace(p.Emoji) == "" {
		return fmt.Errorf("%w: emoji code is required", ErrInvalidPreset)
	}
	if p.ExpirationMinutes < 0 {
		return fmt.Errorf("%w: expiration must not be negative", ErrInvalidPreset)
	}
	return nil
}

// ExpirationLabel renders the expiration for display: "No expiration", "15 min",
// "2h" or "1h 30m".
func (p StatusPreset) ExpirationLabel() string {
	if p.ExpirationMinutes <= 0 {
		return "No expiration"
	}
	if p.ExpirationMinutes < 60 {
		return fmt.Sprintf("%d min", p.ExpirationMinutes)
	}
	hours := p.ExpirationMinutes / 60
	mins := p.ExpirationMinutes % 60
	if mins > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dh", hours)
}

// DefaultPresets returns the built-in preset list used on first run, after a
// reset, or when the stored list cannot be read. Each call returns fresh IDs.
func DefaultPresets() []StatusPreset {
	return []StatusPreset{
		NewStatusPreset(":house_with_garden:", "🏡", "Working remotely", 0),
		NewStatusPreset(":office:", "🏢", "In the office", 0),
		NewStatusPreset(":palm_tree:", "🌴", "Vacationing", 0),
		NewStatusPreset(":hamburger:", "🍔", "Lunch break", 60),
		NewStatusPreset(":headphones:", "🎧", "Focus time, do not disturb", 120),
		NewStatusPreset(":coffee:", "☕", "Coffee break", 15),
		NewStatusPreset(":bus:", "🚌", "Commuting", 60),
		NewStatusPreset(":face_with_thermometer:", "🤒", "Out sick", 0),
		NewStatusPreset(":calendar:", "📅", "In a meeting", 30),
		NewStatusPreset(":zzz:", "💤", "Away", 0),
	}
}
