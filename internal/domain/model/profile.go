package model

// RemoteProfile is the status portion of a remote user profile. Any field may be
// absent. It is used only for the informational "current status" display.
type RemoteProfile struct {
	StatusText       *string
	StatusEmoji      *string
	StatusExpiration *int64
}

// Text returns the status text or "" when absent.
func (p RemoteProfile) Text() string {
	if p.StatusText == nil {
		return ""
	}
	return *p.StatusText
}

// Emoji returns the status emoji code or "" when absent.
func (p RemoteProfile) Emoji() string {
	if p.StatusEmoji == nil {
		return ""
	}
	return *p.StatusEmoji
}
