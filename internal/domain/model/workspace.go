package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidWorkspace is returned when a workspace credential fails validation.
var ErrInvalidWorkspace = errors.New("invalid workspace")

// TokenPrefix is the prefix carried by every user OAuth token.
const TokenPrefix = "xoxp-"

// maskedSuffixLen is how many trailing token characters stay visible.
const maskedSuffixLen = 8

// Workspace is a named user token granting write access to one account's profile.
// The token is a secret and must only be rendered through MaskedToken.
type Workspace struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// NewWorkspace creates a workspace credential with a fresh ID.
func NewWorkspace(name, token string) Workspace {
	return Workspace{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(name),
		Token: strings.TrimSpace(token),
	}
}

// Validate checks that the workspace has a name and a user OAuth token.
func (w Workspace) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidWorkspace)
	}
	if !strings.HasPrefix(w.Token, TokenPrefix) {
		return fmt.Errorf("%w: token must start with %q", ErrInvalidWorkspace, TokenPrefix)
	}
	return nil
}

// MaskedToken returns the token with everything but the last few characters hidden.
func (w Workspace) MaskedToken() string {
	return MaskToken(w.Token)
}

// MaskToken hides all but the last eight characters of token.
func MaskToken(token string) string {
	runes := []rune(token)
	if len(runes) > maskedSuffixLen {
		runes = runes[len(runes)-maskedSuffixLen:]
	}
	return TokenPrefix + "••••" + string(runes)
}
