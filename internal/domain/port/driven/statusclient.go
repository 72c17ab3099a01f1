package driven

import (
	"context"

	"github.com/ericfisherdev/statuspanel/internal/domain/model"
)

// StatusClient defines the driven port for the remote status-profile API.
// Every method performs exactly one network round trip; there are no retries.
type StatusClient interface {
	// FetchProfile reads the current status of the account the token belongs to.
	// Failures are returned as *model.RemoteError.
	FetchProfile(ctx context.Context, token string) (*model.RemoteProfile, error)

	// ApplyStatus writes a status. expirationMinutes > 0 is converted to an
	// absolute epoch timestamp of now + expirationMinutes*60; 0 means never expires.
	ApplyStatus(ctx context.Context, token, text, emojiCode string, expirationMinutes int) error

	// ClearStatus is ApplyStatus(ctx, token, "", "", 0).
	ClearStatus(ctx context.Context, token string) error
}
