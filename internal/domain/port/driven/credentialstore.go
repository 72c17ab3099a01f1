package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/statuspanel/internal/domain/model"
)

// ErrEncryptionKeyNotSet is returned by the vault CredentialStore when
// STATUSPANEL_SECRET_KEY has not been configured.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set STATUSPANEL_SECRET_KEY")

// CredentialStore defines the driven port for secure workspace credential
// persistence. The list is always read and replaced as a whole; adapters are
// responsible for keeping tokens confidential at rest.
type CredentialStore interface {
	// Load returns the stored workspace list. Returns (nil, nil) when nothing has
	// been stored yet.
	Load(ctx context.Context) ([]model.Workspace, error)

	// Save replaces the stored workspace list.
	Save(ctx context.Context, workspaces []model.Workspace) error
}
