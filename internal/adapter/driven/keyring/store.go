// Package keyring implements the CredentialStore port on top of the operating
// system's secret store (macOS Keychain, Secret Service on Linux, Windows
// Credential Manager) via go-keyring.
package keyring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/ericfisherdev/statuspanel/internal/domain/model"
	"github.com/ericfisherdev/statuspanel/internal/domain/port/driven"
)

const (
	// DefaultService is the keychain service name the workspace list is stored under.
	DefaultService = "com.statuspanel.workspaces"
	// DefaultAccount is the keychain account name the workspace list is stored under.
	DefaultAccount = "workspaces"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*Store)(nil)

// Store keeps the serialized workspace list as a single secret entry.
type Store struct {
	service string
	account string
}

// NewStore creates a Store for the given service/account pair. Empty values fall
// back to DefaultService and DefaultAccount.
func NewStore(service, account string) *Store {
	if service == "" {
		service = DefaultService
	}
	if account == "" {
		account = DefaultAccount
	}
	return &Store{service: service, account: account}
}

// Load returns the stored workspace list, or (nil, nil) when no entry exists.
func (s *Store) Load(_ context.Context) ([]model.Workspace, error) {
	secret, err := gokeyring.Get(s.service, s.account)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read keyring entry %s/%s: %w", s.service, s.account, err)
	}

	var workspaces []model.Workspace
	if err := json.Unmarshal([]byte(secret), &workspaces); err != nil {
		return nil, fmt.Errorf("decode keyring entry %s/%s: %w", s.service, s.account, err)
	}
	return workspaces, nil
}

// Save replaces the stored workspace list. An empty list deletes the entry.
func (s *Store) Save(_ context.Context, workspaces []model.Workspace) error {
	if len(workspaces) == 0 {
		err := gokeyring.Delete(s.service, s.account)
		if err != nil && !errors.Is(err, gokeyring.ErrNotFound) {
			return fmt.Errorf("delete keyring entry %s/%s: %w", s.service, s.account, err)
		}
		return nil
	}

	data, err := json.Marshal(workspaces)
	if err != nil {
		return fmt.Errorf("encode workspaces: %w", err)
	}

	if err := gokeyring.Set(s.service, s.account, string(data)); err != nil {
		return fmt.Errorf("write keyring entry %s/%s: %w", s.service, s.account, err)
	}
	return nil
}
