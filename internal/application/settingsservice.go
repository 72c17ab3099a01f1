package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/ericfisherdev/statuspanel/internal/domain/model"
	"github.com/ericfisherdev/statuspanel/internal/domain/port/driven"
)

// SettingsService manages the persisted workspace and preset lists. Every
// mutation replaces the whole list in its store and then republishes it through
// the StatusService, which remains the single owner of UI-facing state.
//
// Store failures are logged and absorbed; the in-memory list stays authoritative
// for the rest of the session.
type SettingsService struct {
	credentials driven.CredentialStore
	presets     driven.PresetStore
	client      driven.StatusClient
	status      *StatusService
	logger      *slog.Logger

	mu sync.Mutex
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(
	credentials driven.CredentialStore,
	presets driven.PresetStore,
	client driven.StatusClient,
	status *StatusService,
	logger *slog.Logger,
) *SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{
		credentials: credentials,
		presets:     presets,
		client:      client,
		status:      status,
		logger:      logger,
	}
}

// Load reads both stores and publishes their contents. Load failures fall back
// to an empty workspace list and the default presets.
func (s *SettingsService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workspaces, err := s.credentials.Load(ctx)
	if err != nil {
		s.logStoreError("load workspaces", err)
		workspaces = nil
	}

	presets, err := s.presets.Load(ctx)
	if err != nil {
		s.logStoreError("load presets", err)
	}
	if len(presets) == 0 && err != nil {
		presets = model.DefaultPresets()
	}

	s.status.SetWorkspaces(workspaces)
	s.status.SetPresets(presets)

	s.logger.Info("settings loaded", "workspaces", len(workspaces), "presets", len(presets))
}

// Workspaces returns the current workspace list.
func (s *SettingsService) Workspaces() []model.Workspace {
	return s.status.State().Workspaces
}

// Presets returns the current preset list.
func (s *SettingsService) Presets() []model.StatusPreset {
	return s.status.State().Presets
}

// AddWorkspace validates and appends a new workspace credential.
func (s *SettingsService) AddWorkspace(ctx context.Context, name, token string) (model.Workspace, error) {
	ws := model.NewWorkspace(name, token)
	if err := ws.Validate(); err != nil {
		return model.Workspace{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	workspaces := append(s.status.State().Workspaces, ws)
	s.saveWorkspacesLocked(ctx, workspaces)

	s.logger.Info("workspace added", "workspace", ws.Name, "id", ws.ID)
	return ws, nil
}

// RemoveWorkspace deletes the workspace with the given ID.
func (s *SettingsService) RemoveWorkspace(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	workspaces := s.status.State().Workspaces
	idx := slices.IndexFunc(workspaces, func(w model.Workspace) bool { return w.ID == id })
	if idx < 0 {
		return fmt.Errorf("workspace %s: %w", id, ErrNotFound)
	}
	name := workspaces[idx].Name
	workspaces = slices.Delete(workspaces, idx, idx+1)
	s.saveWorkspacesLocked(ctx, workspaces)

	s.logger.Info("workspace removed", "workspace", name, "id", id)
	return nil
}

// TestConnection fetches the profile for token. The result is advisory only and
// is never required before AddWorkspace.
func (s *SettingsService) TestConnection(ctx context.Context, token string) (*model.RemoteProfile, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", model.ErrInvalidWorkspace)
	}
	profile, err := s.client.FetchProfile(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("test connection: %w", err)
	}
	return profile, nil
}

// AddPreset validates and appends a preset. A preset without an ID receives one.
func (s *SettingsService) AddPreset(ctx context.Context, preset model.StatusPreset) (model.StatusPreset, error) {
	if preset.ID == "" {
		preset = model.NewStatusPreset(preset.Emoji, preset.DisplayEmoji, preset.Text, preset.ExpirationMinutes)
	}
	preset.Text = strings.TrimSpace(preset.Text)
	preset.Emoji = strings.TrimSpace(preset.Emoji)
	preset.DisplayEmoji = strings.TrimSpace(preset.DisplayEmoji)
	if err := preset.Validate(); err != nil {
		return model.StatusPreset{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	presets := append(s.status.State().Presets, preset)
	s.savePresetsLocked(ctx, presets)

	s.logger.Info("preset added", "text", preset.Text, "id", preset.ID)
	return preset, nil
}

// RemovePreset deletes the preset with the given ID.
func (s *SettingsService) RemovePreset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	presets := s.status.State().Presets
	idx := slices.IndexFunc(presets, func(p model.StatusPreset) bool { return p.ID == id })
	if idx < 0 {
		return fmt.Errorf("preset %s: %w", id, ErrNotFound)
	}
	presets = slices.Delete(presets, idx, idx+1)
	s.savePresetsLocked(ctx, presets)

	s.logger.Info("preset removed", "id", id)
	return nil
}

// MovePreset moves the preset at index from so that it ends up at index to.
func (s *SettingsService) MovePreset(ctx context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	presets := s.status.State().Presets
	if from < 0 || from >= len(presets) || to < 0 || to >= len(presets) {
		return fmt.Errorf("%w: from %d to %d with %d presets", ErrInvalidMove, from, to, len(presets))
	}
	if from == to {
		return nil
	}

	moved := presets[from]
	presets = slices.Delete(presets, from, from+1)
	presets = slices.Insert(presets, to, moved)
	s.savePresetsLocked(ctx, presets)
	return nil
}

// ResetPresets replaces the preset list with the defaults.
func (s *SettingsService) ResetPresets(ctx context.Context) []model.StatusPreset {
	s.mu.Lock()
	defer s.mu.Unlock()

	presets := model.DefaultPresets()
	s.savePresetsLocked(ctx, presets)

	s.logger.Info("presets reset to defaults")
	return slices.Clone(presets)
}

func (s *SettingsService) saveWorkspacesLocked(ctx context.Context, workspaces []model.Workspace) {
	if err := s.credentials.Save(ctx, workspaces); err != nil {
		s.logStoreError("save workspaces", err)
	}
	s.status.SetWorkspaces(workspaces)
}

func (s *SettingsService) savePresetsLocked(ctx context.Context, presets []model.StatusPreset) {
	if err := s.presets.Save(ctx, presets); err != nil {
		s.logStoreError("save presets", err)
	}
	s.status.SetPresets(presets)
}

func (s *SettingsService) logStoreError(op string, err error) {
	var storeErr *model.StoreError
	if !errors.As(err, &storeErr) {
		storeErr = &model.StoreError{Op: op, Err: err}
	}
	s.logger.Warn("store operation failed, using fallback",
		"op", storeErr.Op,
		"kind", storeErr.Kind(),
		"error", storeErr.Err,
	)
}
