package application_test

import (
	"context"
	"sync"

	"github.com/ericfisherdev/statuspanel/internal/domain/model"
)

// --- Mock implementations ---

type statusCall struct {
	Method string
	Token  string
	Text   string
	Emoji  string
	Mins   int
}

type mockStatusClient struct {
	fetchProfile func(ctx context.Context, token string) (*model.RemoteProfile, error)
	applyStatus  func(ctx context.Context, token, text, emoji string, mins int) error
	clearStatus  func(ctx context.Context, token string) error

	mu    sync.Mutex
	calls []statusCall
}

func (m *mockStatusClient) record(c statusCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

func (m *mockStatusClient) Calls() []statusCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]statusCall(nil), m.calls...)
}

func (m *mockStatusClient) FetchProfile(ctx context.Context, token string) (*model.RemoteProfile, error) {
	m.record(statusCall{Method: "fetch", Token: token})
	if m.fetchProfile == nil {
		return &model.RemoteProfile{}, nil
	}
	return m.fetchProfile(ctx, token)
}

func (m *mockStatusClient) ApplyStatus(ctx context.Context, token, text, emoji string, mins int) error {
	m.record(statusCall{Method: "apply", Token: token, Text: text, Emoji: emoji, Mins: mins})
	if m.applyStatus == nil {
		return nil
	}
	return m.applyStatus(ctx, token, text, emoji, mins)
}

func (m *mockStatusClient) ClearStatus(ctx context.Context, token string) error {
	m.record(statusCall{Method: "clear", Token: token})
	if m.clearStatus == nil {
		return nil
	}
	return m.clearStatus(ctx, token)
}

type mockCredentialStore struct {
	stored  []model.Workspace
	loadErr error
	saveErr error
	saves   int
}

func (m *mockCredentialStore) Load(_ context.Context) ([]model.Workspace, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]model.Workspace(nil), m.stored...), nil
}

func (m *mockCredentialStore) Save(_ context.Context, workspaces []model.Workspace) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stored = append([]model.Workspace(nil), workspaces...)
	return nil
}

type mockPresetStore struct {
	stored  []model.StatusPreset
	loadErr error
	saveErr error
	saves   int
}

func (m *mockPresetStore) Load(_ context.Context) ([]model.StatusPreset, error) {
	if m.loadErr != nil {
		return model.DefaultPresets(), m.loadErr
	}
	if m.stored == nil {
		return model.DefaultPresets(), nil
	}
	return append([]model.StatusPreset(nil), m.stored...), nil
}

func (m *mockPresetStore) Save(_ context.Context, presets []model.StatusPreset) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stored = append([]model.StatusPreset(nil), presets...)
	return nil
}
