package application

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/statuspanel/internal/domain/model"
)

type nopClient struct{}

func (nopClient) FetchProfile(context.Context, string) (*model.RemoteProfile, error) {
	return &model.RemoteProfile{}, nil
}
func (nopClient) ApplyStatus(context.Context, string, string, string, int) error { return nil }
func (nopClient) ClearStatus(context.Context, string) error                      { return nil }

func TestHideResults_StaleGenerationIgnored(t *testing.T) {
	svc := NewStatusService(nopClient{}, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(svc.Close)

	ws := []model.Workspace{{Name: "A", Token: "xoxp-a"}}
	_, err := svc.BroadcastTo(context.Background(), ClearOperation(), ws)
	require.NoError(t, err)
	first := svc.State().Generation

	_, err = svc.BroadcastTo(context.Background(), ClearOperation(), ws)
	require.NoError(t, err)
	second := svc.State().Generation
	require.Greater(t, second, first)

	// A timer armed for the first result set fires late.
	svc.hideResults(first)
	assert.True(t, svc.State().ResultsVisible, "stale timer must not hide newer results")

	svc.hideResults(second)
	assert.False(t, svc.State().ResultsVisible)
}

func TestBroadcastTo_AfterCloseArmsNoTimer(t *testing.T) {
	svc := NewStatusService(nopClient{}, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.Close()

	outcomes, err := svc.BroadcastTo(context.Background(), ClearOperation(), []model.Workspace{{Name: "A", Token: "xoxp-a"}})
	require.NoError(t, err)
	assert.Len(t, outcomes, 1)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Nil(t, svc.dismissTimer)
	assert.True(t, svc.state.ResultsVisible)
}

func TestNewStatusService_DefaultDisplayWindow(t *testing.T) {
	svc := NewStatusService(nopClient{}, 0, nil)
	assert.Equal(t, DefaultDisplayWindow, svc.displayWindow)
}
