// Package application contains use-case orchestration services.
package application

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/statuspanel/internal/domain/model"
	"github.com/ericfisherdev/statuspanel/internal/domain/port/driven"
)

// DefaultDisplayWindow is how long a result set stays visible after a broadcast.
const DefaultDisplayWindow = 3 * time.Second

// State is a read-only snapshot of everything the presentation layer renders.
type State struct {
	Updating       bool
	LastOutcomes   []model.Outcome
	ResultsVisible bool
	CurrentText    string
	CurrentEmoji   string
	Presets        []model.StatusPreset
	Workspaces     []model.Workspace

	// Generation increments with every published result set. The dismissal timer
	// only hides results whose generation is still current.
	Generation uint64
}

// clone returns a deep copy so callers can never mutate service-owned slices.
func (s State) clone() State {
	s.LastOutcomes = slices.Clone(s.LastOutcomes)
	s.Presets = slices.Clone(s.Presets)
	s.Workspaces = slices.Clone(s.Workspaces)
	return s
}

// StatusService is the fan-out coordinator. It owns the UI-facing state; fan-out
// goroutines never touch that state and hand their outcomes back over a channel,
// which the coordinator collects after a full barrier before publishing.
type StatusService struct {
	client        driven.StatusClient
	displayWindow time.Duration
	logger        *slog.Logger

	mu           sync.Mutex
	state        State
	dismissTimer *time.Timer
	subs         map[chan State]struct{}
	closed       bool
}

// NewStatusService creates a StatusService. A non-positive displayWindow falls
// back to DefaultDisplayWindow.
func NewStatusService(client driven.StatusClient, displayWindow time.Duration, logger *slog.Logger) *StatusService {
	if displayWindow <= 0 {
		displayWindow = DefaultDisplayWindow
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusService{
		client:        client,
		displayWindow: displayWindow,
		logger:        logger,
		subs:          make(map[chan State]struct{}),
	}
}

// State returns a snapshot of the current state.
func (s *StatusService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// SetWorkspaces replaces the workspace list exposed to the presentation layer and
// used by subsequent broadcasts.
func (s *StatusService) SetWorkspaces(workspaces []model.Workspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Workspaces = slices.Clone(workspaces)
	s.publishLocked()
}

// SetPresets replaces the preset list exposed to the presentation layer.
func (s *StatusService) SetPresets(presets []model.StatusPreset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Presets = slices.Clone(presets)
	s.publishLocked()
}

// Broadcast applies op to a snapshot of the current workspace list.
func (s *StatusService) Broadcast(ctx context.Context, op Operation) ([]model.Outcome, error) {
	s.mu.Lock()
	workspaces := slices.Clone(s.state.Workspaces)
	s.mu.Unlock()

	return s.BroadcastTo(ctx, op, workspaces)
}

// BroadcastPreset looks up a preset by ID and broadcasts it.
func (s *StatusService) BroadcastPreset(ctx context.Context, presetID string) ([]model.Outcome, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.state.Presets, func(p model.StatusPreset) bool { return p.ID == presetID })
	var preset model.StatusPreset
	if idx >= 0 {
		preset = s.state.Presets[idx]
	}
	s.mu.Unlock()

	if idx < 0 {
		return nil, ErrNotFound
	}
	return s.Broadcast(ctx, ApplyPreset(preset))
}

// BroadcastTo runs one remote call per workspace concurrently and publishes the
// aggregated outcomes once every call has finished.
//
// An empty workspace list is a no-op. A broadcast requested while another is still
// running is rejected with ErrBroadcastInProgress and changes nothing. Individual
// failures become model.Failure outcomes and never abort the other calls. Started
// calls are not canceled when ctx is; they always run to completion.
func (s *StatusService) BroadcastTo(ctx context.Context, op Operation, workspaces []model.Workspace) ([]model.Outcome, error) {
	if len(workspaces) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	if s.state.Updating {
		s.mu.Unlock()
		return nil, ErrBroadcastInProgress
	}
	s.state.Updating = true
	s.state.LastOutcomes = nil
	s.state.ResultsVisible = false
	s.publishLocked()
	s.mu.Unlock()

	start := time.Now()
	outcomes := s.fanOut(context.WithoutCancel(ctx), op, workspaces)

	s.mu.Lock()
	s.state.LastOutcomes = outcomes
	s.state.Updating = false
	if op.IsClear() {
		s.state.CurrentText = ""
		s.state.CurrentEmoji = ""
	} else {
		s.state.CurrentText = op.Preset().Text
		s.state.CurrentEmoji = op.Preset().DisplayEmoji
	}
	s.state.ResultsVisible = true
	s.state.Generation++
	s.scheduleDismissLocked(s.state.Generation)
	s.publishLocked()
	s.mu.Unlock()

	s.logger.Info("status broadcast complete",
		"operation", op.String(),
		"workspaces", len(workspaces),
		"failures", model.CountFailures(outcomes),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return slices.Clone(outcomes), nil
}

// fanOut launches one goroutine per workspace and waits for all of them.
// Outcomes are returned in completion order.
func (s *StatusService) fanOut(ctx context.Context, op Operation, workspaces []model.Workspace) []model.Outcome {
	results := make(chan model.Outcome, len(workspaces))

	var g errgroup.Group
	for _, ws := range workspaces {
		g.Go(func() error {
			if err := s.invoke(ctx, op, ws.Token); err != nil {
				s.logger.Warn("workspace status update failed",
					"workspace", ws.Name,
					"operation", op.String(),
					"error", err,
				)
				results <- model.Failure{WorkspaceName: ws.Name, Message: err.Error()}
				return nil
			}
			results <- model.Success{WorkspaceName: ws.Name}
			return nil
		})
	}

	// Units never return errors; Wait is purely the barrier.
	_ = g.Wait()
	close(results)

	outcomes := make([]model.Outcome, 0, len(workspaces))
	for o := range results {
		outcomes = append(outcomes, o)
	}
	return outcomes
}

func (s *StatusService) invoke(ctx context.Context, op Operation, token string) error {
	if op.IsClear() {
		return s.client.ClearStatus(ctx, token)
	}
	p := op.Preset()
	return s.client.ApplyStatus(ctx, token, p.Text, p.Emoji, p.ExpirationMinutes)
}

// scheduleDismissLocked arms the auto-hide timer for the result set with the
// given generation. Caller must hold s.mu.
func (s *StatusService) scheduleDismissLocked(generation uint64) {
	if s.dismissTimer != nil {
		s.dismissTimer.Stop()
		s.dismissTimer = nil
	}
	if s.closed {
		return
	}
	s.dismissTimer = time.AfterFunc(s.displayWindow, func() {
		s.hideResults(generation)
	})
}

// hideResults hides the result set only if no newer one has been published since.
func (s *StatusService) hideResults(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Generation != generation || !s.state.ResultsVisible {
		return
	}
	s.state.ResultsVisible = false
	s.publishLocked()
}

// RefreshCurrentStatus reads the profile of the first workspace and updates the
// cached current status. Failures are logged and otherwise ignored. A result
// set published while the fetch was in flight wins over the fetched profile.
func (s *StatusService) RefreshCurrentStatus(ctx context.Context) {
	s.mu.Lock()
	if len(s.state.Workspaces) == 0 {
		s.mu.Unlock()
		return
	}
	first := s.state.Workspaces[0]
	generation := s.state.Generation
	s.mu.Unlock()

	profile, err := s.client.FetchProfile(ctx, first.Token)
	if err != nil {
		s.logger.Warn("failed to fetch current status", "workspace", first.Name, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Generation != generation {
		s.logger.Debug("discarding stale status refresh", "workspace", first.Name)
		return
	}
	s.state.CurrentText = profile.Text()
	s.state.CurrentEmoji = s.displayEmojiLocked(profile.Emoji())
	s.publishLocked()
}

// displayEmojiLocked maps an API emoji code to the display glyph of a preset
// using the same code. Unknown codes are returned unchanged.
func (s *StatusService) displayEmojiLocked(code string) string {
	if code == "" {
		return ""
	}
	for _, p := range s.state.Presets {
		if p.Emoji == code && p.DisplayEmoji != "" {
			return p.DisplayEmoji
		}
	}
	return code
}

// Subscribe returns a channel receiving a snapshot after every state change. The
// channel holds only the most recent snapshot; slow readers skip intermediate ones.
func (s *StatusService) Subscribe() <-chan State {
	ch := make(chan State, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe stops delivery to ch and closes it.
func (s *StatusService) Unsubscribe(ch <-chan State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs {
		if sub == ch {
			delete(s.subs, sub)
			close(sub)
			return
		}
	}
}

// Close stops the pending dismissal timer and closes all subscriber channels.
// Broadcasts finishing afterwards still update state but arm no timer.
func (s *StatusService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.dismissTimer != nil {
		s.dismissTimer.Stop()
		s.dismissTimer = nil
	}
	for sub := range s.subs {
		close(sub)
		delete(s.subs, sub)
	}
}

// publishLocked delivers the current snapshot to every subscriber without
// blocking. Caller must hold s.mu.
func (s *StatusService) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	snapshot := s.state.clone()
	for sub := range s.subs {
		select {
		case sub <- snapshot:
		default:
			// Drop the stale snapshot so the newest one is delivered.
			select {
			case <-sub:
			default:
			}
			select {
			case sub <- snapshot:
			default:
			}
		}
	}
}
