package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/statuspanel/internal/application"
	"github.com/ericfisherdev/statuspanel/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthStatusOK is the Status reported by a healthy server.
const HealthStatusOK = "ok"

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// PresetResponse is the JSON representation of a status preset.
type PresetResponse struct {
	ID                string `json:"id"`
	Emoji             string `json:"emoji"`
	DisplayEmoji      string `json:"display_emoji"`
	Text              string `json:"text"`
	ExpirationMinutes int    `json:"expiration_minutes"`
	ExpirationLabel   string `json:"expiration_label"`
}

// WorkspaceResponse is the JSON representation of a workspace. The token is
// always masked.
type WorkspaceResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// OutcomeResponse is the JSON representation of one per-workspace outcome.
type OutcomeResponse struct {
	Workspace string `json:"workspace"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// BroadcastResponse is returned by the broadcast endpoints.
type BroadcastResponse struct {
	Outcomes     []OutcomeResponse `json:"outcomes"`
	AllSucceeded bool              `json:"all_succeeded"`
}

// StatusResponse is the JSON representation of the coordinator state.
type StatusResponse struct {
	Updating       bool                `json:"updating"`
	CurrentText    string              `json:"current_text"`
	CurrentEmoji   string              `json:"current_emoji"`
	ResultsVisible bool                `json:"results_visible"`
	LastOutcomes   []OutcomeResponse   `json:"last_outcomes"`
	Presets        []PresetResponse    `json:"presets"`
	Workspaces     []WorkspaceResponse `json:"workspaces"`
	Generation     uint64              `json:"generation"`
}

// ProfileResponse is the JSON representation of a remote profile returned by a
// connection test. Absent fields are omitted.
type ProfileResponse struct {
	StatusText       *string `json:"status_text,omitempty"`
	StatusEmoji      *string `json:"status_emoji,omitempty"`
	StatusExpiration *int64  `json:"status_expiration,omitempty"`
}

// BroadcastRequest is the JSON body for the broadcast endpoint.
type BroadcastRequest struct {
	PresetID string `json:"preset_id"`
}

// AddPresetRequest is the JSON body for the add preset endpoint.
type AddPresetRequest struct {
	Emoji             string `json:"emoji"`
	DisplayEmoji      string `json:"display_emoji"`
	Text              string `json:"text"`
	ExpirationMinutes int    `json:"expiration_minutes"`
}

// MovePresetRequest is the JSON body for the move preset endpoint.
type MovePresetRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// AddWorkspaceRequest is the JSON body for the add workspace endpoint.
type AddWorkspaceRequest struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

// TestConnectionRequest is the JSON body for the connection test endpoint.
type TestConnectionRequest struct {
	Token string `json:"token"`
}

// toPresetResponse converts a domain StatusPreset to its JSON representation.
func toPresetResponse(p model.StatusPreset) PresetResponse {
	return PresetResponse{
		ID:                p.ID,
		Emoji:             p.Emoji,
		DisplayEmoji:      p.DisplayEmoji,
		Text:              p.Text,
		ExpirationMinutes: p.ExpirationMinutes,
		ExpirationLabel:   p.ExpirationLabel(),
	}
}

func toPresetResponses(presets []model.StatusPreset) []PresetResponse {
	resp := make([]PresetResponse, 0, len(presets))
	for _, p := range presets {
		resp = append(resp, toPresetResponse(p))
	}
	return resp
}

// toWorkspaceResponse converts a domain Workspace to its JSON representation.
func toWorkspaceResponse(ws model.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:    ws.ID,
		Name:  ws.Name,
		Token: ws.MaskedToken(),
	}
}

func toWorkspaceResponses(workspaces []model.Workspace) []WorkspaceResponse {
	resp := make([]WorkspaceResponse, 0, len(workspaces))
	for _, ws := range workspaces {
		resp = append(resp, toWorkspaceResponse(ws))
	}
	return resp
}

// toOutcomeResponse converts a domain Outcome to its JSON representation.
func toOutcomeResponse(o model.Outcome) OutcomeResponse {
	switch o := o.(type) {
	case model.Failure:
		return OutcomeResponse{Workspace: o.WorkspaceName, Error: o.Message}
	default:
		return OutcomeResponse{Workspace: o.Workspace(), Success: true}
	}
}

func toOutcomeResponses(outcomes []model.Outcome) []OutcomeResponse {
	resp := make([]OutcomeResponse, 0, len(outcomes))
	for _, o := range outcomes {
		resp = append(resp, toOutcomeResponse(o))
	}
	return resp
}

// toBroadcastResponse converts broadcast outcomes to their JSON representation.
func toBroadcastResponse(outcomes []model.Outcome) BroadcastResponse {
	return BroadcastResponse{
		Outcomes:     toOutcomeResponses(outcomes),
		AllSucceeded: model.AllSucceeded(outcomes),
	}
}

// toStatusResponse converts a coordinator snapshot to its JSON representation.
func toStatusResponse(st application.State) StatusResponse {
	return StatusResponse{
		Updating:       st.Updating,
		CurrentText:    st.CurrentText,
		CurrentEmoji:   st.CurrentEmoji,
		ResultsVisible: st.ResultsVisible,
		LastOutcomes:   toOutcomeResponses(st.LastOutcomes),
		Presets:        toPresetResponses(st.Presets),
		Workspaces:     toWorkspaceResponses(st.Workspaces),
		Generation:     st.Generation,
	}
}

// toProfileResponse converts a RemoteProfile to its JSON representation.
func toProfileResponse(p model.RemoteProfile) ProfileResponse {
	return ProfileResponse{
		StatusText:       p.StatusText,
		StatusEmoji:      p.StatusEmoji,
		StatusExpiration: p.StatusExpiration,
	}
}
