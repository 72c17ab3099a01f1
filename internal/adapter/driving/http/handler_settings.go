package httphandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ericfisherdev/statuspanel/internal/application"
	"github.com/ericfisherdev/statuspanel/internal/domain/model"
)

// ListPresets returns the preset list in display order.
func (h *Handler) ListPresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toPresetResponses(h.settings.Presets()))
}

// AddPreset appends a new preset.
func (h *Handler) AddPreset(w http.ResponseWriter, r *http.Request) {
	var req AddPresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	preset, err := h.settings.AddPreset(r.Context(), model.StatusPreset{
		Emoji:             req.Emoji,
		DisplayEmoji:      req.DisplayEmoji,
		Text:              req.Text,
		ExpirationMinutes: req.ExpirationMinutes,
	})
	if err != nil {
		if errors.Is(err, model.ErrInvalidPreset) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to add preset", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toPresetResponse(preset))
}

// RemovePreset deletes a preset by ID.
func (h *Handler) RemovePreset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.settings.RemovePreset(r.Context(), id); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			writeError(w, http.StatusNotFound, "preset not found")
			return
		}
		h.logger.Error("failed to remove preset", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MovePreset reorders the preset list and returns the new order.
func (h *Handler) MovePreset(w http.ResponseWriter, r *http.Request) {
	var req MovePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.settings.MovePreset(r.Context(), req.From, req.To); err != nil {
		if errors.Is(err, application.ErrInvalidMove) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to move preset", "from", req.From, "to", req.To, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toPresetResponses(h.settings.Presets()))
}

// ResetPresets replaces the preset list with the defaults.
func (h *Handler) ResetPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toPresetResponses(h.settings.ResetPresets(r.Context())))
}

// ListWorkspaces returns all workspaces with masked tokens.
func (h *Handler) ListWorkspaces(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toWorkspaceResponses(h.settings.Workspaces()))
}

// AddWorkspace stores a new workspace credential.
func (h *Handler) AddWorkspace(w http.ResponseWriter, r *http.Request) {
	var req AddWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws, err := h.settings.AddWorkspace(r.Context(), req.Name, req.Token)
	if err != nil {
		if errors.Is(err, model.ErrInvalidWorkspace) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to add workspace", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toWorkspaceResponse(ws))
}

// RemoveWorkspace deletes a workspace credential by ID.
func (h *Handler) RemoveWorkspace(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.settings.RemoveWorkspace(r.Context(), id); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			writeError(w, http.StatusNotFound, "workspace not found")
			return
		}
		h.logger.Error("failed to remove workspace", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TestConnection checks a token against the remote API and returns the
// profile's current status.
func (h *Handler) TestConnection(w http.ResponseWriter, r *http.Request) {
	var req TestConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.settings.TestConnection(r.Context(), req.Token)
	if err != nil {
		var remoteErr *model.RemoteError
		switch {
		case errors.Is(err, model.ErrInvalidWorkspace):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &remoteErr):
			writeError(w, http.StatusBadGateway, remoteErr.Message)
		default:
			h.logger.Error("connection test failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(*profile))
}
