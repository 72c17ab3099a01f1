package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/statuspanel/internal/application"
)

const (
	// maxBodyBytes caps request bodies. Every request body is a small JSON object.
	maxBodyBytes = 64 << 10

	healthPath = "/api/v1/health"
)

// Handler is the HTTP driving adapter that serves the local control API.
type Handler struct {
	status   *application.StatusService
	settings *application.SettingsService
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	status *application.StatusService,
	settings *application.SettingsService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		status:   status,
		settings: settings,
		logger:   logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+healthPath, h.Health)
	mux.HandleFunc("GET /api/v1/status", h.GetStatus)
	mux.HandleFunc("POST /api/v1/status/refresh", h.RefreshStatus)
	mux.HandleFunc("POST /api/v1/broadcast", h.Broadcast)
	mux.HandleFunc("POST /api/v1/broadcast/clear", h.ClearStatus)

	mux.HandleFunc("GET /api/v1/presets", h.ListPresets)
	mux.HandleFunc("POST /api/v1/presets", h.AddPreset)
	mux.HandleFunc("DELETE /api/v1/presets/{id}", h.RemovePreset)
	mux.HandleFunc("POST /api/v1/presets/move", h.MovePreset)
	mux.HandleFunc("POST /api/v1/presets/reset", h.ResetPresets)

	mux.HandleFunc("GET /api/v1/workspaces", h.ListWorkspaces)
	mux.HandleFunc("POST /api/v1/workspaces", h.AddWorkspace)
	mux.HandleFunc("DELETE /api/v1/workspaces/{id}", h.RemoveWorkspace)
	mux.HandleFunc("POST /api/v1/workspaces/test", h.TestConnection)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = bodyLimitMiddleware(maxBodyBytes, wrapped)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: HealthStatusOK,
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// GetStatus returns the current coordinator state.
func (h *Handler) GetStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toStatusResponse(h.status.State()))
}

// RefreshStatus re-reads the current status from the first workspace and
// returns the updated state. A failed read leaves the state unchanged.
func (h *Handler) RefreshStatus(w http.ResponseWriter, r *http.Request) {
	h.status.RefreshCurrentStatus(r.Context())
	writeJSON(w, http.StatusOK, toStatusResponse(h.status.State()))
}

// Broadcast applies a stored preset to every workspace.
func (h *Handler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req BroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PresetID == "" {
		writeError(w, http.StatusBadRequest, "preset_id is required")
		return
	}

	outcomes, err := h.status.BroadcastPreset(r.Context(), req.PresetID)
	if err != nil {
		h.writeBroadcastError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBroadcastResponse(outcomes))
}

// ClearStatus clears the status on every workspace.
func (h *Handler) ClearStatus(w http.ResponseWriter, r *http.Request) {
	outcomes, err := h.status.Broadcast(r.Context(), application.ClearOperation())
	if err != nil {
		h.writeBroadcastError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBroadcastResponse(outcomes))
}

func (h *Handler) writeBroadcastError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, application.ErrBroadcastInProgress):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, application.ErrNotFound):
		writeError(w, http.StatusNotFound, "preset not found")
	default:
		h.logger.Error("broadcast failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
