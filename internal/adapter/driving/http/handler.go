// Package httphandler is the JSON driving adapter: the review status endpoint,
// the health check and the middleware shared with the HTML pages.
package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/codereviewer/internal/application"
	"github.com/ericfisherdev/codereviewer/internal/domain/port/driven"
)

// Handler serves the JSON endpoints.
type Handler struct {
	statusSvc *application.StatusService
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(statusSvc *application.StatusService, logger *slog.Logger) *Handler {
	return &Handler{
		statusSvc: statusSvc,
		logger:    logger,
	}
}

// RegisterAPIRoutes registers the JSON routes on mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/code-reviews/{id}/status", h.GetReviewStatus)
	mux.HandleFunc("GET /health", h.Health)
}

// GetReviewStatus returns the current status of one review, as polled by the
// status badges. A backend error status is passed through to the caller.
func (h *Handler) GetReviewStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	snapshot, err := h.statusSvc.CurrentStatus(r.Context(), id)
	if err != nil {
		var apiErr *driven.APIError
		if errors.As(err, &apiErr) {
			h.logger.Warn("backend rejected status request", "review_id", id, "status", apiErr.StatusCode)
			writeError(w, apiErr.StatusCode, "Failed to fetch review status")
			return
		}
		h.logger.Error("failed to fetch review status", "review_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{ID: snapshot.ID, Status: snapshot.Status})
}

// Health reports that the process is serving requests.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Message: "success"})
}
