// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/codereviewer/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/codereviewer/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/codereviewer/internal/application"
	"github.com/ericfisherdev/codereviewer/internal/domain/port/driven"
)

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	api           driven.ReviewAPI
	reviewSvc     *application.ReviewService
	secureCookies bool
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	api driven.ReviewAPI,
	reviewSvc *application.ReviewService,
	secureCookies bool,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		api:           api,
		reviewSvc:     reviewSvc,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// render writes body inside the layout with the given status. The page is
// rendered to a buffer first so a template error can still become a 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	page := vm.Page{
		Title:      title,
		Navigation: buildNavigation(r.URL.Path),
	}

	var buf bytes.Buffer
	if err := templates.Layout(page, body).Render(r.Context(), &buf); err != nil {
		h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, data vm.ErrorPage) {
	h.render(w, r, status, data.Heading, templates.ErrorPage(data))
}

// serviceError is the generic page for unexpected failures.
var serviceError = vm.ErrorPage{
	Heading: "Sorry, there is a problem with the service",
	Message: "Try again later. If the problem persists, please contact support.",
}

func (h *Handler) token(w http.ResponseWriter, r *http.Request) string {
	return csrfToken(w, r, h.secureCookies)
}

// requireCSRF rejects state-changing requests whose token does not match the cookie.
func (h *Handler) requireCSRF(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !validateCSRF(r) {
			h.logger.Warn("csrf validation failed", "method", r.Method, "path", r.URL.Path)
			h.renderError(w, r, http.StatusForbidden, vm.ErrorPage{
				Heading: "Your session has expired",
				Message: "Go back, refresh the page and try again.",
			})
			return
		}
		next(w, r)
	}
}

// NotFound renders the page shown for unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, vm.ErrorPage{
		Heading: "Page not found",
		Message: "If you typed the web address, check it is correct.",
	})
}

// apiStatus returns the backend status code carried by err, or 0.
func apiStatus(err error) int {
	var apiErr *driven.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
