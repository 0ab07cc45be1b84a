package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Static assets are served from the embedded filesystem at /public/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /public/", http.StripPrefix("/public/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("POST /{$}", h.requireCSRF(h.CreateCodeReview))

	mux.HandleFunc("GET /code-reviews", h.CodeReviews)
	mux.HandleFunc("GET /code-reviews/{id}", h.CodeReviewDetail)

	mux.HandleFunc("GET /standards", h.StandardsHome)
	mux.HandleFunc("GET /standards/classifications", h.Classifications)
	mux.HandleFunc("POST /standards/classifications/create", h.requireCSRF(h.CreateClassification))
	mux.HandleFunc("POST /standards/classifications/{id}/delete", h.requireCSRF(h.DeleteClassification))

	mux.HandleFunc("GET /standards/standard-sets", h.StandardSets)
	mux.HandleFunc("GET /standards/standard-sets/create", h.ShowCreateStandardSet)
	mux.HandleFunc("POST /standards/standard-sets", h.requireCSRF(h.CreateStandardSet))
	mux.HandleFunc("POST /standards/standard-sets/{id}/delete", h.requireCSRF(h.DeleteStandardSet))
	mux.HandleFunc("DELETE /standards/standard-sets/{id}", h.requireCSRF(h.DeleteStandardSet))

	mux.HandleFunc("GET /", h.NotFound)
}
