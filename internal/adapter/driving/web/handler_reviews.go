package web

import (
	"net/http"
	"strings"

	"github.com/ericfisherdev/codereviewer/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/codereviewer/internal/adapter/driving/web/viewmodel"
)

// Home renders the generate code review form.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	token := h.token(w, r)
	data := vm.HomePage{StandardSets: h.standardSetOptions(r, nil)}
	h.render(w, r, http.StatusOK, "Home", templates.Home(data, token))
}

// CreateCodeReview validates the form, starts a review and redirects to it.
func (h *Handler) CreateCodeReview(w http.ResponseWriter, r *http.Request) {
	token := h.token(w, r)
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, vm.ErrorPage{Heading: "Invalid request", Message: "The form could not be read."})
		return
	}

	repositoryURL := strings.TrimSpace(r.PostForm.Get("repository_url"))
	selected := r.PostForm["standard_sets"]

	fail := func(msg string) {
		data := vm.HomePage{
			RepositoryURL:      repositoryURL,
			RepositoryURLError: msg,
			StandardSets:       h.standardSetOptions(r, selected),
			Errors:             []vm.ErrorItem{{Text: msg, Href: "#repository-url"}},
		}
		h.render(w, r, http.StatusOK, "Home", templates.Home(data, token))
	}

	switch {
	case repositoryURL == "":
		fail("Enter a repository URL")
		return
	case !isValidURL(repositoryURL):
		fail("Enter a valid URL")
		return
	}

	review, err := h.api.CreateCodeReview(r.Context(), repositoryURL, selected)
	if err != nil {
		h.logger.Error("failed to create code review", "repository_url", repositoryURL, "error", err)
		fail("Error creating code review. Please try again.")
		return
	}

	h.logger.Info("code review created", "review_id", review.ID, "repository_url", repositoryURL)
	http.Redirect(w, r, detailPath(review.ID), http.StatusFound)
}

// standardSetOptions loads the checkbox list. A failure is logged and the
// form renders without standard sets.
func (h *Handler) standardSetOptions(r *http.Request, selected []string) []vm.StandardSetOption {
	sets, err := h.api.ListStandardSets(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch standard sets", "error", err)
		return nil
	}
	return toStandardSetOptions(sets, selected)
}

// CodeReviews renders the table of all reviews.
func (h *Handler) CodeReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.api.ListCodeReviews(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch code reviews", "error", err)
		h.renderError(w, r, http.StatusInternalServerError, vm.ErrorPage{
			Heading: "Error",
			Message: "Unable to fetch code reviews",
		})
		return
	}

	h.render(w, r, http.StatusOK, "Code Reviews", templates.CodeReviews(toCodeReviewRows(reviews)))
}

// CodeReviewDetail renders one review.
func (h *Handler) CodeReviewDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	detail, err := h.reviewSvc.Detail(r.Context(), id)
	if err != nil {
		status := apiStatus(err)
		switch status {
		case http.StatusNotFound:
			h.renderError(w, r, status, vm.ErrorPage{
				Heading: "Code review not found",
				Message: "The code review you are looking for does not exist. This may be because:",
				MessageList: []string{
					"the URL is incorrect",
					"the code review has been deleted",
					"you do not have permission to view this code review",
				},
			})
		case http.StatusUnauthorized:
			h.renderError(w, r, status, vm.ErrorPage{
				Heading: "You are not authorized to view this code review",
				Message: "Please check that you have the correct permissions and try again.",
			})
		case http.StatusForbidden:
			h.renderError(w, r, status, vm.ErrorPage{
				Heading: "You do not have permission to view this code review",
				Message: "Please contact your administrator if you believe this is incorrect.",
			})
		default:
			h.logger.Error("failed to fetch code review", "review_id", id, "error", err)
			h.renderError(w, r, http.StatusInternalServerError, serviceError)
		}
		return
	}

	h.render(w, r, http.StatusOK, "Code Review Details", templates.CodeReviewDetail(toDetailPage(detail)))
}
