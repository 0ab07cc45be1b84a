package web

import (
	"errors"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/ericfisherdev/codereviewer/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/codereviewer/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/codereviewer/internal/domain/model"
	"github.com/ericfisherdev/codereviewer/internal/domain/port/driven"
)

// classificationNamePattern allows letters, digits, whitespace, '#', '.' and '-'.
var classificationNamePattern = regexp.MustCompile(`^[A-Za-z0-9\s#.-]+$`)

const createStandardSetFailed = "Unable to create standard set. Please try again later."

func internalError(message string) vm.ErrorPage {
	return vm.ErrorPage{Heading: "Internal Server Error", Message: message}
}

// StandardsHome renders the standards management landing page.
func (h *Handler) StandardsHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "Standards Management", templates.StandardsHome())
}

// Classifications lists classifications with the create form.
func (h *Handler) Classifications(w http.ResponseWriter, r *http.Request) {
	token := h.token(w, r)

	items, err := h.api.ListClassifications(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch classifications", "error", err)
		h.renderError(w, r, http.StatusInternalServerError, internalError("Unable to fetch classifications. Please try again later."))
		return
	}

	data := vm.ClassificationsPage{Classifications: toClassificationRows(items)}
	h.render(w, r, http.StatusOK, "Manage Classifications", templates.Classifications(data, token))
}

// CreateClassification validates and adds a classification.
func (h *Handler) CreateClassification(w http.ResponseWriter, r *http.Request) {
	token := h.token(w, r)
	name := strings.TrimSpace(r.FormValue("name"))

	var msg string
	switch {
	case name == "":
		msg = "Enter a classification name"
	case !classificationNamePattern.MatchString(name):
		msg = "Classification name can only contain letters, numbers, spaces, dots, hyphens and hash symbols"
	}

	if msg != "" {
		data := vm.ClassificationsPage{
			Name:      name,
			NameError: msg,
			Errors:    []vm.ErrorItem{{Text: msg, Href: "#name"}},
		}
		if items, err := h.api.ListClassifications(r.Context()); err == nil {
			data.Classifications = toClassificationRows(items)
		}
		h.render(w, r, http.StatusBadRequest, "Manage Classifications", templates.Classifications(data, token))
		return
	}

	if err := h.api.CreateClassification(r.Context(), name); err != nil {
		h.logger.Error("failed to create classification", "name", name, "error", err)
		h.renderError(w, r, http.StatusInternalServerError, internalError("Unable to create classification. Please try again later."))
		return
	}

	http.Redirect(w, r, "/standards/classifications", http.StatusFound)
}

// DeleteClassification removes a classification.
func (h *Handler) DeleteClassification(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.api.DeleteClassification(r.Context(), id); err != nil {
		h.logger.Error("failed to delete classification", "classification_id", id, "error", err)
		h.renderError(w, r, http.StatusInternalServerError, internalError("Unable to delete classification. Please try again later."))
		return
	}

	http.Redirect(w, r, "/standards/classifications", http.StatusFound)
}

// StandardSets lists standard sets.
func (h *Handler) StandardSets(w http.ResponseWriter, r *http.Request) {
	token := h.token(w, r)

	sets, err := h.api.ListStandardSets(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch standard sets", "error", err)
		h.renderError(w, r, http.StatusInternalServerError, internalError("Unable to fetch standard sets. Please try again later."))
		return
	}

	data := vm.StandardSetsPage{StandardSets: toStandardSetRows(sets)}
	h.render(w, r, http.StatusOK, "Manage Standard Sets", templates.StandardSets(data, token))
}

// ShowCreateStandardSet renders the empty create form.
func (h *Handler) ShowCreateStandardSet(w http.ResponseWriter, r *http.Request) {
	token := h.token(w, r)
	h.render(w, r, http.StatusOK, "Add Standard Set", templates.CreateStandardSet(vm.StandardSetForm{}, token))
}

// CreateStandardSet validates the form and adds a standard set. Backend
// validation errors are shown against their fields.
func (h *Handler) CreateStandardSet(w http.ResponseWriter, r *http.Request) {
	token := h.token(w, r)
	input := model.StandardSetInput{
		Name:          strings.TrimSpace(r.FormValue("name")),
		RepositoryURL: strings.TrimSpace(r.FormValue("repository_url")),
		CustomPrompt:  r.FormValue("custom_prompt"),
	}

	form := vm.StandardSetForm{
		Name:          input.Name,
		RepositoryURL: input.RepositoryURL,
		CustomPrompt:  input.CustomPrompt,
		FieldErrors:   map[string]string{},
	}
	rerender := func(status int) {
		h.render(w, r, status, "Add Standard Set", templates.CreateStandardSet(form, token))
	}

	if input.Name == "" {
		form.FieldErrors["name"] = "Enter a standard set name"
	}
	if input.RepositoryURL == "" {
		form.FieldErrors["repository_url"] = "Enter a repository URL"
	}
	if len(form.FieldErrors) > 0 {
		form.Errors = fieldErrorItems(form.FieldErrors)
		rerender(http.StatusBadRequest)
		return
	}

	err := h.api.CreateStandardSet(r.Context(), input)
	if err == nil {
		http.Redirect(w, r, "/standards/standard-sets", http.StatusFound)
		return
	}

	var apiErr *driven.APIError
	if !errors.As(err, &apiErr) {
		h.logger.Error("failed to create standard set", "error", err)
		form.Errors = []vm.ErrorItem{{Text: createStandardSetFailed}}
		rerender(http.StatusInternalServerError)
		return
	}

	h.logger.Error("backend rejected standard set", "status", apiErr.StatusCode, "message", apiErr.Message)

	if apiErr.StatusCode == http.StatusBadRequest && len(apiErr.FieldErrors) > 0 {
		for key, fe := range apiErr.FieldErrors {
			field := fe.Field
			if field == "" {
				field = key
			}
			form.FieldErrors[field] = fe.Message
		}
		form.Errors = fieldErrorItems(form.FieldErrors)
		rerender(http.StatusBadRequest)
		return
	}

	msg := apiErr.Message
	if msg == "" {
		msg = createStandardSetFailed
	}
	form.Errors = []vm.ErrorItem{{Text: msg}}
	rerender(http.StatusBadRequest)
}

// DeleteStandardSet removes a standard set. It serves both the POST
// .../delete route and DELETE via method override.
func (h *Handler) DeleteStandardSet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.api.DeleteStandardSet(r.Context(), id); err != nil {
		h.logger.Error("failed to delete standard set", "standard_set_id", id, "error", err)
		h.renderError(w, r, http.StatusInternalServerError, internalError("Unable to delete standard set. Please try again later."))
		return
	}

	http.Redirect(w, r, "/standards/standard-sets", http.StatusFound)
}

// fieldErrorItems builds a stable error summary from per-field messages.
func fieldErrorItems(fields map[string]string) []vm.ErrorItem {
	order := map[string]int{"name": 0, "repository_url": 1, "custom_prompt": 2}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iok := order[keys[i]]
		oj, jok := order[keys[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})

	items := make([]vm.ErrorItem, 0, len(keys))
	for _, k := range keys {
		items = append(items, vm.ErrorItem{Text: fields[k], Href: "#" + strings.ReplaceAll(k, "_", "-")})
	}
	return items
}
