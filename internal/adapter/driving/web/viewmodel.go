package web

import (
	"net/url"
	"strings"
	"time"

	vm "github.com/ericfisherdev/codereviewer/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/codereviewer/internal/application"
	"github.com/ericfisherdev/codereviewer/internal/domain/model"
)

// govukDateLayout renders e.g. "14 January 2024 at 2:00pm".
const govukDateLayout = "2 January 2006 at 3:04pm"

// formatTimestamp renders t in UTC in GOV.UK style. The zero time renders empty.
func formatTimestamp(t time.Time) vm.Timestamp {
	if t.IsZero() {
		return vm.Timestamp{}
	}
	t = t.UTC()
	return vm.Timestamp{
		Display: t.Format(govukDateLayout),
		ISO:     t.Format(time.RFC3339),
	}
}

// buildNavigation returns the header navigation for the request path.
func buildNavigation(path string) []vm.NavItem {
	return []vm.NavItem{
		{Text: "Generate code review", URL: "/", Active: path == "/"},
		{Text: "View code reviews", URL: "/code-reviews", Active: strings.HasPrefix(path, "/code-reviews")},
	}
}

// isValidURL reports whether s parses as an absolute URL.
func isValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

func detailPath(id string) string {
	return "/code-reviews/" + url.PathEscape(id)
}

func toCodeReviewRows(reviews []model.CodeReview) []vm.CodeReviewRow {
	rows := make([]vm.CodeReviewRow, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, vm.CodeReviewRow{
			ID:            r.ID,
			RepositoryURL: r.RepositoryURL,
			DetailURL:     detailPath(r.ID),
			Status:        r.Status,
			Created:       formatTimestamp(r.CreatedAt),
			Updated:       formatTimestamp(r.UpdatedAt),
		})
	}
	return rows
}

func toDetailPage(d *application.ReviewDetail) vm.CodeReviewDetailPage {
	page := vm.CodeReviewDetailPage{
		ID:            d.Review.ID,
		RepositoryURL: d.Review.RepositoryURL,
		Status:        d.Review.Status,
		Created:       formatTimestamp(d.Review.CreatedAt),
		Updated:       formatTimestamp(d.Review.UpdatedAt),
		Reports:       make([]vm.ComplianceReport, 0, len(d.Review.ComplianceReports)),
		History:       make([]vm.StatusChange, 0, len(d.History)),
	}

	for _, r := range d.Review.ComplianceReports {
		page.Reports = append(page.Reports, vm.ComplianceReport{ID: r.ID, HTML: RenderMarkdown(r.Report)})
	}
	for _, e := range d.History {
		page.History = append(page.History, vm.StatusChange{Status: e.Status, ObservedAt: formatTimestamp(e.ObservedAt)})
	}

	if info := d.Repository; info != nil {
		page.Repository = &vm.RepositorySummary{
			FullName:      info.FullName,
			Description:   info.Description,
			DefaultBranch: info.DefaultBranch,
			Visibility:    info.Visibility,
			HTMLURL:       info.HTMLURL,
			Stars:         info.Stars,
			Archived:      info.Archived,
		}
	}
	return page
}

func toStandardSetOptions(sets []model.StandardSet, selected []string) []vm.StandardSetOption {
	chosen := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		chosen[id] = struct{}{}
	}

	opts := make([]vm.StandardSetOption, 0, len(sets))
	for _, s := range sets {
		_, ok := chosen[s.ID]
		opts = append(opts, vm.StandardSetOption{ID: s.ID, Name: s.Name, Checked: ok})
	}
	return opts
}

func toClassificationRows(items []model.Classification) []vm.ClassificationRow {
	rows := make([]vm.ClassificationRow, 0, len(items))
	for _, c := range items {
		rows = append(rows, vm.ClassificationRow{ID: c.ID, Name: c.Name})
	}
	return rows
}

func toStandardSetRows(sets []model.StandardSet) []vm.StandardSetRow {
	rows := make([]vm.StandardSetRow, 0, len(sets))
	for _, s := range sets {
		rows = append(rows, vm.StandardSetRow{
			ID:            s.ID,
			Name:          s.Name,
			RepositoryURL: s.RepositoryURL,
			CustomPrompt:  s.CustomPrompt,
		})
	}
	return rows
}
