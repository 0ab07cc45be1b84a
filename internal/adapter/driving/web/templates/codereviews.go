package templates

import (
	"strconv"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/codereviewer/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/codereviewer/internal/domain/model"
)

func itoa(n int) string { return strconv.Itoa(n) }

// CodeReviews renders the table of all reviews.
func CodeReviews(rows []vm.CodeReviewRow) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<h1 class="govuk-heading-l">Code Reviews</h1>`)
		if len(rows) == 0 {
			hw.raw(`<p class="govuk-body">No code reviews yet. <a class="govuk-link" href="/">Generate a code review</a>.</p>`)
			return
		}

		hw.raw(`<table class="govuk-table"><caption class="govuk-table__caption govuk-visually-hidden">Code reviews</caption>`)
		hw.raw(`<thead class="govuk-table__head"><tr class="govuk-table__row">`)
		for _, h := range []string{"Code Repository", "Created", "Updated", "Status"} {
			hw.raw(`<th scope="col" class="govuk-table__header">`)
			hw.text(h)
			hw.raw(`</th>`)
		}
		hw.raw(`</tr></thead><tbody class="govuk-table__body">`)

		for _, row := range rows {
			hw.raw(`<tr class="govuk-table__row"><td class="govuk-table__cell"><a class="govuk-link"`)
			hw.href(row.DetailURL)
			hw.attr("aria-label", "View details for code review of "+row.RepositoryURL)
			hw.raw(`>`)
			hw.text(row.RepositoryURL)
			hw.raw(`</a></td><td class="govuk-table__cell">`)
			timeElement(hw, row.Created)
			hw.raw(`</td><td class="govuk-table__cell">`)
			timeElement(hw, row.Updated)
			hw.raw(`</td><td class="govuk-table__cell">`)
			statusTag(hw, row.ID, row.Status)
			hw.raw(`</td></tr>`)
		}
		hw.raw(`</tbody></table>`)
	})
}

// CodeReviewDetail renders a single review with its reports and history.
func CodeReviewDetail(d vm.CodeReviewDetailPage) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<a href="/code-reviews" class="govuk-back-link">Back to code reviews</a>`)
		hw.raw(`<h1 class="govuk-heading-l">Code Review Details</h1>`)

		hw.raw(`<dl class="govuk-summary-list">`)
		summaryRow(hw, "Repository", func() {
			hw.raw(`<a class="govuk-link" rel="noreferrer noopener" target="_blank"`)
			hw.href(d.RepositoryURL)
			hw.raw(`>`)
			hw.text(d.RepositoryURL)
			hw.raw(`</a>`)
		})
		summaryRow(hw, "Status", func() { statusTag(hw, d.ID, d.Status) })
		summaryRow(hw, "Created", func() { timeElement(hw, d.Created) })
		summaryRow(hw, "Updated", func() { timeElement(hw, d.Updated) })
		hw.raw(`</dl>`)

		if r := d.Repository; r != nil {
			repositoryPanel(hw, r)
		}

		hw.raw(`<h2 class="govuk-heading-m">Compliance reports</h2>`)
		if len(d.Reports) == 0 {
			hw.raw(`<p class="govuk-body">No compliance reports</p>`)
		}
		for _, report := range d.Reports {
			hw.raw(`<div class="app-compliance-report govuk-body"`)
			hw.attr("id", "report-"+report.ID)
			hw.raw(`>`)
			hw.raw(report.HTML) // sanitized by RenderMarkdown
			hw.raw(`</div>`)
		}

		if len(d.History) > 0 {
			hw.raw(`<h2 class="govuk-heading-m">Status history</h2><ol class="govuk-list govuk-list--number">`)
			for _, change := range d.History {
				hw.raw(`<li>`)
				hw.text(model.FormatStatus(change.Status))
				hw.raw(` <span class="govuk-hint">`)
				timeElement(hw, change.ObservedAt)
				hw.raw(`</span></li>`)
			}
			hw.raw(`</ol>`)
		}
	})
}

func summaryRow(hw *htmlWriter, key string, value func()) {
	hw.raw(`<div class="govuk-summary-list__row"><dt class="govuk-summary-list__key">`)
	hw.text(key)
	hw.raw(`</dt><dd class="govuk-summary-list__value">`)
	value()
	hw.raw(`</dd></div>`)
}

func repositoryPanel(hw *htmlWriter, r *vm.RepositorySummary) {
	hw.raw(`<div class="govuk-inset-text app-repository-summary"><h2 class="govuk-heading-s">`)
	if r.HTMLURL != "" {
		hw.raw(`<a class="govuk-link"`)
		hw.href(r.HTMLURL)
		hw.raw(`>`)
		hw.text(r.FullName)
		hw.raw(`</a>`)
	} else {
		hw.text(r.FullName)
	}
	if r.Archived {
		hw.raw(` <strong class="govuk-tag govuk-tag--grey">Archived</strong>`)
	}
	hw.raw(`</h2>`)
	if r.Description != "" {
		hw.raw(`<p class="govuk-body">`)
		hw.text(r.Description)
		hw.raw(`</p>`)
	}
	hw.raw(`<p class="govuk-body-s">Default branch: `)
	hw.text(r.DefaultBranch)
	if r.Visibility != "" {
		hw.raw(` · Visibility: `)
		hw.text(r.Visibility)
	}
	hw.raw(` · Stars: `)
	hw.text(itoa(r.Stars))
	hw.raw(`</p></div>`)
}
