package templates

import (
	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/codereviewer/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/codereviewer/internal/domain/model"
)

// CSRFFieldName is the hidden form field carrying the CSRF token.
const CSRFFieldName = "csrf_token"

// StatusTag renders the review status badge the status poller patches in
// place. Text, label and class all derive from the same raw status.
func StatusTag(reviewID, status string) templ.Component {
	return component(func(hw *htmlWriter) {
		statusTag(hw, reviewID, status)
	})
}

func statusTag(hw *htmlWriter, reviewID, status string) {
	hw.raw(`<strong`)
	hw.attr("class", model.StatusTagClass(status))
	hw.raw(` role="status"`)
	hw.attr("data-review-id", reviewID)
	hw.attr("aria-label", model.StatusAriaLabel(status))
	hw.raw(`>`)
	hw.text(model.FormatStatus(status))
	hw.raw(`</strong>`)
}

func csrfField(hw *htmlWriter, token string) {
	hw.raw(`<input type="hidden"`)
	hw.attr("name", CSRFFieldName)
	hw.attr("value", token)
	hw.raw(`>`)
}

func errorSummary(hw *htmlWriter, items []vm.ErrorItem) {
	if len(items) == 0 {
		return
	}
	hw.raw(`<div class="govuk-error-summary" data-module="govuk-error-summary"><div role="alert">`)
	hw.raw(`<h2 class="govuk-error-summary__title">There is a problem</h2>`)
	hw.raw(`<div class="govuk-error-summary__body"><ul class="govuk-list govuk-error-summary__list">`)
	for _, item := range items {
		hw.raw(`<li>`)
		if item.Href != "" {
			hw.raw(`<a`)
			hw.href(item.Href)
			hw.raw(`>`)
			hw.text(item.Text)
			hw.raw(`</a>`)
		} else {
			hw.text(item.Text)
		}
		hw.raw(`</li>`)
	}
	hw.raw(`</ul></div></div></div>`)
}

// textInput renders a labelled GOV.UK text input with its inline error.
func textInput(hw *htmlWriter, id, name, label, value, errMsg string) {
	group := "govuk-form-group"
	input := "govuk-input"
	if errMsg != "" {
		group += " govuk-form-group--error"
		input += " govuk-input--error"
	}

	hw.raw(`<div`)
	hw.attr("class", group)
	hw.raw(`><label class="govuk-label"`)
	hw.attr("for", id)
	hw.raw(`>`)
	hw.text(label)
	hw.raw(`</label>`)
	if errMsg != "" {
		hw.raw(`<p class="govuk-error-message"`)
		hw.attr("id", id+"-error")
		hw.raw(`><span class="govuk-visually-hidden">Error:</span> `)
		hw.text(errMsg)
		hw.raw(`</p>`)
	}
	hw.raw(`<input type="text"`)
	hw.attr("class", input)
	hw.attr("id", id)
	hw.attr("name", name)
	hw.attr("value", value)
	if errMsg != "" {
		hw.attr("aria-describedby", id+"-error")
	}
	hw.raw(`></div>`)
}

func timeElement(hw *htmlWriter, ts vm.Timestamp) {
	if ts.Display == "" {
		return
	}
	hw.raw(`<time`)
	hw.attr("datetime", ts.ISO)
	hw.raw(`>`)
	hw.text(ts.Display)
	hw.raw(`</time>`)
}
