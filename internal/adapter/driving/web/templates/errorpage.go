package templates

import (
	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/codereviewer/internal/adapter/driving/web/viewmodel"
)

// ErrorPage renders a full-page error with an optional bullet list.
func ErrorPage(data vm.ErrorPage) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="govuk-grid-row"><div class="govuk-grid-column-two-thirds"><h1 class="govuk-heading-l">`)
		hw.text(data.Heading)
		hw.raw(`</h1>`)
		if data.Message != "" {
			hw.raw(`<p class="govuk-body">`)
			hw.text(data.Message)
			hw.raw(`</p>`)
		}
		if len(data.MessageList) > 0 {
			hw.raw(`<ul class="govuk-list govuk-list--bullet">`)
			for _, item := range data.MessageList {
				hw.raw(`<li>`)
				hw.text(item)
				hw.raw(`</li>`)
			}
			hw.raw(`</ul>`)
		}
		hw.raw(`</div></div>`)
	})
}
