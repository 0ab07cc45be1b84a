package templates

import (
	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/codereviewer/internal/adapter/driving/web/viewmodel"
)

// Home renders the "Generate Code Review" form.
func Home(data vm.HomePage, csrfToken string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div class="govuk-grid-row"><div class="govuk-grid-column-two-thirds">`)
		errorSummary(hw, data.Errors)
		hw.raw(`<h1 class="govuk-heading-l">Generate Code Review</h1>`)
		hw.raw(`<form method="post" action="/" novalidate>`)
		csrfField(hw, csrfToken)
		textInput(hw, "repository-url", "repository_url", "Repository URL", data.RepositoryURL, data.RepositoryURLError)

		if len(data.StandardSets) > 0 {
			hw.raw(`<div class="govuk-form-group"><fieldset class="govuk-fieldset" aria-describedby="standard-sets-hint">`)
			hw.raw(`<legend class="govuk-fieldset__legend govuk-fieldset__legend--s">Standard sets</legend>`)
			hw.raw(`<div id="standard-sets-hint" class="govuk-hint">Select the standards to review against.</div>`)
			hw.raw(`<div class="govuk-checkboxes govuk-checkboxes--small" data-module="govuk-checkboxes">`)
			for i, set := range data.StandardSets {
				id := "standard-sets"
				if i > 0 {
					id = "standard-sets-" + itoa(i+1)
				}
				hw.raw(`<div class="govuk-checkboxes__item"><input class="govuk-checkboxes__input" type="checkbox" name="standard_sets"`)
				hw.attr("id", id)
				hw.attr("value", set.ID)
				if set.Checked {
					hw.raw(` checked`)
				}
				hw.raw(`><label class="govuk-label govuk-checkboxes__label"`)
				hw.attr("for", id)
				hw.raw(`>`)
				hw.text(set.Name)
				hw.raw(`</label></div>`)
			}
			hw.raw(`</div></fieldset></div>`)
		}

		hw.raw(`<button type="submit" class="govuk-button" data-module="govuk-button">Generate review</button>`)
		hw.raw(`</form></div></div>`)
	})
}
