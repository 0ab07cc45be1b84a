package templates

import (
	"net/url"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/codereviewer/internal/adapter/driving/web/viewmodel"
)

// StandardsHome renders the standards management landing page.
func StandardsHome() templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<h1 class="govuk-heading-l">Standards Management</h1>`)
		hw.raw(`<ul class="govuk-list">`)
		hw.raw(`<li><a class="govuk-link" href="/standards/classifications">Manage classifications</a></li>`)
		hw.raw(`<li><a class="govuk-link" href="/standards/standard-sets">Manage standard sets</a></li>`)
		hw.raw(`</ul>`)
	})
}

// Classifications renders the classification list and create form.
func Classifications(data vm.ClassificationsPage, csrfToken string) templ.Component {
	return component(func(hw *htmlWriter) {
		errorSummary(hw, data.Errors)
		hw.raw(`<h1 class="govuk-heading-l">Manage Classifications</h1>`)

		hw.raw(`<form method="post" action="/standards/classifications/create" novalidate>`)
		csrfField(hw, csrfToken)
		textInput(hw, "name", "name", "Classification name", data.Name, data.NameError)
		hw.raw(`<button type="submit" class="govuk-button" data-module="govuk-button">Add classification</button></form>`)

		if len(data.Classifications) == 0 {
			hw.raw(`<p class="govuk-body">No classifications</p>`)
			return
		}

		hw.raw(`<table class="govuk-table"><thead class="govuk-table__head"><tr class="govuk-table__row">`)
		hw.raw(`<th scope="col" class="govuk-table__header">Name</th><th scope="col" class="govuk-table__header"><span class="govuk-visually-hidden">Actions</span></th>`)
		hw.raw(`</tr></thead><tbody class="govuk-table__body">`)
		for _, c := range data.Classifications {
			hw.raw(`<tr class="govuk-table__row"><td class="govuk-table__cell">`)
			hw.text(c.Name)
			hw.raw(`</td><td class="govuk-table__cell">`)
			hw.raw(`<form method="post"`)
			hw.attr("action", "/standards/classifications/"+url.PathEscape(c.ID)+"/delete")
			hw.raw(`>`)
			csrfField(hw, csrfToken)
			hw.raw(`<button type="submit" class="govuk-button govuk-button--warning govuk-!-margin-bottom-0" data-module="govuk-button">Delete<span class="govuk-visually-hidden"> `)
			hw.text(c.Name)
			hw.raw(`</span></button></form></td></tr>`)
		}
		hw.raw(`</tbody></table>`)
	})
}

// StandardSets renders the standard set list.
func StandardSets(data vm.StandardSetsPage, csrfToken string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<h1 class="govuk-heading-l">Manage Standard Sets</h1>`)
		hw.raw(`<a href="/standards/standard-sets/create" role="button" draggable="false" class="govuk-button" data-module="govuk-button">Add standard set</a>`)

		if len(data.StandardSets) == 0 {
			hw.raw(`<p class="govuk-body">No standard sets</p>`)
			return
		}

		hw.raw(`<table class="govuk-table"><thead class="govuk-table__head"><tr class="govuk-table__row">`)
		for _, h := range []string{"Name", "Repository", "Custom prompt"} {
			hw.raw(`<th scope="col" class="govuk-table__header">`)
			hw.text(h)
			hw.raw(`</th>`)
		}
		hw.raw(`<th scope="col" class="govuk-table__header"><span class="govuk-visually-hidden">Actions</span></th></tr></thead><tbody class="govuk-table__body">`)

		for _, s := range data.StandardSets {
			hw.raw(`<tr class="govuk-table__row"><td class="govuk-table__cell">`)
			hw.text(s.Name)
			hw.raw(`</td><td class="govuk-table__cell"><a class="govuk-link"`)
			hw.href(s.RepositoryURL)
			hw.raw(`>`)
			hw.text(s.RepositoryURL)
			hw.raw(`</a></td><td class="govuk-table__cell">`)
			hw.text(s.CustomPrompt)
			hw.raw(`</td><td class="govuk-table__cell"><form method="post"`)
			hw.attr("action", "/standards/standard-sets/"+url.PathEscape(s.ID))
			hw.raw(`><input type="hidden" name="_method" value="DELETE">`)
			csrfField(hw, csrfToken)
			hw.raw(`<button type="submit" class="govuk-button govuk-button--warning govuk-!-margin-bottom-0" data-module="govuk-button">Delete<span class="govuk-visually-hidden"> `)
			hw.text(s.Name)
			hw.raw(`</span></button></form></td></tr>`)
		}
		hw.raw(`</tbody></table>`)
	})
}

// CreateStandardSet renders the add standard set form.
func CreateStandardSet(form vm.StandardSetForm, csrfToken string) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<a href="/standards/standard-sets" class="govuk-back-link">Back to standard sets</a>`)
		errorSummary(hw, form.Errors)
		hw.raw(`<h1 class="govuk-heading-l">Add Standard Set</h1>`)
		hw.raw(`<form method="post" action="/standards/standard-sets" novalidate>`)
		csrfField(hw, csrfToken)
		textInput(hw, "name", "name", "Name", form.Name, form.FieldErrors["name"])
		textInput(hw, "repository-url", "repository_url", "Repository URL", form.RepositoryURL, form.FieldErrors["repository_url"])

		group := "govuk-form-group"
		if form.FieldErrors["custom_prompt"] != "" {
			group += " govuk-form-group--error"
		}
		hw.raw(`<div`)
		hw.attr("class", group)
		hw.raw(`><label class="govuk-label" for="custom-prompt">Custom prompt (optional)</label>`)
		if msg := form.FieldErrors["custom_prompt"]; msg != "" {
			hw.raw(`<p class="govuk-error-message" id="custom-prompt-error"><span class="govuk-visually-hidden">Error:</span> `)
			hw.text(msg)
			hw.raw(`</p>`)
		}
		hw.raw(`<textarea class="govuk-textarea" id="custom-prompt" name="custom_prompt" rows="5">`)
		hw.text(form.CustomPrompt)
		hw.raw(`</textarea></div>`)

		hw.raw(`<button type="submit" class="govuk-button" data-module="govuk-button">Save standard set</button></form>`)
	})
}
