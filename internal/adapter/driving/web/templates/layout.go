package templates

import (
	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/codereviewer/internal/adapter/driving/web/viewmodel"
)

// ServiceName is shown in the header and page titles.
const ServiceName = "Intelligent Code Reviewer"

// Layout wraps body in the GOV.UK page template.
func Layout(page vm.Page, body templ.Component) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<!DOCTYPE html><html lang="en" class="govuk-template"><head><meta charset="utf-8"><title>`)
		if page.Title != "" {
			hw.text(page.Title)
			hw.raw(" | ")
		}
		hw.text(ServiceName)
		hw.raw(`</title><meta name="viewport" content="width=device-width, initial-scale=1, viewport-fit=cover">`)
		hw.raw(`<link rel="stylesheet" href="/public/stylesheets/application.css"></head>`)
		hw.raw(`<body class="govuk-template__body">`)
		hw.raw(`<a href="#main-content" class="govuk-skip-link" data-module="govuk-skip-link">Skip to main content</a>`)

		hw.raw(`<header class="govuk-header" role="banner" data-module="govuk-header"><div class="govuk-header__container govuk-width-container">`)
		hw.raw(`<div class="govuk-header__content"><a href="/" class="govuk-header__link govuk-header__service-name">`)
		hw.text(ServiceName)
		hw.raw(`</a>`)
		navigation(hw, page.Navigation)
		hw.raw(`</div></div></header>`)

		hw.raw(`<div class="govuk-width-container"><main class="govuk-main-wrapper" id="main-content" role="main">`)
		hw.render(body)
		hw.raw(`</main></div>`)

		hw.raw(`<footer class="govuk-footer" role="contentinfo"><div class="govuk-width-container"><div class="govuk-footer__meta">`)
		hw.raw(`<div class="govuk-footer__meta-item"><a class="govuk-footer__link" href="/standards">Standards management</a></div>`)
		hw.raw(`</div></div></footer>`)
		hw.raw(`<script type="module" src="/public/javascripts/application.js"></script>`)
		hw.raw(`</body></html>`)
	})
}

func navigation(hw *htmlWriter, items []vm.NavItem) {
	if len(items) == 0 {
		return
	}
	hw.raw(`<nav aria-label="Menu" class="govuk-header__navigation"><ul id="navigation" class="govuk-header__navigation-list">`)
	for _, item := range items {
		class := "govuk-header__navigation-item"
		if item.Active {
			class += " govuk-header__navigation-item--active"
		}
		hw.raw(`<li`)
		hw.attr("class", class)
		hw.raw(`><a class="govuk-header__link"`)
		hw.href(item.URL)
		if item.Active {
			hw.raw(` aria-current="page"`)
		}
		hw.raw(`>`)
		hw.text(item.Text)
		hw.raw(`</a></li>`)
	}
	hw.raw(`</ul></nav>`)
}
