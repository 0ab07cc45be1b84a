package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vm "github.com/ericfisherdev/codereviewer/internal/adapter/driving/web/viewmodel"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestStatusTag(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"pending", `<strong class="govuk-tag govuk-tag--blue" role="status" data-review-id="r1" aria-label="Review status: Pending">Pending</strong>`},
		{"in_progress", `<strong class="govuk-tag govuk-tag--blue" role="status" data-review-id="r1" aria-label="Review status: In progress">In progress</strong>`},
		{"completed", `<strong class="govuk-tag govuk-tag--green" role="status" data-review-id="r1" aria-label="Review status: Completed">Completed</strong>`},
		{"failed", `<strong class="govuk-tag govuk-tag--red" role="status" data-review-id="r1" aria-label="Review status: Failed">Failed</strong>`},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, renderString(t, StatusTag("r1", tt.status)))
		})
	}
}

func TestStatusTag_EscapesValues(t *testing.T) {
	html := renderString(t, StatusTag(`a"b`, "<script>"))

	assert.Contains(t, html, `data-review-id="a&#34;b"`)
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "<script>")
}

func TestLayout_UnsafeNavigationURL(t *testing.T) {
	page := vm.Page{
		Title:      "Home",
		Navigation: []vm.NavItem{{Text: "Bad", URL: "javascript:alert(1)"}},
	}
	html := renderString(t, Layout(page, nil))

	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, "<title>Home | Intelligent Code Reviewer</title>")
	assert.Contains(t, html, `src="/public/javascripts/application.js"`)
}

func TestErrorSummary_LinksFields(t *testing.T) {
	html := renderString(t, component(func(hw *htmlWriter) {
		errorSummary(hw, []vm.ErrorItem{{Text: "Enter a name", Href: "#name"}, {Text: "Plain"}})
	}))

	assert.Contains(t, html, `<li><a href="#name">Enter a name</a></li>`)
	assert.Contains(t, html, `<li>Plain</li>`)
}

func TestErrorSummary_EmptyRendersNothing(t *testing.T) {
	html := renderString(t, component(func(hw *htmlWriter) {
		errorSummary(hw, nil)
	}))
	assert.Empty(t, html)
}
