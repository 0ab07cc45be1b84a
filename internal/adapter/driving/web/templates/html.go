// Package templates holds the GOV.UK page components rendered by the web adapter.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes markup to w and remembers the first error, so component
// bodies read top to bottom without an error check per line.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

// raw writes trusted markup verbatim.
func (hw *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if hw.err != nil {
			return
		}
		_, hw.err = io.WriteString(hw.w, p)
	}
}

// text writes s HTML-escaped.
func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (hw *htmlWriter) attr(name, value string) {
	hw.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// href writes an href attribute after scheme sanitization.
func (hw *htmlWriter) href(url string) {
	hw.attr("href", string(templ.URL(url)))
}

func (hw *htmlWriter) render(c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(hw.ctx, hw.w)
}

// component adapts a writer-based body into a templ.Component.
func component(body func(hw *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		body(hw)
		return hw.err
	})
}
