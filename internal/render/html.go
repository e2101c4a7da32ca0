package render

import (
	"fmt"
	"html"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// previewPolicy only lets the preview markup through. Links and images must
// carry parseable http(s) URLs; anything else loses the attribute.
var previewPolicy = newPreviewPolicy()

func newPreviewPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "h4", "p", "br")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-z\- ]+$`)).OnElements("div", "img", "a")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemes("http", "https")
	p.RequireParseableURLs(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// NewHTML builds a renderer producing sanitized HTML fragments.
func NewHTML(presentation Presentation) *Renderer {
	var strategy Strategy = richHTML{}
	if presentation == Basic {
		strategy = basicHTML{}
	}
	return &Renderer{
		strategy: strategy,
		finish:   previewPolicy.Sanitize,
	}
}

// Sanitize runs markup through the preview allow-list.
func Sanitize(markup string) string {
	return previewPolicy.Sanitize(markup)
}

type richHTML struct{}

func (richHTML) Text(s string) string {
	return html.EscapeString(s)
}

func (richHTML) Image(rawURL string) string {
	return fmt.Sprintf(`<div class="image-preview"><img src="%s" class="message-image" alt="image"></div>`,
		html.EscapeString(rawURL))
}

func (richHTML) Link(rawURL, host string) string {
	return fmt.Sprintf(`<div class="web-preview"><a href="%s" class="message-link"><h4>%s</h4><p>%s</p></a></div>`,
		html.EscapeString(rawURL), html.EscapeString(host), CallToAction)
}

type basicHTML struct{}

func (basicHTML) Text(s string) string {
	return html.EscapeString(s)
}

func (basicHTML) Image(rawURL string) string {
	return fmt.Sprintf(`<img src="%s" class="message-image" alt="image">`, html.EscapeString(rawURL))
}

func (basicHTML) Link(rawURL, host string) string {
	return fmt.Sprintf(`<a href="%s" class="message-link">%s</a>`, html.EscapeString(rawURL), html.EscapeString(host))
}
