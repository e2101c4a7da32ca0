// Package render turns message text into display markup, replacing every
// URL with an image or link preview.
package render

import (
	"net/url"
	"regexp"
	"strings"
)

// CallToAction is the label shown on link previews.
const CallToAction = "Click to visit the link"

// urlPattern matches a scheme followed by "://" and any run of non-space characters.
var urlPattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+.\-]*://\S+`)

// imageExtensions are matched against the end of the whole URL, so a query
// string or fragment after the extension turns the URL into a plain link.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// Strategy produces the markup for each piece of a message.
type Strategy interface {
	// Text encodes a run of plain text for the output format.
	Text(s string) string
	// Image previews a URL pointing at an image.
	Image(rawURL string) string
	// Link previews any other URL; host is already resolved.
	Link(rawURL, host string) string
}

// Renderer applies a Strategy to message text. It holds no mutable state
// and is safe for concurrent use.
type Renderer struct {
	strategy Strategy
	prepare  func(string) string
	finish   func(string) string
}

// New builds a renderer around strategy.
func New(strategy Strategy) *Renderer {
	return &Renderer{strategy: strategy}
}

// Render converts text to markup. It never fails: a URL that cannot be parsed
// is previewed with its raw text as the host.
func (r *Renderer) Render(text string) string {
	if r.prepare != nil {
		text = r.prepare(text)
	}

	var b strings.Builder
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		b.WriteString(r.strategy.Text(text[last:loc[0]]))
		b.WriteString(r.preview(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(r.strategy.Text(text[last:]))

	out := b.String()
	if r.finish != nil {
		out = r.finish(out)
	}
	return out
}

func (r *Renderer) preview(rawURL string) string {
	if IsImageURL(rawURL) {
		return r.strategy.Image(rawURL)
	}
	return r.strategy.Link(rawURL, Hostname(rawURL))
}

// IsImageURL reports whether rawURL ends in a known image extension, ignoring case.
func IsImageURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Hostname returns the host part of rawURL, or rawURL itself when it does not
// parse or has no host.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if host := u.Hostname(); host != "" {
		return host
	}
	return rawURL
}

// FindURLs returns every URL-like token in text, in order.
func FindURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}
