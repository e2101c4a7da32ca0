package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TerminalStyles colors the terminal previews.
type TerminalStyles struct {
	Host lipgloss.Style
	Hint lipgloss.Style
	Card lipgloss.Style
}

// DefaultTerminalStyles adapts to light and dark terminals.
func DefaultTerminalStyles() TerminalStyles {
	accent := lipgloss.AdaptiveColor{Light: "#0056b3", Dark: "#61afef"}
	dim := lipgloss.AdaptiveColor{Light: "#555555", Dark: "#abb2bf"}
	return TerminalStyles{
		Host: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Hint: lipgloss.NewStyle().Foreground(dim),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(accent).
			PaddingLeft(1),
	}
}

// NewTerminal builds a renderer for ANSI terminals. Escape sequences and
// control characters in the message are removed before anything else runs,
// so user text can never drive the terminal.
func NewTerminal(presentation Presentation, styles TerminalStyles) *Renderer {
	return &Renderer{
		strategy: terminal{rich: presentation != Basic, styles: styles},
		prepare:  StripControl,
	}
}

// StripControl removes ANSI sequences and control characters except newlines and tabs.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, ansi.Strip(s))
}

type terminal struct {
	rich   bool
	styles TerminalStyles
}

func (t terminal) Text(s string) string {
	return s
}

func (t terminal) Image(rawURL string) string {
	if !t.rich {
		return t.styles.Hint.Render("[image]") + " " + hyperlink(rawURL, rawURL)
	}
	return "\n" + t.styles.Card.Render(
		t.styles.Host.Render("image")+"\n"+t.styles.Hint.Render(hyperlink(rawURL, rawURL)),
	) + "\n"
}

func (t terminal) Link(rawURL, host string) string {
	if !t.rich {
		return hyperlink(rawURL, t.styles.Host.Render(host)) + " " + t.styles.Hint.Render(rawURL)
	}
	return "\n" + t.styles.Card.Render(
		hyperlink(rawURL, t.styles.Host.Render(host))+"\n"+
			t.styles.Hint.Render(CallToAction)+"\n"+
			t.styles.Hint.Render(rawURL),
	) + "\n"
}

// hyperlink wraps text in an OSC 8 link; terminals without support show the text only.
func hyperlink(rawURL, text string) string {
	return ansi.SetHyperlink(rawURL) + text + ansi.ResetHyperlink()
}
