package render

import "fmt"

// Presentation selects how much chrome previews get.
type Presentation string

const (
	// Rich wraps previews in cards: a framed image, a link card with host and call to action.
	Rich Presentation = "rich"
	// Basic emits bare images and inline links.
	Basic Presentation = "basic"
)

// ParsePresentation validates a presentation name.
func ParsePresentation(name string) (Presentation, error) {
	switch p := Presentation(name); p {
	case Rich, Basic:
		return p, nil
	case "":
		return Rich, nil
	default:
		return "", fmt.Errorf("unknown presentation %q", name)
	}
}
