package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

type theme struct {
	dark bool

	user    lipgloss.Style
	dim     lipgloss.Style
	border  lipgloss.Style
	counter lipgloss.Style
	warn    lipgloss.Style
	alert   lipgloss.Style
	status  lipgloss.Style
}

func themeFor(dark bool) theme {
	accent := lipgloss.Color("#0056b3")
	dim := lipgloss.Color("#6b7280")
	border := lipgloss.Color("#cccccc")
	errColor := lipgloss.Color("#c0392b")
	if dark {
		accent = lipgloss.Color("#61afef")
		dim = lipgloss.Color("#5c6370")
		border = lipgloss.Color("#4b5263")
		errColor = lipgloss.Color("#e06c75")
	}

	return theme{
		dark:    dark,
		user:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		dim:     lipgloss.NewStyle().Foreground(dim),
		border:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border),
		counter: lipgloss.NewStyle().Foreground(dim),
		warn:    lipgloss.NewStyle().Bold(true).Foreground(errColor),
		alert: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(errColor).
			Padding(1, 3),
		status: lipgloss.NewStyle().Foreground(dim),
	}
}

// ThemeState is the persisted UI preference.
type ThemeState struct {
	DarkMode bool `yaml:"dark_mode"`
}

// ThemeStore keeps the dark mode flag in a small YAML file.
// An empty path keeps the flag in memory only.
type ThemeStore struct {
	path string
}

// NewThemeStore creates a store backed by path.
func NewThemeStore(path string) *ThemeStore {
	return &ThemeStore{path: path}
}

// Load reads the saved flag. A missing file means light mode.
func (s *ThemeStore) Load() (bool, error) {
	if s == nil || s.path == "" {
		return false, nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read state: %w", err)
	}

	var state ThemeState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return false, fmt.Errorf("parse state: %w", err)
	}
	return state.DarkMode, nil
}

// Save writes the flag.
func (s *ThemeStore) Save(dark bool) error {
	if s == nil || s.path == "" {
		return nil
	}

	data, err := yaml.Marshal(ThemeState{DarkMode: dark})
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
