// Package tui is the interactive terminal front end: a scrollable message
// pane kept in sync by the feed engine and a composer input below it.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-poller/internal/composer"
	"github.com/vovakirdan/wirechat-poller/internal/core"
)

const (
	inputHeight = 3
	helpText    = "enter send • alt+enter newline • ctrl+t theme • ctrl+r refresh • pgup/pgdn scroll • ctrl+c quit"
)

// Alert texts shown in the blocking dialog.
const (
	AlertEmpty    = "Please write a message."
	AlertSendFail = "Error sending the message."
)

// FeedChangedMsg tells the model the message pane changed outside the UI loop.
type FeedChangedMsg struct{}

type sendResultMsg struct {
	text string
	err  error
}

type refreshResultMsg struct {
	err error
}

// Options wires a Model.
type Options struct {
	Composer    *composer.Composer
	Refresher   composer.Refresher
	List        *List
	Themes      *ThemeStore
	ClearOnSend bool
	Endpoint    string
	Logger      *zerolog.Logger
}

// Model owns the Bubble Tea state for the chat UI.
type Model struct {
	ctx         context.Context
	composer    *composer.Composer
	refresher   composer.Refresher
	list        *List
	input       textarea.Model
	themes      *ThemeStore
	theme       theme
	clearOnSend bool
	endpoint    string
	log         *zerolog.Logger

	width   int
	height  int
	sending bool
	pending string
	alert   string
	status  string
}

// New returns a ready-to-run UI model. ctx bounds the requests the UI starts.
func New(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	dark, err := opts.Themes.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load theme state")
	}
	th := themeFor(dark)
	opts.List.setTheme(th)

	ta := textarea.New()
	ta.Placeholder = fmt.Sprintf("Write your message... (max. %d characters)", opts.Composer.MaxLength())
	ta.Focus()
	ta.CharLimit = opts.Composer.MaxLength()
	ta.ShowLineNumbers = false
	ta.Prompt = "▍ "
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()

	return Model{
		ctx:         ctx,
		composer:    opts.Composer,
		refresher:   opts.Refresher,
		list:        opts.List,
		input:       ta,
		themes:      opts.Themes,
		theme:       th,
		clearOnSend: opts.ClearOnSend,
		endpoint:    opts.Endpoint,
		log:         logger,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.refreshCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.list.update(msg)

	case FeedChangedMsg:
		return m, nil

	case sendResultMsg:
		return m.handleSendResult(msg), nil

	case refreshResultMsg:
		if msg.err != nil {
			m.status = "refresh failed: " + msg.err.Error()
		} else {
			m.status = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The alert blocks all other input until dismissed.
	if m.alert != "" {
		switch msg.String() {
		case "enter", "esc":
			m.alert = ""
		}
		return m, nil
	}

	switch msg.String() {
	case "enter":
		return m.submit()
	case "ctrl+t":
		m.toggleTheme()
		return m, nil
	case "ctrl+r":
		m.status = "refreshing..."
		return m, m.refreshCmd()
	case "pgup":
		m.list.pageUp()
		return m, nil
	case "pgdown":
		m.list.pageDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.sending {
		return m, nil
	}

	text := m.input.Value()
	if _, err := m.composer.Validate(text); err != nil {
		if errors.Is(err, core.ErrEmptyMessage) {
			m.alert = AlertEmpty
		} else {
			m.alert = fmt.Sprintf("Message is longer than %d characters.", m.composer.MaxLength())
		}
		return m, nil
	}

	m.sending = true
	m.pending = text
	m.status = "sending..."
	if m.clearOnSend {
		m.input.Reset()
	}
	return m, m.sendCmd(text)
}

func (m Model) handleSendResult(msg sendResultMsg) Model {
	m.sending = false
	m.pending = ""
	m.status = ""

	var submitErr *core.SubmitError
	switch {
	case msg.err == nil:
		if !m.clearOnSend {
			m.input.Reset()
		}
	case errors.As(msg.err, &submitErr):
		m.alert = AlertSendFail
		if m.clearOnSend && m.input.Value() == "" {
			m.input.SetValue(msg.text)
		}
	default:
		// Submitted, only the follow-up refresh failed.
		if !m.clearOnSend {
			m.input.Reset()
		}
		m.status = "message sent, refresh failed: " + msg.err.Error()
	}
	return m
}

func (m *Model) toggleTheme() {
	dark := !m.theme.dark
	m.theme = themeFor(dark)
	m.list.setTheme(m.theme)
	if err := m.themes.Save(dark); err != nil {
		m.log.Warn().Err(err).Msg("failed to save theme state")
		m.status = "theme not saved: " + err.Error()
	}
}

func (m Model) sendCmd(text string) tea.Cmd {
	ctx := m.ctx
	c := m.composer
	return func() tea.Msg {
		return sendResultMsg{text: text, err: c.Send(ctx, text)}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	ctx := m.ctx
	r := m.refresher
	return func() tea.Msg {
		return refreshResultMsg{err: r.Refresh(ctx)}
	}
}

func (m *Model) resize() {
	// borders take two columns and two rows around each pane
	inner := m.width - 2
	if inner < 1 {
		inner = 1
	}
	m.input.SetWidth(inner)

	listHeight := m.height - (inputHeight + 2) - 2 - 2
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.setSize(inner, listHeight)
}

func (m Model) View() string {
	if m.width == 0 {
		return "Connecting..."
	}

	if m.alert != "" {
		box := m.theme.alert.Render(m.alert + "\n\n" + m.theme.dim.Render("press enter to continue"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	header := m.theme.user.Render("wirechat") + " " + m.theme.dim.Render(m.composer.User()+" @ "+m.endpoint)
	pane := m.theme.border.Render(m.list.view())
	input := m.theme.border.Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, pane, input, m.footer())
}

func (m Model) footer() string {
	text := m.input.Value()
	counter := m.theme.counter.Render(m.composer.Counter(text))
	if m.composer.NearLimit(text) {
		counter = m.theme.warn.Render(m.composer.Counter(text))
	}

	parts := []string{counter}
	if m.status != "" {
		parts = append(parts, m.theme.warn.Render(m.status))
	} else {
		parts = append(parts, m.theme.status.Render(helpText))
	}
	return strings.Join(parts, "  ")
}
