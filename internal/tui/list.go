package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wirechat-poller/internal/feed"
)

// List is the scrollable message pane. The sync engine writes to it from the
// poller goroutine while the Bubble Tea loop reads it, so every method locks.
type List struct {
	mu        sync.Mutex
	viewport  viewport.Model
	items     []feed.Item
	tolerance int
	styles    theme
	onChange  func()
}

var _ feed.List = (*List)(nil)

// NewList creates an empty list. tolerance is how many lines above the end
// still count as "at the bottom".
func NewList(width, height, tolerance int) *List {
	if tolerance < 0 {
		tolerance = 0
	}
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true
	return &List{
		viewport:  vp,
		tolerance: tolerance,
		styles:    themeFor(false),
	}
}

// OnChange registers a callback fired after the content or scroll position
// changed outside the UI loop. It runs without the list lock held.
func (l *List) OnChange(fn func()) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

// AtBottom reports whether the last line is visible, within the tolerance.
func (l *List) AtBottom() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.atBottomLocked()
}

func (l *List) atBottomLocked() bool {
	maxOffset := l.viewport.TotalLineCount() - l.viewport.Height
	if maxOffset <= 0 {
		return true
	}
	return l.viewport.YOffset >= maxOffset-l.tolerance
}

// Reset replaces the items and keeps the scroll offset, clamped to the new content.
func (l *List) Reset(items []feed.Item) {
	l.mu.Lock()
	l.items = append([]feed.Item(nil), items...)
	l.rerenderLocked()
	notify := l.onChange
	l.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// ScrollToBottom shows the last line.
func (l *List) ScrollToBottom() {
	l.mu.Lock()
	l.viewport.GotoBottom()
	notify := l.onChange
	l.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Len returns the number of items shown.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Offset returns the index of the first visible line.
func (l *List) Offset() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewport.YOffset
}

// SetOffset scrolls to line n, clamped to the content.
func (l *List) SetOffset(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.viewport.SetYOffset(n)
}

func (l *List) setSize(width, height int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.viewport.Width = width
	l.viewport.Height = height
	l.rerenderLocked()
}

func (l *List) setTheme(t theme) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.styles = t
	l.rerenderLocked()
}

func (l *List) pageUp() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.viewport.HalfViewUp()
}

func (l *List) pageDown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.viewport.HalfViewDown()
}

func (l *List) update(msg tea.Msg) tea.Cmd {
	l.mu.Lock()
	defer l.mu.Unlock()

	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return cmd
}

func (l *List) view() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewport.View()
}

// rerenderLocked regenerates the content at the current width, preserving
// the scroll position as closely as possible.
func (l *List) rerenderLocked() {
	previousOffset := l.viewport.YOffset

	width := l.viewport.Width
	if width < 1 {
		width = 1
	}

	var b strings.Builder
	for i, item := range l.items {
		if i > 0 {
			b.WriteString("\n")
		}
		line := l.styles.user.Render(item.User+":") + " " + item.Body
		b.WriteString(lipgloss.NewStyle().Width(width).Render(line))
	}
	if len(l.items) == 0 {
		b.WriteString(l.styles.dim.Render("No messages yet."))
	}
	l.viewport.SetContent(b.String())

	maxOffset := l.viewport.TotalLineCount() - l.viewport.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if previousOffset > maxOffset {
		previousOffset = maxOffset
	}
	l.viewport.SetYOffset(previousOffset)
}
