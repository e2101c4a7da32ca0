// Package feed keeps a displayed message list in step with the remote feed.
package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-poller/internal/core"
)

// DiffMode decides when a fetched feed counts as changed.
type DiffMode string

const (
	// DiffLength rebuilds only when the number of messages changes.
	// An edit that keeps the feed length stays invisible.
	DiffLength DiffMode = "length"
	// DiffContent rebuilds when any message differs.
	DiffContent DiffMode = "content"
)

// ParseDiffMode validates a diff mode name.
func ParseDiffMode(name string) (DiffMode, error) {
	switch m := DiffMode(name); m {
	case DiffLength, DiffContent:
		return m, nil
	case "":
		return DiffLength, nil
	default:
		return "", fmt.Errorf("unknown diff mode %q", name)
	}
}

// Item is one rendered entry of the message list.
type Item struct {
	User string
	Body string
}

// List is the view the engine draws into. Implementations must be safe for
// concurrent use.
type List interface {
	// AtBottom reports whether the view is scrolled to the end, within the view's tolerance.
	AtBottom() bool
	// Reset replaces every displayed item. The view keeps its scroll offset,
	// clamped to the new content.
	Reset(items []Item)
	// ScrollToBottom moves the view to the last item.
	ScrollToBottom()
}

// Renderer converts message text to display markup.
type Renderer interface {
	Render(text string) string
}

// RenderState describes what is currently displayed.
type RenderState struct {
	Count int
	Feed  core.Feed
}

// Engine fetches the feed and rebuilds the list when it changed.
type Engine struct {
	transport core.Transport
	renderer  Renderer
	list      List
	diff      DiffMode
	log       *zerolog.Logger

	mu    sync.Mutex
	state RenderState
}

// NewEngine creates a sync engine drawing into list.
func NewEngine(transport core.Transport, renderer Renderer, list List, diff DiffMode, logger *zerolog.Logger) *Engine {
	if diff == "" {
		diff = DiffLength
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Engine{
		transport: transport,
		renderer:  renderer,
		list:      list,
		diff:      diff,
		log:       logger,
	}
}

// Refresh fetches the feed and redraws the list if it changed. On error the
// list is left as it was and the error is returned.
func (e *Engine) Refresh(ctx context.Context) error {
	pinned := e.list.AtBottom()

	feed, err := e.transport.FetchMessages(ctx)
	if err != nil {
		return err
	}

	e.Apply(feed, pinned)
	return nil
}

// Poll is Refresh for background callers: errors are logged and dropped.
func (e *Engine) Poll(ctx context.Context) {
	if err := e.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		e.log.Warn().Err(err).Msg("feed refresh failed")
	}
}

// Apply draws feed if it differs from what is displayed. pinned tells whether
// the view was at the bottom before the fetch started; if so the view follows
// the new bottom. It reports whether the list was rebuilt.
func (e *Engine) Apply(feed core.Feed, pinned bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.changed(feed) {
		return false
	}

	items := make([]Item, len(feed))
	for i, msg := range feed {
		items[i] = Item{User: msg.User, Body: e.renderer.Render(msg.Text)}
	}

	e.list.Reset(items)
	e.state = RenderState{Count: len(feed), Feed: feed.Clone()}

	if pinned {
		e.list.ScrollToBottom()
	}

	e.log.Debug().Int("messages", len(feed)).Bool("pinned", pinned).Msg("feed redrawn")
	return true
}

// State returns a copy of the displayed state.
func (e *Engine) State() RenderState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return RenderState{Count: e.state.Count, Feed: e.state.Feed.Clone()}
}

func (e *Engine) changed(feed core.Feed) bool {
	if e.diff == DiffContent {
		return !e.state.Feed.Equal(feed)
	}
	return feed.Len() != e.state.Count
}
