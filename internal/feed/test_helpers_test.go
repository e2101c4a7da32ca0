package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/vovakirdan/wirechat-poller/internal/core"
)

var errOffline = errors.New("offline")

// fakeTransport serves a mutable feed and counts calls.
type fakeTransport struct {
	mu      sync.Mutex
	feed    core.Feed
	err     error
	fetches int
	// block, when set, is received from before a fetch returns;
	// entered is signalled once the fetch is waiting on it.
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeTransport) FetchMessages(ctx context.Context) (core.Feed, error) {
	f.mu.Lock()
	block, entered := f.block, f.entered
	f.mu.Unlock()
	if block != nil {
		if entered != nil {
			entered <- struct{}{}
		}
		select {
		case <-block:
		case <-ctx.Done():
			return nil, &core.FetchError{Err: ctx.Err()}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return nil, &core.FetchError{Err: f.err}
	}
	return f.feed.Clone(), nil
}

func (f *fakeTransport) SubmitMessage(_ context.Context, msg core.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feed = append(f.feed, msg)
	return nil
}

func (f *fakeTransport) setFeed(feed core.Feed) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feed = feed
}

func (f *fakeTransport) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeTransport) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

// memoryList records what the engine draws.
type memoryList struct {
	mu        sync.Mutex
	items     []Item
	atBottom  bool
	resets    int
	scrolls   int
	offset    int
	scrollLog []string
}

func (l *memoryList) AtBottom() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.atBottom
}

func (l *memoryList) Reset(items []Item) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]Item(nil), items...)
	l.resets++
	l.scrollLog = append(l.scrollLog, "reset")
	if l.offset > len(items) {
		l.offset = len(items)
	}
}

func (l *memoryList) ScrollToBottom() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scrolls++
	l.offset = len(l.items)
	l.atBottom = true
	l.scrollLog = append(l.scrollLog, "bottom")
}

func (l *memoryList) snapshot() []Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Item(nil), l.items...)
}

// echoRenderer marks rendered text so tests can tell it went through the renderer.
type echoRenderer struct{}

func (echoRenderer) Render(text string) string {
	return "<" + text + ">"
}
