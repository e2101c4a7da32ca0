package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/vovakirdan/wirechat-poller/internal/composer"
	"github.com/vovakirdan/wirechat-poller/internal/core"
	"github.com/vovakirdan/wirechat-poller/internal/feed"
)

// fakeTransport is an in-memory feed whose submit can be made to fail.
type fakeTransport struct {
	mu        sync.Mutex
	feed      core.Feed
	submitErr error
}

func (f *fakeTransport) FetchMessages(context.Context) (core.Feed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.feed.Clone(), nil
}

func (f *fakeTransport) SubmitMessage(_ context.Context, msg core.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return &core.SubmitError{Status: 500, Err: f.submitErr}
	}
	f.feed = append(f.feed, msg)
	return nil
}

type plainRenderer struct{}

func (plainRenderer) Render(text string) string { return text }

func items(n int) []feed.Item {
	out := make([]feed.Item, n)
	for i := range out {
		out[i] = feed.Item{User: "ana", Body: fmt.Sprintf("m%d", i)}
	}
	return out
}

// newTestModel wires a model over an in-memory transport.
func newTestModel(transport *fakeTransport, themes *ThemeStore, clearOnSend bool) (Model, *feed.Engine) {
	list := NewList(40, 5, 1)
	engine := feed.NewEngine(transport, plainRenderer{}, list, feed.DiffLength, nil)
	comp := composer.New(transport, engine, "ana", 140, nil)

	m := New(context.Background(), Options{
		Composer:    comp,
		Refresher:   engine,
		List:        list,
		Themes:      themes,
		ClearOnSend: clearOnSend,
		Endpoint:    "http://localhost:8080/messages",
	})
	return m, engine
}
