package app

import (
	"fmt"
	"io"
	"sync"

	"github.com/vovakirdan/wirechat-poller/internal/feed"
)

// lineList collects the feed for one-shot commands and prints it as lines.
type lineList struct {
	mu    sync.Mutex
	items []feed.Item
}

func (l *lineList) AtBottom() bool { return true }

func (l *lineList) Reset(items []feed.Item) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]feed.Item(nil), items...)
}

func (l *lineList) ScrollToBottom() {}

// WriteTo prints one "user: body" line per item.
func (l *lineList) WriteTo(w io.Writer) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total int64
	for _, item := range l.items {
		n, err := fmt.Fprintf(w, "%s: %s\n", item.User, item.Body)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
