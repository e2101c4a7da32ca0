// Package page mirrors the feed into a self-contained HTML document that can
// be written to disk or served over HTTP.
package page

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vovakirdan/wirechat-poller/internal/feed"
)

// Options configures a Document.
type Options struct {
	Title string
	// Refresh makes the page reload itself at this interval. Zero disables it.
	Refresh time.Duration
	Dark    bool
}

// Document is a feed.List backed by an HTML page. Item bodies must already be
// sanitized HTML; user labels are escaped here.
type Document struct {
	opts Options

	mu         sync.RWMutex
	items      []feed.Item
	autoscroll bool
	version    uint64
	saved      uint64
}

var _ feed.List = (*Document)(nil)

// New creates an empty document.
func New(opts Options) *Document {
	if opts.Title == "" {
		opts.Title = "wirechat"
	}
	return &Document{opts: opts}
}

// AtBottom is always true: a static page has no reader scroll position to
// preserve, so every rebuild keeps the newest message in view.
func (d *Document) AtBottom() bool {
	return true
}

// Reset replaces the displayed items.
func (d *Document) Reset(items []feed.Item) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.items = append([]feed.Item(nil), items...)
	d.autoscroll = false
	d.version++
}

// ScrollToBottom makes the page jump to the last message when loaded.
func (d *Document) ScrollToBottom() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.autoscroll {
		d.autoscroll = true
		d.version++
	}
}

// Len returns the number of displayed items.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.items)
}

// Render writes the full page to w.
func (d *Document) Render(w io.Writer) error {
	d.mu.RLock()
	data := d.viewLocked()
	d.mu.RUnlock()

	return pageTemplate.Execute(w, data)
}

// Bytes renders the page into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the page to path if it changed since the last save. The file is
// replaced atomically so readers never see a partial page. It reports whether
// a write happened.
func (d *Document) Save(path string) (bool, error) {
	d.mu.RLock()
	version := d.version
	saved := d.saved
	data := d.viewLocked()
	d.mu.RUnlock()

	if version == saved && version != 0 {
		return false, nil
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return false, fmt.Errorf("render page: %w", err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return false, err
	}

	d.mu.Lock()
	if version > d.saved {
		d.saved = version
	}
	d.mu.Unlock()
	return true, nil
}

func (d *Document) viewLocked() pageView {
	view := pageView{
		Title:      d.opts.Title,
		Refresh:    int(d.opts.Refresh / time.Second),
		Dark:       d.opts.Dark,
		Autoscroll: d.autoscroll,
		Messages:   make([]messageView, len(d.items)),
	}
	for i, item := range d.items {
		view.Messages[i] = messageView{User: item.User, Body: template.HTML(item.Body)}
	}
	return view
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close page: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod page: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace page: %w", err)
	}
	return nil
}
