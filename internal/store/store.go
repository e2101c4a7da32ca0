package store

import (
	"context"
	"time"
)

// Message represents a persisted chat message.
type Message struct {
	ID        int64
	User      string
	Text      string
	CreatedAt time.Time
}

// MessageStore handles message persistence.
type MessageStore interface {
	// SaveMessage persists a message to storage and sets its ID.
	SaveMessage(ctx context.Context, msg *Message) error

	// ListMessages returns every message in chronological order.
	ListMessages(ctx context.Context) ([]*Message, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	MessageStore

	// Close closes the underlying database connection.
	Close() error
}
