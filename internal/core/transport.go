package core

import "context"

// Transport is the remote feed as seen by the core layer.
type Transport interface {
	// FetchMessages returns the full feed. Failures are *FetchError.
	FetchMessages(ctx context.Context) (Feed, error)

	// SubmitMessage appends a message to the remote feed. Failures are *SubmitError.
	SubmitMessage(ctx context.Context, msg Message) error
}
