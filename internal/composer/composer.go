// Package composer validates outgoing messages and runs the
// submit-then-refresh sequence.
package composer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-poller/internal/core"
)

// Refresher redraws the feed after a message went out.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Composer sends messages on behalf of one user.
type Composer struct {
	transport core.Transport
	refresher Refresher
	user      string
	maxLength int
	log       *zerolog.Logger
}

// New creates a composer. A maxLength of zero or less disables the length check.
func New(transport core.Transport, refresher Refresher, user string, maxLength int, logger *zerolog.Logger) *Composer {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Composer{
		transport: transport,
		refresher: refresher,
		user:      user,
		maxLength: maxLength,
		log:       logger,
	}
}

// User returns the name messages are sent as.
func (c *Composer) User() string {
	return c.user
}

// MaxLength returns the length bound in characters.
func (c *Composer) MaxLength() int {
	return c.maxLength
}

// Validate trims text and checks it is non-empty and within the length bound.
func (c *Composer) Validate(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", core.ErrEmptyMessage
	}
	if c.maxLength > 0 && utf8.RuneCountInString(trimmed) > c.maxLength {
		return "", fmt.Errorf("%w: %d characters, limit is %d",
			core.ErrMessageTooLong, utf8.RuneCountInString(trimmed), c.maxLength)
	}
	return trimmed, nil
}

// Send validates text, submits it and refreshes the feed. Any failure is
// returned; nothing is sent when validation fails.
func (c *Composer) Send(ctx context.Context, text string) error {
	trimmed, err := c.Validate(text)
	if err != nil {
		return err
	}

	msg := core.Message{User: c.user, Text: trimmed}
	if err := c.transport.SubmitMessage(ctx, msg); err != nil {
		c.log.Error().Err(err).Str("user", c.user).Msg("failed to send message")
		return err
	}
	c.log.Info().Str("user", c.user).Int("length", utf8.RuneCountInString(trimmed)).Msg("message sent")

	if c.refresher == nil {
		return nil
	}
	if err := c.refresher.Refresh(ctx); err != nil {
		c.log.Error().Err(err).Msg("failed to refresh after send")
		return fmt.Errorf("refresh after send: %w", err)
	}
	return nil
}

// Counter formats the character counter shown next to the input, e.g. "12/140".
func (c *Composer) Counter(text string) string {
	return fmt.Sprintf("%d/%d", utf8.RuneCountInString(text), c.maxLength)
}

// NearLimit reports whether text is within the warning zone of the length bound.
func (c *Composer) NearLimit(text string) bool {
	if c.maxLength <= 0 {
		return false
	}
	return utf8.RuneCountInString(text) > c.maxLength*6/7
}
