package core

import (
	"errors"
	"fmt"
)

// Error codes for domain errors.
const (
	ErrCodeFetchFailed    = "fetch_failed"
	ErrCodeSubmitFailed   = "submit_failed"
	ErrCodeEmptyMessage   = "empty_message"
	ErrCodeMessageTooLong = "message_too_long"
	ErrCodeBadRequest     = "bad_request"
	ErrCodeRateLimited    = "rate_limited"
)

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message is too long")
	ErrBadRequest     = errors.New("bad request")
)

// FetchError is returned when the feed could not be read.
// Status is the HTTP status code, zero for network or decode failures.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch messages: status %d", e.Status)
	}
	return fmt.Sprintf("fetch messages: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SubmitError is returned when a message could not be posted.
// Status is the HTTP status code, zero for network or decode failures.
type SubmitError struct {
	Status int
	Err    error
}

func (e *SubmitError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("submit message: status %d", e.Status)
	}
	return fmt.Sprintf("submit message: %v", e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// ErrorCode maps an error to its domain code, or "" if it has none.
func ErrorCode(err error) string {
	var fetchErr *FetchError
	var submitErr *SubmitError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyMessage):
		return ErrCodeEmptyMessage
	case errors.Is(err, ErrMessageTooLong):
		return ErrCodeMessageTooLong
	case errors.Is(err, ErrBadRequest):
		return ErrCodeBadRequest
	case errors.As(err, &submitErr):
		return ErrCodeSubmitFailed
	case errors.As(err, &fetchErr):
		return ErrCodeFetchFailed
	default:
		return ""
	}
}
