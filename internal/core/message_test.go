package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestFeedEqual(t *testing.T) {
	base := Feed{{User: "ana", Text: "hola"}, {User: "bob", Text: "hi"}}

	tests := []struct {
		name  string
		other Feed
		want  bool
	}{
		{name: "same", other: Feed{{User: "ana", Text: "hola"}, {User: "bob", Text: "hi"}}, want: true},
		{name: "shorter", other: Feed{{User: "ana", Text: "hola"}}, want: false},
		{name: "edited text", other: Feed{{User: "ana", Text: "hola"}, {User: "bob", Text: "hey"}}, want: false},
		{name: "reordered", other: Feed{{User: "bob", Text: "hi"}, {User: "ana", Text: "hola"}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Fatalf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFeedCloneDoesNotShare(t *testing.T) {
	original := Feed{{User: "ana", Text: "hola"}}
	clone := original.Clone()
	clone[0].Text = "changed"

	if original[0].Text != "hola" {
		t.Fatalf("clone shares backing array with original")
	}
	if Feed(nil).Clone() != nil {
		t.Fatalf("clone of nil feed should be nil")
	}
}

func TestErrorCode(t *testing.T) {
	wrappedFetch := fmt.Errorf("refresh: %w", &FetchError{Status: 502})

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "empty", err: ErrEmptyMessage, want: ErrCodeEmptyMessage},
		{name: "too long", err: fmt.Errorf("validate: %w", ErrMessageTooLong), want: ErrCodeMessageTooLong},
		{name: "fetch", err: wrappedFetch, want: ErrCodeFetchFailed},
		{name: "submit", err: &SubmitError{Err: errors.New("boom")}, want: ErrCodeSubmitFailed},
		{name: "unknown", err: errors.New("other"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.want {
				t.Fatalf("ErrorCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchErrorMessageIncludesStatus(t *testing.T) {
	err := &FetchError{Status: 503}
	if err.Error() != "fetch messages: status 503" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	cause := errors.New("connection refused")
	err = &FetchError{Err: cause}
	if !errors.Is(err, cause) {
		t.Fatalf("FetchError should unwrap to its cause")
	}
}
