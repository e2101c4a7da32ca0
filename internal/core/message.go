package core

// Message is the domain model for a chat message.
// Messages carry no identifier; a message is known by its position in a Feed.
type Message struct {
	User string
	Text string
}

// Feed is the ordered list of messages as returned by the endpoint,
// oldest first.
type Feed []Message

// Len returns the number of messages in the feed.
func (f Feed) Len() int {
	return len(f)
}

// Equal reports whether both feeds hold the same messages in the same order.
func (f Feed) Equal(other Feed) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not share the backing array.
func (f Feed) Clone() Feed {
	if f == nil {
		return nil
	}
	out := make(Feed, len(f))
	copy(out, f)
	return out
}
