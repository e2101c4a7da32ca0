package proto

// Message is the JSON shape of a feed entry on the wire.
type Message struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// PostMessage is the body of a POST to the messages endpoint.
type PostMessage struct {
	Text string `json:"text" binding:"required"`
	User string `json:"user"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
