package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdhttp "net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-poller/internal/core"
	"github.com/vovakirdan/wirechat-poller/internal/proto"
)

// HeaderRequestID correlates client requests with endpoint logs.
const HeaderRequestID = "X-Request-ID"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// Client talks to a messages endpoint over HTTP and implements core.Transport.
type Client struct {
	endpoint   string
	httpClient *stdhttp.Client
	log        *zerolog.Logger
}

// NewClient creates a transport for endpoint. A zero timeout means no timeout.
func NewClient(endpoint string, timeout time.Duration, logger *zerolog.Logger) *Client {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &stdhttp.Client{Timeout: timeout},
		log:        logger,
	}
}

// Endpoint returns the URL the client reads from and posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchMessages reads the full feed.
func (c *Client) FetchMessages(ctx context.Context) (core.Feed, error) {
	status, body, err := c.do(ctx, stdhttp.MethodGet, nil)
	if err != nil {
		return nil, &core.FetchError{Err: err}
	}
	if status < 200 || status > 299 {
		return nil, &core.FetchError{Status: status, Err: statusError(status, body)}
	}

	var wire []proto.Message
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, &core.FetchError{Err: fmt.Errorf("decode feed: %w", err)}
	}

	c.log.Debug().Int("messages", len(wire)).Msg("feed fetched")
	return feedFromWire(wire), nil
}

// SubmitMessage posts msg to the endpoint. The endpoint must answer 2xx with a JSON body.
func (c *Client) SubmitMessage(ctx context.Context, msg core.Message) error {
	payload, err := json.Marshal(postFromMessage(msg))
	if err != nil {
		return &core.SubmitError{Err: fmt.Errorf("encode message: %w", err)}
	}

	status, body, err := c.do(ctx, stdhttp.MethodPost, payload)
	if err != nil {
		return &core.SubmitError{Err: err}
	}
	if status < 200 || status > 299 {
		return &core.SubmitError{Status: status, Err: statusError(status, body)}
	}
	if !json.Valid(body) {
		return &core.SubmitError{Err: fmt.Errorf("response is not JSON")}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := stdhttp.NewRequestWithContext(ctx, method, c.endpoint, reader)
	if err != nil {
		return 0, nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, err
	}

	c.log.Debug().
		Str("method", method).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Msg("endpoint request")
	return resp.StatusCode, body, nil
}

// statusError describes a non-2xx answer, using the endpoint's error message when it sent one.
func statusError(status int, body []byte) error {
	var errResp proto.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("endpoint error %d: %s", status, errResp.Error)
	}
	return fmt.Errorf("endpoint error %d", status)
}
