package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-poller/internal/core"
	"github.com/vovakirdan/wirechat-poller/internal/proto"
	"github.com/vovakirdan/wirechat-poller/internal/store"
)

// defaultUser names posts that arrive without a user.
const defaultUser = "anonymous"

// MessageHandlers serves the feed endpoint.
type MessageHandlers struct {
	store store.MessageStore
	log   *zerolog.Logger
}

// NewMessageHandlers creates a new message handlers instance.
func NewMessageHandlers(st store.MessageStore, logger *zerolog.Logger) *MessageHandlers {
	return &MessageHandlers{
		store: st,
		log:   logger,
	}
}

// List returns the whole feed.
// GET /messages
func (h *MessageHandlers) List(c *gin.Context) {
	msgs, err := h.store.ListMessages(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list messages")
		c.JSON(http.StatusInternalServerError, proto.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, wireFromStored(msgs))
}

// Create appends a message to the feed.
// POST /messages
func (h *MessageHandlers) Create(c *gin.Context) {
	var req proto.PostMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid message request")
		c.JSON(http.StatusBadRequest, proto.ErrorResponse{Error: "invalid request body", Code: core.ErrCodeBadRequest})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, proto.ErrorResponse{Error: "text is required", Code: core.ErrCodeEmptyMessage})
		return
	}
	user := strings.TrimSpace(req.User)
	if user == "" {
		user = defaultUser
	}

	msg := &store.Message{
		User:      user,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.SaveMessage(c.Request.Context(), msg); err != nil {
		h.log.Error().Err(err).Str("user", user).Msg("failed to save message")
		c.JSON(http.StatusInternalServerError, proto.ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Int64("id", msg.ID).Str("user", user).Msg("message stored")
	c.JSON(http.StatusCreated, proto.Message{User: msg.User, Text: msg.Text})
}
