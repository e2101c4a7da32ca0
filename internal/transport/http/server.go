package http

import (
	"fmt"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-poller/internal/config"
	"github.com/vovakirdan/wirechat-poller/internal/store"
)

// MessagesPath is where the feed endpoint is mounted.
const MessagesPath = "/messages"

// NewServer builds the feed endpoint HTTP server.
func NewServer(st store.MessageStore, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Server.Addr,
		Handler:           NewRouter(st, cfg, logger),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}
}

// NewRouter wires the endpoint routes.
func NewRouter(st store.MessageStore, cfg *config.Config, logger *zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(logger))

	handlers := NewMessageHandlers(st, logger)
	limiter := newRateLimiter(cfg.Server.PostsPerMinute)

	router.GET("/health", healthHandler)
	router.GET(MessagesPath, handlers.List)
	router.POST(MessagesPath, RateLimitMiddleware(limiter, logger), handlers.Create)

	return router
}

func healthHandler(c *gin.Context) {
	_, _ = fmt.Fprint(c.Writer, "ok")
}
