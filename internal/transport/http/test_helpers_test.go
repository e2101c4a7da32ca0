package http

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-poller/internal/config"
	"github.com/vovakirdan/wirechat-poller/internal/store"
	"github.com/vovakirdan/wirechat-poller/internal/store/sqlite"
)

// createTestStore creates an in-memory SQLite store with schema applied.
func createTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewWithSetup(":memory:", sqlite.Migrate)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return st
}

// createTestConfig returns a config suitable for in-process servers.
func createTestConfig(postsPerMinute int) *config.Config {
	cfg := config.Default()
	cfg.Server.Addr = ":0"
	cfg.Server.ReadHeaderTimeout = time.Second
	cfg.Server.PostsPerMinute = postsPerMinute
	return &cfg
}

func disabledLogger() *zerolog.Logger {
	logger := zerolog.New(nil)
	return &logger
}
