package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wirechat-poller/internal/app"
	"github.com/vovakirdan/wirechat-poller/internal/config"
	applog "github.com/vovakirdan/wirechat-poller/internal/log"
)

var rootCmd = &cobra.Command{
	Use:          "wirechat-server",
	Short:        "Reference messages endpoint backed by SQLite",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

var (
	flagConfig   string
	flagAddr     string
	flagDatabase string
	flagLogLevel string
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&flagConfig, "config", "", "path to config file (default config.yaml or $WIRECHAT_CONFIG_DEFAULT_PATH)")
	flags.StringVar(&flagAddr, "addr", "", "HTTP listen address")
	flags.StringVar(&flagDatabase, "db", "", "SQLite database path")
	flags.StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(_ *cobra.Command, _ []string) error {
	bootLevel := flagLogLevel
	if bootLevel == "" {
		bootLevel = "info"
	}
	logger := applog.New(bootLevel)

	cfg, path, err := config.Load(logger, flagConfig)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		return err
	}
	cfg.UpdateFrom(config.Config{
		LogLevel: flagLogLevel,
		Server: config.ServerConfig{
			Addr:         flagAddr,
			DatabasePath: flagDatabase,
		},
	})
	logger = applog.New(cfg.LogLevel)
	logger.Info().Str("config", path).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(&cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize application")
		return err
	}

	logger.Info().Str("addr", cfg.Server.Addr).Msg("starting wirechat server")
	if err := application.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
