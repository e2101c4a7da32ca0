package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wirechat-poller/internal/app"
	"github.com/vovakirdan/wirechat-poller/internal/config"
	applog "github.com/vovakirdan/wirechat-poller/internal/log"
)

var rootCmd = &cobra.Command{
	Use:           "wirechat",
	Short:         "Polling chat client",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal UI",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Fetch the feed once and print it",
	Args:  cobra.NoArgs,
	RunE:  runRead,
}

var sendCmd = &cobra.Command{
	Use:   "send <text...>",
	Short: "Post a message and print the refreshed feed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSend,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the feed and mirror it into an HTML page",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

var (
	flagConfig   string
	flagEndpoint string
	flagUser     string
	flagLogLevel string

	flagFormat string
	flagOut    string
	flagListen string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "path to config file (default config.yaml or $WIRECHAT_CONFIG_DEFAULT_PATH)")
	flags.StringVar(&flagEndpoint, "endpoint", "", "messages endpoint URL")
	flags.StringVar(&flagUser, "user", "", "name to post messages as")
	flags.StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	readCmd.Flags().StringVar(&flagFormat, "format", app.FormatText, "output format: text or html")
	watchCmd.Flags().StringVar(&flagOut, "out", "", "file to write the page to")
	watchCmd.Flags().StringVar(&flagListen, "listen", "", "address to serve the page on, e.g. :8090")

	rootCmd.AddCommand(tuiCmd, readCmd, sendCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wirechat:", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config file and applies flag overrides.
func loadConfig(logger *zerolog.Logger) (config.Config, error) {
	cfg, path, err := config.Load(logger, flagConfig)
	if err != nil {
		return cfg, err
	}
	cfg.UpdateFrom(config.Config{
		Endpoint: flagEndpoint,
		User:     flagUser,
		LogLevel: flagLogLevel,
	})
	logger.Debug().Str("config", path).Str("endpoint", cfg.Endpoint).Msg("configuration loaded")
	return cfg, nil
}

// newClient loads configuration and builds a client logging to stderr.
func newClient() (*app.Client, error) {
	cfg, err := loadConfig(applog.NewWithWriter(levelOr("warn"), os.Stderr))
	if err != nil {
		return nil, err
	}
	return app.NewClient(cfg, applog.NewWithWriter(cfg.LogLevel, os.Stderr))
}

func levelOr(fallback string) string {
	if flagLogLevel != "" {
		return flagLogLevel
	}
	return fallback
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown command %q", args[0])
	}

	cfg, err := loadConfig(applog.NewWithWriter(levelOr("warn"), os.Stderr))
	if err != nil {
		return err
	}

	// The screen belongs to the UI; logs go to a file.
	logger, closeLog, err := applog.OpenFile(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	client, err := app.NewClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	return client.RunTUI(ctx)
}

func runRead(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	return client.Read(ctx, cmd.OutOrStdout(), flagFormat)
}

func runSend(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	return client.Send(ctx, cmd.OutOrStdout(), strings.Join(args, " "))
}

func runWatch(_ *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	err = client.Watch(ctx, app.WatchOptions{Out: flagOut, Listen: flagListen})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
