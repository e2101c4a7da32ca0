package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdhttp "net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-poller/internal/composer"
	"github.com/vovakirdan/wirechat-poller/internal/config"
	"github.com/vovakirdan/wirechat-poller/internal/core"
	"github.com/vovakirdan/wirechat-poller/internal/feed"
	"github.com/vovakirdan/wirechat-poller/internal/page"
	"github.com/vovakirdan/wirechat-poller/internal/render"
	transporthttp "github.com/vovakirdan/wirechat-poller/internal/transport/http"
	"github.com/vovakirdan/wirechat-poller/internal/tui"
)

// Output formats of the read and send commands.
const (
	FormatText = "text"
	FormatHTML = "html"
)

// Client runs the chat front ends against one endpoint.
type Client struct {
	cfg          config.Config
	transport    core.Transport
	diff         feed.DiffMode
	presentation render.Presentation
	log          *zerolog.Logger
}

// NewClient validates cfg and builds the HTTP transport.
func NewClient(cfg config.Config, logger *zerolog.Logger) (*Client, error) {
	return newClient(cfg, transporthttp.NewClient(cfg.Endpoint, cfg.RequestTimeout, logger), logger)
}

func newClient(cfg config.Config, transport core.Transport, logger *zerolog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	diff, err := feed.ParseDiffMode(cfg.Diff)
	if err != nil {
		return nil, err
	}
	presentation, err := render.ParsePresentation(cfg.Presentation)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &Client{
		cfg:          cfg,
		transport:    transport,
		diff:         diff,
		presentation: presentation,
		log:          logger,
	}, nil
}

func (c *Client) engine(list feed.List, renderer feed.Renderer) *feed.Engine {
	return feed.NewEngine(c.transport, renderer, list, c.diff, c.log)
}

func (c *Client) composer(refresher composer.Refresher) *composer.Composer {
	return composer.New(c.transport, refresher, c.cfg.User, c.cfg.MaxMessageLength, c.log)
}

// RunTUI runs the interactive terminal UI until the user quits or ctx ends.
func (c *Client) RunTUI(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	list := tui.NewList(80, 20, c.cfg.BottomTolerance)
	engine := c.engine(list, render.NewTerminal(c.presentation, render.DefaultTerminalStyles()))

	model := tui.New(ctx, tui.Options{
		Composer:    c.composer(engine),
		Refresher:   engine,
		List:        list,
		Themes:      tui.NewThemeStore(c.cfg.StatePath),
		ClearOnSend: c.cfg.ClearOnSend,
		Endpoint:    c.cfg.Endpoint,
		Logger:      c.log,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	list.OnChange(func() { program.Send(tui.FeedChangedMsg{}) })

	poller := feed.NewPoller(c.cfg.PollInterval, engine.Poll)
	if err := poller.Start(ctx); err != nil {
		return err
	}
	defer poller.Stop()
	// Cancel first so a poll blocked in program.Send returns before Stop waits on it.
	defer cancel()

	c.log.Info().Str("endpoint", c.cfg.Endpoint).Msg("terminal ui started")
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

// Read refreshes once and prints the feed in format.
func (c *Client) Read(ctx context.Context, w io.Writer, format string) error {
	switch format {
	case FormatText, "":
		list := &lineList{}
		if err := c.engine(list, render.NewTerminal(c.presentation, render.DefaultTerminalStyles())).Refresh(ctx); err != nil {
			return err
		}
		_, err := list.WriteTo(w)
		return err
	case FormatHTML:
		doc := page.New(page.Options{Dark: c.darkMode()})
		if err := c.engine(doc, render.NewHTML(c.presentation)).Refresh(ctx); err != nil {
			return err
		}
		return doc.Render(w)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Send submits text as the configured user, refreshes and prints the feed.
func (c *Client) Send(ctx context.Context, w io.Writer, text string) error {
	list := &lineList{}
	engine := c.engine(list, render.NewTerminal(c.presentation, render.DefaultTerminalStyles()))
	if err := c.composer(engine).Send(ctx, text); err != nil {
		return err
	}
	_, err := list.WriteTo(w)
	return err
}

// WatchOptions selects where the mirrored page goes.
type WatchOptions struct {
	// Out is a file rewritten whenever the feed changes.
	Out string
	// Listen is an address to serve the page on.
	Listen string
}

// Watch polls the feed and mirrors it into an HTML page until ctx ends.
func (c *Client) Watch(ctx context.Context, opts WatchOptions) error {
	if opts.Out == "" && opts.Listen == "" {
		return errors.New("watch needs an output file or a listen address")
	}

	doc := page.New(page.Options{Refresh: c.cfg.PollInterval, Dark: c.darkMode()})
	engine := c.engine(doc, render.NewHTML(c.presentation))

	save := func() {
		if opts.Out == "" {
			return
		}
		wrote, err := doc.Save(opts.Out)
		if err != nil {
			c.log.Error().Err(err).Str("path", opts.Out).Msg("failed to write page")
			return
		}
		if wrote {
			c.log.Info().Str("path", opts.Out).Int("messages", doc.Len()).Msg("page written")
		}
	}

	engine.Poll(ctx)
	save()

	poller := feed.NewPoller(c.cfg.PollInterval, func(ctx context.Context) {
		engine.Poll(ctx)
		save()
	})
	if err := poller.Start(ctx); err != nil {
		return err
	}
	defer poller.Stop()

	if opts.Listen == "" {
		<-ctx.Done()
		return nil
	}

	server := page.NewServer(opts.Listen, doc, c.log)
	serverErr := make(chan error, 1)
	go func() {
		c.log.Info().Str("addr", opts.Listen).Msg("serving feed page")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}

// darkMode reads the theme flag the terminal UI saves.
func (c *Client) darkMode() bool {
	dark, err := tui.NewThemeStore(c.cfg.StatePath).Load()
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to load theme state")
	}
	return dark
}
