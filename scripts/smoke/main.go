package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-poller/internal/core"
	transporthttp "github.com/vovakirdan/wirechat-poller/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Printf("smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	endpoint := flag.String("endpoint", "http://localhost:8080/messages", "messages endpoint URL")
	user := flag.String("user", "tester", "username to post as")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	verbose := flag.Bool("v", false, "log requests")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
	}
	client := transporthttp.NewClient(*endpoint, *timeout, &logger)

	before, err := client.FetchMessages(ctx)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	fmt.Printf("Feed has %d messages\n", before.Len())

	if err := client.SubmitMessage(ctx, core.Message{User: *user, Text: *text}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	after, err := client.FetchMessages(ctx)
	if err != nil {
		return fmt.Errorf("fetch after submit: %w", err)
	}
	if after.Len() == 0 {
		return fmt.Errorf("feed is empty after submit")
	}

	last := after[after.Len()-1]
	fmt.Printf("Last message: user=%s text=%q\n", last.User, last.Text)
	if last.User != *user || last.Text != *text {
		return fmt.Errorf("last message does not match what was sent")
	}
	return nil
}
