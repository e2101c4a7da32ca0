package feed

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPollerCallsUntilStopped(t *testing.T) {
	var calls atomic.Int32
	p := NewPoller(5*time.Millisecond, func(context.Context) {
		calls.Add(1)
	})

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !p.Running() {
		t.Fatalf("poller should be running")
	}

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if calls.Load() < 3 {
		t.Fatalf("expected at least 3 calls, got %d", calls.Load())
	}

	p.Stop()
	if p.Running() {
		t.Fatalf("poller should be stopped")
	}

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	if calls.Load() != after {
		t.Fatalf("poller kept calling after Stop")
	}
}

func TestPollerStartTwice(t *testing.T) {
	p := NewPoller(time.Hour, func(context.Context) {})
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Stop()

	if err := p.Start(context.Background()); !errors.Is(err, ErrPollerRunning) {
		t.Fatalf("expected ErrPollerRunning, got %v", err)
	}
}

func TestPollerRestartAfterStop(t *testing.T) {
	var calls atomic.Int32
	p := NewPoller(5*time.Millisecond, func(context.Context) { calls.Add(1) })

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	p.Stop()
	p.Stop()

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if calls.Load() == 0 {
		t.Fatalf("restarted poller never ticked")
	}
}

func TestPollerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(5*time.Millisecond, func(context.Context) {})

	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for p.Running() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if p.Running() {
		t.Fatalf("poller ignored context cancellation")
	}
}

func TestPollerRejectsZeroInterval(t *testing.T) {
	p := NewPoller(0, func(context.Context) {})
	if err := p.Start(context.Background()); err == nil {
		t.Fatalf("expected error for zero interval")
	}
}

func TestPollerDrivesEngine(t *testing.T) {
	transport := &fakeTransport{err: errOffline}
	list := &memoryList{}
	engine := NewEngine(transport, echoRenderer{}, list, DiffLength, nil)

	p := NewPoller(5*time.Millisecond, engine.Poll)
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for transport.fetchCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	p.Stop()

	if transport.fetchCount() < 2 {
		t.Fatalf("poller stopped after a failed fetch")
	}
	if list.resets != 0 {
		t.Fatalf("failed fetches must not touch the list")
	}
}
