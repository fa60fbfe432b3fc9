package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/dshills/lumen/internal/config"
	"github.com/dshills/lumen/internal/intel"
)

// stubChannel is a minimal intel.Channel for orchestration tests.
type stubChannel struct {
	mu            sync.Mutex
	handshakeErr  error
	handshakes    int
	notifications []intel.Capability
	requests      []intel.Capability
	pushFn        func(intel.PushEvent)
	closed        bool
}

func (c *stubChannel) Handshake(context.Context, string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handshakes++
	return c.handshakeErr
}

func (c *stubChannel) Request(_ context.Context, capability intel.Capability, _ string, _ any) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, capability)
	return nil, nil
}

func (c *stubChannel) Notify(_ context.Context, capability intel.Capability, _ string, _ any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, capability)
	return nil
}

func (c *stubChannel) Subscribe(fn func(intel.PushEvent)) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushFn = fn
	return func() {}, nil
}

func (c *stubChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *stubChannel) notificationCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.notifications)
}

func testConfig() config.Config {
	return config.Config{
		LogLevel:    "info",
		Diagnostics: config.Diagnostics{DebounceMS: 10},
		RPC:         config.RPC{TimeoutSeconds: 1},
		Servers: map[string]config.Server{
			"go-ls":   {Command: "go-ls", Languages: []string{"go"}},
			"rust-ls": {Command: "rust-ls", Languages: []string{"rust"}},
		},
	}
}

func newTestApp(t *testing.T, cfg config.Config) (*App, map[string]*stubChannel) {
	t.Helper()

	channels := make(map[string]*stubChannel)
	factory := func(name string, _ config.Server) intel.Channel {
		ch := &stubChannel{}
		channels[name] = ch
		return ch
	}

	a, err := newWithFactory(cfg, NewHeadlessSurface(), slog.New(slog.DiscardHandler), factory)
	if err != nil {
		t.Fatalf("newWithFactory error: %v", err)
	}
	return a, channels
}

func TestStartBringsUpAllBridges(t *testing.T) {
	a, channels := newTestApp(t, testConfig())
	defer a.Shutdown()

	if err := a.Start(context.Background(), t.TempDir()); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	for name, state := range a.ServerStates() {
		if state != intel.StateReady {
			t.Errorf("server %s state = %v, want ready", name, state)
		}
	}
	for name, ch := range channels {
		ch.mu.Lock()
		handshakes := ch.handshakes
		ch.mu.Unlock()
		if handshakes != 1 {
			t.Errorf("server %s handshakes = %d, want 1", name, handshakes)
		}
	}
}

func TestStartSurvivesPartialFailure(t *testing.T) {
	cfg := testConfig()
	a, channels := newTestApp(t, cfg)
	defer a.Shutdown()

	channels["rust-ls"].handshakeErr = context.DeadlineExceeded

	if err := a.Start(context.Background(), t.TempDir()); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	states := a.ServerStates()
	if states["go-ls"] != intel.StateReady {
		t.Errorf("go-ls state = %v, want ready", states["go-ls"])
	}
	if states["rust-ls"] != intel.StateUninitialized {
		t.Errorf("rust-ls state = %v, want uninitialized", states["rust-ls"])
	}
}

func TestStartFailsWhenNothingReady(t *testing.T) {
	a, channels := newTestApp(t, testConfig())
	defer a.Shutdown()

	for _, ch := range channels {
		ch.handshakeErr = context.DeadlineExceeded
	}

	if err := a.Start(context.Background(), t.TempDir()); err == nil {
		t.Fatal("Start error = nil, want failure with no servers ready")
	}
}

func TestDocumentRoutingByLanguage(t *testing.T) {
	a, channels := newTestApp(t, testConfig())
	defer a.Shutdown()
	ctx := context.Background()

	if err := a.Start(ctx, t.TempDir()); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	a.OpenDocument(ctx, "/src/main.go", nil)
	a.OpenDocument(ctx, "/src/lib.rs", nil)
	a.UpdateDocument(ctx, "/src/main.go", "package main")

	if got := channels["go-ls"].notificationCount(); got != 2 {
		t.Errorf("go-ls notifications = %d, want 2 (open + change)", got)
	}
	if got := channels["rust-ls"].notificationCount(); got != 1 {
		t.Errorf("rust-ls notifications = %d, want 1 (open)", got)
	}
}

func TestUnknownLanguageIgnored(t *testing.T) {
	a, channels := newTestApp(t, testConfig())
	defer a.Shutdown()
	ctx := context.Background()

	if err := a.Start(ctx, t.TempDir()); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	a.OpenDocument(ctx, "/notes/README.txt", nil)

	for name, ch := range channels {
		if got := ch.notificationCount(); got != 0 {
			t.Errorf("server %s notifications = %d, want 0", name, got)
		}
	}
}

func TestDiagnosticsSummaryAggregates(t *testing.T) {
	surface := NewHeadlessSurface()
	surface.OpenResource("/src/main.go")
	surface.OpenResource("/src/lib.rs")

	channels := make(map[string]*stubChannel)
	factory := func(name string, _ config.Server) intel.Channel {
		ch := &stubChannel{}
		channels[name] = ch
		return ch
	}
	a, err := newWithFactory(testConfig(), surface, slog.New(slog.DiscardHandler), factory)
	if err != nil {
		t.Fatalf("newWithFactory error: %v", err)
	}
	defer a.Shutdown()

	ctx := context.Background()
	if err := a.Start(ctx, t.TempDir()); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	diag := intel.Diagnostic{
		Range:    intel.Range{Start: intel.Position{Line: 0}, End: intel.Position{Line: 0, Character: 1}},
		Severity: intel.SeverityError,
		Message:  "broken",
	}
	channels["go-ls"].pushFn(intel.PushEvent{Path: "/src/main.go", Source: "compiler", Diagnostics: []intel.Diagnostic{diag}})
	channels["rust-ls"].pushFn(intel.PushEvent{Path: "/src/lib.rs", Source: "rustc", Diagnostics: []intel.Diagnostic{diag}})

	sum := a.DiagnosticsSummary()
	if sum.Errors != 2 || sum.Files != 2 {
		t.Errorf("Summary = %+v, want 2 errors across 2 files", sum)
	}
}

func TestShutdownClosesChannels(t *testing.T) {
	a, channels := newTestApp(t, testConfig())

	if err := a.Start(context.Background(), t.TempDir()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	a.Shutdown()

	for name, ch := range channels {
		ch.mu.Lock()
		closed := ch.closed
		ch.mu.Unlock()
		if !closed {
			t.Errorf("server %s channel not closed", name)
		}
	}
	for name, state := range a.ServerStates() {
		if state != intel.StateDisposed {
			t.Errorf("server %s state = %v, want disposed", name, state)
		}
	}
}
