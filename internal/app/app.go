// Package app assembles the intelligence bridge stack: one bridge per
// configured analysis server, document routing by detected language, and
// workspace watching that feeds batch diagnostics reconciliation.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/lumen/internal/config"
	"github.com/dshills/lumen/internal/intel"
	"github.com/dshills/lumen/internal/rpc"
	"github.com/dshills/lumen/internal/watch"
)

// unit pairs one analysis server's channel with its bridge.
type unit struct {
	name      string
	languages []string
	channel   intel.Channel
	bridge    *intel.Bridge
}

// App owns the bridges for every configured analysis server.
type App struct {
	mu      sync.Mutex
	cfg     config.Config
	log     *slog.Logger
	surface intel.Surface
	units   []*unit
	watcher *watch.Watcher
}

// channelFactory builds the channel for one server. Swappable in tests.
type channelFactory func(name string, srv config.Server) intel.Channel

// New builds an app from config. Bridges are constructed immediately;
// nothing connects until Start.
func New(cfg config.Config, surface intel.Surface, log *slog.Logger) (*App, error) {
	factory := func(name string, srv config.Server) intel.Channel {
		return rpc.New(rpc.Config{
			Command: srv.Command,
			Args:    srv.Args,
			Env:     srv.Env,
			Timeout: cfg.RequestTimeout(),
		}, log.With("server", name))
	}
	return newWithFactory(cfg, surface, log, factory)
}

func newWithFactory(cfg config.Config, surface intel.Surface, log *slog.Logger, factory channelFactory) (*App, error) {
	a := &App{
		cfg:     cfg,
		log:     log,
		surface: surface,
	}

	for name, srv := range cfg.Servers {
		channel := factory(name, srv)
		bridge, err := intel.New(channel, surface,
			intel.WithLogger(log.With("server", name)),
			intel.WithLanguages(srv.Languages),
			intel.WithDiagnosticsDebounce(cfg.DebounceWindow()),
		)
		if err != nil {
			return nil, fmt.Errorf("bridge for %s: %w", name, err)
		}
		a.units = append(a.units, &unit{
			name:      name,
			languages: srv.Languages,
			channel:   channel,
			bridge:    bridge,
		})
	}
	return a, nil
}

// Start initializes every bridge concurrently and begins watching the
// workspace. A server that fails its handshake is logged and skipped; the
// rest of the stack still comes up. Start fails only when no bridge at all
// became ready.
func (a *App) Start(ctx context.Context, workspaceRoot string) error {
	var g errgroup.Group
	for _, u := range a.units {
		g.Go(func() error {
			if !u.bridge.Initialize(ctx, workspaceRoot) {
				a.log.Warn("analysis server unavailable", "server", u.name)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	ready := 0
	for _, u := range a.units {
		if u.bridge.State() == intel.StateReady {
			ready++
		}
	}
	if ready == 0 {
		return fmt.Errorf("no analysis server became ready for %s", workspaceRoot)
	}

	watcher, err := watch.New(workspaceRoot, a.log, func(paths []string) {
		a.log.Debug("workspace changed", "files", len(paths))
		a.RefreshDiagnostics(context.Background())
	})
	if err != nil {
		a.log.Warn("workspace watching disabled", "error", err)
	} else {
		a.mu.Lock()
		a.watcher = watcher
		a.mu.Unlock()
	}

	a.log.Info("app started", "servers", len(a.units), "ready", ready)
	return nil
}

// bridgeFor routes a path to the bridge covering its language.
func (a *App) bridgeFor(path string) *intel.Bridge {
	language := intel.DetectLanguage(path)
	if language == "" {
		return nil
	}
	for _, u := range a.units {
		for _, l := range u.languages {
			if l == language {
				return u.bridge
			}
		}
	}
	return nil
}

// OpenDocument announces an open to the responsible bridge. Documents in
// languages no server covers are ignored.
func (a *App) OpenDocument(ctx context.Context, path string, content *string) {
	if b := a.bridgeFor(path); b != nil {
		b.OpenDocument(ctx, path, content)
		b.FocusDocument(path)
	}
}

// UpdateDocument announces new content to the responsible bridge.
func (a *App) UpdateDocument(ctx context.Context, path, content string) {
	if b := a.bridgeFor(path); b != nil {
		b.UpdateDocument(ctx, path, content)
	}
}

// CloseDocument announces a close to the responsible bridge.
func (a *App) CloseDocument(ctx context.Context, path string) {
	if b := a.bridgeFor(path); b != nil {
		b.CloseDocument(ctx, path)
	}
}

// RefreshDiagnostics schedules batch reconciliation on every ready bridge.
func (a *App) RefreshDiagnostics(ctx context.Context) {
	for _, u := range a.units {
		u.bridge.RefreshDiagnostics(ctx)
	}
}

// DiagnosticsSummary aggregates severity totals across all bridges.
func (a *App) DiagnosticsSummary() intel.Summary {
	var sum intel.Summary
	for _, u := range a.units {
		s := u.bridge.DiagnosticsSummary()
		sum.Errors += s.Errors
		sum.Warnings += s.Warnings
		sum.Infos += s.Infos
		sum.Hints += s.Hints
		sum.Files += s.Files
	}
	return sum
}

// ServerStates reports each configured server's bridge state.
func (a *App) ServerStates() map[string]intel.State {
	states := make(map[string]intel.State, len(a.units))
	for _, u := range a.units {
		states[u.name] = u.bridge.State()
	}
	return states
}

// Shutdown disposes every bridge and closes every channel.
func (a *App) Shutdown() {
	a.mu.Lock()
	watcher := a.watcher
	a.watcher = nil
	a.mu.Unlock()
	if watcher != nil {
		watcher.Stop()
	}

	var g errgroup.Group
	for _, u := range a.units {
		g.Go(func() error {
			u.bridge.Dispose()
			if err := u.channel.Close(); err != nil {
				a.log.Debug("channel close failed", "server", u.name, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	a.log.Info("app stopped")
}
