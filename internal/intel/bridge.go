package intel

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// State is the bridge lifecycle state.
type State int

// Lifecycle states. Disposed is terminal; a fresh bridge instance is the
// only way back.
const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateDisposed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// defaultLanguages is the language set registered when none is configured.
var defaultLanguages = []string{"go", "rust", "typescript", "javascript", "python", "c", "cpp"}

// Bridge wires one analysis server into the editing surface: it registers
// capability adapters, keeps document state synchronized, and streams
// diagnostics into the marker store. All state is instance-private; two
// bridges never share anything, so tests and multi-workspace setups can
// run them side by side.
type Bridge struct {
	mu      sync.Mutex
	state   State
	channel Channel
	surface Surface
	log     *slog.Logger

	languages     []string
	diagsDebounce time.Duration
	registry      *Registry
	docs          *DocumentSync
	diags         *DiagnosticsStream
}

// BridgeOption configures a bridge.
type BridgeOption func(*Bridge)

// WithLanguages sets the languages to register capabilities for.
func WithLanguages(languages []string) BridgeOption {
	return func(b *Bridge) {
		b.languages = languages
	}
}

// WithLogger sets the bridge logger.
func WithLogger(log *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		b.log = log
	}
}

// WithDiagnosticsDebounce sets the batch reconciliation debounce window.
func WithDiagnosticsDebounce(d time.Duration) BridgeOption {
	return func(b *Bridge) {
		b.diagsDebounce = d
	}
}

// New creates a bridge. The channel and surface are constructor-time
// dependencies: a bridge cannot exist without them, which removes the need
// for presence checks inside every adapter.
func New(channel Channel, surface Surface, opts ...BridgeOption) (*Bridge, error) {
	if channel == nil {
		return nil, ErrNilChannel
	}
	if surface == nil {
		return nil, ErrNilSurface
	}

	b := &Bridge{
		state:         StateUninitialized,
		channel:       channel,
		surface:       surface,
		log:           slog.Default(),
		languages:     defaultLanguages,
		diagsDebounce: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.registry = NewRegistry(channel, surface, b.log)
	b.docs = NewDocumentSync(channel, b.log)
	b.diags = NewDiagnosticsStream(channel, surface, b.log, WithBatchDebounce(b.diagsDebounce))
	return b, nil
}

// Initialize performs the channel handshake, registers capability adapters
// for the configured languages, and starts the diagnostics subscription.
// It reports success as a boolean: a failed handshake logs a warning and
// leaves the bridge re-initializable, never errored-and-stuck. Calling it
// on a ready bridge is a no-op returning true; on a disposed bridge it
// returns false.
func (b *Bridge) Initialize(ctx context.Context, workspaceRoot string) bool {
	b.mu.Lock()
	switch b.state {
	case StateReady:
		b.mu.Unlock()
		return true
	case StateDisposed, StateInitializing:
		b.mu.Unlock()
		return false
	}
	b.state = StateInitializing
	b.mu.Unlock()

	if err := b.channel.Handshake(ctx, workspaceRoot); err != nil {
		b.log.Warn("analysis server handshake failed", "workspace", workspaceRoot, "error", err)
		b.leaveInitializing(StateUninitialized)
		return false
	}

	if err := b.diags.Start(); err != nil {
		b.log.Warn("diagnostics subscription failed", "error", err)
		b.leaveInitializing(StateUninitialized)
		return false
	}

	for _, language := range b.languages {
		b.registry.RegisterCapabilities(language)
	}

	if !b.leaveInitializing(StateReady) {
		// Disposed while the handshake was in flight. Dispose already ran
		// its teardown, so unwind what this pass brought up afterwards.
		b.diags.Stop()
		b.registry.DisposeAll()
		return false
	}
	b.log.Info("bridge ready", "workspace", workspaceRoot, "languages", len(b.languages))
	return true
}

// leaveInitializing transitions Initializing to the given state. It reports
// false when the bridge is no longer initializing, which happens when
// Dispose won the race; Disposed stays terminal in that case.
func (b *Bridge) leaveInitializing(to State) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateInitializing {
		return false
	}
	b.state = to
	return true
}

// Dispose tears down capability registrations and the push subscription
// exactly once. Disposing twice is safe; Disposed is terminal.
func (b *Bridge) Dispose() {
	b.mu.Lock()
	if b.state == StateDisposed {
		b.mu.Unlock()
		return
	}
	b.state = StateDisposed
	b.mu.Unlock()

	b.diags.Stop()
	b.registry.DisposeAll()
	b.docs.CloseAll(context.Background())
	b.log.Info("bridge disposed")
}

// State returns the current lifecycle state.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// ready reports whether the bridge accepts work.
func (b *Bridge) ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == StateReady
}

// OpenDocument announces an opened document. A nil content means the
// analysis server reads the file itself. No-op unless ready.
func (b *Bridge) OpenDocument(ctx context.Context, path string, content *string) {
	if !b.ready() {
		return
	}
	b.docs.Open(ctx, path, content)
}

// UpdateDocument announces new document content. No-op unless ready.
func (b *Bridge) UpdateDocument(ctx context.Context, path, content string) {
	if !b.ready() {
		return
	}
	b.docs.Change(ctx, path, content)
}

// CloseDocument announces a closed document. No-op unless ready.
func (b *Bridge) CloseDocument(ctx context.Context, path string) {
	if !b.ready() {
		return
	}
	b.docs.Close(ctx, path)
}

// FocusDocument marks the currently focused document. No-op unless ready.
func (b *Bridge) FocusDocument(path string) {
	if !b.ready() {
		return
	}
	b.docs.SetActive(path)
}

// RefreshDiagnostics schedules a debounced batch reconciliation pass.
// No-op unless ready.
func (b *Bridge) RefreshDiagnostics(ctx context.Context) {
	if !b.ready() {
		return
	}
	b.diags.RequestRefresh(ctx)
}

// DiagnosticsSummary returns severity totals across all marker buckets.
func (b *Bridge) DiagnosticsSummary() Summary {
	return b.diags.Summary()
}

// Documents returns the document synchronizer for direct inspection.
func (b *Bridge) Documents() *DocumentSync {
	return b.docs
}

// Capabilities returns the capability registry for direct inspection.
func (b *Bridge) Capabilities() *Registry {
	return b.registry
}
