package intel

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// Registry installs capability adapters against the editing surface, one
// set per document language. Registration is monotonic and idempotent;
// there is no per-language teardown, only DisposeAll.
type Registry struct {
	mu          sync.Mutex
	channel     Channel
	surface     Surface
	log         *slog.Logger
	registered  map[string]bool
	disposables []Disposable
}

// NewRegistry creates a registry bound to a channel and a surface.
func NewRegistry(channel Channel, surface Surface, log *slog.Logger) *Registry {
	return &Registry{
		channel:    channel,
		surface:    surface,
		log:        log,
		registered: make(map[string]bool),
	}
}

// RegisterCapabilities installs one adapter per supported capability for a
// language. Calling it again for the same language is a no-op.
func (r *Registry) RegisterCapabilities(language string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.registered[language] {
		return
	}
	r.registered[language] = true

	base := adapter{channel: r.channel, log: r.log.With("language", language)}

	r.disposables = append(r.disposables,
		r.surface.RegisterHoverProvider(language, &hoverAdapter{base}),
		r.surface.RegisterCompletionProvider(language, &completionAdapter{base}),
		r.surface.RegisterDefinitionProvider(language, &locationAdapter{adapter: base, cap: CapDefinition}),
		// Type definition and implementation have no dedicated request
		// channel; both fall back to the definition channel. Known
		// limitation, not a bug to fix here.
		r.surface.RegisterTypeDefinitionProvider(language, &locationAdapter{adapter: base, cap: CapDefinition}),
		r.surface.RegisterImplementationProvider(language, &locationAdapter{adapter: base, cap: CapDefinition}),
		r.surface.RegisterReferenceProvider(language, &referenceAdapter{base}),
		r.surface.RegisterSymbolProvider(language, &symbolAdapter{base}),
		r.surface.RegisterSignatureHelpProvider(language, &signatureHelpAdapter{base}),
		r.surface.RegisterCodeActionProvider(language, &codeActionAdapter{base}),
		r.surface.RegisterFormattingProvider(language, &formattingAdapter{base}),
		r.surface.RegisterRenameProvider(language, &renameAdapter{base}),
	)

	r.log.Info("capabilities registered", "language", language)
}

// IsRegistered reports whether capabilities are installed for a language.
func (r *Registry) IsRegistered(language string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registered[language]
}

// RegisteredLanguages returns the languages with installed capabilities.
func (r *Registry) RegisteredLanguages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	langs := make([]string, 0, len(r.registered))
	for lang := range r.registered {
		langs = append(langs, lang)
	}
	return langs
}

// DisposableCount returns the number of tracked registrations.
func (r *Registry) DisposableCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.disposables)
}

// DisposeAll disposes every registration and clears the registered-language
// set, leaving the registry re-initializable.
func (r *Registry) DisposeAll() {
	r.mu.Lock()
	disposables := r.disposables
	r.disposables = nil
	r.registered = make(map[string]bool)
	r.mu.Unlock()

	for _, d := range disposables {
		d.Dispose()
	}
}

// adapter is the shared core of every capability adapter: it routes a
// request through the channel and degrades every failure to "no result".
// Capability failures never surface as UI errors.
type adapter struct {
	channel Channel
	log     *slog.Logger
}

// request issues a capability request for a resource and decodes the result
// into out. It returns false when the request fails, returns nothing, or
// the result does not decode; all three are logged at debug level only.
func (a adapter) request(ctx context.Context, capability Capability, resource string, params, out any) bool {
	raw, err := a.channel.Request(ctx, capability, IdentifierToPath(resource), params)
	if err != nil {
		a.log.Debug("capability request failed", "capability", capability, "resource", resource, "error", err)
		return false
	}
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		a.log.Debug("capability result undecodable", "capability", capability, "resource", resource, "error", err)
		return false
	}
	return true
}

// hoverAdapter serves hover requests.
type hoverAdapter struct {
	adapter
}

// Hover requests hover content at a position. The cursor converts to
// protocol-space on the way out and the result range converts back.
func (a *hoverAdapter) Hover(ctx context.Context, resource string, pos SurfacePosition) (*SurfaceHover, error) {
	var hover Hover
	if !a.request(ctx, CapHover, resource, PositionParams{Position: ToProtocolPosition(pos)}, &hover) {
		return nil, nil
	}
	if hover.Contents == "" {
		return nil, nil
	}

	result := &SurfaceHover{Contents: hover.Contents}
	if hover.Range != nil {
		rng := ToSurfaceRange(*hover.Range)
		result.Range = &rng
	}
	return result, nil
}
