package app

import (
	"sort"
	"sync"

	"github.com/dshills/lumen/internal/intel"
)

// HeadlessSurface is an editing surface with no screen behind it. The CLI
// uses it to run the bridge stack against a workspace and read the marker
// store directly; it also keeps provider registrations so capability
// requests can be driven programmatically.
type HeadlessSurface struct {
	mu sync.Mutex

	open    map[string]bool
	markers map[string]map[string][]intel.Marker // resource -> source -> bucket

	hover         map[string]intel.HoverProvider
	completion    map[string]intel.CompletionProvider
	definition    map[string]intel.LocationProvider
	typeDef       map[string]intel.LocationProvider
	implem        map[string]intel.LocationProvider
	references    map[string]intel.ReferenceProvider
	symbols       map[string]intel.SymbolProvider
	signatureHelp map[string]intel.SignatureHelpProvider
	codeActions   map[string]intel.CodeActionProvider
	formatting    map[string]intel.FormattingProvider
	rename        map[string]intel.RenameProvider
}

// NewHeadlessSurface creates an empty surface.
func NewHeadlessSurface() *HeadlessSurface {
	return &HeadlessSurface{
		open:          make(map[string]bool),
		markers:       make(map[string]map[string][]intel.Marker),
		hover:         make(map[string]intel.HoverProvider),
		completion:    make(map[string]intel.CompletionProvider),
		definition:    make(map[string]intel.LocationProvider),
		typeDef:       make(map[string]intel.LocationProvider),
		implem:        make(map[string]intel.LocationProvider),
		references:    make(map[string]intel.ReferenceProvider),
		symbols:       make(map[string]intel.SymbolProvider),
		signatureHelp: make(map[string]intel.SignatureHelpProvider),
		codeActions:   make(map[string]intel.CodeActionProvider),
		formatting:    make(map[string]intel.FormattingProvider),
		rename:        make(map[string]intel.RenameProvider),
	}
}

// OpenResource marks a resource as open so diagnostics can resolve to it.
func (s *HeadlessSurface) OpenResource(resource string) {
	s.mu.Lock()
	s.open[resource] = true
	s.mu.Unlock()
}

// CloseResource removes a resource and its markers.
func (s *HeadlessSurface) CloseResource(resource string) {
	s.mu.Lock()
	delete(s.open, resource)
	delete(s.markers, resource)
	s.mu.Unlock()
}

// OpenResources lists open resource identifiers.
func (s *HeadlessSurface) OpenResources() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.open))
	for resource := range s.open {
		out = append(out, resource)
	}
	sort.Strings(out)
	return out
}

// ApplyMarkers replaces the (resource, source) bucket.
func (s *HeadlessSurface) ApplyMarkers(resource, source string, markers []intel.Marker) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buckets, ok := s.markers[resource]
	if !ok {
		if len(markers) == 0 {
			return
		}
		buckets = make(map[string][]intel.Marker)
		s.markers[resource] = buckets
	}
	if len(markers) == 0 {
		delete(buckets, source)
		if len(buckets) == 0 {
			delete(s.markers, resource)
		}
		return
	}
	buckets[source] = markers
}

// Markers returns every marker on a resource across sources, ordered by
// position.
func (s *HeadlessSurface) Markers(resource string) []intel.Marker {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []intel.Marker
	for _, bucket := range s.markers[resource] {
		out = append(out, bucket...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartLine != out[j].StartLine {
			return out[i].StartLine < out[j].StartLine
		}
		return out[i].StartColumn < out[j].StartColumn
	})
	return out
}

// registration removes one provider entry on dispose.
type registration struct {
	dispose func()
}

func (r *registration) Dispose() {
	r.dispose()
}

func register[P any](s *HeadlessSurface, table map[string]P, language string, p P) intel.Disposable {
	s.mu.Lock()
	table[language] = p
	s.mu.Unlock()
	return &registration{dispose: func() {
		s.mu.Lock()
		delete(table, language)
		s.mu.Unlock()
	}}
}

func (s *HeadlessSurface) RegisterHoverProvider(language string, p intel.HoverProvider) intel.Disposable {
	return register(s, s.hover, language, p)
}

func (s *HeadlessSurface) RegisterCompletionProvider(language string, p intel.CompletionProvider) intel.Disposable {
	return register(s, s.completion, language, p)
}

func (s *HeadlessSurface) RegisterDefinitionProvider(language string, p intel.LocationProvider) intel.Disposable {
	return register(s, s.definition, language, p)
}

func (s *HeadlessSurface) RegisterTypeDefinitionProvider(language string, p intel.LocationProvider) intel.Disposable {
	return register(s, s.typeDef, language, p)
}

func (s *HeadlessSurface) RegisterImplementationProvider(language string, p intel.LocationProvider) intel.Disposable {
	return register(s, s.implem, language, p)
}

func (s *HeadlessSurface) RegisterReferenceProvider(language string, p intel.ReferenceProvider) intel.Disposable {
	return register(s, s.references, language, p)
}

func (s *HeadlessSurface) RegisterSymbolProvider(language string, p intel.SymbolProvider) intel.Disposable {
	return register(s, s.symbols, language, p)
}

func (s *HeadlessSurface) RegisterSignatureHelpProvider(language string, p intel.SignatureHelpProvider) intel.Disposable {
	return register(s, s.signatureHelp, language, p)
}

func (s *HeadlessSurface) RegisterCodeActionProvider(language string, p intel.CodeActionProvider) intel.Disposable {
	return register(s, s.codeActions, language, p)
}

func (s *HeadlessSurface) RegisterFormattingProvider(language string, p intel.FormattingProvider) intel.Disposable {
	return register(s, s.formatting, language, p)
}

func (s *HeadlessSurface) RegisterRenameProvider(language string, p intel.RenameProvider) intel.Disposable {
	return register(s, s.rename, language, p)
}

// Hover returns the hover provider registered for a language, if any.
func (s *HeadlessSurface) Hover(language string) (intel.HoverProvider, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.hover[language]
	return p, ok
}

// Symbols returns the symbol provider registered for a language, if any.
func (s *HeadlessSurface) Symbols(language string) (intel.SymbolProvider, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.symbols[language]
	return p, ok
}

var _ intel.Surface = (*HeadlessSurface)(nil)
