package intel

import "context"

// Surface-space types. Lines and columns are one-indexed, matching the
// editing surface's UI-facing API. Documents are addressed by an opaque
// resource identifier derived from the path (see position.go).

// SurfacePosition is a one-indexed line/column position.
type SurfacePosition struct {
	Line   int
	Column int
}

// SurfaceRange is a one-indexed range.
type SurfaceRange struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// SurfaceLocation is a surface-space range inside a resource.
type SurfaceLocation struct {
	Resource string
	Range    SurfaceRange
}

// SurfaceHover is hover content positioned in surface-space.
type SurfaceHover struct {
	Contents string
	Range    *SurfaceRange
}

// SurfaceCompletionItem is a completion suggestion in surface-space.
type SurfaceCompletionItem struct {
	Label         string
	Kind          SurfaceCompletionKind
	Detail        string
	Documentation string
	InsertText    string
	SortText      string
}

// SurfaceCompletionList holds surface-space completion results.
type SurfaceCompletionList struct {
	IsIncomplete bool
	Items        []SurfaceCompletionItem
}

// SurfaceSymbol is a document symbol in surface-space.
type SurfaceSymbol struct {
	Name           string
	Detail         string
	Kind           SurfaceSymbolKind
	Range          SurfaceRange
	SelectionRange SurfaceRange
	Children       []SurfaceSymbol
}

// SurfaceTextEdit replaces a surface-space range with new text.
type SurfaceTextEdit struct {
	Range   SurfaceRange
	NewText string
}

// SurfaceWorkspaceEdit groups surface-space edits by resource.
type SurfaceWorkspaceEdit struct {
	Edits map[string][]SurfaceTextEdit
}

// SurfaceCodeAction is a code action in surface-space.
type SurfaceCodeAction struct {
	Title       string
	Kind        string
	IsPreferred bool
	Edit        *SurfaceWorkspaceEdit
	Command     string
}

// SignatureHelpResult wraps signature help in the disposable shape the
// surface API requires, even though there is nothing to release.
type SignatureHelpResult struct {
	Value *SignatureHelp
}

// Dispose implements Disposable.
func (r *SignatureHelpResult) Dispose() {}

// CodeActionList wraps code actions in the disposable shape the surface API
// requires.
type CodeActionList struct {
	Actions []SurfaceCodeAction
}

// Dispose implements Disposable.
func (l *CodeActionList) Dispose() {}

// SurfaceRenameLocation is the surface-space rename resolution result.
// When Rejected is set, RejectReason explains why no rename is possible at
// the position; the surface shows the reason instead of a rename box.
type SurfaceRenameLocation struct {
	Range        SurfaceRange
	Placeholder  string
	Rejected     bool
	RejectReason string
}

// Marker is a diagnostic annotation in surface-space, ready for the
// surface's marker store.
type Marker struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
	Message     string
	Severity    Severity
	Source      string
	Code        string
}

// Disposable releases a registration or result.
type Disposable interface {
	Dispose()
}

// Provider interfaces implemented by capability adapters. All take and
// return surface-space values; adapters never return errors for capability
// failures, only empty results.

// HoverProvider serves hover requests.
type HoverProvider interface {
	Hover(ctx context.Context, resource string, pos SurfacePosition) (*SurfaceHover, error)
}

// CompletionProvider serves completion requests.
type CompletionProvider interface {
	Completions(ctx context.Context, resource string, pos SurfacePosition) (*SurfaceCompletionList, error)
}

// LocationProvider serves definition-style navigation requests.
type LocationProvider interface {
	Locations(ctx context.Context, resource string, pos SurfacePosition) ([]SurfaceLocation, error)
}

// ReferenceProvider serves find-references requests.
type ReferenceProvider interface {
	References(ctx context.Context, resource string, pos SurfacePosition, includeDeclaration bool) ([]SurfaceLocation, error)
}

// SymbolProvider serves document-symbol requests.
type SymbolProvider interface {
	Symbols(ctx context.Context, resource string) ([]SurfaceSymbol, error)
}

// SignatureHelpProvider serves signature-help requests.
type SignatureHelpProvider interface {
	SignatureHelp(ctx context.Context, resource string, pos SurfacePosition) (*SignatureHelpResult, error)
}

// CodeActionProvider serves code-action requests.
type CodeActionProvider interface {
	CodeActions(ctx context.Context, resource string, rng SurfaceRange, markers []Marker) (*CodeActionList, error)
}

// FormattingProvider serves document-formatting requests.
type FormattingProvider interface {
	Format(ctx context.Context, resource string, opts FormattingParams) ([]SurfaceTextEdit, error)
}

// RenameProvider serves rename requests and rename-location resolution.
type RenameProvider interface {
	ResolveRenameLocation(ctx context.Context, resource string, pos SurfacePosition) (*SurfaceRenameLocation, error)
	Rename(ctx context.Context, resource string, pos SurfacePosition, newName string) (*SurfaceWorkspaceEdit, error)
}

// Surface is the editing surface the bridge registers providers against.
// The surface owns rendering, input, and the marker store; the bridge only
// feeds it. Implementations must treat ApplyMarkers as a full replacement of
// the (resource, source) bucket.
type Surface interface {
	RegisterHoverProvider(language string, p HoverProvider) Disposable
	RegisterCompletionProvider(language string, p CompletionProvider) Disposable
	RegisterDefinitionProvider(language string, p LocationProvider) Disposable
	RegisterTypeDefinitionProvider(language string, p LocationProvider) Disposable
	RegisterImplementationProvider(language string, p LocationProvider) Disposable
	RegisterReferenceProvider(language string, p ReferenceProvider) Disposable
	RegisterSymbolProvider(language string, p SymbolProvider) Disposable
	RegisterSignatureHelpProvider(language string, p SignatureHelpProvider) Disposable
	RegisterCodeActionProvider(language string, p CodeActionProvider) Disposable
	RegisterFormattingProvider(language string, p FormattingProvider) Disposable
	RegisterRenameProvider(language string, p RenameProvider) Disposable

	// ApplyMarkers replaces the marker bucket for (resource, source).
	// An empty slice clears the bucket.
	ApplyMarkers(resource, source string, markers []Marker)

	// OpenResources returns the resource identifiers of all documents the
	// surface currently has open.
	OpenResources() []string
}
