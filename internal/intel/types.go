package intel

// Protocol-space types. Lines and characters are zero-indexed, matching what
// the analysis server speaks. Surface-space equivalents live in surface.go.

// Position is a zero-indexed line/character position.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a pair of positions. End is exclusive.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location is a range inside a document, addressed by plain path.
type Location struct {
	Path  string `json:"path"`
	Range Range  `json:"range"`
}

// Severity classifies a diagnostic.
type Severity int

// Severity levels, ordered from most to least severe.
const (
	SeverityError   Severity = 1
	SeverityWarning Severity = 2
	SeverityInfo    Severity = 3
	SeverityHint    Severity = 4
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic is a single finding reported by an analysis source.
type Diagnostic struct {
	Range    Range    `json:"range"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code,omitempty"`
	Source   string   `json:"source,omitempty"`
	Message  string   `json:"message"`
}

// Hover is the result of a hover request.
type Hover struct {
	Contents string `json:"contents"`
	Range    *Range `json:"range,omitempty"`
}

// CompletionItem is a single completion suggestion in protocol-space.
type CompletionItem struct {
	Label         string         `json:"label"`
	Kind          CompletionKind `json:"kind,omitempty"`
	Detail        string         `json:"detail,omitempty"`
	Documentation string         `json:"documentation,omitempty"`
	InsertText    string         `json:"insertText,omitempty"`
	FilterText    string         `json:"filterText,omitempty"`
	SortText      string         `json:"sortText,omitempty"`
}

// CompletionList holds completion results.
type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

// DocumentSymbol is a named region of a document, possibly nested.
type DocumentSymbol struct {
	Name           string           `json:"name"`
	Detail         string           `json:"detail,omitempty"`
	Kind           SymbolKind       `json:"kind"`
	Range          Range            `json:"range"`
	SelectionRange Range            `json:"selectionRange"`
	Children       []DocumentSymbol `json:"children,omitempty"`
}

// ParameterInfo describes one parameter of a signature.
type ParameterInfo struct {
	Label         string `json:"label"`
	Documentation string `json:"documentation,omitempty"`
}

// SignatureInfo describes one callable signature.
type SignatureInfo struct {
	Label         string          `json:"label"`
	Documentation string          `json:"documentation,omitempty"`
	Parameters    []ParameterInfo `json:"parameters,omitempty"`
}

// SignatureHelp is the result of a signature-help request.
type SignatureHelp struct {
	Signatures      []SignatureInfo `json:"signatures"`
	ActiveSignature int             `json:"activeSignature"`
	ActiveParameter int             `json:"activeParameter"`
}

// TextEdit replaces a range with new text.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// WorkspaceEdit is a set of text edits grouped by document path.
type WorkspaceEdit struct {
	Changes map[string][]TextEdit `json:"changes,omitempty"`
}

// CodeAction is a quick fix or refactoring offered for a range.
type CodeAction struct {
	Title       string         `json:"title"`
	Kind        string         `json:"kind,omitempty"`
	IsPreferred bool           `json:"isPreferred,omitempty"`
	Edit        *WorkspaceEdit `json:"edit,omitempty"`
	Command     string         `json:"command,omitempty"`
}

// RenameLocation is the resolved identifier range for a rename, or a
// rejection when no renameable identifier exists at the position.
type RenameLocation struct {
	Range        Range  `json:"range"`
	Placeholder  string `json:"placeholder,omitempty"`
	Rejected     bool   `json:"rejected,omitempty"`
	RejectReason string `json:"rejectReason,omitempty"`
}

// --- Request parameter shapes ---

// PositionParams carries a single cursor position.
type PositionParams struct {
	Position Position `json:"position"`
}

// CompletionParams carries the completion cursor position.
type CompletionParams struct {
	Position Position `json:"position"`
}

// ReferenceParams carries the reference-lookup position and declaration flag.
type ReferenceParams struct {
	Position           Position `json:"position"`
	IncludeDeclaration bool     `json:"includeDeclaration"`
}

// FormattingParams carries formatting preferences.
type FormattingParams struct {
	TabSize      int  `json:"tabSize"`
	InsertSpaces bool `json:"insertSpaces"`
}

// CodeActionParams carries the range and the diagnostics overlapping it.
type CodeActionParams struct {
	Range       Range        `json:"range"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// RenameParams carries the rename position and the new identifier.
type RenameParams struct {
	Position Position `json:"position"`
	NewName  string   `json:"newName"`
}

// DidOpenParams announces a newly opened document.
type DidOpenParams struct {
	Language string  `json:"language,omitempty"`
	Content  *string `json:"content,omitempty"`
}

// DidChangeParams carries the full replacement content of a document.
type DidChangeParams struct {
	Content string `json:"content"`
}

// BatchDiagnostics is a bulk diagnostic set covering many files, keyed by
// plain path in protocol-space.
type BatchDiagnostics map[string][]Diagnostic
