package rpc

import (
	"encoding/json"
	"net/url"
	"path/filepath"
	"runtime"

	"github.com/dshills/lumen/internal/intel"
)

// Wire types for the analysis-server protocol. Only the fields this client
// reads or writes are declared; servers send more and json ignores it.

// DocumentURI identifies a document on the wire.
type DocumentURI string

// FilePathToURI converts a file path to a file:// URI.
func FilePathToURI(path string) DocumentURI {
	if path == "" {
		return ""
	}
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	path = filepath.ToSlash(path)
	if runtime.GOOS == "windows" && len(path) >= 2 && path[1] == ':' {
		path = "/" + path
	}
	u := &url.URL{Scheme: "file", Path: path}
	return DocumentURI(u.String())
}

// URIToFilePath converts a file:// URI back to a file path.
func URIToFilePath(uri DocumentURI) string {
	if uri == "" {
		return ""
	}
	u, err := url.Parse(string(uri))
	if err != nil || u.Scheme != "file" {
		return string(uri)
	}
	path := u.Path
	if runtime.GOOS == "windows" && len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}

type textDocumentIdentifier struct {
	URI DocumentURI `json:"uri"`
}

type versionedTextDocumentIdentifier struct {
	textDocumentIdentifier
	Version int `json:"version"`
}

type textDocumentItem struct {
	URI        DocumentURI `json:"uri"`
	LanguageID string      `json:"languageId"`
	Version    int         `json:"version"`
	Text       string      `json:"text"`
}

type textDocumentPositionParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     intel.Position         `json:"position"`
}

type initializeParams struct {
	ProcessID        int               `json:"processId"`
	RootURI          DocumentURI       `json:"rootUri"`
	Capabilities     map[string]any    `json:"capabilities"`
	WorkspaceFolders []workspaceFolder `json:"workspaceFolders,omitempty"`
}

type workspaceFolder struct {
	URI  DocumentURI `json:"uri"`
	Name string      `json:"name"`
}

type initializeResult struct {
	Capabilities json.RawMessage `json:"capabilities"`
	ServerInfo   *serverInfo     `json:"serverInfo,omitempty"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type didOpenParams struct {
	TextDocument textDocumentItem `json:"textDocument"`
}

type didChangeParams struct {
	TextDocument   versionedTextDocumentIdentifier `json:"textDocument"`
	ContentChanges []contentChange                 `json:"contentChanges"`
}

type contentChange struct {
	Text string `json:"text"`
}

type didCloseParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
}

type referenceParams struct {
	textDocumentPositionParams
	Context referenceContext `json:"context"`
}

type referenceContext struct {
	IncludeDeclaration bool `json:"includeDeclaration"`
}

type documentSymbolParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
}

type formattingParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Options      formattingOptions      `json:"options"`
}

type formattingOptions struct {
	TabSize      int  `json:"tabSize"`
	InsertSpaces bool `json:"insertSpaces"`
}

type codeActionParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Range        intel.Range            `json:"range"`
	Context      codeActionContext      `json:"context"`
}

type codeActionContext struct {
	Diagnostics []wireDiagnostic `json:"diagnostics"`
}

type renameParams struct {
	textDocumentPositionParams
	NewName string `json:"newName"`
}

// wireDiagnostic is a diagnostic as the server sends it. Code can be a
// string or a number on the wire.
type wireDiagnostic struct {
	Range    intel.Range     `json:"range"`
	Severity intel.Severity  `json:"severity,omitempty"`
	Code     json.RawMessage `json:"code,omitempty"`
	Source   string          `json:"source,omitempty"`
	Message  string          `json:"message"`
}

type publishDiagnosticsParams struct {
	URI         DocumentURI      `json:"uri"`
	Diagnostics []wireDiagnostic `json:"diagnostics"`
}

// wireHover tolerates the three shapes servers use for hover contents:
// a bare string, a markup object, or an array of either.
type wireHover struct {
	Contents json.RawMessage `json:"contents"`
	Range    *intel.Range    `json:"range,omitempty"`
}

type markupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type wireCompletionItem struct {
	Label         string               `json:"label"`
	Kind          intel.CompletionKind `json:"kind,omitempty"`
	Detail        string               `json:"detail,omitempty"`
	Documentation json.RawMessage      `json:"documentation,omitempty"`
	InsertText    string               `json:"insertText,omitempty"`
	FilterText    string               `json:"filterText,omitempty"`
	SortText      string               `json:"sortText,omitempty"`
}

type wireCompletionList struct {
	IsIncomplete bool                 `json:"isIncomplete"`
	Items        []wireCompletionItem `json:"items"`
}

type wireLocation struct {
	URI   DocumentURI `json:"uri"`
	Range intel.Range `json:"range"`
}

type wireDocumentSymbol struct {
	Name           string               `json:"name"`
	Detail         string               `json:"detail,omitempty"`
	Kind           intel.SymbolKind     `json:"kind"`
	Range          intel.Range          `json:"range"`
	SelectionRange intel.Range          `json:"selectionRange"`
	Children       []wireDocumentSymbol `json:"children,omitempty"`
}

// wireSymbolInformation is the flat legacy symbol shape.
type wireSymbolInformation struct {
	Name     string           `json:"name"`
	Kind     intel.SymbolKind `json:"kind"`
	Location wireLocation     `json:"location"`
}

type wireSignatureHelp struct {
	Signatures      []wireSignatureInfo `json:"signatures"`
	ActiveSignature int                 `json:"activeSignature"`
	ActiveParameter int                 `json:"activeParameter"`
}

type wireSignatureInfo struct {
	Label         string              `json:"label"`
	Documentation json.RawMessage     `json:"documentation,omitempty"`
	Parameters    []wireParameterInfo `json:"parameters,omitempty"`
}

type wireParameterInfo struct {
	Label         json.RawMessage `json:"label"`
	Documentation json.RawMessage `json:"documentation,omitempty"`
}

type wireTextEdit struct {
	Range   intel.Range `json:"range"`
	NewText string      `json:"newText"`
}

type wireWorkspaceEdit struct {
	Changes map[DocumentURI][]wireTextEdit `json:"changes,omitempty"`
}

type wireCodeAction struct {
	Title       string             `json:"title"`
	Kind        string             `json:"kind,omitempty"`
	IsPreferred bool               `json:"isPreferred,omitempty"`
	Edit        *wireWorkspaceEdit `json:"edit,omitempty"`
	Command     *wireCommand       `json:"command,omitempty"`
}

type wireCommand struct {
	Title   string `json:"title"`
	Command string `json:"command"`
}

// wirePrepareRename tolerates the two success shapes of a prepare-rename
// response: a bare range or a range-with-placeholder object.
type wirePrepareRename struct {
	Start       *intel.Position `json:"start,omitempty"`
	End         *intel.Position `json:"end,omitempty"`
	Range       *intel.Range    `json:"range,omitempty"`
	Placeholder string          `json:"placeholder,omitempty"`
}

type workspaceDiagnosticReport struct {
	Items []workspaceDocumentDiagnosticReport `json:"items"`
}

type workspaceDocumentDiagnosticReport struct {
	URI   DocumentURI      `json:"uri"`
	Kind  string           `json:"kind"`
	Items []wireDiagnostic `json:"items"`
}
