package intel

import (
	"context"
	"encoding/json"
)

// Capability names a single kind of language-aware operation routed through
// the request channel. The channel maps these to whatever the analysis
// server's wire protocol calls them; the bridge never sees the wire format.
type Capability string

// Request capabilities.
const (
	CapHover          Capability = "hover"
	CapCompletion     Capability = "completion"
	CapDefinition     Capability = "definition"
	CapReferences     Capability = "references"
	CapSymbols        Capability = "documentSymbols"
	CapSignatureHelp  Capability = "signatureHelp"
	CapCodeActions    Capability = "codeActions"
	CapFormatting     Capability = "formatting"
	CapRename         Capability = "rename"
	CapRenameLocation Capability = "renameLocation"

	// CapBatchDiagnostics pulls a bulk diagnostic set covering the
	// workspace. Result decodes into BatchDiagnostics.
	CapBatchDiagnostics Capability = "batchDiagnostics"
)

// Notification capabilities (no response expected).
const (
	CapDidOpen   Capability = "didOpen"
	CapDidChange Capability = "didChange"
	CapDidClose  Capability = "didClose"
)

// PushEvent is a single-file diagnostics push from an analysis source.
// Path is protocol-space; Source names the producing analysis source.
type PushEvent struct {
	Path        string
	Source      string
	Diagnostics []Diagnostic
}

// Channel is the asynchronous boundary to an analysis server. The bridge
// cannot be constructed without one; every suspension point in the bridge is
// a call into this interface. Timeouts are the channel's responsibility.
type Channel interface {
	// Handshake establishes the session for a workspace root. It must be
	// called before any request and may be retried after a failure.
	Handshake(ctx context.Context, workspaceRoot string) error

	// Request sends a capability request for a document and returns the raw
	// result. A nil or JSON-null result means "no result", not an error.
	Request(ctx context.Context, capability Capability, doc string, params any) (json.RawMessage, error)

	// Notify sends a one-way capability notification for a document.
	Notify(ctx context.Context, capability Capability, doc string, params any) error

	// Subscribe registers a callback for diagnostic push events and returns
	// a function that cancels the subscription.
	Subscribe(fn func(PushEvent)) (func(), error)

	// Close tears the channel down.
	Close() error
}
