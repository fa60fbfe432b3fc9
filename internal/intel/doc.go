// Package intel is Lumen's editor intelligence bridge.
//
// The bridge connects the editing surface to out-of-process analysis
// servers that provide hover, completion, navigation, diagnostics,
// formatting and refactoring for open documents. It owns four concerns:
//
//   - Capability adapters: one provider per capability per language,
//     registered against the surface and delegating to the server's
//     request channel (Registry).
//   - Document synchronization: open/change/close lifecycle with
//     redundant-notification dedup (DocumentSync).
//   - Diagnostics streaming: push and batch reconciliation of markers
//     with stale-bucket clearing (DiagnosticsStream).
//   - Lifecycle: one handshake, one teardown, idempotent both ways
//     (Bridge).
//
// # Coordinate spaces
//
// The analysis protocol is zero-indexed and path-addressed; the surface is
// one-indexed and resource-addressed. Translation happens only at the
// bridge boundary (position.go); everything inside the bridge stays in
// protocol-space.
//
// # Quick start
//
//	bridge, err := intel.New(channel, surface)
//	if err != nil {
//	    return err
//	}
//	if !bridge.Initialize(ctx, workspaceRoot) {
//	    // feature unavailable; editing continues without intelligence
//	}
//	defer bridge.Dispose()
//
//	bridge.OpenDocument(ctx, "/src/main.go", &content)
//	bridge.UpdateDocument(ctx, "/src/main.go", newContent)
//
// # Failure policy
//
// Nothing in this package reaches the user as a blocking error. Capability
// failures degrade to empty results, document-sync failures are logged and
// swallowed, and the only caller-visible failure signal is Initialize's
// boolean.
//
// # Thread safety
//
// Bridge, Registry, DocumentSync and DiagnosticsStream are safe for
// concurrent use. All mutable state is instance-private.
package intel
