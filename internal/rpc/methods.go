package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dshills/lumen/internal/intel"
)

// Request maps a capability to its protocol method, wraps the bridge's
// params into the wire shape for the document, and converts the wire result
// back into the bridge's protocol-space model.
func (c *Client) Request(ctx context.Context, capability intel.Capability, doc string, params any) (json.RawMessage, error) {
	uri := FilePathToURI(doc)

	switch capability {
	case intel.CapHover:
		p, err := positionOf(params)
		if err != nil {
			return nil, err
		}
		var result *wireHover
		if err := c.call(ctx, "textDocument/hover", posParams(uri, p), &result); err != nil {
			return nil, err
		}
		if result == nil {
			return nil, nil
		}
		return marshalOrNil(result.toIntel())

	case intel.CapCompletion:
		p, err := positionOf(params)
		if err != nil {
			return nil, err
		}
		var raw json.RawMessage
		if err := c.call(ctx, "textDocument/completion", posParams(uri, p), &raw); err != nil {
			return nil, err
		}
		if isNull(raw) {
			return nil, nil
		}
		list, err := decodeCompletionResult(raw)
		if err != nil {
			return nil, fmt.Errorf("decode completion result: %w", err)
		}
		return json.Marshal(list)

	case intel.CapDefinition:
		p, err := positionOf(params)
		if err != nil {
			return nil, err
		}
		return c.locationRequest(ctx, "textDocument/definition", posParams(uri, p))

	case intel.CapReferences:
		var rp intel.ReferenceParams
		if err := reencode(params, &rp); err != nil {
			return nil, err
		}
		wireParams := referenceParams{
			textDocumentPositionParams: posParams(uri, rp.Position),
			Context:                    referenceContext{IncludeDeclaration: rp.IncludeDeclaration},
		}
		return c.locationRequest(ctx, "textDocument/references", wireParams)

	case intel.CapSymbols:
		var raw json.RawMessage
		if err := c.call(ctx, "textDocument/documentSymbol", documentSymbolParams{TextDocument: textDocumentIdentifier{URI: uri}}, &raw); err != nil {
			return nil, err
		}
		if isNull(raw) {
			return nil, nil
		}
		symbols, err := decodeSymbolResult(raw)
		if err != nil {
			return nil, fmt.Errorf("decode symbol result: %w", err)
		}
		return json.Marshal(symbols)

	case intel.CapSignatureHelp:
		p, err := positionOf(params)
		if err != nil {
			return nil, err
		}
		var result *wireSignatureHelp
		if err := c.call(ctx, "textDocument/signatureHelp", posParams(uri, p), &result); err != nil {
			return nil, err
		}
		if result == nil {
			return nil, nil
		}
		return json.Marshal(result.toIntel())

	case intel.CapCodeActions:
		var ap intel.CodeActionParams
		if err := reencode(params, &ap); err != nil {
			return nil, err
		}
		wireParams := codeActionParams{
			TextDocument: textDocumentIdentifier{URI: uri},
			Range:        ap.Range,
			Context:      codeActionContext{Diagnostics: toWireDiagnostics(ap.Diagnostics)},
		}
		var raw json.RawMessage
		if err := c.call(ctx, "textDocument/codeAction", wireParams, &raw); err != nil {
			return nil, err
		}
		if isNull(raw) {
			return nil, nil
		}
		actions, err := decodeCodeActionResult(raw)
		if err != nil {
			return nil, fmt.Errorf("decode code action result: %w", err)
		}
		return json.Marshal(actions)

	case intel.CapFormatting:
		var fp intel.FormattingParams
		if err := reencode(params, &fp); err != nil {
			return nil, err
		}
		wireParams := formattingParams{
			TextDocument: textDocumentIdentifier{URI: uri},
			Options:      formattingOptions{TabSize: fp.TabSize, InsertSpaces: fp.InsertSpaces},
		}
		var edits []wireTextEdit
		if err := c.call(ctx, "textDocument/formatting", wireParams, &edits); err != nil {
			return nil, err
		}
		return marshalOrNil(toIntelTextEdits(edits))

	case intel.CapRename:
		var rp intel.RenameParams
		if err := reencode(params, &rp); err != nil {
			return nil, err
		}
		wireParams := renameParams{
			textDocumentPositionParams: posParams(uri, rp.Position),
			NewName:                    rp.NewName,
		}
		var edit *wireWorkspaceEdit
		if err := c.call(ctx, "textDocument/rename", wireParams, &edit); err != nil {
			return nil, err
		}
		if edit == nil {
			return nil, nil
		}
		return json.Marshal(edit.toIntel())

	case intel.CapRenameLocation:
		p, err := positionOf(params)
		if err != nil {
			return nil, err
		}
		var raw json.RawMessage
		if err := c.call(ctx, "textDocument/prepareRename", posParams(uri, p), &raw); err != nil {
			return nil, err
		}
		if isNull(raw) {
			return json.Marshal(intel.RenameLocation{Rejected: true})
		}
		loc, err := decodePrepareRenameResult(raw)
		if err != nil {
			return nil, fmt.Errorf("decode prepare rename result: %w", err)
		}
		return json.Marshal(loc)

	case intel.CapBatchDiagnostics:
		var report workspaceDiagnosticReport
		if err := c.call(ctx, "workspace/diagnostic", struct {
			PreviousResultIDs []string `json:"previousResultIds"`
		}{PreviousResultIDs: []string{}}, &report); err != nil {
			return nil, err
		}
		return json.Marshal(report.toIntel())

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCapability, capability)
	}
}

// Notify maps a notification capability to its protocol method. Open
// notifications without content read the file so the server always gets
// the full text; change notifications bump the version counter.
func (c *Client) Notify(ctx context.Context, capability intel.Capability, doc string, params any) error {
	conn, err := c.connection()
	if err != nil {
		return err
	}
	uri := FilePathToURI(doc)

	switch capability {
	case intel.CapDidOpen:
		var op intel.DidOpenParams
		if err := reencode(params, &op); err != nil {
			return err
		}
		text := ""
		if op.Content != nil {
			text = *op.Content
		} else if data, err := os.ReadFile(doc); err == nil {
			text = string(data)
		}
		language := op.Language
		if language == "" {
			language = intel.DetectLanguage(doc)
		}

		c.mu.Lock()
		c.versions[uri] = 1
		c.mu.Unlock()

		return conn.Notify(ctx, "textDocument/didOpen", didOpenParams{
			TextDocument: textDocumentItem{
				URI:        uri,
				LanguageID: language,
				Version:    1,
				Text:       text,
			},
		})

	case intel.CapDidChange:
		var cp intel.DidChangeParams
		if err := reencode(params, &cp); err != nil {
			return err
		}

		c.mu.Lock()
		c.versions[uri]++
		version := c.versions[uri]
		c.mu.Unlock()

		return conn.Notify(ctx, "textDocument/didChange", didChangeParams{
			TextDocument: versionedTextDocumentIdentifier{
				textDocumentIdentifier: textDocumentIdentifier{URI: uri},
				Version:                version,
			},
			ContentChanges: []contentChange{{Text: cp.Content}},
		})

	case intel.CapDidClose:
		c.mu.Lock()
		delete(c.versions, uri)
		c.mu.Unlock()

		return conn.Notify(ctx, "textDocument/didClose", didCloseParams{
			TextDocument: textDocumentIdentifier{URI: uri},
		})

	default:
		return fmt.Errorf("%w: %s", ErrUnknownCapability, capability)
	}
}

// locationRequest runs a position request whose result is location-shaped.
func (c *Client) locationRequest(ctx context.Context, method string, params any) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.call(ctx, method, params, &raw); err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, nil
	}
	locations, err := decodeLocationResult(raw)
	if err != nil {
		return nil, fmt.Errorf("decode location result: %w", err)
	}
	return marshalOrNil(locations)
}

func posParams(uri DocumentURI, pos intel.Position) textDocumentPositionParams {
	return textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Position:     pos,
	}
}

// positionOf extracts the cursor position from any position-bearing param
// struct.
func positionOf(params any) (intel.Position, error) {
	var probe struct {
		Position intel.Position `json:"position"`
	}
	if err := reencode(params, &probe); err != nil {
		return intel.Position{}, err
	}
	return probe.Position, nil
}

// reencode converts between param shapes through JSON.
func reencode(from, to any) error {
	data, err := json.Marshal(from)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	if err := json.Unmarshal(data, to); err != nil {
		return fmt.Errorf("decode params: %w", err)
	}
	return nil
}

func toWireDiagnostics(diags []intel.Diagnostic) []wireDiagnostic {
	out := make([]wireDiagnostic, len(diags))
	for i, d := range diags {
		var code json.RawMessage
		if d.Code != "" {
			code, _ = json.Marshal(d.Code)
		}
		out[i] = wireDiagnostic{
			Range:    d.Range,
			Severity: d.Severity,
			Code:     code,
			Source:   d.Source,
			Message:  d.Message,
		}
	}
	return out
}

// marshalOrNil returns nil for empty slices so the bridge sees "no result"
// instead of an empty JSON array.
func marshalOrNil(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" || string(data) == "[]" {
		return nil, nil
	}
	return data, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
