package rpc

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dshills/lumen/internal/intel"
)

// Conversions from wire shapes to the bridge's protocol-space model. The
// bridge sees only intel types; everything URI-shaped is unwrapped here.

func (d wireDiagnostic) toIntel() intel.Diagnostic {
	severity := d.Severity
	if severity < intel.SeverityError || severity > intel.SeverityHint {
		severity = intel.SeverityError
	}
	return intel.Diagnostic{
		Range:    d.Range,
		Severity: severity,
		Code:     decodeCode(d.Code),
		Source:   d.Source,
		Message:  d.Message,
	}
}

// decodeCode accepts the string-or-number wire form of a diagnostic code.
func decodeCode(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.Itoa(n)
	}
	return ""
}

func toIntelDiagnostics(diags []wireDiagnostic) []intel.Diagnostic {
	if len(diags) == 0 {
		return nil
	}
	out := make([]intel.Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = d.toIntel()
	}
	return out
}

func (h wireHover) toIntel() *intel.Hover {
	contents := decodeHoverContents(h.Contents)
	if contents == "" {
		return nil
	}
	return &intel.Hover{Contents: contents, Range: h.Range}
}

// decodeHoverContents flattens the string / markup / array shapes into text.
func decodeHoverContents(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var m markupContent
	if err := json.Unmarshal(raw, &m); err == nil && m.Value != "" {
		return m.Value
	}
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err == nil {
		texts := make([]string, 0, len(parts))
		for _, part := range parts {
			if text := decodeHoverContents(part); text != "" {
				texts = append(texts, text)
			}
		}
		return strings.Join(texts, "\n\n")
	}
	return ""
}

func (i wireCompletionItem) toIntel() intel.CompletionItem {
	return intel.CompletionItem{
		Label:         i.Label,
		Kind:          i.Kind,
		Detail:        i.Detail,
		Documentation: decodeHoverContents(i.Documentation),
		InsertText:    i.InsertText,
		FilterText:    i.FilterText,
		SortText:      i.SortText,
	}
}

// decodeCompletionResult accepts both a completion list and a bare array.
func decodeCompletionResult(raw json.RawMessage) (intel.CompletionList, error) {
	var list wireCompletionList
	if err := json.Unmarshal(raw, &list); err == nil {
		return toIntelCompletionList(list), nil
	}
	var items []wireCompletionItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return intel.CompletionList{}, err
	}
	return toIntelCompletionList(wireCompletionList{Items: items}), nil
}

func toIntelCompletionList(list wireCompletionList) intel.CompletionList {
	out := intel.CompletionList{IsIncomplete: list.IsIncomplete}
	if len(list.Items) == 0 {
		return out
	}
	out.Items = make([]intel.CompletionItem, len(list.Items))
	for i, item := range list.Items {
		out.Items[i] = item.toIntel()
	}
	return out
}

// decodeLocationResult accepts a single location, an array of locations, or
// an array of location links.
func decodeLocationResult(raw json.RawMessage) ([]intel.Location, error) {
	var one wireLocation
	if err := json.Unmarshal(raw, &one); err == nil && one.URI != "" {
		return []intel.Location{toIntelLocation(one)}, nil
	}

	var many []wireLocation
	if err := json.Unmarshal(raw, &many); err == nil {
		out := make([]intel.Location, 0, len(many))
		for _, loc := range many {
			if loc.URI != "" {
				out = append(out, toIntelLocation(loc))
			}
		}
		if len(out) > 0 || len(many) == 0 {
			return out, nil
		}
	}

	var links []struct {
		TargetURI   DocumentURI `json:"targetUri"`
		TargetRange intel.Range `json:"targetSelectionRange"`
	}
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil, err
	}
	out := make([]intel.Location, 0, len(links))
	for _, link := range links {
		out = append(out, intel.Location{
			Path:  URIToFilePath(link.TargetURI),
			Range: link.TargetRange,
		})
	}
	return out, nil
}

func toIntelLocation(loc wireLocation) intel.Location {
	return intel.Location{Path: URIToFilePath(loc.URI), Range: loc.Range}
}

// decodeSymbolResult accepts hierarchical document symbols or the flat
// legacy symbol information shape.
func decodeSymbolResult(raw json.RawMessage) ([]intel.DocumentSymbol, error) {
	var nested []wireDocumentSymbol
	if err := json.Unmarshal(raw, &nested); err == nil && symbolsLookNested(nested, raw) {
		return toIntelSymbols(nested), nil
	}

	var flat []wireSymbolInformation
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	out := make([]intel.DocumentSymbol, len(flat))
	for i, sym := range flat {
		out[i] = intel.DocumentSymbol{
			Name:           sym.Name,
			Kind:           sym.Kind,
			Range:          sym.Location.Range,
			SelectionRange: sym.Location.Range,
		}
	}
	return out, nil
}

// symbolsLookNested distinguishes the two symbol shapes: the flat form
// carries a location object instead of a range.
func symbolsLookNested(nested []wireDocumentSymbol, raw json.RawMessage) bool {
	if len(nested) == 0 {
		return true
	}
	var probe []struct {
		Location *wireLocation `json:"location"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return true
	}
	return len(probe) == 0 || probe[0].Location == nil
}

func toIntelSymbols(symbols []wireDocumentSymbol) []intel.DocumentSymbol {
	if len(symbols) == 0 {
		return nil
	}
	out := make([]intel.DocumentSymbol, len(symbols))
	for i, sym := range symbols {
		out[i] = intel.DocumentSymbol{
			Name:           sym.Name,
			Detail:         sym.Detail,
			Kind:           sym.Kind,
			Range:          sym.Range,
			SelectionRange: sym.SelectionRange,
			Children:       toIntelSymbols(sym.Children),
		}
	}
	return out
}

func (h wireSignatureHelp) toIntel() intel.SignatureHelp {
	out := intel.SignatureHelp{
		ActiveSignature: h.ActiveSignature,
		ActiveParameter: h.ActiveParameter,
	}
	for _, sig := range h.Signatures {
		info := intel.SignatureInfo{
			Label:         sig.Label,
			Documentation: decodeHoverContents(sig.Documentation),
		}
		for _, param := range sig.Parameters {
			info.Parameters = append(info.Parameters, intel.ParameterInfo{
				Label:         decodeParameterLabel(param.Label),
				Documentation: decodeHoverContents(param.Documentation),
			})
		}
		out.Signatures = append(out.Signatures, info)
	}
	return out
}

// decodeParameterLabel accepts a string label or a [start, end] offset pair.
func decodeParameterLabel(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var offsets [2]int
	if err := json.Unmarshal(raw, &offsets); err == nil {
		return strconv.Itoa(offsets[0]) + ":" + strconv.Itoa(offsets[1])
	}
	return ""
}

func toIntelTextEdits(edits []wireTextEdit) []intel.TextEdit {
	if len(edits) == 0 {
		return nil
	}
	out := make([]intel.TextEdit, len(edits))
	for i, edit := range edits {
		out[i] = intel.TextEdit{Range: edit.Range, NewText: edit.NewText}
	}
	return out
}

func (e wireWorkspaceEdit) toIntel() intel.WorkspaceEdit {
	out := intel.WorkspaceEdit{}
	if len(e.Changes) == 0 {
		return out
	}
	out.Changes = make(map[string][]intel.TextEdit, len(e.Changes))
	for uri, edits := range e.Changes {
		out.Changes[URIToFilePath(uri)] = toIntelTextEdits(edits)
	}
	return out
}

// decodeCodeActionResult drops bare commands; only actions with a title
// survive, and command-only actions keep the command name for display.
func decodeCodeActionResult(raw json.RawMessage) ([]intel.CodeAction, error) {
	var actions []wireCodeAction
	if err := json.Unmarshal(raw, &actions); err != nil {
		return nil, err
	}
	out := make([]intel.CodeAction, 0, len(actions))
	for _, action := range actions {
		if action.Title == "" {
			continue
		}
		converted := intel.CodeAction{
			Title:       action.Title,
			Kind:        action.Kind,
			IsPreferred: action.IsPreferred,
		}
		if action.Edit != nil {
			edit := action.Edit.toIntel()
			converted.Edit = &edit
		}
		if action.Command != nil {
			converted.Command = action.Command.Command
		}
		out = append(out, converted)
	}
	return out, nil
}

// decodePrepareRenameResult maps the bare-range and placeholder shapes to a
// rename location; a JSON null never reaches this function.
func decodePrepareRenameResult(raw json.RawMessage) (intel.RenameLocation, error) {
	var wire wirePrepareRename
	if err := json.Unmarshal(raw, &wire); err != nil {
		return intel.RenameLocation{}, err
	}
	switch {
	case wire.Range != nil:
		return intel.RenameLocation{Range: *wire.Range, Placeholder: wire.Placeholder}, nil
	case wire.Start != nil && wire.End != nil:
		return intel.RenameLocation{Range: intel.Range{Start: *wire.Start, End: *wire.End}}, nil
	default:
		return intel.RenameLocation{Rejected: true}, nil
	}
}

func (r workspaceDiagnosticReport) toIntel() intel.BatchDiagnostics {
	batch := make(intel.BatchDiagnostics, len(r.Items))
	for _, item := range r.Items {
		if item.Kind == "unchanged" {
			continue
		}
		batch[URIToFilePath(item.URI)] = toIntelDiagnostics(item.Items)
	}
	return batch
}
