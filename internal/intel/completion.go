package intel

import "context"

// completionAdapter serves completion requests.
type completionAdapter struct {
	adapter
}

// Completions requests completion items at a position and maps each item's
// kind through the surface enumeration.
func (a *completionAdapter) Completions(ctx context.Context, resource string, pos SurfacePosition) (*SurfaceCompletionList, error) {
	var list CompletionList
	if !a.request(ctx, CapCompletion, resource, CompletionParams{Position: ToProtocolPosition(pos)}, &list) {
		return nil, nil
	}
	if len(list.Items) == 0 {
		return nil, nil
	}

	items := make([]SurfaceCompletionItem, len(list.Items))
	for i, item := range list.Items {
		items[i] = SurfaceCompletionItem{
			Label:         item.Label,
			Kind:          SurfaceKindForCompletion(item.Kind),
			Detail:        item.Detail,
			Documentation: item.Documentation,
			InsertText:    insertTextFor(item),
			SortText:      item.SortText,
		}
	}
	return &SurfaceCompletionList{IsIncomplete: list.IsIncomplete, Items: items}, nil
}

// insertTextFor returns the text to insert for an item, falling back to the
// label when the server supplies none.
func insertTextFor(item CompletionItem) string {
	if item.InsertText != "" {
		return item.InsertText
	}
	return item.Label
}

// signatureHelpAdapter serves signature-help requests.
type signatureHelpAdapter struct {
	adapter
}

// SignatureHelp requests signature help at a position. The result is wrapped
// in the disposable shape the surface API requires even though signature
// help has nothing to release.
func (a *signatureHelpAdapter) SignatureHelp(ctx context.Context, resource string, pos SurfacePosition) (*SignatureHelpResult, error) {
	var help SignatureHelp
	if !a.request(ctx, CapSignatureHelp, resource, PositionParams{Position: ToProtocolPosition(pos)}, &help) {
		return nil, nil
	}
	if len(help.Signatures) == 0 {
		return nil, nil
	}
	return &SignatureHelpResult{Value: &help}, nil
}
