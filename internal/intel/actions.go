package intel

import "context"

// codeActionAdapter serves code-action requests.
type codeActionAdapter struct {
	adapter
}

// CodeActions requests quick fixes and refactorings for a range. The
// markers the surface passes in convert back to protocol-space diagnostics
// so the server can match findings to fixes. The result is wrapped in the
// disposable list shape the surface API requires.
func (a *codeActionAdapter) CodeActions(ctx context.Context, resource string, rng SurfaceRange, markers []Marker) (*CodeActionList, error) {
	params := CodeActionParams{Range: ToProtocolRange(rng)}
	for _, m := range markers {
		params.Diagnostics = append(params.Diagnostics, Diagnostic{
			Range: ToProtocolRange(SurfaceRange{
				StartLine:   m.StartLine,
				StartColumn: m.StartColumn,
				EndLine:     m.EndLine,
				EndColumn:   m.EndColumn,
			}),
			Severity: m.Severity,
			Code:     m.Code,
			Source:   m.Source,
			Message:  m.Message,
		})
	}

	var actions []CodeAction
	if !a.request(ctx, CapCodeActions, resource, params, &actions) {
		return nil, nil
	}
	if len(actions) == 0 {
		return nil, nil
	}

	result := make([]SurfaceCodeAction, len(actions))
	for i, action := range actions {
		result[i] = SurfaceCodeAction{
			Title:       action.Title,
			Kind:        action.Kind,
			IsPreferred: action.IsPreferred,
			Edit:        toSurfaceWorkspaceEdit(action.Edit),
			Command:     action.Command,
		}
	}
	return &CodeActionList{Actions: result}, nil
}

// formattingAdapter serves document-formatting requests.
type formattingAdapter struct {
	adapter
}

// Format requests whole-document formatting edits.
func (a *formattingAdapter) Format(ctx context.Context, resource string, opts FormattingParams) ([]SurfaceTextEdit, error) {
	var edits []TextEdit
	if !a.request(ctx, CapFormatting, resource, opts, &edits) {
		return nil, nil
	}
	return toSurfaceTextEdits(edits), nil
}

// renameAdapter serves rename requests and rename-location resolution.
type renameAdapter struct {
	adapter
}

// ResolveRenameLocation resolves the identifier under the cursor. When no
// identifier exists there the result carries a human-readable rejection
// reason; the surface shows the reason instead of opening a rename box.
func (a *renameAdapter) ResolveRenameLocation(ctx context.Context, resource string, pos SurfacePosition) (*SurfaceRenameLocation, error) {
	var loc RenameLocation
	if !a.request(ctx, CapRenameLocation, resource, PositionParams{Position: ToProtocolPosition(pos)}, &loc) {
		return &SurfaceRenameLocation{
			Rejected:     true,
			RejectReason: "the element can't be renamed",
		}, nil
	}
	if loc.Rejected {
		reason := loc.RejectReason
		if reason == "" {
			reason = "the element can't be renamed"
		}
		return &SurfaceRenameLocation{Rejected: true, RejectReason: reason}, nil
	}
	return &SurfaceRenameLocation{
		Range:       ToSurfaceRange(loc.Range),
		Placeholder: loc.Placeholder,
	}, nil
}

// Rename requests a workspace-wide rename of the symbol at a position.
func (a *renameAdapter) Rename(ctx context.Context, resource string, pos SurfacePosition, newName string) (*SurfaceWorkspaceEdit, error) {
	params := RenameParams{Position: ToProtocolPosition(pos), NewName: newName}

	var edit WorkspaceEdit
	if !a.request(ctx, CapRename, resource, params, &edit) {
		return nil, nil
	}
	return toSurfaceWorkspaceEdit(&edit), nil
}

// toSurfaceWorkspaceEdit converts a workspace edit to surface-space,
// re-keying each document's edits by resource identifier.
func toSurfaceWorkspaceEdit(edit *WorkspaceEdit) *SurfaceWorkspaceEdit {
	if edit == nil || len(edit.Changes) == 0 {
		return nil
	}
	result := &SurfaceWorkspaceEdit{Edits: make(map[string][]SurfaceTextEdit, len(edit.Changes))}
	for path, edits := range edit.Changes {
		result.Edits[PathToIdentifier(path)] = toSurfaceTextEdits(edits)
	}
	return result
}

// toSurfaceTextEdits converts protocol text edits to surface-space.
func toSurfaceTextEdits(edits []TextEdit) []SurfaceTextEdit {
	if len(edits) == 0 {
		return nil
	}
	result := make([]SurfaceTextEdit, len(edits))
	for i, edit := range edits {
		result[i] = SurfaceTextEdit{
			Range:   ToSurfaceRange(edit.Range),
			NewText: edit.NewText,
		}
	}
	return result
}
