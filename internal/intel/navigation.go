package intel

import "context"

// locationAdapter serves definition-style navigation. The same adapter
// backs definition, type definition, and implementation; the latter two are
// constructed with the definition capability because the protocol exposes
// no dedicated channel for them.
type locationAdapter struct {
	adapter
	cap Capability
}

// Locations requests navigation targets at a position.
func (a *locationAdapter) Locations(ctx context.Context, resource string, pos SurfacePosition) ([]SurfaceLocation, error) {
	var locations []Location
	if !a.request(ctx, a.cap, resource, PositionParams{Position: ToProtocolPosition(pos)}, &locations) {
		return nil, nil
	}
	return toSurfaceLocations(locations), nil
}

// referenceAdapter serves find-references requests.
type referenceAdapter struct {
	adapter
}

// References requests all references to the symbol at a position.
func (a *referenceAdapter) References(ctx context.Context, resource string, pos SurfacePosition, includeDeclaration bool) ([]SurfaceLocation, error) {
	params := ReferenceParams{
		Position:           ToProtocolPosition(pos),
		IncludeDeclaration: includeDeclaration,
	}

	var locations []Location
	if !a.request(ctx, CapReferences, resource, params, &locations) {
		return nil, nil
	}
	return toSurfaceLocations(locations), nil
}

// toSurfaceLocations converts protocol locations to surface-space.
func toSurfaceLocations(locations []Location) []SurfaceLocation {
	if len(locations) == 0 {
		return nil
	}
	result := make([]SurfaceLocation, len(locations))
	for i, loc := range locations {
		result[i] = SurfaceLocation{
			Resource: PathToIdentifier(loc.Path),
			Range:    ToSurfaceRange(loc.Range),
		}
	}
	return result
}

// symbolAdapter serves document-symbol requests.
type symbolAdapter struct {
	adapter
}

// Symbols requests the document's symbol tree, mapping every node's kind
// through the surface enumeration.
func (a *symbolAdapter) Symbols(ctx context.Context, resource string) ([]SurfaceSymbol, error) {
	var symbols []DocumentSymbol
	if !a.request(ctx, CapSymbols, resource, nil, &symbols) {
		return nil, nil
	}
	return toSurfaceSymbols(symbols), nil
}

// toSurfaceSymbols converts a symbol tree to surface-space recursively.
func toSurfaceSymbols(symbols []DocumentSymbol) []SurfaceSymbol {
	if len(symbols) == 0 {
		return nil
	}
	result := make([]SurfaceSymbol, len(symbols))
	for i, sym := range symbols {
		result[i] = SurfaceSymbol{
			Name:           sym.Name,
			Detail:         sym.Detail,
			Kind:           SurfaceKindForSymbol(sym.Kind),
			Range:          ToSurfaceRange(sym.Range),
			SelectionRange: ToSurfaceRange(sym.SelectionRange),
			Children:       toSurfaceSymbols(sym.Children),
		}
	}
	return result
}
