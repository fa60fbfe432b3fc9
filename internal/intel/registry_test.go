package intel

import (
	"context"
	"log/slog"
	"testing"
)

// capabilityCount is the number of adapters installed per language.
const capabilityCount = 11

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRegisterCapabilitiesIdempotent(t *testing.T) {
	ch := newFakeChannel()
	surface := newFakeSurface()
	reg := NewRegistry(ch, surface, testLogger())

	for i := 0; i < 5; i++ {
		reg.RegisterCapabilities("go")
	}

	if got := reg.DisposableCount(); got != capabilityCount {
		t.Errorf("DisposableCount = %d, want %d", got, capabilityCount)
	}
	if got := surface.registrationCount(); got != capabilityCount {
		t.Errorf("surface registrations = %d, want %d", got, capabilityCount)
	}
	if !reg.IsRegistered("go") {
		t.Error("IsRegistered(go) = false")
	}
}

func TestRegisterCapabilitiesMultipleLanguages(t *testing.T) {
	ch := newFakeChannel()
	surface := newFakeSurface()
	reg := NewRegistry(ch, surface, testLogger())

	reg.RegisterCapabilities("go")
	reg.RegisterCapabilities("rust")

	if got := reg.DisposableCount(); got != 2*capabilityCount {
		t.Errorf("DisposableCount = %d, want %d", got, 2*capabilityCount)
	}
	if got := len(reg.RegisteredLanguages()); got != 2 {
		t.Errorf("RegisteredLanguages = %d entries, want 2", got)
	}
}

func TestDisposeAll(t *testing.T) {
	ch := newFakeChannel()
	surface := newFakeSurface()
	reg := NewRegistry(ch, surface, testLogger())

	reg.RegisterCapabilities("go")
	reg.DisposeAll()

	if surface.disposed != capabilityCount {
		t.Errorf("disposed = %d, want %d", surface.disposed, capabilityCount)
	}
	if reg.DisposableCount() != 0 {
		t.Error("disposables not cleared")
	}
	if reg.IsRegistered("go") {
		t.Error("language set not cleared")
	}

	// Registry must be re-initializable after disposal.
	reg.RegisterCapabilities("go")
	if got := reg.DisposableCount(); got != capabilityCount {
		t.Errorf("DisposableCount after re-register = %d, want %d", got, capabilityCount)
	}
}

func TestHoverAdapterTranslatesCoordinates(t *testing.T) {
	ch := newFakeChannel()
	ch.respond(CapHover, Hover{
		Contents: "text",
		Range: &Range{
			Start: Position{Line: 4, Character: 9},
			End:   Position{Line: 4, Character: 12},
		},
	})
	surface := newFakeSurface()
	reg := NewRegistry(ch, surface, testLogger())
	reg.RegisterCapabilities("typescript")

	hover, err := surface.hover.Hover(context.Background(), "/x/y.ts", SurfacePosition{Line: 5, Column: 10})
	if err != nil {
		t.Fatalf("Hover error: %v", err)
	}
	if hover == nil {
		t.Fatal("Hover returned nil")
	}
	if hover.Contents != "text" {
		t.Errorf("Contents = %q", hover.Contents)
	}

	want := SurfaceRange{StartLine: 5, StartColumn: 10, EndLine: 5, EndColumn: 13}
	if hover.Range == nil || *hover.Range != want {
		t.Errorf("Range = %+v, want %+v", hover.Range, want)
	}

	// The outbound request must carry the protocol-space cursor.
	ch.mu.Lock()
	call := ch.requests[0]
	ch.mu.Unlock()
	if call.doc != "/x/y.ts" {
		t.Errorf("request doc = %q", call.doc)
	}
	params, ok := call.params.(PositionParams)
	if !ok {
		t.Fatalf("params type %T", call.params)
	}
	if params.Position != (Position{Line: 4, Character: 9}) {
		t.Errorf("request position = %+v", params.Position)
	}
}

func TestHoverAdapterFailureReturnsNil(t *testing.T) {
	ch := newFakeChannel()
	ch.requestErr[CapHover] = errBoom
	surface := newFakeSurface()
	reg := NewRegistry(ch, surface, testLogger())
	reg.RegisterCapabilities("go")

	hover, err := surface.hover.Hover(context.Background(), "/a.go", SurfacePosition{Line: 1, Column: 1})
	if err != nil {
		t.Fatalf("capability failure must not propagate, got %v", err)
	}
	if hover != nil {
		t.Errorf("hover = %+v, want nil", hover)
	}
}

func TestHoverAdapterNullResult(t *testing.T) {
	ch := newFakeChannel()
	ch.responses[CapHover] = []byte("null")
	surface := newFakeSurface()
	reg := NewRegistry(ch, surface, testLogger())
	reg.RegisterCapabilities("go")

	hover, err := surface.hover.Hover(context.Background(), "/a.go", SurfacePosition{Line: 1, Column: 1})
	if err != nil || hover != nil {
		t.Errorf("null result: hover=%v err=%v, want nil/nil", hover, err)
	}
}

func TestTypeDefinitionFallsBackToDefinition(t *testing.T) {
	ch := newFakeChannel()
	ch.respond(CapDefinition, []Location{
		{Path: "/src/def.go", Range: Range{Start: Position{Line: 0, Character: 0}, End: Position{Line: 0, Character: 4}}},
	})
	surface := newFakeSurface()
	reg := NewRegistry(ch, surface, testLogger())
	reg.RegisterCapabilities("go")

	locs, err := surface.typeDef.Locations(context.Background(), "/a.go", SurfacePosition{Line: 1, Column: 1})
	if err != nil {
		t.Fatalf("Locations error: %v", err)
	}
	if len(locs) != 1 {
		t.Fatalf("locations = %d, want 1", len(locs))
	}
	if got := ch.requestCount(CapDefinition); got != 1 {
		t.Errorf("definition channel requests = %d, want 1", got)
	}
}
