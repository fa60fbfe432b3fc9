package app

import (
	"testing"

	"github.com/dshills/lumen/internal/intel"
)

func marker(line int, msg string) intel.Marker {
	return intel.Marker{StartLine: line, StartColumn: 1, EndLine: line, EndColumn: 5, Message: msg}
}

func TestApplyMarkersReplacesBucket(t *testing.T) {
	s := NewHeadlessSurface()
	s.OpenResource("/a.go")

	s.ApplyMarkers("/a.go", "compiler", []intel.Marker{marker(3, "first")})
	s.ApplyMarkers("/a.go", "compiler", []intel.Marker{marker(7, "second")})

	markers := s.Markers("/a.go")
	if len(markers) != 1 {
		t.Fatalf("markers = %d, want 1 after replace", len(markers))
	}
	if markers[0].Message != "second" {
		t.Errorf("message = %q", markers[0].Message)
	}
}

func TestApplyMarkersSourcesIndependent(t *testing.T) {
	s := NewHeadlessSurface()

	s.ApplyMarkers("/a.go", "compiler", []intel.Marker{marker(9, "from compiler")})
	s.ApplyMarkers("/a.go", "workspace", []intel.Marker{marker(2, "from batch")})

	markers := s.Markers("/a.go")
	if len(markers) != 2 {
		t.Fatalf("markers = %d, want 2", len(markers))
	}
	// Sorted by position, not insertion order.
	if markers[0].Message != "from batch" {
		t.Errorf("first marker = %q", markers[0].Message)
	}

	// Clearing one source leaves the other.
	s.ApplyMarkers("/a.go", "compiler", nil)
	markers = s.Markers("/a.go")
	if len(markers) != 1 || markers[0].Message != "from batch" {
		t.Errorf("markers after clear = %+v", markers)
	}
}

func TestCloseResourceDropsMarkers(t *testing.T) {
	s := NewHeadlessSurface()
	s.OpenResource("/a.go")
	s.ApplyMarkers("/a.go", "compiler", []intel.Marker{marker(1, "x")})

	s.CloseResource("/a.go")

	if got := s.Markers("/a.go"); got != nil {
		t.Errorf("markers = %+v, want nil", got)
	}
	if got := s.OpenResources(); len(got) != 0 {
		t.Errorf("open resources = %v, want empty", got)
	}
}

func TestOpenResourcesSorted(t *testing.T) {
	s := NewHeadlessSurface()
	s.OpenResource("/b.go")
	s.OpenResource("/a.go")

	got := s.OpenResources()
	if len(got) != 2 || got[0] != "/a.go" || got[1] != "/b.go" {
		t.Errorf("OpenResources = %v", got)
	}
}

func TestRegistrationDispose(t *testing.T) {
	s := NewHeadlessSurface()

	d := s.RegisterSymbolProvider("go", nil)
	if _, ok := s.Symbols("go"); !ok {
		t.Fatal("provider not registered")
	}

	d.Dispose()
	if _, ok := s.Symbols("go"); ok {
		t.Error("provider still registered after dispose")
	}
}
