package intel

import "testing"

func TestPositionRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		pos  SurfacePosition
	}{
		{"origin", SurfacePosition{Line: 1, Column: 1}},
		{"mid file", SurfacePosition{Line: 5, Column: 10}},
		{"large", SurfacePosition{Line: 100000, Column: 4096}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToSurfacePosition(ToProtocolPosition(tt.pos))
			if got != tt.pos {
				t.Errorf("round trip = %+v, want %+v", got, tt.pos)
			}
		})
	}
}

func TestToProtocolPosition(t *testing.T) {
	got := ToProtocolPosition(SurfacePosition{Line: 5, Column: 10})
	want := Position{Line: 4, Character: 9}
	if got != want {
		t.Errorf("ToProtocolPosition = %+v, want %+v", got, want)
	}
}

func TestToProtocolPositionNoClamping(t *testing.T) {
	// Out-of-range results stay visible; they indicate an upstream bug.
	got := ToProtocolPosition(SurfacePosition{Line: 0, Column: 0})
	want := Position{Line: -1, Character: -1}
	if got != want {
		t.Errorf("ToProtocolPosition = %+v, want %+v (unclamped)", got, want)
	}
}

func TestRangeRoundTrip(t *testing.T) {
	rng := SurfaceRange{StartLine: 5, StartColumn: 10, EndLine: 7, EndColumn: 1}
	got := ToSurfaceRange(ToProtocolRange(rng))
	if got != rng {
		t.Errorf("round trip = %+v, want %+v", got, rng)
	}
}

func TestToSurfaceRangeEndpointsIndependent(t *testing.T) {
	got := ToSurfaceRange(Range{
		Start: Position{Line: 4, Character: 9},
		End:   Position{Line: 4, Character: 12},
	})
	want := SurfaceRange{StartLine: 5, StartColumn: 10, EndLine: 5, EndColumn: 13}
	if got != want {
		t.Errorf("ToSurfaceRange = %+v, want %+v", got, want)
	}
}

func TestPathToIdentifier(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"unix path", "/src/main.go", "/src/main.go"},
		{"windows path", `C:\src\main.go`, "/C:/src/main.go"},
		{"windows forward slashes", "C:/src/main.go", "/C:/src/main.go"},
		{"mixed separators", `/src\pkg/a.go`, "/src/pkg/a.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathToIdentifier(tt.path); got != tt.want {
				t.Errorf("PathToIdentifier(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestIdentifierToPathDrivePrefix(t *testing.T) {
	got := IdentifierToPath("/C:/src/main.go")
	// Separator style is platform-native; compare on the normalized form.
	if NormalizeForLookup(got) != NormalizeForLookup("C:/src/main.go") {
		t.Errorf("IdentifierToPath(/C:/src/main.go) = %q", got)
	}
}

func TestPathIdentifierRoundTrip(t *testing.T) {
	paths := []string{
		"/src/main.go",
		"/a/b/c.ts",
		"C:/Users/dev/project/main.rs",
		`C:\Users\dev\project\main.rs`,
	}

	for _, path := range paths {
		back := IdentifierToPath(PathToIdentifier(path))
		if NormalizeForLookup(back) != NormalizeForLookup(path) {
			t.Errorf("round trip of %q = %q", path, back)
		}
	}
}

func TestNormalizeForLookup(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"/src/Main.go", "/src/main.go"},
		{`C:\src\a.go`, "/C:/src/a.go"},
		{"/x/y.ts", `\x\y.ts`},
	}

	for _, tt := range tests {
		if NormalizeForLookup(tt.a) != NormalizeForLookup(tt.b) {
			t.Errorf("NormalizeForLookup(%q) != NormalizeForLookup(%q)", tt.a, tt.b)
		}
	}
}

func TestHasDrivePrefix(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"/C:/src", true},
		{"/z:/src", true},
		{"/src/main.go", false},
		{"C:/src", false},
		{"/:", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := hasDrivePrefix(tt.id); got != tt.want {
			t.Errorf("hasDrivePrefix(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
