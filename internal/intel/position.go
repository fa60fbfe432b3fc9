package intel

import (
	"path/filepath"
	"strings"
)

// Coordinate translation between protocol-space (zero-indexed) and
// surface-space (one-indexed). Results are not clamped: an out-of-range
// value after translation points at an upstream protocol bug and should
// stay visible rather than be silently corrected.

// ToProtocolPosition converts a surface position to protocol-space.
func ToProtocolPosition(pos SurfacePosition) Position {
	return Position{Line: pos.Line - 1, Character: pos.Column - 1}
}

// ToSurfacePosition converts a protocol position to surface-space.
func ToSurfacePosition(pos Position) SurfacePosition {
	return SurfacePosition{Line: pos.Line + 1, Column: pos.Character + 1}
}

// ToProtocolRange converts a surface range to protocol-space. Both
// endpoints translate independently.
func ToProtocolRange(rng SurfaceRange) Range {
	return Range{
		Start: Position{Line: rng.StartLine - 1, Character: rng.StartColumn - 1},
		End:   Position{Line: rng.EndLine - 1, Character: rng.EndColumn - 1},
	}
}

// ToSurfaceRange converts a protocol range to surface-space.
func ToSurfaceRange(rng Range) SurfaceRange {
	return SurfaceRange{
		StartLine:   rng.Start.Line + 1,
		StartColumn: rng.Start.Character + 1,
		EndLine:     rng.End.Line + 1,
		EndColumn:   rng.End.Character + 1,
	}
}

// PathToIdentifier derives the surface's resource identifier from a plain
// path. Identifiers always use forward slashes and always start with a
// slash, so a Windows drive path like C:\src\a.go becomes /C:/src/a.go.
// The mapping is deterministic and has no failure mode; malformed input
// yields an unusable identifier rather than an error.
func PathToIdentifier(path string) string {
	id := strings.ReplaceAll(path, "\\", "/")
	if !strings.HasPrefix(id, "/") {
		id = "/" + id
	}
	return id
}

// IdentifierToPath recovers the plain path from a resource identifier,
// normalizing separators to the platform's native form. A leading
// single-letter-drive pattern (/X:/...) loses its leading slash.
func IdentifierToPath(id string) string {
	path := id
	if hasDrivePrefix(path) {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}

// hasDrivePrefix reports whether id looks like /X:/... for a single
// drive letter X.
func hasDrivePrefix(id string) bool {
	if len(id) < 3 || id[0] != '/' || id[2] != ':' {
		return false
	}
	c := id[1]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// NormalizeForLookup folds a path or identifier into a form suitable for
// tolerant comparison: forward slashes, lower case, no leading slash. The
// surface and the analysis server do not always agree on case or separator
// style for the same file, and marker application must not miss a bucket
// over that.
func NormalizeForLookup(pathOrID string) string {
	s := strings.ReplaceAll(pathOrID, "\\", "/")
	s = strings.TrimPrefix(s, "/")
	return strings.ToLower(s)
}
