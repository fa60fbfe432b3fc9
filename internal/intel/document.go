package intel

import (
	"context"
	"log/slog"
	"sync"
)

// DocumentSync keeps the analysis server's view of document state aligned
// with live edits. It guarantees at most one open notification per path,
// deduplicates change notifications carrying identical content, and only
// closes documents it opened. All sends are best-effort: a channel failure
// is logged and swallowed because document sync must never interrupt typing.
type DocumentSync struct {
	mu      sync.Mutex
	channel Channel
	log     *slog.Logger
	records map[string]*documentRecord
	active  string
}

// documentRecord tracks one document's sync state. lastSent guards against
// redundant change traffic on cursor-only or no-op edits.
type documentRecord struct {
	path     string
	open     bool
	lastSent string
}

// NewDocumentSync creates a synchronizer bound to a channel.
func NewDocumentSync(channel Channel, log *slog.Logger) *DocumentSync {
	return &DocumentSync{
		channel: channel,
		log:     log,
		records: make(map[string]*documentRecord),
	}
}

// Open sends an open notification for a path. A nil content means the
// analysis server should read the file itself. Opening an already-open
// path is a no-op.
func (ds *DocumentSync) Open(ctx context.Context, path string, content *string) {
	key := PathToIdentifier(path)

	ds.mu.Lock()
	rec, exists := ds.records[key]
	if exists && rec.open {
		ds.mu.Unlock()
		return
	}
	rec = &documentRecord{path: path, open: true}
	if content != nil {
		rec.lastSent = *content
	}
	ds.records[key] = rec
	ds.mu.Unlock()

	params := DidOpenParams{Content: content}
	if err := ds.channel.Notify(ctx, CapDidOpen, path, params); err != nil {
		ds.log.Debug("open notification failed", "path", path, "error", err)
	}
}

// Change sends a change notification carrying the full new content. It is
// a no-op when the document is not open or when content matches the last
// sent content.
func (ds *DocumentSync) Change(ctx context.Context, path, content string) {
	key := PathToIdentifier(path)

	ds.mu.Lock()
	rec, exists := ds.records[key]
	if !exists || !rec.open || rec.lastSent == content {
		ds.mu.Unlock()
		return
	}
	rec.lastSent = content
	ds.mu.Unlock()

	if err := ds.channel.Notify(ctx, CapDidChange, path, DidChangeParams{Content: content}); err != nil {
		ds.log.Debug("change notification failed", "path", path, "error", err)
	}
}

// Close sends a close notification and clears the record. Closing a
// document that is not open is a no-op.
func (ds *DocumentSync) Close(ctx context.Context, path string) {
	key := PathToIdentifier(path)

	ds.mu.Lock()
	rec, exists := ds.records[key]
	if !exists || !rec.open {
		ds.mu.Unlock()
		return
	}
	delete(ds.records, key)
	if ds.active == key {
		ds.active = ""
	}
	ds.mu.Unlock()

	if err := ds.channel.Notify(ctx, CapDidClose, path, nil); err != nil {
		ds.log.Debug("close notification failed", "path", path, "error", err)
	}
}

// CloseAll closes every open document.
func (ds *DocumentSync) CloseAll(ctx context.Context) {
	ds.mu.Lock()
	paths := make([]string, 0, len(ds.records))
	for _, rec := range ds.records {
		paths = append(paths, rec.path)
	}
	ds.mu.Unlock()

	for _, path := range paths {
		ds.Close(ctx, path)
	}
}

// IsOpen reports whether a document has an open record.
func (ds *DocumentSync) IsOpen(path string) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	rec, exists := ds.records[PathToIdentifier(path)]
	return exists && rec.open
}

// OpenPaths returns the paths of all open documents.
func (ds *DocumentSync) OpenPaths() []string {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	paths := make([]string, 0, len(ds.records))
	for _, rec := range ds.records {
		paths = append(paths, rec.path)
	}
	return paths
}

// SetActive marks the currently focused document. Focus tracking does not
// gate sync; many documents stay open concurrently.
func (ds *DocumentSync) SetActive(path string) {
	ds.mu.Lock()
	ds.active = PathToIdentifier(path)
	ds.mu.Unlock()
}

// Active returns the path of the focused document, or empty when none.
func (ds *DocumentSync) Active() string {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if rec, exists := ds.records[ds.active]; exists {
		return rec.path
	}
	return ""
}
