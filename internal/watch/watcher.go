// Package watch observes a workspace tree and coalesces bursts of file
// events into single callbacks. The app layer uses it to trigger batch
// diagnostics reconciliation after saves, branch switches, and code
// generation runs without hammering the analysis server per file.
package watch

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// skipDirs are directory names never worth watching.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"target":       true,
	"dist":         true,
	"__pycache__":  true,
}

// Watcher observes a directory tree recursively. Events within the
// debounce window collapse into one callback carrying the distinct paths.
type Watcher struct {
	mu       sync.Mutex
	fs       *fsnotify.Watcher
	log      *slog.Logger
	debounce time.Duration
	onBurst  func(paths []string)

	// Single-slot timer; a new event inside the window resets it.
	pending *time.Timer
	paths   map[string]bool

	stopOnce sync.Once
	done     chan struct{}
}

// Option configures a watcher.
type Option func(*Watcher)

// WithDebounce sets the coalescing window. Default 200ms.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a watcher over root. onBurst runs after each quiet period
// with the distinct paths touched during the burst.
func New(root string, log *slog.Logger, onBurst func(paths []string), opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:       fsw,
		log:      log,
		debounce: 200 * time.Millisecond,
		onBurst:  onBurst,
		paths:    make(map[string]bool),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.loop()
	return w, nil
}

// addTree registers root and every non-skipped subdirectory.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			w.log.Debug("watch add failed", "path", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Debug("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	// New directories join the watch so nested creation keeps working.
	if ev.Op.Has(fsnotify.Create) {
		name := filepath.Base(ev.Name)
		if !skipDirs[name] && !strings.HasPrefix(name, ".") {
			if err := w.fs.Add(ev.Name); err == nil {
				w.log.Debug("watching new path", "path", ev.Name)
			}
		}
	}
	if ev.Op.Has(fsnotify.Chmod) {
		return
	}

	w.mu.Lock()
	w.paths[ev.Name] = true
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.fire)
	w.mu.Unlock()
}

// fire delivers the accumulated burst.
func (w *Watcher) fire() {
	w.mu.Lock()
	w.pending = nil
	if len(w.paths) == 0 {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.paths))
	for path := range w.paths {
		paths = append(paths, path)
	}
	w.paths = make(map[string]bool)
	w.mu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}
	w.onBurst(paths)
}

// Stop tears the watcher down. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.pending != nil {
			w.pending.Stop()
			w.pending = nil
		}
		w.mu.Unlock()
		w.fs.Close()
	})
}
