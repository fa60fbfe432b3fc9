package intel

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// batchSource is the synthetic source name for bulk reconciliation. Push
// sources are named by the analysis server, so the two paths write disjoint
// buckets and cannot corrupt each other's markers.
const batchSource = "workspace"

// pushSourceFallback names push events whose source is empty.
const pushSourceFallback = "analysis"

// DiagnosticsStream reconciles diagnostics from multiple sources into the
// surface's marker store. Two paths converge on the same bucket-replace
// primitive: single-file push events apply immediately, and bulk sets go
// through a debounced batch pass that also clears buckets for files whose
// findings disappeared. The stream retains no markers itself, only the
// bookkeeping needed for stale clearing and severity counts.
type DiagnosticsStream struct {
	mu       sync.Mutex
	channel  Channel
	surface  Surface
	log      *slog.Logger
	debounce time.Duration

	// Single-slot pending batch timer: rescheduling cancels the previous
	// slot, so the last request inside the window wins.
	pending *time.Timer

	// Resources that received batch markers in the previous pass.
	prevBatch map[string]bool

	// Severity tallies per (resource, source) bucket.
	counts map[bucketKey]severityCounts

	unsubscribe func()
	stopped     bool
}

// bucketKey identifies one marker bucket.
type bucketKey struct {
	resource string
	source   string
}

type severityCounts struct {
	errors   int
	warnings int
	infos    int
	hints    int
}

// DiagnosticsOption configures the stream.
type DiagnosticsOption func(*DiagnosticsStream)

// WithBatchDebounce sets the debounce window for batch reconciliation.
func WithBatchDebounce(d time.Duration) DiagnosticsOption {
	return func(s *DiagnosticsStream) {
		s.debounce = d
	}
}

// NewDiagnosticsStream creates a stream bound to a channel and a surface.
func NewDiagnosticsStream(channel Channel, surface Surface, log *slog.Logger, opts ...DiagnosticsOption) *DiagnosticsStream {
	s := &DiagnosticsStream{
		channel:   channel,
		surface:   surface,
		log:       log,
		debounce:  100 * time.Millisecond,
		prevBatch: make(map[string]bool),
		counts:    make(map[bucketKey]severityCounts),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start subscribes to push events. It returns the subscription error
// unchanged so the bridge can fail initialization visibly.
func (s *DiagnosticsStream) Start() error {
	unsubscribe, err := s.channel.Subscribe(s.HandlePush)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.stopped = false
	s.mu.Unlock()
	return nil
}

// HandlePush applies a single-file push event immediately. Push events are
// already fine-grained, so there is nothing to batch.
func (s *DiagnosticsStream) HandlePush(ev PushEvent) {
	source := ev.Source
	if source == "" {
		source = pushSourceFallback
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	resource, ok := s.resolveResource(ev.Path)
	if !ok {
		s.mu.Unlock()
		s.log.Debug("push diagnostics for unresolved file skipped", "path", ev.Path, "source", source)
		return
	}
	s.applyBucket(resource, source, ev.Diagnostics)
	s.mu.Unlock()
}

// RequestRefresh schedules a debounced batch reconciliation. Repeated calls
// within the window coalesce into a single pass.
func (s *DiagnosticsStream) RequestRefresh(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if s.pending != nil {
		s.pending.Stop()
	}
	s.pending = time.AfterFunc(s.debounce, func() {
		s.runBatch(ctx)
	})
}

// runBatch pulls the bulk diagnostic set and reconciles it.
func (s *DiagnosticsStream) runBatch(ctx context.Context) {
	s.mu.Lock()
	s.pending = nil
	stopped := s.stopped
	s.mu.Unlock()
	if stopped {
		return
	}

	raw, err := s.channel.Request(ctx, CapBatchDiagnostics, "", nil)
	if err != nil {
		// Keep the previous markers; a failed poll is not an empty result.
		s.log.Debug("batch diagnostics request failed", "error", err)
		return
	}

	var batch BatchDiagnostics
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &batch); err != nil {
			s.log.Debug("batch diagnostics undecodable", "error", err)
			return
		}
	}

	s.Reconcile(batch)
}

// Reconcile applies a bulk diagnostic set under the batch source. Any file
// that had batch markers in the previous pass but is absent from this one
// gets its bucket cleared: a file that stops having problems must visibly
// lose its markers.
func (s *DiagnosticsStream) Reconcile(batch BatchDiagnostics) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	current := make(map[string]bool, len(batch))
	for path, diags := range batch {
		resource, ok := s.resolveResource(path)
		if !ok {
			s.log.Debug("batch diagnostics for unresolved file skipped", "path", path)
			continue
		}
		current[resource] = true
		s.applyBucket(resource, batchSource, diags)
	}

	for resource := range s.prevBatch {
		if !current[resource] {
			s.applyBucket(resource, batchSource, nil)
		}
	}
	s.prevBatch = current
}

// applyBucket translates diagnostics to surface-space and replaces the
// (resource, source) bucket wholesale. Callers hold s.mu.
func (s *DiagnosticsStream) applyBucket(resource, source string, diags []Diagnostic) {
	key := bucketKey{resource: resource, source: source}
	if len(diags) == 0 {
		delete(s.counts, key)
		s.surface.ApplyMarkers(resource, source, nil)
		return
	}

	markers := make([]Marker, len(diags))
	var counts severityCounts
	for i, d := range diags {
		rng := ToSurfaceRange(d.Range)
		markers[i] = Marker{
			StartLine:   rng.StartLine,
			StartColumn: rng.StartColumn,
			EndLine:     rng.EndLine,
			EndColumn:   rng.EndColumn,
			Message:     d.Message,
			Severity:    d.Severity,
			Source:      source,
			Code:        d.Code,
		}
		switch d.Severity {
		case SeverityError:
			counts.errors++
		case SeverityWarning:
			counts.warnings++
		case SeverityInfo:
			counts.infos++
		case SeverityHint:
			counts.hints++
		}
	}
	s.counts[key] = counts
	s.surface.ApplyMarkers(resource, source, markers)
}

// resolveResource matches a protocol path against the surface's open
// resources, tolerating case and separator differences. Callers hold s.mu.
func (s *DiagnosticsStream) resolveResource(path string) (string, bool) {
	want := NormalizeForLookup(path)
	for _, resource := range s.surface.OpenResources() {
		if NormalizeForLookup(resource) == want {
			return resource, true
		}
	}
	return "", false
}

// Summary reports severity totals across all buckets.
type Summary struct {
	Errors   int
	Warnings int
	Infos    int
	Hints    int
	Files    int
}

// Summary returns the current severity totals.
func (s *DiagnosticsStream) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum Summary
	files := make(map[string]bool)
	for key, counts := range s.counts {
		sum.Errors += counts.errors
		sum.Warnings += counts.warnings
		sum.Infos += counts.infos
		sum.Hints += counts.hints
		files[key.resource] = true
	}
	sum.Files = len(files)
	return sum
}

// Stop cancels any pending batch pass and tears down the push
// subscription. Stopping twice is safe.
func (s *DiagnosticsStream) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
