package intel

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// fakeChannel is a scriptable Channel for tests.
type fakeChannel struct {
	mu sync.Mutex

	handshakeErr error
	subscribeErr error

	responses  map[Capability]json.RawMessage
	requestErr map[Capability]error
	notifyErr  error

	requests      []channelCall
	notifications []channelCall

	pushFn       func(PushEvent)
	handshakes   int
	unsubscribed int
	closed       bool
}

type channelCall struct {
	cap    Capability
	doc    string
	params any
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		responses:  make(map[Capability]json.RawMessage),
		requestErr: make(map[Capability]error),
	}
}

func (c *fakeChannel) respond(capability Capability, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	c.mu.Lock()
	c.responses[capability] = data
	c.mu.Unlock()
}

func (c *fakeChannel) Handshake(_ context.Context, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handshakes++
	return c.handshakeErr
}

func (c *fakeChannel) Request(_ context.Context, capability Capability, doc string, params any) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, channelCall{cap: capability, doc: doc, params: params})
	if err, ok := c.requestErr[capability]; ok {
		return nil, err
	}
	return c.responses[capability], nil
}

func (c *fakeChannel) Notify(_ context.Context, capability Capability, doc string, params any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, channelCall{cap: capability, doc: doc, params: params})
	return c.notifyErr
}

func (c *fakeChannel) Subscribe(fn func(PushEvent)) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subscribeErr != nil {
		return nil, c.subscribeErr
	}
	c.pushFn = fn
	return func() {
		c.mu.Lock()
		c.unsubscribed++
		c.pushFn = nil
		c.mu.Unlock()
	}, nil
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *fakeChannel) push(ev PushEvent) {
	c.mu.Lock()
	fn := c.pushFn
	c.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

func (c *fakeChannel) requestCount(capability Capability) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.requests {
		if call.cap == capability {
			n++
		}
	}
	return n
}

func (c *fakeChannel) notificationCount(capability Capability) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.notifications {
		if call.cap == capability {
			n++
		}
	}
	return n
}

// fakeSurface records provider registrations and marker applications.
type fakeSurface struct {
	mu sync.Mutex

	registrations map[string]int // capability name -> count
	disposed      int

	open    []string
	markers map[[2]string][]Marker
	applies [][2]string

	hover     HoverProvider
	typeDef   LocationProvider
	rename    RenameProvider
	signature SignatureHelpProvider
	actions   CodeActionProvider
}

func newFakeSurface(open ...string) *fakeSurface {
	return &fakeSurface{
		registrations: make(map[string]int),
		open:          open,
		markers:       make(map[[2]string][]Marker),
	}
}

type fakeDisposable struct {
	surface *fakeSurface
}

func (d *fakeDisposable) Dispose() {
	d.surface.mu.Lock()
	d.surface.disposed++
	d.surface.mu.Unlock()
}

func (s *fakeSurface) record(name string) Disposable {
	s.mu.Lock()
	s.registrations[name]++
	s.mu.Unlock()
	return &fakeDisposable{surface: s}
}

func (s *fakeSurface) RegisterHoverProvider(_ string, p HoverProvider) Disposable {
	s.hover = p
	return s.record("hover")
}

func (s *fakeSurface) RegisterCompletionProvider(_ string, _ CompletionProvider) Disposable {
	return s.record("completion")
}

func (s *fakeSurface) RegisterDefinitionProvider(_ string, _ LocationProvider) Disposable {
	return s.record("definition")
}

func (s *fakeSurface) RegisterTypeDefinitionProvider(_ string, p LocationProvider) Disposable {
	s.typeDef = p
	return s.record("typeDefinition")
}

func (s *fakeSurface) RegisterImplementationProvider(_ string, _ LocationProvider) Disposable {
	return s.record("implementation")
}

func (s *fakeSurface) RegisterReferenceProvider(_ string, _ ReferenceProvider) Disposable {
	return s.record("references")
}

func (s *fakeSurface) RegisterSymbolProvider(_ string, _ SymbolProvider) Disposable {
	return s.record("symbols")
}

func (s *fakeSurface) RegisterSignatureHelpProvider(_ string, p SignatureHelpProvider) Disposable {
	s.signature = p
	return s.record("signatureHelp")
}

func (s *fakeSurface) RegisterCodeActionProvider(_ string, p CodeActionProvider) Disposable {
	s.actions = p
	return s.record("codeActions")
}

func (s *fakeSurface) RegisterFormattingProvider(_ string, _ FormattingProvider) Disposable {
	return s.record("formatting")
}

func (s *fakeSurface) RegisterRenameProvider(_ string, p RenameProvider) Disposable {
	s.rename = p
	return s.record("rename")
}

func (s *fakeSurface) ApplyMarkers(resource, source string, markers []Marker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]string{resource, source}
	s.applies = append(s.applies, key)
	if len(markers) == 0 {
		s.markers[key] = nil
		return
	}
	s.markers[key] = markers
}

func (s *fakeSurface) OpenResources() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.open...)
}

func (s *fakeSurface) bucket(resource, source string) []Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markers[[2]string{resource, source}]
}

func (s *fakeSurface) registrationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.registrations {
		total += n
	}
	return total
}

var errBoom = errors.New("boom")
