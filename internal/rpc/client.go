// Package rpc implements the analysis-server channel over JSON-RPC 2.0.
//
// A Client spawns the configured server process, frames messages the way
// the protocol requires, performs the initialize handshake, and fans
// published diagnostics out to subscribers. It is the production
// implementation of intel.Channel; the bridge never sees URIs, versions,
// or method names.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/dshills/lumen/internal/intel"
)

// ErrNotConnected indicates a request before a successful handshake.
var ErrNotConnected = errors.New("rpc: not connected")

// ErrUnknownCapability indicates a capability this channel cannot map to a
// protocol method.
var ErrUnknownCapability = errors.New("rpc: unknown capability")

// Config describes the server process and request limits.
type Config struct {
	// Command is the server executable.
	Command string

	// Args are passed to the command.
	Args []string

	// Env are extra KEY=VALUE pairs appended to the environment.
	Env []string

	// Timeout bounds every capability request. Zero means 30 seconds.
	Timeout time.Duration
}

// Client is a connection to one analysis server. The zero value is not
// usable; construct with New. Safe for concurrent use.
type Client struct {
	mu     sync.Mutex
	config Config
	log    *slog.Logger

	conn *jsonrpc2.Conn
	cmd  *exec.Cmd

	// versions tracks the document version counter per URI for change
	// notifications.
	versions map[DocumentURI]int

	subscribers map[int]func(intel.PushEvent)
	nextSub     int

	// dial produces the wire to the server. Overridable in tests to swap
	// the spawned process for an in-memory pipe.
	dial func(ctx context.Context) (io.ReadWriteCloser, error)
}

// New creates a client for one configured server.
func New(cfg Config, log *slog.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	c := &Client{
		config:      cfg,
		log:         log,
		versions:    make(map[DocumentURI]int),
		subscribers: make(map[int]func(intel.PushEvent)),
	}
	c.dial = c.spawn
	return c
}

// stdio joins a process's stdout and stdin into one wire.
type stdio struct {
	io.ReadCloser
	io.WriteCloser
}

func (s stdio) Close() error {
	rerr := s.ReadCloser.Close()
	werr := s.WriteCloser.Close()
	if rerr != nil {
		return rerr
	}
	return werr
}

// spawn starts the server process and returns its stdio wire.
func (c *Client) spawn(ctx context.Context) (io.ReadWriteCloser, error) {
	cmd := exec.Command(c.config.Command, c.config.Args...)
	cmd.Env = append(os.Environ(), c.config.Env...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		return nil, fmt.Errorf("start %s: %w", c.config.Command, err)
	}

	c.mu.Lock()
	c.cmd = cmd
	c.mu.Unlock()
	go func() {
		if err := cmd.Wait(); err != nil {
			c.log.Warn("analysis server exited", "command", c.config.Command, "error", err)
		}
	}()

	return stdio{ReadCloser: stdout, WriteCloser: stdin}, nil
}

// Handshake connects to the server and performs the initialize exchange.
// On failure the connection is torn down so a later retry starts clean.
func (c *Client) Handshake(ctx context.Context, workspaceRoot string) error {
	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	wire, err := c.dial(ctx)
	if err != nil {
		return fmt.Errorf("dial analysis server: %w", err)
	}

	stream := jsonrpc2.NewBufferedStream(wire, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.AsyncHandler(handlerFunc(c.handle)))

	rootURI := FilePathToURI(workspaceRoot)
	params := initializeParams{
		ProcessID:    os.Getpid(),
		RootURI:      rootURI,
		Capabilities: clientCapabilities(),
		WorkspaceFolders: []workspaceFolder{
			{URI: rootURI, Name: "workspace"},
		},
	}

	callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var result initializeResult
	if err := conn.Call(callCtx, "initialize", params, &result); err != nil {
		conn.Close()
		c.killProcess()
		return fmt.Errorf("initialize: %w", err)
	}
	if err := conn.Notify(callCtx, "initialized", struct{}{}); err != nil {
		conn.Close()
		c.killProcess()
		return fmt.Errorf("initialized: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	if result.ServerInfo != nil {
		c.log.Info("analysis server connected",
			"server", result.ServerInfo.Name, "version", result.ServerInfo.Version)
	}
	return nil
}

// clientCapabilities advertises what this client understands. Hierarchical
// symbols and full-document sync keep the translation layer simple.
func clientCapabilities() map[string]any {
	return map[string]any{
		"textDocument": map[string]any{
			"synchronization": map[string]any{
				"didSave": false,
			},
			"documentSymbol": map[string]any{
				"hierarchicalDocumentSymbolSupport": true,
			},
			"rename": map[string]any{
				"prepareSupport": true,
			},
			"publishDiagnostics": map[string]any{
				"relatedInformation": false,
			},
		},
		"workspace": map[string]any{
			"diagnostics": map[string]any{},
		},
	}
}

// handlerFunc adapts a function to the jsonrpc2 handler interface.
type handlerFunc func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request)

func (f handlerFunc) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	f(ctx, conn, req)
}

// handle processes server-to-client traffic. Diagnostics fan out to
// subscribers; the few server requests that expect an answer get an empty
// success so the server never stalls waiting on us.
func (c *Client) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	switch req.Method {
	case "textDocument/publishDiagnostics":
		if req.Params == nil {
			return
		}
		var params publishDiagnosticsParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			c.log.Debug("undecodable diagnostics notification", "error", err)
			return
		}
		c.publish(params)
	case "window/logMessage", "window/showMessage", "$/progress":
		// Consumed; the shell has its own status channels.
	case "workspace/configuration", "client/registerCapability", "client/unregisterCapability", "window/workDoneProgress/create":
		if !req.Notif {
			_ = conn.Reply(ctx, req.ID, nil)
		}
	default:
		if !req.Notif {
			_ = conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeMethodNotFound,
				Message: "unsupported method " + req.Method,
			})
		}
	}
}

// publish converts a diagnostics notification into push events, one per
// reporting source so each (file, source) bucket replaces independently.
func (c *Client) publish(params publishDiagnosticsParams) {
	path := URIToFilePath(params.URI)

	bySource := make(map[string][]intel.Diagnostic)
	for _, d := range params.Diagnostics {
		diag := d.toIntel()
		bySource[diag.Source] = append(bySource[diag.Source], diag)
	}
	if len(bySource) == 0 {
		// An empty publish clears the file; emit one empty event.
		bySource[""] = nil
	}

	c.mu.Lock()
	subscribers := make([]func(intel.PushEvent), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subscribers = append(subscribers, fn)
	}
	c.mu.Unlock()

	for source, diags := range bySource {
		ev := intel.PushEvent{Path: path, Source: source, Diagnostics: diags}
		for _, fn := range subscribers {
			fn(ev)
		}
	}
}

// Subscribe registers a push-event callback.
func (c *Client) Subscribe(fn func(intel.PushEvent)) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}, nil
}

// connection returns the live conn or ErrNotConnected.
func (c *Client) connection() (*jsonrpc2.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil, ErrNotConnected
	}
	return c.conn, nil
}

// call issues a request under the configured timeout.
func (c *Client) call(ctx context.Context, method string, params, result any) error {
	conn, err := c.connection()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()
	return conn.Call(ctx, method, params, result)
}

// Close shuts the session down and stops the server process.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = conn.Call(ctx, "shutdown", nil, nil)
		_ = conn.Notify(ctx, "exit", nil)
		cancel()
		conn.Close()
	}
	c.killProcess()
	return nil
}

func (c *Client) killProcess() {
	c.mu.Lock()
	cmd := c.cmd
	c.cmd = nil
	c.mu.Unlock()
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}

var _ intel.Channel = (*Client)(nil)
