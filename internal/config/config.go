// Package config loads the TOML configuration for the intelligence bridge:
// which analysis servers to run, which languages they cover, and the tuning
// knobs for diagnostics and rpc traffic.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrNoServers indicates a config with an empty server table after merging
// defaults, which would leave the bridge with nothing to talk to.
var ErrNoServers = errors.New("config: no analysis servers configured")

// Config is the root configuration.
type Config struct {
	// LogLevel is "debug", "info", "warn" or "error".
	LogLevel string `toml:"log_level"`

	// LogFile, when set, receives JSON log records.
	LogFile string `toml:"log_file"`

	Diagnostics Diagnostics       `toml:"diagnostics"`
	RPC         RPC               `toml:"rpc"`
	Servers     map[string]Server `toml:"servers"`
}

// Diagnostics tunes the diagnostics stream.
type Diagnostics struct {
	// DebounceMS is the batch reconciliation debounce window.
	DebounceMS int `toml:"debounce_ms"`
}

// RPC tunes the analysis-server channel.
type RPC struct {
	// TimeoutSeconds bounds each capability request.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Server describes one analysis server process.
type Server struct {
	// Command is the executable to spawn.
	Command string `toml:"command"`

	// Args are passed to the command.
	Args []string `toml:"args"`

	// Env are extra KEY=VALUE pairs for the process.
	Env []string `toml:"env"`

	// Languages this server covers. Documents route to the first server
	// whose language set matches.
	Languages []string `toml:"languages"`
}

// Default returns the built-in configuration: the common open-source
// servers for the languages the shell ships with.
func Default() Config {
	return Config{
		LogLevel:    "info",
		Diagnostics: Diagnostics{DebounceMS: 100},
		RPC:         RPC{TimeoutSeconds: 30},
		Servers: map[string]Server{
			"gopls": {
				Command:   "gopls",
				Args:      []string{"serve"},
				Languages: []string{"go"},
			},
			"rust-analyzer": {
				Command:   "rust-analyzer",
				Languages: []string{"rust"},
			},
			"typescript-language-server": {
				Command:   "typescript-language-server",
				Args:      []string{"--stdio"},
				Languages: []string{"typescript", "javascript"},
			},
			"pylsp": {
				Command:   "pylsp",
				Languages: []string{"python"},
			},
			"clangd": {
				Command:   "clangd",
				Languages: []string{"c", "cpp"},
			},
		},
	}
}

// Load reads a config file and merges it over the defaults. A missing file
// is not an error; the defaults stand alone.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	// A user config replaces the server table wholesale rather than
	// merging per-server, so removing a default server is possible.
	var user Config
	if err := toml.Unmarshal(data, &user); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if user.LogLevel != "" {
		cfg.LogLevel = user.LogLevel
	}
	if user.LogFile != "" {
		cfg.LogFile = user.LogFile
	}
	if user.Diagnostics.DebounceMS > 0 {
		cfg.Diagnostics.DebounceMS = user.Diagnostics.DebounceMS
	}
	if user.RPC.TimeoutSeconds > 0 {
		cfg.RPC.TimeoutSeconds = user.RPC.TimeoutSeconds
	}
	if len(user.Servers) > 0 {
		cfg.Servers = user.Servers
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the merged configuration.
func (c Config) Validate() error {
	if len(c.Servers) == 0 {
		return ErrNoServers
	}
	for name, srv := range c.Servers {
		if srv.Command == "" {
			return fmt.Errorf("config: server %q has no command", name)
		}
		if len(srv.Languages) == 0 {
			return fmt.Errorf("config: server %q covers no languages", name)
		}
	}
	if _, err := parseLevelName(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// DebounceWindow returns the diagnostics debounce as a duration.
func (c Config) DebounceWindow() time.Duration {
	return time.Duration(c.Diagnostics.DebounceMS) * time.Millisecond
}

// RequestTimeout returns the rpc request timeout as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RPC.TimeoutSeconds) * time.Second
}

// ServerForLanguage finds the server covering a language.
func (c Config) ServerForLanguage(language string) (string, Server, bool) {
	for name, srv := range c.Servers {
		for _, l := range srv.Languages {
			if l == language {
				return name, srv, true
			}
		}
	}
	return "", Server{}, false
}

func parseLevelName(s string) (string, error) {
	switch s {
	case "", "debug", "info", "warn", "warning", "error":
		return s, nil
	default:
		return "", fmt.Errorf("config: unknown log level %q", s)
	}
}
