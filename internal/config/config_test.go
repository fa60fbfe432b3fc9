package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lumen.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100*time.Millisecond, cfg.DebounceWindow())
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())

	name, srv, ok := cfg.ServerForLanguage("go")
	require.True(t, ok)
	assert.Equal(t, "gopls", name)
	assert.Equal(t, "gopls", srv.Command)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Servers, cfg.Servers)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
log_file = "/tmp/lumen.log"

[diagnostics]
debounce_ms = 250

[rpc]
timeout_seconds = 5

[servers.gopls]
command = "gopls"
args = ["serve", "-remote=auto"]
languages = ["go"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/lumen.log", cfg.LogFile)
	assert.Equal(t, 250*time.Millisecond, cfg.DebounceWindow())
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())

	// The user server table replaces the defaults wholesale.
	require.Len(t, cfg.Servers, 1)
	assert.Equal(t, []string{"serve", "-remote=auto"}, cfg.Servers["gopls"].Args)

	_, _, ok := cfg.ServerForLanguage("rust")
	assert.False(t, ok, "default servers must not leak through a user table")
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `log_level = "warn"`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, Default().Servers, cfg.Servers)
	assert.Equal(t, 100*time.Millisecond, cfg.DebounceWindow())
}

func TestLoadRejectsServerWithoutCommand(t *testing.T) {
	path := writeConfig(t, `
[servers.broken]
languages = ["go"]
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command")
}

func TestLoadRejectsServerWithoutLanguages(t *testing.T) {
	path := writeConfig(t, `
[servers.broken]
command = "broken-ls"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "covers no languages")
}

func TestLoadRejectsBadLevel(t *testing.T) {
	path := writeConfig(t, `log_level = "loud"`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := writeConfig(t, `log_level = `)

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateEmptyServers(t *testing.T) {
	cfg := Default()
	cfg.Servers = nil
	assert.ErrorIs(t, cfg.Validate(), ErrNoServers)
}

func TestServerForLanguageSharedServer(t *testing.T) {
	cfg := Default()

	nameTS, _, okTS := cfg.ServerForLanguage("typescript")
	nameJS, _, okJS := cfg.ServerForLanguage("javascript")
	require.True(t, okTS)
	require.True(t, okJS)
	assert.Equal(t, nameTS, nameJS, "typescript and javascript share a server")
}
