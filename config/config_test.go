package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goarxml/goarxml"
	"github.com/goarxml/goarxml/parser"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "4.0", cfg.SchemaVersion)
	assert.Equal(t, []string{".arxml"}, cfg.Extensions)
	assert.Equal(t, "error", cfg.Diagnostics.FailAt)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default config", func(c *Config) {}, false},
		{"v3 schema", func(c *Config) { c.SchemaVersion = "3.2.3" }, false},
		{"bad schema", func(c *Config) { c.SchemaVersion = "latest" }, true},
		{"negative concurrency", func(c *Config) { c.Concurrency = -1 }, true},
		{"bad fail_at", func(c *Config) { c.Diagnostics.FailAt = "panic" }, true},
		{"trace log level", func(c *Config) { c.LogLevel = "trace" }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"extension without dot", func(c *Config) { c.Extensions = []string{"arxml"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, `
schema_version: "3.2.3"
paths:
  - ./arxml
  - "vendor/**/*.arxml"
concurrency: 4
diagnostics:
  fail_at: warning
  ignore:
    - "element-*"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "3.2.3", cfg.SchemaVersion)
	assert.Equal(t, []string{"./arxml", "vendor/**/*.arxml"}, cfg.Paths)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "warning", cfg.Diagnostics.FailAt)
	assert.Equal(t, []string{"element-*"}, cfg.Diagnostics.Ignore)
	// Unset keys keep their defaults.
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{".arxml"}, cfg.Extensions)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeConfig(t, path, "paths: [unterminated")
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Paths = []string{"a", "b"}
	cfg.Diagnostics.Ignore = []string{"duplicate-constant"}

	require.NoError(t, cfg.SaveToFile(path))
	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestMerge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(&Config{
		SchemaVersion: "3.0",
		Concurrency:   2,
		Diagnostics:   DiagnosticsConfig{Ignore: []string{"x"}},
	})

	assert.Equal(t, "3.0", cfg.SchemaVersion)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "error", cfg.Diagnostics.FailAt)
	assert.Equal(t, []string{"x"}, cfg.Diagnostics.Ignore)
	assert.Equal(t, "info", cfg.LogLevel)

	cfg.Merge(nil)
	assert.Equal(t, "3.0", cfg.SchemaVersion)
}

func TestConversions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SchemaVersion = "3"
	cfg.Diagnostics = DiagnosticsConfig{FailAt: "fatal", Ignore: []string{"element-*"}}

	v, err := cfg.Version()
	require.NoError(t, err)
	assert.Equal(t, parser.Version3, v)

	diag, err := cfg.DiagnosticConfig()
	require.NoError(t, err)
	assert.Equal(t, goarxml.DiagnosticConfig{FailAt: goarxml.SeverityFatal, Ignore: []string{"element-*"}}, diag)

	opts, err := cfg.LoadOptions(nil)
	require.NoError(t, err)
	assert.Len(t, opts, 4)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", goarxml.LevelTrace},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLoaderLayering(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	work := filepath.Join(project, "sub", "dir")
	require.NoError(t, os.MkdirAll(work, 0o755))

	writeConfig(t, filepath.Join(home, UserConfigDir, UserConfigFile), `
schema_version: "3.0"
log_level: debug
`)
	writeConfig(t, filepath.Join(project, ProjectConfigFile), `
paths: ["src"]
`)

	l := NewLoader(nil)
	l.homeDir = home
	l.workDir = work

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "3.0", cfg.SchemaVersion, "user layer survives project layer")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"src"}, cfg.Paths)
}

func TestLoaderDefaultsWithoutFiles(t *testing.T) {
	l := NewLoader(nil)
	l.homeDir = t.TempDir()
	l.workDir = t.TempDir()

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoaderRejectsInvalidProjectConfig(t *testing.T) {
	work := t.TempDir()
	writeConfig(t, filepath.Join(work, ProjectConfigFile), "diagnostics:\n  fail_at: sometimes\n")

	l := NewLoader(nil)
	l.homeDir = t.TempDir()
	l.workDir = work

	_, err := l.Load()
	assert.Error(t, err)
}

func TestLoaderLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, path, "concurrency: 8\n")

	cfg, err := NewLoader(nil).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, "4.0", cfg.SchemaVersion)
}
