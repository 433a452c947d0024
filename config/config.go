// Package config provides configuration loading and management for goarxml.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goarxml/goarxml"
	"github.com/goarxml/goarxml/parser"
)

// Config represents the complete goarxml configuration
type Config struct {
	// SchemaVersion selects the value dialect ("3.x" or "4.x")
	SchemaVersion string `yaml:"schema_version"`
	// Extensions are the file extensions treated as ARXML documents
	Extensions []string `yaml:"extensions"`
	// Paths are the files, directories or glob patterns to load
	Paths []string `yaml:"paths"`
	// Concurrency bounds parallel document parsing (0 = runtime.NumCPU())
	Concurrency int `yaml:"concurrency"`
	// Diagnostics configures reporting and the failure threshold
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	// LogLevel is one of trace, debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// DiagnosticsConfig configures diagnostic filtering
type DiagnosticsConfig struct {
	// FailAt is the severity at which loading fails (fatal, error, warning, info)
	FailAt string `yaml:"fail_at"`
	// Ignore lists glob patterns over diagnostic codes to suppress
	Ignore []string `yaml:"ignore"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		SchemaVersion: "4.0",
		Extensions:    []string{".arxml"},
		Paths:         nil, // Current directory
		Concurrency:   0,
		Diagnostics: DiagnosticsConfig{
			FailAt: "error",
		},
		LogLevel: "info",
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := parser.ParseSchemaVersion(c.SchemaVersion); err != nil {
		return fmt.Errorf("schema_version: %w", err)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative")
	}
	if _, err := goarxml.ParseSeverity(c.Diagnostics.FailAt); err != nil {
		return fmt.Errorf("diagnostics.fail_at: %w", err)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// Version returns the configured schema version.
func (c *Config) Version() (parser.SchemaVersion, error) {
	return parser.ParseSchemaVersion(c.SchemaVersion)
}

// DiagnosticConfig converts the diagnostics section for goarxml.Load.
func (c *Config) DiagnosticConfig() (goarxml.DiagnosticConfig, error) {
	sev, err := goarxml.ParseSeverity(c.Diagnostics.FailAt)
	if err != nil {
		return goarxml.DiagnosticConfig{}, err
	}
	return goarxml.DiagnosticConfig{FailAt: sev, Ignore: c.Diagnostics.Ignore}, nil
}

// LoadOptions returns the goarxml.Load options described by c.
func (c *Config) LoadOptions(logger *slog.Logger) ([]goarxml.LoadOption, error) {
	version, err := c.Version()
	if err != nil {
		return nil, err
	}
	diag, err := c.DiagnosticConfig()
	if err != nil {
		return nil, err
	}
	return []goarxml.LoadOption{
		goarxml.WithSchemaVersion(version),
		goarxml.WithDiagnosticConfig(diag),
		goarxml.WithConcurrency(c.Concurrency),
		goarxml.WithLogger(logger),
	}, nil
}

// ParseLogLevel maps a level name onto a slog.Level. "trace" maps to
// goarxml.LevelTrace.
func ParseLogLevel(s string) (slog.Level, error) {
	if strings.EqualFold(s, "trace") {
		return goarxml.LevelTrace, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return level, nil
}

// LoadFromFile loads configuration from a YAML file. Keys missing from
// the file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	fileConfig, err := readFile(path)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	config.Merge(fileConfig)
	return config, nil
}

// readFile decodes a YAML file without applying defaults, so that
// layers only override the keys they set.
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.SchemaVersion != "" {
		c.SchemaVersion = other.SchemaVersion
	}
	if len(other.Extensions) > 0 {
		c.Extensions = other.Extensions
	}
	if len(other.Paths) > 0 {
		c.Paths = other.Paths
	}
	if other.Concurrency != 0 {
		c.Concurrency = other.Concurrency
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}

	// Diagnostics
	if other.Diagnostics.FailAt != "" {
		c.Diagnostics.FailAt = other.Diagnostics.FailAt
	}
	if len(other.Diagnostics.Ignore) > 0 {
		c.Diagnostics.Ignore = other.Diagnostics.Ignore
	}
}
