// Package goarxml loads AUTOSAR ARXML documents and builds the value
// model of the constants they define.
//
// The heavy lifting happens in the parser package, which turns a
// single CONSTANT-SPECIFICATION element into a constant.Constant. This
// package is the driver around it: it reads files from a Source, walks
// the AR-PACKAGE hierarchy, hands each element to the registered
// element parsers and collects the results into a Workspace.
package goarxml

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/goarxml/goarxml/internal/types"
	"github.com/goarxml/goarxml/parser"
)

// ErrNoSources is returned when Load is called without a source.
var ErrNoSources = errors.New("no ARXML sources provided")

// ErrDiagnosticsFailed is returned by Load when a diagnostic reaches the
// configured failure threshold. The Workspace is still returned.
var ErrDiagnosticsFailed = errors.New("loading failed")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-element logging.
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	logger      *slog.Logger
	version     parser.SchemaVersion
	diagConfig  DiagnosticConfig
	factories   []parser.Factory
	concurrency int
}

func defaultLoadConfig() loadConfig {
	return loadConfig{
		version:     parser.Version4,
		diagConfig:  DefaultDiagnosticConfig(),
		concurrency: runtime.NumCPU(),
	}
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) LoadOption {
	return func(c *loadConfig) { c.logger = logger }
}

// WithSchemaVersion selects the value dialect. The default is Version4.
func WithSchemaVersion(v parser.SchemaVersion) LoadOption {
	return func(c *loadConfig) { c.version = v }
}

// WithDiagnosticConfig sets diagnostic filtering and the failure threshold.
func WithDiagnosticConfig(cfg DiagnosticConfig) LoadOption {
	return func(c *loadConfig) { c.diagConfig = cfg }
}

// WithParsers replaces the element parsers used for each document.
// parser.DefaultFactories is used when none are given.
func WithParsers(factories ...parser.Factory) LoadOption {
	return func(c *loadConfig) { c.factories = factories }
}

// WithConcurrency bounds the number of documents parsed at once.
// Values below 1 mean runtime.NumCPU().
func WithConcurrency(n int) LoadOption {
	return func(c *loadConfig) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		c.concurrency = n
	}
}

// LoadError reports the diagnostic that made Load fail.
type LoadError struct {
	Diagnostic Diagnostic
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%v: %s", ErrDiagnosticsFailed, e.Diagnostic)
}

// Unwrap returns ErrDiagnosticsFailed.
func (e *LoadError) Unwrap() error { return ErrDiagnosticsFailed }
