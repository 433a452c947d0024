package goarxml

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Severity indicates how serious a diagnostic is.
// Lower values are more severe.
type Severity int

const (
	SeverityFatal   Severity = iota // document could not be read at all
	SeverityError                   // an element failed to parse and was dropped
	SeverityWarning                 // suspicious input that still loaded
	SeverityInfo                    // informational (skipped or unhandled elements)
)

var severityNames = [...]string{"fatal", "error", "warning", "info"}

// String returns the lowercase severity name.
func (s Severity) String() string {
	if s >= 0 && int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// ParseSeverity parses a severity name as produced by String.
func ParseSeverity(s string) (Severity, error) {
	for i, name := range severityNames {
		if strings.EqualFold(s, name) {
			return Severity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

// Diagnostic represents an issue found while loading documents.
type Diagnostic struct {
	Severity Severity
	Code     string // e.g., "unsupported-tag", "element-skipped"
	Message  string
	File     string // source path
	Path     string // AUTOSAR reference path of the element, if known
	Line     int    // 1-based line of the element, 0 if not applicable
}

// String returns a human-readable representation of the diagnostic.
// Format: "[severity] file:line: path: message" with empty parts omitted.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteString("] ")
	if d.File != "" {
		b.WriteString(d.File)
		if d.Line > 0 {
			fmt.Fprintf(&b, ":%d", d.Line)
		}
		b.WriteString(": ")
	}
	if d.Path != "" {
		b.WriteString(d.Path)
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// DiagnosticConfig controls diagnostic filtering and the failure threshold.
type DiagnosticConfig struct {
	// FailAt sets the severity threshold for failure.
	// If any reported diagnostic has severity <= FailAt, loading fails.
	FailAt Severity

	// Ignore lists diagnostic codes to suppress entirely.
	// Entries are glob patterns (e.g., "element-*").
	Ignore []string
}

// DefaultDiagnosticConfig fails when any element could not be parsed.
func DefaultDiagnosticConfig() DiagnosticConfig {
	return DiagnosticConfig{FailAt: SeverityError}
}

// PermissiveDiagnosticConfig only fails on unreadable documents and
// keeps whatever elements parsed.
func PermissiveDiagnosticConfig() DiagnosticConfig {
	return DiagnosticConfig{FailAt: SeverityFatal}
}

// ShouldReport returns false if the code matches an ignore pattern.
// Malformed patterns never match.
func (c DiagnosticConfig) ShouldReport(code string) bool {
	for _, pattern := range c.Ignore {
		if ok, err := doublestar.Match(pattern, code); err == nil && ok {
			return false
		}
	}
	return true
}

// ShouldFail returns true if a diagnostic with the given severity should
// cause loading to fail.
func (c DiagnosticConfig) ShouldFail(sev Severity) bool {
	return sev <= c.FailAt
}
