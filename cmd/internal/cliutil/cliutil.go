// Package cliutil provides shared CLI utilities for the goarxml command.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mattn/go-isatty"
)

// GetOutput opens the output file or returns stdout.
func GetOutput(outputFile string) (*os.File, func(), error) {
	if outputFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// PrintError writes a formatted error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ExpandPaths resolves path arguments into existing paths. Entries
// containing glob characters are expanded with ** support; plain
// entries are kept as given and must exist.
func ExpandPaths(patterns []string) ([]string, error) {
	var out []string
	for _, pattern := range patterns {
		if !containsGlob(pattern) {
			if _, err := os.Stat(pattern); err != nil {
				return nil, err
			}
			out = append(out, pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(filepath.Clean(pattern))
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no paths match pattern: %s", pattern)
		}
		out = append(out, matches...)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
