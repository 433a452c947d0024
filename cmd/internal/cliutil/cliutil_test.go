package cliutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.arxml", "sub/b.arxml", "sub/deep/c.arxml", "sub/skip.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	got, err := ExpandPaths([]string{filepath.Join(dir, "**/*.arxml"), filepath.Join(dir, "a.arxml")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.arxml"),
		filepath.Join(dir, "sub/b.arxml"),
		filepath.Join(dir, "sub/deep/c.arxml"),
	}, got)
}

func TestExpandPathsErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ExpandPaths([]string{filepath.Join(dir, "missing")})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ExpandPaths([]string{filepath.Join(dir, "*.arxml")})
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f))
}

func TestGetOutput(t *testing.T) {
	w, closeFn, err := GetOutput("")
	require.NoError(t, err)
	assert.Same(t, os.Stdout, w)
	closeFn()

	path := filepath.Join(t.TempDir(), "dump.json")
	w, closeFn, err = GetOutput(path)
	require.NoError(t, err)
	_, err = w.WriteString("{}")
	require.NoError(t, err)
	closeFn()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}
