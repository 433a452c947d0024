package goarxml

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions are the file extensions recognized as ARXML files.
var DefaultExtensions = []string{".arxml"}

// Source lists and opens ARXML documents.
type Source interface {
	// ListFiles returns every document path known to this source, in
	// lexical order.
	ListFiles() ([]string, error)

	// Open returns the content of a path returned by ListFiles.
	Open(path string) (io.ReadCloser, error)
}

// SourceOption configures a source.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	extensions []string
}

func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		extensions: DefaultExtensions,
	}
}

// WithExtensions sets the file extensions to recognize for this source.
func WithExtensions(exts ...string) SourceOption {
	return func(c *sourceConfig) {
		c.extensions = exts
	}
}

// --- Dir Source (single directory) ---

type dirSource struct {
	path   string
	config sourceConfig
}

// Dir creates a Source over the files of a single directory (no recursion).
func Dir(path string, opts ...SourceOption) (Source, error) {
	if err := checkDir(path); err != nil {
		return nil, err
	}
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &dirSource{path: path, config: cfg}, nil
}

func (s *dirSource) ListFiles() ([]string, error) {
	extSet := makeExtensionSet(s.config.extensions)
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(s.path, entry.Name())
		if hasValidExtension(path, extSet) {
			files = append(files, path)
		}
	}
	slices.Sort(files)
	return files, nil
}

func (s *dirSource) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// --- DirTree Source (recursive directory) ---

type treeSource struct {
	files []string
}

// DirTree creates a Source that recursively walks a directory tree once
// at construction. Unreadable subdirectories are skipped.
func DirTree(root string, opts ...SourceOption) (Source, error) {
	if err := checkDir(root); err != nil {
		return nil, err
	}
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	extSet := makeExtensionSet(cfg.extensions)
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && hasValidExtension(path, extSet) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return &treeSource{files: files}, nil
}

func (s *treeSource) ListFiles() ([]string, error) {
	return slices.Clone(s.files), nil
}

func (s *treeSource) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// --- Files Source (explicit paths) ---

type fileSource struct {
	paths []string
}

// Files creates a Source over an explicit list of files. Extensions are
// not checked; duplicates are dropped.
func Files(paths ...string) Source {
	sorted := slices.Clone(paths)
	slices.Sort(sorted)
	return &fileSource{paths: slices.Compact(sorted)}
}

func (s *fileSource) ListFiles() ([]string, error) {
	return slices.Clone(s.paths), nil
}

func (s *fileSource) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// --- FS Source (for embed.FS, testing) ---

type fsSource struct {
	name   string
	fsys   fs.FS
	config sourceConfig
}

// FS creates a Source backed by an fs.FS (e.g., embed.FS).
// Paths are reported as "name:path".
func FS(name string, fsys fs.FS, opts ...SourceOption) Source {
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &fsSource{name: name, fsys: fsys, config: cfg}
}

func (s *fsSource) ListFiles() ([]string, error) {
	extSet := makeExtensionSet(s.config.extensions)
	var files []string
	err := fs.WalkDir(s.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && hasValidExtension(path, extSet) {
			files = append(files, s.name+":"+path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

func (s *fsSource) Open(path string) (io.ReadCloser, error) {
	return s.fsys.Open(strings.TrimPrefix(path, s.name+":"))
}

// --- Multi Source (combines multiple sources) ---

type multiSource struct {
	sources []Source
	owner   map[string]Source
}

// Multi combines multiple sources into one. Files are listed source by
// source; a path listed by several sources is kept once.
func Multi(sources ...Source) Source {
	return &multiSource{sources: sources}
}

func (s *multiSource) ListFiles() ([]string, error) {
	s.owner = make(map[string]Source)
	var files []string
	for _, src := range s.sources {
		f, err := src.ListFiles()
		if err != nil {
			return nil, err
		}
		for _, path := range f {
			if _, seen := s.owner[path]; seen {
				continue
			}
			s.owner[path] = src
			files = append(files, path)
		}
	}
	return files, nil
}

func (s *multiSource) Open(path string) (io.ReadCloser, error) {
	if src, ok := s.owner[path]; ok {
		return src.Open(path)
	}
	return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
}

// --- Helpers ---

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	return nil
}

func makeExtensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

func hasValidExtension(path string, extSet map[string]struct{}) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := extSet[ext]
	return ok
}
