package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
)

// ErrOutsideRoot is returned for paths escaping the output root.
var ErrOutsideRoot = errors.New("path escapes output root")

// FileSink writes generated files below a root directory.
// Files are replaced atomically and left untouched when the content is unchanged.
type FileSink struct {
	root    string
	outputs map[string]Dependencies
	written int
	skipped int
}

// NewFileSink creates a FileSink rooted at root.
func NewFileSink(root string) *FileSink {
	return &FileSink{
		root:    root,
		outputs: make(map[string]Dependencies),
	}
}

// Root returns the output root.
func (s *FileSink) Root() string {
	return s.root
}

// Create implements Sink. The file is written on Close.
func (s *FileSink) Create(deps Dependencies, path string) (io.WriteCloser, error) {
	if !filepath.IsLocal(filepath.FromSlash(path)) {
		return nil, fmt.Errorf("%s: %w", path, ErrOutsideRoot)
	}

	s.outputs[path] = deps
	target := filepath.Join(s.root, filepath.FromSlash(path))

	return &bufferedOutput{commit: func(b []byte) error {
		return s.commit(target, b)
	}}, nil
}

// Outputs returns every path created during the run with its dependencies.
func (s *FileSink) Outputs() map[string]Dependencies {
	return maps.Clone(s.outputs)
}

// Stats returns how many files were written and how many were already up to date.
func (s *FileSink) Stats() (written, unchanged int) {
	return s.written, s.skipped
}

func (s *FileSink) commit(target string, content []byte) error {
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, content) {
		s.skipped++
		return nil
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}

	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp, target); err != nil {
		return err
	}

	s.written++

	return nil
}
