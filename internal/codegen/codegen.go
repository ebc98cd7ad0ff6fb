// Package codegen provides the output sinks generated files are written to.
package codegen

import (
	"bytes"
	"errors"
	"io"
	"maps"
	"slices"
)

// ErrClosed is returned when writing to a closed output.
var ErrClosed = errors.New("output already closed")

// Dependencies describes which source units an output is derived from.
type Dependencies struct {
	// Aggregating marks outputs that depend on the whole resolution result:
	// any change to any listed source, or any new source, invalidates them.
	Aggregating bool `msgpack:"aggregating" json:"aggregating"`
	// Sources are the originating source files, sorted.
	Sources []string `msgpack:"sources" json:"sources"`
}

// NewDependencies returns Dependencies with sorted, de-duplicated sources.
func NewDependencies(aggregating bool, sources ...string) Dependencies {
	sorted := slices.Clone(sources)
	slices.Sort(sorted)

	return Dependencies{
		Aggregating: aggregating,
		Sources:     slices.Compact(sorted),
	}
}

// Sink creates generated files.
// Creating a path already created during the same run replaces its content.
type Sink interface {
	Create(deps Dependencies, path string) (io.WriteCloser, error)
}

// Discard is a Sink that drops everything written to it.
var Discard Sink = discard{}

type discard struct{}

func (discard) Create(Dependencies, string) (io.WriteCloser, error) {
	return nopCloser{io.Discard}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// MemorySink keeps generated files in memory.
type MemorySink struct {
	files map[string][]byte
	deps  map[string]Dependencies
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		files: make(map[string][]byte),
		deps:  make(map[string]Dependencies),
	}
}

// Create implements Sink. Content becomes visible on Close.
func (s *MemorySink) Create(deps Dependencies, path string) (io.WriteCloser, error) {
	s.deps[path] = deps

	return &bufferedOutput{commit: func(b []byte) error {
		s.files[path] = b
		return nil
	}}, nil
}

// Files returns the generated files keyed by path.
func (s *MemorySink) Files() map[string]string {
	out := make(map[string]string, len(s.files))
	for k, v := range s.files {
		out[k] = string(v)
	}

	return out
}

// Paths returns the generated paths, sorted.
func (s *MemorySink) Paths() []string {
	return slices.Sorted(maps.Keys(s.files))
}

// Dependencies returns the dependencies declared for path.
func (s *MemorySink) Dependencies(path string) (Dependencies, bool) {
	d, ok := s.deps[path]
	return d, ok
}

// bufferedOutput collects writes and hands the content to commit on Close.
type bufferedOutput struct {
	buf    bytes.Buffer
	commit func([]byte) error
	closed bool
}

func (o *bufferedOutput) Write(p []byte) (int, error) {
	if o.closed {
		return 0, ErrClosed
	}

	return o.buf.Write(p)
}

func (o *bufferedOutput) Close() error {
	if o.closed {
		return ErrClosed
	}

	o.closed = true

	return o.commit(o.buf.Bytes())
}
