// Package incremental records what a generator run consumed and produced,
// so that an unchanged build can skip processing and stale manifests can be
// removed.
package incremental

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"

	"github.com/mpyw/servicegen/internal/codegen"
)

// FileName is the index file name, stored in the output root.
const FileName = ".servicegen.cache"

// Current schema version - increment when Index format changes.
const schemaVersion uint16 = 1

// ErrSchema is returned by Load for indexes written by another version.
var ErrSchema = errors.New("incremental index schema mismatch")

// Index is the persisted state of the previous run.
type Index struct {
	Schema uint16 `msgpack:"schema"`

	// Options is the fingerprint of the options affecting outputs.
	Options string `msgpack:"options"`

	// Sources maps every source file to its hex SHA-256 digest.
	Sources map[string]string `msgpack:"sources"`

	// Outputs maps every output path, relative to the root, to what it was
	// derived from.
	Outputs map[string]codegen.Dependencies `msgpack:"outputs"`
}

// New returns an index for the current run.
func New(options string, sources map[string]string, outputs map[string]codegen.Dependencies) *Index {
	return &Index{
		Schema:  schemaVersion,
		Options: options,
		Sources: maps.Clone(sources),
		Outputs: maps.Clone(outputs),
	}
}

// Hash computes the digests of files concurrently.
func Hash(ctx context.Context, files []string) (map[string]string, error) {
	var (
		mu      sync.Mutex
		digests = make(map[string]string, len(files))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			sum, err := hashFile(file)
			if err != nil {
				return err
			}

			mu.Lock()
			digests[file] = sum
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return digests, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Load reads the index stored in root. It returns nil without error when
// there is none.
func Load(root string) (*Index, error) {
	f, err := os.Open(filepath.Join(root, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var ix Index
	if err := msgpack.NewDecoder(f).Decode(&ix); err != nil {
		return nil, fmt.Errorf("decode %s: %w", FileName, err)
	}

	if ix.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, ix.Schema, schemaVersion)
	}

	return &ix, nil
}

// Save writes ix to root, replacing the previous index atomically.
func Save(root string, ix *Index) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(root, "tmp-*")
	if err != nil {
		return err
	}

	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if err := msgpack.NewEncoder(f).Encode(ix); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, filepath.Join(root, FileName))
}

// UpToDate reports whether a run with the given options over sources would
// reproduce the outputs already present in root.
func (ix *Index) UpToDate(root, options string, sources map[string]string) bool {
	if ix == nil || ix.Schema != schemaVersion || ix.Options != options {
		return false
	}

	if !maps.Equal(ix.Sources, sources) {
		return false
	}

	for path := range ix.Outputs {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(path))); err != nil {
			return false
		}
	}

	return true
}

// Stale returns the outputs recorded in ix that are missing from current,
// sorted.
func (ix *Index) Stale(current map[string]codegen.Dependencies) []string {
	if ix == nil {
		return nil
	}

	var stale []string

	for path := range ix.Outputs {
		if _, ok := current[path]; !ok {
			stale = append(stale, path)
		}
	}

	slices.Sort(stale)

	return stale
}

// Remove deletes outputs from root along with the directories they leave
// empty. Missing files are ignored.
func Remove(root string, outputs []string) error {
	var errs []error

	for _, path := range outputs {
		target := filepath.Join(root, filepath.FromSlash(path))

		if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			continue
		}

		pruneEmpty(root, filepath.Dir(target))
	}

	return errors.Join(errs...)
}

// pruneEmpty removes dir and its parents up to, excluding, root while they
// are empty.
func pruneEmpty(root, dir string) {
	root = filepath.Clean(root)

	for dir = filepath.Clean(dir); dir != root && len(dir) > len(root); dir = filepath.Dir(dir) {
		if os.Remove(dir) != nil {
			return
		}
	}
}
