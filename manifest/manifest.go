// Package manifest reads and writes service manifests.
//
// A manifest lives at META-INF/services/<contract> and lists the binary names
// of the contract's implementations, one per line. Lines starting with '#'
// are comments.
package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

// Dir is the directory manifests are written to, relative to the output root.
const Dir = "META-INF/services"

const (
	bannerRule = "###################################################"
	bannerText = "##        Generated by servicegen. DO NOT EDIT.  ##"
)

// ErrEmptyContract is returned when a contract name is empty.
var ErrEmptyContract = errors.New("empty contract name")

// Path returns the slash-separated manifest path for a contract binary name.
func Path(contract string) string {
	return path.Join(Dir, contract)
}

// Write writes implementors one per line.
// With banner set, the listing is wrapped in a fixed comment block.
func Write(w io.Writer, implementors []string, banner bool) error {
	bw := bufio.NewWriter(w)

	if banner {
		for _, line := range []string{bannerRule, bannerText, bannerRule} {
			if _, err := bw.WriteString(line + "\n"); err != nil {
				return err
			}
		}
	}

	for _, impl := range implementors {
		if _, err := bw.WriteString(impl + "\n"); err != nil {
			return err
		}
	}

	if banner {
		if _, err := bw.WriteString(bannerRule + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Parse reads implementor names from a manifest.
// Blank lines and comments are skipped; duplicates keep their first position.
func Parse(r io.Reader) ([]string, error) {
	var names []string

	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if _, dup := seen[line]; dup {
			continue
		}

		seen[line] = struct{}{}
		names = append(names, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return names, nil
}

// Lookup returns the implementors listed for contract in fsys.
// The returned error wraps fs.ErrNotExist when no manifest exists.
func Lookup(fsys fs.FS, contract string) ([]string, error) {
	if contract == "" {
		return nil, ErrEmptyContract
	}

	f, err := fsys.Open(Path(contract))
	if err != nil {
		return nil, fmt.Errorf("open manifest for %s: %w", contract, err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}
