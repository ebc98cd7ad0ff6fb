package processor

import (
	"maps"
	"slices"
	"strings"

	"github.com/mpyw/servicegen/internal/codegen"
	"github.com/mpyw/servicegen/internal/diag"
	"github.com/mpyw/servicegen/manifest"
)

// Emitter writes one manifest per contract.
//
// It remembers what it emitted during the run: a contract that gains
// implementors in a later round is rewritten with the union, so no entry is
// lost and none is listed twice.
type Emitter struct {
	sink     codegen.Sink
	banner   bool
	reporter diag.Reporter
	logf     func(format string, args ...any)
	ledger   map[string]*ledgerEntry
}

type ledgerEntry struct {
	implementors map[string]struct{}
	sources      map[string]struct{}
}

// NewEmitter creates an Emitter. logf may be nil.
func NewEmitter(sink codegen.Sink, banner bool, reporter diag.Reporter, logf func(string, ...any)) *Emitter {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	return &Emitter{
		sink:     sink,
		banner:   banner,
		reporter: reporter,
		logf:     logf,
		ledger:   make(map[string]*ledgerEntry),
	}
}

// Emit writes the manifests of the given batches.
// A write failure is reported and the remaining manifests are still written.
func (e *Emitter) Emit(batches []Batch) {
	for _, b := range batches {
		path := manifest.Path(b.Contract)
		entry := e.merge(b)

		if len(entry.implementors) == 0 {
			e.logf("Skipping %s, no services for %s", path, b.Contract)
			continue
		}

		impls := slices.Sorted(maps.Keys(entry.implementors))
		deps := codegen.NewDependencies(true, slices.Collect(maps.Keys(entry.sources))...)

		e.logf("Writing service file for %s: %s (%s)", b.Contract, path, strings.Join(impls, ","))

		if err := e.write(path, deps, impls); err != nil {
			e.reporter.Report(diag.Diagnostic{
				Kind:    diag.ManifestWriteFailure,
				Message: "unable to write " + path + ": " + err.Error(),
			})
			continue
		}

		e.logf("Successfully wrote %s", path)
	}
}

// Emitted returns the implementors emitted so far for contract, sorted.
func (e *Emitter) Emitted(contract string) []string {
	entry, ok := e.ledger[contract]
	if !ok {
		return nil
	}

	return slices.Sorted(maps.Keys(entry.implementors))
}

func (e *Emitter) merge(b Batch) *ledgerEntry {
	entry, ok := e.ledger[b.Contract]
	if !ok {
		entry = &ledgerEntry{
			implementors: make(map[string]struct{}),
			sources:      make(map[string]struct{}),
		}
		e.ledger[b.Contract] = entry
	}

	for _, impl := range b.Implementors {
		entry.implementors[impl] = struct{}{}
		if file, ok := b.Sources[impl]; ok && file != "" {
			entry.sources[file] = struct{}{}
		}
	}

	return entry
}

func (e *Emitter) write(path string, deps codegen.Dependencies, impls []string) (err error) {
	w, err := e.sink.Create(deps, path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	return manifest.Write(w, impls, e.banner)
}
