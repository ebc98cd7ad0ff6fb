// Package driver runs the manifest processor over loaded Go packages in
// rounds.
//
// Target packages are grouped into import layers: a package that imports no
// other target is in layer 0, and every other package sits one layer above
// its deepest target import. Round n compiles layer n, so a candidate whose
// contract lives in a later layer is deferred until that layer is visible.
// After the last layer, one more round gives the remaining deferred
// candidates a final chance; anything still deferred is dropped.
package driver

import (
	"cmp"
	"go/token"
	"io"
	"maps"
	"slices"

	"golang.org/x/tools/go/packages"

	"github.com/mpyw/servicegen/internal/codegen"
	"github.com/mpyw/servicegen/internal/diag"
	"github.com/mpyw/servicegen/internal/processor"
	"github.com/mpyw/servicegen/internal/resolve"
)

// Result summarizes a run.
type Result struct {
	// Rounds is the number of processing rounds.
	Rounds int
	// Outputs maps every manifest path written to its dependencies.
	Outputs map[string]codegen.Dependencies
	// Deferred lists the binary names of candidates dropped because their
	// contracts never resolved.
	Deferred []string
}

// Run processes pkgs, the targets of one build, and their dependencies.
// libs are packages outside that graph that contracts may live in; they are
// visible from the first round. fset must be the file set the packages were
// loaded into.
func Run(fset *token.FileSet, pkgs []*packages.Package, env processor.Environment, libs ...*packages.Package) *Result {
	sink := &recordingSink{
		sink:    env.Sink,
		outputs: make(map[string]codegen.Dependencies),
	}
	if sink.sink == nil {
		sink.sink = codegen.Discard
	}
	env.Sink = sink

	reporter := env.Reporter
	if reporter == nil {
		reporter = &diag.Recorder{}
		env.Reporter = reporter
	}

	proc := processor.New(env)
	res := resolve.New(fset, resolve.Complete(), resolve.WithMarkers(env.Options.Marker))

	layers := Layers(pkgs)
	prepare(res, pkgs, libs)

	result := &Result{}

	for i, layer := range layers {
		if env.Options.Verbose {
			reporter.Logf("Round %d: %d package(s), %d deferred candidate(s)", i+1, len(layer), res.Pending())
		}

		res.NextRound()
		for _, pkg := range layer {
			res.Expose(resolve.Package{
				Types: pkg.Types,
				Files: pkg.Syntax,
				Info:  pkg.TypesInfo,
			})
		}

		reportMisplaced(reporter, res)

		res.Requeue(proc.Process(res))
		result.Rounds++
	}

	if res.Pending() > 0 {
		if env.Options.Verbose {
			reporter.Logf("Final round: %d deferred candidate(s)", res.Pending())
		}

		res.NextRound()
		for _, decl := range proc.Process(res) {
			name := decl.Name.BinaryName()
			result.Deferred = append(result.Deferred, name)

			if env.Options.Verbose {
				reporter.Logf("Dropping %s: its service contracts never resolved", name)
			}
		}
		result.Rounds++
	}

	result.Outputs = maps.Clone(sink.outputs)

	return result
}

// Layers groups the target packages by import depth. Packages within a layer
// are ordered by import path.
func Layers(pkgs []*packages.Package) [][]*packages.Package {
	targets := make(map[string]*packages.Package, len(pkgs))
	for _, pkg := range pkgs {
		targets[pkg.ID] = pkg
	}

	depth := make(map[string]int, len(pkgs))

	var layerOf func(pkg *packages.Package) int
	layerOf = func(pkg *packages.Package) int {
		if d, ok := depth[pkg.ID]; ok {
			return d
		}

		// Import cycles are impossible among type-checked packages.
		d := 0
		for _, imp := range pkg.Imports {
			if _, ok := targets[imp.ID]; ok {
				d = max(d, layerOf(imp)+1)
			}
		}

		depth[pkg.ID] = d

		return d
	}

	var layers [][]*packages.Package

	for _, pkg := range pkgs {
		d := layerOf(pkg)
		for len(layers) <= d {
			layers = append(layers, nil)
		}
		layers[d] = append(layers[d], pkg)
	}

	for _, layer := range layers {
		slices.SortFunc(layer, func(a, b *packages.Package) int {
			return cmp.Compare(a.PkgPath, b.PkgPath)
		})
	}

	return layers
}

// prepare makes every dependency outside the targets, libraries included,
// visible from the first round, and the targets known.
func prepare(res *resolve.Resolver, pkgs, libs []*packages.Package) {
	targets := make(map[*packages.Package]bool, len(pkgs))
	for _, pkg := range pkgs {
		targets[pkg] = true
		res.Know(pkg.Types)
	}

	packages.Visit(slices.Concat(pkgs, libs), nil, func(pkg *packages.Package) {
		if !targets[pkg] && pkg.Types != nil {
			res.Reveal(pkg.Types)
		}
	})
}

func reportMisplaced(reporter diag.Reporter, res *resolve.Resolver) {
	for _, m := range res.TakeMisplaced() {
		reporter.Report(diag.Diagnostic{
			Kind:    diag.MisplacedMarker,
			Pos:     m.Pos,
			Message: m.Message,
		})
	}
}

// recordingSink remembers the paths created through it.
type recordingSink struct {
	sink    codegen.Sink
	outputs map[string]codegen.Dependencies
}

func (s *recordingSink) Create(deps codegen.Dependencies, path string) (io.WriteCloser, error) {
	w, err := s.sink.Create(deps, path)
	if err != nil {
		return nil, err
	}

	s.outputs[path] = deps

	return w, nil
}
