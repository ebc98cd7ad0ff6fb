// Package servicegen provides a go/analysis based analyzer that checks
// //servicegen:service markers without writing any manifest.
package servicegen

import (
	"errors"
	"flag"
	"go/token"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/servicegen/internal/codegen"
	"github.com/mpyw/servicegen/internal/config"
	"github.com/mpyw/servicegen/internal/diag"
	"github.com/mpyw/servicegen/internal/processor"
	"github.com/mpyw/servicegen/internal/resolve"
)

// Flags for the analyzer.
var (
	verify bool
	marker string
)

func init() {
	Analyzer.Flags.BoolVar(&verify, "verify", true,
		"check that marked types implement their service contracts")
	Analyzer.Flags.StringVar(&marker, "marker", config.DefaultMarker,
		"directive name marking service implementations (e.g., service for //servicegen:service)")
}

// Analyzer is the main analyzer for servicegen.
var Analyzer = &analysis.Analyzer{
	Name:     "servicegen",
	Doc:      "checks that types marked with //servicegen:service implement their service contracts",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
	Flags:    flag.FlagSet{},
}

var ErrNoInspector = errors.New("inspector analyzer result not found")

func run(pass *analysis.Pass) (any, error) {
	insp, ok := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, ErrNoInspector
	}

	opts := config.Default()
	opts.Verify = verify
	opts.Marker = marker

	// Everything the package imports is already compiled; contracts in
	// packages outside its import graph cannot be decided here.
	res := resolve.New(pass.Fset, resolve.WithMarkers(opts.Marker))
	res.Reveal(resolve.Closure(pass.Pkg.Imports()...)...)
	res.Expose(resolve.Package{
		Types:     pass.Pkg,
		Files:     pass.Files,
		Info:      pass.TypesInfo,
		Inspector: insp,
	})

	reporter := &passReporter{pass: pass}

	proc := processor.New(processor.Environment{
		Options:  opts,
		Sink:     codegen.Discard,
		Reporter: reporter,
	})
	proc.Process(res)

	for _, m := range res.TakeMisplaced() {
		reporter.Report(diag.Diagnostic{
			Kind:    diag.MisplacedMarker,
			Pos:     m.Pos,
			Message: m.Message,
		})
	}

	return nil, nil
}

// passReporter forwards diagnostics to the analysis pass.
// Verbose traces have nowhere to go and are dropped.
type passReporter struct {
	pass *analysis.Pass
}

func (r *passReporter) Report(d diag.Diagnostic) {
	pos := d.Pos
	if !pos.IsValid() {
		pos = r.packagePos()
	}

	r.pass.Report(analysis.Diagnostic{
		Pos:      pos,
		Category: d.Kind.String(),
		Message:  d.Message,
	})
}

func (r *passReporter) Logf(string, ...any) {}

// packagePos returns the position of the first package clause.
func (r *passReporter) packagePos() token.Pos {
	if len(r.pass.Files) == 0 {
		return token.NoPos
	}

	return r.pass.Files[0].Package
}
