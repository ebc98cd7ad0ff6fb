package processor

import (
	"fmt"
	"go/token"

	"github.com/mpyw/servicegen/internal/codegen"
	"github.com/mpyw/servicegen/internal/config"
	"github.com/mpyw/servicegen/internal/diag"
	"github.com/mpyw/servicegen/internal/symbol"
)

// Environment is what a Processor is created from.
type Environment struct {
	Options  config.Options
	Sink     codegen.Sink
	Reporter diag.Reporter
}

// Processor validates marked declarations and emits service manifests.
// Its state lives for one compilation run; it is not safe for concurrent use.
type Processor struct {
	opts       config.Options
	reporter   diag.Reporter
	validator  Validator
	aggregator *Aggregator
	emitter    *Emitter

	markerMissingReported bool

	// deferred are the candidates the last round handed back.
	deferred []*symbol.Declaration
}

// New creates a Processor for one run.
func New(env Environment) *Processor {
	sink := env.Sink
	if sink == nil {
		sink = codegen.Discard
	}

	reporter := env.Reporter
	if reporter == nil {
		reporter = &diag.Recorder{}
	}

	p := &Processor{
		opts:       env.Options,
		reporter:   reporter,
		validator:  Validator{Verify: env.Options.Verify},
		aggregator: NewAggregator(),
	}
	p.emitter = NewEmitter(sink, env.Options.Comment, reporter, p.logf)

	return p
}

// Options returns the options the Processor runs with.
func (p *Processor) Options() config.Options {
	return p.opts
}

// Emitted returns the implementors written so far for a contract binary name.
func (p *Processor) Emitted(contract string) []string {
	return p.emitter.Emitted(contract)
}

// Process runs one round and returns the candidates that could not be
// resolved yet. The caller must pass them back in the next round; whatever is
// still deferred when no round follows is dropped.
//
// A round without a resolvable marker processes nothing and hands back the
// candidates deferred by the previous round unchanged.
func (p *Processor) Process(res symbol.Resolver) []*symbol.Declaration {
	marker, ok := res.AnnotationType(p.opts.Marker)
	if !ok {
		if !p.markerMissingReported {
			p.markerMissingReported = true
			p.report(diag.MarkerTypeUnavailable, token.NoPos,
				"the service marker %q could not be found; expected the //servicegen:%s directive to be registered",
				p.opts.Marker, p.opts.Marker)
		}
		return p.deferred
	}

	var deferred []*symbol.Declaration

	for _, decl := range res.SymbolsWithAnnotation(marker) {
		if !p.checkCandidate(decl) {
			continue
		}

		refs, ok := p.extract(decl, marker)
		if !ok {
			continue
		}

		if p.processContracts(res, decl, refs) {
			p.logf("Deferring %s until its types resolve", decl.Name.BinaryName())
			deferred = append(deferred, decl)
		}
	}

	p.emitter.Emit(p.aggregator.DrainAll())
	p.deferred = deferred

	return deferred
}

// checkCandidate enforces the binary-naming precondition.
func (p *Processor) checkCandidate(decl *symbol.Declaration) bool {
	if decl.Local {
		p.report(diag.LocalOrAnonymousTypeUsed, decl.Pos,
			"%s: local and anonymous types cannot provide services",
			decl.Name.Simple())
		return false
	}

	if decl.Kind != symbol.Concrete {
		p.report(diag.InvalidCandidateKind, decl.Pos,
			"%s: %s declarations cannot provide services, only concrete named types can",
			decl.Name.Simple(), decl.Kind)
		return false
	}

	return true
}

// processContracts validates every contract of decl and records the accepted
// ones. It returns true, without recording or reporting anything, when any
// contract cannot be decided yet.
func (p *Processor) processContracts(res symbol.Resolver, decl *symbol.Declaration, refs []symbol.TypeRef) bool {
	outcomes := make([]Outcome, len(refs))

	for i, ref := range refs {
		if ref.IsError() {
			return true
		}

		contract, ok := ref.Declaration()
		if !ok {
			continue
		}

		outcomes[i] = p.validator.Validate(res, decl, contract)
		if outcomes[i] == Defer {
			return true
		}
	}

	implementor := decl.Name.BinaryName()

	for i, ref := range refs {
		contract, ok := ref.Declaration()
		if !ok {
			pos := ref.Pos()
			if !pos.IsValid() {
				pos = decl.Pos
			}
			p.report(diag.ContractDeclarationUnresolvable, pos,
				"%s: cannot locate the type declaration for service contract %s",
				decl.Name.Simple(), ref)
			continue
		}

		switch outcomes[i] {
		case Accept:
			p.logf("Accepted %s for %s", implementor, contract.Name.BinaryName())
			p.aggregator.Record(contract.Name.BinaryName(), implementor, decl.File)

		case Reject:
			p.report(diag.ValidationRejected, decl.Pos,
				"types marked with //servicegen:%s must implement their service contracts: %s does not implement %s",
				p.opts.Marker, decl.Name.QualifiedName(), contract.Name.QualifiedName())
		}
	}

	return false
}

func (p *Processor) report(kind diag.Kind, pos token.Pos, format string, args ...any) {
	p.reporter.Report(diag.Diagnostic{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *Processor) logf(format string, args ...any) {
	if p.opts.Verbose {
		p.reporter.Logf(format, args...)
	}
}
