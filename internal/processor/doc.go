// Package processor turns marked type declarations into service manifests.
//
// # Pipeline
//
// One call to [Processor.Process] handles one round:
//
//	SymbolsWithAnnotation(marker)
//	    │
//	    ▼
//	extract    ── decode the contract list from the marker arguments
//	    │
//	    ▼
//	validate   ── ACCEPT / REJECT / DEFER per (candidate, contract)
//	    │
//	    ▼
//	aggregate  ── contract → implementors, implementor → source file
//	    │
//	    ▼
//	emit       ── META-INF/services/<contract>, sorted, once per round
//
// Candidates with at least one DEFER outcome are returned to the caller,
// which must hand them back in a later round. Deferred candidates are neither
// recorded nor reported, so a candidate that resolves later produces each of
// its diagnostics exactly once.
//
// # Error Handling
//
// Nothing is returned as a Go error. Every problem is reported through the
// [diag.Reporter] and processing continues with the next pair, candidate or
// manifest. The only fatal case is an unknown marker, which ends the round.
package processor
