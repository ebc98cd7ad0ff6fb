// Package resolve implements [symbol.Resolver] on top of go/types.
//
// # Visibility
//
// Packages go through two states. A package is known once the resolver has
// seen its types, and visible once it may be used to decide a contract.
// References into known packages that are not visible yet resolve to
// placeholders, which makes the processor defer the candidate to a later
// round. The round driver reveals packages layer by layer; the analyzer
// reveals the whole import graph at once.
//
// A reference into a package nobody has seen is undeclared when the resolver
// is [Complete], and a placeholder otherwise, since the analyzer only sees the
// import graph of the package under analysis.
//
// # Candidates
//
// [Resolver.Expose] scans the files of a package for type declarations whose
// doc comment carries a marker directive. Contract references are resolved
// again every time a candidate is delivered, so a deferred candidate observes
// packages revealed after it was first seen.
package resolve
