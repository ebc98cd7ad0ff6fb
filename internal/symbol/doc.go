// Package symbol defines the declaration model the manifest processor queries.
//
// # Overview
//
// The processor never talks to go/types directly. It sees declarations,
// annotations and type references through the [Resolver] interface, so the
// same pipeline runs inside a go/analysis pass, inside the multi-round
// generator driver, and against hand-built fixtures in tests.
//
// # Type References
//
// A [TypeRef] is a tagged value:
//
//	Resolved(decl)    // the reference maps to a declaration
//	Unresolved(text)  // placeholder, the declaration may appear in a later round
//	Undeclared(text)  // the reference can never map to a declaration
//
// Only Unresolved leads to deferral. Undeclared is a user error.
//
// # Names
//
// A [Name] keeps the package and the enclosing path separately so that the
// binary name can use a distinct nested separator:
//
//	Name{Package: "test", Path: []string{"Enclosing", "Nested"}}.BinaryName()
//	// test.Enclosing$Nested
package symbol
