package symbol

// Resolver is the symbol resolution service the processor queries.
// Implementations are only called from a single goroutine.
type Resolver interface {
	// AnnotationType returns the declaration of the named marker.
	AnnotationType(name string) (*Declaration, bool)

	// SymbolsWithAnnotation returns every declaration delivered in the current
	// round that carries the marker, including ones deferred earlier.
	SymbolsWithAnnotation(marker *Declaration) []*Declaration

	// Supertypes returns the direct supertypes of decl.
	Supertypes(decl *Declaration) []TypeRef

	// Implements reports whether decl structurally satisfies contract.
	// Implementations without structural typing return false.
	Implements(decl, contract *Declaration) bool
}
