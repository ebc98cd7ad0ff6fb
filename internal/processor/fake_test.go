package processor

import (
	"go/token"

	"github.com/mpyw/servicegen/internal/symbol"
)

// fakeResolver is a hand-built symbol.Resolver.
type fakeResolver struct {
	markers    map[string]*symbol.Declaration
	candidates []*symbol.Declaration
	supers     map[*symbol.Declaration][]symbol.TypeRef
	implements map[[2]string]bool
}

func newFakeResolver(marker *symbol.Declaration) *fakeResolver {
	r := &fakeResolver{
		markers:    make(map[string]*symbol.Declaration),
		supers:     make(map[*symbol.Declaration][]symbol.TypeRef),
		implements: make(map[[2]string]bool),
	}
	if marker != nil {
		r.markers[marker.Name.Simple()] = marker
	}

	return r
}

func (r *fakeResolver) AnnotationType(name string) (*symbol.Declaration, bool) {
	d, ok := r.markers[name]
	return d, ok
}

func (r *fakeResolver) SymbolsWithAnnotation(marker *symbol.Declaration) []*symbol.Declaration {
	var out []*symbol.Declaration
	for _, c := range r.candidates {
		for _, ann := range c.Annotations {
			if ann.Type.Name.Equal(marker.Name) {
				out = append(out, c)
				break
			}
		}
	}

	return out
}

func (r *fakeResolver) Supertypes(decl *symbol.Declaration) []symbol.TypeRef {
	return r.supers[decl]
}

func (r *fakeResolver) Implements(decl, contract *symbol.Declaration) bool {
	return r.implements[[2]string{decl.Name.BinaryName(), contract.Name.BinaryName()}]
}

// deliver sets the candidates of the next round.
func (r *fakeResolver) deliver(decls ...*symbol.Declaration) {
	r.candidates = decls
}

var nextPos token.Pos = 1

func newMarker() *symbol.Declaration {
	return &symbol.Declaration{Name: symbol.NewName("servicegen", "service"), Kind: symbol.Concrete}
}

func class(pkg string, path ...string) *symbol.Declaration {
	nextPos++

	return &symbol.Declaration{
		Name: symbol.NewName(pkg, path...),
		Kind: symbol.Concrete,
		File: path[0] + ".go",
		Pos:  nextPos,
	}
}

func iface(pkg string, path ...string) *symbol.Declaration {
	d := class(pkg, path...)
	d.Kind = symbol.Interface

	return d
}

// mark attaches the marker with the given argument value.
func mark(decl, marker *symbol.Declaration, value any) *symbol.Declaration {
	decl.Annotations = append(decl.Annotations, &symbol.Annotation{
		Type:      marker,
		Arguments: []symbol.Argument{{Name: ValueArgument, Value: value, Pos: decl.Pos - 1}},
		Pos:       decl.Pos - 1,
	})

	return decl
}

func refs(decls ...*symbol.Declaration) []symbol.TypeRef {
	out := make([]symbol.TypeRef, len(decls))
	for i, d := range decls {
		out[i] = symbol.Resolved(d)
	}

	return out
}
