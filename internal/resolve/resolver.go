package resolve

import (
	"cmp"
	"go/ast"
	"go/token"
	"go/types"
	"slices"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/servicegen/internal/config"
	"github.com/mpyw/servicegen/internal/symbol"
	"github.com/mpyw/servicegen/internal/typeutil"
)

// MarkerPackage is the package name the marker declarations live in.
const MarkerPackage = "servicegen"

// Package is a type-checked package handed to [Resolver.Expose].
type Package struct {
	Types *types.Package
	Files []*ast.File

	// Info is optional. When set, local types are classified from it.
	Info *types.Info

	// Inspector is optional. When nil one is built from Files.
	Inspector *inspector.Inspector
}

// Option configures a Resolver.
type Option func(*Resolver)

// Complete makes references into unknown packages undeclared instead of
// unresolved. Use it when every package of the build has been loaded.
func Complete() Option {
	return func(r *Resolver) {
		r.complete = true
	}
}

// WithMarkers sets the directive names recognized as markers.
// The default is [config.DefaultMarker].
func WithMarkers(names ...string) Option {
	return func(r *Resolver) {
		r.markerNames = names
	}
}

// Resolver is a [symbol.Resolver] backed by go/types.
// It is not safe for concurrent use.
type Resolver struct {
	fset        *token.FileSet
	complete    bool
	markerNames []string

	markers map[string]*symbol.Declaration
	known   map[string]*types.Package
	visible map[string]bool

	decls map[*types.TypeName]*symbol.Declaration
	objs  map[*symbol.Declaration]*types.TypeName

	candidates map[*symbol.Declaration]*candidate
	round      []*candidate
	next       []*candidate
	misplaced  []Misplaced
}

var _ symbol.Resolver = (*Resolver)(nil)

// New creates a Resolver. fset must be the file set the packages were
// parsed with.
func New(fset *token.FileSet, opts ...Option) *Resolver {
	r := &Resolver{
		fset:        fset,
		markerNames: []string{config.DefaultMarker},
		known:       make(map[string]*types.Package),
		visible:     make(map[string]bool),
		decls:       make(map[*types.TypeName]*symbol.Declaration),
		objs:        make(map[*symbol.Declaration]*types.TypeName),
		candidates:  make(map[*symbol.Declaration]*candidate),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.markers = make(map[string]*symbol.Declaration, len(r.markerNames))
	for _, name := range r.markerNames {
		r.markers[name] = &symbol.Declaration{
			Name: symbol.NewName(MarkerPackage, name),
			Kind: symbol.Concrete,
		}
	}

	return r
}

// Know registers pkgs and their transitive imports as known.
func (r *Resolver) Know(pkgs ...*types.Package) {
	for _, pkg := range Closure(pkgs...) {
		r.known[pkg.Path()] = pkg
	}
}

// Reveal makes pkgs known and visible without scanning them for candidates.
// Imports are not revealed.
func (r *Resolver) Reveal(pkgs ...*types.Package) {
	r.Know(pkgs...)

	for _, pkg := range pkgs {
		r.visible[pkg.Path()] = true
	}
}

// Expose reveals pkgs and delivers their candidates in the current round.
func (r *Resolver) Expose(pkgs ...Package) {
	for _, pkg := range pkgs {
		r.Reveal(pkg.Types)
		r.round = append(r.round, r.scan(pkg)...)
	}
}

// Requeue schedules deferred candidates for the next round.
// Declarations that did not come from this Resolver are ignored.
func (r *Resolver) Requeue(decls []*symbol.Declaration) {
	for _, decl := range decls {
		if c, ok := r.candidates[decl]; ok {
			r.next = append(r.next, c)
		}
	}
}

// NextRound starts a new round delivering the requeued candidates.
func (r *Resolver) NextRound() {
	r.round, r.next = r.next, nil
}

// Pending reports how many candidates are requeued for the next round.
func (r *Resolver) Pending() int {
	return len(r.next)
}

// TakeMisplaced returns the misplaced directives found so far, ordered by
// position, and forgets them.
func (r *Resolver) TakeMisplaced() []Misplaced {
	out := r.misplaced
	r.misplaced = nil

	slices.SortFunc(out, func(a, b Misplaced) int {
		return cmp.Compare(a.Pos, b.Pos)
	})

	return out
}

// AnnotationType implements [symbol.Resolver].
func (r *Resolver) AnnotationType(name string) (*symbol.Declaration, bool) {
	decl, ok := r.markers[name]
	return decl, ok
}

// SymbolsWithAnnotation implements [symbol.Resolver].
func (r *Resolver) SymbolsWithAnnotation(marker *symbol.Declaration) []*symbol.Declaration {
	name := marker.Name.Simple()
	if r.markers[name] != marker {
		return nil
	}

	var out []*symbol.Declaration

	for _, c := range r.round {
		if _, ok := c.directives[name]; !ok {
			continue
		}

		c.decl.Annotations = r.annotations(c)
		out = append(out, c.decl)
	}

	return out
}

// Supertypes implements [symbol.Resolver].
// The supertypes of a Go type are its embedded types. An invalid type
// anywhere in its structure yields an unresolved member.
func (r *Resolver) Supertypes(decl *symbol.Declaration) []symbol.TypeRef {
	obj, ok := r.objs[decl]
	if !ok {
		return nil
	}

	named, ok := typeutil.NamedOf(obj.Type())
	if !ok {
		return nil
	}

	var refs []symbol.TypeRef

	embed := func(t types.Type) {
		if typeutil.IsInvalid(typeutil.UnwrapPointer(types.Unalias(t))) {
			refs = append(refs, symbol.Unresolved(types.TypeString(t, nil)))
			return
		}

		if n, ok := typeutil.NamedOf(t); ok {
			refs = append(refs, symbol.Resolved(r.declareObject(n.Origin().Obj())))
		}
	}

	underlying := named.Underlying()

	switch u := underlying.(type) {
	case *types.Struct:
		for f := range u.Fields() {
			if f.Embedded() {
				embed(f.Type())
			}
		}

	case *types.Interface:
		for t := range u.EmbeddedTypes() {
			embed(t)
		}
	}

	broken := typeutil.IsInvalid(underlying) || typeutil.ContainsInvalid(underlying)
	for m := range named.Methods() {
		if typeutil.ContainsInvalid(m.Type()) {
			broken = true
		}
	}

	if broken {
		refs = append(refs, symbol.Unresolved(named.Obj().Name()))
	}

	return refs
}

// Implements implements [symbol.Resolver].
//
// Only interface contracts can be satisfied structurally, by T or *T. When
// either side is generic, methods are matched by name and signature shape
// so that any instantiation is accepted.
func (r *Resolver) Implements(decl, contract *symbol.Declaration) bool {
	vObj, ok := r.objs[decl]
	if !ok {
		return false
	}

	cObj, ok := r.objs[contract]
	if !ok {
		return false
	}

	v, ok := typeutil.NamedOf(vObj.Type())
	if !ok {
		return false
	}

	iface, ok := cObj.Type().Underlying().(*types.Interface)
	if !ok || !iface.IsMethodSet() {
		return false
	}

	if !typeutil.IsGeneric(v) && !typeutil.IsGeneric(cObj.Type()) {
		return types.Implements(v, iface) || types.Implements(types.NewPointer(v), iface)
	}

	mset := types.NewMethodSet(types.NewPointer(v))

	for m := range iface.Methods() {
		sel := mset.Lookup(m.Pkg(), m.Name())
		if sel == nil {
			return false
		}

		got, ok := sel.Obj().Type().(*types.Signature)
		if !ok {
			return false
		}

		if !typeutil.SameShape(got, m.Type().(*types.Signature)) {
			return false
		}
	}

	return true
}

// Closure returns pkgs and their transitive imports, each once, in
// depth-first order.
func Closure(pkgs ...*types.Package) []*types.Package {
	var (
		out  []*types.Package
		seen = make(map[*types.Package]bool)
		walk func(*types.Package)
	)

	walk = func(pkg *types.Package) {
		if pkg == nil || seen[pkg] {
			return
		}

		seen[pkg] = true
		out = append(out, pkg)

		for _, imp := range pkg.Imports() {
			walk(imp)
		}
	}

	for _, pkg := range pkgs {
		walk(pkg)
	}

	return out
}
