package resolve

import (
	"go/token"
	"go/types"

	"github.com/mpyw/servicegen/internal/directive"
	"github.com/mpyw/servicegen/internal/processor"
	"github.com/mpyw/servicegen/internal/symbol"
	"github.com/mpyw/servicegen/internal/typeutil"
)

// annotations builds the marker instances of c against the current
// visibility.
func (r *Resolver) annotations(c *candidate) []*symbol.Annotation {
	var out []*symbol.Annotation

	// Iterate markers in declaration order for a stable result.
	for _, name := range r.markerNames {
		lines, ok := c.directives[name]
		if !ok {
			continue
		}

		ann := &symbol.Annotation{
			Type: r.markers[name],
			Pos:  lines[0].Pos,
		}

		ann.Arguments = []symbol.Argument{r.argument(c, lines)}

		out = append(out, ann)
	}

	return out
}

// argument merges the directive lines of one marker into its value argument.
// A marker without arguments lists no contracts; a lone nil has no value.
func (r *Resolver) argument(c *candidate, lines []directive.Directive) symbol.Argument {
	var (
		literals []string
		refs     = []symbol.TypeRef{}
	)

	for _, line := range lines {
		for _, arg := range line.Args {
			switch {
			case arg == directive.EmptyList:
			case directive.IsLiteral(arg):
				literals = append(literals, arg)
			default:
				refs = append(refs, r.resolveRef(c.pkg, arg).At(line.Pos))
			}
		}
	}

	arg := symbol.Argument{Name: processor.ValueArgument, Pos: lines[0].Pos}

	switch {
	case len(literals) == 1 && literals[0] == "nil" && len(refs) == 0:
	case literals != nil:
		arg.Value = literals
	default:
		arg.Value = refs
	}

	return arg
}

// resolveRef resolves a reference written in from.
func (r *Resolver) resolveRef(from *types.Package, text string) symbol.TypeRef {
	ref, err := directive.ParseReference(text)
	if err != nil {
		return symbol.Undeclared(text)
	}

	var obj types.Object

	switch {
	case ref.PkgPath != "":
		pkg, ok := r.known[ref.PkgPath]
		if !ok {
			if r.complete {
				return symbol.Undeclared(text)
			}
			return symbol.Unresolved(text)
		}

		if !r.visible[ref.PkgPath] {
			return symbol.Unresolved(text)
		}

		obj = pkg.Scope().Lookup(ref.TypeName)

	default:
		obj = from.Scope().Lookup(ref.TypeName)
		if obj == nil {
			obj = types.Universe.Lookup(ref.TypeName)
		}
	}

	tn, ok := obj.(*types.TypeName)
	if !ok {
		return symbol.Undeclared(text)
	}

	if typeutil.IsInvalid(tn.Type().Underlying()) {
		return symbol.Unresolved(text)
	}

	// Aliases resolve to the named type they denote, if any.
	named, ok := types.Unalias(tn.Type()).(*types.Named)
	if !ok {
		return symbol.Undeclared(text)
	}

	return symbol.Resolved(r.declareObject(named.Origin().Obj()))
}

// declareObject returns the declaration of a type name, creating it once.
func (r *Resolver) declareObject(tn *types.TypeName) *symbol.Declaration {
	if decl, ok := r.decls[tn]; ok {
		return decl
	}

	decl := &symbol.Declaration{
		Name: symbol.NewName(pkgPath(tn), tn.Name()),
		Kind: kindOf(tn),
		File: r.fileName(tn.Pos()),
		Pos:  tn.Pos(),
	}

	if named, ok := types.Unalias(tn.Type()).(*types.Named); ok && !tn.IsAlias() {
		decl.TypeParams = named.TypeParams().Len()
	}

	r.decls[tn] = decl
	r.objs[decl] = tn

	return decl
}

func (r *Resolver) fileName(pos token.Pos) string {
	if !pos.IsValid() {
		return ""
	}

	if f := r.fset.File(pos); f != nil {
		return f.Name()
	}

	return ""
}

func kindOf(tn *types.TypeName) symbol.Kind {
	switch {
	case tn.IsAlias():
		return symbol.Alias
	case types.IsInterface(tn.Type()):
		return symbol.Interface
	default:
		return symbol.Concrete
	}
}

// pkgPath returns the import path of tn, empty for predeclared types.
func pkgPath(tn *types.TypeName) string {
	if tn.Pkg() == nil {
		return ""
	}

	return tn.Pkg().Path()
}
