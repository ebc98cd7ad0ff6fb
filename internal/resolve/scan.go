package resolve

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"slices"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/mpyw/servicegen/internal/directive"
	"github.com/mpyw/servicegen/internal/symbol"
)

// Misplaced is a servicegen directive that marks nothing.
type Misplaced struct {
	Pos     token.Pos
	Name    string
	Message string
}

// candidate is a scanned type declaration carrying marker directives.
type candidate struct {
	decl *symbol.Declaration
	pkg  *types.Package // resolves bare references

	// directives by marker name, in source order.
	directives map[string][]directive.Directive
}

// scan collects the candidates of pkg ordered by position, and records the
// directives that are not attached to a type declaration.
func (r *Resolver) scan(pkg Package) []*candidate {
	skip := make(map[*ast.File]bool)
	pending := make(map[token.Pos]directive.Directive)

	for _, file := range pkg.Files {
		// Generated files never carry hand-written markers.
		if ast.IsGenerated(file) {
			skip[file] = true
			continue
		}

		for _, group := range file.Comments {
			for _, c := range group.List {
				d, ok := directive.Parse(c.Text)
				if !ok {
					continue
				}
				d.Pos = c.Slash
				pending[c.Slash] = d
			}
		}
	}

	if len(pending) == 0 {
		return nil
	}

	insp := pkg.Inspector
	if insp == nil {
		insp = inspector.New(pkg.Files)
	}

	var found []*candidate

	insp.WithStack([]ast.Node{(*ast.GenDecl)(nil)}, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}

		if file, ok := stack[0].(*ast.File); ok && skip[file] {
			return false
		}

		gen := n.(*ast.GenDecl)
		if gen.Tok != token.TYPE {
			return true
		}

		local := isLocal(stack)

		for _, s := range gen.Specs {
			spec := s.(*ast.TypeSpec)

			docs := []*ast.CommentGroup{spec.Doc}
			if !gen.Lparen.IsValid() || len(gen.Specs) == 1 {
				docs = append(docs, gen.Doc)
			}

			c := r.attach(pkg, spec, local, docs, pending)
			if c != nil {
				found = append(found, c)
			}
		}

		return true
	})

	for _, d := range pending {
		r.misplaced = append(r.misplaced, Misplaced{
			Pos:     d.Pos,
			Name:    d.Name,
			Message: fmt.Sprintf("//%s%s must be placed in the doc comment of a type declaration", directive.Prefix, d.Name),
		})
	}

	slices.SortFunc(found, func(a, b *candidate) int {
		return cmp.Compare(a.decl.Pos, b.decl.Pos)
	})

	for _, c := range found {
		r.candidates[c.decl] = c
	}

	return found
}

// attach consumes the directives found in docs. It returns nil when no
// marker is attached to spec.
func (r *Resolver) attach(
	pkg Package,
	spec *ast.TypeSpec,
	local bool,
	docs []*ast.CommentGroup,
	pending map[token.Pos]directive.Directive,
) *candidate {
	var directives map[string][]directive.Directive

	for _, doc := range docs {
		if doc == nil {
			continue
		}

		for _, c := range doc.List {
			d, ok := pending[c.Slash]
			if !ok {
				continue
			}
			delete(pending, c.Slash)

			if _, ok := r.markers[d.Name]; !ok {
				r.misplaced = append(r.misplaced, Misplaced{
					Pos:     d.Pos,
					Name:    d.Name,
					Message: fmt.Sprintf("unknown directive //%s%s", directive.Prefix, d.Name),
				})
				continue
			}

			if directives == nil {
				directives = make(map[string][]directive.Directive)
			}
			directives[d.Name] = append(directives[d.Name], d)
		}
	}

	if directives == nil {
		return nil
	}

	return &candidate{
		decl:       r.declareSpec(pkg, spec, local),
		pkg:        pkg.Types,
		directives: directives,
	}
}

// declareSpec returns the declaration of a scanned type spec. Package-level
// types share their declaration with references to them.
func (r *Resolver) declareSpec(pkg Package, spec *ast.TypeSpec, local bool) *symbol.Declaration {
	if !local {
		if tn, ok := pkg.Types.Scope().Lookup(spec.Name.Name).(*types.TypeName); ok && tn.Pos() == spec.Name.Pos() {
			return r.declareObject(tn)
		}
	}

	decl := &symbol.Declaration{
		Name:       symbol.NewName(pkg.Types.Path(), spec.Name.Name),
		Kind:       specKind(pkg.Info, spec),
		Local:      local,
		File:       r.fileName(spec.Pos()),
		Pos:        spec.Name.Pos(),
		TypeParams: spec.TypeParams.NumFields(),
	}

	if tn, ok := definedTypeName(pkg.Info, spec); ok {
		r.objs[decl] = tn
	}

	return decl
}

// isLocal reports whether the innermost node of stack sits in a function body.
func isLocal(stack []ast.Node) bool {
	for _, n := range stack {
		switch n.(type) {
		case *ast.FuncDecl, *ast.FuncLit:
			return true
		}
	}

	return false
}

func definedTypeName(info *types.Info, spec *ast.TypeSpec) (*types.TypeName, bool) {
	if info == nil {
		return nil, false
	}

	tn, ok := info.Defs[spec.Name].(*types.TypeName)
	return tn, ok
}

// specKind classifies a spec from type information when available, and from
// syntax otherwise.
func specKind(info *types.Info, spec *ast.TypeSpec) symbol.Kind {
	if tn, ok := definedTypeName(info, spec); ok {
		return kindOf(tn)
	}

	if spec.Assign.IsValid() {
		return symbol.Alias
	}

	if _, ok := spec.Type.(*ast.InterfaceType); ok {
		return symbol.Interface
	}

	return symbol.Concrete
}
