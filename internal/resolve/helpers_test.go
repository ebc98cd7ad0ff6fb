package resolve

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mpyw/servicegen/internal/symbol"
)

// world type-checks in-memory packages. Packages must be added after the
// packages they import.
type world struct {
	t    *testing.T
	fset *token.FileSet
	pkgs map[string]Package
}

func newWorld(t *testing.T) *world {
	t.Helper()

	return &world{
		t:    t,
		fset: token.NewFileSet(),
		pkgs: make(map[string]Package),
	}
}

type importerFunc func(path string) (*types.Package, error)

func (f importerFunc) Import(path string) (*types.Package, error) {
	return f(path)
}

// add parses and type-checks one package. Type errors are tolerated so that
// broken declarations can be tested.
func (w *world) add(path string, sources ...string) Package {
	w.t.Helper()

	var files []*ast.File

	for i, src := range sources {
		name := path + "/" + string(rune('a'+i)) + ".go"
		f, err := parser.ParseFile(w.fset, name, src, parser.ParseComments)
		require.NoError(w.t, err)
		files = append(files, f)
	}

	info := &types.Info{
		Defs: make(map[*ast.Ident]types.Object),
		Uses: make(map[*ast.Ident]types.Object),
	}

	conf := types.Config{
		Importer: importerFunc(func(p string) (*types.Package, error) {
			if pkg, ok := w.pkgs[p]; ok {
				return pkg.Types, nil
			}
			return nil, &types.Error{Msg: "package " + p + " not found"}
		}),
		Error: func(error) {},
	}

	tpkg, _ := conf.Check(path, w.fset, files, info)

	pkg := Package{Types: tpkg, Files: files, Info: info}
	w.pkgs[path] = pkg

	return pkg
}

func marker(t *testing.T, r *Resolver) *symbol.Declaration {
	t.Helper()

	m, ok := r.AnnotationType("service")
	require.True(t, ok)

	return m
}

func names(decls []*symbol.Declaration) []string {
	out := make([]string, 0, len(decls))
	for _, d := range decls {
		out = append(out, d.Name.QualifiedName())
	}

	return out
}

// contracts returns the value argument of the first annotation of decl.
func contracts(t *testing.T, decl *symbol.Declaration) []symbol.TypeRef {
	t.Helper()

	require.NotEmpty(t, decl.Annotations)
	arg, ok := decl.Annotations[0].Argument("value")
	require.True(t, ok, "value argument missing")

	refs, ok := arg.Value.([]symbol.TypeRef)
	require.True(t, ok, "value is %T", arg.Value)

	return refs
}

func find(t *testing.T, decls []*symbol.Declaration, name string) *symbol.Declaration {
	t.Helper()

	i := slices.IndexFunc(decls, func(d *symbol.Declaration) bool {
		return d.Name.Simple() == name
	})
	require.GreaterOrEqual(t, i, 0, "%s not found in %v", name, names(decls))

	return decls[i]
}
