package driver

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"slices"

	"golang.org/x/tools/go/packages"

	"github.com/mpyw/servicegen/internal/directive"
)

// ErrPackages is returned when loaded packages have errors.
var ErrPackages = errors.New("packages contain errors")

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedDeps

// Load loads and type-checks the packages matching patterns, with their
// dependencies, into fset.
func Load(ctx context.Context, fset *token.FileSet, dir string, patterns ...string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     dir,
		Fset:    fset,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	if err := packageErrors(pkgs); err != nil {
		return nil, err
	}

	return pkgs, nil
}

// Program is a loaded build.
type Program struct {
	// Targets are the packages matching the load patterns.
	Targets []*packages.Package
	// Libraries are packages named by service directives of the targets
	// without being imported by them.
	Libraries []*packages.Package
}

// LoadProgram loads the packages matching patterns like [Load], together
// with the packages their directives name but do not import. A named
// package that cannot be loaded is left out, so references to it stay
// undeclared.
func LoadProgram(ctx context.Context, fset *token.FileSet, dir string, patterns ...string) (*Program, error) {
	targets, err := Load(ctx, fset, dir, patterns...)
	if err != nil {
		return nil, err
	}

	missing := MissingContracts(targets)
	if len(missing) == 0 {
		return &Program{Targets: targets}, nil
	}

	ids := make(map[string]bool, len(targets))
	for _, pkg := range targets {
		ids[pkg.ID] = true
	}

	// Targets are loaded again with the libraries so that both share one
	// set of type identities.
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     dir,
		Fset:    fset,
	}

	roots, err := packages.Load(cfg, slices.Concat(patterns, missing)...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	prog := &Program{}

	for _, pkg := range roots {
		switch {
		case ids[pkg.ID]:
			prog.Targets = append(prog.Targets, pkg)
		case pkg.Types != nil && packageErrors([]*packages.Package{pkg}) == nil:
			prog.Libraries = append(prog.Libraries, pkg)
		}
	}

	if err := packageErrors(prog.Targets); err != nil {
		return nil, err
	}

	return prog, nil
}

// MissingContracts returns the import paths referenced by servicegen
// directives in pkgs that are neither pkgs nor one of their dependencies,
// sorted.
func MissingContracts(pkgs []*packages.Package) []string {
	seen := make(map[string]bool)
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		seen[pkg.PkgPath] = true
	})

	var missing []string

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, group := range file.Comments {
				for _, c := range group.List {
					d, ok := directive.Parse(c.Text)
					if !ok {
						continue
					}

					for _, arg := range d.Args {
						if arg == directive.EmptyList || directive.IsLiteral(arg) {
							continue
						}

						ref, err := directive.ParseReference(arg)
						if err != nil || ref.PkgPath == "" || seen[ref.PkgPath] {
							continue
						}

						seen[ref.PkgPath] = true
						missing = append(missing, ref.PkgPath)
					}
				}
			}
		}
	}

	slices.Sort(missing)

	return missing
}

// Files lists the Go files of the packages matching patterns, sorted,
// without type-checking anything.
func Files(ctx context.Context, dir string, patterns ...string) ([]string, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles,
		Dir:     dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	if err := packageErrors(pkgs); err != nil {
		return nil, err
	}

	var files []string
	for _, pkg := range pkgs {
		files = append(files, pkg.GoFiles...)
	}

	slices.Sort(files)

	return slices.Compact(files), nil
}

// packageErrors joins the errors of pkgs and their dependencies.
func packageErrors(pkgs []*packages.Package) error {
	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrPackages, errors.Join(errs...))
}
