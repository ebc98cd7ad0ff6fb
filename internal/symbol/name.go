package symbol

import "strings"

// Name identifies a declaration by package and enclosing path.
type Name struct {
	Package string
	Path    []string // outermost first; Go declarations have exactly one element
}

// NewName builds a Name from a package path and simple names.
func NewName(pkg string, path ...string) Name {
	return Name{Package: pkg, Path: path}
}

// Simple returns the innermost simple name.
func (n Name) Simple() string {
	if len(n.Path) == 0 {
		return ""
	}

	return n.Path[len(n.Path)-1]
}

// BinaryName returns the lookup name used in manifests.
// Nested path elements are joined with '$'.
func (n Name) BinaryName() string {
	return n.join("$")
}

// QualifiedName returns the source-level name, nested elements joined with '.'.
func (n Name) QualifiedName() string {
	return n.join(".")
}

// Equal reports whether both names denote the same declaration.
func (n Name) Equal(other Name) bool {
	if n.Package != other.Package || len(n.Path) != len(other.Path) {
		return false
	}

	for i := range n.Path {
		if n.Path[i] != other.Path[i] {
			return false
		}
	}

	return true
}

// String returns the qualified name.
func (n Name) String() string {
	return n.QualifiedName()
}

func (n Name) join(sep string) string {
	types := strings.Join(n.Path, sep)
	if n.Package == "" {
		return types
	}

	return n.Package + "." + types
}
