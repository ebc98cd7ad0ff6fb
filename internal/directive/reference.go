package directive

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"golang.org/x/mod/module"
)

// ErrInvalidReference is returned for malformed type references.
var ErrInvalidReference = errors.New("invalid type reference")

// Reference is a parsed type reference.
// Format: "pkg/path.TypeName" or "TypeName".
type Reference struct {
	PkgPath  string // empty for the declaring package
	TypeName string
}

// String returns the reference in its parsed form.
func (r Reference) String() string {
	if r.PkgPath == "" {
		return r.TypeName
	}

	return r.PkgPath + "." + r.TypeName
}

// ParseReference parses a single type reference.
// A trailing instantiation such as "[int]" is dropped.
func ParseReference(s string) (Reference, error) {
	raw := s

	if idx := strings.IndexByte(s, '['); idx >= 0 {
		if !strings.HasSuffix(s, "]") {
			return Reference{}, fmt.Errorf("%w %q: unbalanced brackets", ErrInvalidReference, raw)
		}
		s = s[:idx]
	}

	lastDot := strings.LastIndex(s, ".")
	if lastDot == -1 {
		if !token.IsIdentifier(s) {
			return Reference{}, fmt.Errorf("%w %q", ErrInvalidReference, raw)
		}
		return Reference{TypeName: s}, nil
	}

	ref := Reference{
		PkgPath:  s[:lastDot],
		TypeName: s[lastDot+1:],
	}

	if !token.IsIdentifier(ref.TypeName) {
		return Reference{}, fmt.Errorf("%w %q: %q is not a type name", ErrInvalidReference, raw, ref.TypeName)
	}

	if err := module.CheckImportPath(ref.PkgPath); err != nil {
		return Reference{}, fmt.Errorf("%w %q: %w", ErrInvalidReference, raw, err)
	}

	return ref, nil
}

// EmptyList is the argument spelling of an explicitly empty list.
const EmptyList = "{}"

// IsLiteral reports whether arg is a constant literal rather than a type
// reference, e.g. "\"io.Reader\"" or "42".
func IsLiteral(arg string) bool {
	if arg == "" {
		return false
	}

	switch c := arg[0]; {
	case c == '"', c == '`', c == '\'':
		return true
	case c >= '0' && c <= '9':
		return true
	default:
		return arg == "true" || arg == "false" || arg == "nil"
	}
}
