package directive

import (
	"go/token"
	"strings"
	"unicode"
)

// Prefix starts every servicegen directive.
const Prefix = "servicegen:"

// Directive is a parsed //servicegen:<name> comment.
type Directive struct {
	Name string
	Args []string
	Pos  token.Pos
}

// Parse parses a comment text. It returns false if the comment is not a
// servicegen directive.
//
// Supported formats:
//   - //servicegen:service                      -> no arguments
//   - //servicegen:service io.Reader            -> one argument
//   - //servicegen:service a.B, c.D             -> several arguments
//   - //servicegen:service a.B - reason         -> arguments with comment
//   - //servicegen:service {}                   -> explicitly empty list
func Parse(text string) (Directive, bool) {
	if !strings.HasPrefix(text, "//") {
		return Directive{}, false
	}

	text = strings.TrimSpace(strings.TrimPrefix(text, "//"))
	if !strings.HasPrefix(text, Prefix) {
		return Directive{}, false
	}

	rest := strings.TrimPrefix(text, Prefix)

	name, args, _ := strings.Cut(rest, " ")
	if i := strings.IndexFunc(name, unicode.IsSpace); i >= 0 {
		name, args = name[:i], name[i:]+" "+args
	}

	return Directive{Name: name, Args: splitArgs(args)}, true
}

// splitArgs splits the argument part, dropping any trailing comment.
func splitArgs(s string) []string {
	s = " " + s
	if idx := strings.Index(s, " - "); idx >= 0 {
		s = s[:idx]
	}
	if idx := strings.Index(s, " //"); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)
	if s == "-" {
		return nil
	}

	return fields(s)
}

// fields splits s on commas and spaces outside of brackets, so that
// "pkg.Pair[int, string]" stays one argument.
func fields(s string) []string {
	var (
		out   []string
		depth int
		start = -1
	)

	for i, r := range s {
		switch {
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case depth == 0 && (r == ',' || unicode.IsSpace(r)):
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}

	if start >= 0 {
		out = append(out, s[start:])
	}

	return out
}
