package symbol

import "go/token"

// Kind classifies a type declaration.
type Kind int

const (
	// Concrete is a named type that can be instantiated (struct, basic, func, ...).
	Concrete Kind = iota
	// Interface is a named interface type.
	Interface
	// Alias is a type alias.
	Alias
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case Concrete:
		return "concrete type"
	case Interface:
		return "interface"
	case Alias:
		return "type alias"
	default:
		return "unknown"
	}
}

// Declaration is a named type declaration.
type Declaration struct {
	Name        Name
	Kind        Kind
	Local       bool      // declared inside a function body
	File        string    // originating source unit
	Pos         token.Pos // position of the type name
	TypeParams  int
	Annotations []*Annotation
}

// Annotation is a marker instance attached to a declaration.
type Annotation struct {
	Type      *Declaration // identity compared by pointer
	Arguments []Argument
	Pos       token.Pos
}

// Argument is a named annotation argument. Value is opaque and must be
// decoded by the consumer.
type Argument struct {
	Name  string
	Value any
	Pos   token.Pos
}

// Argument returns the argument bound to name.
func (a *Annotation) Argument(name string) (Argument, bool) {
	for _, arg := range a.Arguments {
		if arg.Name == name {
			return arg, true
		}
	}

	return Argument{}, false
}

// TypeRefState tags a TypeRef.
type TypeRefState int

const (
	// StateResolved means the reference maps to a declaration.
	StateResolved TypeRefState = iota
	// StateUnresolved is a placeholder for a type not resolved yet.
	StateUnresolved
	// StateUndeclared means the reference cannot map to any declaration.
	StateUndeclared
)

// TypeRef is a reference to a type as written in source.
type TypeRef struct {
	state TypeRefState
	text  string
	decl  *Declaration
	pos   token.Pos
}

// Resolved returns a reference to decl.
func Resolved(decl *Declaration) TypeRef {
	return TypeRef{state: StateResolved, text: decl.Name.QualifiedName(), decl: decl}
}

// Unresolved returns a placeholder reference.
func Unresolved(text string) TypeRef {
	return TypeRef{state: StateUnresolved, text: text}
}

// Undeclared returns a reference that maps to no declaration.
func Undeclared(text string) TypeRef {
	return TypeRef{state: StateUndeclared, text: text}
}

// At returns a copy of r attributed to pos.
func (r TypeRef) At(pos token.Pos) TypeRef {
	r.pos = pos
	return r
}

// State returns the tag.
func (r TypeRef) State() TypeRefState {
	return r.state
}

// IsError reports whether r is an unresolved placeholder.
func (r TypeRef) IsError() bool {
	return r.state == StateUnresolved
}

// Declaration returns the referenced declaration, if resolved.
func (r TypeRef) Declaration() (*Declaration, bool) {
	if r.state != StateResolved {
		return nil, false
	}

	return r.decl, true
}

// Pos returns the position the reference was written at, if known.
func (r TypeRef) Pos() token.Pos {
	return r.pos
}

// String returns the reference as written.
func (r TypeRef) String() string {
	return r.text
}
