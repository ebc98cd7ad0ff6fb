package typeutil

import (
	"go/types"
)

// UnwrapPointer returns the element type if t is a pointer, otherwise returns t.
func UnwrapPointer(t types.Type) types.Type {
	if ptr, ok := t.(*types.Pointer); ok {
		return ptr.Elem()
	}

	return t
}

// NamedOf returns the generic origin of t if t is a (pointer to a) named type.
// Aliases are followed.
func NamedOf(t types.Type) (*types.Named, bool) {
	t = UnwrapPointer(types.Unalias(t))

	named, ok := t.(*types.Named)
	if !ok {
		return nil, false
	}

	return named.Origin(), true
}

// IsGeneric checks if t is a named type with type parameters.
func IsGeneric(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}

	return named.Origin().TypeParams().Len() > 0
}

// IsInvalid checks if t is the invalid placeholder type.
func IsInvalid(t types.Type) bool {
	basic, ok := t.(*types.Basic)
	return ok && basic.Kind() == types.Invalid
}

// ContainsInvalid checks if the invalid type is reachable from t without
// crossing a named type.
func ContainsInvalid(t types.Type) bool {
	switch tt := t.(type) {
	case nil:
		return false

	case *types.Basic:
		return tt.Kind() == types.Invalid

	case *types.Pointer:
		return ContainsInvalid(tt.Elem())

	case *types.Slice:
		return ContainsInvalid(tt.Elem())

	case *types.Array:
		return ContainsInvalid(tt.Elem())

	case *types.Chan:
		return ContainsInvalid(tt.Elem())

	case *types.Map:
		return ContainsInvalid(tt.Key()) || ContainsInvalid(tt.Elem())

	case *types.Tuple:
		for v := range tt.Variables() {
			if ContainsInvalid(v.Type()) {
				return true
			}
		}
		return false

	case *types.Signature:
		return ContainsInvalid(tt.Params()) || ContainsInvalid(tt.Results())

	case *types.Struct:
		for f := range tt.Fields() {
			if ContainsInvalid(f.Type()) {
				return true
			}
		}
		return false

	case *types.Interface:
		for m := range tt.ExplicitMethods() {
			if ContainsInvalid(m.Type()) {
				return true
			}
		}
		for e := range tt.EmbeddedTypes() {
			if IsInvalid(e) {
				return true
			}
		}
		return false

	default:
		// Named types and type parameters are resolved on their own.
		return false
	}
}

// SameShape reports whether got can stand for want once the type parameters
// of want are instantiated. Variadicity and arity must match. A parameter or
// result whose type in want mentions a type parameter only needs to exist;
// every other one must be identical.
func SameShape(got, want *types.Signature) bool {
	return got.Variadic() == want.Variadic() &&
		sameTuple(got.Params(), want.Params()) &&
		sameTuple(got.Results(), want.Results())
}

func sameTuple(got, want *types.Tuple) bool {
	if got.Len() != want.Len() {
		return false
	}

	for i := range want.Len() {
		w := want.At(i).Type()
		if MentionsTypeParam(w) {
			continue
		}

		if !types.Identical(got.At(i).Type(), w) {
			return false
		}
	}

	return true
}

// MentionsTypeParam reports whether t refers to a type parameter anywhere in
// its structure. Named types are inspected through their type arguments only.
func MentionsTypeParam(t types.Type) bool {
	switch tt := types.Unalias(t).(type) {
	case *types.TypeParam:
		return true

	case *types.Pointer:
		return MentionsTypeParam(tt.Elem())

	case *types.Slice:
		return MentionsTypeParam(tt.Elem())

	case *types.Array:
		return MentionsTypeParam(tt.Elem())

	case *types.Chan:
		return MentionsTypeParam(tt.Elem())

	case *types.Map:
		return MentionsTypeParam(tt.Key()) || MentionsTypeParam(tt.Elem())

	case *types.Signature:
		return tupleMentions(tt.Params()) || tupleMentions(tt.Results())

	case *types.Struct:
		for f := range tt.Fields() {
			if MentionsTypeParam(f.Type()) {
				return true
			}
		}
		return false

	case *types.Interface:
		for m := range tt.ExplicitMethods() {
			if MentionsTypeParam(m.Type()) {
				return true
			}
		}
		for e := range tt.EmbeddedTypes() {
			if MentionsTypeParam(e) {
				return true
			}
		}
		return false

	case *types.Named:
		for a := range tt.TypeArgs().Types() {
			if MentionsTypeParam(a) {
				return true
			}
		}
		return false

	default:
		return false
	}
}

func tupleMentions(tuple *types.Tuple) bool {
	for v := range tuple.Variables() {
		if MentionsTypeParam(v.Type()) {
			return true
		}
	}

	return false
}
