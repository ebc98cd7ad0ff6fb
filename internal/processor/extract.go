package processor

import (
	"fmt"

	"github.com/mpyw/servicegen/internal/diag"
	"github.com/mpyw/servicegen/internal/symbol"
)

// ValueArgument is the marker argument holding the contract list.
const ValueArgument = "value"

type decodeStatus int

const (
	decodeOK decodeStatus = iota
	decodeMissing
	decodeWrongShape
)

// decodeContracts decodes an opaque argument value into type references.
// A single reference is accepted as a one-element list.
func decodeContracts(value any) ([]symbol.TypeRef, decodeStatus) {
	switch v := value.(type) {
	case nil:
		return nil, decodeMissing
	case []symbol.TypeRef:
		return v, decodeOK
	case symbol.TypeRef:
		return []symbol.TypeRef{v}, decodeOK
	default:
		return nil, decodeWrongShape
	}
}

// findAnnotation returns the annotation instance whose type is marker.
// Types are compared by identity, not by name.
func findAnnotation(decl *symbol.Declaration, marker *symbol.Declaration) *symbol.Annotation {
	for _, ann := range decl.Annotations {
		if ann.Type == marker {
			return ann
		}
	}

	return nil
}

// extract returns the contract references requested by decl.
// It reports and returns false when the candidate must be skipped.
func (p *Processor) extract(decl, marker *symbol.Declaration) ([]symbol.TypeRef, bool) {
	ann := findAnnotation(decl, marker)
	if ann == nil {
		p.report(diag.AnnotationInstanceMissing, decl.Pos,
			"%s was selected for marker %s but carries no matching marker instance (please report this bug)",
			decl.Name.Simple(), marker.Name)
		return nil, false
	}

	arg, ok := ann.Argument(ValueArgument)
	if !ok {
		arg = symbol.Argument{Name: ValueArgument, Pos: ann.Pos}
	}

	pos := arg.Pos
	if !pos.IsValid() {
		pos = ann.Pos
	}

	refs, status := decodeContracts(arg.Value)

	switch status {
	case decodeMissing:
		p.report(diag.MissingArgumentValue, pos,
			"%s: marker argument %q has no value, expected a list of service contracts",
			decl.Name.Simple(), ValueArgument)
		return nil, false

	case decodeWrongShape:
		p.report(diag.MalformedArgumentType, pos,
			"%s: marker argument %q is %s, expected a list of type references",
			decl.Name.Simple(), ValueArgument, fmt.Sprintf("%T", arg.Value))
		return nil, false
	}

	if len(refs) == 0 {
		p.report(diag.EmptyContractList, pos,
			"%s: no service contracts specified, list at least one (e.g. //servicegen:service io.Reader)",
			decl.Name.Simple())
		return nil, false
	}

	return refs, true
}
