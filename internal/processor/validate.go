package processor

import "github.com/mpyw/servicegen/internal/symbol"

// Outcome is the result of validating one (candidate, contract) pair.
type Outcome int

// Validation outcomes.
const (
	Accept Outcome = iota
	Reject
	Defer
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Accept:
		return "ACCEPT"
	case Reject:
		return "REJECT"
	case Defer:
		return "DEFER"
	default:
		return "UNKNOWN"
	}
}

// Validator checks that candidates implement their contracts.
type Validator struct {
	// Verify enables the check. When false every pair is accepted.
	Verify bool
}

// Validate decides whether candidate implements contract.
//
// The supertype closure is computed first; any unresolved member defers the
// decision. Membership is tested on declaration names, so instantiation
// arguments never matter.
func (v Validator) Validate(res symbol.Resolver, candidate, contract *symbol.Declaration) Outcome {
	if !v.Verify {
		return Accept
	}

	closure, complete := AllSupertypes(res, candidate)
	if !complete {
		return Defer
	}

	for _, super := range closure {
		if super.Name.Equal(contract.Name) {
			return Accept
		}
	}

	if res.Implements(candidate, contract) {
		return Accept
	}

	return Reject
}

// AllSupertypes returns the transitive supertypes of decl, excluding decl.
// It returns false as soon as an unresolved supertype is met.
func AllSupertypes(res symbol.Resolver, decl *symbol.Declaration) ([]*symbol.Declaration, bool) {
	var closure []*symbol.Declaration

	seen := map[string]bool{decl.Name.BinaryName(): true}
	queue := []*symbol.Declaration{decl}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, ref := range res.Supertypes(current) {
			if ref.IsError() {
				return nil, false
			}

			super, ok := ref.Declaration()
			if !ok {
				continue
			}

			key := super.Name.BinaryName()
			if seen[key] {
				continue
			}

			seen[key] = true
			closure = append(closure, super)
			queue = append(queue, super)
		}
	}

	return closure, true
}
