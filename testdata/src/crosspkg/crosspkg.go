// Package crosspkg contains test fixtures for contracts declared in other packages.
package crosspkg

import "contracts"

// ===== SHOULD NOT REPORT =====

// [GOOD]: Interface from an imported package
//
//servicegen:service contracts.Plugin
type Loader struct{}

func (Loader) Name() string { return "loader" }

// [GOOD]: Concrete contract through embedding
//
//servicegen:service contracts.Base, contracts.Plugin
type Derived struct {
	contracts.Base
}

// [GOOD]: Package outside the import graph cannot be decided and is skipped
//
//servicegen:service example.com/elsewhere.Contract
type Elsewhere struct{}

// ===== SHOULD REPORT =====

// [BAD]: Concrete contract without embedding
//
//servicegen:service contracts.Base
type Lookalike struct{} // want `crosspkg\.Lookalike does not implement contracts\.Base`

func (Lookalike) Name() string { return "lookalike" }

// [BAD]: Unknown type in an imported package
//
//servicegen:service contracts.Missing // want `Typo: cannot locate the type declaration for service contract contracts\.Missing`
type Typo struct{}
