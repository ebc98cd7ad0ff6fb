// Package trust contains test fixtures for runs without verification.
package trust

import "io"

// ===== SHOULD NOT REPORT =====

// [GOOD]: Not checked when verification is off
//
//servicegen:service io.Reader
type Unchecked struct{ src io.Reader }

// ===== SHOULD REPORT =====

// [BAD]: Contracts must still exist
//
//servicegen:service Missing // want `Ghost: cannot locate the type declaration for service contract Missing`
type Ghost struct{}
