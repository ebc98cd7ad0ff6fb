// Package misplaced contains test fixtures for directives that mark nothing.
package misplaced

import "io"

// ===== SHOULD NOT REPORT =====

// [GOOD]: Directive with a trailing comment
//
//servicegen:service io.Closer - closed by the host
type Handle struct{}

func (Handle) Close() error { return nil }

// ===== SHOULD REPORT =====

// [BAD]: On a function
//
//servicegen:service io.Closer // want `//servicegen:service must be placed in the doc comment of a type declaration`
func Open() io.Closer { return Handle{} }

// [BAD]: On a variable
//
//servicegen:service io.Closer // want `//servicegen:service must be placed in the doc comment of a type declaration`
var Default = Handle{}

// [BAD]: Separated from the type by a blank line
//
//servicegen:service io.Closer // want `//servicegen:service must be placed in the doc comment of a type declaration`

type Detached struct{}

// [BAD]: Typo in the directive name
//
//servicegen:servce io.Closer // want `unknown directive //servicegen:servce`
type Typo struct{}

func body() {
	//servicegen:service io.Closer // want `//servicegen:service must be placed in the doc comment of a type declaration`
	_ = Typo{}
}
