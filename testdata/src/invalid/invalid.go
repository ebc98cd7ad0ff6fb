// Package invalid contains test fixtures for malformed service markers.
package invalid

import "io"

// ===== SHOULD REPORT =====

// [BAD]: No contracts at all
//
//servicegen:service // want `NoArgs: no service contracts specified, list at least one`
type NoArgs struct{}

// [BAD]: A nil contract list
//
//servicegen:service nil // want `Nil: marker argument "value" has no value, expected a list of service contracts`
type Nil struct{}

// [BAD]: Explicitly empty list
//
//servicegen:service {} // want `Empty: no service contracts specified, list at least one`
type Empty struct{}

// [BAD]: A literal instead of a type
//
//servicegen:service "io.Reader" // want `Literal: marker argument "value" is \[\]string, expected a list of type references`
type Literal struct{}

// [BAD]: Unknown type in the declaring package
//
//servicegen:service Missing // want `Orphan: cannot locate the type declaration for service contract Missing`
type Orphan struct{}

// [BAD]: Not a type
//
//servicegen:service Value // want `NotAType: cannot locate the type declaration for service contract Value`
type NotAType struct{}

var Value io.Reader

// [BAD]: Interfaces cannot provide services
//
//servicegen:service io.Reader
type Iface interface { // want `Iface: interface declarations cannot provide services, only concrete named types can`
	io.Reader
}

// [BAD]: Neither can aliases
//
//servicegen:service io.Reader
type Alias = io.Reader // want `Alias: type alias declarations cannot provide services`

// [BAD]: Local types have no binary name
func register() {
	//servicegen:service io.Closer
	type local struct{} // want `local: local and anonymous types cannot provide services`

	_ = func() {
		//servicegen:service io.Closer
		type nested struct{} // want `nested: local and anonymous types cannot provide services`
	}
}
