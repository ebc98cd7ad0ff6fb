// Package basic contains test fixtures for services declared in one package.
// See invalid for malformed markers and misplaced for directives that mark nothing.
package basic

import (
	"fmt"
	"io"
)

// Plugin is a contract declared next to its implementations.
type Plugin interface {
	Name() string
}

// ===== SHOULD NOT REPORT =====

// [GOOD]: Implements a stdlib interface
//
//servicegen:service io.Reader
type Source struct{}

func (Source) Read(p []byte) (int, error) { return 0, io.EOF }

// [GOOD]: Several contracts, bare and qualified
//
//servicegen:service fmt.Stringer, Plugin
type Named struct{}

func (Named) String() string { return "named" }
func (Named) Name() string { return "named" }

// [GOOD]: Repeated marker lines merge
//
//servicegen:service fmt.Stringer
//servicegen:service basic.Plugin - same as Plugin
type Repeated struct{ Named }

// [GOOD]: Pointer receiver
//
//servicegen:service io.Writer
type Sink struct{}

func (*Sink) Write(p []byte) (int, error) { return len(p), nil }

// [GOOD]: Embedded contract
//
//servicegen:service Named
type Extended struct {
	*Named
}

type (
	// [GOOD]: Marker inside a type group
	//
	//servicegen:service error
	Failure struct{}

	unmarked struct{}
)

func (Failure) Error() string { return "failure" }

// [GOOD]: Marked types that are also used normally
func use() {
	var _ fmt.Stringer = Named{}
	_ = unmarked{}
}

// ===== SHOULD REPORT =====

// [BAD]: Does not implement the contract
//
//servicegen:service io.Writer
type ReadOnly struct{} // want `types marked with //servicegen:service must implement their service contracts: basic\.ReadOnly does not implement io\.Writer`

func (ReadOnly) Read(p []byte) (int, error) { return 0, io.EOF }

// [BAD]: Implements only one of two contracts
//
//servicegen:service io.Reader, Plugin
type Half struct{} // want `basic\.Half does not implement basic\.Plugin`

func (Half) Read(p []byte) (int, error) { return 0, io.EOF }

// [BAD]: Method with the wrong signature
//
//servicegen:service fmt.Stringer
type WrongSignature struct{} // want `basic\.WrongSignature does not implement fmt\.Stringer`

func (WrongSignature) String(verbose bool) string { return "" }
