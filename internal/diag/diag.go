// Package diag carries the diagnostics reported by the manifest processor.
package diag

import (
	"fmt"
	"go/token"
)

// Kind classifies a diagnostic.
type Kind int

const (
	// MarkerTypeUnavailable means the marker itself cannot be resolved. Fatal for the round.
	MarkerTypeUnavailable Kind = iota + 1
	// AnnotationInstanceMissing is an internal invariant violation.
	AnnotationInstanceMissing
	MissingArgumentValue
	MalformedArgumentType
	EmptyContractList
	ContractDeclarationUnresolvable
	ValidationRejected
	LocalOrAnonymousTypeUsed
	InvalidCandidateKind
	MisplacedMarker
	ManifestWriteFailure
)

var kindNames = map[Kind]string{
	MarkerTypeUnavailable:           "MarkerTypeUnavailable",
	AnnotationInstanceMissing:       "AnnotationInstanceMissing",
	MissingArgumentValue:            "MissingArgumentValue",
	MalformedArgumentType:           "MalformedArgumentType",
	EmptyContractList:               "EmptyContractList",
	ContractDeclarationUnresolvable: "ContractDeclarationUnresolvable",
	ValidationRejected:              "ValidationRejected",
	LocalOrAnonymousTypeUsed:        "LocalOrAnonymousTypeUsed",
	InvalidCandidateKind:            "InvalidCandidateKind",
	MisplacedMarker:                 "MisplacedMarker",
	ManifestWriteFailure:            "ManifestWriteFailure",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic is a single error attributed to a source position when known.
type Diagnostic struct {
	Kind    Kind
	Pos     token.Pos // token.NoPos for file-level or global errors
	Message string
}

// String returns "[Kind] message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s", d.Kind, d.Message)
}

// Reporter is the append-only diagnostics channel.
type Reporter interface {
	// Report records an error. Any reported error fails the build.
	Report(d Diagnostic)
	// Logf records a verbose trace line.
	Logf(format string, args ...any)
}

// Recorder is a Reporter that keeps everything in memory.
type Recorder struct {
	Diagnostics []Diagnostic
	Logs        []string
}

// Report implements Reporter.
func (r *Recorder) Report(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// Logf implements Reporter.
func (r *Recorder) Logf(format string, args ...any) {
	r.Logs = append(r.Logs, fmt.Sprintf(format, args...))
}

// HasErrors reports whether anything was reported.
func (r *Recorder) HasErrors() bool {
	return len(r.Diagnostics) > 0
}

// Kinds returns the kinds of all diagnostics in report order.
func (r *Recorder) Kinds() []Kind {
	kinds := make([]Kind, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		kinds[i] = d.Kind
	}

	return kinds
}

// Count returns the number of diagnostics of the given kind.
func (r *Recorder) Count(kind Kind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}

	return n
}
