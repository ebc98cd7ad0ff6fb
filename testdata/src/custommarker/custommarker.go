// Package custommarker contains test fixtures for a renamed marker.
package custommarker

import "io"

// ===== SHOULD NOT REPORT =====

// [GOOD]: Marked with the configured directive
//
//servicegen:plugin io.Closer
type Handle struct{}

func (Handle) Close() error { return nil }

var _ io.Closer = Handle{}

// ===== SHOULD REPORT =====

// [BAD]: Default directive name is unknown once renamed
//
//servicegen:service io.Closer // want `unknown directive //servicegen:service`
type Legacy struct{}

func (Legacy) Close() error { return nil }

// [BAD]: Checked like the default marker
//
//servicegen:plugin io.Closer
type Open struct{} // want `custommarker\.Open does not implement io\.Closer`
