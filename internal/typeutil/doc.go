// Package typeutil provides go/types helpers for servicegen.
//
// # Overview
//
// The resolver needs three questions answered about a type:
//
//   - which named type is behind it ([NamedOf], following pointers and aliases)
//   - whether it still contains unresolved parts ([ContainsInvalid])
//   - whether it is generic ([IsGeneric])
//
// # Unresolved Types
//
// go/types represents a type it could not resolve as types.Typ[types.Invalid].
// [ContainsInvalid] walks composite types (pointers, slices, maps, channels,
// signatures, structs, interfaces) but stops at named types, which are
// checked separately:
//
//	ContainsInvalid(func(missing.T) error)  // true when missing.T failed to resolve
//	ContainsInvalid(func(io.Reader))        // false
//
// # Generic Types
//
// Generic implementations are compared by method shape, see [SameShape].
// Positions typed by a type parameter of the contract match anything, the
// rest must be identical:
//
//	type Service[T any] interface { Get() T; Size() int }
//	func (p *Provider[T]) Get() T      // matches
//	func (p *Provider[T]) Size() int   // matches
//	func (p *Provider[T]) Size() string // does not match
package typeutil
