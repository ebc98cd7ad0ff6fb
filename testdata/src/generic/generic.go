// Package generic contains test fixtures for generic services and contracts.
package generic

// Codec encodes values of one type.
type Codec[T any] interface {
	Encode(v T) ([]byte, error)
}

// Getter returns values of one type.
type Getter[T any] interface {
	Get() T
	Size() int
}

// ===== SHOULD NOT REPORT =====

// [GOOD]: Generic implementation of a generic contract
//
//servicegen:service Codec[T]
type JSON[T any] struct{}

func (JSON[T]) Encode(v T) ([]byte, error) { return nil, nil }

// [GOOD]: Concrete implementation of a generic contract
//
//servicegen:service Codec[string]
type Text struct{}

func (*Text) Encode(v string) ([]byte, error) { return []byte(v), nil }

// [GOOD]: Instantiation arguments with several types
//
//servicegen:service Pair[int, string]
type Both struct{ Pair[int, string] }

type Pair[K comparable, V any] struct{}

// [GOOD]: Type parameter positions match any type
//
//servicegen:service Getter
type Box[T any] struct{}

func (Box[T]) Get() T    { var v T; return v }
func (Box[T]) Size() int { return 1 }

// ===== SHOULD REPORT =====

// [BAD]: Wrong method shape
//
//servicegen:service Codec
type Broken[T any] struct{} // want `generic\.Broken does not implement generic\.Codec`

func (Broken[T]) Encode() {}

// [BAD]: Concrete result types still have to match
//
//servicegen:service Getter
type Sized[T any] struct{} // want `generic\.Sized does not implement generic\.Getter`

func (Sized[T]) Get() T       { var v T; return v }
func (Sized[T]) Size() string { return "" }
