// Package array provides dtype-aware flat arrays for ragged archives.
//
// A ragged archive stores one flat buffer per variable. Buffers are typed:
// each one holds float64, float32, int64, int32, or string elements, selected
// at allocation time from the variable's element type. The Array interface
// erases the element type so heterogeneous variables can live in one map,
// while Typed[T] gives zero-copy access to the underlying slice.
//
// Sub-arrays created with View share the backing storage of their parent.
// This makes per-entity slicing allocation-free: unpacking a ragged buffer
// into entity views touches no element data.
package array

import (
	"fmt"

	"github.com/driftlab/ragged/errs"
	"github.com/driftlab/ragged/format"
)

// Element constrains the element types a flat array can hold.
type Element interface {
	float64 | float32 | int64 | int32 | string
}

// Array is a type-erased view of a flat typed buffer.
//
// The concrete implementations are the five Typed[T] instantiations.
// Use Values to recover the typed slice, or CopyAt to move elements between
// arrays of the same element type.
type Array interface {
	// Type returns the element type of the array.
	Type() format.ElemType

	// Len returns the number of elements.
	Len() int

	// View returns a non-owning sub-array covering [i, j).
	// The view shares backing storage with the receiver.
	View(i, j int) (Array, error)
}

// Typed is a flat array of a single element type.
// The zero value is an empty array.
type Typed[T Element] struct {
	values []T
}

// New wraps an existing slice as a Typed array without copying.
// The array shares backing storage with the slice.
func New[T Element](values []T) Typed[T] {
	return Typed[T]{values: values}
}

// Make allocates a zero-filled Typed array of length n.
func Make[T Element](n int) Typed[T] {
	return Typed[T]{values: make([]T, n)}
}

// Zeros allocates a zero-filled array of length n with the given element type.
// This is the dtype-aware allocation used when sizing archive buffers from a
// schema. Returns ErrInvalidElemType for unknown element types.
func Zeros(et format.ElemType, n int) (Array, error) {
	switch et {
	case format.TypeFloat64:
		return Make[float64](n), nil
	case format.TypeFloat32:
		return Make[float32](n), nil
	case format.TypeInt64:
		return Make[int64](n), nil
	case format.TypeInt32:
		return Make[int32](n), nil
	case format.TypeString:
		return Make[string](n), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidElemType, et)
	}
}

// Type returns the element type of the array.
func (a Typed[T]) Type() format.ElemType {
	switch any(a.values).(type) {
	case []float64:
		return format.TypeFloat64
	case []float32:
		return format.TypeFloat32
	case []int64:
		return format.TypeInt64
	case []int32:
		return format.TypeInt32
	default:
		return format.TypeString
	}
}

// Len returns the number of elements.
func (a Typed[T]) Len() int {
	return len(a.values)
}

// At returns the element at position i.
func (a Typed[T]) At(i int) T {
	return a.values[i]
}

// Values returns the underlying slice without copying.
// Mutating the returned slice mutates the array.
func (a Typed[T]) Values() []T {
	return a.values
}

// View returns a non-owning sub-array covering [i, j).
func (a Typed[T]) View(i, j int) (Array, error) {
	if i < 0 || j < i || j > len(a.values) {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", errs.ErrInvalidRange, i, j, len(a.values))
	}

	return Typed[T]{values: a.values[i:j]}, nil
}

// Values recovers the typed slice from a type-erased Array.
// Returns false if the array's element type does not match T.
func Values[T Element](a Array) ([]T, bool) {
	typed, ok := a.(Typed[T])
	if !ok {
		return nil, false
	}

	return typed.values, true
}

// CopyAt copies every element of src into dst starting at offset off.
// Both arrays must share the same element type, and src must fit within
// dst's bounds. The copy targets dst's backing storage in place.
func CopyAt(dst Array, off int, src Array) error {
	if dst.Type() != src.Type() {
		return fmt.Errorf("%w: dst %s, src %s", errs.ErrElemTypeMismatch, dst.Type(), src.Type())
	}
	if off < 0 || off+src.Len() > dst.Len() {
		return fmt.Errorf("%w: [%d, %d) of %d", errs.ErrInvalidRange, off, off+src.Len(), dst.Len())
	}

	switch d := dst.(type) {
	case Typed[float64]:
		copy(d.values[off:], src.(Typed[float64]).values)
	case Typed[float32]:
		copy(d.values[off:], src.(Typed[float32]).values)
	case Typed[int64]:
		copy(d.values[off:], src.(Typed[int64]).values)
	case Typed[int32]:
		copy(d.values[off:], src.(Typed[int32]).values)
	case Typed[string]:
		copy(d.values[off:], src.(Typed[string]).values)
	default:
		return fmt.Errorf("%w: %s", errs.ErrInvalidElemType, dst.Type())
	}

	return nil
}

// Equal reports whether two arrays have the same element type, length, and
// element values.
func Equal(a, b Array) bool {
	if a.Type() != b.Type() || a.Len() != b.Len() {
		return false
	}

	switch ta := a.(type) {
	case Typed[float64]:
		return sliceEqual(ta.values, b.(Typed[float64]).values)
	case Typed[float32]:
		return sliceEqual(ta.values, b.(Typed[float32]).values)
	case Typed[int64]:
		return sliceEqual(ta.values, b.(Typed[int64]).values)
	case Typed[int32]:
		return sliceEqual(ta.values, b.(Typed[int32]).values)
	case Typed[string]:
		return sliceEqual(ta.values, b.(Typed[string]).values)
	default:
		return false
	}
}

func sliceEqual[T comparable](a, b []T) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of the array with its own backing storage.
func Clone(a Array) Array {
	switch ta := a.(type) {
	case Typed[float64]:
		return cloneTyped(ta)
	case Typed[float32]:
		return cloneTyped(ta)
	case Typed[int64]:
		return cloneTyped(ta)
	case Typed[int32]:
		return cloneTyped(ta)
	case Typed[string]:
		return cloneTyped(ta)
	default:
		return a
	}
}

func cloneTyped[T Element](a Typed[T]) Typed[T] {
	values := make([]T, len(a.values))
	copy(values, a.values)

	return Typed[T]{values: values}
}
