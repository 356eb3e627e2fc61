package array

import (
	"fmt"

	"github.com/driftlab/ragged/errs"
)

// Index builds the offset table for a row-size vector.
//
// The returned table has len(rowsize)+1 entries satisfying index[0] == 0,
// index[i] == index[i-1] + rowsize[i-1], so entity i's elements occupy
// [index[i], index[i+1]) in the flat buffer. The table is the single source
// of truth for slicing a ragged buffer.
func Index(rowsize []int64) []int64 {
	index := make([]int64, len(rowsize)+1)
	for i, size := range rowsize {
		index[i+1] = index[i] + size
	}

	return index
}

// Total returns the sum of a row-size vector, i.e. the flat buffer length.
func Total(rowsize []int64) int64 {
	var total int64
	for _, size := range rowsize {
		total += size
	}

	return total
}

// Unpack splits a flat ragged buffer into per-entity sub-arrays.
//
// Entity n's view covers [index[n], index[n+1]) of the flat buffer, where
// index is the offset table built from rowsize. The returned views share
// backing storage with the input array; no element data is copied. The
// result is indexable and can be iterated any number of times.
//
// Unpack is the exact inverse of the archive fill step: filling a buffer
// entity by entity and unpacking it reproduces the original per-entity
// arrays in order.
//
// Returns ErrInvalidRowSize if any row size is negative or the sizes do not
// sum to the array length.
func Unpack(a Array, rowsize []int64) ([]Array, error) {
	for i, size := range rowsize {
		if size < 0 {
			return nil, fmt.Errorf("%w: rowsize[%d] = %d", errs.ErrInvalidRowSize, i, size)
		}
	}
	if total := Total(rowsize); total != int64(a.Len()) {
		return nil, fmt.Errorf("%w: sum %d != array length %d", errs.ErrInvalidRowSize, total, a.Len())
	}

	index := Index(rowsize)
	views := make([]Array, len(rowsize))
	for n := range rowsize {
		view, err := a.View(int(index[n]), int(index[n+1]))
		if err != nil {
			return nil, err
		}
		views[n] = view
	}

	return views, nil
}

// UnpackTyped splits a flat typed buffer into per-entity slices.
//
// This is the typed fast path of Unpack: the returned slices share backing
// storage with values and carry no interface wrapping.
func UnpackTyped[T Element](values []T, rowsize []int64) ([][]T, error) {
	for i, size := range rowsize {
		if size < 0 {
			return nil, fmt.Errorf("%w: rowsize[%d] = %d", errs.ErrInvalidRowSize, i, size)
		}
	}
	if total := Total(rowsize); total != int64(len(values)) {
		return nil, fmt.Errorf("%w: sum %d != array length %d", errs.ErrInvalidRowSize, total, len(values))
	}

	index := Index(rowsize)
	rows := make([][]T, len(rowsize))
	for n := range rowsize {
		rows[n] = values[index[n]:index[n+1]]
	}

	return rows, nil
}
