// Package ragged assembles collections of variable-length per-entity time
// series (e.g. trajectories) into contiguous ragged array archives.
//
// A ragged array stores one flat buffer per variable plus an offset table
// derived from the per-entity row sizes. Entity i's contribution to each
// per-observation buffer occupies [index[i], index[i+1]), where index is the
// running sum of row sizes. The inverse operation, Unpack, recovers the
// per-entity views from the flat buffer without copying.
//
// # Core Features
//
//   - Dtype-aware buffer allocation sized from aggregated per-entity lengths
//   - Entity-by-entity fill with scoped dataset acquisition and optional
//     parallel fan-out over disjoint offset windows
//   - Non-fatal conditions surfaced as a diagnostics list, not log output
//   - Lossless adaptation to and from a generic tabular container
//   - Self-describing binary container encoding with optional
//     Zstd/S2/LZ4 compression and xxHash64 payload checksums
//
// # Basic Usage
//
// Building an archive from per-entity datasets:
//
//	import "github.com/driftlab/ragged"
//
//	load := func(id int64) (dataset.Dataset, error) {
//	    return openTrajectory(id) // caller-supplied
//	}
//
//	arc, diags, err := ragged.FromDatasets(
//	    []int64{1, 2, 3},
//	    load,
//	    ragged.Names{
//	        Coords:   []string{"time"},
//	        Metadata: []string{"id"},
//	        Data:     []string{"temperature"},
//	    },
//	)
//
// Recovering per-entity views from a flat buffer:
//
//	rows, _ := ragged.UnpackTyped(times, rowsize)
//	for _, row := range rows {
//	    process(row)
//	}
//
// Persisting through the tabular container:
//
//	c, _ := arc.ToContainer()
//	blob, _ := ragged.Encode(c, container.WithCompression(format.CompressionZstd))
//	c2, _ := ragged.Decode(blob)
//	arc2, _, _ := ragged.FromContainer(c2)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the archive,
// array, and container packages, simplifying the most common use cases. For
// fine-grained control, use those packages directly.
package ragged

import (
	"github.com/driftlab/ragged/archive"
	"github.com/driftlab/ragged/array"
	"github.com/driftlab/ragged/container"
	"github.com/driftlab/ragged/dataset"
)

// Names lists the variables to include in an archive, split by role.
// It is re-exported from the archive package.
type Names = archive.Names

// FromDatasets builds a ragged archive from an ordered list of entity
// identifiers and a loader function. See archive.FromDatasets.
func FromDatasets(ids []int64, load dataset.LoadFunc, names Names, opts ...archive.BuildOption) (*archive.Archive, []archive.Diagnostic, error) {
	return archive.FromDatasets(ids, load, names, opts...)
}

// FromContainer builds an archive from an existing tabular container.
// See archive.FromContainer.
func FromContainer(c *container.Container) (*archive.Archive, []archive.Diagnostic, error) {
	return archive.FromContainer(c)
}

// Unpack splits a flat ragged buffer into per-entity views sharing the
// input's backing storage. See array.Unpack.
func Unpack(a array.Array, rowsize []int64) ([]array.Array, error) {
	return array.Unpack(a, rowsize)
}

// UnpackTyped splits a flat typed slice into per-entity sub-slices sharing
// the input's backing storage. See array.UnpackTyped.
func UnpackTyped[T array.Element](values []T, rowsize []int64) ([][]T, error) {
	return array.UnpackTyped(values, rowsize)
}

// Encode serializes a container into a self-describing binary blob.
// See container.Encode.
func Encode(c *container.Container, opts ...container.EncodeOption) ([]byte, error) {
	return container.Encode(c, opts...)
}

// Decode reconstructs a container from a blob produced by Encode.
// See container.Decode.
func Decode(data []byte) (*container.Container, error) {
	return container.Decode(data)
}
