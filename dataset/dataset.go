// Package dataset defines the entity-scoped dataset contract consumed by the
// archive builder.
//
// A Dataset exposes the named variables of a single entity (one trajectory,
// one sensor, one track): flat arrays keyed by name along a single
// observation dimension, plus attribute maps at the dataset and variable
// level. Datasets are produced by a caller-supplied LoadFunc, used while one
// entity is being copied into the archive buffers, and released with Close
// before the next entity is loaded.
package dataset

import (
	"github.com/driftlab/ragged/array"
)

// Dataset is the per-entity data source contract.
//
// Implementations typically wrap an open file handle or a decoded record.
// The builder guarantees scoped acquisition: Close is called exactly once
// after the entity's variables have been copied out, regardless of whether
// copying succeeded.
type Dataset interface {
	// Len returns the observation-dimension size: the number of samples
	// every per-observation variable in this dataset carries.
	Len() int

	// Has reports whether the named variable exists in this dataset.
	Has(name string) bool

	// Get returns the named variable's flat array.
	// The returned array may share storage with the dataset; callers copy
	// out of it before Close.
	Get(name string) (array.Array, error)

	// Attrs returns the dataset-level attribute map.
	Attrs() map[string]string

	// VarAttrs returns the named variable's attribute map.
	// Returns nil if the variable does not exist.
	VarAttrs(name string) map[string]string

	// Close releases the dataset's underlying resources.
	Close() error
}

// LoadFunc loads the dataset for one entity identifier.
//
// Loading may block on external I/O. A returned error is fatal to the
// archive build in progress; there are no retries.
type LoadFunc func(id int64) (Dataset, error)

// RowSizeFunc returns the observation count for one entity identifier
// without loading the full dataset.
//
// Supplying one to the builder avoids a full load pass whose only purpose
// is discovering sizes.
type RowSizeFunc func(id int64) (int64, error)
