// Package archive assembles variable-length per-entity series into ragged
// array archives and adapts them to and from the tabular container model.
//
// An Archive holds one flat buffer per variable plus attribute maps. Buffers
// come in two lengths: coordinate and data variables span the total
// observation count across all entities, metadata variables carry one scalar
// per entity. The offset table built from the per-entity row sizes (see
// array.Index) records where each entity's contribution begins and ends.
//
// Archives are built either from a sequence of entity datasets
// (FromDatasets) or from an existing container (FromContainer). Both paths
// return the archive together with the list of non-fatal diagnostics
// encountered along the way.
package archive

import (
	"github.com/driftlab/ragged/array"
)

// Archive is a ragged array archive: one flat buffer per variable plus
// archive-wide and per-variable attribute maps.
//
// Invariants after construction:
//   - every Coords and Data array has length nb_obs (sum of row sizes)
//   - every Metadata array has length nb_traj (number of entities)
//   - every variable key in Coords, Metadata, or Data has an entry in
//     VarAttrs, possibly empty
type Archive struct {
	// Coords maps variable names to per-observation coordinate buffers.
	Coords map[string]array.Array
	// Metadata maps variable names to per-entity scalar buffers.
	Metadata map[string]array.Array
	// Data maps variable names to per-observation data buffers.
	Data map[string]array.Array
	// GlobalAttrs holds archive-wide attributes.
	GlobalAttrs map[string]string
	// VarAttrs maps variable names to their attribute maps.
	VarAttrs map[string]map[string]string
}

// New constructs an Archive from pre-built variable maps.
//
// Nil maps are replaced with empty ones, and missing per-variable attribute
// entries are backfilled with empty maps so the attribute-completeness
// invariant holds on every construction path.
func New(
	coords, metadata, data map[string]array.Array,
	globalAttrs map[string]string,
	varAttrs map[string]map[string]string,
) *Archive {
	if coords == nil {
		coords = make(map[string]array.Array)
	}
	if metadata == nil {
		metadata = make(map[string]array.Array)
	}
	if data == nil {
		data = make(map[string]array.Array)
	}
	if globalAttrs == nil {
		globalAttrs = make(map[string]string)
	}
	if varAttrs == nil {
		varAttrs = make(map[string]map[string]string)
	}

	a := &Archive{
		Coords:      coords,
		Metadata:    metadata,
		Data:        data,
		GlobalAttrs: globalAttrs,
		VarAttrs:    varAttrs,
	}
	a.validateAttributes()

	return a
}

// validateAttributes ensures every variable key has an attribute entry,
// inserting an empty map where attribute collection skipped a variable.
func (a *Archive) validateAttributes() {
	for _, vars := range []map[string]array.Array{a.Coords, a.Metadata, a.Data} {
		for key := range vars {
			if _, ok := a.VarAttrs[key]; !ok {
				a.VarAttrs[key] = make(map[string]string)
			}
		}
	}
}

// NumTraj returns the entity count, taken from any metadata buffer.
// Returns 0 if the archive has no metadata variables.
func (a *Archive) NumTraj() int {
	for _, values := range a.Metadata {
		return values.Len()
	}

	return 0
}

// NumObs returns the total observation count, taken from any coordinate or
// data buffer. Returns 0 if the archive has neither.
func (a *Archive) NumObs() int {
	for _, values := range a.Coords {
		return values.Len()
	}
	for _, values := range a.Data {
		return values.Len()
	}

	return 0
}

func cloneAttrs(attrs map[string]string) map[string]string {
	cloned := make(map[string]string, len(attrs))
	for key, value := range attrs {
		cloned[key] = value
	}

	return cloned
}
