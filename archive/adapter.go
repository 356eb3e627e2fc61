package archive

import (
	"fmt"

	"github.com/driftlab/ragged/array"
	"github.com/driftlab/ragged/container"
)

// FromContainer builds an archive from an existing tabular container.
//
// Coordinate variables always route to Coords. Each data variable is
// classified by comparing its length to the container's dimension sizes: a
// match on the entity count routes it to Metadata, a match on the
// observation count routes it to Data, and a length matching neither drops
// the variable with a diagnostic. When the two dimension sizes are equal,
// the entity-count match wins. Attributes are copied verbatim, including
// those of dropped variables.
//
// The archive owns its buffers: later mutations of the container do not
// affect it.
func FromContainer(c *container.Container) (*Archive, []Diagnostic, error) {
	if c == nil {
		return nil, nil, fmt.Errorf("cannot adapt nil container")
	}

	coords := make(map[string]array.Array, len(c.Coords))
	metadata := make(map[string]array.Array)
	data := make(map[string]array.Array)
	varAttrs := make(map[string]map[string]string, c.VarCount())
	var diags []Diagnostic

	for name, v := range c.Coords {
		coords[name] = array.Clone(v.Values)
		varAttrs[name] = cloneAttrs(v.Attrs)
	}

	for name, v := range c.Data {
		switch v.Values.Len() {
		case c.NumTraj:
			metadata[name] = array.Clone(v.Values)
		case c.NumObs:
			data[name] = array.Clone(v.Values)
		default:
			diags = append(diags, Diagnostic{
				Stage:    StageAdapt,
				Variable: name,
				Reason: fmt.Sprintf("unknown dimension size %d, not traj=%d or obs=%d; skipping",
					v.Values.Len(), c.NumTraj, c.NumObs),
			})
		}
		varAttrs[name] = cloneAttrs(v.Attrs)
	}

	return New(coords, metadata, data, cloneAttrs(c.Attrs), varAttrs), diags, nil
}

// ToContainer converts the archive to a tabular container.
//
// Every Coords entry becomes a coordinate variable on the observation
// dimension, every Metadata entry becomes a data variable on the entity
// dimension, and every Data entry becomes a data variable on the
// observation dimension, each carrying its attribute map. Global attributes
// attach to the container. The container owns its buffers: later mutations
// of the archive do not affect it.
//
// Returns an error if the archive's buffers disagree on a dimension size.
func (a *Archive) ToContainer() (*container.Container, error) {
	numObs := -1
	for _, group := range []map[string]array.Array{a.Coords, a.Data} {
		for name, values := range group {
			if numObs == -1 {
				numObs = values.Len()

				continue
			}
			if values.Len() != numObs {
				return nil, fmt.Errorf("variable %q has %d observations, expected %d", name, values.Len(), numObs)
			}
		}
	}
	if numObs == -1 {
		numObs = 0
	}

	numTraj := -1
	for name, values := range a.Metadata {
		if numTraj == -1 {
			numTraj = values.Len()

			continue
		}
		if values.Len() != numTraj {
			return nil, fmt.Errorf("metadata %q has %d entities, expected %d", name, values.Len(), numTraj)
		}
	}
	if numTraj == -1 {
		numTraj = 0
	}

	c := container.New(numTraj, numObs)
	for name, values := range a.Coords {
		c.SetCoord(name, array.Clone(values), cloneAttrs(a.VarAttrs[name]))
	}
	for name, values := range a.Metadata {
		c.SetData(name, array.Clone(values), cloneAttrs(a.VarAttrs[name]))
	}
	for name, values := range a.Data {
		c.SetData(name, array.Clone(values), cloneAttrs(a.VarAttrs[name]))
	}
	c.Attrs = cloneAttrs(a.GlobalAttrs)

	return c, nil
}
