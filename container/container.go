// Package container provides the generic tabular container model for ragged
// archives, plus a binary codec for lossless persistence.
//
// A Container carries two dimension sizes (entity count and observation
// count), named coordinate variables keyed on the observation dimension,
// named data variables keyed on either dimension, and attribute maps at the
// container and variable level. The archive adapter classifies data
// variables purely by comparing their length to the two dimension sizes; the
// container itself does not police variable lengths.
//
// # Binary Format
//
// Encode serializes a container into a single self-describing blob:
//
//	┌────────────────┬───────────────┬────────────────┬───────────────┐
//	│ Header (40B)   │ Index entries │ Attrs payload  │ Data payload  │
//	│                │ (24B each)    │ (compressed)   │ (compressed)  │
//	└────────────────┴───────────────┴────────────────┴───────────────┘
//
// The header records dimension sizes, section offsets, the compression type,
// the byte order, and an xxHash64 checksum of both compressed payloads. Each
// index entry records a variable's name hash, element type, kind (coordinate
// or data), element count, and its byte window in the uncompressed data
// payload. The attrs payload holds variable names and all attribute maps;
// the data payload holds the flat array values.
package container

import (
	"github.com/driftlab/ragged/array"
)

// Variable pairs a flat array with its attribute map.
type Variable struct {
	Values array.Array
	Attrs  map[string]string
}

// Container is the in-memory tabular container.
type Container struct {
	// NumTraj is the entity-count dimension size.
	NumTraj int
	// NumObs is the observation-count dimension size.
	NumObs int
	// Coords holds coordinate variables, keyed on the observation dimension.
	Coords map[string]Variable
	// Data holds data variables, keyed on either dimension.
	Data map[string]Variable
	// Attrs holds container-level attributes.
	Attrs map[string]string
}

// New creates an empty container with the given dimension sizes.
func New(numTraj, numObs int) *Container {
	return &Container{
		NumTraj: numTraj,
		NumObs:  numObs,
		Coords:  make(map[string]Variable),
		Data:    make(map[string]Variable),
		Attrs:   make(map[string]string),
	}
}

// SetCoord adds or replaces a coordinate variable.
func (c *Container) SetCoord(name string, values array.Array, attrs map[string]string) {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	c.Coords[name] = Variable{Values: values, Attrs: attrs}
}

// SetData adds or replaces a data variable.
func (c *Container) SetData(name string, values array.Array, attrs map[string]string) {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	c.Data[name] = Variable{Values: values, Attrs: attrs}
}

// SetAttr sets one container-level attribute.
func (c *Container) SetAttr(key, value string) {
	c.Attrs[key] = value
}

// VarCount returns the total number of coordinate and data variables.
func (c *Container) VarCount() int {
	return len(c.Coords) + len(c.Data)
}
