package dataset

import (
	"fmt"

	"github.com/driftlab/ragged/array"
	"github.com/driftlab/ragged/errs"
)

// Mem is an in-memory Dataset implementation.
//
// It is the reference implementation used by tests and demos, and a
// convenient adapter when entity data is already decoded in memory.
// Variables added with SetVar share storage with the caller's arrays.
type Mem struct {
	obsLen   int
	vars     map[string]array.Array
	attrs    map[string]string
	varAttrs map[string]map[string]string
}

var _ Dataset = (*Mem)(nil)

// NewMem creates an empty in-memory dataset with the given
// observation-dimension size.
func NewMem(obsLen int) *Mem {
	return &Mem{
		obsLen:   obsLen,
		vars:     make(map[string]array.Array),
		attrs:    make(map[string]string),
		varAttrs: make(map[string]map[string]string),
	}
}

// SetVar adds or replaces a named variable. Returns the receiver for chaining.
func (m *Mem) SetVar(name string, values array.Array) *Mem {
	m.vars[name] = values
	return m
}

// SetVarAttrs sets the named variable's attribute map.
// Returns the receiver for chaining.
func (m *Mem) SetVarAttrs(name string, attrs map[string]string) *Mem {
	m.varAttrs[name] = attrs
	return m
}

// SetAttr sets one dataset-level attribute. Returns the receiver for chaining.
func (m *Mem) SetAttr(key, value string) *Mem {
	m.attrs[key] = value
	return m
}

// Len returns the observation-dimension size.
func (m *Mem) Len() int {
	return m.obsLen
}

// Has reports whether the named variable exists.
func (m *Mem) Has(name string) bool {
	_, ok := m.vars[name]
	return ok
}

// Get returns the named variable's flat array.
func (m *Mem) Get(name string) (array.Array, error) {
	values, ok := m.vars[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrVariableNotFound, name)
	}

	return values, nil
}

// Attrs returns the dataset-level attribute map.
func (m *Mem) Attrs() map[string]string {
	return m.attrs
}

// VarAttrs returns the named variable's attribute map, or nil if the
// variable has none.
func (m *Mem) VarAttrs(name string) map[string]string {
	return m.varAttrs[name]
}

// Close is a no-op for in-memory datasets.
func (m *Mem) Close() error {
	return nil
}
