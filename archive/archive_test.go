package archive

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftlab/ragged/array"
)

func TestNew_BackfillsAttributeEntries(t *testing.T) {
	coords := map[string]array.Array{"time": array.New([]float64{0, 1})}
	metadata := map[string]array.Array{"id": array.New([]int64{7})}
	data := map[string]array.Array{"temp": array.New([]float64{3, 4})}

	// Only "time" arrives with attributes; the rest must be backfilled.
	varAttrs := map[string]map[string]string{
		"time": {"units": "s"},
	}

	a := New(coords, metadata, data, nil, varAttrs)

	require.Equal(t, map[string]string{"units": "s"}, a.VarAttrs["time"])
	require.NotNil(t, a.VarAttrs["id"])
	require.Empty(t, a.VarAttrs["id"])
	require.NotNil(t, a.VarAttrs["temp"])
	require.Empty(t, a.VarAttrs["temp"])
}

func TestNew_NilMaps(t *testing.T) {
	a := New(nil, nil, nil, nil, nil)

	require.NotNil(t, a.Coords)
	require.NotNil(t, a.Metadata)
	require.NotNil(t, a.Data)
	require.NotNil(t, a.GlobalAttrs)
	require.NotNil(t, a.VarAttrs)
	require.Zero(t, a.NumTraj())
	require.Zero(t, a.NumObs())
}

func TestArchive_Dimensions(t *testing.T) {
	a := New(
		map[string]array.Array{"time": array.New([]float64{0, 1, 2})},
		map[string]array.Array{"id": array.New([]int64{1, 2})},
		nil, nil, nil,
	)

	require.Equal(t, 2, a.NumTraj())
	require.Equal(t, 3, a.NumObs())
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Stage: StageAllocate, Variable: "temp", Reason: "missing"}
	require.Equal(t, `allocate: variable "temp": missing`, d.String())

	d = Diagnostic{Stage: StageFill, Variable: "temp", Entity: 42, HasEntity: true, Reason: "absent"}
	require.Equal(t, `fill: variable "temp", entity 42: absent`, d.String())
}
