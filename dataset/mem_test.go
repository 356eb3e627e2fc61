package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftlab/ragged/array"
	"github.com/driftlab/ragged/errs"
)

func TestMem_Basics(t *testing.T) {
	ds := NewMem(3)
	ds.SetVar("time", array.New([]float64{0, 1, 2})).
		SetVar("temp", array.New([]float64{10, 11, 12}))
	ds.SetVarAttrs("time", map[string]string{"units": "s"})
	ds.SetAttr("title", "memory dataset")

	require.Equal(t, 3, ds.Len())
	require.True(t, ds.Has("time"))
	require.False(t, ds.Has("depth"))

	a, err := ds.Get("time")
	require.NoError(t, err)
	require.Equal(t, 3, a.Len())

	require.Equal(t, map[string]string{"units": "s"}, ds.VarAttrs("time"))
	require.Equal(t, "memory dataset", ds.Attrs()["title"])

	require.NoError(t, ds.Close())
}

func TestMem_GetMissing(t *testing.T) {
	ds := NewMem(1)

	_, err := ds.Get("nope")
	require.ErrorIs(t, err, errs.ErrVariableNotFound)
}

func TestMem_VarAttrsMissing(t *testing.T) {
	ds := NewMem(1)
	ds.SetVar("x", array.New([]float64{1}))

	require.Empty(t, ds.VarAttrs("x"))
	require.Empty(t, ds.VarAttrs("absent"))
}
