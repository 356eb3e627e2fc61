package ragged

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftlab/ragged/array"
	"github.com/driftlab/ragged/container"
	"github.com/driftlab/ragged/dataset"
	"github.com/driftlab/ragged/format"
)

func buildTestArchive(t *testing.T) (Names, dataset.LoadFunc) {
	t.Helper()

	entities := map[int64]*dataset.Mem{}
	for i, times := range [][]float64{{0, 1}, {10, 11, 12}} {
		id := int64(i + 1)

		ids := make([]int64, len(times))
		temps := make([]float64, len(times))
		for j := range times {
			ids[j] = id
			temps[j] = times[j] / 2
		}

		ds := dataset.NewMem(len(times))
		ds.SetVar("time", array.New(times)).
			SetVar("id", array.New(ids)).
			SetVar("temp", array.New(temps))
		ds.SetAttr("title", "wrapper test")
		entities[id] = ds
	}

	names := Names{
		Coords:   []string{"time"},
		Metadata: []string{"id"},
		Data:     []string{"temp"},
	}
	load := func(id int64) (dataset.Dataset, error) {
		return entities[id], nil
	}

	return names, load
}

func TestEndToEnd_BuildEncodeDecodeUnpack(t *testing.T) {
	names, load := buildTestArchive(t)

	arc, diags, err := FromDatasets([]int64{1, 2}, load, names)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Equal(t, 2, arc.NumTraj())
	require.Equal(t, 5, arc.NumObs())

	c, err := arc.ToContainer()
	require.NoError(t, err)

	blob, err := Encode(c, container.WithCompression(format.CompressionZstd))
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)

	restored, diags, err := FromContainer(decoded)
	require.NoError(t, err)
	require.Empty(t, diags)

	require.True(t, array.Equal(arc.Coords["time"], restored.Coords["time"]))
	require.True(t, array.Equal(arc.Metadata["id"], restored.Metadata["id"]))
	require.True(t, array.Equal(arc.Data["temp"], restored.Data["temp"]))
	require.Equal(t, "wrapper test", restored.GlobalAttrs["title"])

	times, ok := array.Values[float64](restored.Coords["time"])
	require.True(t, ok)

	rows, err := UnpackTyped(times, []int64{2, 3})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 1}, {10, 11, 12}}, rows)
}

func TestUnpack_Wrapper(t *testing.T) {
	flat := array.New([]float64{0, 1, 10, 11, 12})

	views, err := Unpack(flat, []int64{2, 3})
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, 2, views[0].Len())
	require.Equal(t, 3, views[1].Len())
}
