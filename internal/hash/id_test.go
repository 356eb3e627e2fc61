package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID_DistinctNames(t *testing.T) {
	require.Equal(t, ID("time"), ID("time"))
	require.NotEqual(t, ID("time"), ID("temp"))
	require.NotEqual(t, ID(""), ID("time"))
}

func TestSumParts_ConcatenationEquivalence(t *testing.T) {
	whole := SumParts([]byte("attrs payload|data payload"))
	parts := SumParts([]byte("attrs payload|"), []byte("data payload"))
	require.Equal(t, whole, parts)

	require.Equal(t, ID(""), SumParts())
	require.Equal(t, ID("x"), SumParts(nil, []byte("x"), nil))
}
