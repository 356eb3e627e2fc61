package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElemType(t *testing.T) {
	tests := []struct {
		et    ElemType
		name  string
		size  int
		valid bool
	}{
		{TypeFloat64, "Float64", 8, true},
		{TypeFloat32, "Float32", 4, true},
		{TypeInt64, "Int64", 8, true},
		{TypeInt32, "Int32", 4, true},
		{TypeString, "String", 0, true},
		{ElemType(0x00), "Unknown", 0, false},
		{ElemType(0xFF), "Unknown", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.name, tt.et.String())
			require.Equal(t, tt.size, tt.et.Size())
			require.Equal(t, tt.valid, tt.et.Valid())
		})
	}
}

func TestCompressionType(t *testing.T) {
	for _, ct := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		require.True(t, ct.Valid())
		require.NotEqual(t, "Unknown", ct.String())
	}

	require.False(t, CompressionType(0xFF).Valid())
	require.Equal(t, "Unknown", CompressionType(0xFF).String())
}
