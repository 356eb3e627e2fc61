package container

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftlab/ragged/array"
	"github.com/driftlab/ragged/errs"
	"github.com/driftlab/ragged/format"
	"github.com/driftlab/ragged/internal/hash"
)

func makeTestContainer() *Container {
	c := New(2, 5)
	c.SetCoord("time", array.New([]float64{0, 1, 10, 11, 12}), map[string]string{"units": "s"})
	c.SetData("id", array.New([]int64{5, 9}), map[string]string{"long_name": "entity id"})
	c.SetData("temp", array.New([]float64{1.5, 2.5, 3.5, 4.5, 5.5}), nil)
	c.SetData("flag", array.New([]int32{0, 1, 0, 1, 1}), nil)
	c.SetData("label", array.New([]string{"a", "bb", "", "dddd", "e"}), nil)
	c.SetData("ratio", array.New([]float32{0.5, 0.25}), nil)
	c.SetAttr("title", "codec test")
	c.SetAttr("institution", "driftlab")

	return c
}

func requireContainersEqual(t *testing.T, expected, actual *Container) {
	t.Helper()

	require.Equal(t, expected.NumTraj, actual.NumTraj)
	require.Equal(t, expected.NumObs, actual.NumObs)
	require.Equal(t, expected.Attrs, actual.Attrs)

	require.Len(t, actual.Coords, len(expected.Coords))
	for name, v := range expected.Coords {
		require.Contains(t, actual.Coords, name)
		require.True(t, array.Equal(v.Values, actual.Coords[name].Values), "coord %q values differ", name)
		require.Equal(t, v.Attrs, actual.Coords[name].Attrs)
	}

	require.Len(t, actual.Data, len(expected.Data))
	for name, v := range expected.Data {
		require.Contains(t, actual.Data, name)
		require.True(t, array.Equal(v.Values, actual.Data[name].Values), "data %q values differ", name)
		require.Equal(t, v.Attrs, actual.Data[name].Attrs)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, ct := range compressions {
		t.Run(ct.String(), func(t *testing.T) {
			original := makeTestContainer()

			blob, err := Encode(original, WithCompression(ct))
			require.NoError(t, err)

			decoded, err := Decode(blob)
			require.NoError(t, err)
			requireContainersEqual(t, original, decoded)
		})
	}
}

func TestEncodeDecode_BigEndian(t *testing.T) {
	original := makeTestContainer()

	blob, err := Encode(original, WithBigEndian())
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)
	requireContainersEqual(t, original, decoded)
}

func TestEncode_Deterministic(t *testing.T) {
	c := makeTestContainer()

	first, err := Encode(c)
	require.NoError(t, err)
	second, err := Encode(c)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestEncodeDecode_EmptyContainer(t *testing.T) {
	original := New(0, 0)

	blob, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)
	require.Zero(t, decoded.VarCount())
	require.Empty(t, decoded.Attrs)
}

func TestEncode_Independence(t *testing.T) {
	c := makeTestContainer()

	blob, err := Encode(c)
	require.NoError(t, err)

	// Mutating the container after encoding must not change the blob.
	values, _ := array.Values[float64](c.Coords["time"].Values)
	values[0] = 999

	decoded, err := Decode(blob)
	require.NoError(t, err)
	times, _ := array.Values[float64](decoded.Coords["time"].Values)
	require.Equal(t, 0.0, times[0])
}

func TestEncode_InvalidOptions(t *testing.T) {
	_, err := Encode(makeTestContainer(), WithCompression(format.CompressionType(0xFF)))
	require.Error(t, err)

	_, err = Encode(nil)
	require.Error(t, err)
}

func TestDecode_Corruption(t *testing.T) {
	blob, err := Encode(makeTestContainer())
	require.NoError(t, err)

	t.Run("truncated header", func(t *testing.T) {
		_, err := Decode(blob[:HeaderSize-1])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("bad magic number", func(t *testing.T) {
		corrupted := append([]byte(nil), blob...)
		corrupted[1] ^= 0xFF

		_, err := Decode(corrupted)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("payload corruption fails checksum", func(t *testing.T) {
		corrupted := append([]byte(nil), blob...)
		corrupted[len(corrupted)-1] ^= 0xFF

		_, err := Decode(corrupted)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := Decode(blob[:len(blob)-4])
		require.Error(t, err)
	})
}

// craftedBlob assembles an uncompressed zero-variable blob around the given
// attrs payload, with a checksum that passes verification. Length fields
// inside the payload itself are the attack surface under test.
func craftedBlob(attrsPayload []byte) []byte {
	h := NewHeader()
	h.AttrsPayloadOffset = HeaderSize
	h.DataPayloadOffset = HeaderSize + uint32(len(attrsPayload))
	h.PayloadChecksum = hash.SumParts(attrsPayload, nil)

	return append(h.Bytes(), attrsPayload...)
}

func TestDecode_CraftedLengthFields(t *testing.T) {
	t.Run("string length near max uint64", func(t *testing.T) {
		// One attribute pair whose key length would wrap negative if
		// converted to int before bounds checking.
		payload := binary.AppendUvarint(nil, 1)
		payload = binary.AppendUvarint(payload, 1<<63)

		_, err := Decode(craftedBlob(payload))
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("string length just past payload end", func(t *testing.T) {
		payload := binary.AppendUvarint(nil, 1)
		payload = binary.AppendUvarint(payload, 16) // key of 16 bytes, none present

		_, err := Decode(craftedBlob(payload))
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("attribute count near max uint64", func(t *testing.T) {
		payload := binary.AppendUvarint(nil, math.MaxUint64)

		_, err := Decode(craftedBlob(payload))
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})
}

func TestDecodeArray_CraftedStringLengths(t *testing.T) {
	engine := NewFlag().GetEndianEngine()

	t.Run("element length near max uint64", func(t *testing.T) {
		data := binary.AppendUvarint(nil, 1<<63)

		_, err := decodeArray(data, engine, format.TypeString, 1)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("count exceeds window", func(t *testing.T) {
		data := binary.AppendUvarint(nil, 0)

		_, err := decodeArray(data, engine, format.TypeString, 1<<30)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})
}

func TestHeader_BytesParseRoundTrip(t *testing.T) {
	h := NewHeader()
	h.NumTraj = 7
	h.NumObs = 1234
	h.VarCount = 3
	h.AttrsPayloadOffset = HeaderSize + 3*IndexEntrySize
	h.DataPayloadOffset = h.AttrsPayloadOffset + 99
	h.PayloadChecksum = 0xDEADBEEFCAFEF00D
	h.Flag.SetCompression(format.CompressionS2)

	parsed, err := ParseHeader(h.Bytes())
	require.NoError(t, err)
	require.Equal(t, *h, parsed)
}

func TestFlag_Validate(t *testing.T) {
	t.Run("default flag is valid", func(t *testing.T) {
		require.NoError(t, NewFlag().Validate())
	})

	t.Run("wrong magic", func(t *testing.T) {
		f := NewFlag()
		f.Options = 0x1230

		require.ErrorIs(t, f.Validate(), errs.ErrInvalidMagicNumber)
	})

	t.Run("bad compression", func(t *testing.T) {
		f := NewFlag()
		f.CompressionType = 0x7F

		require.Error(t, f.Validate())
	})

	t.Run("endianness bit", func(t *testing.T) {
		f := NewFlag()
		require.False(t, f.IsBigEndian())

		f.SetBigEndian(true)
		require.True(t, f.IsBigEndian())
		require.NoError(t, f.Validate())

		f.SetBigEndian(false)
		require.False(t, f.IsBigEndian())
	})
}

func TestIndexEntry_RoundTrip(t *testing.T) {
	engine := NewFlag().GetEndianEngine()

	entry := IndexEntry{
		NameID: 0x0123456789ABCDEF,
		Offset: 40,
		Size:   80,
		Count:  10,
		Elem:   format.TypeFloat64,
		Kind:   KindCoord,
	}

	encoded := entry.AppendTo(nil, engine)
	require.Len(t, encoded, IndexEntrySize)

	parsed, err := ParseIndexEntry(encoded, engine)
	require.NoError(t, err)
	require.Equal(t, entry, parsed)
}

func TestParseIndexEntry_Invalid(t *testing.T) {
	engine := NewFlag().GetEndianEngine()

	entry := IndexEntry{Elem: format.TypeFloat64, Kind: KindData}
	encoded := entry.AppendTo(nil, engine)

	t.Run("bad element type", func(t *testing.T) {
		corrupted := append([]byte(nil), encoded...)
		corrupted[20] = 0xFF

		_, err := ParseIndexEntry(corrupted, engine)
		require.ErrorIs(t, err, errs.ErrInvalidElemType)
	})

	t.Run("bad kind", func(t *testing.T) {
		corrupted := append([]byte(nil), encoded...)
		corrupted[21] = 0xFF

		_, err := ParseIndexEntry(corrupted, engine)
		require.Error(t, err)
	})

	t.Run("short input", func(t *testing.T) {
		_, err := ParseIndexEntry(encoded[:10], engine)
		require.Error(t, err)
	})
}
