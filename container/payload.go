package container

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/driftlab/ragged/array"
	"github.com/driftlab/ragged/endian"
	"github.com/driftlab/ragged/errs"
	"github.com/driftlab/ragged/format"
)

// appendArray appends a flat array's payload bytes to b.
//
// Fixed-size element types are encoded element by element with the engine's
// byte order. String elements use the uvarint length-prefixed encoding.
func appendArray(b []byte, engine endian.EndianEngine, a array.Array) ([]byte, error) {
	switch a.Type() {
	case format.TypeFloat64:
		values, _ := array.Values[float64](a)
		for _, v := range values {
			b = engine.AppendUint64(b, math.Float64bits(v))
		}
	case format.TypeFloat32:
		values, _ := array.Values[float32](a)
		for _, v := range values {
			b = engine.AppendUint32(b, math.Float32bits(v))
		}
	case format.TypeInt64:
		values, _ := array.Values[int64](a)
		for _, v := range values {
			b = engine.AppendUint64(b, uint64(v))
		}
	case format.TypeInt32:
		values, _ := array.Values[int32](a)
		for _, v := range values {
			b = engine.AppendUint32(b, uint32(v))
		}
	case format.TypeString:
		values, _ := array.Values[string](a)
		for _, v := range values {
			b = appendString(b, v)
		}
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidElemType, a.Type())
	}

	return b, nil
}

// decodeArray decodes a variable's payload window back into a flat array.
//
// Fixed-size element types require the window length to be exactly
// count*elemSize; string payloads must consume the window exactly.
func decodeArray(data []byte, engine endian.EndianEngine, et format.ElemType, count int) (array.Array, error) {
	if size := et.Size(); size > 0 && len(data) != count*size {
		return nil, fmt.Errorf("%w: %d bytes for %d %s elements", errs.ErrInvalidPayload, len(data), count, et)
	}

	switch et {
	case format.TypeFloat64:
		values := make([]float64, count)
		for i := range values {
			values[i] = math.Float64frombits(engine.Uint64(data[i*8 : i*8+8]))
		}

		return array.New(values), nil
	case format.TypeFloat32:
		values := make([]float32, count)
		for i := range values {
			values[i] = math.Float32frombits(engine.Uint32(data[i*4 : i*4+4]))
		}

		return array.New(values), nil
	case format.TypeInt64:
		values := make([]int64, count)
		for i := range values {
			values[i] = int64(engine.Uint64(data[i*8 : i*8+8]))
		}

		return array.New(values), nil
	case format.TypeInt32:
		values := make([]int32, count)
		for i := range values {
			values[i] = int32(engine.Uint32(data[i*4 : i*4+4]))
		}

		return array.New(values), nil
	case format.TypeString:
		// Every element needs at least one length byte, so a count beyond
		// the window length is unsatisfiable.
		if count > len(data) {
			return nil, fmt.Errorf("%w: %d string elements in %d bytes", errs.ErrInvalidPayload, count, len(data))
		}
		values := make([]string, count)
		pos := 0
		for i := range values {
			length, n := binary.Uvarint(data[pos:])
			if n <= 0 || length > uint64(len(data)-pos-n) {
				return nil, fmt.Errorf("%w: bad string element %d", errs.ErrInvalidPayload, i)
			}
			pos += n
			values[i] = string(data[pos : pos+int(length)])
			pos += int(length)
		}
		if pos != len(data) {
			return nil, fmt.Errorf("%w: %d trailing bytes in string payload", errs.ErrInvalidPayload, len(data)-pos)
		}

		return array.New(values), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidElemType, et)
	}
}
