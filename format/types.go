package format

type (
	ElemType        uint8
	CompressionType uint8
)

const (
	TypeFloat64 ElemType = 0x1 // TypeFloat64 represents 64-bit IEEE 754 values.
	TypeFloat32 ElemType = 0x2 // TypeFloat32 represents 32-bit IEEE 754 values.
	TypeInt64   ElemType = 0x3 // TypeInt64 represents signed 64-bit integers.
	TypeInt32   ElemType = 0x4 // TypeInt32 represents signed 32-bit integers.
	TypeString  ElemType = 0x5 // TypeString represents variable-length UTF-8 strings.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (e ElemType) String() string {
	switch e {
	case TypeFloat64:
		return "Float64"
	case TypeFloat32:
		return "Float32"
	case TypeInt64:
		return "Int64"
	case TypeInt32:
		return "Int32"
	case TypeString:
		return "String"
	default:
		return "Unknown"
	}
}

// Size returns the encoded size of one element in bytes.
// Returns 0 for variable-length element types.
func (e ElemType) Size() int {
	switch e {
	case TypeFloat64, TypeInt64:
		return 8
	case TypeFloat32, TypeInt32:
		return 4
	default:
		return 0
	}
}

// Valid reports whether e is a known element type.
func (e ElemType) Valid() bool {
	return e >= TypeFloat64 && e <= TypeString
}

// Valid reports whether c is a known compression type.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
