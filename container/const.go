package container

const (
	// HeaderSize is the fixed header size in bytes.
	HeaderSize = 40
	// IndexEntrySize is the fixed index entry size in bytes.
	IndexEntrySize = 24
	// IndexOffset is the byte offset where the index section starts.
	IndexOffset = HeaderSize

	// Flag option bit masks (bits 0-3) and magic number (bits 4-15).
	EndianBigMask = 0x0001 // 0=little-endian, 1=big-endian
	MagicMask     = 0xFFF0 // Mask for magic number

	// MagicContainerV1 is the version 1 magic number for the container format.
	MagicContainerV1 = 0xAD10
)

// VarKind classifies an index entry as a coordinate or data variable.
type VarKind uint8

const (
	KindCoord VarKind = 0x1 // KindCoord marks a coordinate variable.
	KindData  VarKind = 0x2 // KindData marks a data variable.
)

func (k VarKind) String() string {
	switch k {
	case KindCoord:
		return "Coord"
	case KindData:
		return "Data"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is a known variable kind.
func (k VarKind) Valid() bool {
	return k == KindCoord || k == KindData
}
