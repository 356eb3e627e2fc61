package container

import (
	"fmt"

	"github.com/driftlab/ragged/endian"
	"github.com/driftlab/ragged/errs"
	"github.com/driftlab/ragged/format"
)

// IndexEntry describes one variable's location in the data payload.
//
// Entries are fixed-size and stored in the index section in encode order,
// which matches the order of names in the attrs payload.
type IndexEntry struct {
	// NameID is the xxHash64 of the variable name, used to cross-check the
	// attrs payload during decode.
	NameID uint64 // byte offset 0-7
	// Offset is the byte offset of the variable's payload within the
	// uncompressed data payload.
	Offset uint32 // byte offset 8-11
	// Size is the byte size of the variable's payload within the
	// uncompressed data payload.
	Size uint32 // byte offset 12-15
	// Count is the number of elements in the variable.
	Count uint32 // byte offset 16-19
	// Elem is the variable's element type.
	Elem format.ElemType // byte offset 20
	// Kind classifies the variable as coordinate or data.
	Kind VarKind // byte offset 21
	// bytes 22-23 are reserved
}

// AppendTo appends the 24-byte encoded entry to b using the given engine.
func (e IndexEntry) AppendTo(b []byte, engine endian.EndianEngine) []byte {
	b = engine.AppendUint64(b, e.NameID)
	b = engine.AppendUint32(b, e.Offset)
	b = engine.AppendUint32(b, e.Size)
	b = engine.AppendUint32(b, e.Count)
	b = append(b, byte(e.Elem), byte(e.Kind), 0, 0)

	return b
}

// ParseIndexEntry parses one entry from a byte slice of exactly
// IndexEntrySize bytes.
func ParseIndexEntry(data []byte, engine endian.EndianEngine) (IndexEntry, error) {
	if len(data) != IndexEntrySize {
		return IndexEntry{}, fmt.Errorf("%w: index entry of %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	e := IndexEntry{
		NameID: engine.Uint64(data[0:8]),
		Offset: engine.Uint32(data[8:12]),
		Size:   engine.Uint32(data[12:16]),
		Count:  engine.Uint32(data[16:20]),
		Elem:   format.ElemType(data[20]),
		Kind:   VarKind(data[21]),
	}

	if !e.Elem.Valid() {
		return IndexEntry{}, fmt.Errorf("%w: 0x%02X", errs.ErrInvalidElemType, data[20])
	}
	if !e.Kind.Valid() {
		return IndexEntry{}, fmt.Errorf("invalid variable kind: 0x%02X", data[21])
	}

	return e, nil
}
