package container

import (
	"fmt"

	"github.com/driftlab/ragged/endian"
	"github.com/driftlab/ragged/errs"
	"github.com/driftlab/ragged/format"
)

// Flag is the packed option field at the start of the container header.
//
// The Options word carries the magic number in bits 4-15 and the endianness
// bit in bit 0. The Options word itself is always encoded little-endian so
// the decoder can discover the byte order of the rest of the blob.
type Flag struct {
	Options         uint16
	CompressionType uint8
	Reserved        uint8
}

// NewFlag creates a Flag with the version 1 magic number, little-endian byte
// order, and no compression.
func NewFlag() Flag {
	return Flag{
		Options:         MagicContainerV1,
		CompressionType: uint8(format.CompressionNone),
	}
}

// SetBigEndian sets or clears the big-endian bit.
func (f *Flag) SetBigEndian(big bool) {
	if big {
		f.Options |= EndianBigMask
	} else {
		f.Options &^= EndianBigMask
	}
}

// IsBigEndian reports whether the big-endian bit is set.
func (f Flag) IsBigEndian() bool {
	return f.Options&EndianBigMask != 0
}

// GetEndianEngine returns the endian engine matching the endianness bit.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// SetCompression sets the compression type byte.
func (f *Flag) SetCompression(ct format.CompressionType) {
	f.CompressionType = uint8(ct)
}

// Compression returns the compression type.
func (f Flag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// Validate checks the magic number and compression type.
func (f Flag) Validate() error {
	if f.Options&MagicMask != MagicContainerV1 {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, f.Options&MagicMask)
	}

	if !f.Compression().Valid() {
		return fmt.Errorf("invalid compression type: 0x%02X", f.CompressionType)
	}

	return nil
}

// Header is the fixed-size header section at the start of a container blob.
type Header struct {
	// Flag is the packed field for option bits, compression, and magic number.
	Flag Flag // byte offset 0-3
	// NumTraj is the entity-count dimension size.
	NumTraj uint32 // byte offset 4-7
	// NumObs is the observation-count dimension size.
	NumObs uint32 // byte offset 8-11
	// VarCount is the total number of coordinate and data variables.
	VarCount uint32 // byte offset 12-15
	// IndexOffset is the byte offset to the start of the index section.
	IndexOffset uint32 // byte offset 16-19
	// AttrsPayloadOffset is the byte offset to the start of the compressed
	// attrs payload. It records the offset after the index section.
	AttrsPayloadOffset uint32 // byte offset 20-23
	// DataPayloadOffset is the byte offset to the start of the compressed
	// data payload. It records the offset after the attrs payload.
	DataPayloadOffset uint32 // byte offset 24-27
	// PayloadChecksum is the xxHash64 of both compressed payload sections.
	PayloadChecksum uint64 // byte offset 28-35
	// bytes 36-39 are reserved
}

// NewHeader creates a Header with default flags.
// The counts and payload offsets are set when the encoder finishes.
func NewHeader() *Header {
	return &Header{
		Flag:        NewFlag(),
		IndexOffset: IndexOffset,
	}
}

// Bytes serializes the Header into a byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	// Options word is always little-endian so the decoder can bootstrap.
	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.CompressionType
	b[3] = h.Flag.Reserved

	engine.PutUint32(b[4:8], h.NumTraj)
	engine.PutUint32(b[8:12], h.NumObs)
	engine.PutUint32(b[12:16], h.VarCount)
	engine.PutUint32(b[16:20], h.IndexOffset)
	engine.PutUint32(b[20:24], h.AttrsPayloadOffset)
	engine.PutUint32(b[24:28], h.DataPayloadOffset)
	engine.PutUint64(b[28:36], h.PayloadChecksum)

	return b
}

// Parse parses the header from a byte slice of exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	// Parse the options word first to determine endianness
	// (always little-endian for the Options field itself).
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.CompressionType = data[2]
	h.Flag.Reserved = data[3]

	engine := h.Flag.GetEndianEngine()

	h.NumTraj = engine.Uint32(data[4:8])
	h.NumObs = engine.Uint32(data[8:12])
	h.VarCount = engine.Uint32(data[12:16])
	h.IndexOffset = engine.Uint32(data[16:20])
	h.AttrsPayloadOffset = engine.Uint32(data[20:24])
	h.DataPayloadOffset = engine.Uint32(data[24:28])
	h.PayloadChecksum = engine.Uint64(data[28:36])

	return h.Flag.Validate()
}

// ParseHeader parses a Header from the start of a container blob.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
