package container

import (
	"fmt"

	"github.com/driftlab/ragged/compress"
	"github.com/driftlab/ragged/errs"
	"github.com/driftlab/ragged/internal/hash"
)

// Decode reconstructs a container from a blob produced by Encode.
//
// The decoder validates the magic number, section offsets, and the payload
// checksum before touching variable data, so corrupted blobs fail fast
// instead of producing a partially decoded container.
func Decode(data []byte) (*Container, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	engine := header.Flag.GetEndianEngine()

	codec, err := compress.GetCodec(header.Flag.Compression())
	if err != nil {
		return nil, err
	}

	indexEnd := HeaderSize + int(header.VarCount)*IndexEntrySize
	switch {
	case header.IndexOffset != IndexOffset,
		int(header.AttrsPayloadOffset) != indexEnd,
		header.DataPayloadOffset < header.AttrsPayloadOffset,
		int(header.DataPayloadOffset) > len(data):
		return nil, fmt.Errorf("%w: index=%d attrs=%d data=%d blob=%d",
			errs.ErrInvalidIndexOffsets,
			header.IndexOffset, header.AttrsPayloadOffset, header.DataPayloadOffset, len(data))
	}

	compAttrs := data[header.AttrsPayloadOffset:header.DataPayloadOffset]
	compData := data[header.DataPayloadOffset:]

	if sum := hash.SumParts(compAttrs, compData); sum != header.PayloadChecksum {
		return nil, fmt.Errorf("%w: got 0x%016X, header 0x%016X", errs.ErrChecksumMismatch, sum, header.PayloadChecksum)
	}

	entries := make([]IndexEntry, header.VarCount)
	for i := range entries {
		start := HeaderSize + i*IndexEntrySize
		entries[i], err = ParseIndexEntry(data[start:start+IndexEntrySize], engine)
		if err != nil {
			return nil, err
		}
	}

	attrsPayload, err := codec.Decompress(compAttrs)
	if err != nil {
		return nil, fmt.Errorf("decompress attrs payload: %w", err)
	}
	dataPayload, err := codec.Decompress(compData)
	if err != nil {
		return nil, fmt.Errorf("decompress data payload: %w", err)
	}

	c := New(int(header.NumTraj), int(header.NumObs))

	pos := 0
	c.Attrs, pos, err = readAttrs(attrsPayload, pos)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		var name string
		var attrs map[string]string

		name, pos, err = readString(attrsPayload, pos)
		if err != nil {
			return nil, err
		}
		if hash.ID(name) != entry.NameID {
			return nil, fmt.Errorf("%w: name %q does not match index entry", errs.ErrInvalidPayload, name)
		}

		attrs, pos, err = readAttrs(attrsPayload, pos)
		if err != nil {
			return nil, err
		}

		end := int(entry.Offset) + int(entry.Size)
		if end > len(dataPayload) {
			return nil, fmt.Errorf("%w: variable %q window [%d, %d) exceeds payload of %d bytes",
				errs.ErrInvalidIndexOffsets, name, entry.Offset, end, len(dataPayload))
		}

		values, err := decodeArray(dataPayload[entry.Offset:end], engine, entry.Elem, int(entry.Count))
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}

		switch entry.Kind {
		case KindCoord:
			c.Coords[name] = Variable{Values: values, Attrs: attrs}
		case KindData:
			c.Data[name] = Variable{Values: values, Attrs: attrs}
		}
	}

	return c, nil
}
