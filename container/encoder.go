package container

import (
	"fmt"
	"math"
	"sort"

	"github.com/driftlab/ragged/compress"
	"github.com/driftlab/ragged/format"
	"github.com/driftlab/ragged/internal/hash"
	"github.com/driftlab/ragged/internal/options"
	"github.com/driftlab/ragged/internal/pool"
)

type encoderConfig struct {
	flag Flag
}

// EncodeOption represents a functional option for configuring Encode.
type EncodeOption = options.Option[*encoderConfig]

// WithCompression selects the compression applied to both payload sections.
func WithCompression(ct format.CompressionType) EncodeOption {
	return options.New(func(cfg *encoderConfig) error {
		if !ct.Valid() {
			return fmt.Errorf("invalid compression type: %v", ct)
		}
		cfg.flag.SetCompression(ct)

		return nil
	})
}

// WithLittleEndian encodes multi-byte values in little-endian order (default).
func WithLittleEndian() EncodeOption {
	return options.NoError(func(cfg *encoderConfig) {
		cfg.flag.SetBigEndian(false)
	})
}

// WithBigEndian encodes multi-byte values in big-endian order.
func WithBigEndian() EncodeOption {
	return options.NoError(func(cfg *encoderConfig) {
		cfg.flag.SetBigEndian(true)
	})
}

// namedVar pairs a variable with its name and kind for ordered encoding.
type namedVar struct {
	name string
	kind VarKind
	v    Variable
}

// sortedVars returns the container's variables in deterministic encode
// order: coordinates sorted by name, then data variables sorted by name.
func sortedVars(c *Container) []namedVar {
	vars := make([]namedVar, 0, c.VarCount())
	for _, name := range sortedKeys(c.Coords) {
		vars = append(vars, namedVar{name: name, kind: KindCoord, v: c.Coords[name]})
	}
	for _, name := range sortedKeys(c.Data) {
		vars = append(vars, namedVar{name: name, kind: KindData, v: c.Data[name]})
	}

	return vars
}

func sortedKeys(vars map[string]Variable) []string {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

// Encode serializes the container into a self-describing binary blob.
//
// The encoding is deterministic: encoding the same container with the same
// options produces identical bytes. The result is independent of the
// container; later mutations of the container do not affect it.
func Encode(c *Container, opts ...EncodeOption) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("cannot encode nil container")
	}

	cfg := &encoderConfig{flag: NewFlag()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	engine := cfg.flag.GetEndianEngine()

	codec, err := compress.GetCodec(cfg.flag.Compression())
	if err != nil {
		return nil, err
	}

	if c.NumTraj < 0 || int64(c.NumTraj) > math.MaxUint32 {
		return nil, fmt.Errorf("entity dimension %d out of range", c.NumTraj)
	}
	if c.NumObs < 0 || int64(c.NumObs) > math.MaxUint32 {
		return nil, fmt.Errorf("observation dimension %d out of range", c.NumObs)
	}

	vars := sortedVars(c)

	attrsBuf := make([]byte, 0, 256)
	attrsBuf = appendAttrs(attrsBuf, c.Attrs)

	dataBuf := pool.GetContainerBuffer()
	defer pool.PutContainerBuffer(dataBuf)

	payload := dataBuf.B
	entries := make([]IndexEntry, 0, len(vars))
	for _, nv := range vars {
		offset := len(payload)
		payload, err = appendArray(payload, engine, nv.v.Values)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", nv.name, err)
		}
		if len(payload) > math.MaxUint32 {
			return nil, fmt.Errorf("variable %q: data payload exceeds 4GiB", nv.name)
		}

		entries = append(entries, IndexEntry{
			NameID: hash.ID(nv.name),
			Offset: uint32(offset),
			Size:   uint32(len(payload) - offset),
			Count:  uint32(nv.v.Values.Len()),
			Elem:   nv.v.Values.Type(),
			Kind:   nv.kind,
		})

		attrsBuf = appendString(attrsBuf, nv.name)
		attrsBuf = appendAttrs(attrsBuf, nv.v.Attrs)
	}
	dataBuf.B = payload

	compAttrs, err := codec.Compress(attrsBuf)
	if err != nil {
		return nil, fmt.Errorf("compress attrs payload: %w", err)
	}
	compData, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress data payload: %w", err)
	}

	header := NewHeader()
	header.Flag = cfg.flag
	header.NumTraj = uint32(c.NumTraj)
	header.NumObs = uint32(c.NumObs)
	header.VarCount = uint32(len(entries))
	header.AttrsPayloadOffset = uint32(HeaderSize + len(entries)*IndexEntrySize)
	header.DataPayloadOffset = header.AttrsPayloadOffset + uint32(len(compAttrs))
	header.PayloadChecksum = hash.SumParts(compAttrs, compData)

	blob := make([]byte, 0, int(header.DataPayloadOffset)+len(compData))
	blob = append(blob, header.Bytes()...)
	for _, entry := range entries {
		blob = entry.AppendTo(blob, engine)
	}
	blob = append(blob, compAttrs...)
	blob = append(blob, compData...)

	return blob, nil
}
