package container

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/driftlab/ragged/errs"
)

// Variable names and attribute strings are encoded as uvarint
// length-prefixed UTF-8 bytes. Attribute maps are encoded as a uvarint pair
// count followed by key/value strings in sorted key order, which keeps the
// encoding deterministic for identical inputs.

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

func readString(data []byte, pos int) (string, int, error) {
	length, n := binary.Uvarint(data[pos:])
	if n <= 0 {
		return "", 0, fmt.Errorf("%w: bad string length at offset %d", errs.ErrInvalidPayload, pos)
	}
	pos += n

	// Compare as uint64: a crafted length near 2^64 must not wrap negative
	// when converted to int.
	if length > uint64(len(data)-pos) {
		return "", 0, fmt.Errorf("%w: string of %d bytes exceeds payload", errs.ErrInvalidPayload, length)
	}
	end := pos + int(length)

	return string(data[pos:end]), end, nil
}

func appendAttrs(b []byte, attrs map[string]string) []byte {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	b = binary.AppendUvarint(b, uint64(len(keys)))
	for _, key := range keys {
		b = appendString(b, key)
		b = appendString(b, attrs[key])
	}

	return b
}

func readAttrs(data []byte, pos int) (map[string]string, int, error) {
	count, n := binary.Uvarint(data[pos:])
	if n <= 0 {
		return nil, 0, fmt.Errorf("%w: bad attribute count at offset %d", errs.ErrInvalidPayload, pos)
	}
	pos += n

	// Every pair needs at least two length bytes, so a count beyond the
	// remaining payload is unsatisfiable. This also bounds the map
	// pre-allocation below against crafted counts.
	if count > uint64(len(data)-pos) {
		return nil, 0, fmt.Errorf("%w: attribute count %d exceeds payload", errs.ErrInvalidPayload, count)
	}

	attrs := make(map[string]string, count)
	for i := uint64(0); i < count; i++ {
		var key, value string
		var err error

		key, pos, err = readString(data, pos)
		if err != nil {
			return nil, 0, err
		}
		value, pos, err = readString(data, pos)
		if err != nil {
			return nil, 0, err
		}
		attrs[key] = value
	}

	return attrs, pos, nil
}
