package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given variable name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// SumParts computes the xxHash64 over the concatenation of parts without
// copying them into one buffer.
func SumParts(parts ...[]byte) uint64 {
	digest := xxhash.New()
	for _, part := range parts {
		_, _ = digest.Write(part)
	}

	return digest.Sum64()
}
