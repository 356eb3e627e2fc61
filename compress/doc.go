// Package compress provides the payload compression codecs used by the
// container binary encoding.
//
// Four codecs are available, selected through format.CompressionType:
//
//   - None: bypass, for payloads that are post-compressed elsewhere
//   - Zstd: best ratio, for cold storage and archival
//   - S2: fastest, for hot paths where CPU matters more than size
//   - LZ4: balanced speed and ratio
//
// The Zstd codec has two implementations: a pure-Go one (default) and a
// cgo-backed one selected with the zstd_cgo build tag.
//
// All codecs are safe for concurrent use and reuse internal buffers through
// pooling where the underlying library benefits from it.
package compress
