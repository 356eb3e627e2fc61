// Package errs defines the sentinel errors shared across the ragged module.
//
// All errors are wrapped with context at the call site using fmt.Errorf
// with the %w verb, so callers can match them with errors.Is.
package errs

import "errors"

var (
	// ErrNoEntities is returned when a build is requested with an empty entity list.
	ErrNoEntities = errors.New("no entity identifiers provided")

	// ErrNilLoader is returned when a build is requested without a loader function.
	ErrNilLoader = errors.New("loader function is nil")

	// ErrVariableNotFound is returned when a requested coordinate or metadata
	// variable is absent from the representative dataset.
	ErrVariableNotFound = errors.New("variable not found in dataset")

	// ErrElemTypeMismatch is returned when an entity's variable dtype differs
	// from the schema derived at allocation time.
	ErrElemTypeMismatch = errors.New("element type mismatch")

	// ErrRowSizeMismatch is returned when an entity's array length does not
	// match its resolved row size.
	ErrRowSizeMismatch = errors.New("array length does not match row size")

	// ErrInvalidRowSize is returned when a row size is negative or the row
	// sizes do not sum to the flat array length.
	ErrInvalidRowSize = errors.New("invalid row size vector")

	// ErrInvalidRange is returned when a view range is out of bounds.
	ErrInvalidRange = errors.New("invalid array range")

	// ErrInvalidMagicNumber is returned when a container blob does not start
	// with the expected magic number.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidHeaderSize is returned when a container blob is too short to
	// hold a complete header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidIndexOffsets is returned when header offsets are inconsistent
	// with the blob length.
	ErrInvalidIndexOffsets = errors.New("invalid index offsets")

	// ErrInvalidElemType is returned when an index entry carries an unknown
	// element type.
	ErrInvalidElemType = errors.New("invalid element type")

	// ErrChecksumMismatch is returned when a payload checksum does not match
	// the value recorded in the header.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")

	// ErrInvalidPayload is returned when a payload cannot be decoded to the
	// declared element count.
	ErrInvalidPayload = errors.New("invalid payload")
)
