// Package errs defines the sentinel errors returned by packbuf packages.
//
// Errors are wrapped with call-site detail using fmt.Errorf("%w: ...") and should be
// tested with errors.Is.
package errs

import "errors"

// Schema errors.
var (
	// ErrInvalidSchema is returned when an attribute declaration is rejected: an empty or
	// duplicated name, a zero component count, an unknown scalar type or a bad alignment.
	ErrInvalidSchema = errors.New("invalid schema")
)

// Record errors. These reject the offending record without touching buffer state.
var (
	// ErrUnknownAttribute is returned when a record references a name the schema lacks.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrComponentCountMismatch is returned when a value sequence does not match the
	// declared component count, or a component index is outside of it.
	ErrComponentCountMismatch = errors.New("component count mismatch")
)

// Buffer errors.
var (
	// ErrIndexOutOfRange is returned when a record index lies beyond the write frontier
	// or outside the capacity-backed region. It always indicates a caller bug.
	ErrIndexOutOfRange = errors.New("record index out of range")
	// ErrBufferReleased is returned by any operation on a released buffer.
	ErrBufferReleased = errors.New("buffer released")
)

// Snapshot errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrChecksumMismatch   = errors.New("payload checksum mismatch")
	ErrLayoutMismatch     = errors.New("layout mismatch")
)

// Binding errors.
var (
	// ErrUnsupportedFormat is returned when an attribute has no device-side format.
	ErrUnsupportedFormat = errors.New("unsupported attribute format")
	// ErrNoDevice is returned when a binder is asked to bind without a device.
	ErrNoDevice = errors.New("no device")
)
