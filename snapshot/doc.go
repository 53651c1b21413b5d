// Package snapshot serializes packed buffers into a portable, self-describing binary
// form and restores them.
//
// A snapshot is laid out as:
//
//	+--------------------+  32 bytes, little-endian
//	| Header             |
//	+--------------------+  per attribute: u8 name length, name, u8 components, u8 type
//	| Layout table       |
//	+--------------------+  Header.Compression applied to Header.PayloadLength bytes
//	| Payload            |
//	+--------------------+
//
// The payload is the written region of the buffer, Len()*stride bytes, in the buffer's
// byte order. Decode verifies the layout fingerprint and the payload checksum before it
// builds a new buffer.
package snapshot
