// Package endian selects the byte order used to store multi-byte scalar components.
//
// GPU uploads consume a packed region as-is, so buffers default to the host byte order
// (NativeEngine). Snapshots record which order their payload uses, letting a reader on a
// different host detect the mismatch and swap.
//
//	engine := endian.NativeEngine()
//	engine.PutUint16(region[off:], uint16(v))
//
// All functions in this package are safe for concurrent use. Returned engines are
// stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness inspects the in-memory layout of a fixed integer to determine the
// host byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	// first byte at the lowest address is 0x01 only on big-endian hosts
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// IsLittleEndian reports whether engine is the little-endian engine.
func IsLittleEndian(engine EndianEngine) bool {
	return engine == binary.LittleEndian
}

// NativeEngine returns the engine matching the host byte order.
func NativeEngine() EndianEngine {
	if CheckEndianness() == binary.BigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
