package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/packbuf/errs"
)

type (
	ScalarType      uint8
	CompressionType uint8
)

const (
	Byte          ScalarType = 0x1 // Byte is a signed 8-bit integer.
	UnsignedByte  ScalarType = 0x2 // UnsignedByte is an unsigned 8-bit integer.
	Short         ScalarType = 0x3 // Short is a signed 16-bit integer.
	UnsignedShort ScalarType = 0x4 // UnsignedShort is an unsigned 16-bit integer.
	Int           ScalarType = 0x5 // Int is a signed 32-bit integer.
	UnsignedInt   ScalarType = 0x6 // UnsignedInt is an unsigned 32-bit integer.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// MaxScalarType is the highest defined ScalarType value.
const MaxScalarType = UnsignedInt

var scalarNames = [...]string{
	Byte:          "BYTE",
	UnsignedByte:  "UNSIGNED_BYTE",
	Short:         "SHORT",
	UnsignedShort: "UNSIGNED_SHORT",
	Int:           "INT",
	UnsignedInt:   "UNSIGNED_INT",
}

// ScalarTypes returns every defined scalar type, narrowest first.
func ScalarTypes() []ScalarType {
	return []ScalarType{Byte, UnsignedByte, Short, UnsignedShort, Int, UnsignedInt}
}

// IsValid reports whether t is a defined scalar type.
func (t ScalarType) IsValid() bool {
	return t >= Byte && t <= MaxScalarType
}

// Width returns the size of one component in bytes, or 0 for an invalid type.
func (t ScalarType) Width() int {
	switch t {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort:
		return 2
	case Int, UnsignedInt:
		return 4
	default:
		return 0
	}
}

// Signed reports whether values of t are sign-extended on read.
func (t ScalarType) Signed() bool {
	return t == Byte || t == Short || t == Int
}

func (t ScalarType) String() string {
	if !t.IsValid() {
		return "Unknown"
	}

	return scalarNames[t]
}

// ParseScalarType resolves a scalar type by its name, e.g. "UNSIGNED_SHORT".
// Matching is case-insensitive.
func ParseScalarType(name string) (ScalarType, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for _, t := range ScalarTypes() {
		if scalarNames[t] == upper {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%w: scalar type %q", errs.ErrUnsupportedFormat, name)
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
