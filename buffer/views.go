package buffer

import (
	"github.com/arloliu/packbuf/endian"
	"github.com/arloliu/packbuf/format"
)

// view is a typed overlay of one scalar type onto the backing region. It addresses the
// region by byte offset and converts between the stored width and int64.
type view struct {
	typ    format.ScalarType
	region []byte
	engine endian.EndianEngine
}

// views holds one overlay per scalar type, indexed by format.ScalarType.
// A views value is only ever built together with the region it overlays.
type views [format.MaxScalarType + 1]view

func newViews(region []byte, engine endian.EndianEngine) views {
	var vs views
	for _, t := range format.ScalarTypes() {
		vs[t] = view{typ: t, region: region, engine: engine}
	}

	return vs
}

func (vs *views) of(t format.ScalarType) *view {
	return &vs[t]
}

// load decodes the component stored at byte offset off. Signed types are sign-extended.
func (v *view) load(off int) int64 {
	b := v.region[off:]
	switch v.typ {
	case format.Byte:
		return int64(int8(b[0])) //nolint:gosec
	case format.UnsignedByte:
		return int64(b[0])
	case format.Short:
		return int64(int16(v.engine.Uint16(b))) //nolint:gosec
	case format.UnsignedShort:
		return int64(v.engine.Uint16(b))
	case format.Int:
		return int64(int32(v.engine.Uint32(b))) //nolint:gosec
	case format.UnsignedInt:
		return int64(v.engine.Uint32(b))
	default:
		panic("buffer: view of invalid scalar type")
	}
}

// store writes val at byte offset off, wrapping it to the view's width.
func (v *view) store(off int, val int64) {
	b := v.region[off:]
	switch v.typ {
	case format.Byte, format.UnsignedByte:
		b[0] = byte(val) //nolint:gosec
	case format.Short, format.UnsignedShort:
		v.engine.PutUint16(b, uint16(val)) //nolint:gosec
	case format.Int, format.UnsignedInt:
		v.engine.PutUint32(b, uint32(val)) //nolint:gosec
	default:
		panic("buffer: view of invalid scalar type")
	}
}

// Wrap returns val as it reads back after being stored as t: truncated to t's width and
// sign-extended when t is signed.
func Wrap(t format.ScalarType, val int64) int64 {
	switch t {
	case format.Byte:
		return int64(int8(val)) //nolint:gosec
	case format.UnsignedByte:
		return int64(uint8(val)) //nolint:gosec
	case format.Short:
		return int64(int16(val)) //nolint:gosec
	case format.UnsignedShort:
		return int64(uint16(val)) //nolint:gosec
	case format.Int:
		return int64(int32(val)) //nolint:gosec
	case format.UnsignedInt:
		return int64(uint32(val)) //nolint:gosec
	default:
		return val
	}
}
