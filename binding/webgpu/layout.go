package webgpu

import (
	"fmt"

	"github.com/arloliu/packbuf/buffer"
	"github.com/arloliu/packbuf/errs"
	"github.com/arloliu/packbuf/format"
	"github.com/cogentcore/webgpu/wgpu"
)

type formatKey struct {
	typ        format.ScalarType
	components int
}

// WebGPU has no 1- or 3-component formats for 8- and 16-bit scalars.
var vertexFormats = map[formatKey]wgpu.VertexFormat{
	{format.UnsignedByte, 2}:  wgpu.VertexFormatUint8x2,
	{format.UnsignedByte, 4}:  wgpu.VertexFormatUint8x4,
	{format.Byte, 2}:          wgpu.VertexFormatSint8x2,
	{format.Byte, 4}:          wgpu.VertexFormatSint8x4,
	{format.UnsignedShort, 2}: wgpu.VertexFormatUint16x2,
	{format.UnsignedShort, 4}: wgpu.VertexFormatUint16x4,
	{format.Short, 2}:         wgpu.VertexFormatSint16x2,
	{format.Short, 4}:         wgpu.VertexFormatSint16x4,
	{format.UnsignedInt, 1}:   wgpu.VertexFormatUint32,
	{format.UnsignedInt, 2}:   wgpu.VertexFormatUint32x2,
	{format.UnsignedInt, 3}:   wgpu.VertexFormatUint32x3,
	{format.UnsignedInt, 4}:   wgpu.VertexFormatUint32x4,
	{format.Int, 1}:           wgpu.VertexFormatSint32,
	{format.Int, 2}:           wgpu.VertexFormatSint32x2,
	{format.Int, 3}:           wgpu.VertexFormatSint32x3,
	{format.Int, 4}:           wgpu.VertexFormatSint32x4,
}

// VertexFormat returns the integer vertex format for components values of typ.
func VertexFormat(typ format.ScalarType, components int) (wgpu.VertexFormat, error) {
	f, ok := vertexFormats[formatKey{typ, components}]
	if !ok {
		return 0, fmt.Errorf("%w: %s x%d", errs.ErrUnsupportedFormat, typ, components)
	}

	return f, nil
}

// IndexFormat returns the index format for typ. Only UnsignedShort and UnsignedInt
// indices exist in WebGPU.
func IndexFormat(typ format.ScalarType) (wgpu.IndexFormat, error) {
	switch typ {
	case format.UnsignedShort:
		return wgpu.IndexFormatUint16, nil
	case format.UnsignedInt:
		return wgpu.IndexFormatUint32, nil
	default:
		return 0, fmt.Errorf("%w: index type %s", errs.ErrUnsupportedFormat, typ)
	}
}

// VertexBufferLayout describes layout as a per-vertex WebGPU buffer layout. Attributes
// get consecutive shader locations starting at firstLocation, in record order.
func VertexBufferLayout(layout buffer.Layout, firstLocation uint32) (wgpu.VertexBufferLayout, error) {
	attributes := make([]wgpu.VertexAttribute, 0, len(layout.Attributes))
	for i, a := range layout.Attributes {
		f, err := VertexFormat(a.Type, a.Components)
		if err != nil {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("attribute %q: %w", a.Name, err)
		}

		attributes = append(attributes, wgpu.VertexAttribute{
			Format:         f,
			Offset:         uint64(a.Offset),          //nolint:gosec
			ShaderLocation: firstLocation + uint32(i), //nolint:gosec
		})
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(layout.Stride), //nolint:gosec
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attributes,
	}, nil
}
