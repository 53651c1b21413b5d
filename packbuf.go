// Package packbuf packs fixed-layout records, such as vertex attributes and triangle
// indices, into one contiguous byte region ready for GPU upload.
//
// # Core Features
//
//   - Attribute schemas with per-attribute scalar type and component count
//   - Records addressed by attribute name, validated before any byte is written
//   - Geometric growth of the backing region with aligned sizes
//   - Host, little- or big-endian storage of multi-byte components
//   - Portable snapshots with optional compression (None, Zstd, S2, LZ4)
//   - Device-agnostic binding with a WebGPU adapter
//
// # Basic Usage
//
// Building a vertex buffer:
//
//	import "github.com/arloliu/packbuf"
//
//	buf, _ := packbuf.NewVertexBuffer(
//	    schema.Attr("pos", schema.Components(2), schema.Type(format.Short)),
//	    schema.Attr("color", schema.Components(4)),
//	)
//	defer buf.Release()
//
//	buf.Append(buffer.NewRecord(
//	    buffer.Vector("pos", 10, -10),
//	    buffer.Vector("color", 255, 0, 0, 255),
//	))
//
// Saving and restoring it:
//
//	data, _ := packbuf.Encode(buf)
//	restored, _ := packbuf.Decode(data)
//
// # Package Structure
//
// This package provides top-level wrappers for the common cases. The schema, buffer,
// snapshot and binding packages expose the full API.
package packbuf

import (
	"github.com/arloliu/packbuf/buffer"
	"github.com/arloliu/packbuf/format"
	"github.com/arloliu/packbuf/internal/hash"
	"github.com/arloliu/packbuf/schema"
	"github.com/arloliu/packbuf/snapshot"
)

// TriangleAttribute is the attribute name used by index buffers.
const TriangleAttribute = "vertices"

var triangleSchema = schema.MustNew(schema.IndexAlignment,
	schema.Attr(TriangleAttribute, schema.Components(3), schema.Type(format.UnsignedShort)))

// AttributeID returns the 64-bit xxHash ID of an attribute name.
func AttributeID(name string) uint64 {
	return hash.ID(name)
}

// NewVertexSchema creates a schema with vertex alignment from decls.
func NewVertexSchema(decls ...schema.Decl) (*schema.Schema, error) {
	return schema.New(schema.VertexAlignment, decls...)
}

// NewVertexBuffer creates an empty buffer whose records are laid out by decls with
// vertex alignment, using the default buffer options.
func NewVertexBuffer(decls ...schema.Decl) (*buffer.Buffer, error) {
	s, err := NewVertexSchema(decls...)
	if err != nil {
		return nil, err
	}

	return buffer.New(s)
}

// TriangleSchema returns the index schema: one record per triangle holding three
// UnsignedShort vertex indices, packed with byte alignment.
func TriangleSchema() *schema.Schema {
	return triangleSchema
}

// NewIndexBuffer creates an empty triangle index buffer.
func NewIndexBuffer(opts ...buffer.Option) (*buffer.Buffer, error) {
	return buffer.New(triangleSchema, opts...)
}

// Triangle returns the index record for vertices a, b and c.
func Triangle(a, b, c int64) buffer.Record {
	return buffer.NewRecord(buffer.Vector(TriangleAttribute, a, b, c))
}

// Encode serializes buf into a zstd-compressed snapshot.
func Encode(buf *buffer.Buffer) ([]byte, error) {
	return snapshot.Encode(buf)
}

// Decode restores a buffer from a snapshot.
func Decode(data []byte) (*buffer.Buffer, error) {
	return snapshot.Decode(data)
}
