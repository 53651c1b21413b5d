package packbuf

import (
	"testing"

	"github.com/arloliu/packbuf/buffer"
	"github.com/arloliu/packbuf/errs"
	"github.com/arloliu/packbuf/format"
	"github.com/arloliu/packbuf/internal/hash"
	"github.com/arloliu/packbuf/schema"
	"github.com/stretchr/testify/require"
)

func TestNewVertexBuffer(t *testing.T) {
	buf, err := NewVertexBuffer(
		schema.Attr("pos", schema.Components(2), schema.Type(format.Short)),
		schema.Attr("color", schema.Components(3)),
	)
	require.NoError(t, err)
	defer buf.Release()

	require.Equal(t, schema.VertexAlignment, buf.Schema().Alignment())
	require.Equal(t, 8, buf.Schema().Stride())

	idx, err := buf.Append(buffer.NewRecord(
		buffer.Vector("pos", 1, -1),
		buffer.Vector("color", 10, 20, 30),
	))
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	_, err = NewVertexBuffer()
	require.ErrorIs(t, err, errs.ErrInvalidSchema)
}

func TestNewIndexBuffer(t *testing.T) {
	buf, err := NewIndexBuffer()
	require.NoError(t, err)
	defer buf.Release()

	require.Equal(t, 6, buf.Schema().Stride())
	require.Same(t, TriangleSchema(), buf.Schema())

	for i := range int64(3) {
		_, err := buf.Append(Triangle(i, i+1, i+2))
		require.NoError(t, err)
	}
	require.Equal(t, 18, buf.ByteLength())

	rec, err := buf.Get(2)
	require.NoError(t, err)
	require.Equal(t, []int64{2, 3, 4}, rec.Values(TriangleAttribute))
}

func TestEncodeDecode(t *testing.T) {
	buf, err := NewIndexBuffer(buffer.WithLittleEndian())
	require.NoError(t, err)
	defer buf.Release()

	_, err = buf.Append(Triangle(0, 1, 2))
	require.NoError(t, err)
	_, err = buf.Append(Triangle(2, 1, 3))
	require.NoError(t, err)

	data, err := Encode(buf)
	require.NoError(t, err)

	restored, err := Decode(data)
	require.NoError(t, err)
	defer restored.Release()

	require.Equal(t, buf.Bytes(), restored.Bytes())
	require.Equal(t, 2, restored.Len())
}

func TestAttributeID(t *testing.T) {
	require.Equal(t, hash.ID("pos"), AttributeID("pos"))
	require.NotEqual(t, AttributeID("pos"), AttributeID("color"))
}
