package binding

import (
	"errors"
	"strings"
	"testing"

	"github.com/arloliu/packbuf/buffer"
	"github.com/arloliu/packbuf/errs"
	"github.com/arloliu/packbuf/format"
	"github.com/arloliu/packbuf/schema"
	"github.com/stretchr/testify/require"
)

type fakeBuffer struct {
	label    string
	usage    Usage
	data     []byte
	releases int
}

func (f *fakeBuffer) Size() int { return len(f.data) }

func (f *fakeBuffer) Release() { f.releases++ }

type fakeDevice struct {
	created []*fakeBuffer
	writes  int
	fail    error
}

func (d *fakeDevice) CreateBuffer(label string, usage Usage, contents []byte) (DeviceBuffer, error) {
	if d.fail != nil {
		return nil, d.fail
	}
	fb := &fakeBuffer{label: label, usage: usage, data: append([]byte(nil), contents...)}
	d.created = append(d.created, fb)

	return fb, nil
}

func (d *fakeDevice) WriteBuffer(buf DeviceBuffer, offset int, data []byte) error {
	if d.fail != nil {
		return d.fail
	}
	d.writes++
	copy(buf.(*fakeBuffer).data[offset:], data)

	return nil
}

func quadBuffer(t *testing.T, n int) *buffer.Buffer {
	t.Helper()

	s, err := schema.New(schema.VertexAlignment,
		schema.Attr("pos", schema.Components(2), schema.Type(format.Short)),
		schema.Attr("uv", schema.Components(2), schema.Type(format.UnsignedShort)),
	)
	require.NoError(t, err)

	buf, err := buffer.New(s, buffer.WithInitialCapacity(16))
	require.NoError(t, err)
	for i := range n {
		_, err := buf.Append(buffer.NewRecord(
			buffer.Vector("pos", int64(i), int64(-i)),
			buffer.Vector("uv", int64(i*2), int64(i*3)),
		))
		require.NoError(t, err)
	}

	return buf
}

func TestNewBinder(t *testing.T) {
	buf := quadBuffer(t, 1)
	defer buf.Release()

	_, err := NewBinder(buf, nil)
	require.ErrorIs(t, err, errs.ErrNoDevice)

	_, err = NewBinder(nil, &fakeDevice{})
	require.ErrorIs(t, err, errs.ErrBufferReleased)

	_, err = NewBinder(buf, &fakeDevice{}, WithLabel(""))
	require.Error(t, err)

	_, err = NewBinder(buf, &fakeDevice{}, WithUsage(0))
	require.Error(t, err)

	b, err := NewBinder(buf, &fakeDevice{})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(b.Label(), "packbuf-"))
	require.False(t, b.Bound())

	other, err := NewBinder(buf, &fakeDevice{})
	require.NoError(t, err)
	require.NotEqual(t, b.Label(), other.Label())

	released := quadBuffer(t, 0)
	released.Release()
	_, err = NewBinder(released, &fakeDevice{})
	require.ErrorIs(t, err, errs.ErrBufferReleased)
}

func TestBinderBind(t *testing.T) {
	t.Run("uploads once until invalidated", func(t *testing.T) {
		buf := quadBuffer(t, 2)
		defer buf.Release()

		dev := &fakeDevice{}
		b, err := NewBinder(buf, dev, WithLabel("quad"), WithUsage(UsageVertex))
		require.NoError(t, err)

		db, err := b.Bind()
		require.NoError(t, err)
		require.True(t, b.Bound())
		require.Len(t, dev.created, 1)
		require.Equal(t, "quad", dev.created[0].label)
		require.Equal(t, UsageVertex, dev.created[0].usage)
		require.Equal(t, buf.Bytes(), dev.created[0].data)

		again, err := b.Bind()
		require.NoError(t, err)
		require.Same(t, db, again)
		require.Equal(t, 1, b.Uploads())
		require.Zero(t, dev.writes)

		require.NoError(t, buf.SetAttribute(1, "uv", 0, 77))
		b.Invalidate()
		require.False(t, b.Bound())

		_, err = b.Bind()
		require.NoError(t, err)
		require.Len(t, dev.created, 1)
		require.Equal(t, 1, dev.writes)
		require.Equal(t, 2, b.Uploads())
		require.Equal(t, buf.Bytes(), dev.created[0].data)
	})

	t.Run("recreates when too small", func(t *testing.T) {
		buf := quadBuffer(t, 1)
		defer buf.Release()

		dev := &fakeDevice{}
		b, err := NewBinder(buf, dev)
		require.NoError(t, err)

		_, err = b.Bind()
		require.NoError(t, err)

		for i := range 8 {
			_, err := buf.Append(buffer.NewRecord(buffer.Vector("pos", int64(i), 0)))
			require.NoError(t, err)
		}
		b.Invalidate()

		_, err = b.Bind()
		require.NoError(t, err)
		require.Len(t, dev.created, 2)
		require.Equal(t, 1, dev.created[0].releases)
		require.Equal(t, buf.ByteLength(), dev.created[1].Size())
		require.Zero(t, dev.writes)
	})

	t.Run("device failure", func(t *testing.T) {
		buf := quadBuffer(t, 1)
		defer buf.Release()

		boom := errors.New("device lost")
		b, err := NewBinder(buf, &fakeDevice{fail: boom})
		require.NoError(t, err)

		_, err = b.Bind()
		require.ErrorIs(t, err, boom)
		require.False(t, b.Bound())
	})
}

func TestBinderRelease(t *testing.T) {
	buf := quadBuffer(t, 3)
	dev := &fakeDevice{}
	b, err := NewBinder(buf, dev, WithUsage(UsageIndex))
	require.NoError(t, err)

	_, err = b.Bind()
	require.NoError(t, err)

	buf.Release()
	require.Equal(t, 1, dev.created[0].releases)
	require.False(t, b.Bound())

	b.Release()
	buf.Release()
	require.Equal(t, 1, dev.created[0].releases)

	_, err = b.Bind()
	require.ErrorIs(t, err, errs.ErrBufferReleased)
}

func TestAttributePointer(t *testing.T) {
	buf := quadBuffer(t, 4)
	defer buf.Release()

	b, err := NewBinder(buf, &fakeDevice{})
	require.NoError(t, err)

	p, err := b.AttributePointer("uv", 0)
	require.NoError(t, err)
	require.Equal(t, AttributePointer{
		Name: "uv", Components: 2, Type: format.UnsignedShort, Stride: 8, Offset: 4,
	}, p)

	p, err = b.AttributePointer("pos", 3)
	require.NoError(t, err)
	require.Equal(t, 24, p.Offset)
	require.False(t, p.Normalized)

	p, err = b.AttributePointer("uv", 2)
	require.NoError(t, err)
	require.Equal(t, 2*8+4, p.Offset)

	_, err = b.AttributePointer("missing", 0)
	require.ErrorIs(t, err, errs.ErrUnknownAttribute)

	_, err = b.AttributePointer("pos", -1)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestUsageString(t *testing.T) {
	require.Equal(t, "vertex", UsageVertex.String())
	require.Equal(t, "index", UsageIndex.String())
	require.Equal(t, "unknown", Usage(9).String())
}
