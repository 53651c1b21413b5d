package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/packbuf/buffer"
	"github.com/arloliu/packbuf/compress"
	"github.com/arloliu/packbuf/endian"
	"github.com/arloliu/packbuf/errs"
	"github.com/arloliu/packbuf/internal/hash"
	"github.com/arloliu/packbuf/internal/options"
	"github.com/arloliu/packbuf/internal/pool"
)

// Encode serializes the written records of buf into a self-describing snapshot.
//
// The payload keeps the byte order of buf, and the header records which one it is, so a
// snapshot taken from a big-endian buffer decodes into a big-endian buffer on any host.
func Encode(buf *buffer.Buffer, opts ...Option) ([]byte, error) {
	bb, err := encode(buf, opts...)
	if err != nil {
		return nil, err
	}
	defer pool.PutSnapshotBuffer(bb)

	return bytes.Clone(bb.Bytes()), nil
}

// EncodeTo is like Encode but writes the snapshot to w without an intermediate copy. It
// returns the number of bytes written.
func EncodeTo(w io.Writer, buf *buffer.Buffer, opts ...Option) (int64, error) {
	bb, err := encode(buf, opts...)
	if err != nil {
		return 0, err
	}
	defer pool.PutSnapshotBuffer(bb)

	return bb.WriteTo(w)
}

// encode assembles a snapshot in a pooled buffer. The caller returns it to the pool.
func encode(buf *buffer.Buffer, opts ...Option) (*pool.ByteBuffer, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if buf == nil || buf.Released() {
		return nil, errs.ErrBufferReleased
	}

	s := buf.Schema()
	payload := buf.Bytes()

	if uint64(len(payload)) > math.MaxUint32 || uint64(buf.Len()) > math.MaxUint32 { //nolint:gosec
		return nil, fmt.Errorf("%w: payload of %d bytes exceeds the snapshot limit",
			errs.ErrInvalidPayload, len(payload))
	}
	if buf.SizeAlignment() > math.MaxUint16 {
		return nil, fmt.Errorf("%w: size alignment %d exceeds the snapshot limit",
			errs.ErrInvalidHeaderFlags, buf.SizeAlignment())
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	header := NewHeader()
	if !endian.IsLittleEndian(buf.Engine()) {
		header.WithBigEndian()
	}
	header.Compression = cfg.compression
	header.RecordAlignment = uint8(s.Alignment())      //nolint:gosec
	header.AttributeCount = uint16(s.Len())            //nolint:gosec
	header.SizeAlignment = uint16(buf.SizeAlignment()) //nolint:gosec
	header.Stride = uint32(s.Stride())                 //nolint:gosec
	header.RecordCount = uint32(buf.Len())             //nolint:gosec
	header.Fingerprint = s.Fingerprint()
	header.PayloadLength = uint32(len(payload)) //nolint:gosec
	header.Checksum = hash.Checksum(payload)

	bb := pool.GetSnapshotBuffer()
	bb.MustWrite(header.Bytes())
	if err := writeLayout(bb, s); err != nil {
		pool.PutSnapshotBuffer(bb)
		return nil, err
	}
	bb.MustWrite(compressed)

	buffer.Logger().Debug("snapshot encoded",
		zapRecords(buf.Len()),
		zapCompression(cfg.compression),
		zapSize(bb.Len()))

	return bb, nil
}
