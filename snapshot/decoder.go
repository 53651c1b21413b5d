package snapshot

import (
	"fmt"
	"math"

	"github.com/arloliu/packbuf/buffer"
	"github.com/arloliu/packbuf/compress"
	"github.com/arloliu/packbuf/errs"
	"github.com/arloliu/packbuf/internal/hash"
	"github.com/arloliu/packbuf/internal/options"
	"github.com/arloliu/packbuf/schema"
)

// DecodeSchema parses the header and layout table of a snapshot without touching the
// payload.
func DecodeSchema(data []byte) (Header, *schema.Schema, error) {
	h, s, _, err := decodeLayout(data)
	return h, s, err
}

func decodeLayout(data []byte) (Header, *schema.Schema, int, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Header{}, nil, 0, err
	}

	s, n, err := readLayout(data[HeaderSize:], int(h.AttributeCount), int(h.RecordAlignment))
	if err != nil {
		return Header{}, nil, 0, err
	}
	if uint32(s.Stride()) != h.Stride { //nolint:gosec
		return Header{}, nil, 0, fmt.Errorf("%w: layout stride %d, header stride %d",
			errs.ErrLayoutMismatch, s.Stride(), h.Stride)
	}
	if s.Fingerprint() != h.Fingerprint {
		return Header{}, nil, 0, fmt.Errorf("%w: fingerprint 0x%016X, header 0x%016X",
			errs.ErrLayoutMismatch, s.Fingerprint(), h.Fingerprint)
	}

	return h, s, HeaderSize + n, nil
}

// Decode rebuilds a buffer from a snapshot produced by Encode.
//
// The returned buffer owns a fresh region, uses the payload byte order and size
// alignment recorded in the header and holds exactly the encoded records.
func Decode(data []byte, opts ...Option) (*buffer.Buffer, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	h, s, payloadOffset, err := decodeLayout(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, err
	}
	if uint64(h.PayloadLength) > math.MaxInt {
		return nil, fmt.Errorf("%w: payload length %d exceeds addressable memory",
			errs.ErrInvalidPayload, h.PayloadLength)
	}
	payload, err := codec.Decompress(data[payloadOffset:], int(h.PayloadLength))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
	}
	if len(payload) != int(h.PayloadLength) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d",
			errs.ErrInvalidPayload, len(payload), h.PayloadLength)
	}
	if sum := hash.Checksum(payload); sum != h.Checksum {
		return nil, fmt.Errorf("%w: got 0x%08X, want 0x%08X", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	bufOpts := make([]buffer.Option, 0, len(cfg.bufferOpts)+2)
	bufOpts = append(bufOpts, cfg.bufferOpts...)
	bufOpts = append(bufOpts,
		buffer.WithEngine(h.PayloadEngine()),
		buffer.WithSizeAlignment(int(h.SizeAlignment)))

	buf, err := buffer.FromBytes(s, payload, int(h.RecordCount), bufOpts...)
	if err != nil {
		return nil, err
	}

	buffer.Logger().Debug("snapshot decoded",
		zapRecords(buf.Len()),
		zapCompression(h.Compression),
		zapSize(len(data)))

	return buf, nil
}
