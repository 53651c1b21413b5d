package snapshot

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/packbuf/endian"
	"github.com/arloliu/packbuf/errs"
	"github.com/arloliu/packbuf/format"
)

const (
	// HeaderSize is the fixed size of a snapshot header in bytes.
	HeaderSize = 32

	// Options bit layout
	BigEndianMask    = 0x0002 // payload byte order, 0=little, 1=big
	ReservedBitsMask = 0x000D // bits 0, 2 and 3, must be zero
	MagicNumberMask  = 0xFFF0 // bits 4-15

	// MagicV1Opt identifies version 1 of the snapshot format.
	MagicV1Opt = 0xEC10
)

var validCompressions = map[format.CompressionType]struct{}{
	format.CompressionNone: {},
	format.CompressionZstd: {},
	format.CompressionS2:   {},
	format.CompressionLZ4:  {},
}

// Header is the fixed-size section at the start of a snapshot. It is always stored
// little-endian, independent of the payload byte order.
type Header struct {
	// Options packs the magic number and the payload byte order flag.
	Options uint16 // byte offset 0-1
	// Compression is the codec applied to the payload.
	Compression format.CompressionType // byte offset 2
	// RecordAlignment is the schema alignment the layout was built with.
	RecordAlignment uint8 // byte offset 3
	// AttributeCount is the number of entries in the layout table.
	AttributeCount uint16 // byte offset 4-5
	// SizeAlignment is the region size alignment of the source buffer.
	SizeAlignment uint16 // byte offset 6-7
	// Stride is the record stride in bytes.
	Stride uint32 // byte offset 8-11
	// RecordCount is the number of records in the payload.
	RecordCount uint32 // byte offset 12-15
	// Fingerprint is the schema fingerprint of the layout.
	Fingerprint uint64 // byte offset 16-23
	// PayloadLength is the uncompressed payload size, RecordCount*Stride.
	PayloadLength uint32 // byte offset 24-27
	// Checksum is the low 32 bits of the xxHash64 of the uncompressed payload.
	Checksum uint32 // byte offset 28-31
}

// NewHeader creates a header with the v1 magic number, a little-endian payload and no
// compression.
func NewHeader() *Header {
	return &Header{
		Options:     MagicV1Opt,
		Compression: format.CompressionNone,
	}
}

// IsBigEndian reports whether the payload stores multi-byte components big-endian.
func (h Header) IsBigEndian() bool {
	return h.Options&BigEndianMask != 0
}

// WithBigEndian marks the payload as big-endian.
func (h *Header) WithBigEndian() {
	h.Options |= BigEndianMask
}

// WithLittleEndian marks the payload as little-endian.
func (h *Header) WithLittleEndian() {
	h.Options &^= BigEndianMask
}

// PayloadEngine returns the engine matching the payload byte order.
func (h Header) PayloadEngine() endian.EndianEngine {
	if h.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// GetMagicNumber returns the magic number bits of Options.
func (h Header) GetMagicNumber() uint16 {
	return h.Options & MagicNumberMask
}

// Validate checks the magic number, reserved bits and field consistency.
func (h Header) Validate() error {
	if h.GetMagicNumber() != MagicV1Opt {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, h.GetMagicNumber())
	}
	if h.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved bits set in 0x%04X", errs.ErrInvalidHeaderFlags, h.Options)
	}
	if _, ok := validCompressions[h.Compression]; !ok {
		return fmt.Errorf("%w: compression %d", errs.ErrInvalidHeaderFlags, uint8(h.Compression))
	}
	if h.RecordAlignment == 0 || h.SizeAlignment == 0 {
		return fmt.Errorf("%w: zero alignment", errs.ErrInvalidHeaderFlags)
	}
	if h.AttributeCount == 0 || h.Stride == 0 {
		return fmt.Errorf("%w: empty layout", errs.ErrInvalidHeaderFlags)
	}
	if uint64(h.RecordCount)*uint64(h.Stride) != uint64(h.PayloadLength) {
		return fmt.Errorf("%w: %d records of stride %d do not fill %d bytes",
			errs.ErrInvalidPayload, h.RecordCount, h.Stride, h.PayloadLength)
	}

	return nil
}

// Parse decodes the header from exactly HeaderSize bytes and validates it.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	le := binary.LittleEndian
	h.Options = le.Uint16(data[0:2])
	h.Compression = format.CompressionType(data[2])
	h.RecordAlignment = data[3]
	h.AttributeCount = le.Uint16(data[4:6])
	h.SizeAlignment = le.Uint16(data[6:8])
	h.Stride = le.Uint32(data[8:12])
	h.RecordCount = le.Uint32(data[12:16])
	h.Fingerprint = le.Uint64(data[16:24])
	h.PayloadLength = le.Uint32(data[24:28])
	h.Checksum = le.Uint32(data[28:32])

	return h.Validate()
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	le := binary.LittleEndian
	le.PutUint16(b[0:2], h.Options)
	b[2] = byte(h.Compression)
	b[3] = h.RecordAlignment
	le.PutUint16(b[4:6], h.AttributeCount)
	le.PutUint16(b[6:8], h.SizeAlignment)
	le.PutUint32(b[8:12], h.Stride)
	le.PutUint32(b[12:16], h.RecordCount)
	le.PutUint64(b[16:24], h.Fingerprint)
	le.PutUint32(b[24:28], h.PayloadLength)
	le.PutUint32(b[28:32], h.Checksum)

	return b
}

// ParseHeader parses the header at the start of a snapshot.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
