// Package compress provides the payload codecs used by packbuf snapshots.
//
// Packed vertex data is highly regular (repeated strides, small deltas between
// neighbouring records), so general-purpose block compressors shrink it well. Each
// codec is stateless from the caller's view and safe for concurrent use.
package compress

import (
	"errors"
	"fmt"

	"github.com/arloliu/packbuf/format"
)

// Compressor compresses a complete snapshot payload.
//
// The returned slice is owned by the caller; the input is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// ErrSizeLimitExceeded is returned when a payload would decompress to more than the
// caller's limit.
var ErrSizeLimitExceeded = errors.New("decompressed size exceeds limit")

// Decompressor reverses a Compressor of the same algorithm. It returns an error when the
// input is corrupted or was produced by a different algorithm.
//
// maxSize bounds the decompressed output. Implementations stop, or refuse to start,
// once the output would exceed it and return ErrSizeLimitExceeded.
type Decompressor interface {
	Decompress(data []byte, maxSize int) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
