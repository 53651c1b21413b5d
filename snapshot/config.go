package snapshot

import (
	"fmt"

	"github.com/arloliu/packbuf/buffer"
	"github.com/arloliu/packbuf/format"
	"github.com/arloliu/packbuf/internal/options"
)

// Config holds snapshot encode and decode settings.
type Config struct {
	compression format.CompressionType
	bufferOpts  []buffer.Option
}

func newConfig() *Config {
	return &Config{compression: format.CompressionZstd}
}

// Option configures Encode and Decode.
type Option = options.Option[*Config]

// WithCompression selects the payload codec used by Encode. The default is Zstd.
// Decode reads the codec from the header and ignores this option.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *Config) error {
		if _, ok := validCompressions[c]; !ok {
			return fmt.Errorf("invalid payload compression: %s", c)
		}
		cfg.compression = c

		return nil
	})
}

// WithBufferOptions passes options to the buffer built by Decode. The payload byte
// order and size alignment recorded in the snapshot always take precedence.
func WithBufferOptions(opts ...buffer.Option) Option {
	return options.NoError(func(cfg *Config) {
		cfg.bufferOpts = append(cfg.bufferOpts, opts...)
	})
}
