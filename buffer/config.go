package buffer

import (
	"errors"
	"fmt"

	"github.com/arloliu/packbuf/endian"
	"github.com/arloliu/packbuf/internal/options"
	"go.uber.org/zap"
)

const (
	// DefaultCapacity is the initial region size in bytes when none is configured.
	DefaultCapacity = 8192
	// DefaultSizeAlignment is the default alignment of the region size.
	DefaultSizeAlignment = 4
	// DefaultGrowthFactor is the default geometric growth factor.
	DefaultGrowthFactor = 1.5
)

// Config holds buffer construction settings.
type Config struct {
	sizeAlignment   int
	initialCapacity int
	growthFactor    float64
	engine          endian.EndianEngine
	logger          *zap.Logger
}

// NewConfig returns a Config populated with the defaults.
func NewConfig() *Config {
	return &Config{
		sizeAlignment:   DefaultSizeAlignment,
		initialCapacity: DefaultCapacity,
		growthFactor:    DefaultGrowthFactor,
		engine:          endian.NativeEngine(),
	}
}

// SizeAlignment returns the configured region size alignment.
func (c *Config) SizeAlignment() int {
	return c.sizeAlignment
}

// InitialCapacity returns the configured initial region size.
func (c *Config) InitialCapacity() int {
	return c.initialCapacity
}

// GrowthFactor returns the configured growth factor.
func (c *Config) GrowthFactor() float64 {
	return c.growthFactor
}

// Engine returns the configured byte order engine.
func (c *Config) Engine() endian.EndianEngine {
	return c.engine
}

func (c *Config) loggerOrDefault() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}

	return Logger()
}

// Option configures a Buffer at construction.
type Option = options.Option[*Config]

// WithSizeAlignment sets the alignment of the whole region size. It is independent of the
// schema's record alignment.
func WithSizeAlignment(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("invalid size alignment: %d", n)
		}
		c.sizeAlignment = n

		return nil
	})
}

// WithInitialCapacity sets the initial region size in bytes. It is rounded up to the size
// alignment. Zero is allowed: the first write then triggers growth.
func WithInitialCapacity(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("invalid initial capacity: %d", n)
		}
		c.initialCapacity = n

		return nil
	})
}

// WithGrowthFactor sets the geometric growth factor. It must be greater than 1.
func WithGrowthFactor(f float64) Option {
	return options.New(func(c *Config) error {
		if !(f > 1) {
			return fmt.Errorf("invalid growth factor: %v", f)
		}
		c.growthFactor = f

		return nil
	})
}

// WithNativeEndian stores multi-byte components in host byte order. It is the default,
// and the order a GPU upload expects.
func WithNativeEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.NativeEngine()
	})
}

// WithLittleEndian stores multi-byte components in little-endian order.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian stores multi-byte components in big-endian order.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithEngine stores multi-byte components with the given engine.
func WithEngine(engine endian.EndianEngine) Option {
	return options.New(func(c *Config) error {
		if engine == nil {
			return errors.New("invalid endian engine: nil")
		}
		c.engine = engine

		return nil
	})
}

// WithLogger sets the logger used for growth and release events.
func WithLogger(l *zap.Logger) Option {
	return options.NoError(func(c *Config) {
		c.logger = l
	})
}
