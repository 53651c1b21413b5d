package buffer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/packbuf/endian"
	"github.com/arloliu/packbuf/errs"
	"github.com/arloliu/packbuf/internal/options"
	"github.com/arloliu/packbuf/internal/pool"
	"github.com/arloliu/packbuf/schema"
	"go.uber.org/zap"
)

// Buffer packs fixed-layout records into one contiguous, growable byte region.
//
// The region is owned by the Buffer. Records are appended at the write frontier (index
// Len()) or overwritten in place at any index up to and including the frontier. Bytes
// at or past ByteLength() are unspecified until written.
//
// Buffer is not safe for concurrent use; see Synchronized.
type Buffer struct {
	schema *schema.Schema
	region []byte
	views  views
	count  int

	sizeAlignment int
	growthFactor  float64
	engine        endian.EndianEngine
	logger        *zap.Logger

	releaseHooks []func()
	released     bool
}

// New creates an empty buffer for records laid out by s.
func New(s *schema.Schema, opts ...Option) (*Buffer, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil schema", errs.ErrInvalidSchema)
	}

	cfg := NewConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	b := newBuffer(s, cfg)
	b.swapRegion(pool.GetRegion(schema.AlignUp(cfg.initialCapacity, cfg.sizeAlignment)))

	return b, nil
}

// FromBytes creates a buffer holding count records copied from raw.
//
// raw must hold at least count*stride bytes; any bytes beyond that are kept as
// capacity with unspecified meaning.
func FromBytes(s *schema.Schema, raw []byte, count int, opts ...Option) (*Buffer, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil schema", errs.ErrInvalidSchema)
	}
	if count < 0 || count > len(raw)/s.Stride() {
		return nil, fmt.Errorf("%w: %d records of stride %d do not fit in %d bytes",
			errs.ErrInvalidPayload, count, s.Stride(), len(raw))
	}

	cfg := NewConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	b := newBuffer(s, cfg)
	region := pool.GetRegion(schema.AlignUp(len(raw), cfg.sizeAlignment))
	copy(region, raw)
	b.swapRegion(region)
	b.count = count

	return b, nil
}

func newBuffer(s *schema.Schema, cfg *Config) *Buffer {
	return &Buffer{
		schema:        s,
		sizeAlignment: cfg.sizeAlignment,
		growthFactor:  cfg.growthFactor,
		engine:        cfg.engine,
		logger:        cfg.loggerOrDefault(),
	}
}

// swapRegion installs region as the backing store and rebuilds every typed view over it
// in the same step. The previous region goes back to the pool.
func (b *Buffer) swapRegion(region []byte) {
	old := b.region
	b.region = region
	b.views = newViews(region, b.engine)

	if old != nil {
		pool.PutRegion(old)
	}
}

// ensureCapacity grows the region until it holds at least required bytes, preserving
// every existing byte.
func (b *Buffer) ensureCapacity(required int) {
	current := len(b.region)
	if required <= current {
		return
	}

	next := nextCapacity(current, required, b.growthFactor, b.sizeAlignment)
	region := pool.GetRegion(next)
	copy(region, b.region)
	b.swapRegion(region)

	b.logger.Debug("packed buffer grown",
		zap.Int("from", current),
		zap.Int("to", next),
		zap.Int("records", b.count),
		zap.Int("stride", b.schema.Stride()))
}

// nextCapacity returns the aligned size after one growth step from current. The result is
// always strictly greater than current and at least required.
func nextCapacity(current, required int, factor float64, alignment int) int {
	next := schema.AlignUp(int(math.Ceil(float64(current)*factor)), alignment)
	if next <= current {
		next = schema.AlignUp(current+1, alignment)
	}
	if next < required {
		next = schema.AlignUp(required, alignment)
	}

	return next
}

func (b *Buffer) checkLive() error {
	if b.released {
		return errs.ErrBufferReleased
	}

	return nil
}

// checkWritable validates index against the write frontier.
func (b *Buffer) checkWritable(index int) error {
	if index < 0 || index > b.count {
		return fmt.Errorf("%w: index %d, record count %d", errs.ErrIndexOutOfRange, index, b.count)
	}

	return nil
}

// checkReadable validates that record index is backed by the region.
func (b *Buffer) checkReadable(index int) error {
	records := len(b.region) / b.schema.Stride()
	if index < 0 || index >= records {
		return fmt.Errorf("%w: index %d, capacity %d records", errs.ErrIndexOutOfRange, index, records)
	}

	return nil
}

// validate checks every field of rec against the schema without writing anything.
func (b *Buffer) validate(rec Record) error {
	for _, f := range rec {
		attr, ok := b.schema.Lookup(f.Name)
		if !ok {
			return fmt.Errorf("%w: %q", errs.ErrUnknownAttribute, f.Name)
		}
		if f.scalar && attr.Components != 1 {
			return fmt.Errorf("%w: scalar value for attribute %q with %d components",
				errs.ErrComponentCountMismatch, f.Name, attr.Components)
		}
		if len(f.Values) != attr.Components {
			return fmt.Errorf("%w: %d values for attribute %q with %d components",
				errs.ErrComponentCountMismatch, len(f.Values), f.Name, attr.Components)
		}
	}

	return nil
}

func (b *Buffer) write(index int, rec Record) {
	base := index * b.schema.Stride()
	for _, f := range rec {
		attr, _ := b.schema.Lookup(f.Name)
		v := b.views.of(attr.Type)
		for j, val := range f.Values {
			v.store(base+attr.ComponentOffset(j), val)
		}
	}
}

// Append writes rec at index Len() and advances the frontier. It returns the index
// written. The region grows first when the new record does not fit.
//
// A record that fails validation is rejected before any byte is written.
func (b *Buffer) Append(rec Record) (int, error) {
	if err := b.checkLive(); err != nil {
		return 0, err
	}
	if err := b.validate(rec); err != nil {
		return 0, err
	}

	index := b.count
	b.ensureCapacity((index + 1) * b.schema.Stride())
	b.write(index, rec)
	b.count++

	return index, nil
}

// Set overwrites the attributes named in rec at index. index may equal Len(), which writes
// the frontier slot without advancing it.
func (b *Buffer) Set(index int, rec Record) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	if err := b.checkWritable(index); err != nil {
		return err
	}
	if err := b.validate(rec); err != nil {
		return err
	}

	b.ensureCapacity((index + 1) * b.schema.Stride())
	b.write(index, rec)

	return nil
}

// SetAttribute stores value as component of attribute name in record index. The value is
// wrapped to the attribute's scalar width; no range check is made.
func (b *Buffer) SetAttribute(index int, name string, component int, value int64) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	if err := b.checkWritable(index); err != nil {
		return err
	}

	attr, err := b.component(name, component)
	if err != nil {
		return err
	}

	b.ensureCapacity((index + 1) * b.schema.Stride())
	b.views.of(attr.Type).store(index*b.schema.Stride()+attr.ComponentOffset(component), value)

	return nil
}

// GetAttribute reads one component of attribute name in record index.
//
// The result is only meaningful for index < Len(); see Get.
func (b *Buffer) GetAttribute(index int, name string, component int) (int64, error) {
	if err := b.checkLive(); err != nil {
		return 0, err
	}

	attr, err := b.component(name, component)
	if err != nil {
		return 0, err
	}
	if err := b.checkReadable(index); err != nil {
		return 0, err
	}

	return b.views.of(attr.Type).load(index*b.schema.Stride() + attr.ComponentOffset(component)), nil
}

func (b *Buffer) component(name string, component int) (schema.Attribute, error) {
	attr, ok := b.schema.Lookup(name)
	if !ok {
		return schema.Attribute{}, fmt.Errorf("%w: %q", errs.ErrUnknownAttribute, name)
	}
	if component < 0 || component >= attr.Components {
		return schema.Attribute{}, fmt.Errorf("%w: component %d of attribute %q with %d components",
			errs.ErrComponentCountMismatch, component, name, attr.Components)
	}

	return attr, nil
}

// Get decodes record index into a Record holding every attribute in schema order.
//
// Only index < Len() is well-defined. A capacity-backed index at or past the frontier
// decodes whatever bytes the region holds there; the caller must not rely on them.
// Indices outside the region fail with errs.ErrIndexOutOfRange.
func (b *Buffer) Get(index int) (Record, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	if err := b.checkReadable(index); err != nil {
		return nil, err
	}

	base := index * b.schema.Stride()
	rec := make(Record, b.schema.Len())
	for i := range rec {
		attr := b.schema.At(i)
		v := b.views.of(attr.Type)
		values := make([]int64, attr.Components)
		for j := range values {
			values[j] = v.load(base + attr.ComponentOffset(j))
		}
		rec[i] = Field{Name: attr.Name, Values: values}
	}

	return rec, nil
}

// Schema returns the record layout.
func (b *Buffer) Schema() *schema.Schema {
	return b.schema
}

// Engine returns the byte order of multi-byte components.
func (b *Buffer) Engine() endian.EndianEngine {
	return b.engine
}

// SizeAlignment returns the alignment of the region size.
func (b *Buffer) SizeAlignment() int {
	return b.sizeAlignment
}

// Len returns the number of records written.
func (b *Buffer) Len() int {
	return b.count
}

// Cap returns the region size in bytes.
func (b *Buffer) Cap() int {
	return len(b.region)
}

// ByteLength returns the number of bytes holding written records, Len()*stride.
func (b *Buffer) ByteLength() int {
	return b.count * b.schema.Stride()
}

// Bytes returns the written part of the region, [0, ByteLength()).
//
// The slice aliases the region and must not be modified. It stays valid until the next
// call that writes, grows or releases the buffer.
func (b *Buffer) Bytes() []byte {
	n := b.ByteLength()
	return b.region[:n:n]
}

// CopyBytes returns a copy of Bytes().
func (b *Buffer) CopyBytes() []byte {
	return bytes.Clone(b.Bytes())
}

// Layout returns the binding descriptor: the stride and every attribute's position.
func (b *Buffer) Layout() Layout {
	l := Layout{
		Stride:     b.schema.Stride(),
		Attributes: make([]AttributeLayout, b.schema.Len()),
	}
	for i := range l.Attributes {
		a := b.schema.At(i)
		l.Attributes[i] = AttributeLayout{
			Name:       a.Name,
			Components: a.Components,
			Type:       a.Type,
			Offset:     a.Offset,
		}
	}

	return l
}

// Clone returns an independent copy of b with the same schema, settings and records.
func (b *Buffer) Clone() (*Buffer, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}

	c := &Buffer{
		schema:        b.schema,
		sizeAlignment: b.sizeAlignment,
		growthFactor:  b.growthFactor,
		engine:        b.engine,
		logger:        b.logger,
		count:         b.count,
	}
	region := pool.GetRegion(len(b.region))
	copy(region, b.region)
	c.swapRegion(region)

	return c, nil
}

// OnRelease registers fn to run once when the buffer is released. Binding adapters use it
// to free device-side objects created from the buffer. Hooks run in reverse order of
// registration.
func (b *Buffer) OnRelease(fn func()) error {
	if err := b.checkLive(); err != nil {
		return err
	}
	b.releaseHooks = append(b.releaseHooks, fn)

	return nil
}

// Released reports whether Release has been called.
func (b *Buffer) Released() bool {
	return b.released
}

// Release runs the release hooks and frees the region. It is idempotent. Every later
// call that reads or writes records fails with errs.ErrBufferReleased.
func (b *Buffer) Release() {
	if b.released {
		return
	}
	b.released = true

	for i := len(b.releaseHooks) - 1; i >= 0; i-- {
		b.releaseHooks[i]()
	}
	b.releaseHooks = nil

	capacity := len(b.region)
	if b.region != nil {
		pool.PutRegion(b.region)
	}
	b.region = nil
	b.views = views{}
	b.count = 0

	b.logger.Debug("packed buffer released", zap.Int("capacity", capacity))
}
