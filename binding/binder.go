package binding

import (
	"fmt"

	"github.com/arloliu/packbuf/buffer"
	"github.com/arloliu/packbuf/errs"
	"github.com/arloliu/packbuf/internal/options"
	"go.uber.org/zap"
)

// Binder keeps a device copy of a packed buffer.
//
// The first Bind creates the device buffer and uploads the written records. Later binds
// reuse it untouched until Invalidate marks the CPU data as changed; the next Bind then
// re-uploads, recreating the device buffer when it is too small.
//
// A Binder shares its buffer's ownership rules: it is not safe for concurrent use.
type Binder struct {
	buf    *buffer.Buffer
	device Device
	label  string
	usage  Usage
	logger *zap.Logger

	deviceBuf DeviceBuffer
	dirty     bool
	released  bool
	uploads   int
}

// NewBinder creates a binder for buf on device. Releasing buf also releases the device
// buffer.
func NewBinder(buf *buffer.Buffer, device Device, opts ...BinderOption) (*Binder, error) {
	if device == nil {
		return nil, errs.ErrNoDevice
	}
	if buf == nil {
		return nil, errs.ErrBufferReleased
	}

	cfg := newBinderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	b := &Binder{
		buf:    buf,
		device: device,
		label:  cfg.label,
		usage:  cfg.usage,
		logger: cfg.logger,
		dirty:  true,
	}
	if b.logger == nil {
		b.logger = Logger()
	}

	if err := buf.OnRelease(b.Release); err != nil {
		return nil, err
	}

	return b, nil
}

// Bind makes the device buffer current and returns it.
func (b *Binder) Bind() (DeviceBuffer, error) {
	if b.released || b.buf.Released() {
		return nil, errs.ErrBufferReleased
	}
	if b.deviceBuf != nil && !b.dirty {
		return b.deviceBuf, nil
	}

	data := b.buf.Bytes()
	if b.deviceBuf != nil && b.deviceBuf.Size() < len(data) {
		b.logger.Debug("device buffer too small, recreating",
			zap.String("label", b.label),
			zap.Int("size", b.deviceBuf.Size()),
			zap.Int("required", len(data)))
		b.deviceBuf.Release()
		b.deviceBuf = nil
	}

	if b.deviceBuf == nil {
		db, err := b.device.CreateBuffer(b.label, b.usage, data)
		if err != nil {
			return nil, fmt.Errorf("create device buffer %q: %w", b.label, err)
		}
		b.deviceBuf = db
	} else if len(data) > 0 {
		if err := b.device.WriteBuffer(b.deviceBuf, 0, data); err != nil {
			return nil, fmt.Errorf("write device buffer %q: %w", b.label, err)
		}
	}

	b.dirty = false
	b.uploads++
	b.logger.Debug("device buffer uploaded",
		zap.String("label", b.label),
		zap.Stringer("usage", b.usage),
		zap.Int("bytes", len(data)),
		zap.Int("records", b.buf.Len()))

	return b.deviceBuf, nil
}

// Invalidate marks the device copy stale so the next Bind uploads again.
func (b *Binder) Invalidate() {
	b.dirty = true
}

// Bound reports whether a device buffer exists and matches the CPU data.
func (b *Binder) Bound() bool {
	return b.deviceBuf != nil && !b.dirty
}

// Uploads returns the number of uploads performed.
func (b *Binder) Uploads() int {
	return b.uploads
}

// Label returns the device buffer label.
func (b *Binder) Label() string {
	return b.label
}

// Release frees the device buffer. It is idempotent and runs automatically when the
// packed buffer is released.
func (b *Binder) Release() {
	if b.released {
		return
	}
	b.released = true

	if b.deviceBuf != nil {
		b.deviceBuf.Release()
		b.deviceBuf = nil
		b.logger.Debug("device buffer released", zap.String("label", b.label))
	}
}

// AttributePointer describes attribute name for a draw that starts at record baseRecord.
func (b *Binder) AttributePointer(name string, baseRecord int) (AttributePointer, error) {
	return Pointer(b.buf.Layout(), name, baseRecord)
}

// Pointer describes attribute name of layout for a draw that starts at record
// baseRecord. The offset is baseRecord*stride plus the attribute offset.
func Pointer(layout buffer.Layout, name string, baseRecord int) (AttributePointer, error) {
	if baseRecord < 0 {
		return AttributePointer{}, fmt.Errorf("%w: base record %d", errs.ErrIndexOutOfRange, baseRecord)
	}

	attr, ok := layout.Attribute(name)
	if !ok {
		return AttributePointer{}, fmt.Errorf("%w: %q", errs.ErrUnknownAttribute, name)
	}

	return AttributePointer{
		Name:       attr.Name,
		Components: attr.Components,
		Type:       attr.Type,
		Normalized: false,
		Stride:     layout.Stride,
		Offset:     baseRecord*layout.Stride + attr.Offset,
	}, nil
}
