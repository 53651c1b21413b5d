// Package webgpu binds packed buffers to WebGPU devices through
// github.com/cogentcore/webgpu.
package webgpu

import (
	"fmt"

	"github.com/arloliu/packbuf/binding"
	"github.com/arloliu/packbuf/errs"
	"github.com/cogentcore/webgpu/wgpu"
)

// copyAlignment is the WebGPU alignment for buffer sizes and queue write lengths.
const copyAlignment = 4

// Buffer is a WebGPU buffer created by Device.
type Buffer struct {
	*wgpu.Buffer
}

var _ binding.DeviceBuffer = (*Buffer)(nil)

// Size returns the allocated size in bytes.
func (b *Buffer) Size() int {
	return int(b.GetSize()) //nolint:gosec
}

// Device creates vertex and index buffers on a WebGPU device.
type Device struct {
	device *wgpu.Device
	queue  *wgpu.Queue
}

var _ binding.Device = (*Device)(nil)

// NewDevice wraps device and its queue. The queue defaults to device.GetQueue().
func NewDevice(device *wgpu.Device, queue *wgpu.Queue) (*Device, error) {
	if device == nil {
		return nil, errs.ErrNoDevice
	}
	if queue == nil {
		queue = device.GetQueue()
	}

	return &Device{device: device, queue: queue}, nil
}

// CreateBuffer creates a buffer initialized with contents. Usage always includes
// CopyDst so later binds can write into it.
func (d *Device) CreateBuffer(label string, usage binding.Usage, contents []byte) (binding.DeviceBuffer, error) {
	u, err := BufferUsage(usage)
	if err != nil {
		return nil, err
	}

	buf, err := d.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: pad(contents),
		Usage:    u | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	return &Buffer{Buffer: buf}, nil
}

// WriteBuffer writes data into buf at offset through the queue.
func (d *Device) WriteBuffer(buf binding.DeviceBuffer, offset int, data []byte) error {
	b, ok := buf.(*Buffer)
	if !ok {
		return fmt.Errorf("%w: foreign device buffer %T", errs.ErrUnsupportedFormat, buf)
	}
	if offset < 0 || offset%copyAlignment != 0 {
		return fmt.Errorf("%w: write offset %d", errs.ErrIndexOutOfRange, offset)
	}

	return d.queue.WriteBuffer(b.Buffer, uint64(offset), pad(data))
}

// BufferUsage maps a binding usage to WebGPU usage flags.
func BufferUsage(usage binding.Usage) (wgpu.BufferUsage, error) {
	switch usage {
	case binding.UsageVertex:
		return wgpu.BufferUsageVertex, nil
	case binding.UsageIndex:
		return wgpu.BufferUsageIndex, nil
	default:
		return 0, fmt.Errorf("%w: usage %s", errs.ErrUnsupportedFormat, usage)
	}
}

// pad returns data extended with zeros to a non-zero multiple of copyAlignment.
func pad(data []byte) []byte {
	n := max(len(data)+(copyAlignment-len(data)%copyAlignment)%copyAlignment, copyAlignment)
	if n == len(data) {
		return data
	}

	out := make([]byte, n)
	copy(out, data)

	return out
}
