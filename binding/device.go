// Package binding uploads packed buffers to a GPU device and describes their attributes
// for vertex input setup.
//
// The package is device-agnostic. A Device creates and fills device-side buffers; the
// webgpu subpackage provides one over WebGPU. Binder tracks whether the device copy is
// current so repeated binds upload only after the CPU data changed.
package binding

import "github.com/arloliu/packbuf/format"

// Usage is the intended use of a device buffer.
type Usage uint8

const (
	// UsageVertex marks a buffer bound as vertex input.
	UsageVertex Usage = iota + 1
	// UsageIndex marks a buffer bound as an index buffer.
	UsageIndex
)

// String returns the usage name.
func (u Usage) String() string {
	switch u {
	case UsageVertex:
		return "vertex"
	case UsageIndex:
		return "index"
	default:
		return "unknown"
	}
}

// DeviceBuffer is a device-side buffer created by a Device.
type DeviceBuffer interface {
	// Size returns the allocated size in bytes.
	Size() int
	// Release frees the device object.
	Release()
}

// Device creates and updates device buffers.
type Device interface {
	// CreateBuffer allocates a buffer initialized with contents. The allocated size may
	// exceed len(contents) when the device pads allocations.
	CreateBuffer(label string, usage Usage, contents []byte) (DeviceBuffer, error)
	// WriteBuffer overwrites buf starting at offset with data.
	WriteBuffer(buf DeviceBuffer, offset int, data []byte) error
}

// AttributePointer describes how one attribute is read from a bound buffer.
type AttributePointer struct {
	Name       string
	Components int
	Type       format.ScalarType
	Normalized bool
	Stride     int
	Offset     int
}
