package tensor

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Device identifies where a tensor's memory lives.
type Device int

// CPU is the only device the engine computes on.
const CPU Device = iota

func (d Device) String() string {
	if d == CPU {
		return "CPU"
	}
	return "Unknown"
}

// buffer is shared between clones of a RawTensor. Kernels may write into
// it in place only while exactly one RawTensor references it.
type buffer struct {
	data     []byte
	refCount atomic.Int32
}

func newBuffer(size int) *buffer {
	b := &buffer{data: make([]byte, size)}
	b.refCount.Store(1)
	return b
}

func (b *buffer) retain() {
	b.refCount.Add(1)
}

func (b *buffer) release() {
	b.refCount.Add(-1)
}

// RawTensor is the untyped storage handed to backends.
type RawTensor struct {
	buf    *buffer
	shape  Shape
	stride []int
	dtype  DataType
	device Device
}

// NewRaw allocates a zeroed RawTensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		buf:    newBuffer(shape.NumElements() * dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// MustNewRaw is NewRaw for kernels that have already validated the shape.
func MustNewRaw(shape Shape, dtype DataType, device Device) *RawTensor {
	r, err := NewRaw(shape, dtype, device)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *RawTensor) Shape() Shape { return r.shape }
func (r *RawTensor) Strides() []int { return r.stride }
func (r *RawTensor) DType() DataType { return r.dtype }
func (r *RawTensor) Device() Device { return r.device }
func (r *RawTensor) NumElements() int { return r.shape.NumElements() }
func (r *RawTensor) ByteSize() int { return r.NumElements() * r.dtype.Size() }

// Data returns the underlying bytes. Writes are visible to every clone.
func (r *RawTensor) Data() []byte { return r.buf.data }

// viewAs reinterprets the buffer as a slice of E after checking the tag.
func viewAs[E DType](r *RawTensor, want DataType) []E {
	if r.dtype != want {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, want))
	}
	if len(r.buf.data) == 0 {
		return nil
	}
	//nolint:gosec // length bounded by NumElements
	return unsafe.Slice((*E)(unsafe.Pointer(&r.buf.data[0])), r.NumElements())
}

func (r *RawTensor) AsFloat32() []float32 { return viewAs[float32](r, Float32) }
func (r *RawTensor) AsFloat64() []float64 { return viewAs[float64](r, Float64) }
func (r *RawTensor) AsInt32() []int32 { return viewAs[int32](r, Int32) }
func (r *RawTensor) AsInt64() []int64 { return viewAs[int64](r, Int64) }

// Clone returns a RawTensor sharing this buffer. The shared buffer is no
// longer unique, so backends will allocate fresh output instead of
// overwriting it in place.
func (r *RawTensor) Clone() *RawTensor {
	r.buf.retain()
	return &RawTensor{
		buf:    r.buf,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// Copy returns a RawTensor with its own freshly copied buffer.
func (r *RawTensor) Copy() *RawTensor {
	out := MustNewRaw(r.shape, r.dtype, r.device)
	copy(out.buf.data, r.buf.data)
	return out
}

// WithShape returns a clone viewing the same buffer under a new shape.
// The element count must match.
func (r *RawTensor) WithShape(shape Shape) *RawTensor {
	if shape.NumElements() != r.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v", r.shape, shape))
	}
	c := r.Clone()
	c.shape = shape.Clone()
	c.stride = shape.ComputeStrides()
	return c
}

// Release drops this reference to the shared buffer.
func (r *RawTensor) Release() {
	r.buf.release()
}

// IsUnique reports whether no other RawTensor shares the buffer.
func (r *RawTensor) IsUnique() bool {
	return r.buf.refCount.Load() == 1
}
