// Package cpu implements the tensor.Backend kernels in pure Go.
//
// Matrix products go through gonum's BLAS; convolution lowers to im2col
// followed by GEMM, fanned out per sample with the parallel package.
package cpu

import (
	"fmt"

	"github.com/born-ml/googlenet/internal/parallel"
	"github.com/born-ml/googlenet/internal/tensor"
)

// CPUBackend computes on host memory. It holds no mutable state and is safe
// for concurrent use.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a CPU backend using every available core.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit worker configuration.
// Pass parallel.Sequential() to keep every kernel on the calling goroutine.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{device: tensor.CPU, par: cfg}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b, func(x, y float64) float64 { return x / y })
}

// binary runs op over a and b. When no broadcasting is needed and a holds
// the only reference to its buffer, the result is written into a.
func (cpu *CPUBackend) binary(name string, a, b *tensor.RawTensor, op func(x, y float64) float64) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	var result *tensor.RawTensor
	if !needsBroadcast && a.IsUnique() {
		result = a
	} else {
		result = tensor.MustNewRaw(outShape, a.DType(), cpu.device)
	}

	switch a.DType() {
	case tensor.Float32:
		applyBinary(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, needsBroadcast, op)
	case tensor.Float64:
		applyBinary(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, needsBroadcast, op)
	case tensor.Int32:
		applyBinary(result.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, needsBroadcast, op)
	case tensor.Int64:
		applyBinary(result.AsInt64(), a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape, needsBroadcast, op)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}
	return result
}

func applyBinary[T tensor.DType](dst, a, b []T, aShape, bShape, outShape tensor.Shape, broadcast bool, op func(x, y float64) float64) {
	if !broadcast {
		for i := range dst {
			dst[i] = T(op(float64(a[i]), float64(b[i])))
		}
		return
	}

	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)
	coords := make([]int, len(outShape))
	ai, bi := 0, 0
	for i := range dst {
		dst[i] = T(op(float64(a[ai]), float64(b[bi])))

		// Advance the output coordinate like an odometer, keeping both
		// source offsets in step.
		for d := len(outShape) - 1; d >= 0; d-- {
			coords[d]++
			ai += aStrides[d]
			bi += bStrides[d]
			if coords[d] < outShape[d] {
				break
			}
			ai -= aStrides[d] * outShape[d]
			bi -= bStrides[d] * outShape[d]
			coords[d] = 0
		}
	}
}

// Reshape returns a view of t under newShape sharing the same buffer.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			t.Shape(), newShape))
	}
	return t.WithShape(newShape)
}

// Transpose permutes dimensions. With no axes the order is reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}
	result := tensor.MustNewRaw(newShape, t.DType(), cpu.device)

	switch t.DType() {
	case tensor.Float32:
		transpose(result.AsFloat32(), t.AsFloat32(), shape, newShape, axes)
	case tensor.Float64:
		transpose(result.AsFloat64(), t.AsFloat64(), shape, newShape, axes)
	case tensor.Int32:
		transpose(result.AsInt32(), t.AsInt32(), shape, newShape, axes)
	case tensor.Int64:
		transpose(result.AsInt64(), t.AsInt64(), shape, newShape, axes)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}
	return result
}

func transpose[T tensor.DType](dst, src []T, shape, newShape tensor.Shape, axes []int) {
	srcStrides := shape.ComputeStrides()
	// Stride in src for each dimension of dst.
	permuted := make([]int, len(axes))
	for i, ax := range axes {
		permuted[i] = srcStrides[ax]
	}
	dstStrides := newShape.ComputeStrides()
	for i := range dst {
		dst[i] = src[computeFlatIndex(i, dstStrides, permuted)]
	}
}
