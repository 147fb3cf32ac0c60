// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/born-ml/googlenet/internal/tensor"
)

// DType is a constraint for tensor data types.
// Supported types: float32, float64, int32, int64.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// CPU is the host device.
const CPU Device = tensor.CPU

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 224, 224} is a batch of two RGB 224x224 images.
type Shape = tensor.Shape

// Backend is the set of kernels a compute device provides.
//
// Implementations:
//   - backend/cpu: Pure Go, gonum BLAS for matrix products
type Backend = tensor.Backend

// Tensor is a generic type-safe tensor.
//
// T is the element type (float32, float64, int32, int64).
// B is the backend implementation.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Element-wise addition
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Creation functions

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Full[float32](tensor.Shape{2, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// Randn creates a tensor filled with values from the standard normal
// distribution N(0, 1). A nil rng uses the global source.
//
// Example:
//
//	backend := cpu.New()
//	images := tensor.Randn[float32](tensor.Shape{8, 3, 224, 224}, backend, rand.New(rand.NewSource(1)))
func Randn[T DType, B Backend](shape Shape, b B, rng *rand.Rand) *Tensor[T, B] {
	return tensor.Randn[T, B](shape, b, rng)
}

// Rand creates a tensor filled with values from the uniform distribution
// U(0, 1). A nil rng uses the global source.
func Rand[T DType, B Backend](shape Shape, b B, rng *rand.Rand) *Tensor[T, B] {
	return tensor.Rand[T, B](shape, b, rng)
}

// Arange creates a 1D tensor with values from start to end (exclusive).
//
// Example:
//
//	backend := cpu.New()
//	labels := tensor.Arange[int32](0, 10, backend)  // [0, 1, 2, ..., 9]
func Arange[T DType, B Backend](start, end T, b B) *Tensor[T, B] {
	return tensor.Arange[T, B](start, end, b)
}

// FromSlice creates a tensor from a Go slice.
//
// Example:
//
//	backend := cpu.New()
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// New creates a tensor from a raw tensor.
//
// This is a low-level function. Most users should use creation functions like
// Zeros, Ones, or FromSlice instead.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// NewRaw creates a new raw tensor with the given shape, dtype, and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Manipulation functions

// Cat concatenates tensors along a dimension. All other dimensions must match.
//
// Example:
//
//	a := tensor.Ones[float32](tensor.Shape{1, 64, 28, 28}, backend)
//	b := tensor.Zeros[float32](tensor.Shape{1, 128, 28, 28}, backend)
//	c := tensor.Cat([]*tensor.Tensor[float32, *cpu.Backend]{a, b}, 1)  // Shape: [1, 192, 28, 28]
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	return tensor.Cat(tensors, dim)
}

// Conv2D convolves an NCHW input with an (out, in, kh, kw) kernel.
func Conv2D[T DType, B Backend](input, kernel *Tensor[T, B], stride, padding int) *Tensor[T, B] {
	return tensor.Conv2D(input, kernel, stride, padding)
}

// MaxPool2D applies square max pooling over the spatial dimensions.
func MaxPool2D[T DType, B Backend](input *Tensor[T, B], kernelSize, stride, padding int) *Tensor[T, B] {
	return tensor.MaxPool2D(input, kernelSize, stride, padding)
}

// AvgPool2D applies square average pooling over the spatial dimensions.
func AvgPool2D[T DType, B Backend](input *Tensor[T, B], kernelSize, stride, padding int) *Tensor[T, B] {
	return tensor.AvgPool2D(input, kernelSize, stride, padding)
}

// Utility functions

// PoolOutputSize returns floor((size + 2*padding - kernel) / stride) + 1.
func PoolOutputSize(size, kernel, stride, padding int) int {
	return tensor.PoolOutputSize(size, kernel, stride, padding)
}

// BroadcastShapes computes the broadcast shape for two shapes following NumPy broadcasting rules.
// Returns the resulting shape and a flag reporting whether any broadcasting is needed.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
