package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/googlenet/internal/tensor"
)

// Sum adds every element into a one-element result of shape [1].
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := tensor.MustNewRaw(tensor.Shape{1}, x.DType(), cpu.device)

	switch x.DType() {
	case tensor.Float32:
		result.AsFloat32()[0] = sum(x.AsFloat32())
	case tensor.Float64:
		result.AsFloat64()[0] = sum(x.AsFloat64())
	case tensor.Int32:
		result.AsInt32()[0] = sum(x.AsInt32())
	case tensor.Int64:
		result.AsInt64()[0] = sum(x.AsInt64())
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}
	return result
}

func sum[T tensor.DType](data []T) T {
	var s T
	for _, v := range data {
		s += v
	}
	return s
}

// SumDim sums along dim (negative dims count from the end). With keepDim
// the reduced dimension stays as size 1.
//
//	x: [2, 3, 4]
//	SumDim(x, -1, true)  → [2, 3, 1]
//	SumDim(x, -1, false) → [2, 3]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	dim = shape.NormalizeDim(dim)
	result := tensor.MustNewRaw(reducedShape(shape, dim, keepDim), x.DType(), cpu.device)

	switch x.DType() {
	case tensor.Float32:
		sumDim(result.AsFloat32(), x.AsFloat32(), shape, dim)
	case tensor.Float64:
		sumDim(result.AsFloat64(), x.AsFloat64(), shape, dim)
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
	return result
}

// MeanDim averages along dim.
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	result := cpu.SumDim(x, dim, keepDim)
	size := x.Shape()[x.Shape().NormalizeDim(dim)]

	switch result.DType() {
	case tensor.Float32:
		scale(result.AsFloat32(), 1/float32(size))
	case tensor.Float64:
		scale(result.AsFloat64(), 1/float64(size))
	}
	return result
}

func scale[F float32 | float64](data []F, s F) {
	for i := range data {
		data[i] *= s
	}
}

// Argmax returns int32 indices of the largest value along dim, removing dim.
// Ties resolve to the lowest index.
func (cpu *CPUBackend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	dim = shape.NormalizeDim(dim)
	result := tensor.MustNewRaw(reducedShape(shape, dim, false), tensor.Int32, cpu.device)

	switch x.DType() {
	case tensor.Float32:
		argmax(result.AsInt32(), x.AsFloat32(), shape, dim)
	case tensor.Float64:
		argmax(result.AsInt32(), x.AsFloat64(), shape, dim)
	case tensor.Int32:
		argmax(result.AsInt32(), x.AsInt32(), shape, dim)
	case tensor.Int64:
		argmax(result.AsInt32(), x.AsInt64(), shape, dim)
	default:
		panic(fmt.Sprintf("argmax: unsupported dtype %s", x.DType()))
	}
	return result
}

// reducedShape drops dim, or sets it to 1 when keepDim is set. Reducing a
// 1D tensor without keepDim yields shape [1].
func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape))
	out = append(out, shape[:dim]...)
	out = append(out, shape[dim+1:]...)
	if len(out) == 0 {
		out = tensor.Shape{1}
	}
	return out
}

// splitAt views shape as [outer, size, inner] around dim.
func splitAt(shape tensor.Shape, dim int) (outer, size, inner int) {
	outer, inner = 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	return outer, shape[dim], inner
}

func sumDim[F float32 | float64](dst, src []F, shape tensor.Shape, dim int) {
	outer, size, inner := splitAt(shape, dim)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			var s F
			for k := 0; k < size; k++ {
				s += src[(o*size+k)*inner+i]
			}
			dst[o*inner+i] = s
		}
	}
}

func argmax[T tensor.DType](dst []int32, src []T, shape tensor.Shape, dim int) {
	outer, size, inner := splitAt(shape, dim)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			best := 0
			bestVal := src[o*size*inner+i]
			for k := 1; k < size; k++ {
				v := src[(o*size+k)*inner+i]
				if v > bestVal || (isNaN(bestVal) && !isNaN(v)) {
					best, bestVal = k, v
				}
			}
			dst[o*inner+i] = int32(best) //nolint:gosec // G115: bounded by dimension size
		}
	}
}

func isNaN[T tensor.DType](v T) bool {
	return math.IsNaN(float64(v))
}
