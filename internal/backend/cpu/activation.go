package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/googlenet/internal/tensor"
)

// ReLU computes max(0, x). A uniquely held input is rectified in place.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result := x
	if !x.IsUnique() {
		result = tensor.MustNewRaw(x.Shape(), x.DType(), cpu.device)
	}

	switch x.DType() {
	case tensor.Float32:
		relu(result.AsFloat32(), x.AsFloat32())
	case tensor.Float64:
		relu(result.AsFloat64(), x.AsFloat64())
	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
	return result
}

func relu[F float32 | float64](dst, src []F) {
	for i, v := range src {
		if v > 0 {
			dst[i] = v
		} else {
			dst[i] = 0
		}
	}
}

// Softmax computes exp(x_i) / Σ exp(x_j) along dim, subtracting the
// running max first for stability.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	dim = shape.NormalizeDim(dim)
	result := tensor.MustNewRaw(shape, x.DType(), cpu.device)

	switch x.DType() {
	case tensor.Float32:
		softmax(result.AsFloat32(), x.AsFloat32(), shape, dim)
	case tensor.Float64:
		softmax(result.AsFloat64(), x.AsFloat64(), shape, dim)
	default:
		panic(fmt.Sprintf("softmax: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
	return result
}

func softmax[F float32 | float64](dst, src []F, shape tensor.Shape, dim int) {
	outer, size, inner := splitAt(shape, dim)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			base := o*size*inner + i

			maxVal := math.Inf(-1)
			for k := 0; k < size; k++ {
				maxVal = math.Max(maxVal, float64(src[base+k*inner]))
			}

			var total float64
			for k := 0; k < size; k++ {
				e := math.Exp(float64(src[base+k*inner]) - maxVal)
				dst[base+k*inner] = F(e)
				total += e
			}
			for k := 0; k < size; k++ {
				dst[base+k*inner] = F(float64(dst[base+k*inner]) / total)
			}
		}
	}
}
