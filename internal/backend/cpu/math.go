package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/googlenet/internal/tensor"
)

// Exp computes e^x element-wise.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("exp", x, math.Exp)
}

// Log computes the natural logarithm element-wise.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("log", x, math.Log)
}

// MulScalar multiplies every element by scalar. scalar must have the
// tensor's element type.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := scalarFloat("mulScalar", x, scalar)
	return cpu.unary("mulScalar", x, func(v float64) float64 { return v * s })
}

// AddScalar adds scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := scalarFloat("addScalar", x, scalar)
	return cpu.unary("addScalar", x, func(v float64) float64 { return v + s })
}

// DivScalar divides every element by scalar.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := scalarFloat("divScalar", x, scalar)
	return cpu.unary("divScalar", x, func(v float64) float64 { return v / s })
}

func scalarFloat(op string, x *tensor.RawTensor, scalar any) float64 {
	switch s := scalar.(type) {
	case float32:
		if x.DType() == tensor.Float32 {
			return float64(s)
		}
	case float64:
		if x.DType() == tensor.Float64 {
			return s
		}
	case int32:
		if x.DType() == tensor.Int32 {
			return float64(s)
		}
	case int64:
		if x.DType() == tensor.Int64 {
			return float64(s)
		}
	}
	panic(fmt.Sprintf("%s: scalar %T does not match dtype %s", op, scalar, x.DType()))
}

func (cpu *CPUBackend) unary(op string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result := tensor.MustNewRaw(x.Shape(), x.DType(), cpu.device)
	switch x.DType() {
	case tensor.Float32:
		mapInto(result.AsFloat32(), x.AsFloat32(), f)
	case tensor.Float64:
		mapInto(result.AsFloat64(), x.AsFloat64(), f)
	case tensor.Int32:
		mapInto(result.AsInt32(), x.AsInt32(), f)
	case tensor.Int64:
		mapInto(result.AsInt64(), x.AsInt64(), f)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, x.DType()))
	}
	return result
}

func mapInto[T tensor.DType](dst, src []T, f func(float64) float64) {
	for i, v := range src {
		dst[i] = T(f(float64(v)))
	}
}
