package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/googlenet/internal/tensor"
)

// MatMul computes (M, K) @ (K, N) → (M, N) with gonum's GEMM.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.matmul("matmul", a, b, false)
}

// MatMulTransB computes (M, K) @ (N, K)ᵀ → (M, N). GEMM reads b transposed
// in place, so no transposed copy of b is made.
func (cpu *CPUBackend) MatMulTransB(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.matmul("matmul_transb", a, b, true)
}

func (cpu *CPUBackend) matmul(op string, a, b *tensor.RawTensor, transB bool) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("%s: only 2D tensors supported, got %dD and %dD", op, len(aShape), len(bShape)))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if transB {
		n, kAlt = kAlt, n
	}
	if k != kAlt {
		panic(fmt.Sprintf("%s: shape mismatch [%d,%d] @ [%d,%d]", op, m, k, bShape[0], bShape[1]))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}

	result := tensor.MustNewRaw(tensor.Shape{m, n}, a.DType(), cpu.device)
	tb := blas.NoTrans
	if transB {
		tb = blas.Trans
	}

	switch a.DType() {
	case tensor.Float32:
		blas32.Gemm(blas.NoTrans, tb, 1,
			blas32.General{Rows: m, Cols: k, Stride: k, Data: a.AsFloat32()},
			blas32.General{Rows: bShape[0], Cols: bShape[1], Stride: bShape[1], Data: b.AsFloat32()},
			0,
			blas32.General{Rows: m, Cols: n, Stride: n, Data: result.AsFloat32()},
		)
	case tensor.Float64:
		blas64.Gemm(blas.NoTrans, tb, 1,
			blas64.General{Rows: m, Cols: k, Stride: k, Data: a.AsFloat64()},
			blas64.General{Rows: bShape[0], Cols: bShape[1], Stride: bShape[1], Data: b.AsFloat64()},
			0,
			blas64.General{Rows: m, Cols: n, Stride: n, Data: result.AsFloat64()},
		)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, a.DType()))
	}
	return result
}

// gemm32 overwrites c (m×n) with a (m×k) times b (k×n), all row-major.
func gemm32(c, a, b []float32, m, k, n int) {
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas32.General{Rows: m, Cols: k, Stride: k, Data: a},
		blas32.General{Rows: k, Cols: n, Stride: n, Data: b},
		0,
		blas32.General{Rows: m, Cols: n, Stride: n, Data: c},
	)
}

func gemm64(c, a, b []float64, m, k, n int) {
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas64.General{Rows: m, Cols: k, Stride: k, Data: a},
		blas64.General{Rows: k, Cols: n, Stride: n, Data: b},
		0,
		blas64.General{Rows: m, Cols: n, Stride: n, Data: c},
	)
}
