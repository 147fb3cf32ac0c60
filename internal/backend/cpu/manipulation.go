package cpu

import (
	"fmt"

	"github.com/born-ml/googlenet/internal/tensor"
)

// Cat concatenates tensors along dim. Every other dimension must match.
//
//	a: [2, 64, 28, 28], b: [2, 128, 28, 28]
//	Cat([a, b], 1) → [2, 192, 28, 28]
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()
	dim = shape.NormalizeDim(dim)

	total := 0
	for i, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has %d dimensions, expected %d", i, len(tShape), ndim))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}
		for d := 0; d < ndim; d++ {
			if d == dim {
				total += tShape[d]
			} else if tShape[d] != shape[d] {
				panic(fmt.Sprintf("cat: shape mismatch: tensor %d dimension %d is %d, expected %d (shapes %v vs %v)",
					i, d, tShape[d], shape[d], tShape, shape))
			}
		}
	}

	outShape := shape.Clone()
	outShape[dim] = total
	result := tensor.MustNewRaw(outShape, dtype, cpu.device)

	// Each input contributes one contiguous run of size[dim]*inner bytes per
	// outer index, so the copy is done on raw bytes regardless of dtype.
	outer, _, inner := splitAt(shape, dim)
	elem := dtype.Size()
	dst := result.Data()
	rowBytes := total * inner * elem
	offset := 0
	for _, t := range tensors {
		run := t.Shape()[dim] * inner * elem
		src := t.Data()
		for o := 0; o < outer; o++ {
			copy(dst[o*rowBytes+offset:o*rowBytes+offset+run], src[o*run:(o+1)*run])
		}
		offset += run
	}
	return result
}
