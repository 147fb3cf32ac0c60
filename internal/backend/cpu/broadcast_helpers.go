package cpu

import (
	"github.com/born-ml/googlenet/internal/tensor"
)

// computeBroadcastStridesForShape returns strides for reading inShape as if
// it had outShape. Missing leading dimensions and size-1 dimensions get
// stride 0.
func computeBroadcastStridesForShape(inShape, outShape tensor.Shape) []int {
	strides := make([]int, len(outShape))
	offset := len(outShape) - len(inShape)
	orig := inShape.ComputeStrides()

	for i := range strides {
		j := i - offset
		if j < 0 || inShape[j] == 1 {
			continue
		}
		strides[i] = orig[j]
	}
	return strides
}

// computeFlatIndex maps a flat output index to a flat source index.
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flat := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flat += coord * inStrides[i]
	}
	return flat
}
