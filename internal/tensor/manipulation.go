package tensor

// Cat concatenates tensors along dim.
//
// All tensors must agree on every dimension except dim. Negative dims count
// from the end.
//
//	a := tensor.Randn[float32](Shape{2, 64, 28, 28}, backend, rng)
//	b := tensor.Randn[float32](Shape{2, 128, 28, 28}, backend, rng)
//	c := tensor.Cat([]*Tensor[float32, B]{a, b}, 1) // [2, 192, 28, 28]
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}
	if len(tensors) == 1 {
		return tensors[0].Clone()
	}

	raws := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		raws[i] = t.raw
	}
	backend := tensors[0].backend
	return New[T, B](backend.Cat(raws, dim), backend)
}

// Conv2D convolves an NCHW input with an (out, in, kh, kw) kernel.
func Conv2D[T DType, B Backend](input, kernel *Tensor[T, B], stride, padding int) *Tensor[T, B] {
	return New[T, B](input.backend.Conv2D(input.raw, kernel.raw, stride, padding), input.backend)
}

// MaxPool2D takes the maximum over each kernelSize×kernelSize window.
func MaxPool2D[T DType, B Backend](input *Tensor[T, B], kernelSize, stride, padding int) *Tensor[T, B] {
	return New[T, B](input.backend.MaxPool2D(input.raw, kernelSize, stride, padding), input.backend)
}

// AvgPool2D averages each kernelSize×kernelSize window.
func AvgPool2D[T DType, B Backend](input *Tensor[T, B], kernelSize, stride, padding int) *Tensor[T, B] {
	return New[T, B](input.backend.AvgPool2D(input.raw, kernelSize, stride, padding), input.backend)
}

// PoolOutputSize returns the spatial output size of a convolution or pooling
// window: floor((size + 2*padding - kernel) / stride) + 1. It is 0 when the
// window does not fit the padded input at all.
func PoolOutputSize(size, kernel, stride, padding int) int {
	span := size + 2*padding - kernel
	if span < 0 {
		return 0
	}
	return span/stride + 1
}
