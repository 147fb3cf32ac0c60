package tensor

// Backend is the set of kernels a compute device provides.
//
// Kernels panic on shape or dtype errors: those are programming errors in
// the calling layer, not recoverable conditions. Binary elementwise kernels
// may reuse the left operand's buffer when it is unique (see RawTensor.IsUnique).
type Backend interface {
	// Elementwise binary operations with NumPy broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul multiplies (M, K) by (K, N).
	MatMul(a, b *RawTensor) *RawTensor
	// MatMulTransB multiplies (M, K) by the transpose of (N, K).
	MatMulTransB(a, b *RawTensor) *RawTensor

	// Conv2D convolves NCHW input with an (out, in, kh, kw) kernel,
	// zero padding each spatial edge by padding.
	Conv2D(input, kernel *RawTensor, stride, padding int) *RawTensor
	// MaxPool2D pads with -Inf, so padded cells never win.
	MaxPool2D(input *RawTensor, kernelSize, stride, padding int) *RawTensor
	// AvgPool2D pads with zeros and always divides by kernelSize².
	AvgPool2D(input *RawTensor, kernelSize, stride, padding int) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor
	Cat(tensors []*RawTensor, dim int) *RawTensor

	// Scalar operations.
	MulScalar(x *RawTensor, scalar any) *RawTensor
	AddScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor

	// Elementwise math.
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	ReLU(x *RawTensor) *RawTensor
	Softmax(x *RawTensor, dim int) *RawTensor

	// Reductions.
	Sum(x *RawTensor) *RawTensor
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	Argmax(x *RawTensor, dim int) *RawTensor

	Name() string
	Device() Device
}
