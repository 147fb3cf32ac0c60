package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/googlenet/internal/tensor"
)

// Conv2D convolves NCHW feature maps with a learned (out, in, kh, kw) kernel
// and adds a per-channel bias.
//
// Spatial output is (size + 2*padding - kernel) / stride + 1, so a 3x3
// kernel with padding 1 and a 5x5 kernel with padding 2 keep H and W.
//
//	conv := nn.NewConv2D(64, 192, 3, 3, 1, 1, true, backend, rng)
//	y := conv.Forward(x, nn.Inference()) // [N, 64, H, W] -> [N, 192, H, W]
type Conv2D[B tensor.Backend] struct {
	in, out int
	kernel  [2]int // height, width
	stride  int
	padding int

	weight *Parameter[B]
	bias   *Parameter[B] // nil when built without bias

	backend B
}

// NewConv2D builds a layer with Xavier uniform weights drawn from rng (nil
// uses the global source) and zero bias. Panics on non-positive sizes or
// negative padding.
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	useBias bool,
	backend B,
	rng *rand.Rand,
) *Conv2D[B] {
	switch {
	case inChannels <= 0 || outChannels <= 0:
		panic(fmt.Sprintf("conv2d: channels must be positive, got in=%d out=%d", inChannels, outChannels))
	case kernelH <= 0 || kernelW <= 0:
		panic(fmt.Sprintf("conv2d: kernel must be positive, got %dx%d", kernelH, kernelW))
	case stride <= 0:
		panic(fmt.Sprintf("conv2d: stride must be positive, got %d", stride))
	case padding < 0:
		panic(fmt.Sprintf("conv2d: padding must be >= 0, got %d", padding))
	}

	area := kernelH * kernelW
	c := &Conv2D[B]{
		in:      inChannels,
		out:     outChannels,
		kernel:  [2]int{kernelH, kernelW},
		stride:  stride,
		padding: padding,
		weight: NewParameter("weight",
			Xavier(inChannels*area, outChannels*area, tensor.Shape{outChannels, inChannels, kernelH, kernelW}, backend, rng)),
		backend: backend,
	}
	if useBias {
		c.bias = NewParameter("bias", Zeros(tensor.Shape{outChannels}, backend))
	}
	return c
}

// Forward convolves input; mode is ignored.
//
// Panics with a dimension mismatch when input is not 4D or its channel
// count differs from the layer's.
func (c *Conv2D[B]) Forward(input *tensor.Tensor[float32, B], _ Mode) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 || shape[1] != c.in {
		panic(fmt.Sprintf("conv2d: dimension mismatch: expected %d input channels, got shape %v", c.in, shape))
	}

	y := tensor.New[float32, B](c.backend.Conv2D(input.Raw(), c.weight.Tensor().Raw(), c.stride, c.padding), c.backend)
	if c.bias == nil {
		return y
	}

	b := c.bias.Tensor().Reshape(1, c.out, 1, 1)
	y = y.Add(b)
	b.Raw().Release()
	return y
}

// Parameters returns weight and, when present, bias.
func (c *Conv2D[B]) Parameters() []*Parameter[B] {
	return ParametersOf(c.NamedParameters())
}

// NamedParameters returns "weight" and, when present, "bias".
func (c *Conv2D[B]) NamedParameters() []NamedParameter[B] {
	named := []NamedParameter[B]{{Name: "weight", Param: c.weight}}
	if c.bias != nil {
		named = append(named, NamedParameter[B]{Name: "bias", Param: c.bias})
	}
	return named
}

func (c *Conv2D[B]) String() string {
	return fmt.Sprintf("Conv2D(%d->%d, kernel=%dx%d, stride=%d, padding=%d, bias=%t)",
		c.in, c.out, c.kernel[0], c.kernel[1], c.stride, c.padding, c.bias != nil)
}

// Weight returns the kernel parameter.
func (c *Conv2D[B]) Weight() *Parameter[B] { return c.weight }

// Bias returns the bias parameter, or nil.
func (c *Conv2D[B]) Bias() *Parameter[B] { return c.bias }

// ComputeOutputSize returns the output height and width for an input of
// inputH x inputW.
func (c *Conv2D[B]) ComputeOutputSize(inputH, inputW int) [2]int {
	return [2]int{
		tensor.PoolOutputSize(inputH, c.kernel[0], c.stride, c.padding),
		tensor.PoolOutputSize(inputW, c.kernel[1], c.stride, c.padding),
	}
}
