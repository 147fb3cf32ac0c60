package googlenet

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/googlenet/internal/nn"
	"github.com/born-ml/googlenet/internal/tensor"
)

// InceptionBlock runs four branches over the same input and concatenates
// their outputs along the channel axis, in this order:
//
//	branch1: 1x1 conv -> ReLU
//	branch2: 1x1 reduce -> ReLU -> 3x3 conv (pad 1) -> ReLU
//	branch3: 1x1 reduce -> ReLU -> 5x5 conv (pad 2) -> ReLU
//	branch4: 3x3 max-pool (stride 1, pad 1) -> 1x1 conv -> ReLU
//
// Every branch preserves height and width, so
// (N, in, H, W) -> (N, out1+out2+out3+out4, H, W).
// The branch order fixes which output channels belong to which branch and
// must not change.
type InceptionBlock[B tensor.Backend] struct {
	params   BlockParameters
	branches [4]*nn.Sequential[B]
}

// NewInceptionBlock builds a block with Xavier-initialized convolutions.
// Panics if params does not validate.
func NewInceptionBlock[B tensor.Backend](params BlockParameters, backend B, rng *rand.Rand) *InceptionBlock[B] {
	if err := params.Validate(); err != nil {
		panic(fmt.Sprintf("inception: %v", err))
	}

	conv := func(in, out, k, pad int) nn.Module[B] {
		return nn.NewConv2D(in, out, k, k, 1, pad, true, backend, rng)
	}
	relu := func() nn.Module[B] { return nn.NewReLU[B]() }

	p := params
	return &InceptionBlock[B]{
		params: p,
		branches: [4]*nn.Sequential[B]{
			nn.NewSequential[B](conv(p.InChannels, p.Out1, 1, 0), relu()),
			nn.NewSequential[B](conv(p.InChannels, p.Reduce2, 1, 0), relu(), conv(p.Reduce2, p.Out2, 3, 1), relu()),
			nn.NewSequential[B](conv(p.InChannels, p.Reduce3, 1, 0), relu(), conv(p.Reduce3, p.Out3, 5, 2), relu()),
			nn.NewSequential[B](nn.NewMaxPool2D(3, 1, 1, backend), conv(p.InChannels, p.Out4, 1, 0), relu()),
		},
	}
}

// Forward computes the four branches and concatenates them on dim 1.
//
// The input is only read; each branch starts with an operation that
// allocates its own output. Panics with a dimension error when the input
// channel count differs from the block's in_channels.
func (b *InceptionBlock[B]) Forward(input *tensor.Tensor[float32, B], mode nn.Mode) *tensor.Tensor[float32, B] {
	outs := make([]*tensor.Tensor[float32, B], len(b.branches))
	for i, branch := range b.branches {
		outs[i] = branch.Forward(input, mode)
	}
	return tensor.Cat(outs, 1)
}

// Branch returns branch i (1-based, matching the parameter names).
func (b *InceptionBlock[B]) Branch(i int) *nn.Sequential[B] {
	if i < 1 || i > len(b.branches) {
		panic(fmt.Sprintf("inception: branch %d out of range [1, 4]", i))
	}
	return b.branches[i-1]
}

// Params returns the block's branch widths.
func (b *InceptionBlock[B]) Params() BlockParameters {
	return b.params
}

// OutChannels returns the concatenated channel count.
func (b *InceptionBlock[B]) OutChannels() int {
	return b.params.OutChannels()
}

// Parameters returns all learnable parameters, branch by branch.
func (b *InceptionBlock[B]) Parameters() []*nn.Parameter[B] {
	return nn.ParametersOf(b.NamedParameters())
}

// NamedParameters names parameters "branch<k>.<index>.<weight|bias>".
func (b *InceptionBlock[B]) NamedParameters() []nn.NamedParameter[B] {
	var params []nn.NamedParameter[B]
	for i, branch := range b.branches {
		params = append(params, nn.Prefix(fmt.Sprintf("branch%d", i+1), branch.NamedParameters())...)
	}
	return params
}

func (b *InceptionBlock[B]) String() string {
	p := b.params
	return fmt.Sprintf("Inception(in=%d, 1x1=%d, 3x3=%d->%d, 5x5=%d->%d, pool_proj=%d, out=%d)",
		p.InChannels, p.Out1, p.Reduce2, p.Out2, p.Reduce3, p.Out3, p.Out4, p.OutChannels())
}
