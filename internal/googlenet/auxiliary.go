package googlenet

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/googlenet/internal/nn"
	"github.com/born-ml/googlenet/internal/tensor"
)

// AuxiliaryClassifier is the side head attached to an intermediate
// feature map:
//
//	avgpool 5x5 stride 3 -> 1x1 conv to 128 -> ReLU -> flatten (2048)
//	-> fc 2048->1024 -> ReLU -> dropout -> fc 1024->num_classes
//
// It expects a 14x14 map, which the pool reduces to 4x4. Any other size is
// rejected before the first fully connected layer.
type AuxiliaryClassifier[B tensor.Backend] struct {
	inChannels int
	numClasses int

	pool    *nn.AvgPool2D[B]
	conv    *nn.Conv2D[B]
	relu    *nn.ReLU[B]
	flatten *nn.Flatten[B]
	fc1     *nn.Linear[B]
	dropout *nn.Dropout[B]
	fc2     *nn.Linear[B]
}

// NewAuxiliaryClassifier builds a head with the published dropout of 0.7.
func NewAuxiliaryClassifier[B tensor.Backend](inChannels, numClasses int, backend B, rng *rand.Rand) *AuxiliaryClassifier[B] {
	return newAuxiliaryClassifier(inChannels, numClasses, DefaultAuxDropout, backend, rng)
}

func newAuxiliaryClassifier[B tensor.Backend](inChannels, numClasses int, dropout float64, backend B, rng *rand.Rand) *AuxiliaryClassifier[B] {
	if inChannels <= 0 || numClasses <= 0 {
		panic(fmt.Sprintf("auxiliary classifier: invalid in_channels=%d, num_classes=%d", inChannels, numClasses))
	}

	flat := AuxConvChannels * AuxPooledSize * AuxPooledSize
	return &AuxiliaryClassifier[B]{
		inChannels: inChannels,
		numClasses: numClasses,
		pool:       nn.NewAvgPool2D(5, 3, 0, backend),
		conv:       nn.NewConv2D(inChannels, AuxConvChannels, 1, 1, 1, 0, true, backend, rng),
		relu:       nn.NewReLU[B](),
		flatten:    nn.NewFlatten[B](flat),
		fc1:        nn.NewLinear(flat, AuxHiddenFeatures, backend, rng),
		dropout:    nn.NewDropout[B](dropout),
		fc2:        nn.NewLinear(AuxHiddenFeatures, numClasses, backend, rng),
	}
}

// Forward maps (N, C, H, W) to (N, num_classes) logits.
//
// Dropout is active only in training mode. The input is only read.
func (a *AuxiliaryClassifier[B]) Forward(input *tensor.Tensor[float32, B], mode nn.Mode) *tensor.Tensor[float32, B] {
	x := a.pool.Forward(input, mode)
	if s := x.Shape(); len(s) != 4 || s[2] != AuxPooledSize || s[3] != AuxPooledSize {
		panic(fmt.Sprintf("auxiliary classifier: dimension mismatch: expected feature map pooling to %dx%d, got %v from input %v",
			AuxPooledSize, AuxPooledSize, s, input.Shape()))
	}

	x = a.relu.Forward(a.conv.Forward(x, mode), mode)
	x = a.flatten.Forward(x, mode)
	x = a.relu.Forward(a.fc1.Forward(x, mode), mode)
	x = a.dropout.Forward(x, mode)
	return a.fc2.Forward(x, mode)
}

// InChannels returns the expected feature map channel count.
func (a *AuxiliaryClassifier[B]) InChannels() int {
	return a.inChannels
}

// NumClasses returns the logit width.
func (a *AuxiliaryClassifier[B]) NumClasses() int {
	return a.numClasses
}

// Parameters returns all learnable parameters.
func (a *AuxiliaryClassifier[B]) Parameters() []*nn.Parameter[B] {
	return nn.ParametersOf(a.NamedParameters())
}

// NamedParameters returns conv.*, fc1.* and fc2.* parameters.
func (a *AuxiliaryClassifier[B]) NamedParameters() []nn.NamedParameter[B] {
	var params []nn.NamedParameter[B]
	params = append(params, nn.Prefix("conv", a.conv.NamedParameters())...)
	params = append(params, nn.Prefix("fc1", a.fc1.NamedParameters())...)
	params = append(params, nn.Prefix("fc2", a.fc2.NamedParameters())...)
	return params
}

func (a *AuxiliaryClassifier[B]) String() string {
	return fmt.Sprintf("AuxiliaryClassifier(in=%d, classes=%d, dropout=%g)", a.inChannels, a.numClasses, a.dropout.P())
}
