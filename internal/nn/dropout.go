package nn

import (
	"fmt"

	"github.com/born-ml/googlenet/internal/tensor"
)

// Dropout zeroes each element with probability p during training.
//
// Survivors are scaled by 1/(1-p) (inverted dropout), so inference is the
// identity and needs no rescaling. The mask is drawn from the Mode's random
// source; the layer itself holds no mutable state.
//
//	drop := nn.NewDropout[B](0.4)
//	y := drop.Forward(x, nn.Training(rng))
type Dropout[B tensor.Backend] struct {
	p float64
}

// NewDropout creates a dropout layer. Panics unless 0 <= p < 1.
func NewDropout[B tensor.Backend](p float64) *Dropout[B] {
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("dropout: probability %v must be in [0, 1)", p))
	}
	return &Dropout[B]{p: p}
}

// Forward returns input unchanged in inference mode. In training mode it
// returns a new tensor; the input is never modified.
func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B], mode Mode) *tensor.Tensor[float32, B] {
	if !mode.IsTraining() || d.p == 0 {
		return input
	}

	rng := mode.Rand()
	scale := float32(1.0 / (1.0 - d.p))

	out := tensor.Zeros[float32](input.Shape(), input.Backend())
	dst := out.Data()
	for i, v := range input.Data() {
		if rng.Float64() >= d.p {
			dst[i] = v * scale
		}
	}
	return out
}

// P returns the drop probability.
func (d *Dropout[B]) P() float64 {
	return d.p
}

// Parameters returns nil.
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return nil
}

// NamedParameters returns nil.
func (d *Dropout[B]) NamedParameters() []NamedParameter[B] {
	return nil
}

func (d *Dropout[B]) String() string {
	return fmt.Sprintf("Dropout(p=%g)", d.p)
}
