package nn

import (
	"github.com/born-ml/googlenet/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// The backend rectifies in place when the input buffer is not shared, so
// an activation that must survive later stages has to be snapshotted with
// Tensor.Clone before it reaches a ReLU.
//
// Example:
//
//	relu := nn.NewReLU[B]()
//	output := relu.Forward(input, nn.Inference())  // All negative values become 0
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B], _ Mode) *tensor.Tensor[float32, B] {
	return input.ReLU()
}

// Parameters returns an empty slice (ReLU has no trainable parameters).
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// NamedParameters returns nil.
func (r *ReLU[B]) NamedParameters() []NamedParameter[B] {
	return nil
}

func (r *ReLU[B]) String() string {
	return "ReLU()"
}
