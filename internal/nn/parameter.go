package nn

import (
	"github.com/born-ml/googlenet/internal/tensor"
)

// Parameter is a learnable tensor owned by exactly one layer.
//
// The layer-local name ("weight", "bias") is fixed at construction; the
// full dotted path is assembled by NamedParameters on the way up.
// Parameters are read-only during Forward and may be shared by concurrent
// forward passes.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
}

// NewParameter wraps an initialized tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

// Name returns the layer-local parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Shape returns the parameter's shape.
func (p *Parameter[B]) Shape() tensor.Shape {
	return p.tensor.Shape()
}
