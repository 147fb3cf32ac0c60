package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/googlenet/internal/tensor"
)

// Linear is a dense layer computing y = x·Wᵀ + b.
//
// W has shape (out, in) and b has shape (out). Input must be (N, in);
// the classifier heads feed it through Flatten first.
type Linear[B tensor.Backend] struct {
	in, out int
	weight  *Parameter[B]
	bias    *Parameter[B]
	backend B
}

// NewLinear builds a Linear layer with Xavier weights and zero bias.
// A nil rng draws from the global source.
func NewLinear[B tensor.Backend](in, out int, backend B, rng *rand.Rand) *Linear[B] {
	if in <= 0 || out <= 0 {
		panic(fmt.Sprintf("linear: invalid features in=%d, out=%d", in, out))
	}
	return &Linear[B]{
		in:      in,
		out:     out,
		weight:  NewParameter("weight", Xavier(in, out, tensor.Shape{out, in}, backend, rng)),
		bias:    NewParameter("bias", Zeros(tensor.Shape{out}, backend)),
		backend: backend,
	}
}

// Forward maps (N, in) to (N, out).
func (l *Linear[B]) Forward(x *tensor.Tensor[float32, B], _ Mode) *tensor.Tensor[float32, B] {
	shape := x.Shape()
	switch {
	case len(shape) != 2:
		panic(fmt.Sprintf("linear: expected 2D input [batch, features], got shape %v", shape))
	case shape[1] != l.in:
		panic(fmt.Sprintf("linear: dimension mismatch: expected %d input features, got %d", l.in, shape[1]))
	}

	y := x.MatMulT(l.weight.Tensor())

	// Row view of the bias broadcasts over the batch.
	row := l.bias.Tensor().Reshape(1, l.out)
	y = y.Add(row)
	row.Raw().Release()
	return y
}

func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

func (l *Linear[B]) NamedParameters() []NamedParameter[B] {
	return []NamedParameter[B]{{Name: "weight", Param: l.weight}, {Name: "bias", Param: l.bias}}
}

func (l *Linear[B]) String() string {
	return fmt.Sprintf("Linear(in_features=%d, out_features=%d)", l.in, l.out)
}

// Weight is the (out, in) matrix.
func (l *Linear[B]) Weight() *Parameter[B] { return l.weight }

// Bias is the (out) vector.
func (l *Linear[B]) Bias() *Parameter[B] { return l.bias }
