package nn

import (
	"fmt"

	"github.com/born-ml/googlenet/internal/tensor"
)

// Flatten collapses [N, C, H, W] into [N, C*H*W].
//
// When features is positive the flattened width is checked against it, so a
// feature map of the wrong spatial size fails here with a dimension error
// instead of being silently reshaped into the following Linear layer.
type Flatten[B tensor.Backend] struct {
	features int
}

// NewFlatten creates a flatten layer expecting the given width; 0 disables the check.
func NewFlatten[B tensor.Backend](features int) *Flatten[B] {
	return &Flatten[B]{features: features}
}

// Forward returns a [N, rest] view of input.
func (f *Flatten[B]) Forward(input *tensor.Tensor[float32, B], _ Mode) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) < 2 {
		panic(fmt.Sprintf("flatten: expected at least 2D input, got shape %v", shape))
	}
	if f.features > 0 && input.NumElements()/shape[0] != f.features {
		panic(fmt.Sprintf("flatten: dimension mismatch: expected %d features per sample, got %d (input shape %v)",
			f.features, input.NumElements()/shape[0], shape))
	}
	return input.Flatten()
}

// Parameters returns nil.
func (f *Flatten[B]) Parameters() []*Parameter[B] {
	return nil
}

// NamedParameters returns nil.
func (f *Flatten[B]) NamedParameters() []NamedParameter[B] {
	return nil
}

func (f *Flatten[B]) String() string {
	if f.features > 0 {
		return fmt.Sprintf("Flatten(features=%d)", f.features)
	}
	return "Flatten()"
}
