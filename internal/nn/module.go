// Package nn implements the layers GoogLeNet is assembled from.
//
// This package provides:
//   - Module interface: Forward in an explicit Mode, plus parameter enumeration
//   - Parameter: named weight or bias tensors
//   - Conv2D, Linear: learnable layers with Xavier initialization
//   - MaxPool2D, AvgPool2D, ReLU, Dropout, Flatten: parameter-free layers
//   - Sequential: a named chain of modules
//   - CrossEntropyLoss: mean softmax cross-entropy over class logits
//   - StateDict / LoadStateDict: weight import and export by dotted name
package nn

import (
	"github.com/born-ml/googlenet/internal/tensor"
)

// Module is the interface every layer and composite block implements.
//
//	stem := nn.NewSequential[B](
//	    nn.NewConv2D(3, 64, 7, 7, 2, 3, true, backend, rng),
//	    nn.NewReLU[B](),
//	    nn.NewMaxPool2D(3, 2, 1, backend),
//	)
//	out := stem.Forward(images, nn.Inference())
type Module[B tensor.Backend] interface {
	// Forward computes the module output. Shape errors panic with a message
	// naming the layer and the expected and actual dimensions.
	Forward(input *tensor.Tensor[float32, B], mode Mode) *tensor.Tensor[float32, B]

	// Parameters returns every learnable parameter, nested ones included.
	Parameters() []*Parameter[B]

	// NamedParameters returns the same parameters as Parameters, in the same
	// order, keyed by dotted path relative to this module.
	NamedParameters() []NamedParameter[B]
}

// NamedParameter pairs a parameter with its dotted path inside a model,
// for example "inception4a.branch2.1.weight".
type NamedParameter[B tensor.Backend] struct {
	Name  string
	Param *Parameter[B]
}

// Prefix prepends prefix and a dot to every name.
func Prefix[B tensor.Backend](prefix string, params []NamedParameter[B]) []NamedParameter[B] {
	out := make([]NamedParameter[B], len(params))
	for i, p := range params {
		out[i] = NamedParameter[B]{Name: prefix + "." + p.Name, Param: p.Param}
	}
	return out
}

// ParametersOf strips names from a NamedParameters listing.
func ParametersOf[B tensor.Backend](named []NamedParameter[B]) []*Parameter[B] {
	out := make([]*Parameter[B], len(named))
	for i, p := range named {
		out[i] = p.Param
	}
	return out
}

// CountParameters returns the total number of scalar weights in m.
func CountParameters[B tensor.Backend](m Module[B]) int {
	n := 0
	for _, p := range m.Parameters() {
		n += p.Tensor().NumElements()
	}
	return n
}
