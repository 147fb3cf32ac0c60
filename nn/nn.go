// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/googlenet/internal/nn"
	"github.com/born-ml/googlenet/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a learnable tensor owned by a module.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NamedParameter pairs a parameter with its dotted path inside a model.
type NamedParameter[B tensor.Backend] = nn.NamedParameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Mode selects inference or training behavior for Forward.
type Mode = nn.Mode

// Inference returns the mode in which dropout is the identity.
func Inference() Mode {
	return nn.Inference()
}

// Training returns a mode whose dropout masks are drawn from rng.
// Panics if rng is nil.
//
// Example:
//
//	out := model.Forward(x, nn.Training(rand.New(rand.NewSource(1))))
func Training(rng *rand.Rand) Mode {
	return nn.Training(rng)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
// A nil rng uses the global source.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(1024, 1000, backend, rng)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B, rng *rand.Rand) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend, rng)
}

// Conv2D represents a 2D convolutional layer.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a new 2D convolutional layer with Xavier initialization.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv2D(3, 64, 7, 7, 2, 3, true, backend, rng)  // 7x7 stride 2 padding 3
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	useBias bool,
	backend B,
	rng *rand.Rand,
) *Conv2D[B] {
	return nn.NewConv2D(inChannels, outChannels, kernelH, kernelW, stride, padding, useBias, backend, rng)
}

// MaxPool2D represents a 2D max pooling layer.
type MaxPool2D[B tensor.Backend] = nn.MaxPool2D[B]

// NewMaxPool2D creates a new 2D max pooling layer. Padded cells never win.
//
// Example:
//
//	pool := nn.NewMaxPool2D(3, 2, 1, backend)  // kernel=3, stride=2, padding=1
func NewMaxPool2D[B tensor.Backend](kernelSize, stride, padding int, backend B) *MaxPool2D[B] {
	return nn.NewMaxPool2D(kernelSize, stride, padding, backend)
}

// AvgPool2D represents a 2D average pooling layer.
type AvgPool2D[B tensor.Backend] = nn.AvgPool2D[B]

// NewAvgPool2D creates a new 2D average pooling layer. Padded cells count
// toward the divisor.
func NewAvgPool2D[B tensor.Backend](kernelSize, stride, padding int, backend B) *AvgPool2D[B] {
	return nn.NewAvgPool2D(kernelSize, stride, padding, backend)
}

// Flatten reshapes (N, ...) to (N, features).
type Flatten[B tensor.Backend] = nn.Flatten[B]

// NewFlatten creates a flatten layer. A positive features value is checked
// against every input; 0 accepts any size.
func NewFlatten[B tensor.Backend](features int) *Flatten[B] {
	return nn.NewFlatten[B](features)
}

// Dropout zeroes activations with probability p during training.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// NewDropout creates an inverted dropout layer. Panics unless 0 <= p < 1.
func NewDropout[B tensor.Backend](p float64) *Dropout[B] {
	return nn.NewDropout[B](p)
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new ReLU activation layer.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Containers

// Sequential chains modules; parameters are named by child index.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a sequential container.
//
// Example:
//
//	branch := nn.NewSequential[*cpu.Backend](
//	    nn.NewConv2D(192, 96, 1, 1, 1, 0, true, backend, rng),
//	    nn.NewReLU[*cpu.Backend](),
//	    nn.NewConv2D(96, 128, 3, 3, 1, 1, true, backend, rng),
//	    nn.NewReLU[*cpu.Backend](),
//	)
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential[B](modules...)
}

// Loss functions

// CrossEntropyLoss is softmax cross-entropy over integer class labels.
type CrossEntropyLoss[B tensor.Backend] = nn.CrossEntropyLoss[B]

// NewCrossEntropyLoss creates a cross-entropy loss module.
func NewCrossEntropyLoss[B tensor.Backend](backend B) *CrossEntropyLoss[B] {
	return nn.NewCrossEntropyLoss(backend)
}

// CrossEntropy returns the mean cross-entropy of logits (N, C) against
// labels (N).
func CrossEntropy[B tensor.Backend](logits *tensor.Tensor[float32, B], labels *tensor.Tensor[int32, B]) float64 {
	return nn.CrossEntropy(logits, labels)
}

// Accuracy returns the fraction of rows whose argmax equals the label.
func Accuracy[B tensor.Backend](logits *tensor.Tensor[float32, B], labels *tensor.Tensor[int32, B]) float32 {
	return nn.Accuracy(logits, labels)
}

// State

// CountParameters returns the number of scalar weights in m.
func CountParameters[B tensor.Backend](m Module[B]) int {
	return nn.CountParameters(m)
}

// StateDict returns m's parameters keyed by dotted name. The raw tensors
// share storage with the parameters.
func StateDict[B tensor.Backend](m Module[B]) map[string]*tensor.RawTensor {
	return nn.StateDict(m)
}

// LoadStateDict copies state into m's parameters. Nothing is written unless
// every name, shape and dtype matches.
func LoadStateDict[B tensor.Backend](m Module[B], state map[string]*tensor.RawTensor) error {
	return nn.LoadStateDict(m, state)
}
