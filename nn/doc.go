// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural network layers GoogLeNet is built from.
//
// # Overview
//
// Every layer implements Module: Forward takes an input tensor and a Mode,
// and the layer reports its learnable parameters by dotted name.
//
//	import (
//	    "github.com/born-ml/googlenet/backend/cpu"
//	    "github.com/born-ml/googlenet/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    rng := rand.New(rand.NewSource(1))
//
//	    model := nn.NewSequential[*cpu.Backend](
//	        nn.NewConv2D(3, 64, 7, 7, 2, 3, true, backend, rng),
//	        nn.NewReLU[*cpu.Backend](),
//	        nn.NewMaxPool2D(3, 2, 1, backend),
//	    )
//
//	    output := model.Forward(input, nn.Inference())
//	}
//
// # Layers
//
// Conv2D: 2D convolution with Xavier initialization (im2col + GEMM)
//
//	conv := nn.NewConv2D(inChannels, outChannels, kh, kw, stride, padding, useBias, backend, rng)
//
// MaxPool2D, AvgPool2D: square pooling with optional padding
//
//	pool := nn.NewMaxPool2D(kernelSize, stride, padding, backend)
//
// Linear, Flatten, Dropout, ReLU
//
// # Modes
//
// Inference() makes dropout the identity. Training(rng) draws dropout masks
// from rng, so equal seeds give equal outputs.
//
// # Loss Functions
//
// CrossEntropy is computed in float64 with log-sum-exp, so large logits do
// not overflow:
//
//	loss := nn.CrossEntropy(logits, labels)
//
// # Parameter Management
//
//	for _, p := range model.NamedParameters() {
//	    fmt.Println(p.Name, p.Param.Shape())  // "0.weight [64 3 7 7]"
//	}
//
//	state := nn.StateDict[*cpu.Backend](model)
//	err := nn.LoadStateDict[*cpu.Backend](model, state)
package nn
