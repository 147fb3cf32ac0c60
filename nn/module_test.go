// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/googlenet/backend/cpu"
	"github.com/born-ml/googlenet/nn"
	"github.com/born-ml/googlenet/tensor"
)

type backendT = *cpu.Backend

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name   string
		module nn.Module[backendT]
		params int
	}{
		{"Linear", nn.NewLinear(10, 5, backend, rng), 2},
		{"Conv2D", nn.NewConv2D(3, 4, 3, 3, 1, 1, false, backend, rng), 1},
		{"MaxPool2D", nn.NewMaxPool2D(3, 2, 1, backend), 0},
		{"AvgPool2D", nn.NewAvgPool2D(2, 2, 0, backend), 0},
		{"ReLU", nn.NewReLU[backendT](), 0},
		{"Dropout", nn.NewDropout[backendT](0.4), 0},
		{"Flatten", nn.NewFlatten[backendT](0), 0},
		{"Sequential", nn.NewSequential[backendT](
			nn.NewLinear(10, 5, backend, rng),
			nn.NewReLU[backendT](),
			nn.NewLinear(5, 2, backend, rng),
		), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.module.Parameters(), tt.params)
			assert.Len(t, tt.module.NamedParameters(), tt.params)
		})
	}
}

func TestSequentialPipeline(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(1))

	model := nn.NewSequential[backendT](
		nn.NewConv2D(3, 8, 3, 3, 1, 1, true, backend, rng),
		nn.NewReLU[backendT](),
		nn.NewMaxPool2D(2, 2, 0, backend),
		nn.NewFlatten[backendT](8*4*4),
		nn.NewDropout[backendT](0.5),
		nn.NewLinear(128, 10, backend, rng),
	)

	input := tensor.Randn[float32](tensor.Shape{2, 3, 8, 8}, backend, rng)
	logits := model.Forward(input, nn.Inference())
	require.Equal(t, tensor.Shape{2, 10}, logits.Shape())

	labels, err := tensor.FromSlice([]int32{1, 7}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	assert.Greater(t, nn.CrossEntropy(logits, labels), 0.0)

	acc := nn.Accuracy(logits, labels)
	assert.True(t, acc >= 0 && acc <= 1)

	assert.Equal(t, 8*3*3*3+8+128*10+10, nn.CountParameters[backendT](model))

	state := nn.StateDict[backendT](model)
	assert.Contains(t, state, "0.weight")
	assert.Contains(t, state, "5.bias")
	require.NoError(t, nn.LoadStateDict[backendT](model, state))
}
