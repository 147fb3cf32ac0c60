// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/googlenet/backend/cpu"
	"github.com/born-ml/googlenet/tensor"
)

func TestWorkerCountsAgree(t *testing.T) {
	input := tensor.Randn[float32](tensor.Shape{4, 3, 9, 9}, cpu.New(), rand.New(rand.NewSource(1)))
	kernel := tensor.Randn[float32](tensor.Shape{5, 3, 3, 3}, cpu.New(), rand.New(rand.NewSource(2)))

	want := tensor.Conv2D(input, kernel, 1, 1).Data()
	for _, workers := range []int{0, 1, 2, 8} {
		backend := cpu.NewWithWorkers(workers)
		x := tensor.New[float32](input.Raw(), backend)
		k := tensor.New[float32](kernel.Raw(), backend)

		assert.InDeltaSlice(t, want, tensor.Conv2D(x, k, 1, 1).Data(), 1e-5, "workers=%d", workers)
	}
	assert.Equal(t, "CPU", cpu.New().Name())
}
