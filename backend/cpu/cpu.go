// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/googlenet/internal/backend/cpu"
	"github.com/born-ml/googlenet/internal/parallel"
	"github.com/born-ml/googlenet/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go implementations of all tensor operations,
// with matrix products delegated to gonum BLAS.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend using one worker per CPU.
//
// Example:
//
//	import (
//	    "github.com/born-ml/googlenet/backend/cpu"
//	    "github.com/born-ml/googlenet/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithWorkers creates a CPU backend that uses at most workers goroutines
// per kernel. workers <= 1 keeps every kernel on the calling goroutine.
func NewWithWorkers(workers int) *Backend {
	if workers <= 1 {
		return internalcpu.NewWithConfig(parallel.Sequential())
	}
	cfg := parallel.DefaultConfig()
	cfg.Enabled = true
	cfg.NumWorkers = workers
	return internalcpu.NewWithConfig(cfg)
}
