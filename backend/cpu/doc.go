// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Im2col lowering for convolutions, GEMM through gonum BLAS
//   - Float32 and Float64 support
//   - Per-sample parallelism across a batch
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/googlenet/backend/cpu"
//	    "github.com/born-ml/googlenet/googlenet"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    net, err := googlenet.New(googlenet.DefaultConfig(1000), backend)
//	    ...
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. It holds no mutable state and
// each kernel writes only to its own output.
package cpu
