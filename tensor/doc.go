// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the GoogLeNet engine.
//
// # Overview
//
// Tensors are the fundamental data structure of the engine. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NCHW convolution and pooling for image batches
//   - Copy-on-write buffers shared between clones
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/googlenet/tensor"
//	    "github.com/born-ml/googlenet/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Create tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    // Tensor operations
//	    z := x.Add(y)
//	    result := x.MatMul(y.T())
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType constraint:
//   - float32, float64 (activations and weights)
//   - int32, int64 (class labels and argmax indices)
//
// # Memory
//
// Clone shares the underlying buffer and marks it non-unique, so no kernel
// writes into it afterwards. Kernels that may reuse an operand's buffer
// (Add, Sub, Mul, Div, ReLU) only do so when the operand holds the sole
// reference. Copy always allocates.
//
// # Errors
//
// Shape and dtype errors inside tensor operations panic: they are
// programming errors in the calling layer. Constructors that take user data
// (FromSlice, NewRaw) return errors instead.
package tensor
