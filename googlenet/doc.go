// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package googlenet provides GoogLeNet (Inception v1) image classification.
//
// # Overview
//
// The network maps (N, 3, 224, 224) images to class logits through a
// convolutional stem, nine Inception blocks and a pooled linear classifier.
// Two auxiliary classifiers read the outputs of blocks 4a and 4d; their
// logits are combined with the main logits during training:
//
//	total = main + 0.3*aux0 + 0.3*aux1
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/googlenet/backend/cpu"
//	    "github.com/born-ml/googlenet/googlenet"
//	    "github.com/born-ml/googlenet/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    net, err := googlenet.New(googlenet.DefaultConfig(1000), backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    scores := net.Forward(images, nn.Training(rng))
//	    loss := net.Loss(scores, labels)
//	    fmt.Println(loss)  // total=... main=... aux0=... aux1=...
//
//	    predicted := net.Predict(images)  // (N) int32 class ids
//	}
//
// # Weights
//
// SaveWeights and LoadWeights use the SafeTensors format. Parameter names
// follow the module tree, e.g. "inception4a.branch2.2.weight" or
// "aux1.fc1.bias".
package googlenet
