// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package googlenet

import (
	"math/rand"

	"github.com/born-ml/googlenet/internal/googlenet"
	"github.com/born-ml/googlenet/tensor"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
// Test for it with errors.Is.
var ErrInvalidConfig = googlenet.ErrInvalidConfig

// Architecture constants.
const (
	InputChannels      = googlenet.InputChannels
	DefaultInputSize   = googlenet.DefaultInputSize
	FeatureChannels    = googlenet.FeatureChannels
	DefaultNumClasses  = googlenet.DefaultNumClasses
	DefaultAuxDropout  = googlenet.DefaultAuxDropout
	DefaultMainDropout = googlenet.DefaultMainDropout
	DefaultAuxWeight   = googlenet.DefaultAuxWeight
)

// Configuration

// Config captures everything needed to build a Network.
type Config = googlenet.Config

// LossWeights scales the auxiliary losses in the combined training loss.
type LossWeights = googlenet.LossWeights

// Overrides captures command line values applied on top of a Config.
type Overrides = googlenet.Overrides

// BlockParameters holds the branch widths of one InceptionBlock.
type BlockParameters = googlenet.BlockParameters

// BlockName identifies one of the nine Inception blocks ("3a" ... "5b").
type BlockName = googlenet.BlockName

// TableEntry pairs a block name with its branch widths.
type TableEntry = googlenet.TableEntry

// DefaultConfig returns the published configuration: auxiliary heads on,
// dropout 0.7 and 0.4, loss weights 0.3 and 0.3.
func DefaultConfig(numClasses int) Config {
	return googlenet.DefaultConfig(numClasses)
}

// DefaultLossWeights returns {Aux0: 0.3, Aux1: 0.3}.
func DefaultLossWeights() LossWeights {
	return googlenet.DefaultLossWeights()
}

// LoadConfig reads and validates a YAML config file.
//
// Example:
//
//	num_classes: 10
//	aux_logits: true
//	loss_weights:
//	  aux0: 0.3
//	  aux1: 0.3
func LoadConfig(path string) (Config, error) {
	return googlenet.LoadConfig(path)
}

// ReferenceTable returns the nine block configurations in network order.
func ReferenceTable() []TableEntry {
	return googlenet.ReferenceTable()
}

// ValidateTable checks that a block table chains from the stem to the
// classifier.
func ValidateTable(table []TableEntry) error {
	return googlenet.ValidateTable(table)
}

// Components

// InceptionBlock runs four convolution branches and concatenates them on
// the channel axis.
type InceptionBlock[B tensor.Backend] = googlenet.InceptionBlock[B]

// NewInceptionBlock builds a block. Panics if params does not validate.
//
// Example:
//
//	block := googlenet.NewInceptionBlock(googlenet.BlockParameters{
//	    InChannels: 192, Out1: 64, Reduce2: 96, Out2: 128, Reduce3: 16, Out3: 32, Out4: 32,
//	}, backend, rng)
//	y := block.Forward(x, nn.Inference())  // (N, 192, H, W) -> (N, 256, H, W)
func NewInceptionBlock[B tensor.Backend](params BlockParameters, backend B, rng *rand.Rand) *InceptionBlock[B] {
	return googlenet.NewInceptionBlock(params, backend, rng)
}

// AuxiliaryClassifier is the side head attached to a 14x14 feature map.
type AuxiliaryClassifier[B tensor.Backend] = googlenet.AuxiliaryClassifier[B]

// NewAuxiliaryClassifier builds a head mapping (N, inChannels, 14, 14) to
// (N, numClasses).
func NewAuxiliaryClassifier[B tensor.Backend](inChannels, numClasses int, backend B, rng *rand.Rand) *AuxiliaryClassifier[B] {
	return googlenet.NewAuxiliaryClassifier(inChannels, numClasses, backend, rng)
}

// Network

// Network is GoogLeNet (Inception v1).
type Network[B tensor.Backend] = googlenet.Network[B]

// ScoreTriple holds the two auxiliary outputs and the main output.
type ScoreTriple[B tensor.Backend] = googlenet.ScoreTriple[B]

// New builds a network with weights seeded from cfg.Seed.
//
// Example:
//
//	backend := cpu.New()
//	net, err := googlenet.New(googlenet.DefaultConfig(1000), backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	scores := net.Forward(images, nn.Inference())
func New[B tensor.Backend](cfg Config, backend B) (*Network[B], error) {
	return googlenet.New(cfg, backend)
}

// NewWithTable builds a network from a custom block table.
func NewWithTable[B tensor.Backend](cfg Config, table []TableEntry, backend B) (*Network[B], error) {
	return googlenet.NewWithTable(cfg, table, backend)
}

// Loss

// Loss is the combined training loss with its components.
type Loss = googlenet.Loss

// CombinedLoss computes main + w.Aux0*aux0 + w.Aux1*aux1.
func CombinedLoss[B tensor.Backend](scores ScoreTriple[B], labels *tensor.Tensor[int32, B], w LossWeights) Loss {
	return googlenet.CombinedLoss(scores, labels, w)
}

// Reporting

// HeadStats summarizes one head's scores over a batch.
type HeadStats = googlenet.HeadStats

// WeightsInfo describes a loaded weights file.
type WeightsInfo = googlenet.WeightsInfo

// Summarize reports logit and softmax statistics for each head present.
func Summarize[B tensor.Backend](scores ScoreTriple[B]) []HeadStats {
	return googlenet.Summarize(scores)
}
