// Package googlenet implements GoogLeNet (Inception v1) on the born tensor
// engine.
//
// The network is assembled from two components:
//   - InceptionBlock: four parallel branches concatenated on the channel axis
//   - AuxiliaryClassifier: a pooled side head producing class logits
//
// Network.Forward returns a ScoreTriple with the two auxiliary outputs and
// the main output. During training the three are combined as
//
//	total = main + 0.3*aux0 + 0.3*aux1
//
// with the weights taken from Config.LossWeights.
//
// Errors: config, table and weights loading return errors wrapped with
// github.com/pkg/errors, carrying ErrInvalidConfig where the input is bad;
// test with errors.Is. The engine packages below (nn, serialization) wrap
// with fmt.Errorf("%w") instead, which errors.Is handles the same way.
// Shape errors in Forward are programming errors and panic.
//
// Example:
//
//	backend := cpu.New()
//	net, err := googlenet.New(googlenet.DefaultConfig(1000), backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	scores := net.Forward(images, nn.Training(rng)) // images: [N, 3, 224, 224]
//	loss := net.Loss(scores, labels)
package googlenet
