package nn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/googlenet/internal/tensor"
)

// CrossEntropyLoss computes mean cross-entropy for multi-class classification.
//
// Mathematical Formulation:
//
//	Loss = mean_b( -log_softmax(logits[b])[target[b]] )
//	log_softmax(z)[i] = z[i] - LogSumExp(z)
//
// LogSumExp is evaluated in float64 with gonum's max-shifted implementation,
// so logits far outside float32 exp range neither overflow nor underflow.
//
// Usage:
//
//	criterion := nn.NewCrossEntropyLoss[B](backend)
//	loss := criterion.Forward(scores.Main, labels)  // labels: [batch_size] int32
//	fmt.Println(loss.Item())
type CrossEntropyLoss[B tensor.Backend] struct {
	backend B
}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss[B tensor.Backend](backend B) *CrossEntropyLoss[B] {
	return &CrossEntropyLoss[B]{
		backend: backend,
	}
}

// Forward computes cross-entropy loss.
//
// Parameters:
//   - logits: unnormalized scores with shape [batch_size, num_classes]
//   - targets: class indices with shape [batch_size], values in [0, num_classes)
//
// Returns a [1] tensor holding the batch mean.
func (c *CrossEntropyLoss[B]) Forward(
	logits *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) *tensor.Tensor[float32, B] {
	loss := CrossEntropy(logits, targets)

	raw := tensor.MustNewRaw(tensor.Shape{1}, tensor.Float32, c.backend.Device())
	raw.AsFloat32()[0] = float32(loss)
	return tensor.New[float32, B](raw, c.backend)
}

// CrossEntropy returns the mean cross-entropy of logits against targets in
// float64.
//
// Panics if logits is not 2D, targets does not hold one index per row, or
// any target is out of range.
func CrossEntropy[B tensor.Backend](logits *tensor.Tensor[float32, B], targets *tensor.Tensor[int32, B]) float64 {
	shape := logits.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("cross_entropy: logits must be 2D [batch_size, num_classes], got shape %v", shape))
	}
	batchSize, numClasses := shape[0], shape[1]

	labels := targets.Data()
	if len(labels) != batchSize {
		panic(fmt.Sprintf("cross_entropy: expected %d targets, got %d", batchSize, len(labels)))
	}

	data := logits.Data()
	row := make([]float64, numClasses)
	total := 0.0

	for b := 0; b < batchSize; b++ {
		target := int(labels[b])
		if target < 0 || target >= numClasses {
			panic(fmt.Sprintf("cross_entropy: target %d out of range [0, %d)", target, numClasses))
		}

		for i, v := range data[b*numClasses : (b+1)*numClasses] {
			row[i] = float64(v)
		}
		total += floats.LogSumExp(row) - row[target]
	}

	return total / float64(batchSize)
}

// LogSoftmax returns log(softmax(z)) for a single row of logits.
func LogSoftmax(z []float32) []float64 {
	row := make([]float64, len(z))
	for i, v := range z {
		row[i] = float64(v)
	}
	lse := floats.LogSumExp(row)
	floats.AddConst(-lse, row)
	return row
}

// Accuracy returns the fraction of rows whose argmax equals the target.
func Accuracy[B tensor.Backend](
	logits *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) float32 {
	predicted := logits.Argmax(1).Data()
	labels := targets.Data()
	if len(predicted) != len(labels) {
		panic(fmt.Sprintf("accuracy: %d predictions for %d targets", len(predicted), len(labels)))
	}

	correct := 0
	for i, p := range predicted {
		if p == labels[i] {
			correct++
		}
	}

	return float32(correct) / float32(len(labels))
}
