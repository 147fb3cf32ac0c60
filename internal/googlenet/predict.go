package googlenet

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/googlenet/internal/nn"
	"github.com/born-ml/googlenet/internal/tensor"
)

// Predict returns the top-1 class of each image from the main head in
// inference mode.
func (n *Network[B]) Predict(images *tensor.Tensor[float32, B]) *tensor.Tensor[int32, B] {
	return n.Forward(images, nn.Inference()).Main.Argmax(1)
}

// HeadStats summarizes one head's scores over a batch.
type HeadStats struct {
	Head        string
	LogitMean   float64
	LogitStdDev float64
	Confidence  float64 // mean top-1 softmax probability
	Entropy     float64 // mean softmax entropy in nats
}

// Summarize reports statistics for every non-nil head, in main, aux0, aux1 order.
func Summarize[B tensor.Backend](scores ScoreTriple[B]) []HeadStats {
	heads := []struct {
		name   string
		logits *tensor.Tensor[float32, B]
	}{
		{"main", scores.Main},
		{"aux0", scores.Aux0},
		{"aux1", scores.Aux1},
	}

	var out []HeadStats
	for _, h := range heads {
		if h.logits != nil {
			out = append(out, headStats(h.name, h.logits))
		}
	}
	return out
}

func headStats[B tensor.Backend](name string, logits *tensor.Tensor[float32, B]) HeadStats {
	shape := logits.Shape()
	batch, classes := shape[0], shape[1]
	data := logits.Data()

	all := make([]float64, len(data))
	for i, v := range data {
		all[i] = float64(v)
	}
	mean, std := stat.MeanStdDev(all, nil)

	confidence := make([]float64, batch)
	entropy := make([]float64, batch)
	for b := 0; b < batch; b++ {
		probs := nn.LogSoftmax(data[b*classes : (b+1)*classes])
		top := math.Inf(-1)
		for i, lp := range probs {
			probs[i] = math.Exp(lp)
			top = math.Max(top, probs[i])
		}
		confidence[b] = top
		entropy[b] = stat.Entropy(probs)
	}

	return HeadStats{
		Head:        name,
		LogitMean:   mean,
		LogitStdDev: std,
		Confidence:  stat.Mean(confidence, nil),
		Entropy:     stat.Mean(entropy, nil),
	}
}
