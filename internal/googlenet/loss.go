package googlenet

import (
	"fmt"

	"github.com/born-ml/googlenet/internal/nn"
	"github.com/born-ml/googlenet/internal/tensor"
)

// Loss is the multi-head training loss with its components.
type Loss struct {
	Main  float64
	Aux0  float64
	Aux1  float64
	Total float64
}

// CombinedLoss computes
//
//	Total = Main + w.Aux0*Aux0 + w.Aux1*Aux1
//
// where each component is the mean cross-entropy of that head's logits
// against labels. When the scores carry no auxiliary outputs, Total is Main.
// Panics if scores and labels disagree on batch size.
func CombinedLoss[B tensor.Backend](scores ScoreTriple[B], labels *tensor.Tensor[int32, B], w LossWeights) Loss {
	if (scores.Aux0 == nil) != (scores.Aux1 == nil) {
		panic("googlenet: score triple has exactly one auxiliary output")
	}

	l := Loss{Main: nn.CrossEntropy(scores.Main, labels)}
	l.Total = l.Main
	if scores.Aux0 != nil {
		l.Aux0 = nn.CrossEntropy(scores.Aux0, labels)
		l.Aux1 = nn.CrossEntropy(scores.Aux1, labels)
		l.Total += w.Aux0*l.Aux0 + w.Aux1*l.Aux1
	}
	return l
}

// Loss combines scores with the network's configured loss weights.
func (n *Network[B]) Loss(scores ScoreTriple[B], labels *tensor.Tensor[int32, B]) Loss {
	return CombinedLoss(scores, labels, n.cfg.LossWeights)
}

func (l Loss) String() string {
	return fmt.Sprintf("total=%.4f main=%.4f aux0=%.4f aux1=%.4f", l.Total, l.Main, l.Aux0, l.Aux1)
}
