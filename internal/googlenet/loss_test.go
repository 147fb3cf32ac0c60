package googlenet_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/googlenet/internal/backend/cpu"
	"github.com/born-ml/googlenet/internal/googlenet"
	"github.com/born-ml/googlenet/internal/tensor"
)

// referenceCE is the mean of -log softmax(logits)[label] computed directly.
func referenceCE(logits [][]float64, labels []int) float64 {
	total := 0.0
	for i, row := range logits {
		sum := 0.0
		for _, v := range row {
			sum += math.Exp(v)
		}
		total += math.Log(sum) - row[labels[i]]
	}
	return total / float64(len(logits))
}

func logitsTensor(t *testing.T, backend backendT, rows [][]float64) *tensor.Tensor[float32, backendT] {
	t.Helper()
	var flat []float32
	for _, row := range rows {
		for _, v := range row {
			flat = append(flat, float32(v))
		}
	}
	out, err := tensor.FromSlice(flat, tensor.Shape{len(rows), len(rows[0])}, backend)
	require.NoError(t, err)
	return out
}

func TestCombinedLoss(t *testing.T) {
	backend := cpu.New()

	main := [][]float64{{2, 0.5, -1}, {0.1, 0.2, 0.3}}
	aux0 := [][]float64{{0, 0, 0}, {1, -1, 0}}
	aux1 := [][]float64{{-2, 3, 1}, {0.5, 0.5, 4}}
	labels := []int{0, 2}

	targets, err := tensor.FromSlice([]int32{0, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	scores := googlenet.ScoreTriple[backendT]{
		Aux0: logitsTensor(t, backend, aux0),
		Aux1: logitsTensor(t, backend, aux1),
		Main: logitsTensor(t, backend, main),
	}

	l := googlenet.CombinedLoss(scores, targets, googlenet.DefaultLossWeights())

	assert.InDelta(t, referenceCE(main, labels), l.Main, 1e-6)
	assert.InDelta(t, referenceCE(aux0, labels), l.Aux0, 1e-6)
	assert.InDelta(t, referenceCE(aux1, labels), l.Aux1, 1e-6)
	assert.InDelta(t, l.Main+0.3*l.Aux0+0.3*l.Aux1, l.Total, 1e-9)
	assert.InDelta(t, (math.Log(3)+math.Log(math.E+math.Exp(-1)+1))/2, l.Aux0, 1e-6)

	custom := googlenet.CombinedLoss(scores, targets, googlenet.LossWeights{Aux0: 1, Aux1: 0})
	assert.InDelta(t, l.Main+l.Aux0, custom.Total, 1e-9)
}

func TestCombinedLossWithoutAux(t *testing.T) {
	backend := cpu.New()
	targets, err := tensor.FromSlice([]int32{1}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	main := logitsTensor(t, backend, [][]float64{{0, 0, 0, 0}})
	l := googlenet.CombinedLoss(googlenet.ScoreTriple[backendT]{Main: main}, targets, googlenet.DefaultLossWeights())

	assert.InDelta(t, math.Log(4), l.Main, 1e-6)
	assert.Equal(t, l.Main, l.Total)
	assert.Zero(t, l.Aux0)
	assert.Zero(t, l.Aux1)

	assert.Panics(t, func() {
		googlenet.CombinedLoss(googlenet.ScoreTriple[backendT]{Main: main, Aux0: main}, targets, googlenet.DefaultLossWeights())
	}, "exactly one aux output")

	assert.Panics(t, func() {
		bad, _ := tensor.FromSlice([]int32{9}, tensor.Shape{1}, backend)
		googlenet.CombinedLoss(googlenet.ScoreTriple[backendT]{Main: main}, bad, googlenet.DefaultLossWeights())
	}, "label out of range")
}

func TestLossString(t *testing.T) {
	l := googlenet.Loss{Main: 1, Aux0: 2, Aux1: 3, Total: 2.5}
	assert.Equal(t, "total=2.5000 main=1.0000 aux0=2.0000 aux1=3.0000", l.String())
}
