package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/googlenet/internal/tensor"
)

// Xavier (Glorot) uniform initialization.
//
// Values are drawn from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
// Drawing from a seeded rng makes a whole model's weights reproducible; a
// nil rng uses the math/rand global source.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B, rng *rand.Rand) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros[float32](shape, backend)
	uniform := rand.Float64 //nolint:gosec // weight init is not security-critical
	if rng != nil {
		uniform = rng.Float64
	}

	data := t.Data()
	for i := range data {
		data[i] = float32((uniform()*2.0 - 1.0) * bound)
	}
	return t
}

// Zeros creates a zero-filled float32 tensor, used for biases.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}
