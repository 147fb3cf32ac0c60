package nn

import (
	"math/rand"
)

// Mode selects how stochastic layers behave during a forward pass.
//
// Inference mode is deterministic: Dropout is the identity. Training mode
// carries the random source Dropout draws its masks from, so two forward
// passes in training mode with identically seeded sources are reproducible.
// A *rand.Rand is not safe for concurrent use; give each concurrent
// training forward pass its own Mode.
type Mode struct {
	training bool
	rng      *rand.Rand
}

// Inference returns the deterministic evaluation mode.
func Inference() Mode {
	return Mode{}
}

// Training returns a training mode drawing randomness from rng.
// Panics if rng is nil.
func Training(rng *rand.Rand) Mode {
	if rng == nil {
		panic("nn.Training: nil random source")
	}
	return Mode{training: true, rng: rng}
}

// IsTraining reports whether stochastic layers are active.
func (m Mode) IsTraining() bool {
	return m.training
}

// Rand returns the training random source, or nil in inference mode.
func (m Mode) Rand() *rand.Rand {
	return m.rng
}

func (m Mode) String() string {
	if m.training {
		return "training"
	}
	return "inference"
}
