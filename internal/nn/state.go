package nn

import (
	"fmt"
	"sort"

	"github.com/born-ml/googlenet/internal/tensor"
)

// StateDict returns the module's parameters keyed by dotted name.
//
// The returned raw tensors share storage with the live parameters; write
// them out, don't mutate them.
func StateDict[B tensor.Backend](m Module[B]) map[string]*tensor.RawTensor {
	named := m.NamedParameters()
	state := make(map[string]*tensor.RawTensor, len(named))
	for _, p := range named {
		state[p.Name] = p.Param.Tensor().Raw()
	}
	return state
}

// LoadStateDict copies values from state into the module's parameters.
//
// Every parameter must be present with identical shape and float32 dtype.
// Keys in state the module does not own are reported as an error too, so a
// checkpoint from a differently configured model is never half-applied.
// Nothing is written unless the whole dictionary validates.
func LoadStateDict[B tensor.Backend](m Module[B], state map[string]*tensor.RawTensor) error {
	named := m.NamedParameters()
	known := make(map[string]struct{}, len(named))

	for _, p := range named {
		known[p.Name] = struct{}{}

		raw, ok := state[p.Name]
		if !ok {
			return fmt.Errorf("load state dict: missing parameter %q", p.Name)
		}
		if raw.DType() != tensor.Float32 {
			return fmt.Errorf("load state dict: parameter %q: expected dtype float32, got %s", p.Name, raw.DType())
		}
		if !raw.Shape().Equal(p.Param.Shape()) {
			return fmt.Errorf("load state dict: parameter %q: shape mismatch: expected %v, got %v",
				p.Name, p.Param.Shape(), raw.Shape())
		}
	}

	var unexpected []string
	for name := range state {
		if _, ok := known[name]; !ok {
			unexpected = append(unexpected, name)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return fmt.Errorf("load state dict: unexpected parameters %v", unexpected)
	}

	for _, p := range named {
		copy(p.Param.Tensor().Raw().Data(), state[p.Name].Data())
	}
	return nil
}
