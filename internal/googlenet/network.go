package googlenet

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/born-ml/googlenet/internal/nn"
	"github.com/born-ml/googlenet/internal/tensor"
)

// ScoreTriple holds the three classifier outputs, each (N, num_classes).
//
// Aux0 comes from the head after block 4a, Aux1 from the head after 4d.
// Both are nil when the network was built without auxiliary heads.
type ScoreTriple[B tensor.Backend] struct {
	Aux0 *tensor.Tensor[float32, B]
	Aux1 *tensor.Tensor[float32, B]
	Main *tensor.Tensor[float32, B]
}

// Network is GoogLeNet (Inception v1).
//
//	stem: 7x7/2 conv 64 -> ReLU -> 3x3/2 max-pool
//	      -> 1x1 conv 64 -> ReLU -> 3x3 conv 192 -> ReLU -> 3x3/2 max-pool
//	3a 3b -> 3x3/2 max-pool -> 4a* 4b 4c 4d* 4e -> 3x3/2 max-pool -> 5a 5b
//	head: 7x7 avg-pool -> flatten -> dropout -> fc 1024->num_classes
//
// Blocks marked * feed auxiliary classifiers. Forward is safe for
// concurrent use as long as each call gets its own training Mode.
type Network[B tensor.Backend] struct {
	cfg     Config
	backend B

	stem   *nn.Sequential[B]
	table  []TableEntry
	blocks []*InceptionBlock[B]
	pool   *nn.MaxPool2D[B] // shared by both inter-stage downsamples

	aux [2]*AuxiliaryClassifier[B]

	avgpool *nn.AvgPool2D[B]
	flatten *nn.Flatten[B]
	dropout *nn.Dropout[B]
	fc      *nn.Linear[B]
}

// New builds a network with Xavier weights drawn from a source seeded with
// cfg.Seed, so equal configs build identical networks.
func New[B tensor.Backend](cfg Config, backend B) (*Network[B], error) {
	return NewWithTable(cfg, ReferenceTable(), backend)
}

// NewWithTable is New with a custom block table. The table must satisfy
// ValidateTable.
func NewWithTable[B tensor.Backend](cfg Config, table []TableEntry, backend B) (*Network[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateTable(table); err != nil {
		return nil, errors.Wrap(err, "block table")
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // weight init is not security-critical

	n := &Network[B]{
		cfg:     cfg,
		backend: backend,
		table:   append([]TableEntry(nil), table...),
		stem: nn.NewSequential[B](
			nn.NewConv2D(InputChannels, 64, 7, 7, 2, 3, true, backend, rng),
			nn.NewReLU[B](),
			nn.NewMaxPool2D(3, 2, 1, backend),
			nn.NewConv2D(64, 64, 1, 1, 1, 0, true, backend, rng),
			nn.NewReLU[B](),
			nn.NewConv2D(64, StemChannels, 3, 3, 1, 1, true, backend, rng),
			nn.NewReLU[B](),
			nn.NewMaxPool2D(3, 2, 1, backend),
		),
		pool: nn.NewMaxPool2D(3, 2, 1, backend),
	}

	for _, e := range n.table {
		n.blocks = append(n.blocks, NewInceptionBlock(e.Params, backend, rng))
	}

	if cfg.AuxLogits {
		for i, tap := range auxTaps {
			in := n.table[n.blockIndex(tap)].Params.OutChannels()
			n.aux[i] = newAuxiliaryClassifier(in, cfg.NumClasses, cfg.AuxDropout, backend, rng)
		}
	}

	n.avgpool = nn.NewAvgPool2D(7, 1, 0, backend)
	n.flatten = nn.NewFlatten[B](FeatureChannels)
	n.dropout = nn.NewDropout[B](cfg.MainDropout)
	n.fc = nn.NewLinear(FeatureChannels, cfg.NumClasses, backend, rng)

	return n, nil
}

func (n *Network[B]) blockIndex(name BlockName) int {
	for i, e := range n.table {
		if e.Name == name {
			return i
		}
	}
	panic(fmt.Sprintf("googlenet: unknown block %s", name))
}

// Forward maps (N, 3, 224, 224) images to a ScoreTriple.
//
// Activations after 4a and 4d are captured with Tensor.Clone, so the
// auxiliary heads see exactly the block outputs no matter what later
// stages do to their buffers. Panics if the input is not
// (N, 3, input_size, input_size).
func (n *Network[B]) Forward(input *tensor.Tensor[float32, B], mode nn.Mode) ScoreTriple[B] {
	s := input.Shape()
	if len(s) != 4 || s[1] != InputChannels || s[2] != n.cfg.InputSize || s[3] != n.cfg.InputSize {
		panic(fmt.Sprintf("googlenet: dimension mismatch: expected input [N %d %d %d], got %v",
			InputChannels, n.cfg.InputSize, n.cfg.InputSize, s))
	}

	x := n.stem.Forward(input, mode)

	var taps [2]*tensor.Tensor[float32, B]
	for i, block := range n.blocks {
		name := n.table[i].Name
		x = block.Forward(x, mode)

		for t, tap := range auxTaps {
			if name == tap && n.aux[t] != nil {
				taps[t] = x.Clone()
			}
		}
		if poolAfter[name] {
			x = n.pool.Forward(x, mode)
		}
	}

	x = n.avgpool.Forward(x, mode)
	x = n.flatten.Forward(x, mode)
	x = n.dropout.Forward(x, mode)

	scores := ScoreTriple[B]{Main: n.fc.Forward(x, mode)}
	if n.aux[0] != nil {
		scores.Aux0 = n.aux[0].Forward(taps[0], mode)
		scores.Aux1 = n.aux[1].Forward(taps[1], mode)
	}
	return scores
}

// Config returns the configuration the network was built with.
func (n *Network[B]) Config() Config {
	return n.cfg
}

// Backend returns the compute backend.
func (n *Network[B]) Backend() B {
	return n.backend
}

// Stem returns the convolutional stem that runs before block 3a.
func (n *Network[B]) Stem() *nn.Sequential[B] {
	return n.stem
}

// Block returns the named Inception block.
func (n *Network[B]) Block(name BlockName) *InceptionBlock[B] {
	return n.blocks[n.blockIndex(name)]
}

// Aux returns auxiliary head i (0 or 1), or nil without auxiliary heads.
func (n *Network[B]) Aux(i int) *AuxiliaryClassifier[B] {
	return n.aux[i]
}

// Parameters returns all learnable parameters.
func (n *Network[B]) Parameters() []*nn.Parameter[B] {
	return nn.ParametersOf(n.NamedParameters())
}

// NamedParameters lists parameters in network order: stem.*,
// inception3a.* ... inception5b.*, aux1.*, aux2.*, fc.*.
func (n *Network[B]) NamedParameters() []nn.NamedParameter[B] {
	params := nn.Prefix("stem", n.stem.NamedParameters())
	for i, block := range n.blocks {
		params = append(params, nn.Prefix(n.table[i].Name.ModuleName(), block.NamedParameters())...)
	}
	for i, head := range n.aux {
		if head != nil {
			params = append(params, nn.Prefix(fmt.Sprintf("aux%d", i+1), head.NamedParameters())...)
		}
	}
	return append(params, nn.Prefix("fc", n.fc.NamedParameters())...)
}

// NumParameters returns the number of scalar weights.
func (n *Network[B]) NumParameters() int {
	return nn.CountParameters[B](n.asModule())
}

// StateDict returns the parameters keyed by dotted name.
func (n *Network[B]) StateDict() map[string]*tensor.RawTensor {
	return nn.StateDict[B](n.asModule())
}

// LoadStateDict replaces every parameter from state; see nn.LoadStateDict.
func (n *Network[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	return nn.LoadStateDict[B](n.asModule(), state)
}

// asModule adapts the network to nn.Module for the parameter helpers;
// its Forward runs only the main head.
func (n *Network[B]) asModule() nn.Module[B] {
	return mainHead[B]{n}
}

type mainHead[B tensor.Backend] struct {
	*Network[B]
}

func (m mainHead[B]) Forward(input *tensor.Tensor[float32, B], mode nn.Mode) *tensor.Tensor[float32, B] {
	return m.Network.Forward(input, mode).Main
}
