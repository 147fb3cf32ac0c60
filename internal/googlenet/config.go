package googlenet

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid googlenet config")

// Architecture constants.
const (
	InputChannels     = 3
	DefaultInputSize  = 224
	StemChannels      = 192
	FeatureChannels   = 1024
	AuxConvChannels   = 128
	AuxPooledSize     = 4
	AuxHiddenFeatures = 1024

	DefaultNumClasses  = 1000
	DefaultAuxDropout  = 0.7
	DefaultMainDropout = 0.4
	DefaultAuxWeight   = 0.3
)

// BlockParameters holds the branch widths of one InceptionBlock.
type BlockParameters struct {
	InChannels int `yaml:"in_channels"`
	Out1       int `yaml:"out1"`    // 1x1 branch
	Reduce2    int `yaml:"reduce2"` // 1x1 reduction before 3x3
	Out2       int `yaml:"out2"`    // 3x3 branch
	Reduce3    int `yaml:"reduce3"` // 1x1 reduction before 5x5
	Out3       int `yaml:"out3"`    // 5x5 branch
	Out4       int `yaml:"out4"`    // pool projection
}

// OutChannels returns Out1 + Out2 + Out3 + Out4.
func (p BlockParameters) OutChannels() int {
	return p.Out1 + p.Out2 + p.Out3 + p.Out4
}

// Validate reports non-positive channel counts.
func (p BlockParameters) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"in_channels", p.InChannels},
		{"out1", p.Out1},
		{"reduce2", p.Reduce2},
		{"out2", p.Out2},
		{"reduce3", p.Reduce3},
		{"out3", p.Out3},
		{"out4", p.Out4},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return errors.Wrapf(ErrInvalidConfig, "block %v: %s must be > 0 (got %d)", p, f.name, f.value)
		}
	}
	return nil
}

// LossWeights scales the auxiliary losses in the combined training loss:
//
//	total = main + Aux0*aux0 + Aux1*aux1
//
// The published architecture uses 0.3 for both heads.
type LossWeights struct {
	Aux0 float64 `yaml:"aux0"`
	Aux1 float64 `yaml:"aux1"`
}

// DefaultLossWeights returns {Aux0: 0.3, Aux1: 0.3}.
func DefaultLossWeights() LossWeights {
	return LossWeights{Aux0: DefaultAuxWeight, Aux1: DefaultAuxWeight}
}

// Validate rejects negative or non-finite weights.
func (w LossWeights) Validate() error {
	for i, v := range []float64{w.Aux0, w.Aux1} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidConfig, "loss_weights.aux%d must be a finite value >= 0 (got %v)", i, v)
		}
	}
	return nil
}

// Config captures everything needed to build a Network.
type Config struct {
	NumClasses  int         `yaml:"num_classes"`
	AuxLogits   bool        `yaml:"aux_logits"`
	AuxDropout  float64     `yaml:"aux_dropout"`
	MainDropout float64     `yaml:"main_dropout"`
	LossWeights LossWeights `yaml:"loss_weights"`
	Seed        int64       `yaml:"seed"`
	InputSize   int         `yaml:"input_size"`
}

// Overrides captures CLI supplied values. A nil field leaves the config
// untouched, so zero and false are valid overrides.
type Overrides struct {
	NumClasses *int
	Seed       *int64
	AuxLogits  *bool
}

// DefaultConfig returns the published GoogLeNet configuration for numClasses.
func DefaultConfig(numClasses int) Config {
	return Config{
		NumClasses:  numClasses,
		AuxLogits:   true,
		AuxDropout:  DefaultAuxDropout,
		MainDropout: DefaultMainDropout,
		LossWeights: DefaultLossWeights(),
		Seed:        1,
		InputSize:   DefaultInputSize,
	}
}

// LoadConfig reads and validates a YAML config. Keys missing from the file
// keep their DefaultConfig(1000) values.
func LoadConfig(path string) (Config, error) {
	//nolint:gosec // G304: config path comes from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open config")
	}

	cfg := DefaultConfig(DefaultNumClasses)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "marshal config")
	}
	return out, nil
}

// ApplyOverrides copies every non-nil override into c. Values are not
// checked here; call Validate afterwards.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.NumClasses != nil {
		c.NumClasses = *o.NumClasses
	}
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
	if o.AuxLogits != nil {
		c.AuxLogits = *o.AuxLogits
	}
}

// Validate verifies the config can build a network.
func (c Config) Validate() error {
	if c.NumClasses <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "num_classes must be > 0 (got %d)", c.NumClasses)
	}
	if c.InputSize != DefaultInputSize {
		return errors.Wrapf(ErrInvalidConfig, "input_size must be %d (got %d)", DefaultInputSize, c.InputSize)
	}
	if c.AuxDropout < 0 || c.AuxDropout >= 1 {
		return errors.Wrapf(ErrInvalidConfig, "aux_dropout must be in [0, 1) (got %v)", c.AuxDropout)
	}
	if c.MainDropout < 0 || c.MainDropout >= 1 {
		return errors.Wrapf(ErrInvalidConfig, "main_dropout must be in [0, 1) (got %v)", c.MainDropout)
	}
	return c.LossWeights.Validate()
}
