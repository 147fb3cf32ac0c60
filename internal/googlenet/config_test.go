package googlenet

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(1000)

	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.AuxLogits)
	assert.Equal(t, 0.7, cfg.AuxDropout)
	assert.Equal(t, 0.4, cfg.MainDropout)
	assert.Equal(t, LossWeights{Aux0: 0.3, Aux1: 0.3}, cfg.LossWeights)
	assert.Equal(t, 224, cfg.InputSize)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero classes", func(c *Config) { c.NumClasses = 0 }},
		{"negative classes", func(c *Config) { c.NumClasses = -3 }},
		{"input size", func(c *Config) { c.InputSize = 299 }},
		{"aux dropout", func(c *Config) { c.AuxDropout = 1 }},
		{"main dropout", func(c *Config) { c.MainDropout = -0.1 }},
		{"negative loss weight", func(c *Config) { c.LossWeights.Aux1 = -0.3 }},
		{"nan loss weight", func(c *Config) { c.LossWeights.Aux0 = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(10)
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "googlenet.yaml")
	yaml := `
num_classes: 10
aux_logits: false
loss_weights:
  aux0: 0.5
  aux1: 0.25
seed: 7
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.NumClasses)
	assert.False(t, cfg.AuxLogits)
	assert.Equal(t, LossWeights{Aux0: 0.5, Aux1: 0.25}, cfg.LossWeights)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 0.7, cfg.AuxDropout, "missing keys keep defaults")
	assert.Equal(t, 224, cfg.InputSize)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("num_classes: [1, 2"), 0o600))
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("num_classes: 0\n"), 0o600))
	_, err = LoadConfig(invalid)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestConfigMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig(21)
	cfg.Seed = 99
	cfg.LossWeights = LossWeights{Aux0: 0.1, Aux1: 0.2}

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "num_classes: 21")

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig(1000)
	cfg.ApplyOverrides(Overrides{})
	assert.Equal(t, DefaultConfig(1000), cfg, "zero overrides change nothing")

	classes, seed, aux := 5, int64(42), false
	cfg.ApplyOverrides(Overrides{NumClasses: &classes, Seed: &seed, AuxLogits: &aux})
	assert.Equal(t, 5, cfg.NumClasses)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.False(t, cfg.AuxLogits)

	// Zero and true are real values once set.
	seed, aux = 0, true
	cfg.ApplyOverrides(Overrides{Seed: &seed, AuxLogits: &aux})
	assert.Equal(t, int64(0), cfg.Seed)
	assert.True(t, cfg.AuxLogits)
	assert.Equal(t, 5, cfg.NumClasses, "unset field kept")
}
