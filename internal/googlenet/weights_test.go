package googlenet_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/googlenet/internal/backend/cpu"
	"github.com/born-ml/googlenet/internal/googlenet"
	"github.com/born-ml/googlenet/internal/serialization"
	"github.com/born-ml/googlenet/internal/tensor"
)

func newSeededNetwork(t *testing.T, classes int, aux bool, seed int64) *googlenet.Network[backendT] {
	t.Helper()
	cfg := googlenet.DefaultConfig(classes)
	cfg.AuxLogits = aux
	cfg.Seed = seed
	net, err := googlenet.New(cfg, cpu.New())
	require.NoError(t, err)
	return net
}

func TestWeightsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "googlenet.safetensors")

	src := newSeededNetwork(t, 10, true, 1)
	id, err := src.SaveWeights(path)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "weights id is a uuid")

	dst := newSeededNetwork(t, 10, true, 2)
	name := "inception4d.branch3.2.weight"
	require.NotEqual(t, src.StateDict()[name].AsFloat32(), dst.StateDict()[name].AsFloat32())

	info, err := dst.LoadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, id, info.ID)
	assert.Equal(t, "googlenet", info.Metadata[googlenet.MetaArch])
	assert.Equal(t, "10", info.Metadata[googlenet.MetaNumClasses])
	assert.Equal(t, "true", info.Metadata[googlenet.MetaAuxLogits])

	want := src.StateDict()
	got := dst.StateDict()
	require.Len(t, got, len(want))
	for key, raw := range want {
		require.Equal(t, raw.Shape(), got[key].Shape(), key)
		require.Equal(t, raw.AsFloat32(), got[key].AsFloat32(), key)
	}

	// A second save gets a new id.
	id2, err := src.SaveWeights(filepath.Join(t.TempDir(), "again.safetensors"))
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)
}

func TestLoadWeightsErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "googlenet.safetensors")

	src := newSeededNetwork(t, 10, true, 1)
	_, err := src.SaveWeights(path)
	require.NoError(t, err)

	t.Run("class mismatch", func(t *testing.T) {
		_, err := newSeededNetwork(t, 5, true, 1).LoadWeights(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file has 10 classes, network has 5")
	})

	t.Run("unexpected aux weights", func(t *testing.T) {
		_, err := newSeededNetwork(t, 10, false, 1).LoadWeights(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected parameters")
	})

	t.Run("missing aux weights", func(t *testing.T) {
		noAux := filepath.Join(dir, "noaux.safetensors")
		_, err := newSeededNetwork(t, 10, false, 1).SaveWeights(noAux)
		require.NoError(t, err)

		_, err = newSeededNetwork(t, 10, true, 1).LoadWeights(noAux)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing parameter")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := src.LoadWeights(filepath.Join(dir, "absent.safetensors"))
		assert.Error(t, err)
	})

	t.Run("corrupted data", func(t *testing.T) {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		data[len(data)-1] ^= 0xFF
		corrupt := filepath.Join(dir, "corrupt.safetensors")
		require.NoError(t, os.WriteFile(corrupt, data, 0o600))

		dst := newSeededNetwork(t, 10, true, 2)
		before := append([]float32(nil), dst.StateDict()["fc.weight"].AsFloat32()...)

		_, err = dst.LoadWeights(corrupt)
		require.Error(t, err)
		assert.True(t, errors.Is(err, serialization.ErrChecksumMismatch), "got %v", err)
		assert.Equal(t, before, dst.StateDict()["fc.weight"].AsFloat32(), "failed load leaves weights untouched")
	})
}

func TestSummarize(t *testing.T) {
	backend := cpu.New()
	uniform := tensor.Zeros[float32](tensor.Shape{3, 4}, backend)

	stats := googlenet.Summarize(googlenet.ScoreTriple[backendT]{Main: uniform})
	require.Len(t, stats, 1)
	assert.Equal(t, "main", stats[0].Head)
	assert.InDelta(t, 0, stats[0].LogitMean, 1e-12)
	assert.InDelta(t, 0, stats[0].LogitStdDev, 1e-12)
	assert.InDelta(t, 0.25, stats[0].Confidence, 1e-6)
	assert.InDelta(t, math.Log(4), stats[0].Entropy, 1e-6)

	peaked, err := tensor.FromSlice([]float32{50, 0, 0, 0, 0, 50, 0, 0}, tensor.Shape{2, 4}, backend)
	require.NoError(t, err)

	stats = googlenet.Summarize(googlenet.ScoreTriple[backendT]{Aux0: peaked, Aux1: uniform, Main: peaked})
	require.Len(t, stats, 3)
	assert.Equal(t, []string{"main", "aux0", "aux1"}, []string{stats[0].Head, stats[1].Head, stats[2].Head})
	assert.InDelta(t, 1, stats[0].Confidence, 1e-6)
	assert.InDelta(t, 0, stats[0].Entropy, 1e-6)
	assert.InDelta(t, 12.5, stats[1].LogitMean, 1e-6)
}
