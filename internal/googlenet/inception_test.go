package googlenet_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/googlenet/internal/backend/cpu"
	"github.com/born-ml/googlenet/internal/googlenet"
	"github.com/born-ml/googlenet/internal/nn"
	"github.com/born-ml/googlenet/internal/tensor"
)

type backendT = *cpu.CPUBackend

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func randomImages(backend backendT, shape tensor.Shape, seed int64) *tensor.Tensor[float32, backendT] {
	return tensor.Randn[float32](shape, backend, seeded(seed))
}

var block3a = googlenet.BlockParameters{
	InChannels: 192, Out1: 64, Reduce2: 96, Out2: 128, Reduce3: 16, Out3: 32, Out4: 32,
}

func TestInceptionBlockOutputShape(t *testing.T) {
	backend := cpu.New()
	block := googlenet.NewInceptionBlock(block3a, backend, seeded(1))

	assert.Equal(t, 256, block.OutChannels())

	out := block.Forward(randomImages(backend, tensor.Shape{2, 192, 28, 28}, 2), nn.Inference())
	assert.Equal(t, tensor.Shape{2, 256, 28, 28}, out.Shape())
}

func TestInceptionBlockLargeBatch(t *testing.T) {
	if testing.Short() {
		t.Skip("large batch forward")
	}

	backend := cpu.New()
	block := googlenet.NewInceptionBlock(block3a, backend, seeded(1))

	out := block.Forward(randomImages(backend, tensor.Shape{64, 192, 32, 32}, 2), nn.Inference())
	assert.Equal(t, tensor.Shape{64, 256, 32, 32}, out.Shape())
}

func TestInceptionBlockBranches(t *testing.T) {
	backend := cpu.New()
	params := googlenet.BlockParameters{InChannels: 8, Out1: 3, Reduce2: 4, Out2: 5, Reduce3: 2, Out3: 6, Out4: 7}
	block := googlenet.NewInceptionBlock(params, backend, seeded(3))

	input := randomImages(backend, tensor.Shape{2, 8, 9, 11}, 4)
	before := append([]float32(nil), input.Data()...)

	out := block.Forward(input, nn.Inference())
	require.Equal(t, tensor.Shape{2, 21, 9, 11}, out.Shape())
	assert.Equal(t, before, input.Data(), "input must not be modified")

	// Each branch keeps H and W and owns a contiguous channel range, in order.
	widths := []int{params.Out1, params.Out2, params.Out3, params.Out4}
	offset := 0
	for i, width := range widths {
		branch := block.Branch(i + 1).Forward(input, nn.Inference())
		require.Equal(t, tensor.Shape{2, width, 9, 11}, branch.Shape(), "branch %d", i+1)

		for n := 0; n < 2; n++ {
			for c := 0; c < width; c++ {
				for h := 0; h < 9; h++ {
					for w := 0; w < 11; w++ {
						if branch.At(n, c, h, w) != out.At(n, offset+c, h, w) {
							t.Fatalf("branch %d channel %d not at output channel %d", i+1, c, offset+c)
						}
					}
				}
			}
		}
		offset += width
	}

	// Every output passed through a final ReLU.
	for _, v := range out.Data() {
		require.GreaterOrEqual(t, v, float32(0))
	}
}

func TestInceptionBlockChannelMismatch(t *testing.T) {
	backend := cpu.New()
	block := googlenet.NewInceptionBlock(block3a, backend, seeded(1))

	assert.Panics(t, func() {
		block.Forward(randomImages(backend, tensor.Shape{1, 100, 28, 28}, 1), nn.Inference())
	})
}

func TestInceptionBlockInvalidParams(t *testing.T) {
	backend := cpu.New()
	params := block3a
	params.Out2 = 0

	assert.Panics(t, func() {
		googlenet.NewInceptionBlock(params, backend, seeded(1))
	})
	assert.Panics(t, func() {
		googlenet.NewInceptionBlock(block3a, backend, seeded(1)).Branch(5)
	})
}

func TestInceptionBlockNamedParameters(t *testing.T) {
	backend := cpu.New()
	block := googlenet.NewInceptionBlock(block3a, backend, seeded(1))

	named := block.NamedParameters()
	names := make([]string, len(named))
	shapes := make(map[string]tensor.Shape, len(named))
	for i, p := range named {
		names[i] = p.Name
		shapes[p.Name] = p.Param.Shape()
	}

	assert.Equal(t, []string{
		"branch1.0.weight", "branch1.0.bias",
		"branch2.0.weight", "branch2.0.bias", "branch2.2.weight", "branch2.2.bias",
		"branch3.0.weight", "branch3.0.bias", "branch3.2.weight", "branch3.2.bias",
		"branch4.1.weight", "branch4.1.bias",
	}, names)

	assert.Equal(t, tensor.Shape{128, 96, 3, 3}, shapes["branch2.2.weight"])
	assert.Equal(t, tensor.Shape{32, 16, 5, 5}, shapes["branch3.2.weight"])
	assert.Equal(t, tensor.Shape{32, 192, 1, 1}, shapes["branch4.1.weight"])
	assert.Len(t, block.Parameters(), len(named))
}

func TestInceptionBlockString(t *testing.T) {
	block := googlenet.NewInceptionBlock(block3a, cpu.New(), seeded(1))
	assert.Equal(t, "Inception(in=192, 1x1=64, 3x3=96->128, 5x5=16->32, pool_proj=32, out=256)", block.String())
}
