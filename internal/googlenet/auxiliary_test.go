package googlenet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/googlenet/internal/backend/cpu"
	"github.com/born-ml/googlenet/internal/googlenet"
	"github.com/born-ml/googlenet/internal/nn"
	"github.com/born-ml/googlenet/internal/tensor"
)

func TestAuxiliaryClassifierShape(t *testing.T) {
	backend := cpu.New()
	head := googlenet.NewAuxiliaryClassifier(512, 1000, backend, seeded(1))

	out := head.Forward(randomImages(backend, tensor.Shape{64, 512, 14, 14}, 2), nn.Inference())
	assert.Equal(t, tensor.Shape{64, 1000}, out.Shape())

	assert.Equal(t, 512, head.InChannels())
	assert.Equal(t, 1000, head.NumClasses())
	assert.Equal(t, "AuxiliaryClassifier(in=512, classes=1000, dropout=0.7)", head.String())
}

func TestAuxiliaryClassifierRejectsOtherSizes(t *testing.T) {
	backend := cpu.New()
	head := googlenet.NewAuxiliaryClassifier(16, 10, backend, seeded(1))

	for _, size := range []int{7, 17, 28} {
		input := randomImages(backend, tensor.Shape{1, 16, size, size}, 2)
		assert.Panics(t, func() { head.Forward(input, nn.Inference()) }, "size %d", size)
	}

	assert.Panics(t, func() {
		head.Forward(randomImages(backend, tensor.Shape{1, 32, 14, 14}, 2), nn.Inference())
	}, "channel mismatch")

	assert.Panics(t, func() { googlenet.NewAuxiliaryClassifier(0, 10, backend, seeded(1)) })
}

func TestAuxiliaryClassifierModes(t *testing.T) {
	backend := cpu.New()
	head := googlenet.NewAuxiliaryClassifier(16, 10, backend, seeded(1))
	input := randomImages(backend, tensor.Shape{4, 16, 14, 14}, 2)
	before := append([]float32(nil), input.Data()...)

	a := head.Forward(input, nn.Inference())
	b := head.Forward(input, nn.Inference())
	assert.Equal(t, a.Data(), b.Data(), "inference is deterministic")
	assert.Equal(t, before, input.Data(), "input must not be modified")

	c := head.Forward(input, nn.Training(seeded(7)))
	d := head.Forward(input, nn.Training(seeded(7)))
	assert.Equal(t, c.Data(), d.Data(), "same dropout seed, same output")
	assert.NotEqual(t, a.Data(), c.Data(), "dropout is active in training")
}

func TestAuxiliaryClassifierNamedParameters(t *testing.T) {
	head := googlenet.NewAuxiliaryClassifier(528, 10, cpu.New(), seeded(1))

	shapes := map[string]tensor.Shape{}
	for _, p := range head.NamedParameters() {
		shapes[p.Name] = p.Param.Shape()
	}

	require.Len(t, shapes, 6)
	assert.Equal(t, tensor.Shape{128, 528, 1, 1}, shapes["conv.weight"])
	assert.Equal(t, tensor.Shape{1024, 2048}, shapes["fc1.weight"])
	assert.Equal(t, tensor.Shape{1024}, shapes["fc1.bias"])
	assert.Equal(t, tensor.Shape{10, 1024}, shapes["fc2.weight"])
	assert.Equal(t, tensor.Shape{10}, shapes["fc2.bias"])
}
