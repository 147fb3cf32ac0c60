package serialization

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/googlenet/internal/tensor"
)

func testStateDict(t *testing.T) map[string]*tensor.RawTensor {
	t.Helper()

	weight := tensor.MustNewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	for i := range weight.AsFloat32() {
		weight.AsFloat32()[i] = float32(i + 1)
	}

	bias := tensor.MustNewRaw(tensor.Shape{3}, tensor.Float32, tensor.CPU)
	for i := range bias.AsFloat32() {
		bias.AsFloat32()[i] = float32(i+1) * 0.1
	}

	steps := tensor.MustNewRaw(tensor.Shape{1}, tensor.Int64, tensor.CPU)
	steps.AsInt64()[0] = 42

	return map[string]*tensor.RawTensor{
		"inception3a.branch1.0.weight": weight,
		"inception3a.branch1.0.bias":   bias,
		"steps":                        steps,
	}
}

func TestSafeTensorsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.safetensors")
	state := testStateDict(t)

	err := WriteSafeTensors(path, state, map[string]string{"arch": "googlenet"})
	require.NoError(t, err)

	r, err := OpenSafeTensors(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"inception3a.branch1.0.bias", "inception3a.branch1.0.weight", "steps"}, r.TensorNames())
	assert.Equal(t, "googlenet", r.Metadata()["arch"])
	assert.Len(t, r.Metadata()[ChecksumKey], 64)
	require.NoError(t, r.VerifyChecksum())

	loaded, err := r.ReadStateDict(tensor.CPU)
	require.NoError(t, err)
	require.Len(t, loaded, len(state))

	for name, want := range state {
		got := loaded[name]
		assert.Equal(t, want.DType(), got.DType(), name)
		assert.True(t, want.Shape().Equal(got.Shape()), "%s: shape %v vs %v", name, want.Shape(), got.Shape())
		assert.Equal(t, want.Data(), got.Data(), name)
	}

	info, err := r.TensorInfo("steps")
	require.NoError(t, err)
	assert.Equal(t, "I64", info.DType)

	_, err = r.LoadTensor("missing", tensor.CPU)
	assert.True(t, errors.Is(err, ErrTensorNotFound))
}

func TestHeaderIsAligned(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeSafeTensors(&buf, testStateDict(t), nil))

	headerSize := binary.LittleEndian.Uint64(buf.Bytes()[:8])
	assert.Zero(t, headerSize%8, "data section must start 8-byte aligned")
	assert.Equal(t, int(8+headerSize+6*4+3*4+8), buf.Len())
}

func TestVerifyChecksumDetectsCorruption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.safetensors")
	require.NoError(t, WriteSafeTensors(path, testStateDict(t), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0o600))

	r, err := OpenSafeTensors(path)
	require.NoError(t, err, "structure is still valid")
	defer r.Close()

	assert.ErrorIs(t, r.VerifyChecksum(), ErrChecksumMismatch)
}

func TestOpenRejectsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.safetensors")
	require.NoError(t, WriteSafeTensors(path, testStateDict(t), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)-4], 0o600))

	_, err = OpenSafeTensors(path)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestOpenRejectsHugeHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.safetensors")
	header := make([]byte, 8)
	binary.LittleEndian.PutUint64(header, MaxHeaderSize+1)
	require.NoError(t, os.WriteFile(path, header, 0o600))

	_, err := OpenSafeTensors(path)
	assert.ErrorIs(t, err, ErrHeaderTooLarge)
}

func TestWriteRejectsBadNames(t *testing.T) {
	raw := tensor.MustNewRaw(tensor.Shape{1}, tensor.Float32, tensor.CPU)

	for _, name := range []string{"", "../escape", "a/b", "nul\x00"} {
		var buf bytes.Buffer
		err := EncodeSafeTensors(&buf, map[string]*tensor.RawTensor{name: raw}, nil)
		assert.ErrorIs(t, err, ErrInvalidTensorName, "name %q", name)
	}
}

func TestValidateTensorOffsets(t *testing.T) {
	tests := []struct {
		name    string
		metas   []TensorMeta
		size    int64
		wantErr error
	}{
		{"ok", []TensorMeta{{"a", 0, 8}, {"b", 8, 4}}, 12, nil},
		{"overlap", []TensorMeta{{"a", 0, 8}, {"b", 4, 4}}, 12, ErrOffsetOverlap},
		{"out of bounds", []TensorMeta{{"a", 0, 16}}, 12, ErrOutOfBounds},
		{"negative", []TensorMeta{{"a", -4, 4}}, 12, ErrNegativeOffset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensorOffsets(tt.metas, tt.size)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComputeChecksum(t *testing.T) {
	data := []byte("test data")
	fromReader, err := ComputeChecksumReader(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, ComputeChecksum(data), fromReader)
	assert.NotEqual(t, ComputeChecksum(data), ComputeChecksum([]byte("different data")))
	assert.ErrorIs(t, ValidateChecksum(ComputeChecksum(data), [32]byte{}), ErrChecksumMismatch)
}
