package serialization

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/born-ml/googlenet/internal/tensor"
)

// SafeTensorInfo describes a tensor in a SafeTensors header.
type SafeTensorInfo struct {
	DType       string   `json:"dtype"`
	Shape       []int    `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"` // [start, end)
}

// safeTensorsHeader is the decoded JSON header.
type safeTensorsHeader struct {
	Metadata map[string]string
	Tensors  map[string]SafeTensorInfo
}

const metadataKey = "__metadata__"

// UnmarshalJSON separates the metadata entry from the tensor entries.
func (h *safeTensorsHeader) UnmarshalJSON(data []byte) error {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	h.Tensors = make(map[string]SafeTensorInfo, len(entries))
	for key, value := range entries {
		if key == metadataKey {
			if err := json.Unmarshal(value, &h.Metadata); err != nil {
				return fmt.Errorf("failed to unmarshal metadata: %w", err)
			}
			continue
		}
		var info SafeTensorInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return fmt.Errorf("failed to unmarshal tensor %s: %w", key, err)
		}
		h.Tensors[key] = info
	}
	return nil
}

// SafeTensorsReader reads SafeTensors files.
//
// The header is parsed and validated on open; tensor data is read lazily.
// A reader is not safe for concurrent use.
type SafeTensorsReader struct {
	file       *os.File
	header     safeTensorsHeader
	dataOffset int64 // Offset where tensor data starts
	dataSize   int64
}

// OpenSafeTensors opens path and validates its header: names, dtypes,
// and that every tensor's byte range lies inside the file without overlap.
func OpenSafeTensors(path string) (*SafeTensorsReader, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r, err := newSafeTensorsReader(file)
	if err != nil {
		_ = file.Close() // Best effort close on error
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func newSafeTensorsReader(file *os.File) (*SafeTensorsReader, error) {
	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	var headerSize uint64
	if err := binary.Read(file, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}
	dataOffset := int64(8 + headerSize) //nolint:gosec // G115: bounded by MaxHeaderSize
	if dataOffset > stat.Size() {
		return nil, fmt.Errorf("%w: header of %d bytes in %d byte file", ErrOutOfBounds, headerSize, stat.Size())
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var header safeTensorsHeader
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	r := &SafeTensorsReader{
		file:       file,
		header:     header,
		dataOffset: dataOffset,
		dataSize:   stat.Size() - dataOffset,
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SafeTensorsReader) validate() error {
	metas := make([]TensorMeta, 0, len(r.header.Tensors))
	for name, info := range r.header.Tensors {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		dtype, err := safeTensorsToDType(info.DType)
		if err != nil {
			return fmt.Errorf("tensor %q: %w", name, err)
		}
		shape := tensor.Shape(info.Shape)
		if err := shape.Validate(); err != nil {
			return fmt.Errorf("tensor %q: invalid shape: %w", name, err)
		}

		size := info.DataOffsets[1] - info.DataOffsets[0]
		if want := int64(shape.NumElements() * dtype.Size()); size != want {
			return &ValidationError{
				Kind:    ErrOutOfBounds,
				Tensor:  name,
				Details: fmt.Sprintf("byte range holds %d bytes, %s%v needs %d", size, dtype, shape, want),
			}
		}
		metas = append(metas, TensorMeta{Name: name, Offset: info.DataOffsets[0], Size: size})
	}
	return ValidateTensorOffsets(metas, r.dataSize)
}

// Close releases the file. Calling it twice is harmless.
func (r *SafeTensorsReader) Close() error {
	f := r.file
	if f == nil {
		return nil
	}
	r.file = nil
	return f.Close()
}

// Metadata returns the metadata map from the header.
func (r *SafeTensorsReader) Metadata() map[string]string {
	return r.header.Metadata
}

// TensorNames returns all tensor names in sorted order.
func (r *SafeTensorsReader) TensorNames() []string {
	return slices.Sorted(maps.Keys(r.header.Tensors))
}

// TensorInfo returns information about a specific tensor.
func (r *SafeTensorsReader) TensorInfo(name string) (*SafeTensorInfo, error) {
	info, ok := r.header.Tensors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTensorNotFound, name)
	}
	return &info, nil
}

// LoadTensor reads one tensor into a freshly allocated RawTensor.
func (r *SafeTensorsReader) LoadTensor(name string, device tensor.Device) (*tensor.RawTensor, error) {
	info, err := r.TensorInfo(name)
	if err != nil {
		return nil, err
	}

	dtype, err := safeTensorsToDType(info.DType)
	if err != nil {
		return nil, fmt.Errorf("tensor %s: %w", name, err)
	}

	raw, err := tensor.NewRaw(tensor.Shape(info.Shape), dtype, device)
	if err != nil {
		return nil, fmt.Errorf("failed to create tensor %s: %w", name, err)
	}

	if _, err := r.file.ReadAt(raw.Data(), r.dataOffset+info.DataOffsets[0]); err != nil {
		return nil, fmt.Errorf("failed to read tensor %s: %w", name, err)
	}
	return raw, nil
}

// ReadStateDict loads every tensor in the file.
func (r *SafeTensorsReader) ReadStateDict(device tensor.Device) (map[string]*tensor.RawTensor, error) {
	state := make(map[string]*tensor.RawTensor, len(r.header.Tensors))
	for _, name := range r.TensorNames() {
		raw, err := r.LoadTensor(name, device)
		if err != nil {
			return nil, err
		}
		state[name] = raw
	}
	return state, nil
}

// VerifyChecksum hashes the data section and compares it with the "sha256"
// metadata entry. Files without the entry pass.
func (r *SafeTensorsReader) VerifyChecksum() error {
	want, ok := r.header.Metadata[ChecksumKey]
	if !ok {
		return nil
	}

	var stored [32]byte
	decoded, err := hex.DecodeString(want)
	if err != nil || len(decoded) != len(stored) {
		return fmt.Errorf("%w: malformed %s metadata %q", ErrChecksumMismatch, ChecksumKey, want)
	}
	copy(stored[:], decoded)

	computed, err := ComputeChecksumReader(io.NewSectionReader(r.file, r.dataOffset, r.dataSize))
	if err != nil {
		return fmt.Errorf("failed to hash data section: %w", err)
	}
	return ValidateChecksum(computed, stored)
}
