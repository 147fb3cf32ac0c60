package serialization

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Limits applied while parsing untrusted weight files.
const (
	MaxHeaderSize    = 100 << 20 // bytes
	MaxTensorCount   = 100_000
	MaxTensorNameLen = 4096
)

// TensorMeta locates one tensor inside the data section.
type TensorMeta struct {
	Name   string
	Offset int64 // from the start of the data section
	Size   int64 // bytes
}

func (m TensorMeta) end() int64 { return m.Offset + m.Size }

func invalid(kind error, tensor, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Tensor: tensor, Details: fmt.Sprintf(format, args...)}
}

// ValidateTensorOffsets requires every region to be non-negative, inside
// [0, dataSize) and disjoint from the others.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return invalid(ErrTooManyTensors, "", "got %d, max %d", len(tensors), MaxTensorCount)
	}

	byOffset := slices.Clone(tensors)
	slices.SortFunc(byOffset, func(a, b TensorMeta) int { return cmp.Compare(a.Offset, b.Offset) })

	var prev *TensorMeta
	for i := range byOffset {
		t := &byOffset[i]
		switch {
		case t.Offset < 0 || t.Size < 0:
			return invalid(ErrNegativeOffset, t.Name, "offset=%d, size=%d", t.Offset, t.Size)
		case t.end() > dataSize:
			return invalid(ErrOutOfBounds, t.Name, "offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize)
		case prev != nil && prev.end() > t.Offset:
			err := invalid(ErrOffsetOverlap, prev.Name, "regions [%d-%d] and [%d-%d] overlap",
				prev.Offset, prev.end(), t.Offset, t.end())
			err.Tensor2 = t.Name
			return err
		}
		prev = t
	}
	return nil
}

// ValidateTensorName rejects names that are empty, too long, path-like or
// contain NUL. Dotted parameter paths such as "inception4a.branch2.2.weight"
// pass.
func ValidateTensorName(name string) error {
	switch {
	case name == "":
		return invalid(ErrInvalidTensorName, "", "empty name")
	case len(name) > MaxTensorNameLen:
		return invalid(ErrInvalidTensorName, name[:64]+"...", "length %d > max %d", len(name), MaxTensorNameLen)
	case strings.Contains(name, ".."):
		return invalid(ErrInvalidTensorName, name, "contains '..'")
	case strings.ContainsAny(name, `/\`):
		return invalid(ErrInvalidTensorName, name, "contains path separator")
	case strings.ContainsRune(name, 0):
		return invalid(ErrInvalidTensorName, name, "contains null byte")
	}
	return nil
}
