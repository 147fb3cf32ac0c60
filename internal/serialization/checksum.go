package serialization

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"sort"

	"github.com/born-ml/googlenet/internal/tensor"
)

// ChecksumKey is the metadata entry holding the hex SHA-256 of the data section.
const ChecksumKey = "sha256"

// ComputeChecksum computes SHA-256 checksum of data.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ComputeChecksumReader computes SHA-256 checksum from an io.Reader
// without loading it into memory.
func ComputeChecksumReader(r io.Reader) ([32]byte, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return [32]byte{}, err
	}
	return sum(h), nil
}

// ValidateChecksum compares computed checksum against stored checksum.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored [32]byte) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}

// stateDictChecksum hashes tensor bytes in the order they are written.
func stateDictChecksum(stateDict map[string]*tensor.RawTensor) string {
	names := sortedNames(stateDict)
	h := sha256.New()
	for _, name := range names {
		h.Write(stateDict[name].Data())
	}
	s := sum(h)
	return hex.EncodeToString(s[:])
}

func sum(h hash.Hash) [32]byte {
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func sortedNames(stateDict map[string]*tensor.RawTensor) []string {
	names := make([]string, 0, len(stateDict))
	for name := range stateDict {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
