package googlenet

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/born-ml/googlenet/internal/serialization"
)

// Metadata keys written by SaveWeights.
const (
	MetaArch       = "arch"
	MetaID         = "googlenet.id"
	MetaNumClasses = "googlenet.num_classes"
	MetaAuxLogits  = "googlenet.aux_logits"
)

// WeightsInfo describes a weights file.
type WeightsInfo struct {
	ID       string
	Metadata map[string]string
}

// SaveWeights writes every parameter to a SafeTensors file. The file is
// stamped with a fresh random ID, which is returned.
func (n *Network[B]) SaveWeights(path string) (string, error) {
	id := uuid.NewString()
	meta := map[string]string{
		MetaArch:       "googlenet",
		MetaID:         id,
		MetaNumClasses: strconv.Itoa(n.cfg.NumClasses),
		MetaAuxLogits:  strconv.FormatBool(n.cfg.AuxLogits),
	}

	if err := serialization.WriteSafeTensors(path, n.StateDict(), meta); err != nil {
		return "", errors.Wrapf(err, "save weights %s", path)
	}
	return id, nil
}

// LoadWeights replaces every parameter with the values in a SafeTensors
// file. The data checksum is verified and the file's class count, when
// recorded, must match. On error the network is unchanged.
func (n *Network[B]) LoadWeights(path string) (WeightsInfo, error) {
	r, err := serialization.OpenSafeTensors(path)
	if err != nil {
		return WeightsInfo{}, errors.Wrap(err, "load weights")
	}
	defer r.Close()

	meta := r.Metadata()
	if classes, ok := meta[MetaNumClasses]; ok && classes != strconv.Itoa(n.cfg.NumClasses) {
		return WeightsInfo{}, errors.Errorf("load weights %s: file has %s classes, network has %d",
			path, classes, n.cfg.NumClasses)
	}
	if err := r.VerifyChecksum(); err != nil {
		return WeightsInfo{}, errors.Wrapf(err, "load weights %s", path)
	}

	state, err := r.ReadStateDict(n.backend.Device())
	if err != nil {
		return WeightsInfo{}, errors.Wrapf(err, "load weights %s", path)
	}
	if err := n.LoadStateDict(state); err != nil {
		return WeightsInfo{}, errors.Wrapf(err, "load weights %s", path)
	}

	return WeightsInfo{ID: meta[MetaID], Metadata: meta}, nil
}
