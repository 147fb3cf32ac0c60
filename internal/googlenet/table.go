package googlenet

import (
	"github.com/pkg/errors"
)

// BlockName identifies one of the nine Inception blocks.
type BlockName string

// Block names in network order.
const (
	Block3a BlockName = "3a"
	Block3b BlockName = "3b"
	Block4a BlockName = "4a"
	Block4b BlockName = "4b"
	Block4c BlockName = "4c"
	Block4d BlockName = "4d"
	Block4e BlockName = "4e"
	Block5a BlockName = "5a"
	Block5b BlockName = "5b"
)

// ModuleName returns the parameter prefix of the block, e.g. "inception4a".
func (n BlockName) ModuleName() string {
	return "inception" + string(n)
}

// TableEntry pairs a block name with its branch widths.
type TableEntry struct {
	Name   BlockName
	Params BlockParameters
}

var (
	// Blocks followed by a 3x3 stride-2 max-pool.
	poolAfter = map[BlockName]bool{Block3b: true, Block4e: true}

	// Blocks whose output feeds an auxiliary classifier, in head order.
	auxTaps = []BlockName{Block4a, Block4d}
)

// ReferenceTable returns the published GoogLeNet block configuration in
// network order. The returned slice is a fresh copy.
func ReferenceTable() []TableEntry {
	return []TableEntry{
		{Block3a, BlockParameters{192, 64, 96, 128, 16, 32, 32}},
		{Block3b, BlockParameters{256, 128, 128, 192, 32, 96, 64}},
		{Block4a, BlockParameters{480, 192, 96, 208, 16, 48, 64}},
		{Block4b, BlockParameters{512, 160, 112, 224, 24, 64, 64}},
		{Block4c, BlockParameters{512, 128, 128, 256, 24, 64, 64}},
		{Block4d, BlockParameters{512, 112, 144, 288, 32, 64, 64}},
		{Block4e, BlockParameters{528, 256, 160, 320, 32, 128, 128}},
		{Block5a, BlockParameters{832, 256, 160, 320, 32, 128, 128}},
		{Block5b, BlockParameters{832, 384, 192, 384, 48, 128, 128}},
	}
}

// ValidateTable checks a block table against the fixed network topology:
// the nine blocks in network order, each valid, the first consuming the
// stem's 192 channels, each consuming what the previous produces, and the
// last producing the 1024 features the classifier expects.
func ValidateTable(table []TableEntry) error {
	order := ReferenceTable()
	if len(table) != len(order) {
		return errors.Wrapf(ErrInvalidConfig, "expected %d blocks, got %d", len(order), len(table))
	}

	prevName, prevOut := BlockName("stem"), StemChannels
	for i, e := range table {
		if e.Name != order[i].Name {
			return errors.Wrapf(ErrInvalidConfig, "block %d must be %s, got %s", i, order[i].Name, e.Name)
		}
		if err := e.Params.Validate(); err != nil {
			return errors.Wrapf(err, "block %s", e.Name)
		}
		if e.Params.InChannels != prevOut {
			return errors.Wrapf(ErrInvalidConfig, "block %s expects %d input channels but %s produces %d",
				e.Name, e.Params.InChannels, prevName, prevOut)
		}
		prevName, prevOut = e.Name, e.Params.OutChannels()
	}

	if prevOut != FeatureChannels {
		return errors.Wrapf(ErrInvalidConfig, "last block %s produces %d channels, classifier expects %d",
			prevName, prevOut, FeatureChannels)
	}
	return nil
}
