package googlenet

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceTable(t *testing.T) {
	table := ReferenceTable()
	require.Len(t, table, 9)

	want := map[BlockName]int{
		Block3a: 256, Block3b: 480,
		Block4a: 512, Block4b: 512, Block4c: 512, Block4d: 528, Block4e: 832,
		Block5a: 832, Block5b: 1024,
	}
	for _, e := range table {
		assert.Equal(t, want[e.Name], e.Params.OutChannels(), "block %s", e.Name)
	}

	assert.Equal(t, BlockParameters{192, 64, 96, 128, 16, 32, 32}, table[0].Params)
	assert.Equal(t, "inception4a", table[2].Name.ModuleName())

	require.NoError(t, ValidateTable(table))

	table[0].Params.Out1 = 1
	assert.Equal(t, 64, ReferenceTable()[0].Params.Out1, "ReferenceTable returns a copy")
}

func TestValidateTable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]TableEntry) []TableEntry
		errMsg string
	}{
		{
			name:   "broken chaining",
			mutate: func(tb []TableEntry) []TableEntry { tb[3].Params.Out1 = 100; return tb },
			errMsg: "block 4c expects 512 input channels but 4b produces 452",
		},
		{
			name:   "stem mismatch",
			mutate: func(tb []TableEntry) []TableEntry { tb[0].Params.InChannels = 64; return tb },
			errMsg: "block 3a expects 64 input channels but stem produces 192",
		},
		{
			name:   "wrong order",
			mutate: func(tb []TableEntry) []TableEntry { tb[0].Name, tb[1].Name = tb[1].Name, tb[0].Name; return tb },
			errMsg: "block 0 must be 3a, got 3b",
		},
		{
			name:   "too short",
			mutate: func(tb []TableEntry) []TableEntry { return tb[:8] },
			errMsg: "expected 9 blocks, got 8",
		},
		{
			name:   "zero width",
			mutate: func(tb []TableEntry) []TableEntry { tb[5].Params.Reduce3 = 0; return tb },
			errMsg: "reduce3 must be > 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTable(tt.mutate(ReferenceTable()))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestBlockParametersValidate(t *testing.T) {
	assert.NoError(t, BlockParameters{192, 64, 96, 128, 16, 32, 32}.Validate())

	err := BlockParameters{192, 64, 96, 128, 16, 32, -1}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "out4 must be > 0 (got -1)")
}
