// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package vector

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/Fantom-foundation/Gaslighter/go/machine"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

const sampleVectors = `{
	"add": {
		"env": {
			"currentCoinbase": "0x2adc25665018aa1fe0e6bc666dac8fc2697ff9ba",
			"currentDifficulty": "0x0100",
			"currentGasLimit": "0x0f4240",
			"currentNumber": "0x00",
			"currentTimestamp": "0x01"
		},
		"exec": {
			"address": "0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6",
			"caller": "0xcd1722f3947def4cf144679da39c4c32bdc35681",
			"origin": "0xcd1722f3947def4cf144679da39c4c32bdc35681",
			"code": "0x6001600101",
			"data": "0x",
			"gas": "0x0186a0",
			"gasPrice": "0x5af3107a4000",
			"value": "1000000000000000000"
		},
		"pre": {
			"0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6": {
				"balance": "0x0de0b6b3a7640000",
				"code": "0x6001600101",
				"storage": {"0x01": "0x2a", "2": "3"}
			}
		},
		"out": "0x"
	},
	"underflow": {
		"env": {},
		"exec": {"code": "0x01", "gas": "100000"}
	}
}`

func TestDecodeVectors_ParsesVMTestFormat(t *testing.T) {
	vectors, err := DecodeVectors(strings.NewReader(sampleVectors))
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	add := vectors["add"]
	require.Equal(t, "add", add.Name)
	require.True(t, add.HasExpectedOutput())
	require.Empty(t, add.ExpectedOutput())

	underflow := vectors["underflow"]
	require.False(t, underflow.HasExpectedOutput())
	require.Nil(t, underflow.ExpectedOutput())
}

func TestTestVector_InitialState(t *testing.T) {
	vectors, err := DecodeVectors(strings.NewReader(sampleVectors))
	require.NoError(t, err)

	state, err := vectors["add"].InitialState()
	require.NoError(t, err)

	require.Equal(t, []byte{0x60, 0x01, 0x60, 0x01, 0x01}, state.Code)
	require.Equal(t, uint64(100_000), state.Gas.Uint64())
	require.Equal(t, uint64(100_000_000_000_000), state.GasPrice.Uint64())
	require.Equal(t, uint64(1_000_000_000_000_000_000), state.Value.Uint64())
	require.Equal(t, uint64(1_000_000), state.Block.GasLimit.Uint64())
	require.Equal(t, uint64(256), state.Block.Difficulty.Uint64())
	require.Equal(t, "0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6", state.Address.String())

	account, found := state.Accounts[state.Address]
	require.True(t, found)
	require.Equal(t, uint64(1_000_000_000_000_000_000), account.Balance.Uint64())
	require.Equal(t, *uint256.NewInt(42), account.Storage[*uint256.NewInt(1)])
	require.Equal(t, *uint256.NewInt(3), account.Storage[*uint256.NewInt(2)])
}

func TestTestVector_InitialStateDefaultsMissingNumbersToZero(t *testing.T) {
	vectors, err := DecodeVectors(strings.NewReader(sampleVectors))
	require.NoError(t, err)

	state, err := vectors["underflow"].InitialState()
	require.NoError(t, err)
	require.True(t, state.Value.IsZero())
	require.True(t, state.Block.Number.IsZero())
	require.Nil(t, state.Accounts)
}

func TestTestVector_InitialStateRejectsNegativeNumbers(t *testing.T) {
	input := `{"negative": {"env": {}, "exec": {"code": "0x00", "gas": "-1"}}}`
	vectors, err := DecodeVectors(strings.NewReader(input))
	require.NoError(t, err)

	_, err = vectors["negative"].InitialState()
	require.ErrorIs(t, err, errNegativeValue)
	require.ErrorContains(t, err, "exec.gas")
}

func TestTestVector_InitialStateRejectsInvalidStorageKeys(t *testing.T) {
	input := `{"bad": {"env": {}, "exec": {}, "pre": {
		"0x0f572e5295c57f15886f9b263e2f6d2d6c7b5ec6": {"storage": {"zz": "0x01"}}}}}`
	vectors, err := DecodeVectors(strings.NewReader(input))
	require.NoError(t, err)

	_, err = vectors["bad"].InitialState()
	require.ErrorContains(t, err, "invalid storage key")
}

func TestDecodeVectors_RejectsMalformedInput(t *testing.T) {
	tests := map[string]string{
		"not json":     "hello",
		"invalid hex":  `{"a": {"exec": {"code": "0xzz"}}}`,
		"null vector":  `{"a": null}`,
		"wrong layout": `[1, 2, 3]`,
		"oversized":    `{"a": {"exec": {"gas": "0x1` + strings.Repeat("0", 64) + `"}}}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeVectors(strings.NewReader(input))
			require.Error(t, err)
		})
	}
}

func TestEnumerateInputs_WalksDirectoriesRecursively(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(nested, 0700))

	files := []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(nested, "b.json"),
		filepath.Join(nested, "notes.txt"),
	}
	for _, file := range files {
		require.NoError(t, os.WriteFile(file, []byte("{}"), 0600))
	}

	inputs, err := EnumerateInputs([]string{dir})
	require.NoError(t, err)
	require.ElementsMatch(t, files[:2], inputs)

	inputs, err = EnumerateInputs([]string{files[2]})
	require.NoError(t, err)
	require.Equal(t, files[2:], inputs)

	_, err = EnumerateInputs([]string{filepath.Join(dir, "missing")})
	require.Error(t, err)
}

func TestLoadAll_RejectsDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	require.NoError(t, os.WriteFile(first, []byte(sampleVectors), 0600))
	require.NoError(t, os.WriteFile(second, []byte(sampleVectors), 0600))

	vectors, err := LoadAll([]string{first})
	require.NoError(t, err)
	require.Equal(t, []string{"add", "underflow"}, Names(vectors))

	_, err = LoadAll([]string{first, second})
	require.ErrorContains(t, err, "duplicate vector")
}

func TestFilterNames(t *testing.T) {
	names := []string{"add0", "add1", "mul0"}
	require.Equal(t, names, FilterNames(names, nil))
	require.Equal(t, []string{"add0", "add1"}, FilterNames(names, regexp.MustCompile("^add")))
	require.Empty(t, FilterNames(names, regexp.MustCompile("div")))
}

func TestInitialState_AddressConversion(t *testing.T) {
	vector := &TestVector{}
	vector.Exec.Caller[19] = 1
	state, err := vector.InitialState()
	require.NoError(t, err)
	require.Equal(t, machine.Address{19: 1}, state.Caller)
}

func TestExportVectorJSON_CanBeImportedAgain(t *testing.T) {
	vectors, err := DecodeVectors(strings.NewReader(sampleVectors))
	require.NoError(t, err)
	original := vectors["add"]

	path := filepath.Join(t.TempDir(), "add.json")
	require.NoError(t, ExportVectorJSON(original, path))

	restored, err := ImportVectorsJSON(path)
	require.NoError(t, err)
	require.Equal(t, []string{"add"}, Names(restored))
	require.True(t, restored["add"].HasExpectedOutput())

	want, err := original.InitialState()
	require.NoError(t, err)
	got, err := restored["add"].InitialState()
	require.NoError(t, err)
	require.Equal(t, want, got)
}
