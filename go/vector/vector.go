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
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/Gaslighter/go/machine"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
)

// TestVector is a single VMTest case: an initial machine state and an
// optional expectation on the result of running it.
type TestVector struct {
	Name string                      `json:"-"`
	Env  Env                         `json:"env"`
	Exec Exec                        `json:"exec"`
	Pre  map[common.Address]*Account `json:"pre,omitempty"`
	// Out is the expected return data. If it is missing, executing the
	// vector is expected to fault.
	Out *hexutil.Bytes `json:"out,omitempty"`
}

// Env is the block context of a test vector.
type Env struct {
	Coinbase   common.Address        `json:"currentCoinbase"`
	Difficulty *math.HexOrDecimal256 `json:"currentDifficulty"`
	GasLimit   *math.HexOrDecimal256 `json:"currentGasLimit"`
	Number     *math.HexOrDecimal256 `json:"currentNumber"`
	Timestamp  *math.HexOrDecimal256 `json:"currentTimestamp"`
}

// Exec describes the call executing the code under test.
type Exec struct {
	Address  common.Address        `json:"address"`
	Caller   common.Address        `json:"caller"`
	Origin   common.Address        `json:"origin"`
	Code     hexutil.Bytes         `json:"code"`
	Data     hexutil.Bytes         `json:"data"`
	Gas      *math.HexOrDecimal256 `json:"gas"`
	GasPrice *math.HexOrDecimal256 `json:"gasPrice"`
	Value    *math.HexOrDecimal256 `json:"value"`
}

// Account is the pre-state of an account. Storage keys and values may be
// given in hex or decimal notation.
type Account struct {
	Balance *math.HexOrDecimal256            `json:"balance"`
	Code    hexutil.Bytes                    `json:"code"`
	Storage map[string]*math.HexOrDecimal256 `json:"storage"`
}

// HasExpectedOutput reports whether the vector expects a successful run with
// a specific result. An empty "out" field counts as present.
func (v *TestVector) HasExpectedOutput() bool {
	return v.Out != nil
}

// ExpectedOutput returns the expected return data, or nil if the vector
// expects the execution to fault.
func (v *TestVector) ExpectedOutput() []byte {
	if v.Out == nil {
		return nil
	}
	return *v.Out
}

// InitialState converts the vector into the state a machine is constructed
// from. It fails if a numeric field does not fit into 256 bits.
func (v *TestVector) InitialState() (machine.InitialState, error) {
	res := machine.InitialState{
		Code:    v.Exec.Code,
		Input:   v.Exec.Data,
		Address: machine.Address(v.Exec.Address),
		Caller:  machine.Address(v.Exec.Caller),
		Origin:  machine.Address(v.Exec.Origin),
		Block: machine.BlockContext{
			Coinbase: machine.Address(v.Env.Coinbase),
		},
	}

	fields := []struct {
		name  string
		value *math.HexOrDecimal256
		dst   *uint256.Int
	}{
		{"exec.gas", v.Exec.Gas, &res.Gas},
		{"exec.gasPrice", v.Exec.GasPrice, &res.GasPrice},
		{"exec.value", v.Exec.Value, &res.Value},
		{"env.currentNumber", v.Env.Number, &res.Block.Number},
		{"env.currentTimestamp", v.Env.Timestamp, &res.Block.Timestamp},
		{"env.currentGasLimit", v.Env.GasLimit, &res.Block.GasLimit},
		{"env.currentDifficulty", v.Env.Difficulty, &res.Block.Difficulty},
	}
	for _, field := range fields {
		if err := toUint256(field.value, field.dst); err != nil {
			return machine.InitialState{}, fmt.Errorf("invalid %s: %w", field.name, err)
		}
	}

	if len(v.Pre) > 0 {
		res.Accounts = make(map[machine.Address]machine.Account, len(v.Pre))
	}
	for address, account := range v.Pre {
		converted, err := account.toAccount()
		if err != nil {
			return machine.InitialState{}, fmt.Errorf("invalid pre-state of %v: %w", address, err)
		}
		res.Accounts[machine.Address(address)] = converted
	}
	return res, nil
}

func (a *Account) toAccount() (machine.Account, error) {
	res := machine.Account{}
	if a == nil {
		return res, nil
	}
	res.Code = a.Code
	if err := toUint256(a.Balance, &res.Balance); err != nil {
		return res, fmt.Errorf("invalid balance: %w", err)
	}
	if len(a.Storage) > 0 {
		res.Storage = make(map[uint256.Int]uint256.Int, len(a.Storage))
	}
	for key, value := range a.Storage {
		parsed, ok := math.ParseBig256(key)
		if !ok {
			return res, fmt.Errorf("invalid storage key %q", key)
		}
		var k, v uint256.Int
		if err := toUint256((*math.HexOrDecimal256)(parsed), &k); err != nil {
			return res, fmt.Errorf("invalid storage key %q: %w", key, err)
		}
		if err := toUint256(value, &v); err != nil {
			return res, fmt.Errorf("invalid storage value at %q: %w", key, err)
		}
		res.Storage[k] = v
	}
	return res, nil
}

const errValueOverflow = machine.ConstError("value exceeds 256 bits")

const errNegativeValue = machine.ConstError("negative value")

// toUint256 stores the given value in dst. Missing values are zero.
func toUint256(value *math.HexOrDecimal256, dst *uint256.Int) error {
	if value == nil {
		dst.Clear()
		return nil
	}
	b := (*big.Int)(value)
	if b.Sign() < 0 {
		return errNegativeValue
	}
	if overflow := dst.SetFromBig(b); overflow {
		return errValueOverflow
	}
	return nil
}
