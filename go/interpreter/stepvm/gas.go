// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package stepvm

import (
	"fmt"

	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"

	. "github.com/Fantom-foundation/Gaslighter/go/machine"
)

// Gas price tiers of the Frontier fee schedule.
const (
	gasZero    uint64 = 0
	gasBase    uint64 = 2
	gasVeryLow uint64 = 3
	gasLow     uint64 = 5
	gasMid     uint64 = 8
	gasHigh    uint64 = 10
)

var staticGasPrices = [256]uint64{}

func init() {
	for i := 0; i < 256; i++ {
		staticGasPrices[i] = getStaticGasPriceInternal(OpCode(i))
	}
}

func getStaticGasPriceInternal(op OpCode) uint64 {
	if PUSH1 <= op && op <= PUSH32 {
		return gasVeryLow
	}
	if DUP1 <= op && op <= DUP16 {
		return gasVeryLow
	}
	if SWAP1 <= op && op <= SWAP16 {
		return gasVeryLow
	}
	if LOG0 <= op && op <= LOG4 {
		return params.LogGas + uint64(op-LOG0)*params.LogTopicGas
	}
	switch op {
	case STOP, RETURN, REVERT:
		return gasZero
	case ADDRESS, ORIGIN, CALLER, CALLVALUE, CALLDATASIZE, CODESIZE, GASPRICE,
		COINBASE, TIMESTAMP, NUMBER, DIFFICULTY, GASLIMIT, POP, PC, MSIZE, GAS:
		return gasBase
	case ADD, SUB, NOT, LT, GT, SLT, SGT, EQ, ISZERO, AND, OR, XOR, BYTE,
		SHL, SHR, SAR, CALLDATALOAD, MLOAD, MSTORE, MSTORE8, CALLDATACOPY, CODECOPY:
		return gasVeryLow
	case MUL, DIV, SDIV, MOD, SMOD, SIGNEXTEND:
		return gasLow
	case ADDMOD, MULMOD, JUMP:
		return gasMid
	case JUMPI:
		return gasHigh
	case EXP:
		return params.ExpGas
	case SHA3:
		return params.Keccak256Gas
	case BALANCE:
		return params.BalanceGasFrontier
	case EXTCODESIZE:
		return params.ExtcodeSizeGasFrontier
	case EXTCODECOPY:
		return params.ExtcodeCopyBaseFrontier
	case SLOAD:
		return params.SloadGasFrontier
	case JUMPDEST:
		return params.JumpdestGas
	}
	// SSTORE is fully dynamic, all other instructions fault before paying.
	return gasZero
}

// isSupported reports whether the interpreter is able to execute op.
func isSupported(op OpCode) bool {
	switch op {
	case BLOCKHASH, CHAINID, RETURNDATASIZE, RETURNDATACOPY, EXTCODEHASH,
		CREATE, CALL, CALLCODE, DELEGATECALL, CREATE2, STATICCALL, SELFDESTRUCT:
		return false
	}
	return true
}

// checkExecutable fails for instructions that can not be executed on a
// stack of the given size.
func checkExecutable(op OpCode, stackSize int) error {
	if op == INVALID || !IsValid(op) {
		return fmt.Errorf("%w: %v", errInvalidOpCode, op)
	}
	if !isSupported(op) {
		return fmt.Errorf("%w: %v", errUnsupportedOperation, op)
	}
	return checkStackLimits(stackSize, op)
}

// getCost computes the total gas costs of executing op in the current state
// of the interpreter, including memory expansion. The stack must satisfy the
// stack requirements of op.
func (vm *Interpreter) getCost(op OpCode) (*uint256.Int, error) {
	cost := uint256.NewInt(staticGasPrices[op])
	dynamic, err := vm.getDynamicCost(op)
	if err != nil {
		return nil, err
	}
	if _, overflow := cost.AddOverflow(cost, dynamic); overflow {
		return nil, errGasUintOverflow
	}
	return cost, nil
}

func (vm *Interpreter) getDynamicCost(op OpCode) (*uint256.Int, error) {
	s := vm.stack
	switch {
	case op == MLOAD || op == MSTORE:
		return vm.memory.expansionCost(s.peek(), uint256.NewInt(32))
	case op == MSTORE8:
		return vm.memory.expansionCost(s.peek(), uint256.NewInt(1))
	case op == RETURN || op == REVERT:
		return vm.memory.expansionCost(s.peek(), s.peekN(1))
	case op == SHA3:
		return wordCostWithMemory(vm.memory, s.peek(), s.peekN(1), params.Keccak256WordGas)
	case op == CALLDATACOPY || op == CODECOPY:
		return wordCostWithMemory(vm.memory, s.peek(), s.peekN(2), params.CopyGas)
	case op == EXTCODECOPY:
		return wordCostWithMemory(vm.memory, s.peekN(1), s.peekN(3), params.CopyGas)
	case op == EXP:
		exponentBytes := uint64(s.peekN(1).ByteLen())
		return uint256.NewInt(exponentBytes * params.ExpByteFrontier), nil
	case op == SSTORE:
		return vm.getSstoreCost(s.peek(), s.peekN(1)), nil
	case LOG0 <= op && op <= LOG4:
		return logCost(vm.memory, s.peek(), s.peekN(1))
	}
	return new(uint256.Int), nil
}

// wordCostWithMemory computes costs of instructions charging per word of
// processed data on top of the memory expansion.
func wordCostWithMemory(m *memory, offset, size *uint256.Int, perWord uint64) (*uint256.Int, error) {
	expansion, err := m.expansionCost(offset, size)
	if err != nil {
		return nil, err
	}
	words, err := sizeInWords(size)
	if err != nil {
		return nil, err
	}
	cost, overflow := words.MulOverflow(words, uint256.NewInt(perWord))
	if overflow {
		return nil, errGasUintOverflow
	}
	if _, overflow := cost.AddOverflow(cost, expansion); overflow {
		return nil, errGasUintOverflow
	}
	return cost, nil
}

func logCost(m *memory, offset, size *uint256.Int) (*uint256.Int, error) {
	expansion, err := m.expansionCost(offset, size)
	if err != nil {
		return nil, err
	}
	cost, overflow := new(uint256.Int).MulOverflow(size, uint256.NewInt(params.LogDataGas))
	if overflow {
		return nil, errGasUintOverflow
	}
	if _, overflow := cost.AddOverflow(cost, expansion); overflow {
		return nil, errGasUintOverflow
	}
	return cost, nil
}

// getSstoreCost implements the Frontier pricing of SSTORE: setting a zero
// slot to a non-zero value costs SstoreSetGas, every other update
// SstoreResetGas.
func (vm *Interpreter) getSstoreCost(key, value *uint256.Int) *uint256.Int {
	current := vm.storage[*key]
	if current.IsZero() && !value.IsZero() {
		return uint256.NewInt(params.SstoreSetGas)
	}
	return uint256.NewInt(params.SstoreResetGas)
}
