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
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
)

// maxMemorySize is the largest memory the interpreter is willing to allocate.
// Gas costs grow quadratically with the memory size, so only test vectors
// with unrealistic gas budgets can reach this limit.
const maxMemorySize = 1 << 32

// memory is the byte-addressable, word-aligned linear memory of a run.
type memory struct {
	store []byte
	cost  uint256.Int // < total gas paid for the current memory size
}

func newMemory() *memory {
	return &memory{}
}

func (m *memory) length() uint64 {
	return uint64(len(m.store))
}

// memoryCost computes the total gas costs of a memory of the given number of
// words: 3·w + w²/512.
func memoryCost(words *uint256.Int) (*uint256.Int, error) {
	square, overflow := new(uint256.Int).MulOverflow(words, words)
	if overflow {
		return nil, errGasUintOverflow
	}
	square.Div(square, uint256.NewInt(params.QuadCoeffDiv))
	linear, overflow := new(uint256.Int).MulOverflow(words, uint256.NewInt(params.MemoryGas))
	if overflow {
		return nil, errGasUintOverflow
	}
	total, overflow := square.AddOverflow(square, linear)
	if overflow {
		return nil, errGasUintOverflow
	}
	return total, nil
}

// sizeInWords returns the number of 32-byte words needed to hold size bytes.
func sizeInWords(size *uint256.Int) (*uint256.Int, error) {
	words, overflow := new(uint256.Int).AddOverflow(size, uint256.NewInt(31))
	if overflow {
		return nil, errGasUintOverflow
	}
	return words.Rsh(words, 5), nil
}

// expansionCost returns the gas required to grow the memory such that it
// covers the range [offset, offset+size). Accessing an empty range is free.
func (m *memory) expansionCost(offset, size *uint256.Int) (*uint256.Int, error) {
	if size.IsZero() {
		return new(uint256.Int), nil
	}
	end, overflow := new(uint256.Int).AddOverflow(offset, size)
	if overflow {
		return nil, errGasUintOverflow
	}
	if end.LtUint64(m.length() + 1) {
		return new(uint256.Int), nil
	}
	words, err := sizeInWords(end)
	if err != nil {
		return nil, err
	}
	total, err := memoryCost(words)
	if err != nil {
		return nil, err
	}
	return total.Sub(total, &m.cost), nil
}

// toRange converts an offset and size taken from the stack into a memory
// range, checking that it does not exceed the memory limit. Empty ranges are
// always valid.
func toRange(offset, size *uint256.Int) (uint64, uint64, error) {
	if size.IsZero() {
		return 0, 0, nil
	}
	if !offset.IsUint64() || !size.IsUint64() {
		return 0, 0, errMemoryLimit
	}
	start, length := offset.Uint64(), size.Uint64()
	if start > maxMemorySize || length > maxMemorySize-start {
		return 0, 0, errMemoryLimit
	}
	return start, length, nil
}

// expand grows the memory to cover [offset, offset+size). Gas costs must
// have been charged before.
func (m *memory) expand(offset, size uint64) error {
	if size == 0 {
		return nil
	}
	end := offset + size
	if end <= m.length() {
		return nil
	}
	words := (end + 31) / 32
	cost, err := memoryCost(uint256.NewInt(words))
	if err != nil {
		return err
	}
	m.store = append(m.store, make([]byte, words*32-m.length())...)
	m.cost = *cost
	return nil
}

// set copies value into the memory at the given offset. The memory must have
// been expanded to cover the target range.
func (m *memory) set(offset uint64, value []byte) {
	copy(m.store[offset:], value)
}

// get returns a copy of the memory range [offset, offset+size).
func (m *memory) get(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	res := make([]byte, size)
	copy(res, m.store[offset:offset+size])
	return res
}

// setPadded copies data[dataOffset:dataOffset+size] into the memory at the
// given offset, filling with zeros where data is too short.
func (m *memory) setPadded(offset uint64, data []byte, dataOffset *uint256.Int, size uint64) {
	target := m.store[offset : offset+size]
	clear(target)
	if !dataOffset.IsUint64() || dataOffset.Uint64() >= uint64(len(data)) {
		return
	}
	copy(target, data[dataOffset.Uint64():])
}
