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
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"

	. "github.com/Fantom-foundation/Gaslighter/go/machine"
)

const maxStackSize = int(params.StackLimit)

// stack is the 256-bit word-wide operand stack of the machine. Boundaries
// are not checked; instructions are only executed after their stack usage
// has been validated.
type stack struct {
	data []uint256.Int
}

func newStack() *stack {
	return &stack{data: make([]uint256.Int, 0, 16)}
}

// push adds a copy of the given value to the top of the stack.
func (s *stack) push(d *uint256.Int) {
	s.data = append(s.data, *d)
}

// pushUndefined adds an element with an undefined value to the top of the
// stack and returns a pointer to it. The pointer is valid until the next
// push operation.
func (s *stack) pushUndefined() *uint256.Int {
	s.data = append(s.data, uint256.Int{})
	return &s.data[len(s.data)-1]
}

// pop removes the top element from the stack and returns it.
func (s *stack) pop() uint256.Int {
	value := s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return value
}

// peek returns a pointer to the top element of the stack without removing it.
func (s *stack) peek() *uint256.Int {
	return &s.data[len(s.data)-1]
}

// peekN returns a pointer to the n-th element from the top of the stack. The
// top element is at index 0.
func (s *stack) peekN(n int) *uint256.Int {
	return &s.data[len(s.data)-n-1]
}

func (s *stack) len() int {
	return len(s.data)
}

// swap exchanges the top element with the n-th element from the top.
func (s *stack) swap(n int) {
	top := len(s.data) - 1
	s.data[top-n], s.data[top] = s.data[top], s.data[top-n]
}

// dup duplicates the n-th element from the top, where 0 is the top element.
func (s *stack) dup(n int) {
	s.data = append(s.data, s.data[len(s.data)-n-1])
}

func (s *stack) String() string {
	b := strings.Builder{}
	for i := 0; i < s.len(); i++ {
		b.WriteString(fmt.Sprintf("    [%4d] %v\n", i, s.peekN(i).Hex()))
	}
	return b.String()
}

// stackUsage describes how many elements an instruction consumes from and
// produces onto the stack.
type stackUsage struct {
	pops, pushes int
}

var stackUsages = [256]stackUsage{}

func init() {
	for i := 0; i < 256; i++ {
		stackUsages[i] = getStackUsageInternal(OpCode(i))
	}
}

// checkStackLimits verifies that executing op on a stack of the given size
// neither underflows nor overflows the stack.
func checkStackLimits(size int, op OpCode) error {
	usage := stackUsages[op]
	if size < usage.pops {
		return errStackUnderflow
	}
	if size-usage.pops+usage.pushes > maxStackSize {
		return errStackOverflow
	}
	return nil
}

func getStackUsageInternal(op OpCode) stackUsage {
	if PUSH1 <= op && op <= PUSH32 {
		return stackUsage{0, 1}
	}
	if DUP1 <= op && op <= DUP16 {
		return stackUsage{int(op-DUP1) + 1, int(op-DUP1) + 2}
	}
	if SWAP1 <= op && op <= SWAP16 {
		return stackUsage{int(op-SWAP1) + 2, int(op-SWAP1) + 2}
	}
	if LOG0 <= op && op <= LOG4 {
		return stackUsage{int(op-LOG0) + 2, 0}
	}
	switch op {
	case STOP, JUMPDEST, INVALID:
		return stackUsage{0, 0}
	case ADD, MUL, SUB, DIV, SDIV, MOD, SMOD, EXP, SIGNEXTEND,
		LT, GT, SLT, SGT, EQ, AND, OR, XOR, BYTE, SHL, SHR, SAR, SHA3:
		return stackUsage{2, 1}
	case ADDMOD, MULMOD:
		return stackUsage{3, 1}
	case ISZERO, NOT, BALANCE, CALLDATALOAD, EXTCODESIZE, MLOAD, SLOAD:
		return stackUsage{1, 1}
	case ADDRESS, ORIGIN, CALLER, CALLVALUE, CALLDATASIZE, CODESIZE, GASPRICE,
		COINBASE, TIMESTAMP, NUMBER, DIFFICULTY, GASLIMIT, PC, MSIZE, GAS:
		return stackUsage{0, 1}
	case CALLDATACOPY, CODECOPY:
		return stackUsage{3, 0}
	case EXTCODECOPY:
		return stackUsage{4, 0}
	case POP, JUMP:
		return stackUsage{1, 0}
	case MSTORE, MSTORE8, SSTORE, JUMPI, RETURN, REVERT:
		return stackUsage{2, 0}
	}
	// Unsupported and unknown instructions fault before touching the stack.
	return stackUsage{0, 0}
}
