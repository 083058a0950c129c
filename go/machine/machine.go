// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package machine

import (
	"fmt"

	"github.com/holiman/uint256"
)

//go:generate mockgen -source machine.go -destination machine_mock.go -package machine

// Machine is the capability set through which test vectors are judged and
// debugged. Implementations are single-threaded; a Machine instance is owned
// by one judgment or console session at a time.
//
// Once Stopped reports true, Step and Run must not change the machine's
// observable state. Stack content and return data remain available for
// inspection.
type Machine interface {
	// Run executes instructions until the machine stops or faults. A nil
	// result signals that execution completed without a fault.
	Run() error
	// Step executes exactly one instruction.
	Step() error
	// Stopped reports whether there are no more instructions to execute,
	// either because execution ended or because it faulted.
	Stopped() bool
	// NextInstruction returns the instruction to be executed next. The result
	// is only defined while the machine is not stopped.
	NextInstruction() Instruction
	// PendingCost computes the gas costs of the next instruction without
	// executing it.
	PendingCost() (*uint256.Int, error)
	// StackSize returns the number of elements on the stack.
	StackSize() int
	// StackPeek returns the element at the given position, where index 0 is
	// the top of the stack.
	StackPeek(index int) (uint256.Int, error)
	// ReturnData returns the content of the return buffer.
	ReturnData() []byte
}

// Constructor creates a fresh machine for the given initial state. Errors
// returned by a Constructor are construction faults: the initial state could
// not be turned into a runnable machine.
type Constructor func(state InitialState) (Machine, error)

// Address is a 20-byte account address.
type Address [20]byte

func (a Address) String() string {
	return fmt.Sprintf("0x%x", a[:])
}

// InitialState is the machine state a test vector starts from.
type InitialState struct {
	Code     []byte
	Input    []byte
	Gas      uint256.Int
	Address  Address // < the account executing the code
	Caller   Address
	Origin   Address
	Value    uint256.Int
	GasPrice uint256.Int
	Block    BlockContext
	Accounts map[Address]Account
}

// BlockContext describes the block in which the code is executed.
type BlockContext struct {
	Coinbase   Address
	Number     uint256.Int
	Timestamp  uint256.Int
	GasLimit   uint256.Int
	Difficulty uint256.Int
}

// Account is the pre-state of an account visible to the executed code.
type Account struct {
	Balance uint256.Int
	Code    []byte
	Storage map[uint256.Int]uint256.Int
}
