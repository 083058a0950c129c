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

	"github.com/Fantom-foundation/Gaslighter/go/logger"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"

	. "github.com/Fantom-foundation/Gaslighter/go/machine"
)

var log = logger.NewLogger("stepvm")

// status is enumeration of the execution state of an interpreter.
type status byte

const (
	statusRunning  status = iota // < all fine, ops are processed
	statusStopped                // < execution stopped with a STOP or reached the end of the code
	statusReturned               // < execution stopped with a RETURN
	statusFailed                 // < execution stopped with a fault
)

// Log is an entry emitted by one of the LOG instructions.
type Log struct {
	Address Address
	Topics  []uint256.Int
	Data    []byte
}

// Interpreter is a steppable interpreter for a Frontier-style subset of the
// EVM instruction set. Message calls, contract creation and self destruction
// are not supported and fault when executed. Any fault halts the interpreter.
//
// Interpreter implements machine.Machine; it is not thread-safe.
type Interpreter struct {
	// Inputs
	params   InitialState
	code     []byte
	analysis *codeAnalysis

	// Execution state
	pc      uint64
	gas     uint256.Int
	stack   *stack
	memory  *memory
	storage map[uint256.Int]uint256.Int

	// Results
	returnData []byte
	logs       []Log
	status     status
	fault      error
}

// New creates an interpreter ready to execute the code of the given state.
// The storage of the executing account is initialized from the account list
// of the state. Codes exceeding the init code size limit are rejected.
func New(state InitialState) (*Interpreter, error) {
	if len(state.Code) > params.MaxInitCodeSize {
		return nil, fmt.Errorf("%w: %d > %d bytes", errCodeTooLarge, len(state.Code), params.MaxInitCodeSize)
	}

	storage := map[uint256.Int]uint256.Int{}
	for key, value := range state.Accounts[state.Address].Storage {
		if !value.IsZero() {
			storage[key] = value
		}
	}

	vm := &Interpreter{
		params:   state,
		code:     state.Code,
		analysis: defaultAnalysisCache.get(state.Code),
		gas:      state.Gas,
		stack:    newStack(),
		memory:   newMemory(),
		storage:  storage,
	}
	vm.updateStatus()
	log.Debugf("created interpreter for %d bytes of code with %v gas", len(vm.code), &vm.gas)
	return vm, nil
}

// NewMachine is a machine.Constructor producing interpreter instances.
func NewMachine(state InitialState) (Machine, error) {
	vm, err := New(state)
	if err != nil {
		return nil, err
	}
	return vm, nil
}

// Run executes instructions until the interpreter stops. It returns the
// fault that halted the execution, nil if it ended regularly.
func (vm *Interpreter) Run() error {
	for !vm.Stopped() {
		if err := vm.Step(); err != nil {
			return err
		}
	}
	return vm.fault
}

// Step executes the next instruction. Stepping a stopped interpreter fails
// with machine.ErrStopped and has no effect.
func (vm *Interpreter) Step() error {
	if vm.Stopped() {
		return ErrStopped
	}
	if err := vm.step(); err != nil {
		log.Debugf("fault at pc %d: %v", vm.pc, err)
		vm.status = statusFailed
		vm.fault = err
		return err
	}
	vm.updateStatus()
	return nil
}

func (vm *Interpreter) step() error {
	op := OpCode(vm.code[vm.pc])
	if err := checkExecutable(op, vm.stack.len()); err != nil {
		return err
	}
	cost, err := vm.getCost(op)
	if err != nil {
		return err
	}
	if vm.gas.Lt(cost) {
		return errOutOfGas
	}
	vm.gas.Sub(&vm.gas, cost)
	return vm.execute(op)
}

// updateStatus stops a running interpreter that reached the end of its code.
func (vm *Interpreter) updateStatus() {
	if vm.status == statusRunning && vm.pc >= uint64(len(vm.code)) {
		vm.status = statusStopped
	}
}

func (vm *Interpreter) Stopped() bool {
	return vm.status != statusRunning
}

func (vm *Interpreter) NextInstruction() Instruction {
	return DecodeInstruction(vm.code, vm.pc)
}

// PendingCost computes the gas the next instruction would consume. It fails
// if the interpreter is stopped or the instruction can not be executed.
func (vm *Interpreter) PendingCost() (*uint256.Int, error) {
	if vm.Stopped() {
		return nil, ErrStopped
	}
	op := OpCode(vm.code[vm.pc])
	if err := checkExecutable(op, vm.stack.len()); err != nil {
		return nil, err
	}
	return vm.getCost(op)
}

func (vm *Interpreter) StackSize() int {
	return vm.stack.len()
}

func (vm *Interpreter) StackPeek(index int) (uint256.Int, error) {
	if index < 0 || index >= vm.stack.len() {
		return uint256.Int{}, fmt.Errorf("%w: %d", ErrStackIndexOutOfBounds, index)
	}
	return *vm.stack.peekN(index), nil
}

func (vm *Interpreter) ReturnData() []byte {
	return vm.returnData
}

// GasLeft returns the remaining gas.
func (vm *Interpreter) GasLeft() uint256.Int {
	return vm.gas
}

// Logs returns the log entries emitted so far.
func (vm *Interpreter) Logs() []Log {
	return vm.logs
}

// Storage returns the current value of the given storage slot of the
// executing account.
func (vm *Interpreter) Storage(key uint256.Int) uint256.Int {
	return vm.storage[key]
}

// Fault returns the fault that halted the interpreter, if any.
func (vm *Interpreter) Fault() error {
	return vm.fault
}
