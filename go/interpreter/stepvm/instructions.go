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
	"github.com/holiman/uint256"

	. "github.com/Fantom-foundation/Gaslighter/go/machine"
)

// execute performs the effects of the given instruction after its stack
// usage was validated and its gas costs were charged. Unless the instruction
// jumps or halts, the program counter is moved past it.
func (vm *Interpreter) execute(op OpCode) error {
	s := vm.stack
	switch {
	case op.IsPush():
		s.pushUndefined().SetBytes(DecodeInstruction(vm.code, vm.pc).Data)
	case DUP1 <= op && op <= DUP16:
		s.dup(int(op - DUP1))
	case SWAP1 <= op && op <= SWAP16:
		s.swap(int(op-SWAP1) + 1)
	case LOG0 <= op && op <= LOG4:
		if err := opLog(vm, int(op-LOG0)); err != nil {
			return err
		}
	default:
		if handled, err := vm.executeControl(op); handled {
			return err
		}
		if err := vm.executeData(op); err != nil {
			return err
		}
	}
	vm.pc += uint64(op.Width())
	return nil
}

// executeControl handles instructions that halt or redirect the execution.
// It reports whether op was one of them.
func (vm *Interpreter) executeControl(op OpCode) (bool, error) {
	s := vm.stack
	switch op {
	case STOP:
		vm.status = statusStopped
	case RETURN:
		if err := opReturn(vm); err != nil {
			return true, err
		}
		vm.status = statusReturned
	case REVERT:
		if err := opReturn(vm); err != nil {
			return true, err
		}
		return true, errReverted
	case JUMP:
		dest := s.pop()
		return true, vm.jumpTo(&dest)
	case JUMPI:
		dest, cond := s.pop(), s.pop()
		if cond.IsZero() {
			vm.pc++
			return true, nil
		}
		return true, vm.jumpTo(&dest)
	default:
		return false, nil
	}
	return true, nil
}

func (vm *Interpreter) jumpTo(dest *uint256.Int) error {
	if !dest.IsUint64() || !vm.analysis.isJumpDest(dest.Uint64()) {
		return errInvalidJump
	}
	vm.pc = dest.Uint64()
	return nil
}

// executeData handles all instructions operating on the stack, memory,
// storage and the execution context.
func (vm *Interpreter) executeData(op OpCode) error {
	s := vm.stack
	ctx := &vm.params
	switch op {
	// Arithmetic
	case ADD:
		a := s.pop()
		b := s.peek()
		b.Add(&a, b)
	case MUL:
		a := s.pop()
		b := s.peek()
		b.Mul(&a, b)
	case SUB:
		a := s.pop()
		b := s.peek()
		b.Sub(&a, b)
	case DIV:
		a := s.pop()
		b := s.peek()
		b.Div(&a, b)
	case SDIV:
		a := s.pop()
		b := s.peek()
		b.SDiv(&a, b)
	case MOD:
		a := s.pop()
		b := s.peek()
		b.Mod(&a, b)
	case SMOD:
		a := s.pop()
		b := s.peek()
		b.SMod(&a, b)
	case ADDMOD:
		a, b := s.pop(), s.pop()
		n := s.peek()
		n.AddMod(&a, &b, n)
	case MULMOD:
		a, b := s.pop(), s.pop()
		n := s.peek()
		n.MulMod(&a, &b, n)
	case EXP:
		base := s.pop()
		exponent := s.peek()
		exponent.Exp(&base, exponent)
	case SIGNEXTEND:
		back := s.pop()
		num := s.peek()
		num.ExtendSign(num, &back)

	// Comparison and bitwise logic
	case LT:
		a := s.pop()
		b := s.peek()
		setBool(b, a.Lt(b))
	case GT:
		a := s.pop()
		b := s.peek()
		setBool(b, a.Gt(b))
	case SLT:
		a := s.pop()
		b := s.peek()
		setBool(b, a.Slt(b))
	case SGT:
		a := s.pop()
		b := s.peek()
		setBool(b, a.Sgt(b))
	case EQ:
		a := s.pop()
		b := s.peek()
		setBool(b, a.Eq(b))
	case ISZERO:
		a := s.peek()
		setBool(a, a.IsZero())
	case AND:
		a := s.pop()
		b := s.peek()
		b.And(&a, b)
	case OR:
		a := s.pop()
		b := s.peek()
		b.Or(&a, b)
	case XOR:
		a := s.pop()
		b := s.peek()
		b.Xor(&a, b)
	case NOT:
		a := s.peek()
		a.Not(a)
	case BYTE:
		th := s.pop()
		value := s.peek()
		value.Byte(&th)
	case SHL:
		shift := s.pop()
		value := s.peek()
		if shift.LtUint64(256) {
			value.Lsh(value, uint(shift.Uint64()))
		} else {
			value.Clear()
		}
	case SHR:
		shift := s.pop()
		value := s.peek()
		if shift.LtUint64(256) {
			value.Rsh(value, uint(shift.Uint64()))
		} else {
			value.Clear()
		}
	case SAR:
		shift := s.pop()
		value := s.peek()
		if shift.GtUint64(255) {
			if value.Sign() >= 0 {
				value.Clear()
			} else {
				value.SetAllOne()
			}
		} else {
			value.SRsh(value, uint(shift.Uint64()))
		}
	case SHA3:
		offset, size := s.pop(), s.pop()
		data, err := vm.readMemory(&offset, &size)
		if err != nil {
			return err
		}
		hash := keccak256(data)
		s.pushUndefined().SetBytes32(hash[:])

	// Execution context
	case ADDRESS:
		s.pushUndefined().SetBytes20(ctx.Address[:])
	case BALANCE:
		target := s.peek()
		account := ctx.Accounts[Address(target.Bytes20())]
		target.Set(&account.Balance)
	case ORIGIN:
		s.pushUndefined().SetBytes20(ctx.Origin[:])
	case CALLER:
		s.pushUndefined().SetBytes20(ctx.Caller[:])
	case CALLVALUE:
		s.pushUndefined().Set(&ctx.Value)
	case CALLDATALOAD:
		offset := s.peek()
		var word [32]byte
		if start, overflow := offset.Uint64WithOverflow(); !overflow && start < uint64(len(ctx.Input)) {
			copy(word[:], ctx.Input[start:])
		}
		offset.SetBytes32(word[:])
	case CALLDATASIZE:
		s.pushUndefined().SetUint64(uint64(len(ctx.Input)))
	case CALLDATACOPY:
		memOffset, dataOffset, size := s.pop(), s.pop(), s.pop()
		if err := vm.copyToMemory(&memOffset, ctx.Input, &dataOffset, &size); err != nil {
			return err
		}
	case CODESIZE:
		s.pushUndefined().SetUint64(uint64(len(vm.code)))
	case CODECOPY:
		memOffset, codeOffset, size := s.pop(), s.pop(), s.pop()
		if err := vm.copyToMemory(&memOffset, vm.code, &codeOffset, &size); err != nil {
			return err
		}
	case GASPRICE:
		s.pushUndefined().Set(&ctx.GasPrice)
	case EXTCODESIZE:
		target := s.peek()
		account := ctx.Accounts[Address(target.Bytes20())]
		target.SetUint64(uint64(len(account.Code)))
	case EXTCODECOPY:
		target, memOffset, codeOffset, size := s.pop(), s.pop(), s.pop(), s.pop()
		account := ctx.Accounts[Address(target.Bytes20())]
		if err := vm.copyToMemory(&memOffset, account.Code, &codeOffset, &size); err != nil {
			return err
		}

	// Block context
	case COINBASE:
		s.pushUndefined().SetBytes20(ctx.Block.Coinbase[:])
	case TIMESTAMP:
		s.pushUndefined().Set(&ctx.Block.Timestamp)
	case NUMBER:
		s.pushUndefined().Set(&ctx.Block.Number)
	case DIFFICULTY:
		s.pushUndefined().Set(&ctx.Block.Difficulty)
	case GASLIMIT:
		s.pushUndefined().Set(&ctx.Block.GasLimit)

	// Stack, memory and storage
	case POP:
		s.pop()
	case MLOAD:
		offset := s.peek()
		data, err := vm.readMemory(offset, uint256.NewInt(32))
		if err != nil {
			return err
		}
		offset.SetBytes32(data)
	case MSTORE:
		offset, value := s.pop(), s.pop()
		word := value.Bytes32()
		if err := vm.writeMemory(&offset, word[:]); err != nil {
			return err
		}
	case MSTORE8:
		offset, value := s.pop(), s.pop()
		if err := vm.writeMemory(&offset, []byte{byte(value.Uint64())}); err != nil {
			return err
		}
	case SLOAD:
		key := s.peek()
		value := vm.storage[*key]
		key.Set(&value)
	case SSTORE:
		key, value := s.pop(), s.pop()
		if value.IsZero() {
			delete(vm.storage, key)
		} else {
			vm.storage[key] = value
		}
	case PC:
		s.pushUndefined().SetUint64(vm.pc)
	case MSIZE:
		s.pushUndefined().SetUint64(vm.memory.length())
	case GAS:
		s.pushUndefined().Set(&vm.gas)
	case JUMPDEST:
		// noop
	default:
		return errInvalidOpCode
	}
	return nil
}

func setBool(z *uint256.Int, value bool) {
	if value {
		z.SetOne()
	} else {
		z.Clear()
	}
}

func opReturn(vm *Interpreter) error {
	offset, size := vm.stack.pop(), vm.stack.pop()
	data, err := vm.readMemory(&offset, &size)
	if err != nil {
		return err
	}
	vm.returnData = data
	return nil
}

func opLog(vm *Interpreter, numTopics int) error {
	s := vm.stack
	offset, size := s.pop(), s.pop()
	topics := make([]uint256.Int, numTopics)
	for i := range topics {
		topics[i] = s.pop()
	}
	data, err := vm.readMemory(&offset, &size)
	if err != nil {
		return err
	}
	vm.logs = append(vm.logs, Log{
		Address: vm.params.Address,
		Topics:  topics,
		Data:    data,
	})
	return nil
}

// readMemory expands the memory to cover the given range and returns a copy
// of its content.
func (vm *Interpreter) readMemory(offset, size *uint256.Int) ([]byte, error) {
	start, length, err := toRange(offset, size)
	if err != nil {
		return nil, err
	}
	if err := vm.memory.expand(start, length); err != nil {
		return nil, err
	}
	return vm.memory.get(start, length), nil
}

func (vm *Interpreter) writeMemory(offset *uint256.Int, data []byte) error {
	start, length, err := toRange(offset, uint256.NewInt(uint64(len(data))))
	if err != nil {
		return err
	}
	if err := vm.memory.expand(start, length); err != nil {
		return err
	}
	vm.memory.set(start, data)
	return nil
}

func (vm *Interpreter) copyToMemory(memOffset *uint256.Int, data []byte, dataOffset, size *uint256.Int) error {
	start, length, err := toRange(memOffset, size)
	if err != nil {
		return err
	}
	if err := vm.memory.expand(start, length); err != nil {
		return err
	}
	if length > 0 {
		vm.memory.setPadded(start, data, dataOffset, length)
	}
	return nil
}
