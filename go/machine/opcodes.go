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

import "fmt"

// OpCode is an EVM instruction code.
type OpCode byte

const (
	STOP       OpCode = 0x00
	ADD        OpCode = 0x01
	MUL        OpCode = 0x02
	SUB        OpCode = 0x03
	DIV        OpCode = 0x04
	SDIV       OpCode = 0x05
	MOD        OpCode = 0x06
	SMOD       OpCode = 0x07
	ADDMOD     OpCode = 0x08
	MULMOD     OpCode = 0x09
	EXP        OpCode = 0x0A
	SIGNEXTEND OpCode = 0x0B

	LT     OpCode = 0x10
	GT     OpCode = 0x11
	SLT    OpCode = 0x12
	SGT    OpCode = 0x13
	EQ     OpCode = 0x14
	ISZERO OpCode = 0x15
	AND    OpCode = 0x16
	OR     OpCode = 0x17
	XOR    OpCode = 0x18
	NOT    OpCode = 0x19
	BYTE   OpCode = 0x1A
	SHL    OpCode = 0x1B
	SHR    OpCode = 0x1C
	SAR    OpCode = 0x1D

	SHA3 OpCode = 0x20

	ADDRESS        OpCode = 0x30
	BALANCE        OpCode = 0x31
	ORIGIN         OpCode = 0x32
	CALLER         OpCode = 0x33
	CALLVALUE      OpCode = 0x34
	CALLDATALOAD   OpCode = 0x35
	CALLDATASIZE   OpCode = 0x36
	CALLDATACOPY   OpCode = 0x37
	CODESIZE       OpCode = 0x38
	CODECOPY       OpCode = 0x39
	GASPRICE       OpCode = 0x3A
	EXTCODESIZE    OpCode = 0x3B
	EXTCODECOPY    OpCode = 0x3C
	RETURNDATASIZE OpCode = 0x3D
	RETURNDATACOPY OpCode = 0x3E
	EXTCODEHASH    OpCode = 0x3F

	BLOCKHASH  OpCode = 0x40
	COINBASE   OpCode = 0x41
	TIMESTAMP  OpCode = 0x42
	NUMBER     OpCode = 0x43
	DIFFICULTY OpCode = 0x44
	GASLIMIT   OpCode = 0x45
	CHAINID    OpCode = 0x46

	POP      OpCode = 0x50
	MLOAD    OpCode = 0x51
	MSTORE   OpCode = 0x52
	MSTORE8  OpCode = 0x53
	SLOAD    OpCode = 0x54
	SSTORE   OpCode = 0x55
	JUMP     OpCode = 0x56
	JUMPI    OpCode = 0x57
	PC       OpCode = 0x58
	MSIZE    OpCode = 0x59
	GAS      OpCode = 0x5A
	JUMPDEST OpCode = 0x5B

	PUSH1  OpCode = 0x60
	PUSH2  OpCode = 0x61
	PUSH8  OpCode = 0x67
	PUSH32 OpCode = 0x7F
	DUP1   OpCode = 0x80
	DUP16  OpCode = 0x8F
	SWAP1  OpCode = 0x90
	SWAP16 OpCode = 0x9F
	LOG0   OpCode = 0xA0
	LOG1   OpCode = 0xA1
	LOG2   OpCode = 0xA2
	LOG4   OpCode = 0xA4

	CREATE       OpCode = 0xF0
	CALL         OpCode = 0xF1
	CALLCODE     OpCode = 0xF2
	RETURN       OpCode = 0xF3
	DELEGATECALL OpCode = 0xF4
	CREATE2      OpCode = 0xF5
	STATICCALL   OpCode = 0xFA
	REVERT       OpCode = 0xFD
	INVALID      OpCode = 0xFE
	SELFDESTRUCT OpCode = 0xFF
)

var opCodeNames = [256]string{}

func init() {
	named := map[OpCode]string{
		STOP: "STOP", ADD: "ADD", MUL: "MUL", SUB: "SUB", DIV: "DIV",
		SDIV: "SDIV", MOD: "MOD", SMOD: "SMOD", ADDMOD: "ADDMOD",
		MULMOD: "MULMOD", EXP: "EXP", SIGNEXTEND: "SIGNEXTEND",
		LT: "LT", GT: "GT", SLT: "SLT", SGT: "SGT", EQ: "EQ", ISZERO: "ISZERO",
		AND: "AND", OR: "OR", XOR: "XOR", NOT: "NOT", BYTE: "BYTE",
		SHL: "SHL", SHR: "SHR", SAR: "SAR", SHA3: "SHA3",
		ADDRESS: "ADDRESS", BALANCE: "BALANCE", ORIGIN: "ORIGIN",
		CALLER: "CALLER", CALLVALUE: "CALLVALUE", CALLDATALOAD: "CALLDATALOAD",
		CALLDATASIZE: "CALLDATASIZE", CALLDATACOPY: "CALLDATACOPY",
		CODESIZE: "CODESIZE", CODECOPY: "CODECOPY", GASPRICE: "GASPRICE",
		EXTCODESIZE: "EXTCODESIZE", EXTCODECOPY: "EXTCODECOPY",
		RETURNDATASIZE: "RETURNDATASIZE", RETURNDATACOPY: "RETURNDATACOPY",
		EXTCODEHASH: "EXTCODEHASH", BLOCKHASH: "BLOCKHASH",
		COINBASE: "COINBASE", TIMESTAMP: "TIMESTAMP", NUMBER: "NUMBER",
		DIFFICULTY: "DIFFICULTY", GASLIMIT: "GASLIMIT", CHAINID: "CHAINID",
		POP: "POP", MLOAD: "MLOAD", MSTORE: "MSTORE", MSTORE8: "MSTORE8",
		SLOAD: "SLOAD", SSTORE: "SSTORE", JUMP: "JUMP", JUMPI: "JUMPI",
		PC: "PC", MSIZE: "MSIZE", GAS: "GAS", JUMPDEST: "JUMPDEST",
		CREATE: "CREATE", CALL: "CALL", CALLCODE: "CALLCODE",
		RETURN: "RETURN", DELEGATECALL: "DELEGATECALL", CREATE2: "CREATE2",
		STATICCALL: "STATICCALL", REVERT: "REVERT", INVALID: "INVALID",
		SELFDESTRUCT: "SELFDESTRUCT",
	}
	for op, name := range named {
		opCodeNames[op] = name
	}
	for i := 0; i < 32; i++ {
		opCodeNames[PUSH1+OpCode(i)] = fmt.Sprintf("PUSH%d", i+1)
	}
	for i := 0; i < 16; i++ {
		opCodeNames[DUP1+OpCode(i)] = fmt.Sprintf("DUP%d", i+1)
		opCodeNames[SWAP1+OpCode(i)] = fmt.Sprintf("SWAP%d", i+1)
	}
	for i := 0; i <= 4; i++ {
		opCodeNames[LOG0+OpCode(i)] = fmt.Sprintf("LOG%d", i)
	}
}

func (op OpCode) String() string {
	if name := opCodeNames[op]; name != "" {
		return name
	}
	return fmt.Sprintf("op(0x%02X)", byte(op))
}

// IsPush returns true for PUSH1 through PUSH32.
func (op OpCode) IsPush() bool {
	return PUSH1 <= op && op <= PUSH32
}

// Width returns the number of bytes the instruction occupies in the code,
// including the immediate data of PUSH instructions.
func (op OpCode) Width() int {
	if op.IsPush() {
		return int(op-PUSH1) + 2
	}
	return 1
}

// IsValid determines whether the given OpCode names a known instruction.
func IsValid(op OpCode) bool {
	return op != INVALID && opCodeNames[op] != ""
}
