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

// Instruction is a decoded instruction at a position of the code.
type Instruction struct {
	Pc   uint64
	Op   OpCode
	Data []byte // < immediate data of PUSH instructions, padded with zeros
}

// DecodeInstruction decodes the instruction at the given position. Positions
// beyond the end of the code decode to STOP.
func DecodeInstruction(code []byte, pc uint64) Instruction {
	if pc >= uint64(len(code)) {
		return Instruction{Pc: pc, Op: STOP}
	}
	op := OpCode(code[pc])
	res := Instruction{Pc: pc, Op: op}
	if op.IsPush() {
		res.Data = make([]byte, op.Width()-1)
		start := pc + 1
		if start < uint64(len(code)) {
			copy(res.Data, code[start:])
		}
	}
	return res
}

func (i Instruction) String() string {
	if len(i.Data) > 0 {
		return fmt.Sprintf("%v 0x%x @ %d", i.Op, i.Data, i.Pc)
	}
	return fmt.Sprintf("%v @ %d", i.Op, i.Pc)
}
