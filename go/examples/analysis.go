// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package examples

import (
	"github.com/ethereum/go-ethereum/params"

	. "github.com/Fantom-foundation/Gaslighter/go/machine"
)

// generateAnalysisCode produces a contract of the maximum deployable size
// returning its argument after jumping over a long sequence of the given
// filler code. Executing it is cheap, but analyzing its jump destinations
// is not.
func generateAnalysisCode(filler ...OpCode) []byte {
	initCode := assemble(
		// Parse the input parameter.
		PUSH1, 4,
		CALLDATALOAD,

		// Store result (input) in memory[0].
		PUSH1, 0,
		MSTORE,

		// Jump over filler code (destination is a placeholder).
		PUSH2, 0xFF, 0xFF,
		JUMP,
	)

	endingCode := assemble(
		// Jumpdest for jumping over filler code.
		JUMPDEST,

		// Return the result from memory[0].
		PUSH1, 32,
		PUSH1, 0,
		RETURN,
	)

	maxFillerCodeLength := params.MaxCodeSize - len(initCode) - len(endingCode)
	fillerCode := []byte{}
	for i := 0; i < maxFillerCodeLength/len(filler); i++ {
		fillerCode = append(fillerCode, assemble(filler...)...)
	}

	// Fill placeholder destination for jumping over filler code.
	jumpdestPos := len(initCode) + len(fillerCode)
	initCode[7] = byte(jumpdestPos >> 8)
	initCode[8] = byte(jumpdestPos)

	code := append(initCode, fillerCode...)
	return append(code, endingCode...)
}

func GetJumpdestAnalysisExample() Example {
	return Example{
		Name:      "jumpdest",
		code:      generateAnalysisCode(JUMPDEST),
		reference: identity,
	}
}

func GetStopAnalysisExample() Example {
	return Example{
		Name:      "stop",
		code:      generateAnalysisCode(STOP),
		reference: identity,
	}
}

func GetPush1AnalysisExample() Example {
	return Example{
		Name:      "push1",
		code:      generateAnalysisCode(PUSH1, 0),
		reference: identity,
	}
}

func GetPush32AnalysisExample() Example {
	filler := make([]OpCode, 33)
	filler[0] = PUSH32
	return Example{
		Name:      "push32",
		code:      generateAnalysisCode(filler...),
		reference: identity,
	}
}
