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
	"golang.org/x/crypto/sha3"

	. "github.com/Fantom-foundation/Gaslighter/go/machine"
)

// GetSha3Example provides a loop computing x iterative hashes of a 32-byte
// word, starting from zero. The result is the last byte of the final hash.
func GetSha3Example() Example {
	code := assemble(
		// Parse the input parameter.
		PUSH1, 4,
		CALLDATALOAD,

		// Implement the loop header.
		JUMPDEST,
		DUP1,
		ISZERO,
		PUSH1, 24,
		JUMPI,

		// Compute one hash step.
		PUSH1, 32,
		PUSH1, 0,
		SHA3,
		PUSH1, 0,
		MSTORE,

		// Decrement loop iterator.
		PUSH1, 1,
		SWAP1,
		SUB,

		// Jump back to start of the loop.
		PUSH1, 3,
		JUMP,

		JUMPDEST,

		// Mask out everything but the last byte.
		PUSH1, 0,
		MLOAD,
		PUSH1, 255,
		AND,
		PUSH1, 0,
		MSTORE,

		// Return the result.
		PUSH1, 32,
		PUSH1, 0,
		RETURN,
	)

	return Example{
		Name:      "sha3",
		code:      code,
		reference: sha3Ref,
	}
}

func sha3Ref(x int) int {
	var hash [32]byte
	hasher := sha3.NewLegacyKeccak256()
	for i := 0; i < x; i++ {
		hasher.Reset()
		hasher.Write(hash[:])
		hasher.Sum(hash[0:0])
	}
	return int(hash[31])
}

// assemble converts a sequence of instructions and immediate data into code.
func assemble(ops ...OpCode) []byte {
	code := make([]byte, len(ops))
	for i, op := range ops {
		code[i] = byte(op)
	}
	return code
}
