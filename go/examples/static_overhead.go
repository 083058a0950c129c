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

import . "github.com/Fantom-foundation/Gaslighter/go/machine"

// GetStaticOverheadExample provides the shortest contract touching the
// call data, the memory and the return buffer. It returns its argument.
func GetStaticOverheadExample() Example {
	code := assemble(
		PUSH1, 4, // push size 4
		PUSH1, 32, // push offset 32
		PUSH1, 28, // push destOffset 28
		CALLDATACOPY, // copy 4 bytes at offset 32 from call data into memory at offset 28
		PUSH1, 32, // push len 32
		PUSH1, 0, // push offset 0
		RETURN, // return 32 bytes at offset 0
	)

	return Example{
		Name:      "static_overhead",
		code:      code,
		reference: identity,
	}
}

func identity(x int) int {
	return x
}
