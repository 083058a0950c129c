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

import . "github.com/Fantom-foundation/Gaslighter/go/machine"

const (
	errCodeTooLarge         = ConstError("code larger than allowed")
	errGasUintOverflow      = ConstError("gas uint overflow")
	errInvalidJump          = ConstError("invalid jump destination")
	errInvalidOpCode        = ConstError("invalid opcode")
	errMemoryLimit          = ConstError("memory limit exceeded")
	errOutOfGas             = ConstError("out of gas")
	errReverted             = ConstError("execution reverted")
	errStackOverflow        = ConstError("stack overflow")
	errStackUnderflow       = ConstError("stack underflow")
	errUnsupportedOperation = ConstError("unsupported instruction")
)
