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
	"fmt"

	"github.com/Fantom-foundation/Gaslighter/go/machine"
	"github.com/Fantom-foundation/Gaslighter/go/vector"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
)

// exampleGas is the gas budget of example runs. It is large enough for all
// examples to complete for moderate arguments.
const exampleGas = 10_000_000_000

// Example is an executable description of a contract and an entry point with
// a (int)->int signature, together with a reference implementation computing
// the expected result natively.
type Example struct {
	Name      string
	code      []byte        // some contract code
	function  uint32        // identifier of the function in the contract to be called
	reference func(int) int // a reference function computing the same function
}

// Result is the outcome of running an example on a machine.
type Result struct {
	Result int
	// UsedGas is only reported by machines exposing their remaining gas;
	// it is -1 otherwise.
	UsedGas int64
}

// All returns all available examples.
func All() []Example {
	return []Example{
		GetArithmeticExample(),
		GetGasBurnerExample(),
		GetSha3Example(),
		GetStaticOverheadExample(),
		GetJumpdestAnalysisExample(),
		GetStopAnalysisExample(),
		GetPush1AnalysisExample(),
		GetPush32AnalysisExample(),
	}
}

// Code returns the contract code of this example.
func (e *Example) Code() []byte {
	return e.code
}

// RunReference runs the reference function of this example to produce the
// expected result.
func (e *Example) RunReference(argument int) int {
	return e.reference(argument)
}

// InitialState returns the state for calling this example with the given
// argument.
func (e *Example) InitialState(argument int) machine.InitialState {
	return machine.InitialState{
		Code:  e.code,
		Input: encodeArgument(e.function, argument),
		Gas:   *uint256.NewInt(exampleGas),
	}
}

// RunOn runs this example on a machine created by the given constructor,
// using the given argument.
func (e *Example) RunOn(newMachine machine.Constructor, argument int) (Result, error) {
	vm, err := newMachine(e.InitialState(argument))
	if err != nil {
		return Result{}, err
	}
	if err := vm.Run(); err != nil {
		return Result{}, err
	}

	result, err := decodeOutput(vm.ReturnData())
	if err != nil {
		return Result{}, err
	}

	usedGas := int64(-1)
	if gasReporter, ok := vm.(interface{ GasLeft() uint256.Int }); ok {
		left := gasReporter.GasLeft()
		usedGas = exampleGas - int64(left.Uint64())
	}
	return Result{
		Result:  result,
		UsedGas: usedGas,
	}, nil
}

// Vector builds a test vector calling this example with the given argument
// and expecting the result of the reference function.
func (e *Example) Vector(argument int) *vector.TestVector {
	expected := make(hexutil.Bytes, 32)
	encodeInt(expected, e.reference(argument))
	return &vector.TestVector{
		Name: fmt.Sprintf("%s_%d", e.Name, argument),
		Exec: vector.Exec{
			Code: e.code,
			Data: encodeArgument(e.function, argument),
			Gas:  math.NewHexOrDecimal256(exampleGas),
		},
		Out: &expected,
	}
}

func encodeArgument(function uint32, arg int) []byte {
	// the argument is padded up to 32 bytes and follows the function selector
	data := make([]byte, 4+32)

	// encode function selector in big-endian format
	data[0] = byte(function >> 24)
	data[1] = byte(function >> 16)
	data[2] = byte(function >> 8)
	data[3] = byte(function)

	encodeInt(data[4:], arg)
	return data
}

// encodeInt writes the lower 32 bits of value in big-endian format into the
// last four bytes of the given 32-byte word.
func encodeInt(word []byte, value int) {
	word[28] = byte(value >> 24)
	word[29] = byte(value >> 16)
	word[30] = byte(value >> 8)
	word[31] = byte(value)
}

func decodeOutput(output []byte) (int, error) {
	if len(output) != 32 {
		return 0, fmt.Errorf("unexpected length of output; wanted 32, got %d", len(output))
	}
	return (int(output[28]) << 24) | (int(output[29]) << 16) | (int(output[30]) << 8) | (int(output[31]) << 0), nil
}
