// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package judge

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Fantom-foundation/Gaslighter/go/logger"
	"github.com/Fantom-foundation/Gaslighter/go/machine"
	"github.com/Fantom-foundation/Gaslighter/go/vector"
)

var log = logger.NewLogger("judge")

// Options tune the output of a judgment.
type Options struct {
	// Debug prints the progress line on its own line and reports expected
	// and actual results on mismatches.
	Debug bool
}

// ConstructionError is returned by Evaluate if no machine could be created
// from the initial state of a vector. It is distinct from execution faults,
// which are reported through the verdict.
type ConstructionError struct {
	Vector string
	Err    error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("failed to construct machine for %s: %v", e.Vector, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// Evaluate judges a single test vector. It creates a fresh machine from the
// vector's initial state, runs it to completion exactly once and decides on
// the verdict:
//   - if the vector has an expected output, the run must complete without a
//     fault and the machine's return data must equal the expected output;
//   - if it has none, the run must fault.
//
// A progress line is written to out before running, the verdict after. If
// the machine can not be constructed, a *ConstructionError is returned
// together with an Undefined verdict, which never counts as passed.
func Evaluate(
	v *vector.TestVector,
	newMachine machine.Constructor,
	out io.Writer,
	options Options,
) (Verdict, error) {
	fmt.Fprintf(out, "Testing %s ... ", v.Name)
	if options.Debug {
		fmt.Fprintln(out)
	}

	vm, err := construct(v, newMachine)
	if err != nil {
		fmt.Fprintf(out, "Failed to construct machine: %v\n", err)
		return Verdict{Kind: Undefined}, &ConstructionError{Vector: v.Name, Err: err}
	}

	fault := vm.Run()
	log.Debugf("%s: run finished, fault: %v", v.Name, fault)

	verdict := decide(v, vm, fault)
	if options.Debug && verdict.Kind == FailNoMatch && v.HasExpectedOutput() {
		fmt.Fprintf(out, "Expected output: 0x%x\n", v.ExpectedOutput())
		fmt.Fprintf(out, "Actual output:   0x%x\n", vm.ReturnData())
	}
	fmt.Fprintln(out, verdict)
	return verdict, nil
}

func construct(v *vector.TestVector, newMachine machine.Constructor) (machine.Machine, error) {
	state, err := v.InitialState()
	if err != nil {
		return nil, err
	}
	return newMachine(state)
}

func decide(v *vector.TestVector, vm machine.Machine, fault error) Verdict {
	if !v.HasExpectedOutput() {
		if fault != nil {
			return Verdict{Kind: Pass}
		}
		return Verdict{Kind: FailNoMatch, reason: "unexpected success"}
	}

	if fault != nil {
		return Verdict{Kind: FailError, Fault: fault}
	}
	if !bytes.Equal(vm.ReturnData(), v.ExpectedOutput()) {
		return Verdict{Kind: FailNoMatch, reason: "result not match"}
	}
	return Verdict{Kind: Pass}
}
