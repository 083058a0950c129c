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

import "fmt"

// Kind classifies the outcome of a judgment.
type Kind byte

const (
	Undefined   Kind = iota // < no judgment was made, e.g. the machine could not be constructed
	Pass                    // < the vector behaved as expected
	FailNoMatch             // < the run completed but not as expected
	FailError               // < the run faulted although a result was expected
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "Undefined"
	case Pass:
		return "Pass"
	case FailNoMatch:
		return "FailNoMatch"
	case FailError:
		return "FailError"
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// Verdict is the immutable result of judging a single test vector.
type Verdict struct {
	Kind   Kind
	Fault  error // < the execution fault of FailError verdicts
	reason string
}

// Passed reports whether the vector passed.
func (v Verdict) Passed() bool {
	return v.Kind == Pass
}

// String renders the verdict as printed after the progress line.
func (v Verdict) String() string {
	switch v.Kind {
	case Pass:
		return "OK"
	case FailNoMatch:
		if v.reason == "" {
			return "Failed"
		}
		return fmt.Sprintf("Failed (%s)", v.reason)
	case FailError:
		return fmt.Sprintf("Failed (%v)", v.Fault)
	case Undefined:
		return "Not judged"
	}
	return v.Kind.String()
}
