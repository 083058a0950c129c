// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package console

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/Fantom-foundation/Gaslighter/go/interpreter/stepvm"
	"github.com/Fantom-foundation/Gaslighter/go/machine"
	"github.com/holiman/uint256"
	"go.uber.org/mock/gomock"
)

// scriptedReader replays a fixed list of lines followed by a final error.
type scriptedReader struct {
	lines   []string
	end     error
	history []string
}

func (r *scriptedReader) ReadLine() (string, error) {
	if len(r.lines) == 0 {
		return "", r.end
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) AddHistory(line string) error {
	r.history = append(r.history, line)
	return nil
}

func TestConsole_Run_TerminatesOnEndOfInput(t *testing.T) {
	tests := map[string]struct {
		end  error
		want string
	}{
		"ctrl-c": {ErrInterrupted, "CTRL-C\n"},
		"ctrl-d": {io.EOF, "CTRL-D\n"},
		"error":  {fmt.Errorf("broken pipe"), "Error: broken pipe\n"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			vm := machine.NewMockMachine(ctrl)

			out := &bytes.Buffer{}
			console := New(vm, &scriptedReader{end: test.end}, out)
			console.Run()

			if want, got := test.want, out.String(); want != got {
				t.Errorf("unexpected output, wanted %q, got %q", want, got)
			}
			if want, got := Terminated, console.State(); want != got {
				t.Errorf("unexpected state, wanted %v, got %v", want, got)
			}
		})
	}
}

func TestConsole_Run_RecordsHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	vm := machine.NewMockMachine(ctrl)
	vm.EXPECT().ReturnData().Return([]byte{1, 2}).Times(2)

	reader := &scriptedReader{lines: []string{"out", "foo", "out"}, end: io.EOF}
	out := &bytes.Buffer{}
	console := New(vm, reader, out)
	console.Run()

	want := []string{"out", "foo", "out"}
	if got := console.History(); !slices.Equal(want, got) {
		t.Errorf("unexpected history, wanted %v, got %v", want, got)
	}
	if got := reader.history; !slices.Equal(want, got) {
		t.Errorf("unexpected reader history, wanted %v, got %v", want, got)
	}
	if want, got := "0x0102\nUnknown command.\n0x0102\nCTRL-D\n", out.String(); want != got {
		t.Errorf("unexpected output, wanted %q, got %q", want, got)
	}
}

func TestConsole_Step_OnStoppedMachineDoesNotStep(t *testing.T) {
	ctrl := gomock.NewController(t)
	vm := machine.NewMockMachine(ctrl)
	vm.EXPECT().Stopped().Return(true)

	out := &bytes.Buffer{}
	New(vm, nil, out).Execute("step")

	if want, got := "Stopped\n", out.String(); want != got {
		t.Errorf("unexpected output, wanted %q, got %q", want, got)
	}
}

func TestConsole_Step_ReportsOutcome(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"success": {nil, "Running ADD @ 2 ... ok.\n"},
		"failure": {machine.ConstError("out of gas"), "Running ADD @ 2 ... failed: out of gas.\n"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			vm := machine.NewMockMachine(ctrl)
			gomock.InOrder(
				vm.EXPECT().Stopped().Return(false),
				vm.EXPECT().NextInstruction().Return(machine.Instruction{Pc: 2, Op: machine.ADD}),
				vm.EXPECT().Step().Return(test.err),
			)

			out := &bytes.Buffer{}
			New(vm, nil, out).Execute("step")

			if want, got := test.want, out.String(); want != got {
				t.Errorf("unexpected output, wanted %q, got %q", want, got)
			}
		})
	}
}

func TestConsole_Fire_ReportsOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	vm := machine.NewMockMachine(ctrl)
	vm.EXPECT().Run().Return(machine.ConstError("stack underflow"))

	out := &bytes.Buffer{}
	New(vm, nil, out).Execute("fire")

	if want, got := "failed: stack underflow\n", out.String(); want != got {
		t.Errorf("unexpected output, wanted %q, got %q", want, got)
	}
}

func TestConsole_Gas_PrintsCostOrError(t *testing.T) {
	ctrl := gomock.NewController(t)
	vm := machine.NewMockMachine(ctrl)
	gomock.InOrder(
		vm.EXPECT().PendingCost().Return(uint256.NewInt(255), nil),
		vm.EXPECT().PendingCost().Return(nil, machine.ErrStopped),
	)

	out := &bytes.Buffer{}
	console := New(vm, nil, out)
	console.Execute("gas")
	console.Execute("gas")

	if want, got := "0xff\nError: machine is stopped\n", out.String(); want != got {
		t.Errorf("unexpected output, wanted %q, got %q", want, got)
	}
}

func TestConsole_PrintStack_ListsElementsFromTop(t *testing.T) {
	ctrl := gomock.NewController(t)
	vm := machine.NewMockMachine(ctrl)
	vm.EXPECT().StackSize().Return(2).AnyTimes()
	vm.EXPECT().StackPeek(0).Return(*uint256.NewInt(3), nil)
	vm.EXPECT().StackPeek(1).Return(*uint256.NewInt(16), nil)

	out := &bytes.Buffer{}
	New(vm, nil, out).Execute("print stack")

	if want, got := "0: 0x3\n1: 0x10\n", out.String(); want != got {
		t.Errorf("unexpected output, wanted %q, got %q", want, got)
	}
}

func TestConsole_PrintStack_EmptyStackPrintsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	vm := machine.NewMockMachine(ctrl)
	vm.EXPECT().StackSize().Return(0).AnyTimes()

	out := &bytes.Buffer{}
	New(vm, nil, out).Execute("print stack")

	if got := out.String(); got != "" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestConsole_UnknownCommandLeavesMachineUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	vm := machine.NewMockMachine(ctrl)

	out := &bytes.Buffer{}
	console := New(vm, nil, out)
	for _, line := range []string{"", "STEP", "fire  debug", "print"} {
		console.Execute(line)
	}

	if want, got := strings.Repeat("Unknown command.\n", 4), out.String(); want != got {
		t.Errorf("unexpected output, wanted %q, got %q", want, got)
	}
}

func TestConsole_FireDebug_StopsAtFirstFault(t *testing.T) {
	ctrl := gomock.NewController(t)
	vm := machine.NewMockMachine(ctrl)
	vm.EXPECT().StackSize().Return(0).AnyTimes()
	gomock.InOrder(
		vm.EXPECT().Stopped().Return(false),
		vm.EXPECT().NextInstruction().Return(machine.Instruction{Pc: 0, Op: machine.ADD}),
		vm.EXPECT().PendingCost().Return(nil, machine.ConstError("stack underflow")),
		vm.EXPECT().Step().Return(machine.ConstError("stack underflow")),
	)

	out := &bytes.Buffer{}
	New(vm, nil, out).Execute("fire debug")

	want := "Running ADD @ 0 ...\nCost: error: stack underflow\nResult: failed: stack underflow\n\n"
	if got := out.String(); want != got {
		t.Errorf("unexpected output, wanted %q, got %q", want, got)
	}
}

func TestConsole_FireDebug_ReachesSameStateAsFire(t *testing.T) {
	code := []byte{
		byte(machine.PUSH1), 2, byte(machine.PUSH1), 3, byte(machine.ADD),
		byte(machine.PUSH1), 0, byte(machine.MSTORE),
		byte(machine.PUSH1), 32, byte(machine.PUSH1), 0, byte(machine.RETURN),
	}
	state := machine.InitialState{Code: code, Gas: *uint256.NewInt(1000)}

	run := func(command string) (*stepvm.Interpreter, string) {
		vm, err := stepvm.New(state)
		if err != nil {
			t.Fatalf("failed to create interpreter: %v", err)
		}
		out := &bytes.Buffer{}
		New(vm, nil, out).Execute(command)
		return vm, out.String()
	}

	fired, fireOutput := run("fire")
	debugged, debugOutput := run("fire debug")

	if want, got := "ok\n", fireOutput; want != got {
		t.Errorf("unexpected fire output, wanted %q, got %q", want, got)
	}
	if !bytes.Equal(fired.ReturnData(), debugged.ReturnData()) {
		t.Errorf("return data differs: %x vs %x", fired.ReturnData(), debugged.ReturnData())
	}
	if a, b := fired.GasLeft(), debugged.GasLeft(); !a.Eq(&b) {
		t.Errorf("remaining gas differs: %d vs %d", &a, &b)
	}
	if !debugged.Stopped() {
		t.Errorf("machine should be stopped after fire debug")
	}
	for _, want := range []string{
		"Running PUSH1 0x02 @ 0 ...\nCost: 3\n",
		"Running ADD @ 4 ...\nCost: 3\n0: 0x3\n1: 0x2\nResult: ok\n\n",
		"Running RETURN @ 12 ...\nCost: 0\n0: 0x0\n1: 0x20\nResult: ok\n\n",
	} {
		if !strings.Contains(debugOutput, want) {
			t.Errorf("fire debug output misses %q, got %q", want, debugOutput)
		}
	}
	if want, got := 8, strings.Count(debugOutput, "Result: ok"); want != got {
		t.Errorf("unexpected number of steps, wanted %d, got %d", want, got)
	}
}

func TestFormatCost_SwitchesToHexBeyond64Bit(t *testing.T) {
	huge := new(uint256.Int).Lsh(uint256.NewInt(1), 64)
	tests := map[string]struct {
		cost *uint256.Int
		want string
	}{
		"zero":  {uint256.NewInt(0), "0"},
		"small": {uint256.NewInt(21000), "21000"},
		"huge":  {huge, "0x10000000000000000"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if got := formatCost(test.cost); test.want != got {
				t.Errorf("unexpected format, wanted %q, got %q", test.want, got)
			}
		})
	}
}

func TestState_String(t *testing.T) {
	for state, want := range map[State]string{Ready: "Ready", Stopped: "Stopped", Terminated: "Terminated", State(7): "State(7)"} {
		if got := state.String(); want != got {
			t.Errorf("unexpected name, wanted %q, got %q", want, got)
		}
	}
}
