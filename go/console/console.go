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
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/Fantom-foundation/Gaslighter/go/logger"
	"github.com/Fantom-foundation/Gaslighter/go/machine"
	"github.com/holiman/uint256"
)

var log = logger.NewLogger("console")

// Prompt is shown by interactive line readers before each command.
const Prompt = ">> "

// ErrInterrupted is returned by a LineReader if the operator interrupted the
// input, typically by pressing CTRL-C. End of input is signaled by io.EOF.
const ErrInterrupted = machine.ConstError("interrupted")

// LineReader is the source of operator commands.
type LineReader interface {
	// ReadLine blocks until the next line is available. It returns
	// ErrInterrupted on interrupts and io.EOF at the end of the input.
	ReadLine() (string, error)
	// AddHistory records an accepted line in the reader's history.
	AddHistory(line string) error
}

// State is the state of a console session.
type State byte

const (
	Ready      State = iota // < the machine can be stepped
	Stopped                 // < the machine has no more instructions to execute
	Terminated              // < the operator ended the session
)

func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Stopped:
		return "Stopped"
	case Terminated:
		return "Terminated"
	}
	return fmt.Sprintf("State(%d)", byte(s))
}

// Console is a read-eval-print loop for manually stepping through the
// execution of a machine. It is not thread-safe.
type Console struct {
	machine    machine.Machine
	reader     LineReader
	out        io.Writer
	history    []string
	terminated bool
}

// New creates a console session operating the given machine.
func New(vm machine.Machine, reader LineReader, out io.Writer) *Console {
	return &Console{
		machine: vm,
		reader:  reader,
		out:     out,
	}
}

// State returns the current state of the session.
func (c *Console) State() State {
	if c.terminated {
		return Terminated
	}
	if c.machine.Stopped() {
		return Stopped
	}
	return Ready
}

// History returns the lines accepted during this session.
func (c *Console) History() []string {
	return c.history
}

// Run processes commands until the operator interrupts the session or the
// input ends. Faults reported by the machine never end the session.
func (c *Console) Run() {
	for !c.terminated {
		in := c.read()
		switch in.kind {
		case inputLine:
			c.history = append(c.history, in.line)
			if err := c.reader.AddHistory(in.line); err != nil {
				log.Warningf("failed to record history: %v", err)
			}
			c.Execute(in.line)
		case inputInterrupted:
			fmt.Fprintln(c.out, "CTRL-C")
			c.terminated = true
		case inputEnd:
			fmt.Fprintln(c.out, "CTRL-D")
			c.terminated = true
		case inputFailed:
			fmt.Fprintf(c.out, "Error: %v\n", in.err)
			c.terminated = true
		}
	}
}

type inputKind byte

const (
	inputLine inputKind = iota
	inputInterrupted
	inputEnd
	inputFailed
)

type input struct {
	kind inputKind
	line string
	err  error
}

func (c *Console) read() input {
	line, err := c.reader.ReadLine()
	switch {
	case err == nil:
		return input{kind: inputLine, line: line}
	case errors.Is(err, ErrInterrupted):
		return input{kind: inputInterrupted}
	case errors.Is(err, io.EOF):
		return input{kind: inputEnd}
	default:
		return input{kind: inputFailed, err: err}
	}
}

var commands = map[string]func(*Console){
	"step":        (*Console).step,
	"fire":        (*Console).fire,
	"fire debug":  (*Console).fireDebug,
	"gas":         (*Console).gas,
	"out":         (*Console).printReturnData,
	"print stack": (*Console).printStack,
}

// Execute runs a single command. Unknown commands are reported and leave the
// machine untouched.
func (c *Console) Execute(line string) {
	command, found := commands[line]
	if !found {
		fmt.Fprintln(c.out, "Unknown command.")
		return
	}
	command(c)
}

func (c *Console) step() {
	if c.machine.Stopped() {
		fmt.Fprintln(c.out, "Stopped")
		return
	}
	instruction := c.machine.NextInstruction()
	fmt.Fprintf(c.out, "Running %v ... %s.\n", instruction, outcome(c.machine.Step()))
}

func (c *Console) fire() {
	fmt.Fprintln(c.out, outcome(c.machine.Run()))
}

func (c *Console) fireDebug() {
	for !c.machine.Stopped() {
		fmt.Fprintf(c.out, "Running %v ...\n", c.machine.NextInstruction())
		if cost, err := c.machine.PendingCost(); err != nil {
			fmt.Fprintf(c.out, "Cost: error: %v\n", err)
		} else {
			fmt.Fprintf(c.out, "Cost: %s\n", formatCost(cost))
		}
		c.printStack()
		err := c.machine.Step()
		fmt.Fprintf(c.out, "Result: %s\n\n", outcome(err))
		if err != nil {
			break
		}
	}
}

func (c *Console) gas() {
	cost, err := c.machine.PendingCost()
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, cost.Hex())
}

func (c *Console) printReturnData() {
	fmt.Fprintf(c.out, "0x%x\n", c.machine.ReturnData())
}

func (c *Console) printStack() {
	for i := 0; i < c.machine.StackSize(); i++ {
		value, err := c.machine.StackPeek(i)
		if err != nil {
			fmt.Fprintf(c.out, "%d: error: %v\n", i, err)
			continue
		}
		fmt.Fprintf(c.out, "%d: %s\n", i, value.Hex())
	}
}

// formatCost prints costs below the 64-bit range in decimal and all larger
// costs in hexadecimal.
func formatCost(cost *uint256.Int) string {
	if cost.LtUint64(math.MaxUint64) {
		return fmt.Sprintf("%d", cost.Uint64())
	}
	return cost.Hex()
}

func outcome(err error) string {
	if err != nil {
		return fmt.Sprintf("failed: %v", err)
	}
	return "ok"
}
