// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"os"

	"github.com/Fantom-foundation/Gaslighter/go/console"
	cliUtils "github.com/Fantom-foundation/Gaslighter/go/driver/cli"
	"github.com/urfave/cli/v2"
)

var DebugCmd = cli.Command{
	Action:    doDebug,
	Name:      "debug",
	Usage:     "Interactively step through the execution of a single test vector",
	ArgsUsage: "[<VM>]",
	Flags: []cli.Flag{
		cliUtils.InputFlag,
		cliUtils.TestFlag,
	},
}

func doDebug(context *cli.Context) error {
	newMachine, err := getVm(context.Args().First())
	if err != nil {
		return err
	}

	vectors, err := loadVectors(context)
	if err != nil {
		return err
	}
	name := cliUtils.TestFlag.Fetch(context)
	vector, found := vectors[name]
	if !found {
		return fmt.Errorf("unknown test vector %q", name)
	}

	state, err := vector.InitialState()
	if err != nil {
		return fmt.Errorf("failed to construct machine: %w", err)
	}
	vm, err := newMachine(state)
	if err != nil {
		return fmt.Errorf("failed to construct machine: %w", err)
	}

	reader, err := console.NewReadlineReader(os.Stdin, context.App.Writer)
	if err != nil {
		return fmt.Errorf("failed to open console: %w", err)
	}
	defer reader.Close()

	out := context.App.Writer
	fmt.Fprintf(out, "Debugging %s, commands: step, fire, fire debug, gas, out, print stack\n", name)
	session := console.New(vm, reader, out)
	session.Run()
	log.Debugf("console session ended after %d commands", len(session.History()))
	return nil
}
