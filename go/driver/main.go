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

	cliUtils "github.com/Fantom-foundation/Gaslighter/go/driver/cli"
	"github.com/Fantom-foundation/Gaslighter/go/logger"
	"github.com/urfave/cli/v2"
)

var log = logger.NewLogger("driver")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "gaslighter",
		Usage:     "Test vector judge and interactive debugger for EVM implementations",
		Copyright: "(c) 2024 Fantom Foundation",
		Flags: []cli.Flag{
			cliUtils.LogLevelFlag,
		},
		Before: func(context *cli.Context) error {
			return logger.Setup(context.App.ErrWriter, cliUtils.LogLevelFlag.Fetch(context))
		},
		Commands: []*cli.Command{
			&RunCmd,
			&DebugCmd,
			&ListCmd,
			&GenerateCmd,
		},
	}
}
