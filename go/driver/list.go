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

	cliUtils "github.com/Fantom-foundation/Gaslighter/go/driver/cli"
	"github.com/urfave/cli/v2"
)

var ListCmd = cli.Command{
	Action: doList,
	Name:   "list",
	Usage:  "List all test vectors by name",
	Flags: []cli.Flag{
		cliUtils.InputFlag,
		cliUtils.FilterFlag,
	},
}

func doList(context *cli.Context) error {

	vectors, err := loadVectors(context)
	if err != nil {
		return err
	}

	names, err := selectVectors(context, vectors)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(context.App.Writer, name)
	}
	return nil
}
