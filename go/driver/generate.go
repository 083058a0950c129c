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
	"github.com/Fantom-foundation/Gaslighter/go/examples"
	"github.com/Fantom-foundation/Gaslighter/go/vector"
	"github.com/urfave/cli/v2"
)

var GenerateCmd = cli.Command{
	Action: doGenerate,
	Name:   "generate",
	Usage:  "Generate test vectors calling the example contracts",
	Flags: []cli.Flag{
		cliUtils.OutputFlag,
		cliUtils.ArgumentsFlag,
		cliUtils.FilterFlag,
	},
}

func doGenerate(context *cli.Context) error {
	filter, err := cliUtils.FilterFlag.Fetch(context)
	if err != nil {
		return err
	}

	vectors := map[string]*vector.TestVector{}
	for _, example := range examples.All() {
		for _, argument := range cliUtils.ArgumentsFlag.Fetch(context) {
			v := example.Vector(argument)
			if filter.MatchString(v.Name) {
				vectors[v.Name] = v
			}
		}
	}

	output := cliUtils.OutputFlag.Fetch(context)
	if err := vector.ExportVectorsJSON(vectors, output); err != nil {
		return fmt.Errorf("failed to write test vectors: %w", err)
	}
	fmt.Fprintf(context.App.Writer, "Generated %d test vectors in %s\n", len(vectors), output)
	return nil
}
