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
	"github.com/Fantom-foundation/Gaslighter/go/vector"
	"github.com/urfave/cli/v2"
)

// loadVectors imports all test vectors referenced by the input flag.
func loadVectors(context *cli.Context) (map[string]*vector.TestVector, error) {
	files, err := vector.EnumerateInputs(cliUtils.InputFlag.Fetch(context))
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate inputs: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no test vector files found")
	}
	vectors, err := vector.LoadAll(files)
	if err != nil {
		return nil, err
	}
	log.Infof("loaded %d test vectors from %d files", len(vectors), len(files))
	return vectors, nil
}

// selectVectors returns the sorted names of the loaded vectors passing the
// filter flag.
func selectVectors(context *cli.Context, vectors map[string]*vector.TestVector) ([]string, error) {
	filter, err := cliUtils.FilterFlag.Fetch(context)
	if err != nil {
		return nil, err
	}
	return vector.FilterNames(vector.Names(vectors), filter), nil
}
