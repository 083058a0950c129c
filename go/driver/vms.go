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

	"github.com/Fantom-foundation/Gaslighter/go/interpreter/stepvm"
	"github.com/Fantom-foundation/Gaslighter/go/machine"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const defaultVm = "stepvm"

func getVm(vmIdentifier string) (machine.Constructor, error) {

	var allowedVMs = map[string]machine.Constructor{
		"stepvm": stepvm.NewMachine,
	}

	if vmIdentifier == "" {
		vmIdentifier = defaultVm
	}
	if f, ok := allowedVMs[vmIdentifier]; ok {
		return f, nil
	}

	names := maps.Keys(allowedVMs)
	slices.Sort(names)
	return nil, fmt.Errorf("invalid VM identifier, use one of: %v", names)
}
