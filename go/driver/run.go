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
	"bytes"
	"fmt"
	"sync"
	"time"

	cliUtils "github.com/Fantom-foundation/Gaslighter/go/driver/cli"
	"github.com/Fantom-foundation/Gaslighter/go/judge"
	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"
)

var RunCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Judge test vectors on an EVM implementation",
	ArgsUsage: "[<VM>]",
	Flags: []cli.Flag{
		cliUtils.InputFlag,
		cliUtils.FilterFlag,
		cliUtils.JobsFlag,
		cliUtils.DebugFlag,
	},
})

func doRun(context *cli.Context) error {
	newMachine, err := getVm(context.Args().First())
	if err != nil {
		return err
	}

	vectors, err := loadVectors(context)
	if err != nil {
		return err
	}
	names, err := selectVectors(context, vectors)
	if err != nil {
		return err
	}

	jobCount := cliUtils.JobsFlag.Fetch(context)
	options := judge.Options{Debug: cliUtils.DebugFlag.Fetch(context)}
	out := context.App.Writer

	issuesCollector := cliUtils.IssuesCollector{}

	// Output of a vector is buffered and flushed as a whole such that the
	// reports of parallel jobs never interleave.
	var outputMutex sync.Mutex

	printProgress := func(relativeTime time.Duration, rate float64, current int64) {
		outputMutex.Lock()
		defer outputMutex.Unlock()
		fmt.Fprintf(out,
			"[t=%4d:%02d] - Processing ~%s vectors per second, total %d of %d, found issues %d\n",
			int(relativeTime.Seconds())/60, int(relativeTime.Seconds())%60,
			unitconv.FormatPrefix(rate, unitconv.SI, 0), current, len(names), issuesCollector.NumIssues(),
		)
	}

	opRun := func(name string) {
		vector := vectors[name]
		var buffer bytes.Buffer
		verdict, err := judge.Evaluate(vector, newMachine, &buffer, options)

		outputMutex.Lock()
		out.Write(buffer.Bytes())
		outputMutex.Unlock()

		if err != nil {
			issuesCollector.AddConstructionFailure(vector, err)
			return
		}
		issuesCollector.AddVerdict(vector, verdict)
	}

	fmt.Fprintf(out, "Judging %d test vectors using %d jobs ...\n", len(names), jobCount)
	forEachVector(names, opRun, printProgress, jobCount)

	// Summarize the result.
	if count := issuesCollector.Count(cliUtils.Construction); count > 0 {
		fmt.Fprintf(out, "Number of vectors failing machine construction: %d\n", count)
	}

	numIssues := issuesCollector.NumIssues()
	if numIssues == 0 {
		fmt.Fprintf(out, "All tests passed successfully!\n")
		return nil
	}

	if err := issuesCollector.ExportIssues(out); err != nil {
		return err
	}

	return fmt.Errorf("failed to pass %d test vectors", numIssues)
}
