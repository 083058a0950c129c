// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cliUtils

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"runtime/pprof"

	"github.com/urfave/cli/v2"
)

type filterFlagType struct {
	cli.StringFlag
}

var FilterFlag = &filterFlagType{
	cli.StringFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "process only test vectors which name matches the given regex",
		Value:   "",
	},
}

func (f *filterFlagType) Fetch(context *cli.Context) (*regexp.Regexp, error) {
	return regexp.Compile(context.String(f.Name))
}

type jobsFlagType struct {
	cli.IntFlag
}

var JobsFlag = &jobsFlagType{
	cli.IntFlag{
		Name:    "jobs",
		Aliases: []string{"j"},
		Usage:   "number of jobs run simultaneously",
		Value:   runtime.NumCPU(),
		EnvVars: []string{"GASLIGHTER_JOBS"},
	},
}

// Fetch returns the number of jobs to use; non-positive values select one
// job per CPU.
func (f *jobsFlagType) Fetch(context *cli.Context) int {
	jobs := context.Int(f.Name)
	if jobs <= 0 {
		return runtime.NumCPU()
	}
	return jobs
}

type inputFlagType struct {
	cli.StringSliceFlag
}

var InputFlag = &inputFlagType{
	cli.StringSliceFlag{
		Name:      "input",
		Aliases:   []string{"i"},
		Usage:     "test vector file or directory, may be repeated",
		Required:  true,
		TakesFile: true,
	},
}

func (f *inputFlagType) Fetch(context *cli.Context) []string {
	return context.StringSlice(f.Name)
}

type debugFlagType struct {
	cli.BoolFlag
}

var DebugFlag = &debugFlagType{
	cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "report expected and actual results of mismatching test vectors",
	},
}

func (f *debugFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type testFlagType struct {
	cli.StringFlag
}

var TestFlag = &testFlagType{
	cli.StringFlag{
		Name:     "test",
		Aliases:  []string{"t"},
		Usage:    "name of the test vector to debug",
		Required: true,
	},
}

func (f *testFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type logLevelFlagType struct {
	cli.StringFlag
}

var LogLevelFlag = &logLevelFlagType{
	cli.StringFlag{
		Name:    "log-level",
		Aliases: []string{"l"},
		Usage:   "level of diagnostic messages: critical, error, warning, notice, info or debug",
		Value:   "warning",
		EnvVars: []string{"GASLIGHTER_LOG_LEVEL"},
	},
}

func (f *logLevelFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type cpuProfileType struct {
	cli.StringFlag
}

var CpuProfileFlag = &cpuProfileType{
	cli.StringFlag{
		Name:      "cpuprofile",
		Usage:     "store CPU profile in the provided filename",
		TakesFile: true,
	},
}

func (f *cpuProfileType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

var commonFlags = []cli.Flag{
	CpuProfileFlag,
}

// AddCommonFlags extends the given command by flags shared among all
// commands and wraps its action to honor them.
func AddCommonFlags(command cli.Command) cli.Command {
	command.Flags = append(command.Flags, commonFlags...)

	action := command.Action
	command.Action = func(ctx *cli.Context) (err error) {

		if cpuprofileFilename := CpuProfileFlag.Fetch(ctx); cpuprofileFilename != "" {
			f, err := os.Create(cpuprofileFilename)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		return action(ctx)
	}
	return command
}

type outputFlagType struct {
	cli.StringFlag
}

var OutputFlag = &outputFlagType{
	cli.StringFlag{
		Name:      "output",
		Aliases:   []string{"o"},
		Usage:     "file to write generated test vectors to",
		Value:     "examples.json",
		TakesFile: true,
	},
}

func (f *outputFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type argumentsFlagType struct {
	cli.IntSliceFlag
}

var ArgumentsFlag = &argumentsFlagType{
	cli.IntSliceFlag{
		Name:    "argument",
		Aliases: []string{"a"},
		Usage:   "argument to call the example contracts with, may be repeated",
		Value:   cli.NewIntSlice(1, 10, 100),
	},
}

func (f *argumentsFlagType) Fetch(context *cli.Context) []int {
	return context.IntSlice(f.Name)
}
