// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dualsolve is the CLI entrypoint for the dual-decomposition LP
// solver: it parses the CLI flag surface, wires an objective and a
// maximizer together through the driver, and exits non-zero on
// argument-parse failure (including a missing required flag) or when the
// run returns an error (objective lookup or evaluation, initial-dual load,
// or writing the outputs).
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/duallagrange/solver/dlog"
	"github.com/duallagrange/solver/driver"
	"github.com/duallagrange/solver/io/table"
	_ "github.com/duallagrange/solver/objective" // registers the built-in objective factories
)

var knownFlags = map[string]bool{
	"driver.projectionType":    true,
	"driver.objectiveClass":    true,
	"driver.solverOutputPath":  true,
	"driver.initialLambdaPath": true,
	"driver.gamma":             true,
	"driver.outputFormat":      true,
	"driver.savePrimal":        true,
	"driver.verbosity":         true,
	"driver.maxIter":           true,
	"driver.accelerated":       true,
	"input.ACblocksPath":       true,
	"input.vectorBPath":        true,
	"input.format":             true,
}

func main() {
	ownArgs, passthrough := splitArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("dualsolve", flag.ContinueOnError)
	projectionType := fs.String("driver.projectionType", "", "Simplex, Greedy, ...")
	objectiveClass := fs.String("driver.objectiveClass", "", "fully qualified objective factory name")
	solverOutputPath := fs.String("driver.solverOutputPath", "", "output directory")
	initialLambdaPath := fs.String("driver.initialLambdaPath", "", "path to a warm-restart dual table")
	gamma := fs.Float64("driver.gamma", 1e-3, "quadratic regularization strength")
	outputFormat := fs.String("driver.outputFormat", "AVRO", "AVRO or ORC")
	savePrimal := fs.Bool("driver.savePrimal", false, "persist the primal certificate")
	verbosity := fs.Int("driver.verbosity", 1, "0, 1 or 2")
	maxIter := fs.Int("driver.maxIter", 1000, "maximizer iteration cap")
	accelerated := fs.Bool("driver.accelerated", false, "use the accelerated-gradient maximizer instead of L-BFGS-B")
	acBlocksPath := fs.String("input.ACblocksPath", "", "path to the A/C coupling blocks")
	vectorBPath := fs.String("input.vectorBPath", "", "path to the coupling RHS vector b")
	inputFormat := fs.String("input.format", "AVRO", "AVRO or ORC")

	if err := fs.Parse(ownArgs); err != nil {
		fmt.Fprintln(os.Stderr, "dualsolve: argument error:", err)
		os.Exit(1)
	}

	if *objectiveClass == "" || *solverOutputPath == "" || *acBlocksPath == "" || *vectorBPath == "" {
		fmt.Fprintln(os.Stderr, "dualsolve: --driver.objectiveClass, --driver.solverOutputPath, --input.ACblocksPath and --input.vectorBPath are required")
		os.Exit(1)
	}

	dlog.SetLevel(*verbosity)

	dp := driver.Params{
		ProjectionType:    *projectionType,
		ObjectiveClass:    *objectiveClass,
		SolverOutputPath:  *solverOutputPath,
		InitialLambdaPath: *initialLambdaPath,
		Gamma:             *gamma,
		OutputFormat:      table.Format(*outputFormat),
		SavePrimal:        *savePrimal,
		Verbosity:         *verbosity,
		MaxIter:           *maxIter,
		UseAccelerated:    *accelerated,
	}
	ip := driver.InputParams{
		ACBlocksPath: *acBlocksPath,
		VectorBPath:  *vectorBPath,
		Format:       table.Format(*inputFormat),
	}

	if _, err := driver.SingleRun(dp, ip, passthrough, nil); err != nil {
		dlog.Logger().Error().Err(err).Msg("dualsolve: run failed")
		os.Exit(1)
	}
}

// splitArgs separates argv into the flags this binary understands and
// everything else, which is forwarded verbatim to the objective-specific
// parser ("unknown flags are ignored (passed through to
// objective-specific parsers)").
func splitArgs(argv []string, known map[string]bool) (ownArgs, passthrough []string) {
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		name, hasValue := flagName(arg)
		takesNext := hasValue == valueSeparate && !boolFlags[name] && i+1 < len(argv)
		if known[name] {
			ownArgs = append(ownArgs, arg)
			if takesNext {
				i++
				ownArgs = append(ownArgs, argv[i])
			}
			continue
		}
		passthrough = append(passthrough, arg)
		if takesNext {
			i++
			passthrough = append(passthrough, argv[i])
		}
	}
	return ownArgs, passthrough
}

// boolFlags never consume the next argv slot as a value: like the stdlib
// flag package, "-driver.savePrimal" alone means true.
var boolFlags = map[string]bool{
	"driver.savePrimal":  true,
	"driver.accelerated": true,
}

type valueForm int

const (
	valueNone valueForm = iota
	valueInline
	valueSeparate
)

// flagName extracts the flag name from a "-name", "--name", "-name=v" or
// "--name=v" argument, reporting whether its value (if any) is inline
// (=v) or in the next argv slot.
func flagName(arg string) (name string, form valueForm) {
	trimmed := strings.TrimLeft(arg, "-")
	if trimmed == arg {
		return "", valueNone // not a flag at all
	}
	if eq := strings.IndexByte(trimmed, '='); eq >= 0 {
		return trimmed[:eq], valueInline
	}
	return trimmed, valueSeparate
}
