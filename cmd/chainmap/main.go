// Package main provides the entry point for chainmap.
//
// chainmap builds separate-chaining hash tables from YAML workload files
// and reports how keys are distributed, how the table grows and shrinks
// while a script of operations is replayed, and offers an interactive
// shell over a dictionary.
package main

import (
	"os"

	"github.com/yndnr/chainmap-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		command.PrintError("%v", err)
		os.Exit(1)
	}
}
