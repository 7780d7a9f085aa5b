// Package main is the entry point for the PRLens CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/danielolaszy/prlens/cmd"
	"github.com/danielolaszy/prlens/internal/logging"
)

// main is the entry point of the application.
// It executes the root command and handles any errors that occur.
func main() {
	logging.Debug("starting prlens cli")

	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
