// Package main is the entry point for the htmledit CLI.
package main

import (
	"os"

	"github.com/customerio/htmledit/internal/cli"
	"github.com/customerio/htmledit/internal/logging"
)

// Build-time variable set via ldflags.
var version = "dev"

func main() {
	rootCmd := cli.NewRootCommand(version)
	if err := rootCmd.Execute(); err != nil {
		logging.Default().Error("command failed", logging.FieldError, err)
		os.Exit(1)
	}
}
