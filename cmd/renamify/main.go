// Package main provides the entry point for the renamify CLI.
package main

import (
	"os"

	"github.com/renamify/renamify/internal/cli"
	renamifyerrors "github.com/renamify/renamify/internal/errors"
)

func main() {
	if err := cli.Execute(); err != nil {
		if e := renamifyerrors.AsError(err); e != nil {
			os.Exit(e.ExitCode())
		}
		os.Exit(1)
	}
}
