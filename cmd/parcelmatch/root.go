// SPDX-License-Identifier: MIT
// File: root.go
// Role: cobra command tree and top-level exit-code translation.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// run builds the command tree, executes it against args, and maps the
// result to a process exit code per spec §6.
func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		var partial *partialRunErr
		if errors.As(err, &partial) {
			fmt.Fprintf(os.Stderr, "parcelmatch: %d parcels left unmatched under --strict\n", partial.unmatched)
			return exitPartialRun
		}
		fmt.Fprintf(os.Stderr, "parcelmatch: %v\n", err)
		return exitFatalError
	}
	return exitSuccess
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "parcelmatch",
		Short:         "Match a cadastral parcel registry against an address registry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMatchCmd())
	return root
}
