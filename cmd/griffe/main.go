// Command griffe is the CLI front-end over the static Python API
// loader: "dump" loads one or more packages and emits their object
// tree as JSON, "check" loads two revisions of a package and reports
// breaking API changes between them. Grounded on cmd/ailang's own
// coloring conventions (fatih/color SprintFuncs for diagnostics) but
// rebuilt on spf13/cobra for independent per-subcommand flag sets.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()

	// Version is set by -ldflags at build time.
	Version = "dev"
)

func main() {
	root := &cobra.Command{
		Use:     "griffe",
		Short:   "Static API loader for Python packages",
		Version: Version,
	}
	root.AddCommand(newDumpCommand())
	root.AddCommand(newCheckCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		os.Exit(1)
	}
}
