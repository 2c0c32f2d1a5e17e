// Command quadopt minimizes quadratic functions from the command line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quadopt",
		Short: "Minimize convex quadratic functions",
		Long: `quadopt minimizes f(x) = ½xᵀAx − bᵀx + c with gradient descent,
steepest descent or conjugate gradient.

Problems are read from YAML files (see solve --help); flags override the
file. bench runs every method on random diagonal problems of a given
condition number, and plot draws the path of a two-dimensional run.`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quadopt %s (%s)\n", version, commit)
		},
	})
	rootCmd.AddCommand(newSolveCommand())
	rootCmd.AddCommand(newBenchCommand())
	rootCmd.AddCommand(newPlotCommand())
	return rootCmd
}
