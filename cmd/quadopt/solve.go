package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/btracey/quadopt/multivariate"
	"github.com/btracey/quadopt/write"
)

func newSolveCommand() *cobra.Command {
	var (
		pf      problemFlags
		verbose bool
		logCSV  string
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Minimize one problem and print the result",
		Long: `Minimize the problem in --config, or the default problem
A = [[20, 0], [1, 1]], b = 0, c = 0 from (10, 10), and print the minimizer.

A problem file may set kind (dense or diagonal), n, a, b, c, start,
epsilon, method, linesearch, max_iterations and radius.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.load(cmd)
			if err != nil {
				return err
			}
			f, err := p.Function()
			if err != nil {
				return err
			}
			settings, method, err := p.Settings()
			if err != nil {
				return err
			}

			var writers []write.Writer
			if verbose {
				writers = append(writers, write.Writer{Writer: cmd.ErrOrStderr(), T: write.Displayer})
			}
			var logFile io.WriteCloser
			if logCSV != "" {
				if logFile, err = createLog(logCSV); err != nil {
					return err
				}
				writers = append(writers, write.Writer{Writer: logFile, T: write.Logger})
			}
			settings.CommonSettings.Settings = &write.Settings{Writers: writers}

			result, err := multivariate.Optimize(f, p.Start, settings, method)
			if logFile != nil {
				if cerr := logFile.Close(); err == nil && cerr != nil {
					err = fmt.Errorf("closing %s: %w", logCSV, cerr)
				}
			}
			if err != nil {
				return err
			}
			printResult(cmd, result)
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "display progress on stderr")
	cmd.Flags().StringVar(&logCSV, "log-csv", "", "write every iteration to this csv file")
	return cmd
}

// createLog opens the --log-csv destination. Tests replace it.
var createLog = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func printResult(cmd *cobra.Command, r *multivariate.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "method:     %v\n", r.Method)
	fmt.Fprintf(out, "x:          %v\n", r.X)
	fmt.Fprintf(out, "y:          %v\n", r.Y)
	fmt.Fprintf(out, "iterations: %d\n", r.Iterations)
	fmt.Fprintf(out, "gradnorm:   %e\n", r.GradNorm)
	fmt.Fprintf(out, "status:     %v\n", r.Status)
}
