package main

import (
	"fmt"
	"math/rand/v2"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/btracey/quadopt/multivariate"
	"github.com/btracey/quadopt/synthetic"
	"github.com/btracey/quadopt/univariate"
)

func newBenchCommand() *cobra.Command {
	var (
		ns         []int
		ks         []int
		seed       uint64
		epsilon    float64
		linesearch string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare methods on random diagonal problems",
		Long: `For every dimension n and condition number k, bench draws a diagonal
problem whose eigenvalues are integers in [1, k] including both ends, draws
a starting point in [1, 10)ⁿ, and runs every method from it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, err := univariate.ParseMethod(linesearch)
			if err != nil {
				return err
			}
			settings := multivariate.DefaultSettings()
			settings.Tolerance = epsilon
			settings.Linesearch = ls

			src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
			records, err := synthetic.Bench(ns, ks, multivariate.Methods(), src, settings)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "N\tK\tMETHOD\tITERATIONS\tFNEVAL\tGRADEVAL\tSTATUS")
			for _, r := range records {
				fmt.Fprintf(tw, "%d\t%d\t%v\t%d\t%d\t%d\t%v\n", r.N, r.K, r.Method,
					r.Result.Iterations, r.Result.FunctionEvaluations, r.Result.GradientEvaluations, r.Result.Status)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntSliceVar(&ns, "n", []int{10, 100, 1000}, "dimensions")
	cmd.Flags().IntSliceVar(&ks, "k", []int{1, 10, 100}, "condition numbers")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().Float64Var(&epsilon, "epsilon", multivariate.DefaultTolerance, "gradient norm tolerance")
	cmd.Flags().StringVar(&linesearch, "linesearch", univariate.GoldenSectionMethod.String(), "one-dimensional search used by steepest descent")
	return cmd
}
