package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/btracey/quadopt/multivariate"
	"github.com/btracey/quadopt/render"
)

func newPlotCommand() *cobra.Command {
	var (
		pf     problemFlags
		out    string
		radius float64
		title  string
	)
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Draw the contours and path of a two-dimensional run",
		Long: `plot minimizes a two-dimensional problem and draws the contour of f
through every point the method visited, along with the path itself. The
image format follows the extension of --out (png, svg, pdf, ...).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("radius") {
				p.Radius = radius
				if err := p.Validate(); err != nil {
					return err
				}
			}
			f, err := p.Function()
			if err != nil {
				return err
			}
			settings, method, err := p.Settings()
			if err != nil {
				return err
			}
			result, err := multivariate.Optimize(f, p.Start, settings, method)
			if err != nil {
				return err
			}

			opts := render.DefaultOptions()
			opts.Radius = p.Radius
			opts.Title = title
			pl, err := render.Plot(f, result, opts)
			if err != nil {
				return err
			}
			if err := render.Save(pl, out, opts); err != nil {
				return err
			}
			printResult(cmd, result)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "quadopt.png", "output image")
	cmd.Flags().Float64Var(&radius, "radius", render.DefaultRadius, "half the side of the drawn square")
	cmd.Flags().StringVar(&title, "title", "", "plot title (defaults to the method name)")
	return cmd
}
