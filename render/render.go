// Package render draws the contours of a two-dimensional quadratic together
// with the path an optimizer took across them.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/btracey/quadopt/multivariate"
	"github.com/btracey/quadopt/quadratic"
)

const (
	DefaultRadius     = 30
	DefaultResolution = 101

	// LevelPrecision is the relative difference below which two contour
	// levels are merged.
	LevelPrecision = 1e-8
)

var ErrNotPlanar = errors.New("render: only two-dimensional functions can be drawn")

// Options controls the drawn region and the image size.
type Options struct {
	// Radius is half the side of the square drawn around the final point.
	Radius float64
	// Resolution is the number of grid samples along each axis.
	Resolution int
	Title      string
	Width      vg.Length
	Height     vg.Length
}

func DefaultOptions() *Options {
	return &Options{
		Radius:     DefaultRadius,
		Resolution: DefaultResolution,
		Width:      6 * vg.Inch,
		Height:     6 * vg.Inch,
	}
}

// grid samples f on a regular lattice and implements plotter.GridXYZ.
type grid struct {
	xs, ys []float64
	z      *mat.Dense
}

func newGrid(f *quadratic.Function, center []float64, radius float64, n int) *grid {
	g := &grid{
		xs: floats.Span(make([]float64, n), center[0]-radius, center[0]+radius),
		ys: floats.Span(make([]float64, n), center[1]-radius, center[1]+radius),
		z:  mat.NewDense(n, n, nil),
	}
	p := make([]float64, 2)
	for c, x := range g.xs {
		for r, y := range g.ys {
			p[0], p[1] = x, y
			g.z.Set(c, r, f.Obj(p))
		}
	}
	return g
}

func (g *grid) Dims() (c, r int)   { return len(g.xs), len(g.ys) }
func (g *grid) Z(c, r int) float64 { return g.z.At(c, r) }
func (g *grid) X(c int) float64    { return g.xs[c] }
func (g *grid) Y(r int) float64    { return g.ys[r] }

// Levels returns the objective values along the run, ascending, with values
// equal within LevelPrecision merged.
func Levels(f *quadratic.Function, result *multivariate.Result) []float64 {
	lv := make([]float64, 0, len(result.Trajectory)+1)
	for _, x := range result.Trajectory {
		lv = append(lv, f.Obj(x))
	}
	lv = append(lv, result.Y)
	sort.Float64s(lv)
	out := lv[:1]
	for _, v := range lv[1:] {
		if !scalar.EqualWithinRel(v, out[len(out)-1], LevelPrecision) {
			out = append(out, v)
		}
	}
	return out
}

// Plot draws the contours of f through every point of result's trajectory
// and the trajectory itself, over the square of side 2·Radius centred on
// result.X. A nil opts uses DefaultOptions.
func Plot(f *quadratic.Function, result *multivariate.Result, opts *Options) (*plot.Plot, error) {
	if f.Dim() != 2 {
		return nil, fmt.Errorf("%w: dimension %d", ErrNotPlanar, f.Dim())
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	if !(opts.Radius > 0) || math.IsInf(opts.Radius, 1) {
		return nil, fmt.Errorf("render: invalid radius %v", opts.Radius)
	}
	if opts.Resolution < 2 {
		return nil, fmt.Errorf("render: resolution %d is below 2", opts.Resolution)
	}

	g := newGrid(f, result.X, opts.Radius, opts.Resolution)
	levels := Levels(f, result)
	if len(levels) < 2 {
		// A contour plot needs a range to spread its palette over.
		levels = append(levels, mat.Max(g.z))
	}

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = result.Method.String()
	}
	p.X.Label.Text = "x₁"
	p.Y.Label.Text = "x₂"

	contour := plotter.NewContour(g, levels, palette.Heat(len(levels), 1))
	p.Add(contour)

	path := make(plotter.XYs, 0, len(result.Trajectory)+1)
	for _, x := range result.Trajectory {
		path = append(path, plotter.XY{X: x[0], Y: x[1]})
	}
	path = append(path, plotter.XY{X: result.X[0], Y: result.X[1]})

	line, points, err := plotter.NewLinePoints(path)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{B: 255, A: 255}
	points.Shape = draw.CircleGlyph{}
	points.Color = color.RGBA{B: 255, A: 255}
	p.Add(line, points)
	p.Legend.Add(fmt.Sprintf("%d iterations", result.Iterations), line, points)

	p.X.Min, p.X.Max = g.xs[0], g.xs[len(g.xs)-1]
	p.Y.Min, p.Y.Max = g.ys[0], g.ys[len(g.ys)-1]
	return p, nil
}

// Save writes p to path in the format named by its extension.
func Save(p *plot.Plot, path string, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	return p.Save(opts.Width, opts.Height, path)
}

// Write writes p to w in the given format ("png", "svg", "pdf", ...).
func Write(w io.Writer, p *plot.Plot, format string, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	wt, err := p.WriterTo(opts.Width, opts.Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
