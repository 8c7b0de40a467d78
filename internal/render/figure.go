// Package render draws cut trees and their matrices to PDF.
package render

import (
	"fmt"
	"math"
	"os"

	"github.com/gonum/matrix/mat64"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/KyungWonPark/corrdendro/internal/cluster"
	cio "github.com/KyungWonPark/corrdendro/internal/io"
)

// Figure describes one figure to draw.
type Figure struct {
	Title   string
	Labels  []string
	Tree    *cluster.Tree
	Cut     *cluster.Partition
	Palette Palette

	// Width and Height are in inches before Scaling is applied.
	Width   float64
	Height  float64
	Scaling float64
}

func (f Figure) size() (vg.Length, vg.Length) {
	return vg.Length(f.Width*f.Scaling) * vg.Inch, vg.Length(f.Height*f.Scaling) * vg.Inch
}

func (f Figure) dendrogramPlot() *plot.Plot {
	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = "distance"
	p.Add(newDendrogram(f.Tree, f.Cut, f.Palette))
	p.Y.Tick.Marker = leafTicks(f.Cut, f.Labels)
	return p
}

// SaveDendrogram writes the dendrogram alone, links colored by group.
func SaveDendrogram(path string, f Figure) error {
	w, h := f.size()
	if err := f.dendrogramPlot().Save(w, h, path); err != nil {
		return fmt.Errorf("%w: %s: %v", cio.ErrWrite, path, err)
	}
	return nil
}

// orderedGrid shows a square matrix with rows and columns permuted into
// leaf drawing order.
type orderedGrid struct {
	m     *mat64.Dense
	order []int
}

func (g orderedGrid) Dims() (c, r int)   { return len(g.order), len(g.order) }
func (g orderedGrid) Z(c, r int) float64 { return g.m.At(g.order[r], g.order[c]) }
func (g orderedGrid) X(c int) float64    { return float64(c) }
func (g orderedGrid) Y(r int) float64    { return float64(r) }

// SaveAll writes the dendrogram next to a heatmap of matrix, both in leaf
// order so rows line up.
func SaveAll(path string, f Figure, matrix *mat64.Dense) error {
	w, h := f.size()

	grid := orderedGrid{m: matrix, order: f.Cut.Order}
	heat := plotter.NewHeatMap(grid, newDiverging(255))
	if heat.Min == heat.Max || math.IsNaN(heat.Min) || math.IsNaN(heat.Max) {
		heat.Min, heat.Max = heat.Min-0.5, heat.Min+0.5
	}

	hp := plot.New()
	hp.Title.Text = "matrix"
	hp.Add(heat)
	hp.HideY()
	hp.X.Tick.Marker = leafTicks(f.Cut, f.Labels)
	hp.X.Tick.Label.Rotation = math.Pi / 2
	hp.X.Tick.Label.XAlign = draw.XRight
	hp.X.Tick.Label.YAlign = draw.YCenter

	plots := [][]*plot.Plot{{f.dendrogramPlot(), hp}}

	c := vgpdf.New(2*w, h)
	dc := draw.New(c)
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter, PadY: vg.Millimeter}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots[0] {
		plots[0][j].Draw(canvases[0][j])
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", cio.ErrWrite, err)
	}
	if _, err := c.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("%w: %s: %v", cio.ErrWrite, path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", cio.ErrWrite, path, err)
	}
	return nil
}
