package render

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KyungWonPark/corrdendro/internal/cluster"
)

// link is the bracket drawn for one merge: from the left child across to
// the merge distance, down to the right child and back.
type link struct {
	points [4][2]float64 // (distance, position)
	token  string
}

// dendrogram is a plot.Plotter for a cut tree. Leaves sit at distance zero
// and positions 0..n-1 along the other axis, in drawing order.
type dendrogram struct {
	links   []link
	palette Palette
	width   vg.Length

	minDist, maxDist float64
	leaves           int
}

func newDendrogram(t *cluster.Tree, p *cluster.Partition, palette Palette) *dendrogram {
	n := t.Leaves()
	pos := make(map[int]float64, 2*n-1)
	height := make(map[int]float64, 2*n-1)
	for i, leaf := range p.Order {
		pos[leaf] = float64(i)
	}

	d := &dendrogram{
		palette: palette,
		width:   vg.Points(1),
		leaves:  n,
		minDist: math.Min(0, t.MinDistance()),
		maxDist: math.Max(0, t.MaxDistance()),
	}

	for k, m := range t.Merges() {
		id := n + k
		pos[id] = (pos[m.Left] + pos[m.Right]) / 2
		height[id] = m.Distance

		d.links = append(d.links, link{
			points: [4][2]float64{
				{height[m.Left], pos[m.Left]},
				{m.Distance, pos[m.Left]},
				{m.Distance, pos[m.Right]},
				{height[m.Right], pos[m.Right]},
			},
			token: p.Links[k],
		})
	}

	return d
}

// Plot implements plot.Plotter.
func (d *dendrogram) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	for _, l := range d.links {
		line := make([]vg.Point, len(l.points))
		for i, pt := range l.points {
			line[i] = vg.Point{X: trX(pt[0]), Y: trY(pt[1])}
		}

		style := draw.LineStyle{Color: d.palette.Color(l.token), Width: d.width}
		c.StrokeLines(style, c.ClipLinesXY(line)...)
	}
}

// DataRange implements plot.DataRanger.
func (d *dendrogram) DataRange() (xmin, xmax, ymin, ymax float64) {
	pad := (d.maxDist - d.minDist) * 0.05
	if pad == 0 {
		pad = 0.05
	}
	return d.minDist, d.maxDist + pad, -0.5, float64(d.leaves) - 0.5
}

// leafTicks labels positions 0..n-1 with the leaf labels in drawing order.
func leafTicks(p *cluster.Partition, labels []string) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(p.Order))
	for i, leaf := range p.Order {
		ticks[i] = plot.Tick{Value: float64(i), Label: labels[leaf]}
	}
	return ticks
}
