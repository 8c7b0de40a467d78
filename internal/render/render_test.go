package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gonum/matrix/mat64"
	"github.com/stretchr/testify/require"

	"github.com/KyungWonPark/corrdendro/internal/cluster"
	cio "github.com/KyungWonPark/corrdendro/internal/io"
)

func figure(t *testing.T, threshold float64) (Figure, *mat64.Dense) {
	t.Helper()
	m := mat64.NewDense(4, 4, []float64{
		0, 1, 3, 7,
		1, 0, 2, 6,
		3, 2, 0, 4,
		7, 6, 4, 0,
	})
	c, err := cluster.Condense(m, true)
	require.NoError(t, err)
	tree, err := cluster.Linkage(c, cluster.Average)
	require.NoError(t, err)

	labels := []string{"a", "b", "c", "d"}
	cut, err := cluster.Cut(tree, labels, cluster.CutOptions{Threshold: threshold})
	require.NoError(t, err)

	palette, err := NewPalette(nil)
	require.NoError(t, err)

	return Figure{
		Title:   "test",
		Labels:  labels,
		Tree:    tree,
		Cut:     cut,
		Palette: palette,
		Width:   5,
		Height:  12,
		Scaling: 0.5,
	}, m
}

func requirePDF(t *testing.T, path string) {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(raw), 4)
	require.Equal(t, "%PDF", string(raw[:4]))
}

func TestSaveDendrogram(t *testing.T) {
	f, _ := figure(t, 2.6)
	path := filepath.Join(t.TempDir(), "x_dendro.pdf")
	require.NoError(t, SaveDendrogram(path, f))
	requirePDF(t, path)
}

func TestSaveAll(t *testing.T) {
	f, m := figure(t, 2.6)
	path := filepath.Join(t.TempDir(), "x_all.pdf")
	require.NoError(t, SaveAll(path, f, m))
	requirePDF(t, path)

	// A constant matrix still gets a usable color range.
	require.NoError(t, SaveAll(path, f, mat64.NewDense(4, 4, nil)))
	requirePDF(t, path)
}

func TestSave_Unwritable(t *testing.T) {
	f, m := figure(t, 1)
	missing := filepath.Join(t.TempDir(), "missing", "x.pdf")
	require.ErrorIs(t, SaveAll(missing, f, m), cio.ErrWrite)
	require.ErrorIs(t, SaveDendrogram(missing, f), cio.ErrWrite)
}

func TestDendrogramLayout(t *testing.T) {
	f, _ := figure(t, 2.6)
	d := newDendrogram(f.Tree, f.Cut, f.Palette)

	// Leaf order is d, c, a, b: {a,b} sits at 2.5, {c,a,b} at 1.75.
	require.Len(t, d.links, 3)
	require.Equal(t, [4][2]float64{{0, 2}, {1, 2}, {1, 3}, {0, 3}}, d.links[0].points)
	require.Equal(t, [4][2]float64{{0, 1}, {2.5, 1}, {2.5, 2.5}, {1, 2.5}}, d.links[1].points)
	require.Equal(t, "C1", d.links[0].token)
	require.Equal(t, "C1", d.links[1].token)
	require.Equal(t, "black", d.links[2].token)

	xmin, xmax, ymin, ymax := d.DataRange()
	require.Equal(t, 0.0, xmin)
	require.Greater(t, xmax, f.Tree.MaxDistance())
	require.Equal(t, -0.5, ymin)
	require.Equal(t, 3.5, ymax)
}

func TestPalette(t *testing.T) {
	p, err := NewPalette(map[string]string{"C1": "#010203", "mine": "#ffffff"})
	require.NoError(t, err)
	require.Equal(t, "#010203", p.Hex("C1"))
	require.Equal(t, "#ffffff", p.Hex("mine"))
	require.Equal(t, "#000000", p.Hex("black"))
	require.Equal(t, "#808080", p.Hex("unknown"))

	_, err = NewPalette(map[string]string{"C1": "orange"})
	require.Error(t, err)

	require.Len(t, newDiverging(11).Colors(), 11)
}
