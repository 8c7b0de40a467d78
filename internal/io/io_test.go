package io_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gonum/matrix/mat64"
	"github.com/kshedden/gonpy"
	"github.com/stretchr/testify/require"

	"github.com/KyungWonPark/corrdendro/internal/cluster"
	cio "github.com/KyungWonPark/corrdendro/internal/io"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	matrix := writeFile(t, dir, "corr.txt", "# correlations\n1 0.9 nan\n0.9\t1  0.5\n\nNaN 0.5 inf\n")
	labels := writeFile(t, dir, "labels.txt", "A@B@ C D \n")

	m, l, err := cio.Load(matrix, labels)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C D"}, l)

	want := mat64.NewDense(3, 3, []float64{
		1, 0.9, 0,
		0.9, 1, 0.5,
		0, 0.5, 0,
	})
	require.True(t, mat64.Equal(want, m))
}

func TestLoadLabels_Lines(t *testing.T) {
	path := writeFile(t, t.TempDir(), "labels.txt", "alpha\nbeta@gamma\r\n\ndelta@")

	labels, err := cio.LoadLabels(path)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta", "gamma", "delta"}, labels)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	square := writeFile(t, dir, "square.txt", "1 0.5\n0.5 1\n")
	twoLabels := writeFile(t, dir, "two.txt", "A@B")

	cases := []struct {
		name   string
		matrix string
		labels string
		err    error
	}{
		{"missing matrix", filepath.Join(dir, "nope.txt"), twoLabels, cio.ErrInput},
		{"missing labels", square, filepath.Join(dir, "nope.txt"), cio.ErrInput},
		{"empty matrix", writeFile(t, dir, "empty.txt", "\n# only a comment\n"), twoLabels, cio.ErrEmpty},
		{"empty labels", square, writeFile(t, dir, "nolabels.txt", " @ \n"), cio.ErrEmpty},
		{"ragged", writeFile(t, dir, "ragged.txt", "1 0.5\n0.5\n"), twoLabels, cio.ErrShape},
		{"rectangular", writeFile(t, dir, "rect.txt", "1 0.5 0\n0.5 1 0\n"), twoLabels, cio.ErrShape},
		{"garbage", writeFile(t, dir, "garbage.txt", "1 x\n0.5 1\n"), twoLabels, cio.ErrParse},
		{"label count", square, writeFile(t, dir, "three.txt", "A@B@C"), cio.ErrLabelCount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := cio.Load(tc.matrix, tc.labels)
			require.ErrorIs(t, err, tc.err)
			require.ErrorIs(t, err, cio.ErrInput)
		})
	}
}

func TestLoadSeries(t *testing.T) {
	dir := t.TempDir()
	series := writeFile(t, dir, "series.txt", "1 2 3\n4 5 6\n")
	labels := writeFile(t, dir, "labels.txt", "x@y")

	m, l, err := cio.LoadSeries(series, labels)
	require.NoError(t, err)
	rows, cols := m.Dims()
	require.Equal(t, 2, rows)
	require.Equal(t, 3, cols)
	require.Equal(t, []string{"x", "y"}, l)
}

func TestCSV(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", "1, 0.25, NaN\n0.25, 1, -0.5\nnan, -0.5, 1\n")

	m, err := cio.LoadMatrix(in)
	require.NoError(t, err)
	require.Equal(t, 0.0, m.At(0, 2))
	require.Equal(t, -0.5, m.At(1, 2))

	out := filepath.Join(dir, "out.csv")
	require.NoError(t, cio.Mat64toCSV(out, m))
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "1, 0.25, 0\n0.25, 1, -0.5\n0, -0.5, 1\n", string(raw))

	_, err = cio.LoadMatrix(writeFile(t, dir, "bad.csv", "1, a\n2, 3\n"))
	require.ErrorIs(t, err, cio.ErrParse)
}

func TestNpy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.npy")
	m := mat64.NewDense(2, 2, []float64{1, 0.3, 0.3, 1})

	require.NoError(t, cio.Mat64toNpy(path, m))

	back, err := cio.LoadMatrix(path)
	require.NoError(t, err)
	require.True(t, mat64.Equal(m, back))
}

func TestNpy_ColumnMajor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.npy")
	w, err := gonpy.NewFileWriter(path)
	require.NoError(t, err)
	w.Shape = []int{2, 3}
	w.ColumnMajor = true
	require.NoError(t, w.WriteFloat64([]float64{1, 2, 3, 4, 5, 6}))

	_, err = cio.NpytoMat64(path)
	require.ErrorIs(t, err, cio.ErrShape)

	_, err = cio.LoadTable(path)
	require.ErrorIs(t, err, cio.ErrShape)
}

func partition(t *testing.T, threshold float64) *cluster.Partition {
	t.Helper()
	// Distances for points 0, 1, 3, 7 under single linkage.
	c, err := cluster.NewCondensed(4, []float64{1, 3, 7, 2, 6, 4})
	require.NoError(t, err)
	tree, err := cluster.Linkage(c, cluster.Single)
	require.NoError(t, err)
	p, err := cluster.Cut(tree, []string{"a", "b", "c", "d"}, cluster.CutOptions{Threshold: threshold})
	require.NoError(t, err)
	return p
}

func TestFormatGroups(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cio.FormatGroups(&buf, partition(t, 1.5)))
	require.Equal(t, "#C1\na\nb\n#black\nd\n#Counter 0\nc\n#Counter 1\n", buf.String())

	buf.Reset()
	require.NoError(t, cio.FormatGroups(&buf, partition(t, 6)))
	require.Equal(t, "#C1\nd\nc\na\nb\n", buf.String())
}

func TestWriteGroups(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "out_dendro.dat", "stale content that is longer than the new one\n")

	require.NoError(t, cio.WriteGroups(path, partition(t, 0)))
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "#black\nd\n#Counter 0\nc\n#Counter 1\na\n#Counter 2\nb\n#Counter 3\n", string(first))

	require.NoError(t, cio.WriteGroups(path, partition(t, 0)))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, first, second)

	err = cio.WriteGroups(filepath.Join(dir, "missing", "x.dat"), partition(t, 0))
	require.ErrorIs(t, err, cio.ErrWrite)
}
