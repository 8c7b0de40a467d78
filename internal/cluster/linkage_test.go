package cluster_test

import (
	"math"
	"testing"

	"github.com/gonum/matrix/mat64"
	"github.com/stretchr/testify/require"

	"github.com/KyungWonPark/corrdendro/internal/cluster"
)

// line returns the condensed distances between points on a line.
func line(t *testing.T, xs ...float64) cluster.Condensed {
	t.Helper()
	var data []float64
	for i := range xs {
		for j := i + 1; j < len(xs); j++ {
			data = append(data, math.Abs(xs[i]-xs[j]))
		}
	}
	c, err := cluster.NewCondensed(len(xs), data)
	require.NoError(t, err)
	return c
}

func TestLinkage_Methods(t *testing.T) {
	// Points 0, 1, 3 and 7: {0,1} merge first, then 3 joins, then 7.
	cases := []struct {
		method cluster.Method
		second float64
		third  float64
	}{
		{cluster.Single, 2, 4},
		{cluster.Complete, 3, 7},
		{cluster.Average, 2.5, 17.0 / 3},
		{cluster.Weighted, 2.5, 5.25},
		{cluster.Centroid, 2.5, 17.0 / 3},
		{cluster.Median, 2.5, 5.25},
		{cluster.Ward, math.Sqrt(25.0 / 3), math.Sqrt(48.5 - 1.0/3)},
	}

	for _, tc := range cases {
		t.Run(tc.method.String(), func(t *testing.T) {
			tree, err := cluster.Linkage(line(t, 0, 1, 3, 7), tc.method)
			require.NoError(t, err)
			require.Equal(t, 4, tree.Leaves())
			require.Equal(t, 6, tree.Root())

			merges := tree.Merges()
			require.Len(t, merges, 3)

			require.Equal(t, 0, merges[0].Left)
			require.Equal(t, 1, merges[0].Right)
			require.InDelta(t, 1, merges[0].Distance, 1e-12)
			require.Equal(t, 2, merges[0].Size)

			require.Equal(t, 2, merges[1].Left)
			require.Equal(t, 4, merges[1].Right)
			require.InDelta(t, tc.second, merges[1].Distance, 1e-12)
			require.Equal(t, 3, merges[1].Size)

			require.Equal(t, 3, merges[2].Left)
			require.Equal(t, 5, merges[2].Right)
			require.InDelta(t, tc.third, merges[2].Distance, 1e-12)
			require.Equal(t, 4, merges[2].Size)

			require.Empty(t, tree.Inversions())
			require.InDelta(t, tc.third, tree.MaxDistance(), 1e-12)
			require.InDelta(t, 1, tree.MinDistance(), 1e-12)
		})
	}
}

func TestLinkage_TiesTakeFirstPair(t *testing.T) {
	c, err := cluster.NewCondensed(3, []float64{1, 1, 1})
	require.NoError(t, err)

	tree, err := cluster.Linkage(c, cluster.Complete)
	require.NoError(t, err)

	merges := tree.Merges()
	require.Equal(t, cluster.Merge{Left: 0, Right: 1, Distance: 1, Size: 2}, merges[0])
	require.Equal(t, cluster.Merge{Left: 2, Right: 3, Distance: 1, Size: 3}, merges[1])
}

func TestLinkage_Deterministic(t *testing.T) {
	c := line(t, 0.3, 2, 2, 5, 1, 8, 8.5, 4)
	first, err := cluster.Linkage(c, cluster.Average)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := cluster.Linkage(c, cluster.Average)
		require.NoError(t, err)
		require.Equal(t, first.Merges(), again.Merges())
	}
}

func TestLinkage_CentroidInversion(t *testing.T) {
	// An equilateral triangle: the centroid of the first pair is closer to
	// the third point than the pair members are to each other.
	c, err := cluster.NewCondensed(3, []float64{1, 1, 1})
	require.NoError(t, err)

	tree, err := cluster.Linkage(c, cluster.Centroid)
	require.NoError(t, err)

	merges := tree.Merges()
	require.InDelta(t, math.Sqrt(0.75), merges[1].Distance, 1e-12)
	require.Equal(t, []int{4}, tree.Inversions())
	require.True(t, cluster.Centroid.Euclidean())
	require.False(t, cluster.Complete.Euclidean())
}

func TestLinkage_TooFew(t *testing.T) {
	_, err := cluster.NewCondensed(1, nil)
	require.ErrorIs(t, err, cluster.ErrTooFew)
	require.ErrorIs(t, err, cluster.ErrLinkage)
}

func TestLinkage_UnknownMethod(t *testing.T) {
	_, err := cluster.Linkage(line(t, 0, 1), cluster.Method(42))
	require.ErrorIs(t, err, cluster.ErrUnknownMethod)
}

func TestTree_Matrix(t *testing.T) {
	tree, err := cluster.Linkage(line(t, 0, 1, 3, 7), cluster.Single)
	require.NoError(t, err)

	want := mat64.NewDense(3, 4, []float64{
		0, 1, 1, 2,
		2, 4, 2, 3,
		3, 5, 4, 4,
	})
	require.True(t, mat64.Equal(want, tree.Matrix()))
}

func TestParseMethod(t *testing.T) {
	for _, name := range cluster.Methods() {
		m, err := cluster.ParseMethod(name)
		require.NoError(t, err)
		require.Equal(t, name, m.String())
	}

	_, err := cluster.ParseMethod("kmeans")
	require.ErrorIs(t, err, cluster.ErrUnknownMethod)
	require.ErrorIs(t, err, cluster.ErrLinkage)

	require.Equal(t, []string{"single", "complete", "average", "weighted", "centroid", "median", "ward"}, cluster.Methods())
}
