package cluster

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// Merge records one agglomeration step. Clusters 0..n-1 are the leaves and
// the cluster created by step k is n+k. Left is always the smaller id.
type Merge struct {
	Left     int
	Right    int
	Distance float64
	Size     int
}

// Tree is the result of a linkage run: n-1 merges over n leaves.
type Tree struct {
	Method Method
	leaves int
	merges []Merge
}

// Linkage clusters the observations of c bottom-up. At every step the two
// active clusters with the smallest distance are merged; among equal
// distances the first pair met scanning the working matrix row by row wins.
// A merged cluster takes the slot of its second member.
func Linkage(c Condensed, method Method) (*Tree, error) {
	upd, ok := updates[method]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
	}

	n := c.N()
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFew, n)
	}

	dist := c.Square()
	size := make([]int, n)
	id := make([]int, n)
	active := make([]int, n)
	for i := 0; i < n; i++ {
		size[i] = 1
		id[i] = i
		active[i] = i
	}

	merges := make([]Merge, 0, n-1)
	for step := 0; step < n-1; step++ {
		x, y, dxy := nearestPair(dist, active)

		left, right := id[x], id[y]
		if left > right {
			left, right = right, left
		}
		merges = append(merges, Merge{
			Left:     left,
			Right:    right,
			Distance: dxy,
			Size:     size[x] + size[y],
		})

		for _, i := range active {
			if i == x || i == y {
				continue
			}
			d := upd(dist.At(x, i), dist.At(y, i), dxy, size[x], size[y], size[i])
			dist.Set(y, i, d)
			dist.Set(i, y, d)
		}

		size[y] += size[x]
		id[y] = n + step
		active = removeSlot(active, x)
	}

	return &Tree{Method: method, leaves: n, merges: merges}, nil
}

func nearestPair(dist *mat64.Dense, active []int) (int, int, float64) {
	x, y := -1, -1
	best := math.Inf(1)
	for a := 0; a < len(active); a++ {
		row := dist.RawRowView(active[a])
		for b := a + 1; b < len(active); b++ {
			if d := row[active[b]]; x == -1 || d < best {
				x, y, best = active[a], active[b], d
			}
		}
	}
	return x, y, best
}

func removeSlot(active []int, slot int) []int {
	for i, s := range active {
		if s == slot {
			return append(active[:i], active[i+1:]...)
		}
	}
	return active
}

// Leaves returns the number of leaves.
func (t *Tree) Leaves() int { return t.leaves }

// Merges returns the merge records in construction order.
func (t *Tree) Merges() []Merge {
	out := make([]Merge, len(t.merges))
	copy(out, t.merges)
	return out
}

// Root returns the id of the final cluster.
func (t *Tree) Root() int { return t.leaves + len(t.merges) - 1 }

// Merge returns the record that created cluster id, which must not be a leaf.
func (t *Tree) Merge(id int) Merge { return t.merges[id-t.leaves] }

// Distances returns the merge distances in construction order.
func (t *Tree) Distances() []float64 {
	out := make([]float64, len(t.merges))
	for i, m := range t.merges {
		out[i] = m.Distance
	}
	return out
}

// MaxDistance returns the largest merge distance.
func (t *Tree) MaxDistance() float64 { return floats.Max(t.Distances()) }

// MinDistance returns the smallest merge distance.
func (t *Tree) MinDistance() float64 { return floats.Min(t.Distances()) }

// Inversions returns the ids of clusters merged at a smaller distance than
// one of their children.
func (t *Tree) Inversions() []int {
	var out []int
	for k, m := range t.merges {
		for _, child := range []int{m.Left, m.Right} {
			if child >= t.leaves && t.Merge(child).Distance > m.Distance {
				out = append(out, t.leaves+k)
				break
			}
		}
	}
	return out
}

// Matrix returns the tree as an (n-1) by 4 matrix with rows
// (left, right, distance, size), the layout scipy uses.
func (t *Tree) Matrix() *mat64.Dense {
	m := mat64.NewDense(len(t.merges), 4, nil)
	for k, merge := range t.merges {
		m.SetRow(k, []float64{float64(merge.Left), float64(merge.Right), merge.Distance, float64(merge.Size)})
	}
	return m
}
