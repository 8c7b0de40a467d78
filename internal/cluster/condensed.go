package cluster

import (
	"fmt"
	"math"

	"github.com/gonum/matrix/mat64"
)

// Tolerance bounds the symmetry and zero-diagonal checks of Condense,
// relative to the magnitude of the entries compared.
const Tolerance = 1e-10

// Condensed is the upper triangle of a symmetric distance matrix without
// its diagonal, stored row by row.
type Condensed struct {
	n    int
	data []float64
}

// NewCondensed wraps an already condensed distance vector for n observations.
func NewCondensed(n int, data []float64) (Condensed, error) {
	if n < 2 {
		return Condensed{}, fmt.Errorf("%w: got %d", ErrTooFew, n)
	}
	if len(data) != n*(n-1)/2 {
		return Condensed{}, fmt.Errorf("%w: %d distances for %d observations", ErrLinkage, len(data), n)
	}
	for k, d := range data {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return Condensed{}, fmt.Errorf("%w: entry %d", ErrNonFinite, k)
		}
	}
	return Condensed{n: n, data: data}, nil
}

// Condense flattens a square dissimilarity matrix. The matrix must be
// symmetric; the diagonal is required to be zero only if checkDiagonal is
// set, otherwise it is ignored.
func Condense(matrix *mat64.Dense, checkDiagonal bool) (Condensed, error) {
	rows, cols := matrix.Dims()
	if rows != cols {
		return Condensed{}, fmt.Errorf("%w: %d by %d", ErrAsymmetric, rows, cols)
	}
	if rows < 2 {
		return Condensed{}, fmt.Errorf("%w: got %d", ErrTooFew, rows)
	}

	data := make([]float64, 0, rows*(rows-1)/2)
	for i := 0; i < rows; i++ {
		if checkDiagonal && !near(matrix.At(i, i), 0) {
			return Condensed{}, fmt.Errorf("%w: [%d][%d] = %g", ErrNonZeroDiagonal, i, i, matrix.At(i, i))
		}

		for j := i + 1; j < rows; j++ {
			upper, lower := matrix.At(i, j), matrix.At(j, i)
			if math.IsNaN(upper) || math.IsInf(upper, 0) {
				return Condensed{}, fmt.Errorf("%w: [%d][%d]", ErrNonFinite, i, j)
			}
			if !near(upper, lower) {
				return Condensed{}, fmt.Errorf("%w: [%d][%d] = %g, [%d][%d] = %g", ErrAsymmetric, i, j, upper, j, i, lower)
			}
			data = append(data, upper)
		}
	}

	return Condensed{n: rows, data: data}, nil
}

func near(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= Tolerance*scale
}

// N returns the number of observations.
func (c Condensed) N() int { return c.n }

// At returns the distance between observations i and j.
func (c Condensed) At(i, j int) float64 {
	if i == j {
		return 0
	}
	if i > j {
		i, j = j, i
	}
	return c.data[c.n*i-i*(i+1)/2+j-i-1]
}

// Square expands the condensed vector back to a full symmetric matrix with
// a zero diagonal.
func (c Condensed) Square() *mat64.Dense {
	m := mat64.NewDense(c.n, c.n, nil)
	for i := 0; i < c.n; i++ {
		for j := i + 1; j < c.n; j++ {
			d := c.At(i, j)
			m.Set(i, j, d)
			m.Set(j, i, d)
		}
	}
	return m
}
