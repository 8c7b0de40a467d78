package calc

import (
	"fmt"
	"math"

	"github.com/gonum/matrix/mat64"
)

// Transform derives a dissimilarity matrix from a correlation matrix.
type Transform int

// Transforms.
const (
	// Absolute maps v to 1-|v|: strong correlation of either sign is close.
	Absolute Transform = iota
	// Signed maps v to 1-v: anticorrelation is far.
	Signed
	// Identity keeps v.
	Identity
)

var transformNames = [...]string{
	Absolute: "absolute",
	Signed:   "signed",
	Identity: "identity",
}

// ParseTransform maps a transform name to its Transform.
func ParseTransform(name string) (Transform, error) {
	for t, n := range transformNames {
		if n == name {
			return Transform(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
}

func (t Transform) String() string {
	if t < 0 || int(t) >= len(transformNames) {
		return fmt.Sprintf("Transform(%d)", int(t))
	}
	return transformNames[t]
}

// Dissimilarity reports whether the output is a true dissimilarity, with a
// zero diagonal for a correlation matrix input.
func (t Transform) Dissimilarity() bool {
	return t != Identity
}

func (t Transform) apply(v float64) float64 {
	switch t {
	case Absolute:
		return 1 - math.Abs(v)
	case Signed:
		return 1 - v
	default:
		return v
	}
}

// Dissimilarity writes the transform of inputMat into outputMat.
func (p *PipeLine) Dissimilarity(inputMat *mat64.Dense, outputMat *mat64.Dense, t Transform) error {
	inputRows, inputCols := inputMat.Dims()
	outputRows, outputCols := outputMat.Dims()

	if inputRows != outputRows || inputCols != outputCols {
		return fmt.Errorf("%w: %v input dims: %d by %d when output dims: %d by %d", ErrDimensionMismatch, t, inputRows, inputCols, outputRows, outputCols)
	}
	if t < 0 || int(t) >= len(transformNames) {
		return fmt.Errorf("%w: %v", ErrUnknownTransform, t)
	}

	p.rows(inputRows, func(index int) {
		for c := 0; c < inputCols; c++ {
			outputMat.Set(index, c, t.apply(inputMat.At(index, c)))
		}
	})

	return nil
}

// Apply returns the transform of m as a new matrix.
func (p *PipeLine) Apply(m *mat64.Dense, t Transform) (*mat64.Dense, error) {
	rows, cols := m.Dims()
	out := mat64.NewDense(rows, cols, nil)
	if err := p.Dissimilarity(m, out, t); err != nil {
		return nil, err
	}
	return out, nil
}
