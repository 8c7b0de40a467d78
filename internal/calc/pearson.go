package calc

import (
	"fmt"
	"math"

	"github.com/gonum/matrix/mat64"
)

func getStat(series []float64) statistic {
	var accVal float64
	var accSqrVal float64

	for _, value := range series {
		accVal += value
		accSqrVal += value * value
	}

	avgVal := accVal / float64(len(series))
	avgSqrVal := accSqrVal / float64(len(series))

	return statistic{
		avg: avgVal,
		std: math.Sqrt(math.Max(0, avgSqrVal-(avgVal*avgVal))),
	}
}

// Pearson does Pearson's correlation calculation between the rows of
// timeSeriesMat. A row with zero variance correlates as NaN.
func (p *PipeLine) Pearson(timeSeriesMat *mat64.Dense, outputMat *mat64.Dense) error {
	inputRows, inputCols := timeSeriesMat.Dims()
	outputRows, outputCols := outputMat.Dims()

	if outputRows != inputRows || outputCols != inputRows {
		return fmt.Errorf("%w: Pearson input is %d by %d but output is %d by %d", ErrDimensionMismatch, inputRows, inputCols, outputRows, outputCols)
	}

	stats := make([]statistic, inputRows)

	// Get statistics for each series
	p.rows(inputRows, func(index int) {
		stats[index] = getStat(timeSeriesMat.RawRowView(index))
	})

	// Row "from" owns the upper triangle cells of its row and their mirrors.
	p.rows(inputRows, func(from int) {
		a := timeSeriesMat.RawRowView(from)
		for to := from; to < inputRows; to++ {
			b := timeSeriesMat.RawRowView(to)

			var accProd float64
			for t := 0; t < inputCols; t++ {
				accProd += a[t] * b[t]
			}

			cov := (accProd / float64(inputCols)) - (stats[from].avg * stats[to].avg)
			pearson := cov / (stats[from].std * stats[to].std)

			outputMat.Set(from, to, pearson)
			outputMat.Set(to, from, pearson)
		}
	})

	return nil
}

// Correlate returns the correlation matrix of the rows of series. Every
// series correlates with itself as 1, constant ones included; their other
// entries stay NaN.
func (p *PipeLine) Correlate(series *mat64.Dense) (*mat64.Dense, error) {
	rows, _ := series.Dims()
	out := mat64.NewDense(rows, rows, nil)
	if err := p.Pearson(series, out); err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		out.Set(i, i, 1)
	}
	return out, nil
}
