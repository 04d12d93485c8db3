package analysis

import (
	"math"

	"cropyield-platform/internal/dataset"
)

// Pearson computes the Pearson correlation coefficient between two series of
// equal length. ok is false when the coefficient is undefined: fewer than
// two paired values, or zero variance in either series.
func Pearson(xs, ys []float64) (r float64, ok bool) {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0, false
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, false
	}

	r = cov / math.Sqrt(varX*varY)
	// Guard against floating drift pushing r past the bounds.
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}

// PairedValues extracts the rows where both numeric columns are present.
func PairedValues(d *dataset.Dataset, colX, colY string) (xs, ys []float64) {
	for i := range d.Records {
		x, okX := d.Records[i].NumericValue(colX)
		y, okY := d.Records[i].NumericValue(colY)
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys
}

// CorrelationBetween computes the Pearson correlation between two named
// numeric columns over the rows where both are present.
func CorrelationBetween(d *dataset.Dataset, colX, colY string) (float64, bool) {
	xs, ys := PairedValues(d, colX, colY)
	return Pearson(xs, ys)
}

// CorrelationMatrix is a symmetric Pearson matrix across numeric columns.
// Undefined coefficients are nil, never zero.
type CorrelationMatrix struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}

// Correlations computes the pairwise correlation matrix over every numeric
// column in the schema, including extra numeric columns.
func Correlations(d *dataset.Dataset) CorrelationMatrix {
	cols := d.Schema.NumericColumns
	values := make([][]*float64, len(cols))
	for i := range cols {
		values[i] = make([]*float64, len(cols))
		for j := range cols {
			if j < i {
				values[i][j] = values[j][i]
				continue
			}
			if r, ok := CorrelationBetween(d, cols[i], cols[j]); ok {
				v := r
				values[i][j] = &v
			}
		}
	}
	return CorrelationMatrix{Columns: cols, Values: values}
}
