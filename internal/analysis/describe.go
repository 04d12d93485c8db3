package analysis

import (
	"math"
	"sort"

	"cropyield-platform/internal/dataset"
)

// ColumnStats holds describe-style statistics for one numeric column,
// computed over its present values only.
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Describe computes summary statistics for every numeric column. Columns
// with no present values are omitted rather than reported as zeros.
func Describe(d *dataset.Dataset) []ColumnStats {
	var stats []ColumnStats
	for _, col := range d.Schema.NumericColumns {
		values := d.NumericColumn(col)
		if len(values) == 0 {
			continue
		}
		stats = append(stats, describeColumn(col, values))
	}
	return stats
}

func describeColumn(col string, values []float64) ColumnStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := len(sorted)
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	std := 0.0
	if n > 1 {
		var sq float64
		for _, v := range sorted {
			dv := v - mean
			sq += dv * dv
		}
		// Sample standard deviation.
		std = math.Sqrt(sq / float64(n-1))
	}

	return ColumnStats{
		Column: col,
		Count:  n,
		Mean:   mean,
		Std:    std,
		Min:    sorted[0],
		Q25:    quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q75:    quantile(sorted, 0.75),
		Max:    sorted[n-1],
	}
}

// quantile computes a linearly interpolated quantile over a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ColumnNulls counts missing values for one column.
type ColumnNulls struct {
	Column string `json:"column"`
	Nulls  int    `json:"nulls"`
}

// NullCounts tallies missing values per column in schema order. Label
// columns count empty strings as missing; the year column is always present
// after load.
func NullCounts(d *dataset.Dataset) []ColumnNulls {
	counts := make([]ColumnNulls, 0, len(d.Schema.Columns))
	for _, col := range d.Schema.Columns {
		nulls := 0
		switch d.Schema.ColumnType(col) {
		case "label":
			for i := range d.Records {
				if v, _ := d.Records[i].Label(col); v == "" {
					nulls++
				}
			}
		case "int":
			// coerced at load
		default:
			for i := range d.Records {
				if _, ok := d.Records[i].NumericValue(col); !ok {
					nulls++
				}
			}
		}
		counts = append(counts, ColumnNulls{Column: col, Nulls: nulls})
	}
	return counts
}
