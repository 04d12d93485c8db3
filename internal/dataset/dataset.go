package dataset

import (
	"sort"

	"cropyield-platform/internal/models"
)

// Dataset is an ordered collection of crop records sharing one schema.
// A Dataset is never mutated after construction; the cleaner and filterer
// return new values.
type Dataset struct {
	Schema  Schema
	Records []models.CropRecord
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// DistinctLabels returns the distinct values of a categorical column in
// ascending order. Sorting is a presentation concern for filter widgets;
// aggregation uses first-observed order.
func (d *Dataset) DistinctLabels(column string) []string {
	seen := make(map[string]bool)
	var values []string
	for i := range d.Records {
		v, ok := d.Records[i].Label(column)
		if !ok || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// YearRange returns the minimum and maximum year present. ok is false for an
// empty dataset.
func (d *Dataset) YearRange() (min, max int, ok bool) {
	for i := range d.Records {
		y := d.Records[i].Year
		if !ok {
			min, max, ok = y, y, true
			continue
		}
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	return min, max, ok
}

// NumericColumn extracts all present values of a numeric column in record
// order.
func (d *Dataset) NumericColumn(column string) []float64 {
	values := make([]float64, 0, len(d.Records))
	for i := range d.Records {
		if v, ok := d.Records[i].NumericValue(column); ok {
			values = append(values, v)
		}
	}
	return values
}
