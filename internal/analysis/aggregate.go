package analysis

import (
	"sort"

	"cropyield-platform/internal/dataset"
	"cropyield-platform/internal/models"
)

// GroupAggregate maps group labels to an aggregated scalar. Keys are unique
// and kept in first-observed order from the source traversal; ranking is a
// separate step.
type GroupAggregate struct {
	keys   []string
	values map[string]float64
}

// Keys returns the group labels in first-observed order.
func (g GroupAggregate) Keys() []string {
	return g.keys
}

// Value returns the aggregate for a label.
func (g GroupAggregate) Value(label string) (float64, bool) {
	v, ok := g.values[label]
	return v, ok
}

// Len returns the number of groups.
func (g GroupAggregate) Len() int {
	return len(g.keys)
}

// Entry is one ranked group.
type Entry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// YearPoint is one point of a per-year series.
type YearPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// groupDimensions are the categorical columns valid for grouping.
var groupDimensions = map[string]bool{
	models.ColumnState:  true,
	models.ColumnCrop:   true,
	models.ColumnSeason: true,
}

// GroupMean computes the mean of a measure per group label. Records with a
// missing measure are excluded; a group with no present values is omitted
// entirely, never reported as zero.
func GroupMean(d *dataset.Dataset, dimension, measure string) (GroupAggregate, error) {
	return groupAggregate(d, dimension, measure, true)
}

// GroupSum computes the sum of a measure per group label, with the same
// missing-value treatment as GroupMean.
func GroupSum(d *dataset.Dataset, dimension, measure string) (GroupAggregate, error) {
	return groupAggregate(d, dimension, measure, false)
}

func groupAggregate(d *dataset.Dataset, dimension, measure string, mean bool) (GroupAggregate, error) {
	if !groupDimensions[dimension] {
		return GroupAggregate{}, &models.SchemaError{
			Column:  dimension,
			Message: "invalid group dimension: " + dimension,
		}
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string

	for i := range d.Records {
		label, _ := d.Records[i].Label(dimension)
		v, ok := d.Records[i].NumericValue(measure)
		if !ok {
			continue
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		sums[label] += v
		counts[label]++
	}

	values := make(map[string]float64, len(order))
	for _, label := range order {
		if mean {
			values[label] = sums[label] / float64(counts[label])
		} else {
			values[label] = sums[label]
		}
	}

	return GroupAggregate{keys: order, values: values}, nil
}

// YearlyMean computes the mean of a measure per year, sorted by year
// ascending. Used for trend series.
func YearlyMean(d *dataset.Dataset, measure string) []YearPoint {
	sums := make(map[int]float64)
	counts := make(map[int]int)

	for i := range d.Records {
		v, ok := d.Records[i].NumericValue(measure)
		if !ok {
			continue
		}
		y := d.Records[i].Year
		sums[y] += v
		counts[y]++
	}

	points := make([]YearPoint, 0, len(sums))
	for y, sum := range sums {
		points = append(points, YearPoint{Year: y, Value: sum / float64(counts[y])})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return points
}

// Ranked returns the groups ordered by value descending. Ties resolve by
// ascending label so repeated runs produce identical output.
func (g GroupAggregate) Ranked() []Entry {
	entries := make([]Entry, 0, len(g.keys))
	for _, label := range g.keys {
		entries = append(entries, Entry{Label: label, Value: g.values[label]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

// TopN returns the first n ranked groups.
func TopN(g GroupAggregate, n int) []Entry {
	ranked := g.Ranked()
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Best returns the group with the maximum aggregate value. operation names
// the query for error reporting. Returns *models.NoDataError when the
// aggregate is empty.
func Best(g GroupAggregate, operation string) (Entry, error) {
	ranked := g.Ranked()
	if len(ranked) == 0 {
		return Entry{}, &models.NoDataError{Operation: operation}
	}
	return ranked[0], nil
}
