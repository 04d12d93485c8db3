package dataset

import (
	"cropyield-platform/internal/models"
)

// requiredColumns are the measure and label columns every source must carry,
// in addition to a year column (Crop_Year or Year).
var requiredColumns = []string{
	models.ColumnState,
	models.ColumnCrop,
	models.ColumnSeason,
	models.ColumnArea,
	models.ColumnProduction,
	models.ColumnYield,
	models.ColumnAnnualRainfall,
}

// labelColumns are the categorical dimensions available for grouping and
// filtering.
var labelColumns = []string{
	models.ColumnState,
	models.ColumnCrop,
	models.ColumnSeason,
}

// Schema describes the shape of a loaded dataset. It is built once by the
// loader and consumed by all downstream stages instead of repeated
// column-presence checks.
type Schema struct {
	// SourceYearColumn is the header the year was read from, either
	// "Crop_Year" or "Year".
	SourceYearColumn string `json:"source_year_column"`

	// Columns is the full header in source order, with the year column
	// canonicalized to "Year".
	Columns []string `json:"columns"`

	// NumericColumns lists every numeric column in display order: the fixed
	// measures first, then extra numeric columns discovered in the source.
	// The correlation matrix spans exactly these columns.
	NumericColumns []string `json:"numeric_columns"`

	// ExtraNumeric lists numeric columns beyond the fixed schema.
	ExtraNumeric []string `json:"extra_numeric,omitempty"`

	// Labels maps each categorical column to its set of observed values,
	// in first-observed order. Populated by the cleaner.
	Labels map[string][]string `json:"labels,omitempty"`
}

// HasColumn reports whether a canonical column name is part of the schema.
func (s Schema) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnType returns the display type of a column: "label", "int" or "float".
func (s Schema) ColumnType(name string) string {
	switch name {
	case models.ColumnState, models.ColumnCrop, models.ColumnSeason:
		return "label"
	case models.ColumnYear:
		return "int"
	default:
		return "float"
	}
}
