package dataset

import (
	"cropyield-platform/internal/models"
)

// FilterSpec narrows a dataset to a subset of records. A nil field matches
// all records; the year range is inclusive on both ends.
type FilterSpec struct {
	State   *string
	Crop    *string
	Season  *string
	MinYear *int
	MaxYear *int
}

// IsEmpty reports whether the spec constrains nothing.
func (s FilterSpec) IsEmpty() bool {
	return s.State == nil && s.Crop == nil && s.Season == nil &&
		s.MinYear == nil && s.MaxYear == nil
}

// Matches reports whether a record passes every set constraint.
func (s FilterSpec) Matches(rec *models.CropRecord) bool {
	if s.State != nil && rec.State != *s.State {
		return false
	}
	if s.Crop != nil && rec.Crop != *s.Crop {
		return false
	}
	if s.Season != nil && rec.Season != *s.Season {
		return false
	}
	if s.MinYear != nil && rec.Year < *s.MinYear {
		return false
	}
	if s.MaxYear != nil && rec.Year > *s.MaxYear {
		return false
	}
	return true
}

// Filter returns a new dataset containing only the records matching spec.
// An empty result is a dataset, not an error; downstream views report it as
// a no-data condition.
func Filter(d *Dataset, spec FilterSpec) *Dataset {
	if spec.IsEmpty() {
		return &Dataset{Schema: d.Schema, Records: d.Records}
	}

	matched := make([]models.CropRecord, 0, len(d.Records))
	for i := range d.Records {
		if spec.Matches(&d.Records[i]) {
			matched = append(matched, d.Records[i])
		}
	}

	return &Dataset{Schema: d.Schema, Records: matched}
}
