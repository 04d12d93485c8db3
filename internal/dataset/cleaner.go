package dataset

import (
	"cropyield-platform/internal/models"
)

// CleanResult holds the cleaned dataset and what was removed from it.
type CleanResult struct {
	Dataset *Dataset
	// RemovedOutliers counts rows dropped for having positive area but zero
	// production. Reported, never an error.
	RemovedOutliers int
}

// Clean produces a cleaned copy of d:
//   - rows with Area > 0 and Production == 0 are removed;
//   - categorical columns are constrained to their observed label sets,
//     recorded on the schema.
//
// Year coercion already happened at load time; Clean re-asserts that the
// schema carries a year column so a hand-built dataset cannot slip through.
func Clean(d *Dataset) (CleanResult, error) {
	if d.Schema.SourceYearColumn == "" {
		return CleanResult{}, &models.SchemaError{
			Column:  models.ColumnYear,
			Message: "dataset has no year column; expected Crop_Year or Year",
		}
	}

	kept := make([]models.CropRecord, 0, len(d.Records))
	removed := 0

	for i := range d.Records {
		rec := d.Records[i]
		if isZeroProductionOutlier(&rec) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}

	schema := d.Schema
	schema.Labels = observedLabels(kept)

	return CleanResult{
		Dataset: &Dataset{
			Schema:  schema,
			Records: kept,
		},
		RemovedOutliers: removed,
	}, nil
}

// isZeroProductionOutlier reports whether a record claims planted area but
// zero production. Rows with a missing area or production pass through.
func isZeroProductionOutlier(rec *models.CropRecord) bool {
	if rec.Area == nil || rec.Production == nil {
		return false
	}
	return *rec.Area > 0 && *rec.Production == 0
}

// observedLabels collects the label set of each categorical column in
// first-observed order.
func observedLabels(records []models.CropRecord) map[string][]string {
	labels := make(map[string][]string, len(labelColumns))
	for _, col := range labelColumns {
		seen := make(map[string]bool)
		var values []string
		for i := range records {
			v, _ := records[i].Label(col)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			values = append(values, v)
		}
		labels[col] = values
	}
	return labels
}
