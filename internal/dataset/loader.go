package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"cropyield-platform/internal/models"
)

// Load reads a crop yield CSV from disk and produces a Dataset.
// Returns *models.LoadError when the source is unreadable and
// *models.SchemaError when a required column is absent.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.LoadError{Source: path, Err: err}
	}
	defer f.Close()

	return LoadReader(f, path)
}

// LoadReader reads a crop yield CSV from r. source is used for error
// reporting only.
func LoadReader(r io.Reader, source string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &models.LoadError{Source: source, Err: err}
	}

	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}

	// Capability check: performed once here, recorded in the schema, so
	// downstream stages never probe for columns again.
	yearColumn := ""
	if _, ok := index[models.ColumnCropYear]; ok {
		yearColumn = models.ColumnCropYear
	} else if _, ok := index[models.ColumnYear]; ok {
		yearColumn = models.ColumnYear
	} else {
		return nil, &models.SchemaError{
			Column:  models.ColumnYear,
			Message: "required year column missing: expected Crop_Year or Year",
		}
	}

	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &models.SchemaError{Column: col}
		}
	}

	fixed := make(map[string]bool, len(requiredColumns)+2)
	for _, col := range requiredColumns {
		fixed[col] = true
	}
	fixed[models.ColumnCropYear] = true
	fixed[models.ColumnYear] = true

	var extraCandidates []string
	for _, h := range header {
		if h != "" && !fixed[h] {
			extraCandidates = append(extraCandidates, h)
		}
	}

	var records []models.CropRecord
	extraSeen := make(map[string]bool)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed rows are skipped, not fatal. An underlying read
			// error is: csv.Reader returns it on every subsequent call, so
			// continuing would never reach EOF.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, &models.LoadError{Source: source, Err: err}
		}
		if len(row) != len(header) {
			continue
		}

		year, ok := parseYear(row[index[yearColumn]])
		if !ok {
			continue
		}

		rec := models.CropRecord{
			State:          strings.TrimSpace(row[index[models.ColumnState]]),
			Crop:           strings.TrimSpace(row[index[models.ColumnCrop]]),
			Season:         strings.TrimSpace(row[index[models.ColumnSeason]]),
			Year:           year,
			Area:           parseMeasure(row[index[models.ColumnArea]]),
			Production:     parseMeasure(row[index[models.ColumnProduction]]),
			Yield:          parseMeasure(row[index[models.ColumnYield]]),
			AnnualRainfall: parseMeasure(row[index[models.ColumnAnnualRainfall]]),
		}

		for _, col := range extraCandidates {
			if v := parseMeasure(row[index[col]]); v != nil {
				if rec.Extra == nil {
					rec.Extra = make(map[string]float64)
				}
				rec.Extra[col] = *v
				extraSeen[col] = true
			}
		}

		records = append(records, rec)
	}

	var extraNumeric []string
	for _, col := range extraCandidates {
		if extraSeen[col] {
			extraNumeric = append(extraNumeric, col)
		}
	}

	columns := make([]string, 0, len(header))
	for _, h := range header {
		switch {
		case h == yearColumn:
			columns = append(columns, models.ColumnYear)
		case h == "":
			// unnamed columns are dropped
		case !fixed[h] && !extraSeen[h]:
			// non-numeric extra columns are dropped
		default:
			columns = append(columns, h)
		}
	}

	numeric := []string{
		models.ColumnYear,
		models.ColumnArea,
		models.ColumnProduction,
		models.ColumnYield,
		models.ColumnAnnualRainfall,
	}
	numeric = append(numeric, extraNumeric...)

	return &Dataset{
		Schema: Schema{
			SourceYearColumn: yearColumn,
			Columns:          columns,
			NumericColumns:   numeric,
			ExtraNumeric:     extraNumeric,
		},
		Records: records,
	}, nil
}

// parseYear coerces a year cell to an integer, tolerating float forms like
// "1997.0" that some exports carry.
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// parseMeasure parses a numeric cell. Empty or unparseable cells become nil
// and pass through to aggregation, which excludes them.
func parseMeasure(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
