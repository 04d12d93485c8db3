package models

import (
	"errors"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

// TestCropRecord_NumericValue tests numeric column access including missing
// values and extra columns
func TestCropRecord_NumericValue(t *testing.T) {
	rec := CropRecord{
		State:          "Assam",
		Crop:           "Rice",
		Season:         "Kharif",
		Year:           1997,
		Area:           floatPtr(1000),
		Production:     floatPtr(2500),
		Yield:          nil,
		AnnualRainfall: floatPtr(2051.4),
		Extra:          map[string]float64{"Fertilizer": 70.5},
	}

	tests := []struct {
		name      string
		column    string
		wantValue float64
		wantOK    bool
	}{
		{
			name:      "year is always present",
			column:    ColumnYear,
			wantValue: 1997,
			wantOK:    true,
		},
		{
			name:      "present area",
			column:    ColumnArea,
			wantValue: 1000,
			wantOK:    true,
		},
		{
			name:      "present production",
			column:    ColumnProduction,
			wantValue: 2500,
			wantOK:    true,
		},
		{
			name:   "missing yield",
			column: ColumnYield,
			wantOK: false,
		},
		{
			name:      "present rainfall",
			column:    ColumnAnnualRainfall,
			wantValue: 2051.4,
			wantOK:    true,
		},
		{
			name:      "extra numeric column",
			column:    "Fertilizer",
			wantValue: 70.5,
			wantOK:    true,
		},
		{
			name:   "unknown column",
			column: "Pesticide",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := rec.NumericValue(tt.column)
			if ok != tt.wantOK {
				t.Errorf("NumericValue(%q) ok = %v, want %v", tt.column, ok, tt.wantOK)
				return
			}
			if ok && v != tt.wantValue {
				t.Errorf("NumericValue(%q) = %v, want %v", tt.column, v, tt.wantValue)
			}
		})
	}
}

func TestCropRecord_Label(t *testing.T) {
	rec := CropRecord{State: "Punjab", Crop: "Wheat", Season: "Rabi", Year: 2005}

	tests := []struct {
		column string
		want   string
		wantOK bool
	}{
		{ColumnState, "Punjab", true},
		{ColumnCrop, "Wheat", true},
		{ColumnSeason, "Rabi", true},
		{ColumnYear, "", false},
		{ColumnArea, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			v, ok := rec.Label(tt.column)
			if ok != tt.wantOK {
				t.Errorf("Label(%q) ok = %v, want %v", tt.column, ok, tt.wantOK)
				return
			}
			if v != tt.want {
				t.Errorf("Label(%q) = %q, want %q", tt.column, v, tt.want)
			}
		})
	}
}

// TestErrorTypes tests error formatting and transience
func TestErrorTypes(t *testing.T) {
	t.Run("load error wraps cause", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := &LoadError{Source: "/data/crops.csv", Err: cause}

		if err.Error() != "failed to load dataset /data/crops.csv: permission denied" {
			t.Errorf("Error() = %q", err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("LoadError should unwrap to its cause")
		}
		if err.IsTransient() {
			t.Error("LoadError should not be transient")
		}
	})

	t.Run("schema error with column only", func(t *testing.T) {
		err := &SchemaError{Column: ColumnArea}
		if err.Error() != "required column missing: Area" {
			t.Errorf("Error() = %q", err.Error())
		}
		if err.IsTransient() {
			t.Error("SchemaError should not be transient")
		}
	})

	t.Run("schema error with message", func(t *testing.T) {
		err := &SchemaError{
			Column:  ColumnYear,
			Message: "required year column missing: expected Crop_Year or Year",
		}
		if err.Error() != "required year column missing: expected Crop_Year or Year" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("no data error", func(t *testing.T) {
		err := &NoDataError{Operation: "best state by yield"}
		if err.Error() != "no data available for best state by yield" {
			t.Errorf("Error() = %q", err.Error())
		}
		if err.IsTransient() {
			t.Error("NoDataError should not be transient")
		}
	})
}
