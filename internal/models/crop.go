package models

// Canonical column names of the crop yield dataset. The year column may
// appear in the source as either "Crop_Year" or "Year"; it is always
// exposed downstream under ColumnYear.
const (
	ColumnState          = "State"
	ColumnCrop           = "Crop"
	ColumnSeason         = "Season"
	ColumnYear           = "Year"
	ColumnCropYear       = "Crop_Year"
	ColumnArea           = "Area"
	ColumnProduction     = "Production"
	ColumnYield          = "Yield"
	ColumnAnnualRainfall = "Annual_Rainfall"
)

// CropRecord represents a single crop yield record.
// Missing numeric values represented as nil pointers; aggregation skips them.
type CropRecord struct {
	State          string   `json:"state" db:"state"`
	Crop           string   `json:"crop" db:"crop"`
	Season         string   `json:"season" db:"season"`
	Year           int      `json:"year" db:"year"`
	Area           *float64 `json:"area,omitempty" db:"area"`
	Production     *float64 `json:"production,omitempty" db:"production"`
	Yield          *float64 `json:"yield,omitempty" db:"yield"`
	AnnualRainfall *float64 `json:"annual_rainfall,omitempty" db:"annual_rainfall"`

	// Extra holds numeric columns beyond the fixed schema. Consulted only
	// when building the correlation matrix.
	Extra map[string]float64 `json:"extra,omitempty" db:"-"`
}

// NumericValue returns the value of a numeric column by canonical name.
// The second return is false when the value is missing for this record.
func (r *CropRecord) NumericValue(column string) (float64, bool) {
	switch column {
	case ColumnYear:
		return float64(r.Year), true
	case ColumnArea:
		if r.Area == nil {
			return 0, false
		}
		return *r.Area, true
	case ColumnProduction:
		if r.Production == nil {
			return 0, false
		}
		return *r.Production, true
	case ColumnYield:
		if r.Yield == nil {
			return 0, false
		}
		return *r.Yield, true
	case ColumnAnnualRainfall:
		if r.AnnualRainfall == nil {
			return 0, false
		}
		return *r.AnnualRainfall, true
	default:
		v, ok := r.Extra[column]
		return v, ok
	}
}

// Label returns the value of a categorical column by canonical name.
func (r *CropRecord) Label(column string) (string, bool) {
	switch column {
	case ColumnState:
		return r.State, true
	case ColumnCrop:
		return r.Crop, true
	case ColumnSeason:
		return r.Season, true
	default:
		return "", false
	}
}
