package dataset

import (
	"testing"

	"cropyield-platform/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func filterRecords() []models.CropRecord {
	return []models.CropRecord{
		{State: "Assam", Crop: "Rice", Season: "Kharif", Year: 1997, Area: f(10), Production: f(20)},
		{State: "Assam", Crop: "Rice", Season: "Kharif", Year: 1998, Area: f(11), Production: f(21)},
		{State: "Punjab", Crop: "Wheat", Season: "Rabi", Year: 1997, Area: f(12), Production: f(22)},
		{State: "Punjab", Crop: "Rice", Season: "Kharif", Year: 2000, Area: f(13), Production: f(23)},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		spec     FilterSpec
		wantLen  int
		wantYear []int
	}{
		{
			name:    "empty spec matches everything",
			spec:    FilterSpec{},
			wantLen: 4,
		},
		{
			name:    "state filter",
			spec:    FilterSpec{State: strPtr("Assam")},
			wantLen: 2,
		},
		{
			name:    "crop filter",
			spec:    FilterSpec{Crop: strPtr("Wheat")},
			wantLen: 1,
		},
		{
			name:    "season filter",
			spec:    FilterSpec{Season: strPtr("Rabi")},
			wantLen: 1,
		},
		{
			name:     "year range is inclusive on both ends",
			spec:     FilterSpec{MinYear: intPtr(1997), MaxYear: intPtr(1998)},
			wantLen:  3,
			wantYear: []int{1997, 1998, 1997},
		},
		{
			name:    "combined constraints",
			spec:    FilterSpec{State: strPtr("Punjab"), Crop: strPtr("Rice")},
			wantLen: 1,
		},
		{
			name:    "no matches yields an empty dataset not an error",
			spec:    FilterSpec{State: strPtr("Kerala")},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDataset(filterRecords())
			got := Filter(d, tt.spec)

			if got.Len() != tt.wantLen {
				t.Fatalf("Len() = %d, want %d", got.Len(), tt.wantLen)
			}
			for i, y := range tt.wantYear {
				if got.Records[i].Year != y {
					t.Errorf("record %d year = %d, want %d", i, got.Records[i].Year, y)
				}
			}
		})
	}
}

// TestFilter_Idempotent verifies filtering twice with the same spec returns
// the same record set.
func TestFilter_Idempotent(t *testing.T) {
	d := testDataset(filterRecords())
	spec := FilterSpec{State: strPtr("Assam"), MinYear: intPtr(1997)}

	once := Filter(d, spec)
	twice := Filter(once, spec)

	if once.Len() != twice.Len() {
		t.Fatalf("second pass changed record count: %d vs %d", once.Len(), twice.Len())
	}
	for i := range once.Records {
		a, b := once.Records[i], twice.Records[i]
		if a.State != b.State || a.Crop != b.Crop || a.Season != b.Season || a.Year != b.Year {
			t.Errorf("record %d differs after second pass", i)
		}
	}
}

func TestFilter_DoesNotMutateSource(t *testing.T) {
	d := testDataset(filterRecords())
	before := d.Len()

	Filter(d, FilterSpec{State: strPtr("Assam")})

	if d.Len() != before {
		t.Errorf("source dataset mutated: Len() = %d, want %d", d.Len(), before)
	}
}

func TestFilterSpec_IsEmpty(t *testing.T) {
	if !(FilterSpec{}).IsEmpty() {
		t.Error("zero spec should be empty")
	}
	if (FilterSpec{MaxYear: intPtr(2000)}).IsEmpty() {
		t.Error("spec with a bound should not be empty")
	}
}
