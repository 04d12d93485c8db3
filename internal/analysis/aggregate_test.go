package analysis

import (
	"errors"
	"testing"

	"cropyield-platform/internal/dataset"
	"cropyield-platform/internal/models"
)

func f(v float64) *float64 { return &v }

func analysisDataset(records []models.CropRecord) *dataset.Dataset {
	return &dataset.Dataset{
		Schema: dataset.Schema{
			SourceYearColumn: models.ColumnCropYear,
			Columns: []string{
				models.ColumnState, models.ColumnCrop, models.ColumnSeason,
				models.ColumnYear, models.ColumnArea, models.ColumnProduction,
				models.ColumnYield, models.ColumnAnnualRainfall,
			},
			NumericColumns: []string{
				models.ColumnYear, models.ColumnArea, models.ColumnProduction,
				models.ColumnYield, models.ColumnAnnualRainfall,
			},
		},
		Records: records,
	}
}

func TestGroupMean(t *testing.T) {
	records := []models.CropRecord{
		{State: "Assam", Crop: "Rice", Season: "Kharif", Year: 1997, Yield: f(2.0)},
		{State: "Assam", Crop: "Rice", Season: "Kharif", Year: 1998, Yield: f(4.0)},
		{State: "Punjab", Crop: "Wheat", Season: "Rabi", Year: 1997, Yield: f(5.0)},
		// Missing yield is excluded from the mean, not counted as zero.
		{State: "Punjab", Crop: "Wheat", Season: "Rabi", Year: 1998, Yield: nil},
	}

	g, err := GroupMean(analysisDataset(records), models.ColumnState, models.ColumnYield)
	if err != nil {
		t.Fatalf("GroupMean() error = %v", err)
	}

	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", g.Len())
	}
	if v, _ := g.Value("Assam"); v != 3.0 {
		t.Errorf("mean(Assam) = %v, want 3.0", v)
	}
	if v, _ := g.Value("Punjab"); v != 5.0 {
		t.Errorf("mean(Punjab) = %v, want 5.0 with missing values excluded", v)
	}
}

func TestGroupMean_EmptyGroupOmitted(t *testing.T) {
	records := []models.CropRecord{
		{State: "Assam", Crop: "Rice", Season: "Kharif", Year: 1997, Yield: f(2.0)},
		// Kerala has no present yields at all; it must not appear.
		{State: "Kerala", Crop: "Rice", Season: "Kharif", Year: 1997, Yield: nil},
	}

	g, err := GroupMean(analysisDataset(records), models.ColumnState, models.ColumnYield)
	if err != nil {
		t.Fatalf("GroupMean() error = %v", err)
	}

	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}
	if _, ok := g.Value("Kerala"); ok {
		t.Error("group with no present values should be omitted, never reported as zero")
	}
}

func TestGroupSum(t *testing.T) {
	records := []models.CropRecord{
		{State: "A", Crop: "Rice", Season: "Kharif", Year: 1997, Production: f(10)},
		{State: "A", Crop: "Rice", Season: "Rabi", Year: 1997, Production: f(30)},
		{State: "B", Crop: "Rice", Season: "Kharif", Year: 1997, Production: f(5)},
	}

	g, err := GroupSum(analysisDataset(records), models.ColumnSeason, models.ColumnProduction)
	if err != nil {
		t.Fatalf("GroupSum() error = %v", err)
	}

	if v, _ := g.Value("Kharif"); v != 15 {
		t.Errorf("sum(Kharif) = %v, want 15", v)
	}
	if v, _ := g.Value("Rabi"); v != 30 {
		t.Errorf("sum(Rabi) = %v, want 30", v)
	}
}

func TestGroupMean_InvalidDimension(t *testing.T) {
	_, err := GroupMean(analysisDataset(nil), models.ColumnArea, models.ColumnYield)
	if err == nil {
		t.Fatal("grouping by a measure column should fail")
	}

	var schemaErr *models.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error = %T, want *models.SchemaError", err)
	}
}

func TestRanked_TieBreak(t *testing.T) {
	records := []models.CropRecord{
		{State: "B", Crop: "Rice", Season: "Kharif", Year: 1997, Yield: f(4)},
		{State: "C", Crop: "Rice", Season: "Kharif", Year: 1997, Yield: f(2)},
		{State: "A", Crop: "Rice", Season: "Kharif", Year: 1997, Yield: f(4)},
	}

	g, err := GroupMean(analysisDataset(records), models.ColumnState, models.ColumnYield)
	if err != nil {
		t.Fatalf("GroupMean() error = %v", err)
	}

	ranked := g.Ranked()
	want := []Entry{
		{Label: "A", Value: 4},
		{Label: "B", Value: 4},
		{Label: "C", Value: 2},
	}
	if len(ranked) != len(want) {
		t.Fatalf("len = %d, want %d", len(ranked), len(want))
	}
	for i := range want {
		if ranked[i] != want[i] {
			t.Errorf("ranked[%d] = %+v, want %+v (ties break by ascending label)", i, ranked[i], want[i])
		}
	}
}

func TestTopN(t *testing.T) {
	g := GroupAggregate{
		keys:   []string{"A", "B", "C", "D"},
		values: map[string]float64{"A": 1, "B": 4, "C": 3, "D": 2},
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"top 2", 2, []string{"B", "C"}},
		{"n larger than groups", 10, []string{"B", "C", "D", "A"}},
		{"n zero returns all", 0, []string{"B", "C", "D", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopN(g, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, label := range tt.want {
				if got[i].Label != label {
					t.Errorf("got[%d] = %q, want %q", i, got[i].Label, label)
				}
			}
		})
	}
}

func TestBest(t *testing.T) {
	g := GroupAggregate{
		keys:   []string{"Assam", "Punjab"},
		values: map[string]float64{"Assam": 2.5, "Punjab": 4.0},
	}

	best, err := Best(g, "best state by yield")
	if err != nil {
		t.Fatalf("Best() error = %v", err)
	}
	if best.Label != "Punjab" || best.Value != 4.0 {
		t.Errorf("Best() = %+v, want {Punjab 4}", best)
	}
}

func TestBest_Empty(t *testing.T) {
	_, err := Best(GroupAggregate{}, "best state by yield")
	if err == nil {
		t.Fatal("Best() on an empty aggregate should fail")
	}

	var noData *models.NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("error = %T, want *models.NoDataError", err)
	}
	if noData.Operation != "best state by yield" {
		t.Errorf("Operation = %q", noData.Operation)
	}
}

func TestYearlyMean(t *testing.T) {
	records := []models.CropRecord{
		{State: "A", Crop: "Rice", Season: "Kharif", Year: 1999, Yield: f(3)},
		{State: "A", Crop: "Rice", Season: "Kharif", Year: 1997, Yield: f(2)},
		{State: "B", Crop: "Rice", Season: "Kharif", Year: 1997, Yield: f(4)},
		{State: "B", Crop: "Rice", Season: "Kharif", Year: 1999, Yield: nil},
	}

	points := YearlyMean(analysisDataset(records), models.ColumnYield)

	want := []YearPoint{
		{Year: 1997, Value: 3},
		{Year: 1999, Value: 3},
	}
	if len(points) != len(want) {
		t.Fatalf("len = %d, want %d", len(points), len(want))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("points[%d] = %+v, want %+v (sorted by year ascending)", i, points[i], want[i])
		}
	}
}
