package analysis

import (
	"math"
	"testing"

	"cropyield-platform/internal/models"
)

func TestPearson(t *testing.T) {
	tests := []struct {
		name   string
		xs     []float64
		ys     []float64
		wantR  float64
		wantOK bool
	}{
		{
			name:   "perfect positive correlation",
			xs:     []float64{1, 2, 3, 4},
			ys:     []float64{2, 4, 6, 8},
			wantR:  1.0,
			wantOK: true,
		},
		{
			name:   "perfect negative correlation",
			xs:     []float64{1, 2, 3, 4},
			ys:     []float64{8, 6, 4, 2},
			wantR:  -1.0,
			wantOK: true,
		},
		{
			name:   "self correlation is one",
			xs:     []float64{3.1, 1.7, 4.2, 2.9, 5.5},
			ys:     []float64{3.1, 1.7, 4.2, 2.9, 5.5},
			wantR:  1.0,
			wantOK: true,
		},
		{
			name:   "fewer than two pairs undefined",
			xs:     []float64{1},
			ys:     []float64{2},
			wantOK: false,
		},
		{
			name:   "empty series undefined",
			xs:     nil,
			ys:     nil,
			wantOK: false,
		},
		{
			name:   "zero variance in x undefined",
			xs:     []float64{5, 5, 5},
			ys:     []float64{1, 2, 3},
			wantOK: false,
		},
		{
			name:   "zero variance in y undefined",
			xs:     []float64{1, 2, 3},
			ys:     []float64{7, 7, 7},
			wantOK: false,
		},
		{
			name:   "length mismatch undefined",
			xs:     []float64{1, 2, 3},
			ys:     []float64{1, 2},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := Pearson(tt.xs, tt.ys)
			if ok != tt.wantOK {
				t.Fatalf("Pearson() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(r-tt.wantR) > 1e-9 {
				t.Errorf("Pearson() = %v, want %v", r, tt.wantR)
			}
		})
	}
}

func TestPearson_Bounded(t *testing.T) {
	xs := []float64{1.0000001, 2.0000002, 3.0000001, 4.0000003}
	ys := []float64{2, 4, 6, 8}

	r, ok := Pearson(xs, ys)
	if !ok {
		t.Fatal("Pearson() should be defined")
	}
	if r > 1 || r < -1 {
		t.Errorf("Pearson() = %v, must stay within [-1, 1]", r)
	}
}

func TestCorrelationBetween_SkipsMissingPairs(t *testing.T) {
	records := []models.CropRecord{
		{State: "A", Crop: "Rice", Season: "Kharif", Year: 1997, Yield: f(2), AnnualRainfall: f(100)},
		{State: "A", Crop: "Rice", Season: "Kharif", Year: 1998, Yield: f(4), AnnualRainfall: f(200)},
		// One side missing: the pair is excluded entirely.
		{State: "A", Crop: "Rice", Season: "Kharif", Year: 1999, Yield: nil, AnnualRainfall: f(300)},
		{State: "A", Crop: "Rice", Season: "Kharif", Year: 2000, Yield: f(6), AnnualRainfall: f(300)},
	}

	r, ok := CorrelationBetween(analysisDataset(records), models.ColumnAnnualRainfall, models.ColumnYield)
	if !ok {
		t.Fatal("correlation should be defined")
	}
	if math.Abs(r-1.0) > 1e-9 {
		t.Errorf("r = %v, want 1.0 over the three complete pairs", r)
	}
}

func TestCorrelations(t *testing.T) {
	records := []models.CropRecord{
		{State: "A", Crop: "Rice", Season: "Kharif", Year: 1997, Area: f(10), Production: f(20), Yield: f(2), AnnualRainfall: f(100)},
		{State: "A", Crop: "Rice", Season: "Kharif", Year: 1998, Area: f(20), Production: f(40), Yield: f(4), AnnualRainfall: f(150)},
		{State: "A", Crop: "Rice", Season: "Kharif", Year: 1999, Area: f(30), Production: f(60), Yield: f(3), AnnualRainfall: f(120)},
	}

	m := Correlations(analysisDataset(records))

	if len(m.Columns) != 5 {
		t.Fatalf("columns = %v, want 5 numeric columns", m.Columns)
	}

	// Diagonal entries are defined and exactly one.
	for i := range m.Columns {
		v := m.Values[i][i]
		if v == nil {
			t.Fatalf("diagonal [%d][%d] undefined", i, i)
		}
		if math.Abs(*v-1.0) > 1e-9 {
			t.Errorf("diagonal [%d][%d] = %v, want 1.0", i, i, *v)
		}
	}

	// Matrix is symmetric.
	for i := range m.Columns {
		for j := range m.Columns {
			a, b := m.Values[i][j], m.Values[j][i]
			if (a == nil) != (b == nil) {
				t.Fatalf("[%d][%d] and [%d][%d] disagree on definedness", i, j, j, i)
			}
			if a != nil && math.Abs(*a-*b) > 1e-12 {
				t.Errorf("[%d][%d] = %v, [%d][%d] = %v", i, j, *a, j, i, *b)
			}
		}
	}
}

func TestCorrelations_UndefinedEntriesNil(t *testing.T) {
	// A single record: every pairwise correlation is undefined.
	records := []models.CropRecord{
		{State: "A", Crop: "Rice", Season: "Kharif", Year: 1997, Area: f(10), Production: f(20), Yield: f(2), AnnualRainfall: f(100)},
	}

	m := Correlations(analysisDataset(records))
	for i := range m.Columns {
		for j := range m.Columns {
			if m.Values[i][j] != nil {
				t.Errorf("[%d][%d] = %v, want nil for an undefined coefficient", i, j, *m.Values[i][j])
			}
		}
	}
}
