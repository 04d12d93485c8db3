package services

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"sync"
	"testing"

	"cropyield-platform/internal/dataset"
	"cropyield-platform/internal/models"
	"cropyield-platform/pkg/logging"
	"cropyield-platform/pkg/metrics"
)

const servicesTestCSV = `State,Crop,Season,Crop_Year,Area,Production,Yield,Annual_Rainfall
Assam,Rice,Kharif,1997,1000,2500,2.5,2051.4
Assam,Rice,Kharif,1998,1100,2600,2.36,1980.2
Punjab,Wheat,Rabi,1997,2000,8000,4.0,649.8
Punjab,Wheat,Rabi,1998,2100,8400,4.0,630.1
Kerala,Coconut,Whole Year,1997,500,1500,3.0,2925.0
`

var (
	svcMetricsOnce sync.Once
	svcMetrics     *metrics.Collector
)

// svcCollector returns a process-wide collector; prometheus panics on
// duplicate registration, so every test shares one.
func svcCollector() *metrics.Collector {
	svcMetricsOnce.Do(func() {
		svcMetrics = metrics.NewCollector("cropyield_services_test")
	})
	return svcMetrics
}

func testLogger() *logging.StructuredLogger {
	logger := logging.NewStructuredLogger("test", "0.0.0", logging.ErrorLevel)
	logger.SetOutput(io.Discard)
	return logger
}

func newTestAnalytics(t *testing.T) *AnalyticsService {
	t.Helper()

	raw, err := dataset.LoadReader(strings.NewReader(servicesTestCSV), "test.csv")
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	cleaned, err := dataset.Clean(raw)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	return NewAnalyticsService(cleaned.Dataset, testLogger(), svcCollector())
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func TestSummary(t *testing.T) {
	svc := newTestAnalytics(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		spec        dataset.FilterSpec
		wantRecords int
		wantAvg     *float64
	}{
		{
			name:        "unfiltered",
			spec:        dataset.FilterSpec{},
			wantRecords: 5,
		},
		{
			name:        "state filter",
			spec:        dataset.FilterSpec{State: strPtr("Punjab")},
			wantRecords: 2,
			wantAvg:     func() *float64 { v := 4.0; return &v }(),
		},
		{
			name:        "no matches",
			spec:        dataset.FilterSpec{State: strPtr("Goa")},
			wantRecords: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Summary(ctx, tt.spec)
			if got.Records != tt.wantRecords {
				t.Errorf("Records = %d, want %d", got.Records, tt.wantRecords)
			}
			if tt.wantAvg != nil {
				if got.AvgYield == nil || math.Abs(*got.AvgYield-*tt.wantAvg) > 1e-9 {
					t.Errorf("AvgYield = %v, want %v", got.AvgYield, *tt.wantAvg)
				}
			}
			if tt.wantRecords == 0 && got.AvgYield != nil {
				t.Error("AvgYield should be absent for an empty result, never zero")
			}
		})
	}
}

func TestRecords_Pagination(t *testing.T) {
	svc := newTestAnalytics(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		limit     int
		offset    int
		wantRows  int
		wantTotal int
	}{
		{"first page", 2, 0, 2, 5},
		{"middle page", 2, 2, 2, 5},
		{"last partial page", 2, 4, 1, 5},
		{"offset past the end", 2, 10, 0, 5},
		{"zero limit returns the rest", 0, 1, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, total := svc.Records(ctx, dataset.FilterSpec{}, tt.limit, tt.offset)
			if len(rows) != tt.wantRows {
				t.Errorf("rows = %d, want %d", len(rows), tt.wantRows)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
		})
	}
}

func TestTopStates(t *testing.T) {
	svc := newTestAnalytics(t)

	ranked := svc.TopStates(context.Background(), dataset.FilterSpec{}, 2)
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}
	if ranked[0].Label != "Punjab" || ranked[1].Label != "Kerala" {
		t.Errorf("ranking = %v, want Punjab then Kerala", ranked)
	}
}

func TestSeasonShares(t *testing.T) {
	svc := newTestAnalytics(t)

	shares := svc.SeasonShares(context.Background(), dataset.FilterSpec{})
	if len(shares) != 3 {
		t.Fatalf("len = %d, want 3", len(shares))
	}

	var pct float64
	for _, s := range shares {
		pct += s.Percent
	}
	if math.Abs(pct-100) > 1e-9 {
		t.Errorf("shares sum to %v, want 100", pct)
	}
}

func TestRainfall(t *testing.T) {
	svc := newTestAnalytics(t)

	relation := svc.Rainfall(context.Background(), dataset.FilterSpec{})
	if len(relation.Points) != 5 {
		t.Fatalf("points = %d, want 5", len(relation.Points))
	}
	if relation.Correlation == nil {
		t.Fatal("correlation should be defined over five complete pairs")
	}
	if relation.Impact == nil {
		t.Error("impact should be classified when the correlation is defined")
	}
}

func TestRainfall_UndefinedCorrelation(t *testing.T) {
	svc := newTestAnalytics(t)

	// A single record cannot carry a correlation.
	spec := dataset.FilterSpec{State: strPtr("Kerala")}
	relation := svc.Rainfall(context.Background(), spec)

	if len(relation.Points) != 1 {
		t.Fatalf("points = %d, want 1", len(relation.Points))
	}
	if relation.Correlation != nil {
		t.Error("correlation must be absent when undefined, never zero")
	}
	if relation.Impact != nil {
		t.Error("impact must be absent when the correlation is undefined")
	}
}

func TestCorrelations(t *testing.T) {
	svc := newTestAnalytics(t)

	matrix, ok := svc.Correlations(context.Background(), dataset.FilterSpec{State: strPtr("Punjab")})
	if !ok {
		t.Fatal("Correlations() ok = false for a matching filter")
	}
	if len(matrix.Columns) != 5 {
		t.Errorf("columns = %v, want the 5 numeric columns", matrix.Columns)
	}
	// Two Punjab rows share a yield of 4.0, so the yield column has zero
	// variance and its off-diagonal entries are undefined.
	for i, col := range matrix.Columns {
		if col != models.ColumnYield {
			continue
		}
		for j := range matrix.Columns {
			if j != i && matrix.Values[i][j] != nil {
				t.Errorf("[%d][%d] = %v, want nil for zero variance", i, j, *matrix.Values[i][j])
			}
		}
	}
}

func TestCorrelations_NoMatches(t *testing.T) {
	svc := newTestAnalytics(t)

	matrix, ok := svc.Correlations(context.Background(), dataset.FilterSpec{State: strPtr("Goa")})
	if ok {
		t.Fatal("Correlations() ok = true for an empty result")
	}
	if matrix.Columns != nil {
		t.Errorf("columns = %v, want none", matrix.Columns)
	}
}

func TestDeriveInsights(t *testing.T) {
	svc := newTestAnalytics(t)

	insights, err := svc.DeriveInsights(context.Background(), dataset.FilterSpec{})
	if err != nil {
		t.Fatalf("DeriveInsights() error = %v", err)
	}

	if insights.BestState == nil || insights.BestState.Label != "Punjab" {
		t.Errorf("BestState = %+v, want Punjab", insights.BestState)
	}
	if insights.BestCrop == nil || insights.BestCrop.Label != "Wheat" {
		t.Errorf("BestCrop = %+v, want Wheat", insights.BestCrop)
	}
	if insights.BestSeason == nil || insights.BestSeason.Label != "Rabi" {
		t.Errorf("BestSeason = %+v, want Rabi", insights.BestSeason)
	}
}

func TestDeriveInsights_NoData(t *testing.T) {
	svc := newTestAnalytics(t)

	_, err := svc.DeriveInsights(context.Background(), dataset.FilterSpec{State: strPtr("Goa")})
	if err == nil {
		t.Fatal("DeriveInsights() should fail when the filter matches nothing")
	}

	var noData *models.NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("error = %T, want *models.NoDataError", err)
	}
}

func TestOptions(t *testing.T) {
	svc := newTestAnalytics(t)

	opts := svc.Options(context.Background())
	if len(opts.States) != 3 || opts.States[0] != "Assam" {
		t.Errorf("States = %v, want sorted [Assam Kerala Punjab]", opts.States)
	}
	if opts.MinYear != 1997 || opts.MaxYear != 1998 {
		t.Errorf("year range = %d-%d, want 1997-1998", opts.MinYear, opts.MaxYear)
	}
}

func TestFiltered_YearRange(t *testing.T) {
	svc := newTestAnalytics(t)

	spec := dataset.FilterSpec{MinYear: intPtr(1998), MaxYear: intPtr(1998)}
	filtered := svc.Filtered(context.Background(), spec)
	if filtered.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (bounds inclusive)", filtered.Len())
	}
}
