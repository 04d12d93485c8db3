package report

import (
	"strconv"

	"cropyield-platform/internal/analysis"
	"cropyield-platform/internal/dataset"
	"cropyield-platform/internal/models"
)

// previewRows is how many leading records the report shows.
const previewRows = 5

// ColumnType pairs a column with its display type.
type ColumnType struct {
	Column string `json:"column"`
	Type   string `json:"type"`
}

// SeasonShare is one slice of the season distribution series.
type SeasonShare struct {
	Season    string  `json:"season"`
	MeanYield float64 `json:"mean_yield"`
	Percent   float64 `json:"percent"`
}

// Point is one rainfall/yield scatter observation.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Insights holds the derived headline findings of the batch report.
type Insights struct {
	BestState      *analysis.Entry  `json:"best_state,omitempty"`
	BestCrop       *analysis.Entry  `json:"best_crop,omitempty"`
	BestSeason     *analysis.Entry  `json:"best_season,omitempty"`
	RainfallCorr   *float64         `json:"rainfall_correlation,omitempty"`
	RainfallImpact *analysis.Impact `json:"rainfall_impact,omitempty"`
}

// Report is the full batch report: dataset overview, cleaning outcome,
// describe statistics, the numeric series behind the five exploratory
// charts, and derived insights. Rendering is the consumer's concern; the
// report carries series only.
type Report struct {
	SourceName      string
	Rows            int
	Columns         []string
	Dtypes          []ColumnType
	Preview         [][]string
	NullCounts      []analysis.ColumnNulls
	RemovedOutliers int

	Describe []analysis.ColumnStats

	// Chart series: line, bar, pie, scatter, heatmap.
	YieldTrend        []analysis.YearPoint
	TopStates         []analysis.Entry
	SeasonShares      []SeasonShare
	RainfallScatter   []Point
	CorrelationMatrix analysis.CorrelationMatrix

	StateCount   int
	CropCount    int
	MinYear      int
	MaxYear      int
	TotalRecords int

	Insights Insights
}

// Build assembles the batch report over a cleaned dataset. removedOutliers
// is the cleaner's removed-row count. topN bounds the state ranking; zero
// means the default of 10.
func Build(ds *dataset.Dataset, removedOutliers, topN int) (*Report, error) {
	if ds.Len() == 0 {
		return nil, &models.NoDataError{Operation: "batch report"}
	}
	if topN <= 0 {
		topN = 10
	}

	r := &Report{
		SourceName:      ds.Schema.SourceYearColumn,
		Rows:            ds.Len(),
		Columns:         ds.Schema.Columns,
		RemovedOutliers: removedOutliers,
		TotalRecords:    ds.Len(),
	}

	for _, col := range ds.Schema.Columns {
		r.Dtypes = append(r.Dtypes, ColumnType{Column: col, Type: ds.Schema.ColumnType(col)})
	}
	r.Preview = preview(ds)
	r.NullCounts = analysis.NullCounts(ds)
	r.Describe = analysis.Describe(ds)

	r.YieldTrend = analysis.YearlyMean(ds, models.ColumnYield)

	stateAgg, err := analysis.GroupMean(ds, models.ColumnState, models.ColumnYield)
	if err != nil {
		return nil, err
	}
	r.TopStates = analysis.TopN(stateAgg, topN)

	seasonAgg, err := analysis.GroupMean(ds, models.ColumnSeason, models.ColumnYield)
	if err != nil {
		return nil, err
	}
	r.SeasonShares = seasonShares(seasonAgg)

	xs, ys := analysis.PairedValues(ds, models.ColumnAnnualRainfall, models.ColumnYield)
	for i := range xs {
		r.RainfallScatter = append(r.RainfallScatter, Point{X: xs[i], Y: ys[i]})
	}

	r.CorrelationMatrix = analysis.Correlations(ds)

	r.StateCount = len(ds.DistinctLabels(models.ColumnState))
	r.CropCount = len(ds.DistinctLabels(models.ColumnCrop))
	if min, max, ok := ds.YearRange(); ok {
		r.MinYear = min
		r.MaxYear = max
	}

	r.Insights = deriveInsights(ds, stateAgg)

	return r, nil
}

func preview(ds *dataset.Dataset) [][]string {
	n := previewRows
	if ds.Len() < n {
		n = ds.Len()
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rec := &ds.Records[i]
		row := make([]string, 0, len(ds.Schema.Columns))
		for _, col := range ds.Schema.Columns {
			if label, ok := rec.Label(col); ok {
				row = append(row, label)
				continue
			}
			if col == models.ColumnYear {
				row = append(row, strconv.Itoa(rec.Year))
				continue
			}
			if v, ok := rec.NumericValue(col); ok {
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func seasonShares(agg analysis.GroupAggregate) []SeasonShare {
	var total float64
	for _, key := range agg.Keys() {
		v, _ := agg.Value(key)
		total += v
	}

	shares := make([]SeasonShare, 0, agg.Len())
	for _, key := range agg.Keys() {
		v, _ := agg.Value(key)
		share := SeasonShare{Season: key, MeanYield: v}
		if total != 0 {
			share.Percent = v / total * 100
		}
		shares = append(shares, share)
	}
	return shares
}

func deriveInsights(ds *dataset.Dataset, stateAgg analysis.GroupAggregate) Insights {
	var out Insights

	if best, err := analysis.Best(stateAgg, "best state by mean yield"); err == nil {
		out.BestState = &best
	}
	if agg, err := analysis.GroupMean(ds, models.ColumnCrop, models.ColumnYield); err == nil {
		if best, err := analysis.Best(agg, "best crop by mean yield"); err == nil {
			out.BestCrop = &best
		}
	}
	if agg, err := analysis.GroupSum(ds, models.ColumnSeason, models.ColumnProduction); err == nil {
		if best, err := analysis.Best(agg, "most productive season"); err == nil {
			out.BestSeason = &best
		}
	}
	if r, ok := analysis.CorrelationBetween(ds, models.ColumnAnnualRainfall, models.ColumnYield); ok {
		out.RainfallCorr = &r
		impact := analysis.ClassifyImpact(r)
		out.RainfallImpact = &impact
	}
	return out
}
