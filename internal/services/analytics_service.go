package services

import (
	"context"

	"cropyield-platform/internal/analysis"
	"cropyield-platform/internal/dataset"
	"cropyield-platform/internal/models"
	"cropyield-platform/pkg/logging"
	"cropyield-platform/pkg/metrics"
)

// DefaultTopStates is the default number of states in the ranking view.
const DefaultTopStates = 10

// AnalyticsService answers dashboard queries against the cached dataset.
// Every query filters a fresh derived dataset; nothing is mutated in place.
type AnalyticsService struct {
	base    *dataset.Dataset
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewAnalyticsService creates a new analytics service over a cleaned dataset
func NewAnalyticsService(base *dataset.Dataset, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *AnalyticsService {
	return &AnalyticsService{
		base:    base,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// SummaryMetrics mirrors the dashboard's headline widgets. Aggregates over
// missing measures are omitted, never reported as zero.
type SummaryMetrics struct {
	Records         int      `json:"records"`
	AvgYield        *float64 `json:"avg_yield,omitempty"`
	TotalProduction *float64 `json:"total_production,omitempty"`
	TotalArea       *float64 `json:"total_area,omitempty"`
}

// SeasonShare is one slice of the season distribution view.
type SeasonShare struct {
	Season    string  `json:"season"`
	MeanYield float64 `json:"mean_yield"`
	Percent   float64 `json:"percent"`
}

// ScatterPoint is one rainfall/yield observation.
type ScatterPoint struct {
	Rainfall float64 `json:"rainfall"`
	Yield    float64 `json:"yield"`
}

// RainfallRelation is the scatter view plus its correlation and impact band.
type RainfallRelation struct {
	Points      []ScatterPoint   `json:"points"`
	Correlation *float64         `json:"correlation,omitempty"`
	Impact      *analysis.Impact `json:"impact,omitempty"`
}

// Insights holds the derived headline findings.
type Insights struct {
	BestState      *analysis.Entry  `json:"best_state,omitempty"`
	BestCrop       *analysis.Entry  `json:"best_crop,omitempty"`
	BestSeason     *analysis.Entry  `json:"best_season,omitempty"`
	RainfallCorr   *float64         `json:"rainfall_correlation,omitempty"`
	RainfallImpact *analysis.Impact `json:"rainfall_impact,omitempty"`
}

// FilterOptions lists the selectable filter values for dashboard widgets.
type FilterOptions struct {
	States  []string `json:"states"`
	Crops   []string `json:"crops"`
	Seasons []string `json:"seasons"`
	MinYear int      `json:"min_year"`
	MaxYear int      `json:"max_year"`
}

// Filtered returns the derived dataset for a filter spec.
func (s *AnalyticsService) Filtered(ctx context.Context, spec dataset.FilterSpec) *dataset.Dataset {
	filtered := dataset.Filter(s.base, spec)
	if filtered.Len() == 0 {
		s.metrics.EmptyFilterResults.Inc()
		s.logger.Debug(ctx, "[ANALYTICS_EMPTY_FILTER] Filter matched no records", logging.Fields{
			"base_rows": s.base.Len(),
		})
	}
	return filtered
}

// Records returns a page of filtered records plus the total match count.
func (s *AnalyticsService) Records(ctx context.Context, spec dataset.FilterSpec, limit, offset int) ([]models.CropRecord, int) {
	filtered := s.Filtered(ctx, spec)
	total := filtered.Len()

	if offset >= total {
		return []models.CropRecord{}, total
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return filtered.Records[offset:end], total
}

// Summary computes the headline metrics over the filtered dataset.
func (s *AnalyticsService) Summary(ctx context.Context, spec dataset.FilterSpec) SummaryMetrics {
	timer := s.metrics.NewTimer(s.metrics.AnalysisDuration.WithLabelValues("summary"))
	defer timer.ObserveDuration()

	filtered := s.Filtered(ctx, spec)
	out := SummaryMetrics{Records: filtered.Len()}

	if yields := filtered.NumericColumn(models.ColumnYield); len(yields) > 0 {
		var sum float64
		for _, v := range yields {
			sum += v
		}
		avg := sum / float64(len(yields))
		out.AvgYield = &avg
	}
	if prods := filtered.NumericColumn(models.ColumnProduction); len(prods) > 0 {
		var sum float64
		for _, v := range prods {
			sum += v
		}
		out.TotalProduction = &sum
	}
	if areas := filtered.NumericColumn(models.ColumnArea); len(areas) > 0 {
		var sum float64
		for _, v := range areas {
			sum += v
		}
		out.TotalArea = &sum
	}

	return out
}

// YieldTrend computes mean yield per year over the filtered dataset.
func (s *AnalyticsService) YieldTrend(ctx context.Context, spec dataset.FilterSpec) []analysis.YearPoint {
	timer := s.metrics.NewTimer(s.metrics.AnalysisDuration.WithLabelValues("trend"))
	defer timer.ObserveDuration()

	return analysis.YearlyMean(s.Filtered(ctx, spec), models.ColumnYield)
}

// TopStates ranks states by mean yield over the filtered dataset.
func (s *AnalyticsService) TopStates(ctx context.Context, spec dataset.FilterSpec, n int) []analysis.Entry {
	timer := s.metrics.NewTimer(s.metrics.AnalysisDuration.WithLabelValues("top_states"))
	defer timer.ObserveDuration()

	agg, err := analysis.GroupMean(s.Filtered(ctx, spec), models.ColumnState, models.ColumnYield)
	if err != nil {
		// State is always a valid dimension; reachable only with a broken schema.
		s.logger.Error(ctx, "[ANALYTICS_TOP_STATES_ERROR] Grouping failed", logging.Fields{}, err)
		return nil
	}
	return analysis.TopN(agg, n)
}

// SeasonShares computes mean yield per season and each season's share of
// the sum of season means.
func (s *AnalyticsService) SeasonShares(ctx context.Context, spec dataset.FilterSpec) []SeasonShare {
	timer := s.metrics.NewTimer(s.metrics.AnalysisDuration.WithLabelValues("seasons"))
	defer timer.ObserveDuration()

	agg, err := analysis.GroupMean(s.Filtered(ctx, spec), models.ColumnSeason, models.ColumnYield)
	if err != nil {
		s.logger.Error(ctx, "[ANALYTICS_SEASONS_ERROR] Grouping failed", logging.Fields{}, err)
		return nil
	}

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

// Rainfall computes the rainfall/yield scatter, its correlation, and the
// impact band. Correlation is absent when undefined.
func (s *AnalyticsService) Rainfall(ctx context.Context, spec dataset.FilterSpec) RainfallRelation {
	timer := s.metrics.NewTimer(s.metrics.AnalysisDuration.WithLabelValues("rainfall"))
	defer timer.ObserveDuration()

	filtered := s.Filtered(ctx, spec)
	xs, ys := analysis.PairedValues(filtered, models.ColumnAnnualRainfall, models.ColumnYield)

	relation := RainfallRelation{Points: make([]ScatterPoint, 0, len(xs))}
	for i := range xs {
		relation.Points = append(relation.Points, ScatterPoint{Rainfall: xs[i], Yield: ys[i]})
	}

	if r, ok := analysis.Pearson(xs, ys); ok {
		relation.Correlation = &r
		impact := analysis.ClassifyImpact(r)
		relation.Impact = &impact
	}

	return relation
}

// Correlations computes the pairwise correlation matrix over all numeric
// columns of the filtered dataset. ok is false when the filter matched no
// records.
func (s *AnalyticsService) Correlations(ctx context.Context, spec dataset.FilterSpec) (analysis.CorrelationMatrix, bool) {
	timer := s.metrics.NewTimer(s.metrics.AnalysisDuration.WithLabelValues("correlations"))
	defer timer.ObserveDuration()

	filtered := s.Filtered(ctx, spec)
	if filtered.Len() == 0 {
		return analysis.CorrelationMatrix{}, false
	}
	return analysis.Correlations(filtered), true
}

// DeriveInsights computes the headline findings over the filtered dataset.
// Returns *models.NoDataError when the filter matched nothing.
func (s *AnalyticsService) DeriveInsights(ctx context.Context, spec dataset.FilterSpec) (*Insights, error) {
	timer := s.metrics.NewTimer(s.metrics.AnalysisDuration.WithLabelValues("insights"))
	defer timer.ObserveDuration()

	filtered := s.Filtered(ctx, spec)
	if filtered.Len() == 0 {
		return nil, &models.NoDataError{Operation: "insights"}
	}

	out := &Insights{}

	if agg, err := analysis.GroupMean(filtered, models.ColumnState, models.ColumnYield); err == nil {
		if best, err := analysis.Best(agg, "best state by mean yield"); err == nil {
			out.BestState = &best
		}
	}
	if agg, err := analysis.GroupMean(filtered, models.ColumnCrop, models.ColumnYield); err == nil {
		if best, err := analysis.Best(agg, "best crop by mean yield"); err == nil {
			out.BestCrop = &best
		}
	}
	if agg, err := analysis.GroupSum(filtered, models.ColumnSeason, models.ColumnProduction); err == nil {
		if best, err := analysis.Best(agg, "most productive season"); err == nil {
			out.BestSeason = &best
		}
	}

	if r, ok := analysis.CorrelationBetween(filtered, models.ColumnAnnualRainfall, models.ColumnYield); ok {
		out.RainfallCorr = &r
		impact := analysis.ClassifyImpact(r)
		out.RainfallImpact = &impact
	}

	return out, nil
}

// Options lists the selectable filter values from the full dataset.
func (s *AnalyticsService) Options(ctx context.Context) FilterOptions {
	opts := FilterOptions{
		States:  s.base.DistinctLabels(models.ColumnState),
		Crops:   s.base.DistinctLabels(models.ColumnCrop),
		Seasons: s.base.DistinctLabels(models.ColumnSeason),
	}
	if min, max, ok := s.base.YearRange(); ok {
		opts.MinYear = min
		opts.MaxYear = max
	}
	return opts
}
