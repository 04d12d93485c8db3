package report

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the report as plain text. Chart series are printed as
// value tables; rendering actual charts is left to plotting consumers.
func (r *Report) Render(w io.Writer) {
	banner(w, "CROP YIELD ANALYSIS REPORT")

	fmt.Fprintf(w, "Dataset Shape:      %d rows x %d columns\n", r.Rows, len(r.Columns))
	fmt.Fprintf(w, "Removed Outliers:   %d (Area > 0 but Production = 0)\n", r.RemovedOutliers)
	fmt.Fprintf(w, "Year Column Source: %s\n\n", r.SourceName)

	fmt.Fprintln(w, "Column Types:")
	for _, ct := range r.Dtypes {
		fmt.Fprintf(w, "  %-20s %s\n", ct.Column, ct.Type)
	}
	fmt.Fprintln(w)

	if len(r.Preview) > 0 {
		fmt.Fprintf(w, "First %d rows:\n", len(r.Preview))
		fmt.Fprintf(w, "  %s\n", strings.Join(r.Columns, " | "))
		for _, row := range r.Preview {
			fmt.Fprintf(w, "  %s\n", strings.Join(row, " | "))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Null values:")
	for _, nc := range r.NullCounts {
		fmt.Fprintf(w, "  %-20s %d\n", nc.Column, nc.Nulls)
	}

	banner(w, "SUMMARY STATISTICS")

	fmt.Fprintf(w, "%-18s %8s %12s %12s %12s %12s %12s %12s %12s\n",
		"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max")
	for _, cs := range r.Describe {
		fmt.Fprintf(w, "%-18s %8d %12.3f %12.3f %12.3f %12.3f %12.3f %12.3f %12.3f\n",
			cs.Column, cs.Count, cs.Mean, cs.Std, cs.Min, cs.Q25, cs.Median, cs.Q75, cs.Max)
	}

	fmt.Fprintf(w, "\nNumber of States/UTs:       %d\n", r.StateCount)
	fmt.Fprintf(w, "Number of Different Crops:  %d\n", r.CropCount)
	fmt.Fprintf(w, "Years covered:              %d to %d\n", r.MinYear, r.MaxYear)
	fmt.Fprintf(w, "Total records:              %d\n", r.TotalRecords)

	banner(w, "CHART 1: YIELD TREND OVER YEARS (LINE)")
	for _, p := range r.YieldTrend {
		fmt.Fprintf(w, "  %d  %.3f\n", p.Year, p.Value)
	}

	banner(w, fmt.Sprintf("CHART 2: TOP %d STATES BY AVERAGE YIELD (BAR)", len(r.TopStates)))
	for i, e := range r.TopStates {
		fmt.Fprintf(w, "  %2d. %-30s %.2f\n", i+1, e.Label, e.Value)
	}

	banner(w, "CHART 3: SEASONAL YIELD DISTRIBUTION (PIE)")
	for _, s := range r.SeasonShares {
		fmt.Fprintf(w, "  %-15s mean yield %.2f  (%.1f%%)\n", s.Season, s.MeanYield, s.Percent)
	}

	banner(w, "CHART 4: RAINFALL VS YIELD (SCATTER)")
	fmt.Fprintf(w, "  %d points\n", len(r.RainfallScatter))
	if r.Insights.RainfallCorr != nil {
		fmt.Fprintf(w, "  Correlation between Annual Rainfall and Yield: %.3f\n", *r.Insights.RainfallCorr)
	} else {
		fmt.Fprintln(w, "  Correlation between Annual Rainfall and Yield: undefined")
	}

	banner(w, "CHART 5: CORRELATION HEATMAP")
	cols := r.CorrelationMatrix.Columns
	fmt.Fprintf(w, "%-18s", "")
	for _, c := range cols {
		fmt.Fprintf(w, " %15s", c)
	}
	fmt.Fprintln(w)
	for i, row := range r.CorrelationMatrix.Values {
		fmt.Fprintf(w, "%-18s", cols[i])
		for _, v := range row {
			if v == nil {
				fmt.Fprintf(w, " %15s", "-")
			} else {
				fmt.Fprintf(w, " %15.2f", *v)
			}
		}
		fmt.Fprintln(w)
	}

	banner(w, "KEY INSIGHTS")
	if r.Insights.BestState != nil {
		fmt.Fprintf(w, "Best performing state:   %s (Yield: %.2f)\n",
			r.Insights.BestState.Label, r.Insights.BestState.Value)
	}
	if r.Insights.BestCrop != nil {
		fmt.Fprintf(w, "Top crop by yield:       %s (Yield: %.2f)\n",
			r.Insights.BestCrop.Label, r.Insights.BestCrop.Value)
	}
	if r.Insights.BestSeason != nil {
		fmt.Fprintf(w, "Most productive season:  %s\n", r.Insights.BestSeason.Label)
	}
	if r.Insights.RainfallImpact != nil {
		fmt.Fprintf(w, "Rainfall impact:         %s\n", r.Insights.RainfallImpact.Description())
	}
	fmt.Fprintln(w)
}

func banner(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", 80))
}
