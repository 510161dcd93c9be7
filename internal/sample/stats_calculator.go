package sample

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ethpandaops/fastplong-multireport/constants"
)

// Metric names used in cohort statistics and outlier reports.
const (
	MetricRetention  = "retention_percent"
	MetricMeanLength = "mean_length_bp"
	MetricQ20        = "q20_rate_percent"
	MetricQ30        = "q30_rate_percent"
	MetricGC         = "gc_percent"
)

type metricColumn struct {
	name  string
	value func(SummaryRow) float64
}

var cohortMetrics = []metricColumn{
	{MetricRetention, func(r SummaryRow) float64 { return r.RetentionPercent }},
	{MetricMeanLength, func(r SummaryRow) float64 { return r.MeanLengthBp }},
	{MetricQ20, func(r SummaryRow) float64 { return r.Q20RatePercent }},
	{MetricQ30, func(r SummaryRow) float64 { return r.Q30RatePercent }},
	{MetricGC, func(r SummaryRow) float64 { return r.GCPercent }},
}

// Outliers are only looked for on the axes of the batch-effect scatter.
var outlierMetrics = []metricColumn{cohortMetrics[1], cohortMetrics[3]}

// DefaultStatsCalculator implements the StatsCalculator interface.
type DefaultStatsCalculator struct {
	threshold float64
}

// NewStatsCalculator creates a new statistics calculator. threshold is the
// absolute z-score above which a sample is reported as an outlier.
func NewStatsCalculator(threshold float64) *DefaultStatsCalculator {
	if threshold <= 0 {
		threshold = constants.DefaultOutlierThreshold
	}

	return &DefaultStatsCalculator{threshold: threshold}
}

// CalculateCohortStats summarizes every metric column of the table.
func (sc *DefaultStatsCalculator) CalculateCohortStats(table Table) CohortStats {
	stats := CohortStats{
		Samples:  len(table),
		Metrics:  make([]MetricStats, 0, len(cohortMetrics)),
		Outliers: sc.FindOutliers(table),
	}

	for _, row := range table {
		stats.TotalReadsBefore += row.TotalReadsBefore
		stats.TotalReadsAfter += row.TotalReadsAfter
	}

	if table.Empty() {
		return stats
	}

	for _, m := range cohortMetrics {
		stats.Metrics = append(stats.Metrics, summarize(m.name, table.Column(m.value)))
	}

	return stats
}

// FindOutliers flags samples whose mean length or Q30 rate deviates from the
// cohort mean by more than the threshold, in population standard deviations.
func (sc *DefaultStatsCalculator) FindOutliers(table Table) []Outlier {
	outliers := make([]Outlier, 0)
	if len(table) < constants.MinOutlierCohortSize {
		return outliers
	}

	for _, m := range outlierMetrics {
		values := table.Column(m.value)

		mean, std := stat.PopMeanStdDev(values, nil)
		if std == 0 || math.IsNaN(std) {
			continue
		}

		for i, v := range values {
			z := (v - mean) / std
			if math.Abs(z) > sc.threshold {
				outliers = append(outliers, Outlier{
					Sample: table[i].Sample,
					Metric: m.name,
					Value:  v,
					ZScore: z,
				})
			}
		}
	}

	return outliers
}

func summarize(name string, values []float64) MetricStats {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)

	return MetricStats{
		Metric: name,
		Mean:   mean,
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		StdDev: std,
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
	}
}
