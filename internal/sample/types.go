package sample

import (
	"github.com/ethpandaops/fastplong-multireport/internal/fastplong"
)

// Sample is one successfully loaded report.
type Sample struct {
	Name   string
	Path   string
	Report *fastplong.Report
}

// SummaryRow is the normalized, always-populated view of one sample.
type SummaryRow struct {
	Sample            string  `json:"sample"`
	TotalReadsBefore  int64   `json:"total_reads_before"`
	TotalReadsAfter   int64   `json:"total_reads_after"`
	RetentionPercent  float64 `json:"retention_percent"`
	MeanLengthBp      float64 `json:"mean_length_bp"`
	Q20RatePercent    float64 `json:"q20_rate_percent"`
	Q30RatePercent    float64 `json:"q30_rate_percent"`
	GCPercent         float64 `json:"gc_percent"`
	PassedFilterReads int64   `json:"passed_filter_reads"`
	LowQualityReads   int64   `json:"low_quality_reads"`
	TooShortReads     int64   `json:"too_short_reads"`
	TooLongReads      int64   `json:"too_long_reads"`
}

// Table is the ordered summary table, one row per sample in load order.
type Table []SummaryRow

// Samples returns the sample names in table order.
func (t Table) Samples() []string {
	names := make([]string, len(t))
	for i, row := range t {
		names[i] = row.Sample
	}

	return names
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t) == 0
}

// Column extracts one float column in table order.
func (t Table) Column(value func(SummaryRow) float64) []float64 {
	out := make([]float64, len(t))
	for i, row := range t {
		out[i] = value(row)
	}

	return out
}

// QualityCurve is a plot-ready, downsampled mean quality curve.
type QualityCurve struct {
	Sample    string    `json:"sample"`
	Positions []int     `json:"positions"`
	Values    []float64 `json:"values"`
	// SourceLength is the number of positions before downsampling.
	SourceLength int `json:"source_length"`
}

// MetricStats summarizes one table column across the cohort.
type MetricStats struct {
	Metric string  `json:"metric"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Outlier is a sample whose metric sits far from the cohort mean.
type Outlier struct {
	Sample string  `json:"sample"`
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	ZScore float64 `json:"z_score"`
}

// CohortStats aggregates the whole table.
type CohortStats struct {
	Samples          int           `json:"samples"`
	TotalReadsBefore int64         `json:"total_reads_before"`
	TotalReadsAfter  int64         `json:"total_reads_after"`
	Metrics          []MetricStats `json:"metrics"`
	Outliers         []Outlier     `json:"outliers"`
}

// Metric returns the named metric summary.
func (c CohortStats) Metric(name string) (MetricStats, bool) {
	for _, m := range c.Metrics {
		if m.Metric == name {
			return m, true
		}
	}

	return MetricStats{}, false
}

// IsOutlier reports whether the sample was flagged for any metric.
func (c CohortStats) IsOutlier(sampleName string) bool {
	for _, o := range c.Outliers {
		if o.Sample == sampleName {
			return true
		}
	}

	return false
}
