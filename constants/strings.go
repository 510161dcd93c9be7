package constants

// Section anchors, in document order.
const (
	SectionSummaryTable = "summary_table"
	SectionQualityCurve = "quality_curves"
	SectionReadCounts   = "read_counts"
	SectionRetention    = "retention"
	SectionMeanLength   = "mean_length"
	SectionQualityRates = "quality_rates"
	SectionScatter      = "scatter_length_q30"
	SectionFiltering    = "filtering"
)

// Summary table column headers.
const (
	ColumnSample           = "Sample"
	ColumnTotalReadsBefore = "Total reads (before)"
	ColumnTotalReadsAfter  = "Total reads (after)"
	ColumnRetention        = "Retention %"
	ColumnMeanLength       = "Mean length (bp)"
	ColumnQ20Rate          = "Q20 rate (%)"
	ColumnQ30Rate          = "Q30 rate (%)"
	ColumnGC               = "GC %"
	ColumnLowQuality       = "Low quality"
	ColumnTooShort         = "Too short"
	ColumnTooLong          = "Too long"
)
