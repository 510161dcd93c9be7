package sample

import (
	"github.com/ethpandaops/fastplong-multireport/constants"
	"github.com/ethpandaops/fastplong-multireport/internal/common"
	"github.com/ethpandaops/fastplong-multireport/internal/fastplong"
)

// countField maps an optional integer counter at path onto a row field.
type countField struct {
	path   string
	source func(r *fastplong.Report) *fastplong.Count
	dest   func(row *SummaryRow) *int64
}

// rateField maps an optional float at path onto a row field through a transform.
type rateField struct {
	path      string
	source    func(r *fastplong.Report) *float64
	transform func(v float64) float64
	dest      func(row *SummaryRow) *float64
}

var countFields = []countField{
	{
		path:   "summary.before_filtering.total_reads",
		source: func(r *fastplong.Report) *fastplong.Count { return r.Before().TotalReads },
		dest:   func(row *SummaryRow) *int64 { return &row.TotalReadsBefore },
	},
	{
		path:   "summary.after_filtering.total_reads",
		source: func(r *fastplong.Report) *fastplong.Count { return r.After().TotalReads },
		dest:   func(row *SummaryRow) *int64 { return &row.TotalReadsAfter },
	},
	{
		path:   "filtering_result.passed_filter_reads",
		source: func(r *fastplong.Report) *fastplong.Count { return r.Filtering().PassedFilterReads },
		dest:   func(row *SummaryRow) *int64 { return &row.PassedFilterReads },
	},
	{
		path:   "filtering_result.low_quality_reads",
		source: func(r *fastplong.Report) *fastplong.Count { return r.Filtering().LowQualityReads },
		dest:   func(row *SummaryRow) *int64 { return &row.LowQualityReads },
	},
	{
		path:   "filtering_result.too_short_reads",
		source: func(r *fastplong.Report) *fastplong.Count { return r.Filtering().TooShortReads },
		dest:   func(row *SummaryRow) *int64 { return &row.TooShortReads },
	},
	{
		path:   "filtering_result.too_long_reads",
		source: func(r *fastplong.Report) *fastplong.Count { return r.Filtering().TooLongReads },
		dest:   func(row *SummaryRow) *int64 { return &row.TooLongReads },
	},
}

var rateFields = []rateField{
	{
		path:      "summary.after_filtering.read_mean_length",
		source:    func(r *fastplong.Report) *float64 { return r.After().ReadMeanLength },
		transform: identity,
		dest:      func(row *SummaryRow) *float64 { return &row.MeanLengthBp },
	},
	{
		path:      "summary.after_filtering.q20_rate",
		source:    func(r *fastplong.Report) *float64 { return r.After().Q20Rate },
		transform: toPercent(constants.QualityDecimals),
		dest:      func(row *SummaryRow) *float64 { return &row.Q20RatePercent },
	},
	{
		path:      "summary.after_filtering.q30_rate",
		source:    func(r *fastplong.Report) *float64 { return r.After().Q30Rate },
		transform: toPercent(constants.QualityDecimals),
		dest:      func(row *SummaryRow) *float64 { return &row.Q30RatePercent },
	},
	{
		path:      "summary.after_filtering.gc_content",
		source:    func(r *fastplong.Report) *float64 { return r.After().GCContent },
		transform: toPercent(constants.GCDecimals),
		dest:      func(row *SummaryRow) *float64 { return &row.GCPercent },
	},
}

// Normalize maps one raw report onto a SummaryRow. It never fails: absent
// fields resolve to zero and the transform is applied to the default too.
func Normalize(name string, r *fastplong.Report) SummaryRow {
	row := SummaryRow{Sample: name}

	for _, f := range countFields {
		*f.dest(&row) = countOrZero(f.source(r))
	}

	for _, f := range rateFields {
		*f.dest(&row) = f.transform(floatOrZero(f.source(r)))
	}

	row.RetentionPercent = common.Round(
		common.Percent(float64(row.PassedFilterReads), float64(row.TotalReadsBefore)),
		constants.RetentionDecimals,
	)

	return row
}

// BuildTable normalizes every sample in order.
func BuildTable(samples []Sample) Table {
	table := make(Table, 0, len(samples))
	for _, s := range samples {
		table = append(table, Normalize(s.Name, s.Report))
	}

	return table
}

func countOrZero(v *fastplong.Count) int64 {
	if v == nil {
		return 0
	}

	n, ok := v.Int64()
	if !ok {
		return 0
	}

	return n
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}

func identity(v float64) float64 {
	return v
}

func toPercent(places int) func(float64) float64 {
	return func(v float64) float64 {
		return common.FractionToPercent(v, places)
	}
}
