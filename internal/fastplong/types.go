package fastplong

import (
	"bytes"
	"encoding/json"
	"math"
)

// Report is the subset of a fastplong JSON report that the aggregator reads.
// Every field is optional; a nil pointer means the key was absent (or held a
// value of the wrong JSON type).
type Report struct {
	Summary             *Summary         `json:"summary"`
	FilteringResult     *FilteringResult `json:"filtering_result"`
	ReadBeforeFiltering *ReadStats       `json:"read_before_filtering"`
	ReadAfterFiltering  *ReadStats       `json:"read_after_filtering"`

	// MismatchedFields lists the paths of values that were ignored: the first
	// value of the wrong JSON type, counters that are not whole numbers and
	// quality curves with a non-numeric element. Empty when the document
	// decoded cleanly.
	MismatchedFields []string `json:"-"`
}

// Summary holds the before/after filtering summaries.
type Summary struct {
	BeforeFiltering *FilteringSummary `json:"before_filtering"`
	AfterFiltering  *FilteringSummary `json:"after_filtering"`
}

// FilteringSummary is one side of the summary block.
type FilteringSummary struct {
	TotalReads     *Count   `json:"total_reads"`
	ReadMeanLength *float64 `json:"read_mean_length"`
	Q20Rate        *float64 `json:"q20_rate"`
	Q30Rate        *float64 `json:"q30_rate"`
	GCContent      *float64 `json:"gc_content"`
}

// FilteringResult counts reads per filter outcome.
type FilteringResult struct {
	PassedFilterReads *Count `json:"passed_filter_reads"`
	LowQualityReads   *Count `json:"low_quality_reads"`
	TooShortReads     *Count `json:"too_short_reads"`
	TooLongReads      *Count `json:"too_long_reads"`
}

// ReadStats is a read_before_filtering / read_after_filtering block.
type ReadStats struct {
	QualityCurves *QualityCurves `json:"quality_curves"`
}

// QualityCurves holds per-position quality curves.
type QualityCurves struct {
	Mean Curve `json:"mean"`
}

// Count is a read counter. Any JSON number is accepted; whole values such as
// 1000.0 or 1e3 convert to integers, anything else is rejected by Parse.
type Count float64

// Int64 returns the counter as an integer, false when it is not a whole
// number within int64 range.
func (c Count) Int64() (int64, bool) {
	f := float64(c)
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int64(f), true
}

// Curve is a per-position series. A curve with any element that is not a
// number (including null) is kept as invalid with no values, never with a
// zero in place of the bad element.
type Curve struct {
	Values  []float64
	invalid bool
}

// UnmarshalJSON decodes a JSON array of numbers. It never fails so that one
// bad curve does not abort decoding of the rest of the report.
func (c *Curve) UnmarshalJSON(data []byte) error {
	c.Values = nil
	c.invalid = false

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		c.invalid = true

		return nil
	}

	values := make([]float64, len(items))
	for i, item := range items {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			c.invalid = true

			return nil
		}

		if err := json.Unmarshal(item, &values[i]); err != nil {
			c.invalid = true

			return nil
		}
	}

	c.Values = values

	return nil
}

// Invalid reports whether the curve held a non-numeric element.
func (c Curve) Invalid() bool {
	return c.invalid
}

// Before returns the before-filtering summary, or an empty one.
func (r *Report) Before() *FilteringSummary {
	if r == nil || r.Summary == nil || r.Summary.BeforeFiltering == nil {
		return &FilteringSummary{}
	}

	return r.Summary.BeforeFiltering
}

// After returns the after-filtering summary, or an empty one.
func (r *Report) After() *FilteringSummary {
	if r == nil || r.Summary == nil || r.Summary.AfterFiltering == nil {
		return &FilteringSummary{}
	}

	return r.Summary.AfterFiltering
}

// Filtering returns the filtering result block, or an empty one.
func (r *Report) Filtering() *FilteringResult {
	if r == nil || r.FilteringResult == nil {
		return &FilteringResult{}
	}

	return r.FilteringResult
}

// MeanQualityCurve returns the after-filtering mean quality curve, falling
// back to the before-filtering one when the former is absent or empty.
func (r *Report) MeanQualityCurve() []float64 {
	if r == nil {
		return nil
	}

	if curve := r.ReadAfterFiltering.mean(); len(curve) > 0 {
		return curve
	}

	return r.ReadBeforeFiltering.mean()
}

func (s *ReadStats) mean() []float64 {
	if s == nil || s.QualityCurves == nil {
		return nil
	}

	return s.QualityCurves.Mean.Values
}
