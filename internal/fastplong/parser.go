package fastplong

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrEmptyDocument is returned for empty or whitespace-only input.
	ErrEmptyDocument = errors.New("empty document")

	// ErrNotObject is returned when the top-level JSON value is not an object.
	ErrNotObject = errors.New("top-level JSON value is not an object")
)

// Parse decodes a fastplong report. Syntax errors and non-object documents
// fail; values of the wrong type are dropped and recorded in MismatchedFields.
func Parse(data []byte) (*Report, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyDocument
	}

	if trimmed[0] != '{' {
		return nil, ErrNotObject
	}

	report := &Report{}

	if err := json.Unmarshal(trimmed, report); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}

		// Only the first type error is reported; the value may have been
		// left allocated as zero, which reads the same as missing.
		report.MismatchedFields = append(report.MismatchedFields, typeErr.Field)
	}

	report.dropInvalidCounts()
	report.dropInvalidCurves()

	return report, nil
}

// dropInvalidCounts clears counters that are not whole numbers.
func (r *Report) dropInvalidCounts() {
	counts := []struct {
		path  string
		value **Count
	}{
		{"summary.before_filtering.total_reads", &r.Before().TotalReads},
		{"summary.after_filtering.total_reads", &r.After().TotalReads},
		{"filtering_result.passed_filter_reads", &r.Filtering().PassedFilterReads},
		{"filtering_result.low_quality_reads", &r.Filtering().LowQualityReads},
		{"filtering_result.too_short_reads", &r.Filtering().TooShortReads},
		{"filtering_result.too_long_reads", &r.Filtering().TooLongReads},
	}

	for _, c := range counts {
		if *c.value == nil {
			continue
		}

		if _, ok := (*c.value).Int64(); !ok {
			*c.value = nil
			r.MismatchedFields = append(r.MismatchedFields, c.path)
		}
	}
}

// dropInvalidCurves discards curves that had a non-numeric element, so the
// before-filtering fallback applies instead of a plotted zero.
func (r *Report) dropInvalidCurves() {
	curves := []struct {
		path  string
		stats *ReadStats
	}{
		{"read_after_filtering.quality_curves.mean", r.ReadAfterFiltering},
		{"read_before_filtering.quality_curves.mean", r.ReadBeforeFiltering},
	}

	for _, c := range curves {
		if c.stats == nil || c.stats.QualityCurves == nil || !c.stats.QualityCurves.Mean.Invalid() {
			continue
		}

		c.stats.QualityCurves = nil
		r.MismatchedFields = append(r.MismatchedFields, c.path)
	}
}
