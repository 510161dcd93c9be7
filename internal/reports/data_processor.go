package reports

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/fastplong-multireport/constants"
	"github.com/ethpandaops/fastplong-multireport/internal/sample"
	"github.com/ethpandaops/fastplong-multireport/internal/sections"
)

// DefaultDataProcessor implements the DataProcessor interface
type DefaultDataProcessor struct {
	logger logrus.FieldLogger
}

// NewDefaultDataProcessor creates a new data processor
func NewDefaultDataProcessor(logger logrus.FieldLogger) *DefaultDataProcessor {
	return &DefaultDataProcessor{
		logger: logger.WithField("component", "data_processor"),
	}
}

// FormatForTemplate formats the report data for template rendering
func (dp *DefaultDataProcessor) FormatForTemplate(in sections.Input, built []sections.Section, meta Metadata) (*TemplateData, error) {
	if in.Table.Empty() {
		return nil, ErrEmptyTable
	}

	nav := make([]NavLink, len(built))
	for i, s := range built {
		nav[i] = NavLink{Anchor: s.Anchor, Title: s.Title}
	}

	data := &TemplateData{
		Meta:        meta,
		SampleCount: len(in.Table),
		Cards:       dp.buildCards(in),
		Nav:         nav,
		Sections:    built,
		Data:        dp.BuildDataIsland(in, meta),
	}

	dp.logger.WithFields(logrus.Fields{
		"samples":  data.SampleCount,
		"sections": len(built),
	}).Debug("Formatted template data")

	return data, nil
}

// BuildDataIsland collects the machine-readable copy of the report
func (dp *DefaultDataProcessor) BuildDataIsland(in sections.Input, meta Metadata) DataIsland {
	curves := in.Curves
	if curves == nil {
		curves = []sample.QualityCurve{}
	}

	return DataIsland{
		Tool:        constants.ToolName,
		Version:     meta.Version,
		RunID:       meta.RunID,
		Title:       meta.Title,
		GeneratedAt: meta.GeneratedAt,
		Columns:     sample.TableColumns,
		Samples:     in.Table,
		Curves:      curves,
		Stats:       in.Stats,
	}
}

// buildCards derives the header figures from the cohort statistics
func (dp *DefaultDataProcessor) buildCards(in sections.Input) []Card {
	stats := in.Stats

	cards := []Card{
		{Label: "Samples", Value: humanize.Comma(int64(stats.Samples))},
		{Label: "Reads before filtering", Value: humanize.Comma(stats.TotalReadsBefore)},
		{Label: "Reads after filtering", Value: humanize.Comma(stats.TotalReadsAfter)},
	}

	metricCards := []struct {
		metric string
		label  string
		unit   string
	}{
		{sample.MetricRetention, "Median retention", "%"},
		{sample.MetricMeanLength, "Median mean length", " bp"},
		{sample.MetricQ30, "Median Q30", "%"},
	}

	for _, mc := range metricCards {
		m, ok := stats.Metric(mc.metric)
		if !ok {
			continue
		}

		cards = append(cards, Card{
			Label: mc.label,
			Value: humanize.CommafWithDigits(m.Median, 1) + mc.unit,
			Hint: fmt.Sprintf("range %s to %s",
				humanize.CommafWithDigits(m.Min, 1), humanize.CommafWithDigits(m.Max, 1)),
		})
	}

	if n := len(stats.Outliers); n > 0 {
		cards = append(cards, Card{
			Label: "Outlier flags",
			Value: humanize.Comma(int64(n)),
			Hint:  "see the length vs quality section",
		})
	}

	return cards
}
