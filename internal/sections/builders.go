package sections

import (
	"fmt"
	"html/template"

	"github.com/ethpandaops/fastplong-multireport/constants"
	"github.com/ethpandaops/fastplong-multireport/internal/charts"
	"github.com/ethpandaops/fastplong-multireport/internal/sample"
)

// SummaryTableBuilder emits the full summary table.
type SummaryTableBuilder struct{}

func (SummaryTableBuilder) Anchor() string { return constants.SectionSummaryTable }
func (SummaryTableBuilder) Title() string  { return "Summary" }

func (SummaryTableBuilder) Build(in Input, _ charts.Renderer) (*Section, error) {
	if in.Table.Empty() {
		return nil, nil
	}

	view := &TableView{
		Columns: sample.TableColumns,
		Rows:    make([]RowView, len(in.Table)),
	}

	for i, row := range in.Table {
		view.Rows[i] = RowView{
			Sample:  row.Sample,
			Cells:   row.Cells(),
			Flagged: in.Stats.IsOutlier(row.Sample),
		}
	}

	return &Section{Content: Content{Table: view}}, nil
}

// QualityCurveBuilder overlays the per-sample mean quality curves.
type QualityCurveBuilder struct{}

func (QualityCurveBuilder) Anchor() string { return constants.SectionQualityCurve }
func (QualityCurveBuilder) Title() string  { return "Quality by position" }

func (QualityCurveBuilder) Build(in Input, renderer charts.Renderer) (*Section, error) {
	if len(in.Curves) == 0 {
		return nil, nil
	}

	series := make([]charts.Series, len(in.Curves))
	legend := make([]LegendEntry, len(in.Curves))

	for i, curve := range in.Curves {
		x := make([]float64, len(curve.Positions))
		for j, pos := range curve.Positions {
			x[j] = float64(pos)
		}

		series[i] = charts.Series{Name: curve.Sample, X: x, Y: curve.Values}
		legend[i] = LegendEntry{Name: curve.Sample, Color: charts.SeriesColor(i), Dash: charts.SeriesDash(i)}
	}

	svg, err := renderer.Lines("Position in read (bp)", "Mean quality", series)
	if err != nil {
		return nil, err
	}

	return &Section{Content: Content{
		Description: "Mean base quality per read position, after filtering where available. Hover a curve to identify its sample.",
		Figure:      template.HTML(svg), //nolint:gosec // rendered SVG
		Legend:      legend,
	}}, nil
}

// ReadCountsBuilder compares reads before and after filtering.
type ReadCountsBuilder struct{}

func (ReadCountsBuilder) Anchor() string { return constants.SectionReadCounts }
func (ReadCountsBuilder) Title() string  { return "Read counts" }

func (ReadCountsBuilder) Build(in Input, renderer charts.Renderer) (*Section, error) {
	if in.Table.Empty() {
		return nil, nil
	}

	svg, err := renderer.GroupedBars("Reads", in.Table.Samples(), []charts.Group{
		{Name: "before filtering", Values: in.Table.Column(func(r sample.SummaryRow) float64 { return float64(r.TotalReadsBefore) })},
		{Name: "after filtering", Values: in.Table.Column(func(r sample.SummaryRow) float64 { return float64(r.TotalReadsAfter) })},
	})
	if err != nil {
		return nil, err
	}

	return figure(svg), nil
}

// RetentionBuilder shows the percentage of reads kept per sample.
type RetentionBuilder struct{}

func (RetentionBuilder) Anchor() string { return constants.SectionRetention }
func (RetentionBuilder) Title() string  { return "Retention rate" }

func (RetentionBuilder) Build(in Input, renderer charts.Renderer) (*Section, error) {
	if in.Table.Empty() {
		return nil, nil
	}

	svg, err := renderer.Bars(constants.ColumnRetention, in.Table.Samples(),
		in.Table.Column(func(r sample.SummaryRow) float64 { return r.RetentionPercent }))
	if err != nil {
		return nil, err
	}

	return figure(svg), nil
}

// MeanLengthBuilder shows the mean read length per sample.
type MeanLengthBuilder struct{}

func (MeanLengthBuilder) Anchor() string { return constants.SectionMeanLength }
func (MeanLengthBuilder) Title() string  { return "Mean read length" }

func (MeanLengthBuilder) Build(in Input, renderer charts.Renderer) (*Section, error) {
	if in.Table.Empty() {
		return nil, nil
	}

	svg, err := renderer.Bars(constants.ColumnMeanLength, in.Table.Samples(),
		in.Table.Column(func(r sample.SummaryRow) float64 { return r.MeanLengthBp }))
	if err != nil {
		return nil, err
	}

	return figure(svg), nil
}

// QualityRatesBuilder groups the Q20 and Q30 rates per sample.
type QualityRatesBuilder struct{}

func (QualityRatesBuilder) Anchor() string { return constants.SectionQualityRates }
func (QualityRatesBuilder) Title() string  { return "Q20/Q30 rates" }

func (QualityRatesBuilder) Build(in Input, renderer charts.Renderer) (*Section, error) {
	if in.Table.Empty() {
		return nil, nil
	}

	svg, err := renderer.GroupedBars("Rate (%)", in.Table.Samples(), []charts.Group{
		{Name: "Q20", Values: in.Table.Column(func(r sample.SummaryRow) float64 { return r.Q20RatePercent })},
		{Name: "Q30", Values: in.Table.Column(func(r sample.SummaryRow) float64 { return r.Q30RatePercent })},
	})
	if err != nil {
		return nil, err
	}

	return figure(svg), nil
}

// ScatterBuilder plots mean length against Q30 rate to expose batch effects.
type ScatterBuilder struct{}

func (ScatterBuilder) Anchor() string { return constants.SectionScatter }
func (ScatterBuilder) Title() string  { return "Length vs quality (batch effect)" }

func (ScatterBuilder) Build(in Input, renderer charts.Renderer) (*Section, error) {
	if in.Table.Empty() {
		return nil, nil
	}

	points := make([]charts.Point, len(in.Table))
	for i, row := range in.Table {
		points[i] = charts.Point{
			Label:     row.Sample,
			X:         row.MeanLengthBp,
			Y:         row.Q30RatePercent,
			Highlight: in.Stats.IsOutlier(row.Sample),
		}
	}

	svg, err := renderer.Scatter(constants.ColumnMeanLength, constants.ColumnQ30Rate, points)
	if err != nil {
		return nil, err
	}

	section := figure(svg)
	section.Content.Description = "Samples far from the cohort on either axis are highlighted."

	for _, o := range in.Stats.Outliers {
		section.Content.Notes = append(section.Content.Notes,
			fmt.Sprintf("%s: %s = %g (z = %.2f)", o.Sample, o.Metric, o.Value, o.ZScore))
	}

	return section, nil
}

// FilteringBuilder stacks the filtering outcome of every read per sample.
type FilteringBuilder struct{}

func (FilteringBuilder) Anchor() string { return constants.SectionFiltering }
func (FilteringBuilder) Title() string  { return "Filtering breakdown" }

func (FilteringBuilder) Build(in Input, renderer charts.Renderer) (*Section, error) {
	if in.Table.Empty() {
		return nil, nil
	}

	count := func(f func(sample.SummaryRow) int64) []float64 {
		return in.Table.Column(func(r sample.SummaryRow) float64 { return float64(f(r)) })
	}

	svg, err := renderer.StackedBars("Reads", in.Table.Samples(), []charts.Group{
		{Name: "passed", Values: count(func(r sample.SummaryRow) int64 { return r.PassedFilterReads })},
		{Name: "low quality", Values: count(func(r sample.SummaryRow) int64 { return r.LowQualityReads })},
		{Name: "too short", Values: count(func(r sample.SummaryRow) int64 { return r.TooShortReads })},
		{Name: "too long", Values: count(func(r sample.SummaryRow) int64 { return r.TooLongReads })},
	})
	if err != nil {
		return nil, err
	}

	return figure(svg), nil
}

func figure(svg string) *Section {
	return &Section{Content: Content{
		Figure: template.HTML(svg), //nolint:gosec // rendered SVG
	}}
}
