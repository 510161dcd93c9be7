package sections

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/fastplong-multireport/constants"
	"github.com/ethpandaops/fastplong-multireport/internal/charts"
	"github.com/ethpandaops/fastplong-multireport/internal/sample"
)

// MockRenderer records chart requests and returns a placeholder figure
type MockRenderer struct {
	calls []string
	err   error
}

func (m *MockRenderer) Lines(_, _ string, series []charts.Series) (string, error) {
	m.calls = append(m.calls, "lines")
	if len(series) == 0 {
		return "", charts.ErrNoData
	}

	return "<svg>lines</svg>", m.err
}

func (m *MockRenderer) Bars(string, []string, []float64) (string, error) {
	m.calls = append(m.calls, "bars")
	return "<svg>bars</svg>", m.err
}

func (m *MockRenderer) GroupedBars(string, []string, []charts.Group) (string, error) {
	m.calls = append(m.calls, "grouped")
	return "<svg>grouped</svg>", m.err
}

func (m *MockRenderer) StackedBars(string, []string, []charts.Group) (string, error) {
	m.calls = append(m.calls, "stacked")
	return "<svg>stacked</svg>", m.err
}

func (m *MockRenderer) Scatter(string, string, []charts.Point) (string, error) {
	m.calls = append(m.calls, "scatter")
	return "<svg>scatter</svg>", m.err
}

// MockBuilder for registry tests
type MockBuilder struct {
	anchor  string
	section *Section
	err     error
}

func (m MockBuilder) Anchor() string { return m.anchor }
func (m MockBuilder) Title() string  { return "Mock " + m.anchor }
func (m MockBuilder) Build(Input, charts.Renderer) (*Section, error) {
	return m.section, m.err
}

func newTestManager(renderer charts.Renderer) *DefaultManager {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	return NewManager(renderer, logger)
}

func testInput() Input {
	return Input{
		Table: sample.Table{
			{Sample: "s1", TotalReadsBefore: 100, TotalReadsAfter: 90, MeanLengthBp: 5000, Q30RatePercent: 80},
			{Sample: "s2", TotalReadsBefore: 200, TotalReadsAfter: 150, MeanLengthBp: 5100, Q30RatePercent: 81},
		},
		Curves: []sample.QualityCurve{
			{Sample: "s1", Positions: []int{0, 1}, Values: []float64{30, 31}, SourceLength: 2},
		},
	}
}

func TestRegisterBuilder(t *testing.T) {
	manager := newTestManager(&MockRenderer{})

	if err := manager.RegisterBuilder(MockBuilder{anchor: "a"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := manager.RegisterBuilder(MockBuilder{anchor: "a"}); err == nil {
		t.Error("Expected error for duplicate anchor")
	}

	if err := manager.RegisterBuilder(MockBuilder{}); err == nil {
		t.Error("Expected error for empty anchor")
	}

	if len(manager.order) != 1 || manager.order[0] != "a" {
		t.Errorf("Expected only builder a to be registered, got %v", manager.order)
	}
}

func TestDefaultSectionOrder(t *testing.T) {
	manager := newTestManager(&MockRenderer{})
	if err := manager.RegisterDefaultBuilders(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out, err := manager.Build(testInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	anchors := make([]string, len(out))
	for i, s := range out {
		anchors[i] = s.Anchor
	}

	expected := []string{
		constants.SectionSummaryTable,
		constants.SectionQualityCurve,
		constants.SectionReadCounts,
		constants.SectionRetention,
		constants.SectionMeanLength,
		constants.SectionQualityRates,
		constants.SectionScatter,
		constants.SectionFiltering,
	}
	if !reflect.DeepEqual(anchors, expected) {
		t.Errorf("Expected %v, got %v", expected, anchors)
	}

	for _, s := range out {
		if s.Title == "" {
			t.Errorf("Expected title for section %s", s.Anchor)
		}
	}
}

func TestCurveSectionOmittedWithoutCurves(t *testing.T) {
	manager := newTestManager(&MockRenderer{})
	if err := manager.RegisterDefaultBuilders(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	in := testInput()
	in.Curves = nil

	out, err := manager.Build(in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(out) != 7 {
		t.Fatalf("Expected 7 sections, got %d", len(out))
	}

	for _, s := range out {
		if s.Anchor == constants.SectionQualityCurve {
			t.Error("Expected quality curve section to be omitted")
		}
	}
}

func TestBuildNoDataIsOmission(t *testing.T) {
	manager := newTestManager(&MockRenderer{})
	_ = manager.RegisterBuilder(MockBuilder{anchor: "empty", err: charts.ErrNoData})
	_ = manager.RegisterBuilder(MockBuilder{anchor: "full", section: &Section{}})

	out, err := manager.Build(Input{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(out) != 1 || out[0].Anchor != "full" || out[0].Title != "Mock full" {
		t.Errorf("Expected only the full section with default title, got %+v", out)
	}
}

func TestBuildFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	manager := newTestManager(&MockRenderer{err: boom})
	if err := manager.RegisterDefaultBuilders(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err := manager.Build(testInput())
	if !errors.Is(err, boom) {
		t.Errorf("Expected renderer error, got %v", err)
	}
}

func TestSummaryTableFlagsOutliers(t *testing.T) {
	in := testInput()
	in.Stats = sample.CohortStats{Outliers: []sample.Outlier{{Sample: "s2", Metric: sample.MetricQ30}}}

	section, err := SummaryTableBuilder{}.Build(in, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	rows := section.Content.Table.Rows
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	if rows[0].Flagged || !rows[1].Flagged {
		t.Errorf("Expected only s2 flagged, got %v/%v", rows[0].Flagged, rows[1].Flagged)
	}

	if len(rows[0].Cells) != len(section.Content.Table.Columns) {
		t.Errorf("Expected %d cells, got %d", len(section.Content.Table.Columns), len(rows[0].Cells))
	}
}

func TestQualityCurveLegend(t *testing.T) {
	in := testInput()
	in.Curves = append(in.Curves, sample.QualityCurve{Sample: "s2", Positions: []int{0}, Values: []float64{20}})

	section, err := QualityCurveBuilder{}.Build(in, &MockRenderer{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	legend := section.Content.Legend
	if len(legend) != 2 || legend[0].Name != "s1" || legend[1].Name != "s2" {
		t.Errorf("Expected legend [s1 s2], got %+v", legend)
	}

	if legend[0].Color == legend[1].Color {
		t.Error("Expected distinct legend colours")
	}
}

func TestQualityCurveLegendDistinguishesColourCycles(t *testing.T) {
	in := testInput()
	in.Curves = nil

	for i := 0; i < 9; i++ {
		in.Curves = append(in.Curves, sample.QualityCurve{
			Sample:    fmt.Sprintf("s%d", i),
			Positions: []int{0},
			Values:    []float64{20},
		})
	}

	section, err := QualityCurveBuilder{}.Build(in, &MockRenderer{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	legend := section.Content.Legend
	if len(legend) != 9 {
		t.Fatalf("Expected 9 legend entries, got %d", len(legend))
	}

	if legend[0].Color != legend[7].Color {
		t.Errorf("Expected colours to cycle, got %s and %s", legend[0].Color, legend[7].Color)
	}

	if legend[0].Dash == legend[7].Dash {
		t.Errorf("Expected entries 0 and 7 to differ by dash, both %q", legend[0].Dash)
	}
}

func TestScatterNotesListOutliers(t *testing.T) {
	in := testInput()
	in.Stats = sample.CohortStats{Outliers: []sample.Outlier{
		{Sample: "s2", Metric: sample.MetricMeanLength, Value: 5100, ZScore: 2.5},
	}}

	section, err := ScatterBuilder{}.Build(in, &MockRenderer{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(section.Content.Notes) != 1 {
		t.Fatalf("Expected 1 note, got %d", len(section.Content.Notes))
	}

	expected := "s2: mean_length_bp = 5100 (z = 2.50)"
	if section.Content.Notes[0] != expected {
		t.Errorf("Expected %q, got %q", expected, section.Content.Notes[0])
	}
}
