package sections

import (
	"html/template"

	"github.com/ethpandaops/fastplong-multireport/internal/charts"
	"github.com/ethpandaops/fastplong-multireport/internal/sample"
)

// Input is everything a section may draw from.
type Input struct {
	Table  sample.Table
	Curves []sample.QualityCurve
	Stats  sample.CohortStats
}

// Section is one emitted part of the report: a title, an anchor for
// navigation and its content.
type Section struct {
	Title   string
	Anchor  string
	Content Content
}

// Content holds whatever a section shows. Unused parts stay empty.
type Content struct {
	Description string
	Figure      template.HTML
	Table       *TableView
	Legend      []LegendEntry
	Notes       []string
}

// TableView is a pre-formatted HTML table.
type TableView struct {
	Columns []string
	Rows    []RowView
}

// RowView is one table row; Flagged marks cohort outliers.
type RowView struct {
	Sample  string
	Cells   []string
	Flagged bool
}

// LegendEntry pairs a curve with the colour and SVG dash pattern it is drawn
// in. An empty Dash is a solid line.
type LegendEntry struct {
	Name  string
	Color string
	Dash  string
}

// Builder produces one section. Build returns nil when its inputs are empty
// and the section should be left out.
type Builder interface {
	Anchor() string
	Title() string
	Build(in Input, renderer charts.Renderer) (*Section, error)
}

// Manager defines the interface for the ordered section registry
type Manager interface {
	RegisterBuilder(builder Builder) error
	Build(in Input) ([]Section, error)
}
