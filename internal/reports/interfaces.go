package reports

import (
	"html/template"
	"time"

	"github.com/ethpandaops/fastplong-multireport/internal/sample"
	"github.com/ethpandaops/fastplong-multireport/internal/sections"
)

// Generator defines the interface for report generation
type Generator interface {
	Generate(table sample.Table, curves []sample.QualityCurve, stats sample.CohortStats, meta Metadata) ([]byte, error)
	WriteReport(path string, table sample.Table, curves []sample.QualityCurve, stats sample.CohortStats, meta Metadata) error
}

// TemplateManager defines the interface for template management
type TemplateManager interface {
	LoadTemplates() error
	RenderReport(data interface{}) (string, error)
	Stylesheet() template.CSS
	Script() template.JS
}

// FileManager defines the interface for file operations
type FileManager interface {
	WriteAtomic(filename string, data []byte) error
	SaveJSON(filename string, data interface{}) error
}

// DataProcessor defines the interface for shaping report data for the template
type DataProcessor interface {
	FormatForTemplate(in sections.Input, built []sections.Section, meta Metadata) (*TemplateData, error)
	BuildDataIsland(in sections.Input, meta Metadata) DataIsland
}

// Metadata describes one aggregation run
type Metadata struct {
	Title       string
	Version     string
	RunID       string
	ResultsDir  string
	GeneratedAt time.Time
}

// Card is one headline figure in the report header
type Card struct {
	Label string
	Value string
	Hint  string
}

// NavLink points at an emitted section
type NavLink struct {
	Anchor string
	Title  string
}

// TemplateData is everything report.html renders
type TemplateData struct {
	Meta        Metadata
	SampleCount int
	Cards       []Card
	Nav         []NavLink
	Sections    []sections.Section
	Data        DataIsland
	Stylesheet  template.CSS
	Script      template.JS
}

// DataIsland is the machine-readable copy of the report embedded in the HTML
type DataIsland struct {
	Tool        string                `json:"tool"`
	Version     string                `json:"version"`
	RunID       string                `json:"run_id"`
	Title       string                `json:"title"`
	GeneratedAt time.Time             `json:"generated_at"`
	Columns     []string              `json:"columns"`
	Samples     sample.Table          `json:"samples"`
	Curves      []sample.QualityCurve `json:"curves"`
	Stats       sample.CohortStats    `json:"stats"`
}
