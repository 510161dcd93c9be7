package reports

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/ethpandaops/fastplong-multireport/internal/charts"
	"github.com/ethpandaops/fastplong-multireport/internal/reports/templates"
	"github.com/ethpandaops/fastplong-multireport/internal/sample"
	"github.com/ethpandaops/fastplong-multireport/internal/sections"
)

// ErrEmptyTable is returned when there is no sample to report on.
var ErrEmptyTable = errors.New("summary table is empty")

// DefaultGenerator implements the Generator interface
type DefaultGenerator struct {
	templateManager TemplateManager
	fileManager     FileManager
	dataProcessor   DataProcessor
	sectionManager  sections.Manager
	logger          logrus.FieldLogger
}

// NewGenerator creates a new report generator writing to fs and drawing
// figures with renderer
func NewGenerator(fs afero.Fs, renderer charts.Renderer, logger logrus.FieldLogger) (*DefaultGenerator, error) {
	templateManager := templates.NewManager(logger)

	if err := templateManager.LoadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	sectionManager := sections.NewManager(renderer, logger)
	if err := sectionManager.RegisterDefaultBuilders(); err != nil {
		return nil, fmt.Errorf("failed to register sections: %w", err)
	}

	return &DefaultGenerator{
		templateManager: templateManager,
		fileManager:     NewDefaultFileManager(fs, logger),
		dataProcessor:   NewDefaultDataProcessor(logger),
		sectionManager:  sectionManager,
		logger:          logger.WithField("component", "report_generator"),
	}, nil
}

// Generate renders the complete HTML document in memory
func (g *DefaultGenerator) Generate(table sample.Table, curves []sample.QualityCurve, stats sample.CohortStats, meta Metadata) ([]byte, error) {
	if table.Empty() {
		return nil, ErrEmptyTable
	}

	in := sections.Input{
		Table:  table,
		Curves: curves,
		Stats:  stats,
	}

	built, err := g.sectionManager.Build(in)
	if err != nil {
		return nil, fmt.Errorf("failed to build sections: %w", err)
	}

	templateData, err := g.dataProcessor.FormatForTemplate(in, built, meta)
	if err != nil {
		return nil, fmt.Errorf("failed to format data for template: %w", err)
	}

	templateData.Stylesheet = g.templateManager.Stylesheet()
	templateData.Script = g.templateManager.Script()

	htmlContent, err := g.templateManager.RenderReport(templateData)
	if err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	g.logger.WithFields(logrus.Fields{
		"samples":  len(table),
		"curves":   len(curves),
		"sections": len(built),
		"outliers": len(in.Stats.Outliers),
	}).Debug("Report rendered")

	return []byte(htmlContent), nil
}

// WriteReport renders the document and writes it atomically to path. Nothing
// is written when rendering fails.
func (g *DefaultGenerator) WriteReport(path string, table sample.Table, curves []sample.QualityCurve, stats sample.CohortStats, meta Metadata) error {
	content, err := g.Generate(table, curves, stats, meta)
	if err != nil {
		return err
	}

	if err := g.fileManager.WriteAtomic(path, content); err != nil {
		return fmt.Errorf("failed to save HTML report: %w", err)
	}

	g.logger.WithFields(logrus.Fields{
		"output":  path,
		"samples": len(table),
	}).Info("HTML report generated successfully")

	return nil
}

// SetTemplateManager allows injecting a different template manager (for testing)
func (g *DefaultGenerator) SetTemplateManager(tm TemplateManager) {
	g.templateManager = tm
}

// SetFileManager allows injecting a different file manager (for testing)
func (g *DefaultGenerator) SetFileManager(fm FileManager) {
	g.fileManager = fm
}

// SetDataProcessor allows injecting a different data processor (for testing)
func (g *DefaultGenerator) SetDataProcessor(dp DataProcessor) {
	g.dataProcessor = dp
}

// SetSectionManager allows injecting a different section manager (for testing)
func (g *DefaultGenerator) SetSectionManager(sm sections.Manager) {
	g.sectionManager = sm
}
