package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ethpandaops/fastplong-multireport/constants"
	"github.com/ethpandaops/fastplong-multireport/internal/build"
	"github.com/ethpandaops/fastplong-multireport/internal/charts"
	"github.com/ethpandaops/fastplong-multireport/internal/common"
	"github.com/ethpandaops/fastplong-multireport/internal/config"
	"github.com/ethpandaops/fastplong-multireport/internal/discovery"
	"github.com/ethpandaops/fastplong-multireport/internal/export"
	"github.com/ethpandaops/fastplong-multireport/internal/loader"
	"github.com/ethpandaops/fastplong-multireport/internal/reports"
	"github.com/ethpandaops/fastplong-multireport/internal/sample"
)

var (
	// ErrNoReports is returned when discovery finds no report files.
	ErrNoReports = errors.New("no reports found")
	// ErrNothingLoaded is returned when every discovered report failed to load.
	ErrNothingLoaded = errors.New(constants.ErrNothingLoaded)
)

// DefaultTool implements the Tool interface.
type DefaultTool struct {
	config config.Config
	logger logrus.FieldLogger
	clock  common.Clock
	tracer trace.Tracer

	// Core components
	finder    ReportFinder
	loader    ReportLoader
	statsCalc sample.StatsCalculator
	reportGen reports.Generator
	exporter  export.Exporter
}

// NewTool creates a new aggregator working on fs.
func NewTool(cfg config.Config, fs afero.Fs, logger logrus.FieldLogger) (*DefaultTool, error) {
	tool := &DefaultTool{
		config: cfg,
		logger: logger.WithField("component", "core_tool"),
		clock:  common.SystemClock{},
		tracer: otel.Tracer(constants.TracerName),
	}

	if err := tool.initializeComponents(fs, logger); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	return tool, nil
}

// initializeComponents sets up all the tool's dependencies.
func (t *DefaultTool) initializeComponents(fs afero.Fs, logger logrus.FieldLogger) error {
	t.finder = discovery.NewFinder(fs, logger)
	t.loader = loader.NewLoader(fs, t.config.GetWorkers(), logger)
	t.statsCalc = sample.NewStatsCalculator(t.config.GetOutlierThreshold())
	t.exporter = export.NewFileExporter(fs, logger)

	renderer := charts.NewSVGRenderer(t.config.GetChartWidth(), t.config.GetChartHeight(), logger)

	gen, err := reports.NewGenerator(fs, renderer, logger)
	if err != nil {
		return fmt.Errorf("failed to create report generator: %w", err)
	}

	t.reportGen = gen

	return nil
}

// Run discovers, loads, normalizes and renders the reports under the
// configured results directory, then writes any requested exports.
func (t *DefaultTool) Run(ctx context.Context) (*Result, error) {
	ctx, span := t.tracer.Start(ctx, "aggregate")
	defer span.End()

	result, err := t.run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	return result, nil
}

func (t *DefaultTool) run(ctx context.Context) (*Result, error) {
	dir := t.config.GetResultsDir()
	result := &Result{
		RunID:      uuid.NewString(),
		OutputPath: t.config.GetOutputPath(),
	}

	log := t.logger.WithField("run_id", result.RunID)

	paths, err := t.discover(ctx, dir)
	if err != nil {
		return nil, err
	}

	result.Files = len(paths)
	log.WithFields(logrus.Fields{"dir": dir, "files": len(paths)}).Info("Found fastplong reports")

	collection, err := t.load(ctx, paths)
	if err != nil {
		return nil, err
	}

	samples := collection.Samples()
	table := sample.BuildTable(samples)

	curves, err := sample.BuildCurves(samples, t.config.GetMaxCurvePoints())
	if err != nil {
		return nil, fmt.Errorf("failed to build quality curves: %w", err)
	}

	result.Samples = len(table)
	result.Curves = len(curves)

	meta := reports.Metadata{
		Title:       t.config.GetTitle(),
		Version:     build.Short(),
		RunID:       result.RunID,
		ResultsDir:  dir,
		GeneratedAt: t.clock.Now(),
	}

	stats := t.statsCalc.CalculateCohortStats(table)
	result.Outliers = len(stats.Outliers)

	if err := t.render(ctx, table, curves, stats, meta); err != nil {
		return nil, err
	}

	exports, err := t.export(ctx, meta, table, stats)
	result.Exports = exports

	if err != nil {
		return result, err
	}

	log.WithFields(logrus.Fields{
		"output":   result.OutputPath,
		"samples":  result.Samples,
		"outliers": result.Outliers,
	}).Info("Report written")

	return result, nil
}

func (t *DefaultTool) discover(ctx context.Context, dir string) ([]string, error) {
	_, span := t.tracer.Start(ctx, "discover")
	defer span.End()

	paths, err := t.finder.Find(dir, t.config.IsRecursive())
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("reports.found", len(paths)))

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: "+constants.ErrNoReports, ErrNoReports, dir)
	}

	return paths, nil
}

func (t *DefaultTool) load(ctx context.Context, paths []string) (*sample.Collection, error) {
	ctx, span := t.tracer.Start(ctx, "load")
	defer span.End()

	collection, err := t.loader.Load(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}

	span.SetAttributes(
		attribute.Int("reports.files", len(paths)),
		attribute.Int("reports.loaded", collection.Len()),
	)

	if collection.Len() == 0 {
		return nil, ErrNothingLoaded
	}

	return collection, nil
}

func (t *DefaultTool) render(ctx context.Context, table sample.Table, curves []sample.QualityCurve, stats sample.CohortStats, meta reports.Metadata) error {
	_, span := t.tracer.Start(ctx, "render")
	defer span.End()

	span.SetAttributes(
		attribute.Int("report.samples", len(table)),
		attribute.Int("report.curves", len(curves)),
	)

	if err := t.reportGen.WriteReport(t.config.GetOutputPath(), table, curves, stats, meta); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// export writes the optional side outputs and returns the paths written.
func (t *DefaultTool) export(ctx context.Context, meta reports.Metadata, table sample.Table, stats sample.CohortStats) ([]string, error) {
	ctx, span := t.tracer.Start(ctx, "export")
	defer span.End()

	run := export.Run{
		ID:          meta.RunID,
		Title:       meta.Title,
		ResultsDir:  meta.ResultsDir,
		Version:     meta.Version,
		GeneratedAt: meta.GeneratedAt,
	}

	var written []string

	if path := t.config.GetExportTSV(); path != "" {
		if err := t.exporter.ExportTSV(path, table); err != nil {
			return written, fmt.Errorf("failed to export TSV: %w", err)
		}

		written = append(written, path)
	}

	if path := t.config.GetExportJSON(); path != "" {
		if err := t.exporter.ExportJSON(path, run, table, stats); err != nil {
			return written, fmt.Errorf("failed to export JSON: %w", err)
		}

		written = append(written, path)
	}

	if path := t.config.GetExportSQLite(); path != "" {
		if err := t.exporter.ExportSQLite(ctx, path, run, table, stats); err != nil {
			return written, fmt.Errorf("failed to export SQLite: %w", err)
		}

		written = append(written, path)
	}

	span.SetAttributes(attribute.Int("exports.written", len(written)))

	return written, nil
}

// GetLogger returns the tool's logger.
func (t *DefaultTool) GetLogger() logrus.FieldLogger {
	return t.logger
}

// GetConfig returns the tool's configuration.
func (t *DefaultTool) GetConfig() Config {
	return t.config
}

// SetClock allows injecting a fixed clock (for testing).
func (t *DefaultTool) SetClock(clock common.Clock) {
	t.clock = clock
}
