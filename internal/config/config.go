package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/fastplong-multireport/constants"
)

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultConfig implements the Config interface.
type DefaultConfig struct {
	// Input and output
	resultsDir string
	outputPath string
	recursive  bool
	title      string

	// Processing settings
	maxCurvePoints   int
	workers          int
	outlierThreshold float64

	// Chart settings
	chartWidth  float64
	chartHeight float64

	// Export settings
	exportTSV    string
	exportJSON   string
	exportSQLite string

	logLevel string
}

// NewDefaultConfig creates a new configuration with default values.
func NewDefaultConfig() *DefaultConfig {
	return &DefaultConfig{
		recursive:        true,
		title:            constants.DefaultTitle,
		maxCurvePoints:   constants.DefaultMaxCurvePoints,
		workers:          constants.DefaultWorkers,
		outlierThreshold: constants.DefaultOutlierThreshold,
		chartWidth:       constants.DefaultChartWidthIn,
		chartHeight:      constants.DefaultChartHeightIn,
		logLevel:         constants.DefaultLogLevel,
	}
}

// GetResultsDir returns the directory searched for reports.
func (c *DefaultConfig) GetResultsDir() string {
	return c.resultsDir
}

// GetOutputPath returns the HTML output path, defaulting to a file inside the
// results directory.
func (c *DefaultConfig) GetOutputPath() string {
	if c.outputPath != "" {
		return c.outputPath
	}

	return filepath.Join(c.resultsDir, constants.DefaultOutputFile)
}

// IsRecursive returns whether subdirectories are searched.
func (c *DefaultConfig) IsRecursive() bool {
	return c.recursive
}

// GetTitle returns the report title.
func (c *DefaultConfig) GetTitle() string {
	return c.title
}

// GetMaxCurvePoints returns the per-curve point budget.
func (c *DefaultConfig) GetMaxCurvePoints() int {
	return c.maxCurvePoints
}

// GetWorkers returns the number of concurrent report parsers.
func (c *DefaultConfig) GetWorkers() int {
	return c.workers
}

// GetOutlierThreshold returns the z-score above which samples are flagged.
func (c *DefaultConfig) GetOutlierThreshold() float64 {
	return c.outlierThreshold
}

// GetChartWidth returns the figure width in inches.
func (c *DefaultConfig) GetChartWidth() float64 {
	return c.chartWidth
}

// GetChartHeight returns the figure height in inches.
func (c *DefaultConfig) GetChartHeight() float64 {
	return c.chartHeight
}

// GetLogLevel returns the log level name.
func (c *DefaultConfig) GetLogLevel() string {
	return c.logLevel
}

// GetExportTSV returns the TSV export path, empty when disabled.
func (c *DefaultConfig) GetExportTSV() string {
	return c.exportTSV
}

// GetExportJSON returns the JSON export path, empty when disabled.
func (c *DefaultConfig) GetExportJSON() string {
	return c.exportJSON
}

// GetExportSQLite returns the SQLite export path, empty when disabled.
func (c *DefaultConfig) GetExportSQLite() string {
	return c.exportSQLite
}

// SetResultsDir sets the results directory.
func (c *DefaultConfig) SetResultsDir(dir string) {
	c.resultsDir = dir
}

// SetOutputPath sets the HTML output path.
func (c *DefaultConfig) SetOutputPath(path string) {
	c.outputPath = path
}

// SetRecursive sets whether subdirectories are searched.
func (c *DefaultConfig) SetRecursive(recursive bool) {
	c.recursive = recursive
}

// SetTitle sets the report title.
func (c *DefaultConfig) SetTitle(title string) {
	c.title = title
}

// SetMaxCurvePoints sets the per-curve point budget.
func (c *DefaultConfig) SetMaxCurvePoints(n int) {
	c.maxCurvePoints = n
}

// SetWorkers sets the number of concurrent report parsers.
func (c *DefaultConfig) SetWorkers(n int) {
	c.workers = n
}

// SetOutlierThreshold sets the outlier z-score threshold.
func (c *DefaultConfig) SetOutlierThreshold(threshold float64) {
	c.outlierThreshold = threshold
}

// SetChartSize sets the figure size in inches.
func (c *DefaultConfig) SetChartSize(width, height float64) {
	c.chartWidth = width
	c.chartHeight = height
}

// SetLogLevel sets the log level name.
func (c *DefaultConfig) SetLogLevel(level string) {
	c.logLevel = level
}

// SetExportTSV sets the TSV export path.
func (c *DefaultConfig) SetExportTSV(path string) {
	c.exportTSV = path
}

// SetExportJSON sets the JSON export path.
func (c *DefaultConfig) SetExportJSON(path string) {
	c.exportJSON = path
}

// SetExportSQLite sets the SQLite export path.
func (c *DefaultConfig) SetExportSQLite(path string) {
	c.exportSQLite = path
}

// ApplyFile overlays the non-zero values of a configuration file.
func (c *DefaultConfig) ApplyFile(fc *FileConfig) {
	if fc == nil {
		return
	}

	if fc.Title != "" {
		c.title = fc.Title
	}

	if fc.Output != "" {
		c.outputPath = fc.Output
	}

	if fc.Recursive != nil {
		c.recursive = *fc.Recursive
	}

	if fc.MaxPoints != 0 {
		c.maxCurvePoints = fc.MaxPoints
	}

	if fc.Workers != 0 {
		c.workers = fc.Workers
	}

	if fc.OutlierThreshold != 0 {
		c.outlierThreshold = fc.OutlierThreshold
	}

	if fc.LogLevel != "" {
		c.logLevel = fc.LogLevel
	}

	if fc.Charts.WidthIn != 0 {
		c.chartWidth = fc.Charts.WidthIn
	}

	if fc.Charts.HeightIn != 0 {
		c.chartHeight = fc.Charts.HeightIn
	}

	if fc.Export.TSV != "" {
		c.exportTSV = fc.Export.TSV
	}

	if fc.Export.JSON != "" {
		c.exportJSON = fc.Export.JSON
	}

	if fc.Export.SQLite != "" {
		c.exportSQLite = fc.Export.SQLite
	}
}

// Validate validates the configuration.
func (c *DefaultConfig) Validate() error {
	if c.resultsDir == "" {
		return fmt.Errorf("%w: results directory is required", ErrInvalidConfig)
	}

	if c.maxCurvePoints < 1 {
		return fmt.Errorf("%w: "+constants.ErrInvalidBudget, ErrInvalidConfig, c.maxCurvePoints)
	}

	if c.workers < 1 {
		return fmt.Errorf("%w: "+constants.ErrInvalidWorkers, ErrInvalidConfig, c.workers)
	}

	if c.outlierThreshold <= 0 {
		return fmt.Errorf("%w: outlier threshold must be positive, got %g", ErrInvalidConfig, c.outlierThreshold)
	}

	if c.chartWidth <= 0 || c.chartHeight <= 0 {
		return fmt.Errorf("%w: chart size must be positive, got %gx%g", ErrInvalidConfig, c.chartWidth, c.chartHeight)
	}

	if _, err := logrus.ParseLevel(c.logLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Clone creates a copy of the configuration.
func (c *DefaultConfig) Clone() *DefaultConfig {
	clone := *c

	return &clone
}
