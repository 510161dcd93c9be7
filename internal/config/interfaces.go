package config

// Config defines the interface for tool configuration.
type Config interface {
	GetResultsDir() string
	GetOutputPath() string
	IsRecursive() bool
	GetTitle() string
	GetMaxCurvePoints() int
	GetWorkers() int
	GetOutlierThreshold() float64
	GetChartWidth() float64
	GetChartHeight() float64
	GetLogLevel() string
	Validate() error

	// Export configuration
	GetExportTSV() string
	GetExportJSON() string
	GetExportSQLite() string
}

// FileConfig is the optional YAML configuration file. Zero values leave the
// defaults in place.
type FileConfig struct {
	Title            string       `yaml:"title"`
	Output           string       `yaml:"output"`
	Recursive        *bool        `yaml:"recursive"`
	MaxPoints        int          `yaml:"max_points"`
	Workers          int          `yaml:"workers"`
	OutlierThreshold float64      `yaml:"outlier_threshold"`
	LogLevel         string       `yaml:"log_level"`
	Charts           ChartsConfig `yaml:"charts"`
	Export           ExportConfig `yaml:"export"`
}

// ChartsConfig holds figure dimensions in inches.
type ChartsConfig struct {
	WidthIn  float64 `yaml:"width_in"`
	HeightIn float64 `yaml:"height_in"`
}

// ExportConfig holds optional export destinations.
type ExportConfig struct {
	TSV    string `yaml:"tsv"`
	JSON   string `yaml:"json"`
	SQLite string `yaml:"sqlite"`
}
