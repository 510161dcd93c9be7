package constants

// Default configuration values
const (
	// Discovery and naming
	ReportSuffix      = "_fastplong_report.json"
	DefaultOutputFile = "fastplong_multireport.html"
	DefaultTitle      = "fastplong QC Report"
	ToolName          = "fastplong_multireport"
	TracerName        = "github.com/ethpandaops/fastplong-multireport"

	// Curve and chart constants
	DefaultMaxCurvePoints = 2000
	DefaultChartWidthIn   = 10.0
	DefaultChartHeightIn  = 4.5

	// Processing constants
	DefaultWorkers          = 1
	DefaultOutlierThreshold = 2.0
	MinOutlierCohortSize    = 3

	// File and data constants
	DefaultFilePermissions = 0644
	DefaultDirPermissions  = 0755
	DefaultLogLevel        = "info"
)

// Rounding precision of derived table fields (decimal places)
const (
	RetentionDecimals = 1
	QualityDecimals   = 1
	GCDecimals        = 2
)

// Error messages
const (
	ErrNotDirectory   = "%s is not a directory"
	ErrNoReports      = "no *" + ReportSuffix + " files found in %s"
	ErrNothingLoaded  = "could not load any fastplong reports"
	ErrInvalidBudget  = "max points must be at least 1, got %d"
	ErrInvalidWorkers = "workers must be at least 1, got %d"
)
