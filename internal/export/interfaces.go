package export

import (
	"context"
	"time"

	"github.com/ethpandaops/fastplong-multireport/internal/sample"
)

// Run identifies one aggregation run in exported data.
type Run struct {
	ID          string    `json:"run_id"`
	Title       string    `json:"title"`
	ResultsDir  string    `json:"results_dir"`
	Version     string    `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Exporter defines the interface for writing the summary table to side outputs
type Exporter interface {
	ExportTSV(path string, table sample.Table) error
	ExportJSON(path string, run Run, table sample.Table, stats sample.CohortStats) error
	ExportSQLite(ctx context.Context, path string, run Run, table sample.Table, stats sample.CohortStats) error
}
