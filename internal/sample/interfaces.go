package sample

import (
	"github.com/ethpandaops/fastplong-multireport/internal/fastplong"
)

// Repository defines the interface for the per-run sample collection
type Repository interface {
	Put(name, path string, report *fastplong.Report)
	Samples() []Sample
	Len() int
}

// StatsCalculator defines the interface for cohort-level statistics
type StatsCalculator interface {
	CalculateCohortStats(table Table) CohortStats
	FindOutliers(table Table) []Outlier
}
