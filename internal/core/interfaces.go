package core

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/fastplong-multireport/internal/config"
	"github.com/ethpandaops/fastplong-multireport/internal/sample"
)

// Tool defines the interface for the multi-report aggregator.
type Tool interface {
	Run(ctx context.Context) (*Result, error)
	GetLogger() logrus.FieldLogger
	GetConfig() Config
}

// Config is an alias for the config package interface.
type Config = config.Config

// ReportFinder defines the interface for locating report files.
type ReportFinder interface {
	Find(root string, recursive bool) ([]string, error)
}

// ReportLoader defines the interface for parsing report files into samples.
type ReportLoader interface {
	Load(ctx context.Context, paths []string) (*sample.Collection, error)
}

// Result summarizes a completed run.
type Result struct {
	RunID      string   `json:"run_id"`
	OutputPath string   `json:"output_path"`
	Files      int      `json:"files"`
	Samples    int      `json:"samples"`
	Curves     int      `json:"curves"`
	Outliers   int      `json:"outliers"`
	Exports    []string `json:"exports,omitempty"`
}
