package export

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/ethpandaops/fastplong-multireport/internal/sample"
)

//go:embed schema.sql
var schemaSQL string

// ExportSQLite appends the run and its rows to the database at path,
// creating the schema if needed.
func (e *FileExporter) ExportSQLite(ctx context.Context, path string, run Run, table sample.Table, stats sample.CohortStats) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := insertRun(ctx, tx, run, table, stats); err != nil {
		_ = tx.Rollback()

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"path":    path,
		"run_id":  run.ID,
		"samples": len(table),
	}).Info("Exported summary table to SQLite")

	return nil
}

func insertRun(ctx context.Context, tx *sql.Tx, run Run, table sample.Table, stats sample.CohortStats) error {
	const runQuery = `
		INSERT INTO runs (run_id, title, results_dir, tool_version, generated_at, sample_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, runQuery,
		run.ID,
		run.Title,
		run.ResultsDir,
		run.Version,
		run.GeneratedAt.UTC().Format(time.RFC3339),
		len(table),
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	const sampleQuery = `
		INSERT INTO samples (
			run_id, position, sample,
			total_reads_before, total_reads_after, retention_percent,
			mean_length_bp, q20_rate_percent, q30_rate_percent, gc_percent,
			passed_filter_reads, low_quality_reads, too_short_reads, too_long_reads,
			outlier
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.PrepareContext(ctx, sampleQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range table {
		if _, err := stmt.ExecContext(ctx,
			run.ID,
			i,
			row.Sample,
			row.TotalReadsBefore,
			row.TotalReadsAfter,
			row.RetentionPercent,
			row.MeanLengthBp,
			row.Q20RatePercent,
			row.Q30RatePercent,
			row.GCPercent,
			row.PassedFilterReads,
			row.LowQualityReads,
			row.TooShortReads,
			row.TooLongReads,
			stats.IsOutlier(row.Sample),
		); err != nil {
			return fmt.Errorf("failed to insert sample %s: %w", row.Sample, err)
		}
	}

	return nil
}
