// Package export writes the summary table to TSV, JSON and SQLite.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/ethpandaops/fastplong-multireport/constants"
	"github.com/ethpandaops/fastplong-multireport/internal/reports"
	"github.com/ethpandaops/fastplong-multireport/internal/sample"
)

// FileExporter implements the Exporter interface.
type FileExporter struct {
	files  reports.FileManager
	logger logrus.FieldLogger
}

// NewFileExporter creates an exporter writing TSV and JSON files atomically
// to fs. SQLite databases are always opened on the host filesystem.
func NewFileExporter(fs afero.Fs, logger logrus.FieldLogger) *FileExporter {
	return &FileExporter{
		files:  reports.NewDefaultFileManager(fs, logger),
		logger: logger.WithField("component", "exporter"),
	}
}

// WriteTSV writes the header and one line per row, tab separated.
func WriteTSV(w io.Writer, table sample.Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(sample.TableColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range table {
		if err := cw.Write(row.Cells()); err != nil {
			return fmt.Errorf("failed to write row %s: %w", row.Sample, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// ExportTSV writes the summary table as TSV to path.
func (e *FileExporter) ExportTSV(path string, table sample.Table) error {
	var buf bytes.Buffer
	if err := WriteTSV(&buf, table); err != nil {
		return err
	}

	if err := e.files.WriteAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write TSV export %s: %w", path, err)
	}

	e.logger.WithFields(logrus.Fields{"path": path, "samples": len(table)}).Info("Exported summary table as TSV")

	return nil
}

type jsonExport struct {
	Tool    string             `json:"tool"`
	Run     Run                `json:"run"`
	Columns []string           `json:"columns"`
	Samples sample.Table       `json:"samples"`
	Stats   sample.CohortStats `json:"stats"`
}

// ExportJSON writes the summary table and cohort statistics as JSON to path.
func (e *FileExporter) ExportJSON(path string, run Run, table sample.Table, stats sample.CohortStats) error {
	payload := jsonExport{
		Tool:    constants.ToolName,
		Run:     run,
		Columns: sample.TableColumns,
		Samples: table,
		Stats:   stats,
	}

	if err := e.files.SaveJSON(path, payload); err != nil {
		return fmt.Errorf("failed to write JSON export %s: %w", path, err)
	}

	e.logger.WithFields(logrus.Fields{"path": path, "samples": len(table)}).Info("Exported summary table as JSON")

	return nil
}
