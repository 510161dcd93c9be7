package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ethpandaops/fastplong-multireport/constants"
	"github.com/ethpandaops/fastplong-multireport/internal/build"
	"github.com/ethpandaops/fastplong-multireport/internal/cli"
	"github.com/ethpandaops/fastplong-multireport/internal/config"
)

// Command-line flags
type flags struct {
	output           string
	noRecursive      bool
	title            string
	configFile       string
	maxPoints        int
	workers          int
	outlierThreshold float64
	exportTSV        string
	exportJSON       string
	exportSQLite     string
	logLevel         string
}

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cmd := newRootCommand(afero.NewOsFs(), logger)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		logger.WithError(err).Error("fastplong_multireport failed")
		os.Exit(1)
	}
}

func newRootCommand(fs afero.Fs, logger *logrus.Logger) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "fastplong-multireport <results_dir>",
		Short: "Aggregate fastplong JSON reports into one HTML QC report",
		Long: `Scans a results directory for *` + constants.ReportSuffix + ` files and renders a
single self-contained HTML report comparing every sample: a summary table,
per-position quality curves and cohort-level charts.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := createConfig(cmd, fs, f, args[0])
			if err != nil {
				return err
			}

			level, err := logrus.ParseLevel(cfg.GetLogLevel())
			if err != nil {
				return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
			}

			logger.SetLevel(level)

			_, err = cli.NewHandler(fs, logger).Run(cmd.Context(), cfg)

			return err
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output HTML path (default <results_dir>/"+constants.DefaultOutputFile+")")
	cmd.Flags().BoolVar(&f.noRecursive, "no-recursive", false, "only search the top level of results_dir")
	cmd.Flags().StringVarP(&f.title, "title", "t", constants.DefaultTitle, "report title")
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "YAML configuration file")
	cmd.Flags().IntVar(&f.maxPoints, "max-points", constants.DefaultMaxCurvePoints, "maximum points per quality curve")
	cmd.Flags().IntVarP(&f.workers, "workers", "j", constants.DefaultWorkers, "number of reports parsed concurrently")
	cmd.Flags().Float64Var(&f.outlierThreshold, "outlier-threshold", constants.DefaultOutlierThreshold, "z-score above which a sample is flagged")
	cmd.Flags().StringVar(&f.exportTSV, "export-tsv", "", "also write the summary table as TSV")
	cmd.Flags().StringVar(&f.exportJSON, "export-json", "", "also write the summary table and cohort stats as JSON")
	cmd.Flags().StringVar(&f.exportSQLite, "export-sqlite", "", "also append the run to a SQLite database")
	cmd.Flags().StringVar(&f.logLevel, "log-level", constants.DefaultLogLevel, "log level (debug, info, warn, error)")

	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	showBuildInfo := false

	cmd := &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showBuildInfo {
				fmt.Fprintln(cmd.OutOrStdout(), build.Version().String())

				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), build.Short())

			return nil
		},
	}

	cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")

	return cmd
}

// createConfig layers defaults, the optional config file and explicitly set
// flags, in that order.
func createConfig(cmd *cobra.Command, fs afero.Fs, f *flags, resultsDir string) (*config.DefaultConfig, error) {
	cfg := config.NewDefaultConfig()
	cfg.SetResultsDir(resultsDir)

	if f.configFile != "" {
		fc, err := config.LoadFile(fs, f.configFile)
		if err != nil {
			return nil, err
		}

		cfg.ApplyFile(fc)
	}

	cmd.Flags().Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "output":
			cfg.SetOutputPath(f.output)
		case "no-recursive":
			cfg.SetRecursive(!f.noRecursive)
		case "title":
			cfg.SetTitle(f.title)
		case "max-points":
			cfg.SetMaxCurvePoints(f.maxPoints)
		case "workers":
			cfg.SetWorkers(f.workers)
		case "outlier-threshold":
			cfg.SetOutlierThreshold(f.outlierThreshold)
		case "export-tsv":
			cfg.SetExportTSV(f.exportTSV)
		case "export-json":
			cfg.SetExportJSON(f.exportJSON)
		case "export-sqlite":
			cfg.SetExportSQLite(f.exportSQLite)
		case "log-level":
			cfg.SetLogLevel(f.logLevel)
		}
	})

	return cfg, nil
}
