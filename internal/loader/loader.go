// Package loader reads and parses discovered fastplong reports into a sample
// collection. Unreadable or malformed files are logged and skipped.
package loader

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/ethpandaops/fastplong-multireport/internal/discovery"
	"github.com/ethpandaops/fastplong-multireport/internal/fastplong"
	"github.com/ethpandaops/fastplong-multireport/internal/sample"
)

// Loader parses report files, optionally with a bounded worker pool.
type Loader struct {
	fs      afero.Fs
	workers int
	logger  logrus.FieldLogger
}

type result struct {
	name   string
	path   string
	report *fastplong.Report
	err    error
}

// NewLoader creates a loader. workers below 2 loads sequentially.
func NewLoader(fs afero.Fs, workers int, logger logrus.FieldLogger) *Loader {
	if workers < 1 {
		workers = 1
	}

	return &Loader{
		fs:      fs,
		workers: workers,
		logger:  logger.WithField("component", "loader"),
	}
}

// Load parses every path and returns the successfully loaded samples in the
// order of paths. The returned collection may be empty. A cancelled context
// stops loading early and returns the context error.
func (l *Loader) Load(ctx context.Context, paths []string) (*sample.Collection, error) {
	results := make([]result, len(paths))

	if l.workers == 1 {
		for i, path := range paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			results[i] = l.loadOne(path)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(l.workers)

		for i, path := range paths {
			i, path := i, path
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				results[i] = l.loadOne(path)

				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	collection := sample.NewCollection(l.logger)

	for _, r := range results {
		if r.err != nil {
			l.logger.WithError(r.err).WithField("path", r.path).Warn("Skipping unreadable report")

			continue
		}

		if len(r.report.MismatchedFields) > 0 {
			l.logger.WithFields(logrus.Fields{
				"path":   r.path,
				"fields": r.report.MismatchedFields,
			}).Warn("Report fields have unexpected values, treating them as missing")
		}

		collection.Put(r.name, r.path, r.report)
	}

	l.logger.WithFields(logrus.Fields{
		"files":   len(paths),
		"samples": collection.Len(),
	}).Info("Loaded fastplong reports")

	return collection, nil
}

func (l *Loader) loadOne(path string) result {
	r := result{name: discovery.SampleName(path), path: path}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		r.err = fmt.Errorf("failed to read %s: %w", path, err)

		return r
	}

	r.report, r.err = fastplong.Parse(data)
	if r.err != nil {
		r.err = fmt.Errorf("failed to load %s: %w", path, r.err)
	}

	return r
}
