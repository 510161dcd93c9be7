// Package discovery locates fastplong JSON reports under a results directory.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/ethpandaops/fastplong-multireport/constants"
)

// ErrNotDirectory is returned when the results root is missing or not a directory.
var ErrNotDirectory = errors.New("results path is not a directory")

// Finder walks a filesystem for report files.
type Finder struct {
	fs     afero.Fs
	logger logrus.FieldLogger
}

// NewFinder creates a finder over fs.
func NewFinder(fs afero.Fs, logger logrus.FieldLogger) *Finder {
	return &Finder{
		fs:     fs,
		logger: logger.WithField("component", "discovery"),
	}
}

// Find returns the report files under root, sorted by base name and then by
// full path. With recursive unset only the top level of root is searched.
func (f *Finder) Find(root string, recursive bool) ([]string, error) {
	info, err := f.fs.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: "+constants.ErrNotDirectory, ErrNotDirectory, root)
	}

	var paths []string

	if recursive {
		paths, err = f.walk(root)
	} else {
		paths, err = f.list(root)
	}

	if err != nil {
		return nil, err
	}

	SortByName(paths)

	f.logger.WithFields(logrus.Fields{
		"root":      root,
		"recursive": recursive,
		"found":     len(paths),
	}).Debug("Report discovery finished")

	return paths, nil
}

func (f *Finder) list(root string) ([]string, error) {
	entries, err := afero.ReadDir(f.fs, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
	}

	var paths []string

	for _, entry := range entries {
		if entry.IsDir() || !IsReportName(entry.Name()) {
			continue
		}

		paths = append(paths, filepath.Join(root, entry.Name()))
	}

	return paths, nil
}

func (f *Finder) walk(root string) ([]string, error) {
	var paths []string

	err := afero.Walk(f.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable subdirectories are skipped, the root was checked above
			f.logger.WithError(err).WithField("path", path).Warn("Skipping unreadable path")

			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if info.IsDir() || !IsReportName(info.Name()) {
			return nil
		}

		paths = append(paths, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return paths, nil
}

// IsReportName reports whether a base name is <sample>_fastplong_report.json
// with a non-empty sample.
func IsReportName(name string) bool {
	return len(name) > len(constants.ReportSuffix) && strings.HasSuffix(name, constants.ReportSuffix)
}

// SampleName strips the report suffix from the base name of path.
func SampleName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), constants.ReportSuffix)
}

// SortByName orders paths by base name, then by full path for equal names.
func SortByName(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		bi, bj := filepath.Base(paths[i]), filepath.Base(paths[j])
		if bi != bj {
			return bi < bj
		}

		return paths[i] < paths[j]
	})
}
