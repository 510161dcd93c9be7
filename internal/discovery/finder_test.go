package discovery

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/ethpandaops/fastplong-multireport/internal"
)

func newTestFinder(t *testing.T, files map[string]string) *Finder {
	t.Helper()

	fs := afero.NewMemMapFs()
	internal.NewTestHelper(t).WriteFiles(fs, files)

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	return NewFinder(fs, logger)
}

func TestFindOrdersByBaseName(t *testing.T) {
	finder := newTestFinder(t, map[string]string{
		"/results/z_fastplong_report.json":     "{}",
		"/results/sub/a_fastplong_report.json": "{}",
		"/results/notes.txt":                   "ignore",
		"/results/other.json":                  "{}",
	})

	paths, err := finder.Find("/results", true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []string{
		"/results/sub/a_fastplong_report.json",
		"/results/z_fastplong_report.json",
	}
	if !reflect.DeepEqual(paths, expected) {
		t.Errorf("Expected %v, got %v", expected, paths)
	}
}

func TestFindNonRecursive(t *testing.T) {
	finder := newTestFinder(t, map[string]string{
		"/results/z_fastplong_report.json":     "{}",
		"/results/sub/a_fastplong_report.json": "{}",
	})

	paths, err := finder.Find("/results", false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(paths) != 1 || paths[0] != "/results/z_fastplong_report.json" {
		t.Errorf("Expected only the top-level report, got %v", paths)
	}
}

func TestFindTiesBrokenByFullPath(t *testing.T) {
	finder := newTestFinder(t, map[string]string{
		"/results/run2/s1_fastplong_report.json": "{}",
		"/results/run1/s1_fastplong_report.json": "{}",
	})

	paths, err := finder.Find("/results", true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []string{
		"/results/run1/s1_fastplong_report.json",
		"/results/run2/s1_fastplong_report.json",
	}
	if !reflect.DeepEqual(paths, expected) {
		t.Errorf("Expected %v, got %v", expected, paths)
	}
}

func TestFindRequiresSamplePrefix(t *testing.T) {
	finder := newTestFinder(t, map[string]string{
		"/results/_fastplong_report.json": "{}",
	})

	paths, err := finder.Find("/results", true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(paths) != 0 {
		t.Errorf("Expected no reports, got %v", paths)
	}
}

func TestFindEmptyDirectory(t *testing.T) {
	finder := newTestFinder(t, map[string]string{
		"/results/readme.md": "",
	})

	paths, err := finder.Find("/results", true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(paths) != 0 {
		t.Errorf("Expected empty result, got %v", paths)
	}
}

func TestFindNotDirectory(t *testing.T) {
	finder := newTestFinder(t, map[string]string{
		"/results/a_fastplong_report.json": "{}",
	})

	tests := []string{"/missing", "/results/a_fastplong_report.json"}

	for _, root := range tests {
		t.Run(root, func(t *testing.T) {
			_, err := finder.Find(root, true)
			if !errors.Is(err, ErrNotDirectory) {
				t.Errorf("Expected ErrNotDirectory, got %v", err)
			}
		})
	}
}

func TestSampleName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/data/S01_fastplong_report.json", "S01"},
		{"sample.v2_fastplong_report.json", "sample.v2"},
		{"/a/b/x_y_fastplong_report.json", "x_y"},
	}

	for _, tt := range tests {
		if got := SampleName(tt.path); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}

func TestIsReportName(t *testing.T) {
	tests := map[string]bool{
		"a_fastplong_report.json":  true,
		"_fastplong_report.json":   false,
		"a_fastplong_report.json~": false,
		"a_fastp_report.json":      false,
	}

	for name, expected := range tests {
		if got := IsReportName(name); got != expected {
			t.Errorf("IsReportName(%q): expected %v, got %v", name, expected, got)
		}
	}
}
