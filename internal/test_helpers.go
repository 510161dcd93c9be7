package internal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// TestHelper provides common testing utilities
type TestHelper struct {
	t *testing.T
}

// NewTestHelper creates a new test helper
func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// AssertNoError fails the test if err is not nil
func (th *TestHelper) AssertNoError(err error) {
	th.t.Helper()
	if err != nil {
		th.t.Fatalf("Expected no error, got: %v", err)
	}
}

// AssertError fails the test if err is nil
func (th *TestHelper) AssertError(err error) {
	th.t.Helper()
	if err == nil {
		th.t.Fatal("Expected an error, got nil")
	}
}

// AssertEqual fails the test if expected != actual
func (th *TestHelper) AssertEqual(expected, actual interface{}) {
	th.t.Helper()
	if expected != actual {
		th.t.Fatalf("Expected %v, got %v", expected, actual)
	}
}

// AssertNotNil fails the test if value is nil
func (th *TestHelper) AssertNotNil(value interface{}) {
	th.t.Helper()
	if value == nil {
		th.t.Fatal("Expected non-nil value")
	}
}

// WriteFiles creates each path -> content entry on fs, creating parent directories.
func (th *TestHelper) WriteFiles(fs afero.Fs, files map[string]string) {
	th.t.Helper()

	for path, content := range files {
		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			th.t.Fatalf("Expected no error creating %s, got: %v", filepath.Dir(path), err)
		}

		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			th.t.Fatalf("Expected no error writing %s, got: %v", path, err)
		}
	}
}

// MockTime returns a fixed time for testing
func MockTime() time.Time {
	return time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
}

// MinimalReport is a small but complete fastplong report document.
const MinimalReport = `{
  "summary": {
    "before_filtering": {"total_reads": 1000, "read_mean_length": 5000.5, "q20_rate": 0.9, "q30_rate": 0.8, "gc_content": 0.45},
    "after_filtering": {"total_reads": 900}
  },
  "filtering_result": {"passed_filter_reads": 900, "low_quality_reads": 50, "too_short_reads": 40, "too_long_reads": 10},
  "read_after_filtering": {"quality_curves": {"mean": [30.1, 31.2, 29.8]}}
}`
