package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"

	"github.com/ethpandaops/fastplong-multireport/internal"
)

func fixtureFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	internal.NewTestHelper(t).WriteFiles(fs, map[string]string{
		"/r/a_fastplong_report.json": internal.MinimalReport,
		"/r/b_fastplong_report.json": "{not json",
		"/r/c_fastplong_report.json": "{}",
	})

	return fs
}

var fixturePaths = []string{
	"/r/a_fastplong_report.json",
	"/r/b_fastplong_report.json",
	"/r/c_fastplong_report.json",
}

func TestLoadSkipsMalformed(t *testing.T) {
	for _, workers := range []int{1, 4} {
		logger, hook := test.NewNullLogger()
		l := NewLoader(fixtureFs(t), workers, logger)

		collection, err := l.Load(context.Background(), fixturePaths)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if collection.Len() != 2 {
			t.Fatalf("Expected 2 samples, got %d", collection.Len())
		}

		samples := collection.Samples()
		if samples[0].Name != "a" || samples[1].Name != "c" {
			t.Errorf("Expected samples [a c], got [%s %s]", samples[0].Name, samples[1].Name)
		}

		warnings := 0
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.WarnLevel {
				warnings++

				if entry.Data["path"] != "/r/b_fastplong_report.json" {
					t.Errorf("Expected warning for b, got %v", entry.Data["path"])
				}
			}
		}

		if warnings != 1 {
			t.Errorf("Expected 1 warning with %d workers, got %d", workers, warnings)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	logger, hook := test.NewNullLogger()
	l := NewLoader(afero.NewMemMapFs(), 1, logger)

	collection, err := l.Load(context.Background(), []string{"/nope/x_fastplong_report.json"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if collection.Len() != 0 {
		t.Errorf("Expected empty collection, got %d samples", collection.Len())
	}

	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.InfoLevel {
		t.Error("Expected a summary log entry after the warning")
	}

	if len(hook.AllEntries()) < 2 {
		t.Errorf("Expected a warning and a summary entry, got %d entries", len(hook.AllEntries()))
	}
}

func TestLoadRejectsNonObjectDocuments(t *testing.T) {
	fs := afero.NewMemMapFs()
	internal.NewTestHelper(t).WriteFiles(fs, map[string]string{
		"/r/n_fastplong_report.json": "null",
		"/r/l_fastplong_report.json": "[1, 2]",
		"/r/s_fastplong_report.json": "42",
	})

	logger, _ := test.NewNullLogger()
	l := NewLoader(fs, 1, logger)

	collection, err := l.Load(context.Background(), []string{
		"/r/l_fastplong_report.json",
		"/r/n_fastplong_report.json",
		"/r/s_fastplong_report.json",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if collection.Len() != 0 {
		t.Errorf("Expected no samples, got %d", collection.Len())
	}
}

func TestLoadOrderIndependentOfWorkers(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := make(map[string]string)
	paths := make([]string, 0, 20)

	for i := 0; i < 20; i++ {
		path := "/r/" + string(rune('a'+i)) + "_fastplong_report.json"
		files[path] = internal.MinimalReport
		paths = append(paths, path)
	}

	internal.NewTestHelper(t).WriteFiles(fs, files)

	logger, _ := test.NewNullLogger()

	collection, err := NewLoader(fs, 8, logger).Load(context.Background(), paths)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for i, s := range collection.Samples() {
		expected := string(rune('a' + i))
		if s.Name != expected {
			t.Errorf("Expected sample %s at %d, got %s", expected, i, s.Name)
		}
	}
}

func TestLoadCancelled(t *testing.T) {
	logger, _ := test.NewNullLogger()
	l := NewLoader(fixtureFs(t), 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Load(ctx, fixturePaths)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestLoadDuplicateNamesLastWins(t *testing.T) {
	fs := afero.NewMemMapFs()
	internal.NewTestHelper(t).WriteFiles(fs, map[string]string{
		"/r/run1/s_fastplong_report.json": "{}",
		"/r/run2/s_fastplong_report.json": internal.MinimalReport,
	})

	logger, hook := test.NewNullLogger()

	collection, err := NewLoader(fs, 1, logger).Load(context.Background(), []string{
		"/r/run1/s_fastplong_report.json",
		"/r/run2/s_fastplong_report.json",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	samples := collection.Samples()
	if len(samples) != 1 || samples[0].Name != "s" {
		t.Fatalf("Expected only sample s, got %d samples", len(samples))
	}

	if s := samples[0]; s.Path != "/r/run2/s_fastplong_report.json" {
		t.Errorf("Expected later report to win, got %s", s.Path)
	}

	found := false
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Data["sample"] == "s" {
			found = true
		}
	}

	if !found {
		t.Error("Expected a duplicate-name warning")
	}
}

func TestLoadWarnsOnMismatchedFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	internal.NewTestHelper(t).WriteFiles(fs, map[string]string{
		"/r/s_fastplong_report.json": `{"summary":{"before_filtering":{"total_reads":"oops"}},` +
			`"read_after_filtering":{"quality_curves":{"mean":[30,"x",31]}}}`,
	})

	logger, hook := test.NewNullLogger()

	collection, err := NewLoader(fs, 1, logger).Load(context.Background(), []string{"/r/s_fastplong_report.json"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if collection.Len() != 1 {
		t.Fatalf("Expected the report to be kept, got %d samples", collection.Len())
	}

	var fields []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			fields, _ = entry.Data["fields"].([]string)
		}
	}

	if len(fields) != 2 {
		t.Errorf("Expected a warning naming 2 fields, got %v", fields)
	}
}
