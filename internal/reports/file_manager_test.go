package reports

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func TestFileManagerWriteAtomic(t *testing.T) {
	fs := afero.NewMemMapFs()
	fm := NewDefaultFileManager(fs, logrus.New())

	if err := afero.WriteFile(fs, "/out/report.html", []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := fm.WriteAtomic("/out/report.html", []byte("new")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := afero.ReadFile(fs, "/out/report.html")
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "new" {
		t.Errorf("Expected new content, got %q", data)
	}

	entries, _ := afero.ReadDir(fs, "/out")
	if len(entries) != 1 {
		t.Errorf("Expected no temporary files left behind, got %d entries", len(entries))
	}
}

func TestFileManagerReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	fm := NewDefaultFileManager(fs, logrus.New())

	if err := fm.WriteAtomic("/out/report.html", []byte("x")); err == nil {
		t.Error("Expected error on read-only filesystem")
	}

	if exists, _ := afero.Exists(fs, "/out/report.html"); exists {
		t.Error("Expected file not to exist")
	}
}

func TestFileManagerSaveJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	fm := NewDefaultFileManager(fs, logrus.New())

	if err := fm.SaveJSON("/out/data.json", map[string]int{"samples": 3}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if exists, _ := afero.Exists(fs, "/out/data.json"); !exists {
		t.Fatal("Expected JSON file to exist")
	}

	data, _ := afero.ReadFile(fs, "/out/data.json")
	expected := "{\n  \"samples\": 3\n}\n"

	if string(data) != expected {
		t.Errorf("Expected %q, got %q", expected, data)
	}
}
