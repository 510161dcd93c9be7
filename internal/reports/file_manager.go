package reports

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/ethpandaops/fastplong-multireport/constants"
)

// DefaultFileManager implements the FileManager interface.
type DefaultFileManager struct {
	fs     afero.Fs
	logger logrus.FieldLogger
}

// NewDefaultFileManager creates a new file manager.
func NewDefaultFileManager(fs afero.Fs, logger logrus.FieldLogger) *DefaultFileManager {
	return &DefaultFileManager{
		fs:     fs,
		logger: logger.WithField("component", "file_manager"),
	}
}

// WriteAtomic writes data to a temporary file next to filename and renames it
// into place, so readers never observe a partial document.
func (fm *DefaultFileManager) WriteAtomic(filename string, data []byte) error {
	dir := filepath.Dir(filename)

	if err := fm.fs.MkdirAll(dir, constants.DefaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fm.fs, dir, "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}

	tmpName := tmp.Name()

	cleanup := func() {
		if rmErr := fm.fs.Remove(tmpName); rmErr != nil {
			fm.logger.WithError(rmErr).WithField("filename", tmpName).Debug("Failed to remove temporary file")
		}
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()

		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		cleanup()

		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}

	if err := fm.fs.Chmod(tmpName, constants.DefaultFilePermissions); err != nil {
		cleanup()

		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}

	if err := fm.fs.Rename(tmpName, filename); err != nil {
		cleanup()

		return fmt.Errorf("failed to move report into place at %s: %w", filename, err)
	}

	fm.logger.WithFields(logrus.Fields{
		"filename": filename,
		"bytes":    len(data),
	}).Debug("File written")

	return nil
}

// SaveJSON saves data as indented JSON to the specified filename.
func (fm *DefaultFileManager) SaveJSON(filename string, data interface{}) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := fm.WriteAtomic(filename, append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON file %s: %w", filename, err)
	}

	return nil
}
