package tempfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Report summarizes a cleanup run.
type Report struct {
	Removed int
	Missing int
	Failed  map[string]error
}

// Cleaner removes local scratch files. It never fails as a whole.
type Cleaner interface {
	Cleanup(paths []string) Report
}

// DiskCleaner deletes files from the local filesystem.
type DiskCleaner struct {
	logger *zap.Logger
}

// NewDiskCleaner creates a cleaner that logs failed removals.
func NewDiskCleaner(logger *zap.Logger) *DiskCleaner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiskCleaner{logger: logger}
}

// Cleanup removes every path. Missing files count as cleaned.
func (c *DiskCleaner) Cleanup(paths []string) Report {
	report := Report{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		err := os.Remove(p)
		switch {
		case err == nil:
			report.Removed++
		case errors.Is(err, fs.ErrNotExist):
			report.Missing++
		default:
			if report.Failed == nil {
				report.Failed = make(map[string]error)
			}
			report.Failed[p] = err
			c.logger.Warn("Failed to remove temp file", zap.String("path", p), zap.Error(err))
		}
	}
	return report
}

// EnsureDir returns the scratch directory, creating it when missing.
func (c Config) EnsureDir() (string, error) {
	dir := c.Dir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "estate-uploads")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}
	return dir, nil
}
