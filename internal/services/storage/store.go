package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	snapshotPrefix = "detected_"
	snapshotExt    = ".jpg"
	timeLayout     = "20060102_150405"
)

// SnapshotStore writes detection snapshots into a local directory.
// Files are never cleaned up, the directory grows until someone prunes it.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore ensures the snapshot directory exists.
func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &SnapshotStore{dir: dir}, nil
}

// Save writes the JPEG bytes under a timestamp-derived name and returns
// the filename.
func (s *SnapshotStore) Save(data []byte, when time.Time) (string, error) {
	filename := SnapshotName(when)
	fullpath := filepath.Join(s.dir, filename)

	if err := os.WriteFile(fullpath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save snapshot %s: %w", filename, err)
	}

	return filename, nil
}

// Path returns the absolute location of a stored snapshot.
func (s *SnapshotStore) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Dir returns the snapshot directory.
func (s *SnapshotStore) Dir() string {
	return s.dir
}

// SnapshotName derives the on-disk filename for a snapshot taken at the
// given time, e.g. detected_20250830_154210.jpg.
func SnapshotName(when time.Time) string {
	return snapshotPrefix + when.Format(timeLayout) + snapshotExt
}

// ParseSnapshotName recovers the capture time from a snapshot filename.
func ParseSnapshotName(filename string) (time.Time, error) {
	if !strings.HasPrefix(filename, snapshotPrefix) || !strings.HasSuffix(filename, snapshotExt) {
		return time.Time{}, fmt.Errorf("not a snapshot filename: %s", filename)
	}

	stamp := strings.TrimSuffix(strings.TrimPrefix(filename, snapshotPrefix), snapshotExt)
	when, err := time.ParseInLocation(timeLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid snapshot timestamp in %s: %w", filename, err)
	}

	return when, nil
}
