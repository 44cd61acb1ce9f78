package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSnapshotName(t *testing.T) {
	when := time.Date(2025, 8, 30, 15, 42, 10, 0, time.Local)

	if got := SnapshotName(when); got != "detected_20250830_154210.jpg" {
		t.Errorf("SnapshotName = %q, expected detected_20250830_154210.jpg", got)
	}
}

func TestParseSnapshotName_RoundTrip(t *testing.T) {
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)

	parsed, err := ParseSnapshotName(SnapshotName(when))
	if err != nil {
		t.Fatalf("ParseSnapshotName failed: %v", err)
	}
	if !parsed.Equal(when) {
		t.Errorf("Parsed %v, expected %v", parsed, when)
	}
}

func TestParseSnapshotName_Invalid(t *testing.T) {
	tests := []string{
		"photo.jpg",
		"detected_.jpg",
		"detected_20250830_154210.png",
		"detected_notatime.jpg",
		"20250830_154210.jpg",
	}

	for _, filename := range tests {
		if _, err := ParseSnapshotName(filename); err == nil {
			t.Errorf("Expected error for %q", filename)
		}
	}
}

func TestSnapshotStore_Save(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	when := time.Date(2025, 8, 30, 12, 0, 0, 0, time.Local)
	data := []byte{0xff, 0xd8, 0xff, 0xd9} // minimal JPEG markers

	filename, err := store.Save(data, when)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filename != "detected_20250830_120000.jpg" {
		t.Errorf("Unexpected filename %q", filename)
	}

	written, err := os.ReadFile(store.Path(filename))
	if err != nil {
		t.Fatalf("Failed to read snapshot back: %v", err)
	}
	if string(written) != string(data) {
		t.Error("Snapshot content does not match what was saved")
	}
}

func TestSnapshotStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "snapshots")

	if _, err := NewSnapshotStore(dir); err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Snapshot directory should have been created")
	}
}
