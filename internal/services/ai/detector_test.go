package ai

import (
	"testing"

	"wildwatch/internal/models"
)

// ========================================
// SSD Output Decoding Tests
// ========================================

// row layout: [batchID, classID, confidence, left, top, right, bottom]
func ssdRow(classID int, confidence, left, top, right, bottom float32) []float32 {
	return []float32{0, float32(classID), confidence, left, top, right, bottom}
}

func TestDecodeDetection_AboveThreshold(t *testing.T) {
	row := ssdRow(18, 0.9, 0.1, 0.1, 0.5, 0.5) // 18 = dog

	det, ok := DecodeDetection(row, 640, 480, 0.5)
	if !ok {
		t.Fatal("Expected detection above threshold to be decoded")
	}

	if det.Label != "dog" {
		t.Errorf("Expected label 'dog', got %q", det.Label)
	}
	if det.Confidence != 0.9 {
		t.Errorf("Expected confidence 0.9, got %f", det.Confidence)
	}
	if det.X != 64 || det.Y != 48 {
		t.Errorf("Expected box origin (64,48), got (%d,%d)", det.X, det.Y)
	}
	if det.Width != 256 || det.Height != 192 {
		t.Errorf("Expected box size 256x192, got %dx%d", det.Width, det.Height)
	}
}

func TestDecodeDetection_ThresholdIsExclusive(t *testing.T) {
	tests := []struct {
		name       string
		confidence float32
		expected   bool
	}{
		{"below threshold", 0.49, false},
		{"exactly at threshold", 0.5, false},
		{"just above threshold", 0.51, true},
	}

	for _, tt := range tests {
		row := ssdRow(17, tt.confidence, 0.1, 0.1, 0.2, 0.2) // 17 = cat
		if _, ok := DecodeDetection(row, 640, 480, 0.5); ok != tt.expected {
			t.Errorf("%s: decoded = %v, expected %v", tt.name, ok, tt.expected)
		}
	}
}

func TestDecodeDetection_UnknownClass(t *testing.T) {
	// 12 is one of the holes in the 91-class COCO split
	row := ssdRow(12, 0.95, 0.1, 0.1, 0.2, 0.2)

	if _, ok := DecodeDetection(row, 640, 480, 0.5); ok {
		t.Error("Expected unknown class ID to be dropped")
	}
}

func TestClassLabel_Animals(t *testing.T) {
	tests := []struct {
		classID int
		label   string
	}{
		{16, "bird"},
		{17, "cat"},
		{18, "dog"},
		{19, "horse"},
		{20, "sheep"},
		{21, "cow"},
	}

	for _, tt := range tests {
		label, exists := ClassLabel(tt.classID)
		if !exists {
			t.Errorf("Expected class %d to exist", tt.classID)
			continue
		}
		if label != tt.label {
			t.Errorf("ClassLabel(%d) = %q, expected %q", tt.classID, label, tt.label)
		}
	}
}

// ========================================
// Allow-list Tests
// ========================================

func TestFilterAllowed_MatchingDetection(t *testing.T) {
	detections := []models.Detection{
		{Label: "dog", Confidence: 0.9, X: 10, Y: 10, Width: 40, Height: 40},
	}
	allowList := AllowList([]string{"dog", "cat"})

	matched := FilterAllowed(detections, allowList)
	if len(matched) != 1 {
		t.Fatalf("Expected 1 qualifying detection, got %d", len(matched))
	}
	if matched[0].Label != "dog" {
		t.Errorf("Expected 'dog', got %q", matched[0].Label)
	}
}

func TestFilterAllowed_NonListedLabel(t *testing.T) {
	detections := []models.Detection{
		{Label: "person", Confidence: 0.99},
	}
	allowList := AllowList([]string{"dog", "cat"})

	if matched := FilterAllowed(detections, allowList); len(matched) != 0 {
		t.Errorf("Expected person to be ignored, got %d matches", len(matched))
	}
}

func TestFilterAllowed_PreservesOrderAndOverlaps(t *testing.T) {
	// overlapping boxes of the same class both qualify
	detections := []models.Detection{
		{Label: "cat", Confidence: 0.8, X: 10, Y: 10, Width: 50, Height: 50},
		{Label: "person", Confidence: 0.95},
		{Label: "cat", Confidence: 0.7, X: 20, Y: 20, Width: 50, Height: 50},
	}
	allowList := AllowList([]string{"cat"})

	matched := FilterAllowed(detections, allowList)
	if len(matched) != 2 {
		t.Fatalf("Expected both overlapping cats, got %d", len(matched))
	}
	if matched[0].Confidence != 0.8 || matched[1].Confidence != 0.7 {
		t.Error("Expected detection order to be preserved")
	}
}

func TestAllowList_Lookup(t *testing.T) {
	list := AllowList([]string{"dog", "cat", "bird", "cow", "sheep", "horse"})

	if len(list) != 6 {
		t.Errorf("Expected 6 entries, got %d", len(list))
	}
	if !list["horse"] {
		t.Error("Expected 'horse' in the allow-list")
	}
	if list["person"] {
		t.Error("Did not expect 'person' in the allow-list")
	}
}
