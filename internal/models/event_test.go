package models

import (
	"image"
	"testing"
	"time"
)

func TestDetection_Rect(t *testing.T) {
	det := Detection{X: 10, Y: 20, Width: 40, Height: 30}

	if got := det.Rect(); got != image.Rect(10, 20, 50, 50) {
		t.Errorf("Rect = %v, expected (10,20)-(50,50)", got)
	}
}

func TestEventFromDetections(t *testing.T) {
	when := time.Date(2025, 8, 30, 15, 0, 0, 0, time.UTC)
	detections := []Detection{
		{Label: "dog", Confidence: 0.72},
		{Label: "cat", Confidence: 0.91},
		{Label: "dog", Confidence: 0.55},
	}

	event := EventFromDetections("snap-1", "detected_20250830_150000.jpg", detections, when)

	if event.Labels != "dog,cat,dog" {
		t.Errorf("Expected labels in detection order, got %q", event.Labels)
	}
	if event.MaxConfidence != 0.91 {
		t.Errorf("Expected max confidence 0.91, got %f", event.MaxConfidence)
	}
	if event.SnapshotID != "snap-1" {
		t.Errorf("Expected snapshot ID 'snap-1', got %q", event.SnapshotID)
	}
	if !event.Timestamp.Equal(when) {
		t.Errorf("Expected timestamp %v, got %v", when, event.Timestamp)
	}
	if event.UploadStatus != 0 {
		t.Errorf("Expected zero upload status before the attempt, got %d", event.UploadStatus)
	}
}

func TestEventFromDetections_Empty(t *testing.T) {
	event := EventFromDetections("snap-2", "detected_20250830_150100.jpg", nil, time.Now())

	if event.Labels != "" {
		t.Errorf("Expected empty labels, got %q", event.Labels)
	}
	if event.MaxConfidence != 0 {
		t.Errorf("Expected zero max confidence, got %f", event.MaxConfidence)
	}
}
