package models

import (
	"strings"
	"time"
)

// Event is one upload attempt: which snapshot was written, what was seen
// and how the POST to the remote endpoint went.
type Event struct {
	ID            int64     `json:"id"`
	SnapshotID    string    `json:"snapshot_id"`
	Filename      string    `json:"filename"`
	Labels        string    `json:"labels"` // comma-separated, detection order
	MaxConfidence float64   `json:"max_confidence"`
	UploadStatus  int       `json:"upload_status"` // HTTP status, 0 if the POST never completed
	Timestamp     time.Time `json:"timestamp"`
}

// EventFromDetections builds an Event for a snapshot from the qualifying
// detections of one frame.
func EventFromDetections(snapshotID, filename string, detections []Detection, when time.Time) *Event {
	labels := make([]string, 0, len(detections))
	maxConfidence := 0.0
	for _, det := range detections {
		labels = append(labels, det.Label)
		if det.Confidence > maxConfidence {
			maxConfidence = det.Confidence
		}
	}

	return &Event{
		SnapshotID:    snapshotID,
		Filename:      filename,
		Labels:        strings.Join(labels, ","),
		MaxConfidence: maxConfidence,
		Timestamp:     when,
	}
}
