package repository

import "wildwatch/internal/models"

// EventRepository defines the interface for detection event storage.
type EventRepository interface {
	Insert(event *models.Event) (int64, error)
	InsertBatch(events []*models.Event) error

	GetRecent(limit int) ([]models.Event, error)
	GetBySnapshotID(snapshotID string) (*models.Event, error)
	GetByFilename(filename string) (*models.Event, error)
	GetTotalCount() (int, error)
	GetLabelCounts() (map[string]int, error)
}
