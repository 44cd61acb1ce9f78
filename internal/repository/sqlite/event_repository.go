package sqlite

import (
	"database/sql"
	"fmt"

	"wildwatch/internal/models"
)

// EventRepository implements repository.EventRepository for SQLite.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new SQLite event repository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Insert adds a new detection event record to the database.
func (r *EventRepository) Insert(event *models.Event) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO events (snapshot_id, filename, labels, max_confidence, upload_status, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, event.SnapshotID, event.Filename, event.Labels, event.MaxConfidence, event.UploadStatus, event.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}

	return result.LastInsertId()
}

// InsertBatch adds multiple events in a single transaction.
func (r *EventRepository) InsertBatch(events []*models.Event) error {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO events (snapshot_id, filename, labels, max_confidence, upload_status, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, event := range events {
		if _, err := stmt.Exec(event.SnapshotID, event.Filename, event.Labels, event.MaxConfidence, event.UploadStatus, event.Timestamp); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
	}

	return tx.Commit()
}

// GetRecent retrieves the newest events, most recent first.
func (r *EventRepository) GetRecent(limit int) ([]models.Event, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, snapshot_id, filename, labels, max_confidence, upload_status, timestamp
		FROM events ORDER BY timestamp DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetBySnapshotID retrieves a single event by its snapshot ID.
func (r *EventRepository) GetBySnapshotID(snapshotID string) (*models.Event, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var event models.Event
	err := r.db.Conn().QueryRow(`
		SELECT id, snapshot_id, filename, labels, max_confidence, upload_status, timestamp
		FROM events WHERE snapshot_id = ?
	`, snapshotID).Scan(&event.ID, &event.SnapshotID, &event.Filename, &event.Labels,
		&event.MaxConfidence, &event.UploadStatus, &event.Timestamp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query event: %w", err)
	}

	return &event, nil
}

// GetByFilename retrieves a single event by its snapshot filename.
func (r *EventRepository) GetByFilename(filename string) (*models.Event, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var event models.Event
	err := r.db.Conn().QueryRow(`
		SELECT id, snapshot_id, filename, labels, max_confidence, upload_status, timestamp
		FROM events WHERE filename = ? LIMIT 1
	`, filename).Scan(&event.ID, &event.SnapshotID, &event.Filename, &event.Labels,
		&event.MaxConfidence, &event.UploadStatus, &event.Timestamp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query event: %w", err)
	}

	return &event, nil
}

// GetTotalCount returns the number of recorded events.
func (r *EventRepository) GetTotalCount() (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}

	return count, nil
}

// GetLabelCounts returns how many events each label (the first label of
// the event) appeared in.
func (r *EventRepository) GetLabelCounts() (map[string]int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT CASE WHEN instr(labels, ',') > 0 THEN substr(labels, 1, instr(labels, ',') - 1) ELSE labels END AS label,
		       COUNT(*)
		FROM events GROUP BY label
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query label counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("failed to scan label count: %w", err)
		}
		counts[label] = count
	}

	return counts, rows.Err()
}

func scanEvents(rows *sql.Rows) ([]models.Event, error) {
	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.SnapshotID, &event.Filename, &event.Labels,
			&event.MaxConfidence, &event.UploadStatus, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
