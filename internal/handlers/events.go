package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"

	"wildwatch/internal/logger"
	"wildwatch/internal/repository"
	"wildwatch/internal/services/storage"
)

const defaultEventLimit = 50

// GetEventsHandler returns the most recent detection events as JSON.
func GetEventsHandler(events repository.EventRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := atoiDefault(r.URL.Query().Get("limit"), defaultEventLimit)

		recent, err := events.GetRecent(limit)
		if err != nil {
			logger.Error("Failed to fetch events: %v", err)
			http.Error(w, "Failed to fetch events", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(recent)
	}
}

// GetStatsHandler returns event totals and per-label counts.
func GetStatsHandler(events repository.EventRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := events.GetTotalCount()
		if err != nil {
			logger.Error("Failed to count events: %v", err)
			http.Error(w, "Failed to count events", http.StatusInternalServerError)
			return
		}

		labels, err := events.GetLabelCounts()
		if err != nil {
			logger.Error("Failed to fetch label counts: %v", err)
			http.Error(w, "Failed to fetch label counts", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"total_events": total,
			"label_counts": labels,
		})
	}
}

// ViewSnapshotHandler serves a stored snapshot by filename. The filename
// is flattened to its base to keep requests inside the snapshot dir.
func ViewSnapshotHandler(store *storage.SnapshotStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := filepath.Base(r.URL.Query().Get("file"))
		if filename == "." || filename == "/" {
			http.Error(w, "Missing file parameter", http.StatusBadRequest)
			return
		}

		if _, err := storage.ParseSnapshotName(filename); err != nil {
			http.Error(w, "Not a snapshot", http.StatusBadRequest)
			return
		}

		http.ServeFile(w, r, store.Path(filename))
	}
}

// atoiDefault parses a positive integer, falling back to def on anything
// else.
func atoiDefault(value string, def int) int {
	if value == "" {
		return def
	}
	if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
		return parsed
	}
	return def
}
