package routes

import (
	"net/http"

	"wildwatch/internal/handlers"
	"wildwatch/internal/logger"
	"wildwatch/internal/repository"
	"wildwatch/internal/services/storage"
	ws "wildwatch/internal/services/websocket"
)

// SetupRoutes registers the live-view endpoints.
func SetupRoutes(hub *ws.HubService, events repository.EventRepository, store *storage.SnapshotStore, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/view", handlers.ViewWebsocketHandler(hub, logger))
	mux.HandleFunc("/api/events", handlers.GetEventsHandler(events, logger))
	mux.HandleFunc("/api/events/stats", handlers.GetStatsHandler(events, logger))
	mux.HandleFunc("/api/snapshots/view", handlers.ViewSnapshotHandler(store))

	return mux
}
