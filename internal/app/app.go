package app

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wildwatch/internal/camera"
	"wildwatch/internal/config"
	"wildwatch/internal/logger"
	"wildwatch/internal/repository/sqlite"
	"wildwatch/internal/routes"
	"wildwatch/internal/services/ai"
	"wildwatch/internal/services/notify"
	"wildwatch/internal/services/storage"
	"wildwatch/internal/services/uploader"
	ws "wildwatch/internal/services/websocket"
	"wildwatch/internal/watcher"
)

// App wires the watcher loop with its services and owns their lifecycle.
type App struct {
	config   *config.Config
	logger   *logger.Logger
	db       *sqlite.DB
	events   *sqlite.EventRepository
	store    *storage.SnapshotStore
	source   *camera.Source
	detector *ai.Detector
	notifier *notify.Notifier
	hub      *ws.HubService
	watcher  *watcher.Watcher
}

// New builds the whole application. Camera or model failures here are
// fatal to the caller, everything else degrades to a warning.
func New() (*App, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogDirectory)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open event database: %w", err)
	}
	events := sqlite.NewEventRepository(db)

	store, err := storage.NewSnapshotStore(cfg.SnapshotDirectory)
	if err != nil {
		db.Close()
		return nil, err
	}

	detector, err := ai.NewDetector(cfg.ModelPath, cfg.ModelConfigPath, cfg.ConfidenceThreshold, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	source, err := camera.Open(cfg.CameraIndex, cfg.FrameWidth, cfg.FrameHeight, log)
	if err != nil {
		detector.Close()
		db.Close()
		return nil, err
	}

	var notifier *notify.Notifier
	if cfg.MQTTBroker != "" {
		notifier, err = notify.NewNotifier(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic, log)
		if err != nil {
			log.Warning("Running without MQTT notifications: %v", err)
			notifier = nil
		}
	}

	hub := ws.NewHubService(log)

	w := watcher.New(watcher.Options{
		Source:    source,
		Detector:  detector,
		Store:     store,
		Uploader:  uploader.New(cfg.UploadURL, log),
		Events:    events,
		Notifier:  notifier,
		Hub:       hub,
		Logger:    log,
		AllowList: cfg.AnimalClasses,
		Cooldown:  time.Duration(cfg.CooldownSeconds) * time.Second,
	})

	return &App{
		config:   cfg,
		logger:   log,
		db:       db,
		events:   events,
		store:    store,
		source:   source,
		detector: detector,
		notifier: notifier,
		hub:      hub,
		watcher:  w,
	}, nil
}

// Run starts the live-view server and the capture loop, and blocks until
// the loop stops. Resources are released on every exit path.
func (a *App) Run() error {
	defer a.cleanup()

	go a.hub.Run()

	if a.config.LivePort > 0 {
		router := routes.SetupRoutes(a.hub, a.events, a.store, a.logger)
		go func() {
			addr := fmt.Sprintf(":%d", a.config.LivePort)
			a.logger.Info("📺 Live view on http://localhost%s", addr)
			if err := http.ListenAndServe(addr, router); err != nil {
				a.logger.Warning("Live-view server stopped: %v", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		a.logger.Info("🛑 Stopped by user (interrupt)")
		a.watcher.Stop()
	}()

	a.logger.Info("🐾 wildwatch starting")
	a.logger.Info("📍 Upload endpoint: %s", a.config.UploadURL)
	a.logger.Info("📁 Snapshots: %s", a.config.SnapshotDirectory)
	a.logger.Info("🤖 Model: %s", a.config.ModelPath)
	a.logger.Info("🕐 Cooldown: %ds, classes: %v", a.config.CooldownSeconds, a.config.AnimalClasses)

	return a.watcher.Run()
}

// cleanup releases the camera, the network, the broker connection and
// the database. Runs whether the loop ended normally or not.
func (a *App) cleanup() {
	if err := a.source.Close(); err != nil {
		a.logger.Error("Failed to release camera: %v", err)
	}
	a.detector.Close()
	a.notifier.Close()
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close event database: %v", err)
	}
	a.logger.Info("👋 Shutdown complete")
}
