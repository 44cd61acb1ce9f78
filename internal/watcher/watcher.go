package watcher

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"wildwatch/internal/camera"
	"wildwatch/internal/logger"
	"wildwatch/internal/models"
	"wildwatch/internal/repository"
	"wildwatch/internal/services/ai"
	"wildwatch/internal/services/notify"
	"wildwatch/internal/services/storage"
	"wildwatch/internal/services/uploader"
	"wildwatch/internal/services/websocket"
)

const quitKey = 'q'

// State tracks where the loop is in its lifecycle.
type State int

const (
	StateRunning State = iota
	StateStopping
	StateStopped
)

// Watcher drives the capture, detect, annotate, upload and display steps
// of each frame. Everything happens on the calling goroutine; the only
// shared state is the stop channel fed by the signal handler.
type Watcher struct {
	source    *camera.Source
	detector  *ai.Detector
	store     *storage.SnapshotStore
	uploader  *uploader.Uploader
	events    repository.EventRepository
	notifier  *notify.Notifier
	hub       *websocket.HubService
	logger    *logger.Logger
	clock     clock.Clock
	allowList map[string]bool
	cooldown  time.Duration

	lastSent time.Time // zero value guarantees the first match uploads
	state    State
	stop     chan struct{}
}

type Options struct {
	Source    *camera.Source
	Detector  *ai.Detector
	Store     *storage.SnapshotStore
	Uploader  *uploader.Uploader
	Events    repository.EventRepository
	Notifier  *notify.Notifier // may be nil
	Hub       *websocket.HubService
	Logger    *logger.Logger
	Clock     clock.Clock // nil defaults to the wall clock
	AllowList []string
	Cooldown  time.Duration
}

func New(opts Options) *Watcher {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Watcher{
		source:    opts.Source,
		detector:  opts.Detector,
		store:     opts.Store,
		uploader:  opts.Uploader,
		events:    opts.Events,
		notifier:  opts.Notifier,
		hub:       opts.Hub,
		logger:    opts.Logger,
		clock:     clk,
		allowList: ai.AllowList(opts.AllowList),
		cooldown:  opts.Cooldown,
		state:     StateRunning,
		stop:      make(chan struct{}),
	}
}

// Stop requests a graceful shutdown. Safe to call from another goroutine
// (the signal handler); the loop notices it at the next iteration.
func (w *Watcher) Stop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
}

// State returns the current lifecycle state.
func (w *Watcher) State() State {
	return w.state
}

// Run blocks until the stream ends, the quit key is pressed or Stop is
// called. The display window lives for the duration of the run.
func (w *Watcher) Run() error {
	window := gocv.NewWindow("Animal Detection Feed")
	defer func() {
		window.Close()
		w.state = StateStopped
	}()

	frame := gocv.NewMat()
	defer frame.Close()

	w.logger.Info("🚀 Animal detection started. Press 'q' to quit.")

	for w.state == StateRunning {
		select {
		case <-w.stop:
			w.logger.Info("🛑 Stop requested, shutting down")
			w.state = StateStopping
			continue
		default:
		}

		if ok := w.source.Read(&frame); !ok {
			w.logger.Warning("Can't receive frame (stream end?). Exiting ...")
			w.state = StateStopping
			continue
		}

		if err := w.iterate(&frame); err != nil {
			w.logger.Error("Frame processing failed: %v", err)
		}

		window.IMShow(frame)
		if key := window.WaitKey(1); key == quitKey {
			w.logger.Info("🛑 Quit key pressed")
			w.state = StateStopping
		}
	}

	return nil
}

// iterate processes a single frame: inference, annotation, the cooldown
// decision and the conditional snapshot upload. Upload problems are
// transient, they never stop the loop.
func (w *Watcher) iterate(frame *gocv.Mat) error {
	detections, err := w.detector.Detect(*frame)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	matched, detected := ai.Annotate(frame, detections, w.allowList)

	w.broadcastFrame(frame)

	now := w.clock.Now()
	if !shouldUpload(detected, now, w.lastSent, w.cooldown) {
		return nil
	}

	w.sendSnapshot(frame, matched, now)
	// lastSent advances after every attempt, success or failure
	w.lastSent = now

	return nil
}

// sendSnapshot encodes the annotated frame, writes it to disk, POSTs it
// to the endpoint and records the attempt. Each step is best effort.
func (w *Watcher) sendSnapshot(frame *gocv.Mat, matched []models.Detection, now time.Time) {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		w.logger.Error("Failed to encode snapshot: %v", err)
		return
	}
	defer buf.Close()

	image := make([]byte, len(buf.GetBytes()))
	copy(image, buf.GetBytes())

	filename, err := w.store.Save(image, now)
	if err != nil {
		w.logger.Error("Failed to save snapshot: %v", err)
		return
	}

	snapshotID := uuid.NewString()
	event := models.EventFromDetections(snapshotID, filename, matched, now)

	status, err := w.uploader.Upload(image, filename, snapshotID)
	if err != nil {
		w.logger.Error("Failed to send image: %v", err)
	}
	event.UploadStatus = status

	if _, err := w.events.Insert(event); err != nil {
		w.logger.Error("Failed to record detection event: %v", err)
	}

	w.notifier.PublishEvent(event)
}

// broadcastFrame offers the annotated frame to live viewers. Skipped
// entirely when nobody is connected, encoding is not free.
func (w *Watcher) broadcastFrame(frame *gocv.Mat) {
	if w.hub == nil || w.hub.ClientCount() == 0 {
		return
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		w.logger.Error("Failed to encode frame for viewers: %v", err)
		return
	}
	defer buf.Close()

	encoded := base64.StdEncoding.EncodeToString(buf.GetBytes())
	w.hub.TryBroadcast([]byte(fmt.Sprintf(`{"image":"%s"}`, encoded)))
}
