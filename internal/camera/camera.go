package camera

import (
	"fmt"

	"gocv.io/x/gocv"

	"wildwatch/internal/logger"
)

// Source wraps a local capture device and hands out frames on demand.
type Source struct {
	capture *gocv.VideoCapture
	index   int
	logger  *logger.Logger
}

// Open opens the capture device by index and applies the requested
// resolution. The device may silently ignore unsupported resolutions,
// the properties are best-effort only.
func Open(index, width, height int, logger *logger.Logger) (*Source, error) {
	capture, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", index, err)
	}

	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("camera %d is not available", index)
	}

	capture.Set(gocv.VideoCaptureFrameWidth, float64(width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(height))

	logger.Info("📷 Camera %d opened (%dx%d requested)", index, width, height)

	return &Source{
		capture: capture,
		index:   index,
		logger:  logger,
	}, nil
}

// Read blocks until the next frame is available and decodes it into mat.
// It returns false when the device reports end of stream, which callers
// treat as a normal, terminal condition.
func (s *Source) Read(mat *gocv.Mat) bool {
	if ok := s.capture.Read(mat); !ok {
		return false
	}
	return !mat.Empty()
}

// Close releases the capture device.
func (s *Source) Close() error {
	s.logger.Info("📷 Camera %d released", s.index)
	return s.capture.Close()
}
