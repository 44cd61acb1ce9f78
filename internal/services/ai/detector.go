package ai

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"wildwatch/internal/logger"
	"wildwatch/internal/models"
)

const (
	// DefaultConfidenceThreshold filters detections the model is unsure about.
	DefaultConfidenceThreshold = 0.5

	// SSD MobileNet input geometry and normalization.
	inputSize  = 300
	inputScale = 1.0 / 127.5
	inputMean  = 127.5

	// SSD output rows are [batchID, classID, confidence, left, top, right, bottom].
	rowSize = 7
)

// Detector runs a pretrained SSD MobileNet COCO model on single frames.
type Detector struct {
	net       gocv.Net
	threshold float64
	logger    *logger.Logger
}

// NewDetector loads the frozen model and its graph config. A model that
// cannot be loaded is a startup failure, there is no retry.
func NewDetector(modelPath, configPath string, threshold float64, logger *logger.Logger) (*Detector, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model config file not found: %s", configPath)
	}

	net := gocv.ReadNet(modelPath, configPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load detection network from %s", modelPath)
	}

	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set network backend: %w", err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set network target: %w", err)
	}

	logger.Info("🤖 Detection network loaded (threshold %.2f)", threshold)

	return &Detector{
		net:       net,
		threshold: threshold,
		logger:    logger,
	}, nil
}

// Detect runs inference on one frame and returns every detection above
// the confidence threshold, with boxes scaled to pixel coordinates.
// Inference blocks the calling goroutine until it completes.
func (d *Detector) Detect(mat gocv.Mat) ([]models.Detection, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("frame is empty")
	}

	blob := gocv.BlobFromImage(mat, inputScale, image.Pt(inputSize, inputSize),
		gocv.NewScalar(inputMean, inputMean, inputMean, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")

	output := d.net.Forward("")
	defer output.Close()

	reshaped := output.Reshape(1, output.Total()/rowSize)
	defer reshaped.Close()

	var results []models.Detection
	row := make([]float32, rowSize)
	for i := 0; i < reshaped.Rows(); i++ {
		for j := 0; j < rowSize; j++ {
			row[j] = reshaped.GetFloatAt(i, j)
		}

		det, ok := DecodeDetection(row, mat.Cols(), mat.Rows(), d.threshold)
		if !ok {
			continue
		}
		results = append(results, det)
	}

	return results, nil
}

// DecodeDetection turns one SSD output row into a Detection. It returns
// false for rows at or below the confidence threshold and for class IDs
// the COCO table does not know. The threshold is exclusive: a detection
// at exactly the threshold value is dropped.
func DecodeDetection(row []float32, frameWidth, frameHeight int, threshold float64) (models.Detection, bool) {
	confidence := float64(row[2])
	if confidence <= threshold {
		return models.Detection{}, false
	}

	classID := int(row[1])
	label, exists := ClassLabel(classID)
	if !exists {
		return models.Detection{}, false
	}

	x := int(row[3] * float32(frameWidth))
	y := int(row[4] * float32(frameHeight))
	width := int(row[5]*float32(frameWidth)) - x
	height := int(row[6]*float32(frameHeight)) - y

	return models.Detection{
		Label:      label,
		Confidence: confidence,
		X:          x,
		Y:          y,
		Width:      width,
		Height:     height,
	}, true
}

// Close releases the network.
func (d *Detector) Close() {
	d.net.Close()
}
