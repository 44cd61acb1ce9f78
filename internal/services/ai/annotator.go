package ai

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"wildwatch/internal/models"
)

var boxColor = color.RGBA{R: 0, G: 255, B: 0, A: 0}

// Annotate draws a box and a confidence label for every allow-listed
// detection, mutating mat in place. It returns the qualifying detections
// in their original order and whether there was at least one. Calling it
// twice draws twice, there is no double-draw protection.
func Annotate(mat *gocv.Mat, detections []models.Detection, allowList map[string]bool) ([]models.Detection, bool) {
	matched := FilterAllowed(detections, allowList)

	for _, det := range matched {
		gocv.Rectangle(mat, det.Rect(), boxColor, 2)

		label := fmt.Sprintf("%s %.2f", det.Label, det.Confidence)
		gocv.PutText(mat, label, image.Pt(det.X, det.Y-10), gocv.FontHersheySimplex, 0.6, boxColor, 2)
	}

	return matched, len(matched) > 0
}

// FilterAllowed returns the detections whose label is in the allow-list,
// preserving detection order. Overlapping boxes of the same class are
// kept separately, there is no merging.
func FilterAllowed(detections []models.Detection, allowList map[string]bool) []models.Detection {
	var matched []models.Detection
	for _, det := range detections {
		if allowList[det.Label] {
			matched = append(matched, det)
		}
	}
	return matched
}

// AllowList builds the lookup set from the configured class names.
func AllowList(classes []string) map[string]bool {
	list := make(map[string]bool, len(classes))
	for _, class := range classes {
		list[class] = true
	}
	return list
}
