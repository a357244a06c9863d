package detect

import "image"

// detectionStride is the width of one row in the SSD output tensor:
// [batchID, classID, confidence, x1, y1, x2, y2].
const detectionStride = 7

// FilterDetections scans a flattened SSD output tensor and keeps every
// detection whose confidence is strictly greater than minConfidence,
// preserving model output order. Normalized box coordinates are rescaled to
// pixel coordinates of a width x height frame and truncated to integers.
// Detections at or below the threshold are dropped entirely.
func FilterDetections(raw []float32, minConfidence float32, width, height int) []image.Rectangle {
	var boxes []image.Rectangle
	for i := 0; i+detectionStride <= len(raw); i += detectionStride {
		confidence := raw[i+2]
		if confidence <= minConfidence {
			continue
		}
		boxes = append(boxes, image.Rect(
			int(raw[i+3]*float32(width)),
			int(raw[i+4]*float32(height)),
			int(raw[i+5]*float32(width)),
			int(raw[i+6]*float32(height)),
		))
	}
	return boxes
}

// Clamp restricts a bounding box to the frame bounds. Detectors may report
// boxes that extend past the frame edges; cropping such a box would fail, so
// callers clamp before extracting the face region. The result can be empty
// when the box lies fully outside the frame.
func Clamp(box image.Rectangle, width, height int) image.Rectangle {
	return box.Intersect(image.Rect(0, 0, width, height))
}

// ToRelative converts a pixel bounding box to [x1, y1, x2, y2] in relative
// (0-1) coordinates of a width x height frame.
func ToRelative(box image.Rectangle, width, height int) []float64 {
	if width <= 0 || height <= 0 {
		return []float64{0, 0, 0, 0}
	}
	return []float64{
		float64(box.Min.X) / float64(width),
		float64(box.Min.Y) / float64(height),
		float64(box.Max.X) / float64(width),
		float64(box.Max.Y) / float64(height),
	}
}
