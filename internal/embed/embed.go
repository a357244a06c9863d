// Package embed turns face images into fixed-length embedding vectors.
// Two backends exist: a local OpenCV DNN model file and a remote embedding
// server. Recognition is disabled entirely when neither is configured.
package embed

import (
	"image"

	"gocv.io/x/gocv"
)

// Embedder produces a fixed-length vector for a face image. Implementations
// are used serially from a single caller and are not safe for concurrent use.
type Embedder interface {
	// EmbedImage embeds a standalone face image, used when building the
	// gallery from labeled files.
	EmbedImage(img image.Image) ([]float32, error)

	// EmbedRegion embeds the face inside box of a live frame. The box must
	// already be clamped to the frame bounds.
	EmbedRegion(frame gocv.Mat, box image.Rectangle) ([]float32, error)

	Close() error
}
