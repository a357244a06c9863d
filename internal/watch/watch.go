// Package watch drives the live pipeline: camera frame -> detector -> labels
// -> annotated display. The loop is single-threaded and blocking; the gallery
// is read-only after startup so no locking is needed anywhere.
package watch

import (
	"fmt"
	"image"
	"log"

	"gocv.io/x/gocv"

	"github.com/kozaktomas/face-watch/internal/detect"
	"github.com/kozaktomas/face-watch/internal/embed"
	"github.com/kozaktomas/face-watch/internal/gallery"
)

const keyEscape = 27

// Options wires the pipeline stages together.
type Options struct {
	Device      int              // capture device index
	Detector    *detect.Detector // required
	Embedder    embed.Embedder   // nil disables recognition
	Gallery     *gallery.Gallery // required, may be empty
	Threshold   float64          // maximum accepted match distance
	SnapshotDir string           // where the s key drops annotated frames
	WindowTitle string
}

// Watcher owns the capture loop.
type Watcher struct {
	opts Options
}

// New creates a watcher. The detector and gallery must be set; embedder may
// be nil for detection-only mode.
func New(opts Options) *Watcher {
	if opts.WindowTitle == "" {
		opts.WindowTitle = "face-watch"
	}
	return &Watcher{opts: opts}
}

// Run pulls frames until the device stops producing them or the user quits
// with ESC or q. The s key saves the current annotated frame. Cleanup of the
// capture device and window is deterministic via defers.
func (w *Watcher) Run() error {
	capture, err := gocv.OpenVideoCapture(w.opts.Device)
	if err != nil {
		return fmt.Errorf("failed to open capture device %d: %w", w.opts.Device, err)
	}
	defer capture.Close()

	window := gocv.NewWindow(w.opts.WindowTitle)
	defer window.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	for {
		if !capture.Read(&frame) {
			// End of stream is a termination signal, not an error.
			log.Printf("capture device %d stopped producing frames", w.opts.Device)
			return nil
		}
		if frame.Empty() {
			continue
		}

		boxes, err := w.opts.Detector.Detect(frame)
		if err != nil {
			return fmt.Errorf("failed to detect faces: %w", err)
		}

		labels, err := w.Labels(frame, boxes)
		if err != nil {
			return fmt.Errorf("failed to label faces: %w", err)
		}

		Annotate(&frame, boxes, labels)
		window.IMShow(frame)

		switch key := window.WaitKey(1); key {
		case keyEscape, 'q':
			return nil
		case 's':
			if err := w.snapshot(frame); err != nil {
				log.Printf("failed to save snapshot: %v", err)
			}
		}
	}
}

// Labels produces one label per bounding box, positionally aligned. With no
// embedder or an empty gallery every box gets the NoIdentity placeholder and
// no inference runs. Boxes are clamped to the frame before cropping; a box
// that is empty after clamping cannot be embedded and labels as Unknown.
func (w *Watcher) Labels(frame gocv.Mat, boxes []image.Rectangle) ([]string, error) {
	if w.opts.Embedder == nil || w.opts.Gallery.Size() == 0 {
		labels := make([]string, len(boxes))
		for i := range labels {
			labels[i] = gallery.NoIdentity
		}
		return labels, nil
	}

	labels := make([]string, len(boxes))
	for i, box := range boxes {
		clamped := detect.Clamp(box, frame.Cols(), frame.Rows())
		if clamped.Empty() {
			labels[i] = gallery.Unknown
			continue
		}

		vec, err := w.opts.Embedder.EmbedRegion(frame, clamped)
		if err != nil {
			return nil, fmt.Errorf("failed to embed face %d: %w", i, err)
		}

		labels[i], _ = w.opts.Gallery.Match(vec, w.opts.Threshold)
	}
	return labels, nil
}
