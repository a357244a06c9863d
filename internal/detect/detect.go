// Package detect locates faces in video frames. Two detector variants are
// supported: a classical Haar cascade and a Caffe SSD network (res10). The
// set is closed, so the variant is a tagged kind rather than a plugin
// interface.
package detect

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Kind selects the detection strategy.
type Kind string

const (
	KindCascade Kind = "cascade"
	KindDNN     Kind = "dnn"
)

// Cascade tuning. Fixed values, matching the classifier's sweet spot for
// frontal webcam faces.
const (
	cascadeScaleFactor  = 1.1
	cascadeMinNeighbors = 5
	cascadeMinFaceSize  = 30
)

// SSD input geometry and normalization, fixed by the res10 model.
const dnnInputSize = 300

var dnnMean = gocv.NewScalar(104, 177, 123, 0)

// ErrUnknownKind is returned when the detector kind is not one of the
// supported variants.
var ErrUnknownKind = fmt.Errorf("unknown detector kind")

// Options configures a Detector.
type Options struct {
	Kind       Kind
	Cascade    string  // cascade XML file, KindCascade only
	Prototxt   string  // Caffe architecture descriptor, KindDNN only
	Caffemodel string  // Caffe trained weights, KindDNN only
	Confidence float32 // minimum detection score, KindDNN only
}

// Detector finds face bounding boxes in frames. It is not safe for
// concurrent use; the capture loop calls it serially.
type Detector struct {
	kind       Kind
	classifier gocv.CascadeClassifier
	net        gocv.Net
	confidence float32
}

// New builds a detector for the requested kind. An unrecognized kind is a
// configuration error and is rejected here, before any capture loop starts.
func New(opts Options) (*Detector, error) {
	switch opts.Kind {
	case KindCascade:
		classifier := gocv.NewCascadeClassifier()
		if !classifier.Load(opts.Cascade) {
			classifier.Close()
			return nil, fmt.Errorf("failed to load cascade classifier from %s", opts.Cascade)
		}
		return &Detector{kind: KindCascade, classifier: classifier}, nil

	case KindDNN:
		net := gocv.ReadNetFromCaffe(opts.Prototxt, opts.Caffemodel)
		if net.Empty() {
			return nil, fmt.Errorf("failed to load caffe model from %s / %s", opts.Prototxt, opts.Caffemodel)
		}
		return &Detector{kind: KindDNN, net: net, confidence: opts.Confidence}, nil

	default:
		return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownKind, opts.Kind, KindCascade, KindDNN)
	}
}

// Kind reports which variant this detector runs.
func (d *Detector) Kind() Kind {
	return d.kind
}

// Detect returns the bounding boxes of faces found in the frame, in the
// order the underlying model reports them.
func (d *Detector) Detect(frame gocv.Mat) ([]image.Rectangle, error) {
	switch d.kind {
	case KindCascade:
		return d.detectCascade(frame), nil
	case KindDNN:
		return d.detectDNN(frame), nil
	default:
		// Unreachable after New; kept as an error rather than a silent
		// empty result so a zero-value Detector cannot hide a bug.
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, d.kind)
	}
}

func (d *Detector) detectCascade(frame gocv.Mat) []image.Rectangle {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	return d.classifier.DetectMultiScaleWithParams(
		gray,
		cascadeScaleFactor,
		cascadeMinNeighbors,
		0,
		image.Pt(cascadeMinFaceSize, cascadeMinFaceSize),
		image.Pt(0, 0),
	)
}

func (d *Detector) detectDNN(frame gocv.Mat) []image.Rectangle {
	blob := gocv.BlobFromImage(frame,
		1.0,
		image.Pt(dnnInputSize, dnnInputSize),
		dnnMean,
		false,
		false,
	)
	defer blob.Close()

	d.net.SetInput(blob, "")
	prob := d.net.Forward("")
	defer prob.Close()

	// Flatten the 1x1xNx7 output tensor so the threshold filter stays a
	// plain slice operation.
	raw := make([]float32, prob.Total())
	for i := range raw {
		raw[i] = prob.GetFloatAt(0, i)
	}

	return FilterDetections(raw, d.confidence, frame.Cols(), frame.Rows())
}

// Close releases the underlying model resources.
func (d *Detector) Close() error {
	switch d.kind {
	case KindCascade:
		return d.classifier.Close()
	case KindDNN:
		return d.net.Close()
	}
	return nil
}
