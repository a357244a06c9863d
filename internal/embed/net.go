package embed

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Net runs a local face recognition model through the OpenCV DNN module.
type Net struct {
	net       gocv.Net
	inputSize int
}

// NewNet loads the recognition model eagerly. A model that cannot be read is
// a fatal configuration error.
func NewNet(modelPath string, inputSize int) (*Net, error) {
	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load recognition model from %s", modelPath)
	}
	return &Net{net: net, inputSize: inputSize}, nil
}

// EmbedImage resizes the whole image to the model's square input and runs a
// single forward pass.
func (n *Net) EmbedImage(img image.Image) ([]float32, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	return n.forward(mat)
}

// EmbedRegion embeds the face crop inside box. The box must be clamped to
// the frame bounds; Region panics on out-of-bounds coordinates.
func (n *Net) EmbedRegion(frame gocv.Mat, box image.Rectangle) ([]float32, error) {
	if box.Empty() {
		return nil, fmt.Errorf("empty face region %v", box)
	}

	region := frame.Region(box)
	defer region.Close()

	return n.forward(region)
}

func (n *Net) forward(face gocv.Mat) ([]float32, error) {
	blob := gocv.BlobFromImage(face,
		1.0/255.0,
		image.Pt(n.inputSize, n.inputSize),
		gocv.NewScalar(0, 0, 0, 0),
		false,
		false,
	)
	defer blob.Close()

	n.net.SetInput(blob, "")
	out := n.net.Forward("")
	defer out.Close()

	vec := make([]float32, out.Total())
	for i := range vec {
		vec[i] = out.GetFloatAt(0, i)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("recognition model produced an empty embedding")
	}
	return vec, nil
}

// Close releases the model.
func (n *Net) Close() error {
	return n.net.Close()
}
